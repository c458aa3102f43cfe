package commands

import (
	"context"
	"log/slog"
	"strings"

	application "provenance/contexts/provenance/asset-registry/application"
	"provenance/contexts/provenance/asset-registry/domain/entities"
	domainerrors "provenance/contexts/provenance/asset-registry/domain/errors"
	"provenance/contexts/provenance/asset-registry/ports"
	ledger "provenance/contracts/ledger/v1"
)

type ApproveListingCommand struct {
	Caller   ledger.Principal
	SerialID string
}

// ApproveListingUseCase lets the owner grant the configured marketplace
// operator the right to move the asset.
type ApproveListingUseCase struct {
	Repository ports.Repository
	Transactor ports.Transactor
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (u ApproveListingUseCase) Execute(ctx context.Context, cmd ApproveListingCommand) (entities.Asset, error) {
	logger := application.ResolveLogger(u.Logger)

	var approved entities.Asset
	err := u.Transactor.WithinTx(ctx, func(ctx context.Context) error {
		serialID := strings.TrimSpace(cmd.SerialID)
		asset, err := u.Repository.GetAsset(ctx, serialID)
		if err != nil {
			return err
		}
		if !asset.IsOwnedBy(cmd.Caller) {
			return domainerrors.ErrNotTokenOwner
		}
		settings, err := u.Repository.GetSettings(ctx)
		if err != nil {
			return err
		}
		if ledger.IsZero(settings.MarketplaceOperator) {
			return domainerrors.ErrMarketplaceNotSet
		}

		asset.ApprovedOperator = settings.MarketplaceOperator
		asset.UpdatedAt = application.Now(u.Clock)
		if err := u.Repository.UpdateAsset(ctx, asset); err != nil {
			return err
		}
		approved = asset
		return nil
	})
	if err != nil {
		logger.Warn("listing approval failed",
			"event", "asset_listing_approval_failed",
			"module", "provenance/asset-registry",
			"layer", "application",
			"serial_id", cmd.SerialID,
			"caller", cmd.Caller.Hex(),
			"error", err.Error(),
		)
		return entities.Asset{}, err
	}

	logger.Info("listing approved",
		"event", "asset_listing_approved",
		"module", "provenance/asset-registry",
		"layer", "application",
		"serial_id", approved.SerialID,
		"operator", approved.ApprovedOperator.Hex(),
	)
	return approved, nil
}
