package commands

import (
	"context"
	"log/slog"
	"strings"

	application "provenance/contexts/provenance/asset-registry/application"
	"provenance/contexts/provenance/asset-registry/domain/entities"
	domainerrors "provenance/contexts/provenance/asset-registry/domain/errors"
	"provenance/contexts/provenance/asset-registry/ports"
	contractsv1 "provenance/contracts/gen/events/v1"
	ledger "provenance/contracts/ledger/v1"
)

type TransferCommand struct {
	Operator ledger.Principal
	SerialID string
	NewOwner ledger.Principal
}

// TransferUseCase moves an asset on behalf of its owner. Only the approved
// operator may call it; the approval is consumed.
type TransferUseCase struct {
	Repository  ports.Repository
	Transactor  ports.Transactor
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u TransferUseCase) Execute(ctx context.Context, cmd TransferCommand) (entities.Asset, error) {
	logger := application.ResolveLogger(u.Logger)

	var moved entities.Asset
	err := u.Transactor.WithinTx(ctx, func(ctx context.Context) error {
		serialID := strings.TrimSpace(cmd.SerialID)
		asset, err := u.Repository.GetAsset(ctx, serialID)
		if err != nil {
			return err
		}
		if !asset.CanBeMovedBy(cmd.Operator) {
			return domainerrors.ErrNotApprovedOperator
		}

		now := application.Now(u.Clock)
		previousOwner := asset.Owner
		asset, err = asset.TransferTo(cmd.NewOwner, now)
		if err != nil {
			return err
		}

		event, err := application.NewEvent(ctx, u.IDGenerator,
			contractsv1.EventTypeTokenTransferred,
			"serial_id",
			serialID,
			now,
			contractsv1.TokenTransferred{
				SerialID: serialID,
				From:     previousOwner.Hex(),
				To:       asset.Owner.Hex(),
			},
		)
		if err != nil {
			return err
		}
		if err := u.Repository.UpdateAssetWithOutbox(ctx, asset, event); err != nil {
			return err
		}
		moved = asset
		return nil
	})
	if err != nil {
		logger.Warn("transfer failed",
			"event", "asset_transfer_failed",
			"module", "provenance/asset-registry",
			"layer", "application",
			"serial_id", cmd.SerialID,
			"operator", cmd.Operator.Hex(),
			"error", err.Error(),
		)
		return entities.Asset{}, err
	}

	logger.Info("asset transferred",
		"event", "asset_transferred",
		"module", "provenance/asset-registry",
		"layer", "application",
		"serial_id", moved.SerialID,
		"owner", moved.Owner.Hex(),
	)
	return moved, nil
}
