package commands

import (
	"context"
	"log/slog"
	"strings"

	application "provenance/contexts/commerce/resale-marketplace/application"
	domainerrors "provenance/contexts/commerce/resale-marketplace/domain/errors"
	"provenance/contexts/commerce/resale-marketplace/ports"
	contractsv1 "provenance/contracts/gen/events/v1"
	ledger "provenance/contracts/ledger/v1"
)

type CancelListingCommand struct {
	Caller   ledger.Principal
	SerialID string
}

type CancelListingUseCase struct {
	Repository  ports.Repository
	Assets      ports.AssetLedger
	Transactor  ports.Transactor
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u CancelListingUseCase) Execute(ctx context.Context, cmd CancelListingCommand) error {
	logger := application.ResolveLogger(u.Logger)
	serialID := strings.TrimSpace(cmd.SerialID)

	err := u.Transactor.WithinTx(ctx, func(ctx context.Context) error {
		asset, err := u.Assets.GetAsset(ctx, serialID)
		if err != nil {
			return err
		}
		listing, err := u.Repository.GetListing(ctx, asset.TokenID)
		if err != nil {
			return err
		}
		if listing.Seller != cmd.Caller {
			return domainerrors.ErrNotSeller
		}

		event, err := application.NewEvent(ctx, u.IDGenerator,
			contractsv1.EventTypeListingCancelled,
			"serial_id",
			serialID,
			application.Now(u.Clock),
			contractsv1.ListingCancelled{SerialID: serialID, Seller: listing.Seller.Hex()},
		)
		if err != nil {
			return err
		}
		return u.Repository.DeleteListingWithOutbox(ctx, listing.TokenID, event)
	})
	if err != nil {
		logger.Warn("cancel listing failed",
			"event", "marketplace_cancel_failed",
			"module", "commerce/resale-marketplace",
			"layer", "application",
			"serial_id", serialID,
			"caller", cmd.Caller.Hex(),
			"error", err.Error(),
		)
		return err
	}

	logger.Info("listing cancelled",
		"event", "marketplace_listing_cancelled",
		"module", "commerce/resale-marketplace",
		"layer", "application",
		"serial_id", serialID,
	)
	return nil
}
