package commands

import (
	"context"
	"log/slog"
	"strings"

	application "provenance/contexts/commerce/resale-marketplace/application"
	"provenance/contexts/commerce/resale-marketplace/domain/entities"
	domainerrors "provenance/contexts/commerce/resale-marketplace/domain/errors"
	"provenance/contexts/commerce/resale-marketplace/ports"
	contractsv1 "provenance/contracts/gen/events/v1"
	ledger "provenance/contracts/ledger/v1"
)

type ListWatchCommand struct {
	Caller          ledger.Principal
	SerialID        string
	Price           ledger.Amount
	DesignatedBuyer ledger.Principal
}

type ListWatchUseCase struct {
	Repository  ports.Repository
	Assets      ports.AssetLedger
	Theft       ports.TheftLookup
	Royalties   ports.RoyaltySchedule
	Transactor  ports.Transactor
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Operator    ledger.Principal
	Logger      *slog.Logger
}

func (u ListWatchUseCase) Execute(ctx context.Context, cmd ListWatchCommand) (entities.Listing, error) {
	logger := application.ResolveLogger(u.Logger)
	serialID := strings.TrimSpace(cmd.SerialID)

	var listing entities.Listing
	err := u.Transactor.WithinTx(ctx, func(ctx context.Context) error {
		asset, err := u.Assets.GetAsset(ctx, serialID)
		if err != nil {
			return err
		}
		stolen, err := u.Theft.IsStolen(ctx, serialID)
		if err != nil {
			return err
		}
		if stolen {
			return domainerrors.ErrWatchStolen
		}
		if asset.Owner != cmd.Caller {
			return domainerrors.ErrNotAssetOwner
		}
		if ledger.IsZero(u.Operator) || asset.ApprovedOperator != u.Operator {
			return domainerrors.ErrMarketplaceNotApproved
		}

		bps, err := u.Royalties.RoyaltyRate(ctx, asset.Minter)
		if err != nil {
			return err
		}
		now := application.Now(u.Clock)
		created, err := entities.NewListing(entities.NewListingInput{
			TokenID:         asset.TokenID,
			SerialID:        asset.SerialID,
			Seller:          cmd.Caller,
			Price:           cmd.Price,
			RoyaltyBps:      bps,
			Minter:          asset.Minter,
			DesignatedBuyer: cmd.DesignatedBuyer,
			ListedAt:        now,
		})
		if err != nil {
			return err
		}

		event, err := application.NewEvent(ctx, u.IDGenerator,
			contractsv1.EventTypeWatchListed,
			"serial_id",
			created.SerialID,
			now,
			contractsv1.WatchListed{
				SerialID:        created.SerialID,
				Seller:          created.Seller.Hex(),
				Price:           ledger.FormatWei(created.Price),
				RoyaltyAmount:   ledger.FormatWei(created.RoyaltyAmount),
				DesignatedBuyer: created.DesignatedBuyer.Hex(),
			},
		)
		if err != nil {
			return err
		}
		if err := u.Repository.SaveListingWithOutbox(ctx, created, event); err != nil {
			return err
		}
		listing = created
		return nil
	})
	if err != nil {
		logger.Warn("list watch failed",
			"event", "marketplace_list_failed",
			"module", "commerce/resale-marketplace",
			"layer", "application",
			"serial_id", serialID,
			"caller", cmd.Caller.Hex(),
			"error", err.Error(),
		)
		return entities.Listing{}, err
	}

	logger.Info("watch listed",
		"event", "marketplace_watch_listed",
		"module", "commerce/resale-marketplace",
		"layer", "application",
		"serial_id", listing.SerialID,
		"token_id", listing.TokenID,
		"price_wei", ledger.FormatWei(listing.Price),
		"royalty_wei", ledger.FormatWei(listing.RoyaltyAmount),
	)
	return listing, nil
}
