package commands

import (
	"context"
	"log/slog"
	"strings"

	application "provenance/contexts/commerce/resale-marketplace/application"
	"provenance/contexts/commerce/resale-marketplace/domain/entities"
	domainerrors "provenance/contexts/commerce/resale-marketplace/domain/errors"
	"provenance/contexts/commerce/resale-marketplace/domain/services"
	"provenance/contexts/commerce/resale-marketplace/ports"
	contractsv1 "provenance/contracts/gen/events/v1"
	ledger "provenance/contracts/ledger/v1"
)

type BuyWatchCommand struct {
	Caller   ledger.Principal
	SerialID string
	Payment  ledger.Amount
}

// BuyWatchUseCase settles a purchase entirely inside one unit of work: the
// asset moves, the listing disappears and every payee is credited in escrow.
// No value leaves the marketplace here.
type BuyWatchUseCase struct {
	Repository  ports.Repository
	Assets      ports.AssetLedger
	Theft       ports.TheftLookup
	Transactor  ports.Transactor
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Operator    ledger.Principal
	Policy      application.Policy
	Logger      *slog.Logger
}

func (u BuyWatchUseCase) Execute(ctx context.Context, cmd BuyWatchCommand) (entities.Purchase, error) {
	logger := application.ResolveLogger(u.Logger)
	serialID := strings.TrimSpace(cmd.SerialID)

	var purchase entities.Purchase
	err := u.Transactor.WithinTx(ctx, func(ctx context.Context) error {
		asset, err := u.Assets.GetAsset(ctx, serialID)
		if err != nil {
			return err
		}
		listing, err := u.Repository.GetListing(ctx, asset.TokenID)
		if err != nil {
			return err
		}
		if u.Policy.EnforceDesignatedBuyer && !listing.AcceptsBuyer(cmd.Caller) {
			return domainerrors.ErrNotDesignatedBuyer
		}
		if u.Policy.RecheckStolenAtPurchase {
			stolen, err := u.Theft.IsStolen(ctx, serialID)
			if err != nil {
				return err
			}
			if stolen {
				return domainerrors.ErrWatchStolen
			}
		}

		settlement, err := services.SettlePurchase(listing, cmd.Caller, cmd.Payment)
		if err != nil {
			return err
		}

		if err := u.Assets.Transfer(ctx, u.Operator, serialID, cmd.Caller); err != nil {
			return err
		}

		now := application.Now(u.Clock)
		for _, credit := range settlement.Credits {
			balance, err := u.Repository.GetBalance(ctx, credit.Payee)
			if err != nil {
				return err
			}
			balance, err = balance.Credit(credit.Amount, now)
			if err != nil {
				return err
			}
			if err := u.Repository.SaveBalance(ctx, balance); err != nil {
				return err
			}
		}

		event, err := application.NewEvent(ctx, u.IDGenerator,
			contractsv1.EventTypeWatchTransferred,
			"serial_id",
			serialID,
			now,
			contractsv1.WatchTransferred{
				SerialID:      serialID,
				From:          listing.Seller.Hex(),
				To:            cmd.Caller.Hex(),
				Price:         ledger.FormatWei(listing.Price),
				RoyaltyAmount: ledger.FormatWei(listing.RoyaltyAmount),
			},
		)
		if err != nil {
			return err
		}
		if err := u.Repository.DeleteListingWithOutbox(ctx, listing.TokenID, event); err != nil {
			return err
		}

		purchase = entities.Purchase{
			TokenID:       listing.TokenID,
			SerialID:      serialID,
			Seller:        listing.Seller,
			Buyer:         cmd.Caller,
			Minter:        listing.Minter,
			Price:         listing.Price,
			RoyaltyAmount: listing.RoyaltyAmount,
			Paid:          cmd.Payment,
			Change:        settlement.Change,
			PurchasedAt:   now,
		}
		return nil
	})
	if err != nil {
		logger.Warn("buy watch failed",
			"event", "marketplace_buy_failed",
			"module", "commerce/resale-marketplace",
			"layer", "application",
			"serial_id", serialID,
			"buyer", cmd.Caller.Hex(),
			"payment_wei", ledger.FormatWei(cmd.Payment),
			"error", err.Error(),
		)
		return entities.Purchase{}, err
	}

	logger.Info("watch purchased",
		"event", "marketplace_watch_purchased",
		"module", "commerce/resale-marketplace",
		"layer", "application",
		"serial_id", serialID,
		"seller", purchase.Seller.Hex(),
		"buyer", purchase.Buyer.Hex(),
		"price_wei", ledger.FormatWei(purchase.Price),
		"royalty_wei", ledger.FormatWei(purchase.RoyaltyAmount),
	)
	return purchase, nil
}
