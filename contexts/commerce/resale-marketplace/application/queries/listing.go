package queries

import (
	"context"
	"strings"

	"provenance/contexts/commerce/resale-marketplace/domain/entities"
	"provenance/contexts/commerce/resale-marketplace/ports"
	ledger "provenance/contracts/ledger/v1"
)

type GetListingUseCase struct {
	Repository ports.Repository
	Assets     ports.AssetLedger
	Transactor ports.Transactor
}

// Execute resolves the serial to its current token id. Listings left behind
// by a burned asset are unreachable and report not found.
func (u GetListingUseCase) Execute(ctx context.Context, serialID string) (entities.Listing, error) {
	serialID = strings.TrimSpace(serialID)
	var listing entities.Listing
	err := u.Transactor.View(ctx, func(ctx context.Context) error {
		asset, err := u.Assets.GetAsset(ctx, serialID)
		if err != nil {
			return err
		}
		listing, err = u.Repository.GetListing(ctx, asset.TokenID)
		return err
	})
	if err != nil {
		return entities.Listing{}, err
	}
	return listing, nil
}

// QuoteUseCase returns price plus royalty for an active listing.
type QuoteUseCase struct {
	Listings GetListingUseCase
}

func (u QuoteUseCase) Execute(ctx context.Context, serialID string) (ledger.Amount, error) {
	listing, err := u.Listings.Execute(ctx, serialID)
	if err != nil {
		return ledger.Amount{}, err
	}
	return listing.Total()
}

type BalanceOfUseCase struct {
	Repository ports.Repository
	Transactor ports.Transactor
}

func (u BalanceOfUseCase) Execute(ctx context.Context, payee ledger.Principal) (entities.Balance, error) {
	var balance entities.Balance
	err := u.Transactor.View(ctx, func(ctx context.Context) error {
		var err error
		balance, err = u.Repository.GetBalance(ctx, payee)
		return err
	})
	if err != nil {
		return entities.Balance{}, err
	}
	return balance, nil
}
