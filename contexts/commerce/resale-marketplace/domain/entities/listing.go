package entities

import (
	"time"

	domainerrors "provenance/contexts/commerce/resale-marketplace/domain/errors"
	ledger "provenance/contracts/ledger/v1"
)

// Listing is an active sale offer keyed by token id. RoyaltyAmount is fixed
// when the listing is created from the minter's rate at that moment.
type Listing struct {
	TokenID         uint64
	SerialID        string
	Seller          ledger.Principal
	Price           ledger.Amount
	RoyaltyAmount   ledger.Amount
	RoyaltyBps      ledger.BasisPoints
	Minter          ledger.Principal
	DesignatedBuyer ledger.Principal
	ListedAt        time.Time
}

type NewListingInput struct {
	TokenID         uint64
	SerialID        string
	Seller          ledger.Principal
	Price           ledger.Amount
	RoyaltyBps      ledger.BasisPoints
	Minter          ledger.Principal
	DesignatedBuyer ledger.Principal
	ListedAt        time.Time
}

func NewListing(input NewListingInput) (Listing, error) {
	if input.Price.IsZero() {
		return Listing{}, domainerrors.ErrZeroPrice
	}
	royalty, overflow := ledger.ApplyBasisPoints(input.Price, input.RoyaltyBps)
	if overflow {
		return Listing{}, domainerrors.ErrPriceOverflow
	}
	listing := Listing{
		TokenID:         input.TokenID,
		SerialID:        input.SerialID,
		Seller:          input.Seller,
		Price:           input.Price,
		RoyaltyAmount:   royalty,
		RoyaltyBps:      input.RoyaltyBps,
		Minter:          input.Minter,
		DesignatedBuyer: input.DesignatedBuyer,
		ListedAt:        input.ListedAt.UTC(),
	}
	if _, err := listing.Total(); err != nil {
		return Listing{}, err
	}
	return listing, nil
}

// Total is price plus royalty, the minimum a buyer must pay.
func (l Listing) Total() (ledger.Amount, error) {
	total, overflow := ledger.Sum(l.Price, l.RoyaltyAmount)
	if overflow {
		return ledger.Amount{}, domainerrors.ErrPriceOverflow
	}
	return total, nil
}

// AcceptsBuyer reports whether buyer matches the designated buyer. A zero
// designated buyer accepts anyone.
func (l Listing) AcceptsBuyer(buyer ledger.Principal) bool {
	return ledger.IsZero(l.DesignatedBuyer) || l.DesignatedBuyer == buyer
}
