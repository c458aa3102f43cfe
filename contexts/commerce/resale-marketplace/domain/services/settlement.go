package services

import (
	"provenance/contexts/commerce/resale-marketplace/domain/entities"
	domainerrors "provenance/contexts/commerce/resale-marketplace/domain/errors"
	ledger "provenance/contracts/ledger/v1"
)

// Credit is one escrow movement produced by a settlement.
type Credit struct {
	Payee  ledger.Principal
	Amount ledger.Amount
}

type Settlement struct {
	Credits []Credit
	Change  ledger.Amount
}

// SettlePurchase splits payment between seller, minter and buyer change.
// Zero amounts produce no credit.
func SettlePurchase(listing entities.Listing, buyer ledger.Principal, payment ledger.Amount) (Settlement, error) {
	total, err := listing.Total()
	if err != nil {
		return Settlement{}, err
	}
	if payment.Lt(&total) {
		return Settlement{}, domainerrors.ErrInsufficientFunds
	}

	var change ledger.Amount
	change.Sub(&payment, &total)

	settlement := Settlement{Change: change}
	settlement.add(listing.Seller, listing.Price)
	settlement.add(listing.Minter, listing.RoyaltyAmount)
	settlement.add(buyer, change)
	return settlement, nil
}

func (s *Settlement) add(payee ledger.Principal, amount ledger.Amount) {
	if amount.IsZero() {
		return
	}
	s.Credits = append(s.Credits, Credit{Payee: payee, Amount: amount})
}
