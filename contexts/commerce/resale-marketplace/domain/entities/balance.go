package entities

import (
	"time"

	domainerrors "provenance/contexts/commerce/resale-marketplace/domain/errors"
	ledger "provenance/contracts/ledger/v1"
)

// Balance is the escrowed amount owed to a payee.
type Balance struct {
	Payee     ledger.Principal
	Amount    ledger.Amount
	UpdatedAt time.Time
}

func (b Balance) Credit(amount ledger.Amount, at time.Time) (Balance, error) {
	total, overflow := ledger.Sum(b.Amount, amount)
	if overflow {
		return Balance{}, domainerrors.ErrBalanceOverflow
	}
	b.Amount = total
	b.UpdatedAt = at.UTC()
	return b, nil
}

// Drain empties the balance and returns the amount it held.
func (b Balance) Drain(at time.Time) (Balance, ledger.Amount, error) {
	if b.Amount.IsZero() {
		return Balance{}, ledger.Amount{}, domainerrors.ErrNoBalance
	}
	drained := b.Amount
	b.Amount = ledger.Amount{}
	b.UpdatedAt = at.UTC()
	return b, drained, nil
}

// Purchase is the receipt of a settled buyWatch.
type Purchase struct {
	TokenID       uint64
	SerialID      string
	Seller        ledger.Principal
	Buyer         ledger.Principal
	Minter        ledger.Principal
	Price         ledger.Amount
	RoyaltyAmount ledger.Amount
	Paid          ledger.Amount
	Change        ledger.Amount
	PurchasedAt   time.Time
}
