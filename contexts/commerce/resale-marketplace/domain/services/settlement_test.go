package services

import (
	"errors"
	"testing"

	"provenance/contexts/commerce/resale-marketplace/domain/entities"
	domainerrors "provenance/contexts/commerce/resale-marketplace/domain/errors"
	ledger "provenance/contracts/ledger/v1"
)

func mustEther(t *testing.T, raw string) ledger.Amount {
	t.Helper()
	amount, err := ledger.ParseEther(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return amount
}

func TestSettlePurchaseSplitsPayment(t *testing.T) {
	seller, _ := ledger.ParsePrincipal("0x00000000000000000000000000000000000000c1")
	minter, _ := ledger.ParsePrincipal("0x00000000000000000000000000000000000000b1")
	buyer, _ := ledger.ParsePrincipal("0x00000000000000000000000000000000000000c2")

	listing, err := entities.NewListing(entities.NewListingInput{
		TokenID:    1,
		SerialID:   "RLX-1",
		Seller:     seller,
		Price:      mustEther(t, "1.0"),
		RoyaltyBps: 500,
		Minter:     minter,
	})
	if err != nil {
		t.Fatalf("listing: %v", err)
	}

	if _, err := SettlePurchase(listing, buyer, mustEther(t, "1.04")); !errors.Is(err, domainerrors.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}

	exact, err := SettlePurchase(listing, buyer, mustEther(t, "1.05"))
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if len(exact.Credits) != 2 || !exact.Change.IsZero() {
		t.Fatalf("exact payment must credit seller and minter only, got %+v", exact)
	}
	if exact.Credits[1].Payee != minter || ledger.FormatEther(exact.Credits[1].Amount) != "0.05" {
		t.Fatalf("unexpected royalty credit %+v", exact.Credits[1])
	}

	over, err := SettlePurchase(listing, buyer, mustEther(t, "2"))
	if err != nil {
		t.Fatalf("settle overpayment: %v", err)
	}
	if len(over.Credits) != 3 || over.Credits[2].Payee != buyer || ledger.FormatEther(over.Change) != "0.95" {
		t.Fatalf("expected buyer change of 0.95, got %+v", over)
	}
}

func TestSettlePurchaseWithoutRoyalty(t *testing.T) {
	seller, _ := ledger.ParsePrincipal("0x00000000000000000000000000000000000000c1")
	listing, err := entities.NewListing(entities.NewListingInput{
		TokenID: 1,
		Seller:  seller,
		Price:   ledger.Wei(9999),
	})
	if err != nil {
		t.Fatalf("listing: %v", err)
	}
	settlement, err := SettlePurchase(listing, seller, ledger.Wei(9999))
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if len(settlement.Credits) != 1 {
		t.Fatalf("expected only the seller credit, got %+v", settlement.Credits)
	}
}
