package entities

import (
	"strings"
	"time"

	domainerrors "provenance/contexts/identity-access/minter-registry/domain/errors"
	ledger "provenance/contracts/ledger/v1"
)

// MinterProfile is a whitelisted minting principal.
type MinterProfile struct {
	Address    ledger.Principal
	Brand      string
	Location   string
	RoyaltyBps ledger.BasisPoints
	AddedBy    ledger.Principal
	AddedAt    time.Time
}

// NewMinterProfile checks royalty, brand, location and address in that order.
func NewMinterProfile(
	address ledger.Principal,
	brand string,
	location string,
	royaltyBps ledger.BasisPoints,
	addedBy ledger.Principal,
	addedAt time.Time,
) (MinterProfile, error) {
	if royaltyBps > ledger.MaxBasisPoints {
		return MinterProfile{}, domainerrors.ErrRoyaltyTooHigh
	}
	brand = strings.TrimSpace(brand)
	if brand == "" {
		return MinterProfile{}, domainerrors.ErrEmptyBrand
	}
	location = strings.TrimSpace(location)
	if location == "" {
		return MinterProfile{}, domainerrors.ErrEmptyLocation
	}
	if ledger.IsZero(address) {
		return MinterProfile{}, domainerrors.ErrZeroMinter
	}
	return MinterProfile{
		Address:    address,
		Brand:      brand,
		Location:   location,
		RoyaltyBps: royaltyBps,
		AddedBy:    addedBy,
		AddedAt:    addedAt.UTC(),
	}, nil
}
