package queries

import (
	"context"
	"errors"

	"provenance/contexts/identity-access/minter-registry/domain/entities"
	domainerrors "provenance/contexts/identity-access/minter-registry/domain/errors"
	"provenance/contexts/identity-access/minter-registry/ports"
	ledger "provenance/contracts/ledger/v1"
)

type GetMinterUseCase struct {
	Repository ports.Repository
	Transactor ports.Transactor
}

func (u GetMinterUseCase) Execute(ctx context.Context, address ledger.Principal) (entities.MinterProfile, error) {
	var profile entities.MinterProfile
	err := u.Transactor.View(ctx, func(ctx context.Context) error {
		found, err := u.Repository.GetMinter(ctx, address)
		if err != nil {
			return err
		}
		profile = found
		return nil
	})
	return profile, err
}

// MinterLookup is the unchecked read used by peers: an unregistered address
// yields Registered=false, royalty 0 and empty labels.
type MinterLookup struct {
	Address    ledger.Principal
	Registered bool
	Brand      string
	Location   string
	RoyaltyBps ledger.BasisPoints
}

type LookupMinterUseCase struct {
	Repository ports.Repository
	Transactor ports.Transactor
}

func (u LookupMinterUseCase) Execute(ctx context.Context, address ledger.Principal) (MinterLookup, error) {
	lookup := MinterLookup{Address: address}
	err := u.Transactor.View(ctx, func(ctx context.Context) error {
		profile, err := u.Repository.GetMinter(ctx, address)
		if errors.Is(err, domainerrors.ErrMinterNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		lookup.Registered = true
		lookup.Brand = profile.Brand
		lookup.Location = profile.Location
		lookup.RoyaltyBps = profile.RoyaltyBps
		return nil
	})
	if err != nil {
		return MinterLookup{}, err
	}
	return lookup, nil
}
