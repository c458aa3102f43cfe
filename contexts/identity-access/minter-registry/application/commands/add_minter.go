package commands

import (
	"context"
	"errors"
	"log/slog"

	application "provenance/contexts/identity-access/minter-registry/application"
	"provenance/contexts/identity-access/minter-registry/domain/entities"
	domainerrors "provenance/contexts/identity-access/minter-registry/domain/errors"
	"provenance/contexts/identity-access/minter-registry/ports"
	contractsv1 "provenance/contracts/gen/events/v1"
	ledger "provenance/contracts/ledger/v1"
)

type AddMinterCommand struct {
	Caller     ledger.Principal
	Address    ledger.Principal
	Brand      string
	Location   string
	RoyaltyBps ledger.BasisPoints
}

type AddMinterUseCase struct {
	Repository  ports.Repository
	Transactor  ports.Transactor
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Owner       ledger.Principal
	Logger      *slog.Logger
}

func (u AddMinterUseCase) Execute(ctx context.Context, cmd AddMinterCommand) (entities.MinterProfile, error) {
	logger := application.ResolveLogger(u.Logger)

	if !isRegistryOwner(u.Owner, cmd.Caller) {
		return entities.MinterProfile{}, domainerrors.ErrNotRegistryOwner
	}

	now := application.Now(u.Clock)
	profile, err := entities.NewMinterProfile(cmd.Address, cmd.Brand, cmd.Location, cmd.RoyaltyBps, cmd.Caller, now)
	if err != nil {
		return entities.MinterProfile{}, err
	}

	err = u.Transactor.WithinTx(ctx, func(ctx context.Context) error {
		_, err := u.Repository.GetMinter(ctx, profile.Address)
		switch {
		case err == nil:
			return domainerrors.ErrMinterExists
		case !errors.Is(err, domainerrors.ErrMinterNotFound):
			return err
		}

		event, err := application.NewEvent(ctx, u.IDGenerator,
			contractsv1.EventTypeMinterAdded,
			profile.Address.Hex(),
			now,
			contractsv1.MinterAdded{Address: profile.Address.Hex()},
		)
		if err != nil {
			return err
		}
		return u.Repository.CreateMinterWithOutbox(ctx, profile, event)
	})
	if err != nil {
		logger.Warn("add minter failed",
			"event", "minter_add_failed",
			"module", "identity-access/minter-registry",
			"layer", "application",
			"minter", profile.Address.Hex(),
			"error", err.Error(),
		)
		return entities.MinterProfile{}, err
	}

	logger.Info("minter added",
		"event", "minter_added",
		"module", "identity-access/minter-registry",
		"layer", "application",
		"minter", profile.Address.Hex(),
		"brand", profile.Brand,
		"royalty_bps", uint32(profile.RoyaltyBps),
	)
	return profile, nil
}

func isRegistryOwner(owner ledger.Principal, caller ledger.Principal) bool {
	return !ledger.IsZero(owner) && owner == caller
}
