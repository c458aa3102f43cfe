package commands

import (
	"context"
	"log/slog"

	application "provenance/contexts/identity-access/minter-registry/application"
	domainerrors "provenance/contexts/identity-access/minter-registry/domain/errors"
	"provenance/contexts/identity-access/minter-registry/ports"
	contractsv1 "provenance/contracts/gen/events/v1"
	ledger "provenance/contracts/ledger/v1"
)

type RemoveMinterCommand struct {
	Caller  ledger.Principal
	Address ledger.Principal
}

type RemoveMinterUseCase struct {
	Repository  ports.Repository
	Transactor  ports.Transactor
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Owner       ledger.Principal
	Logger      *slog.Logger
}

func (u RemoveMinterUseCase) Execute(ctx context.Context, cmd RemoveMinterCommand) error {
	logger := application.ResolveLogger(u.Logger)

	if !isRegistryOwner(u.Owner, cmd.Caller) {
		return domainerrors.ErrNotRegistryOwner
	}

	err := u.Transactor.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := u.Repository.GetMinter(ctx, cmd.Address); err != nil {
			return err
		}
		event, err := application.NewEvent(ctx, u.IDGenerator,
			contractsv1.EventTypeMinterRemoved,
			cmd.Address.Hex(),
			application.Now(u.Clock),
			contractsv1.MinterRemoved{Address: cmd.Address.Hex()},
		)
		if err != nil {
			return err
		}
		return u.Repository.DeleteMinterWithOutbox(ctx, cmd.Address, event)
	})
	if err != nil {
		logger.Warn("remove minter failed",
			"event", "minter_remove_failed",
			"module", "identity-access/minter-registry",
			"layer", "application",
			"minter", cmd.Address.Hex(),
			"error", err.Error(),
		)
		return err
	}

	logger.Info("minter removed",
		"event", "minter_removed",
		"module", "identity-access/minter-registry",
		"layer", "application",
		"minter", cmd.Address.Hex(),
	)
	return nil
}
