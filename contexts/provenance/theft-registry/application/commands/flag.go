package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "provenance/contexts/provenance/theft-registry/application"
	"provenance/contexts/provenance/theft-registry/domain/entities"
	domainerrors "provenance/contexts/provenance/theft-registry/domain/errors"
	"provenance/contexts/provenance/theft-registry/ports"
	contractsv1 "provenance/contracts/gen/events/v1"
	ledger "provenance/contracts/ledger/v1"
)

type FlagCommand struct {
	Caller   ledger.Principal
	SerialID string
}

// ToggleUseCase carries the dependencies shared by flag and unflag.
type ToggleUseCase struct {
	Repository  ports.Repository
	Assets      ports.AssetOwnership
	Transactor  ports.Transactor
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

type FlagUseCase struct {
	ToggleUseCase
}

type UnflagUseCase struct {
	ToggleUseCase
}

func (u FlagUseCase) Execute(ctx context.Context, cmd FlagCommand) (entities.TheftFlag, error) {
	return u.toggle(ctx, cmd, "flag", entities.TheftFlag.MarkStolen, func(serialID string, actor string) (string, any) {
		return contractsv1.EventTypeTokenFlaggedAsStolen, contractsv1.TokenFlaggedAsStolen{SerialID: serialID, Actor: actor}
	})
}

func (u UnflagUseCase) Execute(ctx context.Context, cmd FlagCommand) (entities.TheftFlag, error) {
	return u.toggle(ctx, cmd, "unflag", entities.TheftFlag.MarkRecovered, func(serialID string, actor string) (string, any) {
		return contractsv1.EventTypeTokenUnflaggedAsStolen, contractsv1.TokenUnflaggedAsStolen{SerialID: serialID, Actor: actor}
	})
}

func (u ToggleUseCase) toggle(
	ctx context.Context,
	cmd FlagCommand,
	op string,
	transition func(entities.TheftFlag, ledger.Principal, time.Time) (entities.TheftFlag, error),
	payload func(serialID string, actor string) (string, any),
) (entities.TheftFlag, error) {
	logger := application.ResolveLogger(u.Logger)
	serialID := strings.TrimSpace(cmd.SerialID)

	var updated entities.TheftFlag
	err := u.Transactor.WithinTx(ctx, func(ctx context.Context) error {
		owner, err := u.Assets.OwnerOf(ctx, serialID)
		if err != nil {
			return err
		}
		if owner != cmd.Caller {
			return domainerrors.ErrNotTokenOwner
		}

		current, found, err := u.Repository.GetFlag(ctx, serialID)
		if err != nil {
			return err
		}
		if !found {
			current = entities.TheftFlag{SerialID: serialID}
		}

		now := application.Now(u.Clock)
		next, err := transition(current, cmd.Caller, now)
		if err != nil {
			return err
		}

		eventType, data := payload(serialID, cmd.Caller.Hex())
		event, err := application.NewEvent(ctx, u.IDGenerator, eventType, serialID, now, data)
		if err != nil {
			return err
		}
		if err := u.Repository.SaveFlagWithOutbox(ctx, next, event); err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		logger.Warn("theft "+op+" failed",
			"event", "theft_"+op+"_failed",
			"module", "provenance/theft-registry",
			"layer", "application",
			"serial_id", serialID,
			"caller", cmd.Caller.Hex(),
			"error", err.Error(),
		)
		return entities.TheftFlag{}, err
	}

	logger.Info("theft "+op+" completed",
		"event", "theft_"+op+"_completed",
		"module", "provenance/theft-registry",
		"layer", "application",
		"serial_id", serialID,
		"stolen", updated.Stolen,
	)
	return updated, nil
}
