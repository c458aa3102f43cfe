package commands

import (
	"context"
	"log/slog"
	"strings"

	application "provenance/contexts/provenance/asset-registry/application"
	domainerrors "provenance/contexts/provenance/asset-registry/domain/errors"
	"provenance/contexts/provenance/asset-registry/ports"
	contractsv1 "provenance/contracts/gen/events/v1"
	ledger "provenance/contracts/ledger/v1"
)

type BurnCommand struct {
	Caller   ledger.Principal
	SerialID string
}

type BurnUseCase struct {
	Repository  ports.Repository
	Transactor  ports.Transactor
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u BurnUseCase) Execute(ctx context.Context, cmd BurnCommand) error {
	logger := application.ResolveLogger(u.Logger)

	err := u.Transactor.WithinTx(ctx, func(ctx context.Context) error {
		serialID := strings.TrimSpace(cmd.SerialID)
		asset, err := u.Repository.GetAsset(ctx, serialID)
		if err != nil {
			return err
		}
		if !asset.IsOwnedBy(cmd.Caller) {
			return domainerrors.ErrNotTokenOwner
		}

		event, err := application.NewEvent(ctx, u.IDGenerator,
			contractsv1.EventTypeTokenDestroyed,
			"serial_id",
			serialID,
			application.Now(u.Clock),
			contractsv1.TokenDestroyed{SerialID: serialID},
		)
		if err != nil {
			return err
		}
		return u.Repository.DeleteAssetWithOutbox(ctx, serialID, event)
	})
	if err != nil {
		logger.Warn("burn failed",
			"event", "asset_burn_failed",
			"module", "provenance/asset-registry",
			"layer", "application",
			"serial_id", cmd.SerialID,
			"caller", cmd.Caller.Hex(),
			"error", err.Error(),
		)
		return err
	}

	logger.Info("asset burned",
		"event", "asset_burned",
		"module", "provenance/asset-registry",
		"layer", "application",
		"serial_id", cmd.SerialID,
	)
	return nil
}
