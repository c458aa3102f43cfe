package commands

import (
	"context"
	"log/slog"

	application "provenance/contexts/provenance/asset-registry/application"
	domainerrors "provenance/contexts/provenance/asset-registry/domain/errors"
	"provenance/contexts/provenance/asset-registry/ports"
	contractsv1 "provenance/contracts/gen/events/v1"
	ledger "provenance/contracts/ledger/v1"
)

type SetMarketplaceCommand struct {
	Caller   ledger.Principal
	Operator ledger.Principal
}

// SetMarketplaceUseCase is the administrative wiring step that names the
// trusted marketplace operator. The owner may re-point it later.
type SetMarketplaceUseCase struct {
	Repository  ports.Repository
	Transactor  ports.Transactor
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Owner       ledger.Principal
	Logger      *slog.Logger
}

func (u SetMarketplaceUseCase) Execute(ctx context.Context, cmd SetMarketplaceCommand) error {
	logger := application.ResolveLogger(u.Logger)

	if ledger.IsZero(u.Owner) || cmd.Caller != u.Owner {
		return domainerrors.ErrNotRegistryOwner
	}
	if ledger.IsZero(cmd.Operator) {
		return domainerrors.ErrZeroMarketplace
	}

	err := u.Transactor.WithinTx(ctx, func(ctx context.Context) error {
		event, err := application.NewEvent(ctx, u.IDGenerator,
			contractsv1.EventTypeMarketplaceOperatorSet,
			"operator",
			cmd.Operator.Hex(),
			application.Now(u.Clock),
			contractsv1.MarketplaceOperatorSet{Operator: cmd.Operator.Hex()},
		)
		if err != nil {
			return err
		}
		return u.Repository.SaveMarketplaceOperatorWithOutbox(ctx, cmd.Operator, event)
	})
	if err != nil {
		logger.Error("set marketplace operator failed",
			"event", "asset_marketplace_set_failed",
			"module", "provenance/asset-registry",
			"layer", "application",
			"operator", cmd.Operator.Hex(),
			"error", err.Error(),
		)
		return err
	}

	logger.Info("marketplace operator set",
		"event", "asset_marketplace_set",
		"module", "provenance/asset-registry",
		"layer", "application",
		"operator", cmd.Operator.Hex(),
	)
	return nil
}
