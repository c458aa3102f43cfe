package commands

import (
	"context"
	"fmt"
	"log/slog"

	application "provenance/contexts/commerce/resale-marketplace/application"
	domainerrors "provenance/contexts/commerce/resale-marketplace/domain/errors"
	"provenance/contexts/commerce/resale-marketplace/ports"
	contractsv1 "provenance/contracts/gen/events/v1"
	ledger "provenance/contracts/ledger/v1"
)

type WithdrawCommand struct {
	Caller ledger.Principal
}

// WithdrawUseCase pays out a payee's escrow balance. The balance is zeroed
// and committed before the rail is called, so a payee that re-enters sees
// nothing left to withdraw. A failed send restores the balance.
type WithdrawUseCase struct {
	Repository  ports.Repository
	Rail        ports.PaymentRail
	Transactor  ports.Transactor
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u WithdrawUseCase) Execute(ctx context.Context, cmd WithdrawCommand) (ledger.Amount, error) {
	logger := application.ResolveLogger(u.Logger)
	if ledger.IsZero(cmd.Caller) {
		return ledger.Amount{}, domainerrors.ErrZeroPayee
	}

	var amount ledger.Amount
	err := u.Transactor.WithinTx(ctx, func(ctx context.Context) error {
		balance, err := u.Repository.GetBalance(ctx, cmd.Caller)
		if err != nil {
			return err
		}
		drained, value, err := balance.Drain(application.Now(u.Clock))
		if err != nil {
			return err
		}
		amount = value
		return u.Repository.SaveBalance(ctx, drained)
	})
	if err != nil {
		logger.Warn("withdraw failed",
			"event", "marketplace_withdraw_failed",
			"module", "commerce/resale-marketplace",
			"layer", "application",
			"payee", cmd.Caller.Hex(),
			"error", err.Error(),
		)
		return ledger.Amount{}, err
	}

	if sendErr := u.Rail.Send(ctx, cmd.Caller, amount); sendErr != nil {
		if restoreErr := u.restore(ctx, cmd.Caller, amount); restoreErr != nil {
			logger.Error("withdraw restore failed",
				"event", "marketplace_withdraw_restore_failed",
				"module", "commerce/resale-marketplace",
				"layer", "application",
				"payee", cmd.Caller.Hex(),
				"amount_wei", ledger.FormatWei(amount),
				"error", restoreErr.Error(),
			)
			return ledger.Amount{}, fmt.Errorf("send payout: %w (restore balance: %v)", sendErr, restoreErr)
		}
		logger.Warn("withdraw send failed",
			"event", "marketplace_withdraw_send_failed",
			"module", "commerce/resale-marketplace",
			"layer", "application",
			"payee", cmd.Caller.Hex(),
			"amount_wei", ledger.FormatWei(amount),
			"error", sendErr.Error(),
		)
		return ledger.Amount{}, fmt.Errorf("send payout: %w", sendErr)
	}

	if err := u.Transactor.WithinTx(ctx, func(ctx context.Context) error {
		event, err := application.NewEvent(ctx, u.IDGenerator,
			contractsv1.EventTypePayoutWithdrawn,
			"payee",
			cmd.Caller.Hex(),
			application.Now(u.Clock),
			contractsv1.PayoutWithdrawn{Payee: cmd.Caller.Hex(), Amount: ledger.FormatWei(amount)},
		)
		if err != nil {
			return err
		}
		return u.Repository.AppendOutbox(ctx, event)
	}); err != nil {
		logger.Error("withdraw event not recorded",
			"event", "marketplace_withdraw_event_failed",
			"module", "commerce/resale-marketplace",
			"layer", "application",
			"payee", cmd.Caller.Hex(),
			"amount_wei", ledger.FormatWei(amount),
			"error", err.Error(),
		)
	}

	logger.Info("payout withdrawn",
		"event", "marketplace_payout_withdrawn",
		"module", "commerce/resale-marketplace",
		"layer", "application",
		"payee", cmd.Caller.Hex(),
		"amount_wei", ledger.FormatWei(amount),
	)
	return amount, nil
}

func (u WithdrawUseCase) restore(ctx context.Context, payee ledger.Principal, amount ledger.Amount) error {
	return u.Transactor.WithinTx(ctx, func(ctx context.Context) error {
		balance, err := u.Repository.GetBalance(ctx, payee)
		if err != nil {
			return err
		}
		balance, err = balance.Credit(amount, application.Now(u.Clock))
		if err != nil {
			return err
		}
		return u.Repository.SaveBalance(ctx, balance)
	})
}
