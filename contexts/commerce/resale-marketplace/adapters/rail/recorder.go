package rail

import (
	"context"
	"log/slog"
	"sync"

	ledger "provenance/contracts/ledger/v1"
	"provenance/internal/platform/metrics"
)

// Recorder is the in-process payment rail. It settles payouts by recording
// the cumulative amount sent to each payee; deployments that move real value
// replace it with a rail bound to their payment network.
type Recorder struct {
	Metrics *metrics.Metrics
	Logger  *slog.Logger

	mu   sync.Mutex
	sent map[ledger.Principal]ledger.Amount
}

func NewRecorder(m *metrics.Metrics, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		Metrics: m,
		Logger:  logger,
		sent:    make(map[ledger.Principal]ledger.Amount),
	}
}

func (r *Recorder) Send(ctx context.Context, payee ledger.Principal, amount ledger.Amount) error {
	if err := ctx.Err(); err != nil {
		r.Metrics.ObservePayout("cancelled")
		return err
	}

	r.mu.Lock()
	total, overflow := ledger.Sum(r.sent[payee], amount)
	if !overflow {
		r.sent[payee] = total
	}
	r.mu.Unlock()
	if overflow {
		r.Metrics.ObservePayout("failed")
		return ledger.ErrAmountOverflow
	}

	r.Metrics.ObservePayout("sent")
	r.Logger.Info("payout sent",
		"event", "escrow_payout_sent",
		"module", "commerce/resale-marketplace",
		"layer", "adapter",
		"payee", payee.Hex(),
		"amount_wei", ledger.FormatWei(amount),
	)
	return nil
}

// SentTo returns the cumulative amount paid to payee.
func (r *Recorder) SentTo(payee ledger.Principal) ledger.Amount {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sent[payee]
}
