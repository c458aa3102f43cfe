package entities

import (
	"time"

	domainerrors "provenance/contexts/provenance/theft-registry/domain/errors"
	ledger "provenance/contracts/ledger/v1"
)

// TheftFlag is the stolen state of one serial id. A serial that was never
// flagged is represented by the zero value with Stolen=false.
type TheftFlag struct {
	SerialID  string
	Stolen    bool
	UpdatedBy ledger.Principal
	UpdatedAt time.Time
}

func (f TheftFlag) MarkStolen(actor ledger.Principal, at time.Time) (TheftFlag, error) {
	if f.Stolen {
		return TheftFlag{}, domainerrors.ErrAlreadyStolen
	}
	f.Stolen = true
	f.UpdatedBy = actor
	f.UpdatedAt = at.UTC()
	return f, nil
}

func (f TheftFlag) MarkRecovered(actor ledger.Principal, at time.Time) (TheftFlag, error) {
	if !f.Stolen {
		return TheftFlag{}, domainerrors.ErrNotStolen
	}
	f.Stolen = false
	f.UpdatedBy = actor
	f.UpdatedAt = at.UTC()
	return f, nil
}
