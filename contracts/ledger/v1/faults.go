package v1

import "errors"

// Kind is the stable, machine-checkable class of a ledger failure.
type Kind string

const (
	KindAuthorization     Kind = "authorization"
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindStateConflict     Kind = "state_conflict"
	KindStolenAsset       Kind = "stolen_asset"
	KindInsufficientFunds Kind = "insufficient_funds"
)

// Fault is a typed ledger failure. Two faults match under errors.Is when the
// kinds are equal and the target either has no reason or the same reason, so
// kind-only sentinels below match every fault of that kind.
type Fault struct {
	Kind   Kind
	Reason string
}

func NewFault(kind Kind, reason string) *Fault {
	return &Fault{Kind: kind, Reason: reason}
}

func (f *Fault) Error() string {
	if f.Reason == "" {
		return string(f.Kind)
	}
	return f.Reason
}

func (f *Fault) Is(target error) bool {
	other, ok := target.(*Fault)
	if !ok {
		return false
	}
	if other.Kind != f.Kind {
		return false
	}
	return other.Reason == "" || other.Reason == f.Reason
}

var (
	ErrAuthorization     = &Fault{Kind: KindAuthorization}
	ErrValidation        = &Fault{Kind: KindValidation}
	ErrNotFound          = &Fault{Kind: KindNotFound}
	ErrStateConflict     = &Fault{Kind: KindStateConflict}
	ErrStolenAsset       = &Fault{Kind: KindStolenAsset}
	ErrInsufficientFunds = &Fault{Kind: KindInsufficientFunds}
)

// KindOf returns the kind of the first Fault in err's chain.
func KindOf(err error) (Kind, bool) {
	var fault *Fault
	if errors.As(err, &fault) {
		return fault.Kind, true
	}
	return "", false
}
