package errors

import ledger "provenance/contracts/ledger/v1"

var (
	ErrNotTokenOwner = ledger.NewFault(ledger.KindAuthorization, "caller is not the token owner")
	ErrAlreadyStolen = ledger.NewFault(ledger.KindStateConflict, "already flagged as stolen")
	ErrNotStolen     = ledger.NewFault(ledger.KindStateConflict, "not flagged as stolen")
)
