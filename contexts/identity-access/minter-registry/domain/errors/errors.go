package errors

import ledger "provenance/contracts/ledger/v1"

var (
	ErrNotRegistryOwner = ledger.NewFault(ledger.KindAuthorization, "caller is not the registry owner")
	ErrRoyaltyTooHigh   = ledger.NewFault(ledger.KindValidation, "royalty percentage exceeds 100%")
	ErrEmptyBrand       = ledger.NewFault(ledger.KindValidation, "brand name cannot be empty")
	ErrEmptyLocation    = ledger.NewFault(ledger.KindValidation, "location cannot be empty")
	ErrZeroMinter       = ledger.NewFault(ledger.KindValidation, "minter address cannot be zero")
	ErrMinterExists     = ledger.NewFault(ledger.KindStateConflict, "minter already exists")
	ErrMinterNotFound   = ledger.NewFault(ledger.KindNotFound, "minter does not exist")
)
