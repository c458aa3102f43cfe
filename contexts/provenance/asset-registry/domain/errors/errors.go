package errors

import ledger "provenance/contracts/ledger/v1"

var (
	ErrNotRegistryOwner    = ledger.NewFault(ledger.KindAuthorization, "caller is not the registry owner")
	ErrNotMinter           = ledger.NewFault(ledger.KindAuthorization, "caller is not an authorized minter")
	ErrNotTokenOwner       = ledger.NewFault(ledger.KindAuthorization, "caller is not the token owner")
	ErrNotApprovedOperator = ledger.NewFault(ledger.KindAuthorization, "caller is not the approved operator")
	ErrEmptySerialID       = ledger.NewFault(ledger.KindValidation, "serial id cannot be empty")
	ErrZeroRecipient       = ledger.NewFault(ledger.KindValidation, "recipient address cannot be zero")
	ErrZeroMarketplace     = ledger.NewFault(ledger.KindValidation, "marketplace address cannot be zero")
	ErrSerialAlreadyMinted = ledger.NewFault(ledger.KindValidation, "serial id already minted")
	ErrTokenNotFound       = ledger.NewFault(ledger.KindNotFound, "token does not exist")
	ErrMarketplaceNotSet   = ledger.NewFault(ledger.KindStateConflict, "marketplace address not set")
)
