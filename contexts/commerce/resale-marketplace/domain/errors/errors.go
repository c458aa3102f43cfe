package errors

import ledger "provenance/contracts/ledger/v1"

var (
	ErrNotAssetOwner          = ledger.NewFault(ledger.KindAuthorization, "caller is not the token owner")
	ErrMarketplaceNotApproved = ledger.NewFault(ledger.KindAuthorization, "marketplace is not approved for this token")
	ErrNotSeller              = ledger.NewFault(ledger.KindAuthorization, "caller is not the listing seller")
	ErrNotDesignatedBuyer     = ledger.NewFault(ledger.KindAuthorization, "caller is not the designated buyer")
	ErrZeroPrice              = ledger.NewFault(ledger.KindValidation, "price must be greater than zero")
	ErrPriceOverflow          = ledger.NewFault(ledger.KindValidation, "price and royalty exceed 256 bits")
	ErrBalanceOverflow        = ledger.NewFault(ledger.KindValidation, "balance exceeds 256 bits")
	ErrZeroPayee              = ledger.NewFault(ledger.KindValidation, "payee address cannot be zero")
	ErrWatchNotListed         = ledger.NewFault(ledger.KindNotFound, "watch not listed")
	ErrWatchStolen            = ledger.NewFault(ledger.KindStolenAsset, "watch is registered as stolen")
	ErrInsufficientFunds      = ledger.NewFault(ledger.KindInsufficientFunds, "insufficient funds")
	ErrNoBalance              = ledger.NewFault(ledger.KindInsufficientFunds, "no balance to withdraw")
)
