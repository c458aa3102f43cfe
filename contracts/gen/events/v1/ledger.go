package v1

// Ledger event types. Payload field order matches the published catalogue.
// Addresses are 0x-prefixed hex, amounts are base-10 wei strings.
const (
	EventTypeMinterAdded            = "MinterAdded"
	EventTypeMinterRemoved          = "MinterRemoved"
	EventTypeTokenMinted            = "TokenMinted"
	EventTypeTokenDestroyed         = "TokenDestroyed"
	EventTypeTokenTransferred       = "TokenTransferred"
	EventTypeMarketplaceOperatorSet = "MarketplaceOperatorSet"
	EventTypeTokenFlaggedAsStolen   = "TokenFlaggedAsStolen"
	EventTypeTokenUnflaggedAsStolen = "TokenUnflaggedAsStolen"
	EventTypeWatchListed            = "WatchListed"
	EventTypeListingCancelled       = "ListingCancelled"
	EventTypeWatchTransferred       = "WatchTransferred"
	EventTypePayoutWithdrawn        = "PayoutWithdrawn"
)

// LedgerEventTypes lists every event type the ledger publishes.
var LedgerEventTypes = []string{
	EventTypeMinterAdded,
	EventTypeMinterRemoved,
	EventTypeTokenMinted,
	EventTypeTokenDestroyed,
	EventTypeTokenTransferred,
	EventTypeMarketplaceOperatorSet,
	EventTypeTokenFlaggedAsStolen,
	EventTypeTokenUnflaggedAsStolen,
	EventTypeWatchListed,
	EventTypeListingCancelled,
	EventTypeWatchTransferred,
	EventTypePayoutWithdrawn,
}

type MinterAdded struct {
	Address string `json:"address"`
}

type MinterRemoved struct {
	Address string `json:"address"`
}

type TokenMinted struct {
	Minter   string `json:"minter"`
	To       string `json:"to"`
	SerialID string `json:"serial_id"`
}

type TokenDestroyed struct {
	SerialID string `json:"serial_id"`
}

type TokenTransferred struct {
	SerialID string `json:"serial_id"`
	From     string `json:"from"`
	To       string `json:"to"`
}

type MarketplaceOperatorSet struct {
	Operator string `json:"operator"`
}

type TokenFlaggedAsStolen struct {
	SerialID string `json:"serial_id"`
	Actor    string `json:"actor"`
}

type TokenUnflaggedAsStolen struct {
	SerialID string `json:"serial_id"`
	Actor    string `json:"actor"`
}

type WatchListed struct {
	SerialID        string `json:"serial_id"`
	Seller          string `json:"seller"`
	Price           string `json:"price"`
	RoyaltyAmount   string `json:"royalty_amount"`
	DesignatedBuyer string `json:"designated_buyer"`
}

type ListingCancelled struct {
	SerialID string `json:"serial_id"`
	Seller   string `json:"seller"`
}

type WatchTransferred struct {
	SerialID      string `json:"serial_id"`
	From          string `json:"from"`
	To            string `json:"to"`
	Price         string `json:"price"`
	RoyaltyAmount string `json:"royalty_amount"`
}

type PayoutWithdrawn struct {
	Payee  string `json:"payee"`
	Amount string `json:"amount"`
}
