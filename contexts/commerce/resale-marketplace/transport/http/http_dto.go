package httptransport

import "time"

// ListWatchRequest prices are ether decimal strings ("1.05").
type ListWatchRequest struct {
	Price           string `json:"price"`
	DesignatedBuyer string `json:"designated_buyer,omitempty"`
}

type ListingResponse struct {
	SerialID        string    `json:"serial_id"`
	TokenID         uint64    `json:"token_id"`
	Seller          string    `json:"seller"`
	Price           string    `json:"price"`
	PriceWei        string    `json:"price_wei"`
	RoyaltyAmount   string    `json:"royalty_amount"`
	RoyaltyWei      string    `json:"royalty_wei"`
	RoyaltyBps      uint32    `json:"royalty_bps"`
	Minter          string    `json:"minter"`
	DesignatedBuyer string    `json:"designated_buyer,omitempty"`
	ListedAt        time.Time `json:"listed_at"`
}

type QuoteResponse struct {
	SerialID string `json:"serial_id"`
	Total    string `json:"total"`
	TotalWei string `json:"total_wei"`
}

type PurchaseRequest struct {
	Payment string `json:"payment"`
}

type PurchaseResponse struct {
	SerialID    string    `json:"serial_id"`
	TokenID     uint64    `json:"token_id"`
	Seller      string    `json:"seller"`
	Buyer       string    `json:"buyer"`
	Minter      string    `json:"minter"`
	PriceWei    string    `json:"price_wei"`
	RoyaltyWei  string    `json:"royalty_wei"`
	PaidWei     string    `json:"paid_wei"`
	ChangeWei   string    `json:"change_wei"`
	PurchasedAt time.Time `json:"purchased_at"`
}

type BalanceResponse struct {
	Address    string `json:"address"`
	Balance    string `json:"balance"`
	BalanceWei string `json:"balance_wei"`
}

type WithdrawResponse struct {
	Payee     string `json:"payee"`
	Amount    string `json:"amount"`
	AmountWei string `json:"amount_wei"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
