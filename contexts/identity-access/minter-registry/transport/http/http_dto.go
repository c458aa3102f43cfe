package httptransport

import "time"

// AddMinterRequest registers a minter. royalty_bps is in basis points.
type AddMinterRequest struct {
	Address    string `json:"address"`
	Brand      string `json:"brand"`
	Location   string `json:"location"`
	RoyaltyBps uint32 `json:"royalty_bps"`
}

// MinterResponse is returned for both registered and unknown addresses;
// is_minter distinguishes them.
type MinterResponse struct {
	Address    string     `json:"address"`
	IsMinter   bool       `json:"is_minter"`
	Brand      string     `json:"brand"`
	Location   string     `json:"location"`
	RoyaltyBps uint32     `json:"royalty_bps"`
	AddedAt    *time.Time `json:"added_at,omitempty"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
