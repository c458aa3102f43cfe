package httptransport

import "time"

type MintRequest struct {
	To          string `json:"to"`
	SerialID    string `json:"serial_id"`
	MetadataURI string `json:"metadata_uri,omitempty"`
}

// AssetResponse carries the full record; approved_operator is empty when no
// approval is outstanding.
type AssetResponse struct {
	SerialID         string    `json:"serial_id"`
	TokenID          uint64    `json:"token_id"`
	Minter           string    `json:"minter"`
	Owner            string    `json:"owner"`
	ApprovedOperator string    `json:"approved_operator,omitempty"`
	MetadataURI      string    `json:"metadata_uri,omitempty"`
	MintedAt         time.Time `json:"minted_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type SetMarketplaceRequest struct {
	Operator string `json:"operator"`
}

type MarketplaceResponse struct {
	Operator string `json:"operator"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
