package httptransport

import "time"

// TheftStatusResponse reports the stolen flag of a serial id. updated_by and
// updated_at are omitted for serials that were never flagged.
type TheftStatusResponse struct {
	SerialID  string     `json:"serial_id"`
	Stolen    bool       `json:"stolen"`
	UpdatedBy string     `json:"updated_by,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
