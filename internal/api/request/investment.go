package request

// CreateInvestmentRequest represents the request body for creating an investment.
// Field names follow the ledger blob used by the front end.
type CreateInvestmentRequest struct {
	ID                string  `json:"id,omitempty"` // Optional, a UUID is assigned when empty
	Name              string  `json:"name"`
	Category          string  `json:"category"`
	Invested          float64 `json:"invested"`
	Current           float64 `json:"current"`
	Date              string  `json:"date"`
	Roi               float64 `json:"roi"`
	RecurringType     string  `json:"recurringType"`
	Sip               float64 `json:"sip"`
	RecurringInterval int     `json:"recurringInterval"`
	Tag               string  `json:"tag"`
	Notes             string  `json:"notes"`
}

// UpdateInvestmentRequest represents a partial update. Only non-nil fields are applied.
// An empty Date clears the start date.
type UpdateInvestmentRequest struct {
	Name              *string  `json:"name,omitempty"`
	Category          *string  `json:"category,omitempty"`
	Invested          *float64 `json:"invested,omitempty"`
	Current           *float64 `json:"current,omitempty"`
	Date              *string  `json:"date,omitempty"`
	Roi               *float64 `json:"roi,omitempty"`
	RecurringType     *string  `json:"recurringType,omitempty"`
	Sip               *float64 `json:"sip,omitempty"`
	RecurringInterval *int     `json:"recurringInterval,omitempty"`
	Tag               *string  `json:"tag,omitempty"`
	Notes             *string  `json:"notes,omitempty"`
}
