package model

import (
	"encoding/json"
	"time"
)

// DateLayout is the calendar date format used for start dates in storage and JSON.
const DateLayout = "2006-01-02"

// RecurringType identifies the contribution schedule of an investment beyond the
// initial amount.
type RecurringType string

const (
	RecurringNone    RecurringType = "none"
	RecurringMonthly RecurringType = "monthly"
	RecurringYearly  RecurringType = "yearly"
	RecurringCustom  RecurringType = "custom"
)

// ParseRecurringType maps a stored or submitted value to a RecurringType.
// Empty and unknown values map to RecurringNone.
func ParseRecurringType(s string) RecurringType {
	switch RecurringType(s) {
	case RecurringMonthly, RecurringYearly, RecurringCustom:
		return RecurringType(s)
	default:
		return RecurringNone
	}
}

// Investment represents one tracked investment from the database.
//
// The JSON field names are the ones of the browser ledger blob
// (invested, current, date, roi, sip, recurringInterval) so records round-trip
// through import and export unchanged.
type Investment struct {
	ID                      string
	Name                    string
	Category                string
	InvestedPrincipal       float64    // Initial one-time contribution
	ManualCurrentValue      float64    // User override, 0 means unset
	StartDate               *time.Time // Date of the initial contribution, nil when unknown
	AnnualRatePercent       float64    // 10 means 10% per year
	RecurringType           RecurringType
	RecurringAmount         float64 // Monthly SIP amount
	RecurringIntervalMonths int     // Only used for RecurringCustom
	Tag                     string
	Notes                   string
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

type investmentJSON struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Category          string        `json:"category"`
	Invested          float64       `json:"invested"`
	Current           float64       `json:"current"`
	Date              string        `json:"date"`
	Roi               float64       `json:"roi"`
	RecurringType     RecurringType `json:"recurringType"`
	Sip               float64       `json:"sip"`
	RecurringInterval int           `json:"recurringInterval"`
	Tag               string        `json:"tag"`
	Notes             string        `json:"notes"`
	CreatedAt         *time.Time    `json:"createdAt,omitempty"`
	UpdatedAt         *time.Time    `json:"updatedAt,omitempty"`
}

// MarshalJSON writes the investment in the ledger blob shape.
func (i Investment) MarshalJSON() ([]byte, error) {
	out := investmentJSON{
		ID:                i.ID,
		Name:              i.Name,
		Category:          i.Category,
		Invested:          i.InvestedPrincipal,
		Current:           i.ManualCurrentValue,
		Roi:               i.AnnualRatePercent,
		RecurringType:     i.RecurringType,
		Sip:               i.RecurringAmount,
		RecurringInterval: i.RecurringIntervalMonths,
		Tag:               i.Tag,
		Notes:             i.Notes,
	}
	if out.RecurringType == "" {
		out.RecurringType = RecurringNone
	}
	if i.StartDate != nil {
		out.Date = i.StartDate.Format(DateLayout)
	}
	if !i.CreatedAt.IsZero() {
		out.CreatedAt = &i.CreatedAt
	}
	if !i.UpdatedAt.IsZero() {
		out.UpdatedAt = &i.UpdatedAt
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the ledger blob shape. A date that does not parse is
// treated as absent.
func (i *Investment) UnmarshalJSON(data []byte) error {
	var in investmentJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*i = Investment{
		ID:                      in.ID,
		Name:                    in.Name,
		Category:                in.Category,
		InvestedPrincipal:       in.Invested,
		ManualCurrentValue:      in.Current,
		AnnualRatePercent:       in.Roi,
		RecurringType:           ParseRecurringType(string(in.RecurringType)),
		RecurringAmount:         in.Sip,
		RecurringIntervalMonths: in.RecurringInterval,
		Tag:                     in.Tag,
		Notes:                   in.Notes,
	}
	if d, err := time.Parse(DateLayout, in.Date); err == nil {
		i.StartDate = &d
	}
	if in.CreatedAt != nil {
		i.CreatedAt = *in.CreatedAt
	}
	if in.UpdatedAt != nil {
		i.UpdatedAt = *in.UpdatedAt
	}
	return nil
}

// InvestmentView is an investment augmented with its derived valuation.
// It is computed on every read and never persisted.
type InvestmentView struct {
	Investment
	InvestedTotal        float64 // Principal plus every recurring contribution made so far
	ComputedCurrentValue float64 // Compounded value of all contributions
	DisplayCurrentValue  float64 // Manual override when set, otherwise computed
	Gain                 float64 // DisplayCurrentValue - InvestedTotal
	ReturnPercent        float64 // Gain relative to InvestedTotal, 0 when nothing invested
}

// MarshalJSON flattens the record fields and the derived values into one object.
func (v InvestmentView) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(v.Investment)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(base, &fields); err != nil {
		return nil, err
	}
	derived := map[string]float64{
		"investedTotal":        v.InvestedTotal,
		"computedCurrentValue": v.ComputedCurrentValue,
		"displayCurrentValue":  v.DisplayCurrentValue,
		"gain":                 v.Gain,
		"returnPercent":        v.ReturnPercent,
	}
	for k, val := range derived {
		raw, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		fields[k] = raw
	}
	return json.Marshal(fields)
}

// CategoryOptions is the default category list offered when adding an investment.
// Categories are free text; the list only seeds the input form.
var CategoryOptions = []string{
	"Bonds",
	"Kite (Stocks, MF, SGB)",
	"NPS",
	"PPF",
	"SSS",
	"PF",
	"FD",
	"ULIP",
	"Gold Physical",
	"Reliance Jewel",
	"LIC",
	"Car",
	"Plot",
	"Bikes",
	"Others",
}

// TagOptions is the default tag list used for filtering.
var TagOptions = []string{
	"long term",
	"short term",
	"child plan",
	"retirement",
}
