package model

import "time"

// Snapshot is the recorded portfolio totals for a single date.
// Snapshots are a log of past computations; current values are always recomputed.
type Snapshot struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Invested  float64   `json:"invested"`
	Current   float64   `json:"current"`
	Profit    float64   `json:"profit"`
	Count     int       `json:"count"` // Number of investments at capture time
	CreatedAt time.Time `json:"createdAt"`
}
