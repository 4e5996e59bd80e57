package models

import "time"

// Event directions.
const (
	DirectionTX = "TX"
	DirectionRX = "RX"
)

// IREvent is one archived transmission or reception.
type IREvent struct {
	EventID    string    `json:"event_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Direction  string    `json:"direction"` // TX | RX
	Protocol   string    `json:"protocol"`
	Code       string    `json:"code"` // 0x-prefixed uppercase hex
	Repeat     int       `json:"repeat,omitempty"`
	Line       string    `json:"line"` // the formatted activity log line
}
