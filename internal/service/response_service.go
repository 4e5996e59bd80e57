package service

import "time"

// HistoryFilter selects archived events by time range and direction.
type HistoryFilter struct {
	From      time.Time // inclusive; zero means no lower bound
	To        time.Time // inclusive; zero means no upper bound
	Direction string    // "", "TX", "RX"
	Limit     int       // <= 0 means MaxHistoryLimit
}

// AuthConfig configures token issuing.
type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}
