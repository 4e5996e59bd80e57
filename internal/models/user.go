package models

// User is an API operator allowed to trigger transmissions when auth is on.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
