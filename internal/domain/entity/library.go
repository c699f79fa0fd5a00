package entity

import "time"

// Library is a physical branch holding book copies. Name is unique.
type Library struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
