package model

import (
	"time"
)

// Model holds the columns every table row carries.
type Model struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
}
