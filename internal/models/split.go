package models

import "github.com/shopspring/decimal"

// Split represents a shared trip or event.
type Split struct {
	// ID is the unique identifier for the split (UUID format).
	ID string

	// Title is the display name of the split (e.g., "Lisbon 2026").
	Title string

	// Currency is the ISO 4217 code every expense is stored in.
	Currency string

	// Budget is the spending ceiling for the split.
	Budget decimal.Decimal

	// Participants is the ordered list of participant identifiers.
	// Order is kept for display and does not affect balances.
	Participants []string

	// CreatedAt is the Unix timestamp when the split was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last change.
	UpdatedAt int64
}

// HasParticipant reports whether id belongs to the split.
func (s *Split) HasParticipant(id string) bool {
	for _, p := range s.Participants {
		if p == id {
			return true
		}
	}
	return false
}
