package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return id
}

// ParseID parses a calculation identifier. Malformed or empty identifiers
// cannot name a stored record and are reported as not found.
func ParseID(s string) (uuid.UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return uuid.Nil, fmt.Errorf("%w: empty id", ErrNotFound)
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, NewNotFoundError("calculation", s)
	}
	return id, nil
}
