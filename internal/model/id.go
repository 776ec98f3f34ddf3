package model

import "github.com/google/uuid"

// NewID returns a UUIDv7: a millisecond timestamp prefix followed by random
// bits, so ids created in the same millisecond still never collide.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
