package model

import "github.com/google/uuid"

// NewID returns a time-ordered unique id (UUIDv7).
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}
