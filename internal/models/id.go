package models

import "github.com/google/uuid"

// NewID returns a fresh identifier for messages and notes created at
// runtime. Seed data keeps its legacy fixed ids.
func NewID() string {
	return uuid.NewString()
}
