package utils

import "github.com/google/uuid"

// UUIDGenerator issues record identifiers. Version 7 UUIDs are used so ids
// sort roughly by creation time; a random v4 is the fallback.
type UUIDGenerator struct {
}

// NewUUIDGenerator returns a ready-to-use generator.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a new UUID string.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
