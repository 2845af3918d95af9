package utils

import "github.com/google/uuid"

// UUIDGenerator issues record identifiers. Version 7 UUIDs sort by creation
// time, which keeps the primary key index append-mostly.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a new UUIDv7, falling back to a random UUIDv4 if the
// clock-based generator fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// IsValidID reports whether id parses as a UUID.
func IsValidID(id string) bool {
	return uuid.Validate(id) == nil
}
