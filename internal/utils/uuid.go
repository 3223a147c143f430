package utils

import "github.com/google/uuid"

// IDGenerator produces unique identifiers for stored rows.
type IDGenerator interface {
	Generate() string
}

// UUIDGenerator generates time-ordered UUIDv7 strings, so rows inserted
// later sort after earlier ones.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7, or a random UUIDv4 if the clock source fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// StaticIDGenerator returns the same identifier every time. It makes
// generated statements predictable in tests.
type StaticIDGenerator string

func (g StaticIDGenerator) Generate() string {
	return string(g)
}
