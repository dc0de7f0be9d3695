package services

import "github.com/google/uuid"

// IDGenerator mints entity ids. The only contract is uniqueness within
// the process; the format is unconstrained, which keeps tests free to
// use readable ids.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator is the production generator.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}
