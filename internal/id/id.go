package id

import "github.com/google/uuid"

// New returns a fresh transaction ID. Random UUIDs replaced an earlier
// timestamp+description-hash scheme that collided when similar entries
// arrived within the same second.
func New() string {
	return uuid.NewString()
}

// Valid reports whether s parses as a generated transaction ID.
func Valid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
