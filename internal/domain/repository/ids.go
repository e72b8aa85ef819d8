package repository

import "github.com/google/uuid"

// validID reports whether id can name a stored record. Anything else
// cannot exist, so lookups and deletes short-circuit.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
