package uid

import "github.com/google/uuid"

// UUID returns time-ordered version 7 ids. A failed v7 read (clock or
// entropy) degrades to a random v4 instead of an empty id.
type UUID struct{}

func NewUUID() UUID { return UUID{} }

func (UUID) Generate() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.New().String()
}
