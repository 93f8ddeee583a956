package book

import (
	"time"

	"github.com/google/uuid"
)

type Book struct {
	ID            uuid.UUID
	Title         string
	Author        string
	Price         *float32
	PublishedYear *int
	Genre         *string
	Description   *string
	ImageURL      *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type CreateBookRequest struct {
	Title         string   `validate:"required,min=2"`
	Author        string   `validate:"required,min=2"`
	Price         *float32 `validate:"required,gt=0"`
	PublishedYear *int     `validate:"omitempty,gte=1000,lte=2100"`
	Genre         *string
	Description   *string
	ImageURL      *string `validate:"omitempty,url"`
}

// UpdateBookRequest is a partial patch: nil fields are left untouched,
// non-nil fields overwrite the stored value.
type UpdateBookRequest struct {
	Title         *string  `validate:"omitempty,min=2"`
	Author        *string  `validate:"omitempty,min=2"`
	Price         *float32 `validate:"omitempty,gt=0"`
	PublishedYear *int     `validate:"omitempty,gte=1000,lte=2100"`
	Genre         *string
	Description   *string
	ImageURL      *string `validate:"omitempty,url"`
}

/* Verifies if all required entry fields are filled and returns a warning message if not. */
func FilledFields(bookEntry CreateBookRequest) error {
	if bookEntry.Title == "" {
		return ErrResponseBookEntryBlankFields
	}
	if bookEntry.Author == "" {
		return ErrResponseBookEntryBlankFields
	}
	if bookEntry.Price == nil {
		return ErrResponseBookEntryBlankFields
	}

	return nil
}

/* Reports whether a raw identifier conforms to the storage identifier syntax. Pure, no side effects. */
func IsValidID(raw string) bool {
	_, err := uuid.Parse(raw)
	return err == nil
}

/* Parses an externally supplied identifier. Callers fail fast on the returned
error and never reach storage with a malformed ID. */
func ParseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrResponseIDInvalidFormat
	}
	return id, nil
}
