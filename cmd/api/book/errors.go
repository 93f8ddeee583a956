package book

import (
	"fmt"

	"github.com/google/uuid"
)

type ErrResponse struct {
	Code    int    `json:"error_code"`
	Message string `json:"error_message"`
}

func (e ErrResponse) Error() string {
	return e.Message
}

var ErrResponseBookEntryBlankFields = ErrResponse{100, "the fields title and author must be filled and price must be a number."}
var ErrResponseBookNotFound = ErrResponse{101, "book not found"}
var ErrResponseEntryInvalidJSON = ErrResponse{102, "invalid json request."}
var ErrResponseIDInvalidFormat = ErrResponse{103, "the informed ID is not a valid record identifier."}
var ErrResponseBulkEntryEmpty = ErrResponse{104, "bulk insert requires a non-empty array of books."}
var ErrResponseEntryInvalidFields = ErrResponse{105, "one or more fields failed validation: "}
var ErrResponseRequestTimeout = ErrResponse{106, "context deadline exceeded"}
var ErrResponseMissingToken = ErrResponse{107, "a valid bearer token must accompany this call."}
var ErrResponseFromRepository = ErrResponse{108, "error from repository: "}

// ErrCascadeFailed reports the documented partial failure mode of book
// deletion: the book row is already gone, the dependent cart items are not.
// There is no compensating action and no retry.
type ErrCascadeFailed struct {
	bookID uuid.UUID
	cause  error
}

func (e ErrCascadeFailed) Error() string {
	return fmt.Sprintf("book %s deleted but cart cleanup failed: %v", e.bookID, e.cause)
}

func (e ErrCascadeFailed) Unwrap() error {
	return e.cause
}

func NewErrCascadeFailed(bookID uuid.UUID, cause error) ErrCascadeFailed {
	return ErrCascadeFailed{bookID: bookID, cause: cause}
}
