package book

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ServiceAPI interface {
	CreateBook(ctx context.Context, bookEntry CreateBookRequest) (Book, error)
	CreateBooks(ctx context.Context, bookEntries []CreateBookRequest) (int, error)
	ListBooks(ctx context.Context) ([]Book, error)
	GetBook(ctx context.Context, rawID string) (Book, error)
	UpdateBook(ctx context.Context, rawID string, patch UpdateBookRequest) error
	DeleteBook(ctx context.Context, rawID string) error
	ListCart(ctx context.Context) ([]CartItem, error)
	AddToCart(ctx context.Context, req AddToCartRequest) (CartItem, error)
	RemoveCartItem(ctx context.Context, rawID string) error
}

// Repository is the document-collection contract the service runs on:
// insert one/many, find all, find by id, partial update, delete by id and
// delete many by filter. Both the Postgres and the in-memory store satisfy it.
type Repository interface {
	CreateBook(ctx context.Context, bookEntry Book) (Book, error)
	CreateBooks(ctx context.Context, bookEntries []Book) (int, error)
	ListBooks(ctx context.Context) ([]Book, error)
	GetBookByID(ctx context.Context, id uuid.UUID) (Book, error)
	UpdateBook(ctx context.Context, id uuid.UUID, patch UpdateBookRequest, updatedAt time.Time) error
	DeleteBook(ctx context.Context, id uuid.UUID) error
	CreateCartItem(ctx context.Context, item CartItem) (CartItem, error)
	ListCartItems(ctx context.Context) ([]CartItem, error)
	DeleteCartItem(ctx context.Context, id uuid.UUID) error
	DeleteCartItemsByBookID(ctx context.Context, bookID uuid.UUID) (int, error)
}

type Notifier interface {
	BookCreated(ctx context.Context, title string, author string) error
}

type Service struct {
	repo        Repository
	ntfy        Notifier
	ntfyTimeout time.Duration
	validate    *validator.Validate
}

/* Builds the service over an explicitly injected repository. With strict
enabled, create/update/add-to-cart payloads are checked beyond the lenient
defaults. */
func NewService(repo Repository, ntfy Notifier, notificationsTimeout time.Duration, strict bool) *Service {
	s := &Service{repo: repo, ntfy: ntfy, ntfyTimeout: notificationsTimeout}
	if strict {
		s.validate = validator.New(validator.WithRequiredStructEnabled())
	}
	return s
}

/* Validates the entry, stamps the timestamp pair and stores a new book. */
func (s *Service) CreateBook(ctx context.Context, bookEntry CreateBookRequest) (Book, error) {
	if err := FilledFields(bookEntry); err != nil {
		return Book{}, err
	}
	if err := s.checkStrict(bookEntry); err != nil {
		return Book{}, err
	}

	createdAt := time.Now().UTC().Round(time.Millisecond)
	newBook := Book{
		ID:            uuid.New(),
		Title:         bookEntry.Title,
		Author:        bookEntry.Author,
		Price:         bookEntry.Price,
		PublishedYear: bookEntry.PublishedYear,
		Genre:         bookEntry.Genre,
		Description:   bookEntry.Description,
		ImageURL:      bookEntry.ImageURL,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}

	storedBook, err := s.repo.CreateBook(ctx, newBook)
	if err != nil {
		return Book{}, repositoryError("CreateBook", err)
	}

	ntfyCtx, cancel := context.WithTimeout(context.Background(), s.ntfyTimeout)
	defer cancel()
	if err := s.ntfy.BookCreated(ntfyCtx, storedBook.Title, storedBook.Author); err != nil {
		log.Println(err)
	}

	return storedBook, nil
}

/* Stores a batch of books in a single insert and returns the inserted count.
The batch shape is checked up front; the per-item field validation of the
single-create path does not run here in lenient mode, since callers of the
bulk endpoint send pre-validated batches. */
func (s *Service) CreateBooks(ctx context.Context, bookEntries []CreateBookRequest) (int, error) {
	if len(bookEntries) == 0 {
		return 0, ErrResponseBulkEntryEmpty
	}
	for _, bookEntry := range bookEntries {
		if err := s.checkStrict(bookEntry); err != nil {
			return 0, err
		}
	}

	createdAt := time.Now().UTC().Round(time.Millisecond)
	newBooks := make([]Book, 0, len(bookEntries))
	for _, bookEntry := range bookEntries {
		newBooks = append(newBooks, Book{
			ID:            uuid.New(),
			Title:         bookEntry.Title,
			Author:        bookEntry.Author,
			Price:         bookEntry.Price,
			PublishedYear: bookEntry.PublishedYear,
			Genre:         bookEntry.Genre,
			Description:   bookEntry.Description,
			ImageURL:      bookEntry.ImageURL,
			CreatedAt:     createdAt,
			UpdatedAt:     createdAt,
		})
	}

	count, err := s.repo.CreateBooks(ctx, newBooks)
	if err != nil {
		return 0, repositoryError("CreateBooks", err)
	}

	return count, nil
}

/* Returns every stored book in the storage's natural order. */
func (s *Service) ListBooks(ctx context.Context) ([]Book, error) {
	books, err := s.repo.ListBooks(ctx)
	if err != nil {
		return nil, repositoryError("ListBooks", err)
	}
	return books, nil
}

func (s *Service) GetBook(ctx context.Context, rawID string) (Book, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return Book{}, err
	}

	foundBook, err := s.repo.GetBookByID(ctx, id)
	if err != nil {
		return Book{}, repositoryError("GetBook", err)
	}

	return foundBook, nil
}

/* Applies the patch as a partial merge over the stored record and refreshes
its updating time. Succeeds even when zero fields change or no record
matches: the operation is an acknowledgement, not a fetch. */
func (s *Service) UpdateBook(ctx context.Context, rawID string, patch UpdateBookRequest) error {
	id, err := ParseID(rawID)
	if err != nil {
		return err
	}

	if s.validate != nil {
		if err := s.validate.Struct(patch); err != nil {
			return ErrResponse{
				Code:    ErrResponseEntryInvalidFields.Code,
				Message: ErrResponseEntryInvalidFields.Message + err.Error(),
			}
		}
	}

	updatedAt := time.Now().UTC().Round(time.Millisecond)
	if err := s.repo.UpdateBook(ctx, id, patch, updatedAt); err != nil {
		return repositoryError("UpdateBook", err)
	}

	return nil
}

/* Removes the book, then its dependent cart items. The two steps are
independent storage calls with no transaction around them, in a fixed order:
the book goes first, so a failed second step leaves orphaned cart items
rather than items referencing a book that failed to delete. The cascade runs
regardless of whether the book record existed. */
func (s *Service) DeleteBook(ctx context.Context, rawID string) error {
	id, err := ParseID(rawID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteBook(ctx, id); err != nil {
		return repositoryError("DeleteBook", err)
	}

	if _, err := s.repo.DeleteCartItemsByBookID(ctx, id); err != nil {
		return NewErrCascadeFailed(id, err)
	}

	return nil
}

func (s *Service) checkStrict(bookEntry CreateBookRequest) error {
	if s.validate == nil {
		return nil
	}
	if err := s.validate.Struct(bookEntry); err != nil {
		return ErrResponse{
			Code:    ErrResponseEntryInvalidFields.Code,
			Message: ErrResponseEntryInvalidFields.Message + err.Error(),
		}
	}
	return nil
}

/* Maps a storage error to the caller-facing taxonomy: timeouts keep their
context error, domain sentinels pass through unmodified, anything else is
surfaced as a repository failure. */
func repositoryError(call string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("timeout on call to %s: %w", call, err)
	}

	var errResp ErrResponse
	if errors.As(err, &errResp) {
		return errResp
	}

	return ErrResponse{
		Code:    ErrResponseFromRepository.Code,
		Message: ErrResponseFromRepository.Message + err.Error(),
	}
}
