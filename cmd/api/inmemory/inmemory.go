package inmemory

import (
	"context"
	"fmt"
	"time"

	"github.com/bookshop-service/cmd/api/book"
	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"
)

// InMemoryStore implements book.Repository over go-memdb. Used by tests and
// by local runs that do not want a Postgres around.
type InMemoryStore struct {
	db *memdb.MemDB
}

func NewInMemoryStore() (*InMemoryStore, error) {
	schema := &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			"book": {
				Name: "book",
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
				},
			},
			"cart": {
				Name: "cart",
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
					"book_id": {
						Name:    "book_id",
						Unique:  false,
						Indexer: &memdb.StringFieldIndex{Field: "BookID"},
					},
				},
			},
		},
	}

	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize in-memory database: %w", err)
	}
	return &InMemoryStore{db: db}, nil
}

// memdb indexes on string fields, so records are stored with stringified IDs.

type AdaptedBook struct {
	ID            string
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

func adaptBookIdToString(bookEntry book.Book) AdaptedBook {
	return AdaptedBook{
		ID:            bookEntry.ID.String(),
		Title:         bookEntry.Title,
		Author:        bookEntry.Author,
		Price:         bookEntry.Price,
		PublishedYear: bookEntry.PublishedYear,
		Genre:         bookEntry.Genre,
		Description:   bookEntry.Description,
		ImageURL:      bookEntry.ImageURL,
		CreatedAt:     bookEntry.CreatedAt,
		UpdatedAt:     bookEntry.UpdatedAt,
	}
}

func adaptBookIdToUUID(adptBook AdaptedBook) book.Book {
	return book.Book{
		ID:            uuid.MustParse(adptBook.ID),
		Title:         adptBook.Title,
		Author:        adptBook.Author,
		Price:         adptBook.Price,
		PublishedYear: adptBook.PublishedYear,
		Genre:         adptBook.Genre,
		Description:   adptBook.Description,
		ImageURL:      adptBook.ImageURL,
		CreatedAt:     adptBook.CreatedAt,
		UpdatedAt:     adptBook.UpdatedAt,
	}
}

type AdaptedCartItem struct {
	ID       string
	BookID   string
	Quantity int
}

func adaptCartItemIdToString(item book.CartItem) AdaptedCartItem {
	return AdaptedCartItem{
		ID:       item.ID.String(),
		BookID:   item.BookID.String(),
		Quantity: item.Quantity,
	}
}

func adaptCartItemIdToUUID(item AdaptedCartItem) book.CartItem {
	return book.CartItem{
		ID:       uuid.MustParse(item.ID),
		BookID:   uuid.MustParse(item.BookID),
		Quantity: item.Quantity,
	}
}

// -- Books --

func (store *InMemoryStore) CreateBook(ctx context.Context, bookEntry book.Book) (book.Book, error) {
	txn := store.db.Txn(true)
	defer txn.Abort()

	if err := txn.Insert("book", adaptBookIdToString(bookEntry)); err != nil {
		return book.Book{}, fmt.Errorf("storing book on db: %w", err)
	}

	txn.Commit()
	return bookEntry, nil
}

func (store *InMemoryStore) CreateBooks(ctx context.Context, bookEntries []book.Book) (int, error) {
	txn := store.db.Txn(true)
	defer txn.Abort()

	for _, bookEntry := range bookEntries {
		if err := txn.Insert("book", adaptBookIdToString(bookEntry)); err != nil {
			return 0, fmt.Errorf("storing books on db: %w", err)
		}
	}

	txn.Commit()
	return len(bookEntries), nil
}

func (store *InMemoryStore) ListBooks(ctx context.Context) ([]book.Book, error) {
	txn := store.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get("book", "id")
	if err != nil {
		return nil, fmt.Errorf("listing books from db: %w", err)
	}

	books := []book.Book{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		books = append(books, adaptBookIdToUUID(obj.(AdaptedBook)))
	}

	return books, nil
}

func (store *InMemoryStore) GetBookByID(ctx context.Context, id uuid.UUID) (book.Book, error) {
	txn := store.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First("book", "id", id.String())
	if err != nil {
		return book.Book{}, fmt.Errorf("searching by ID: %w", err)
	}
	if raw == nil {
		return book.Book{}, fmt.Errorf("searching by ID: %w", book.ErrResponseBookNotFound)
	}

	return adaptBookIdToUUID(raw.(AdaptedBook)), nil
}

func (store *InMemoryStore) UpdateBook(ctx context.Context, id uuid.UUID, patch book.UpdateBookRequest, updatedAt time.Time) error {
	txn := store.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First("book", "id", id.String())
	if err != nil {
		return fmt.Errorf("updating book on db: %w", err)
	}
	if raw == nil {
		// Missing record: the update is still acknowledged.
		return nil
	}

	updatedBook := raw.(AdaptedBook)
	if patch.Title != nil {
		updatedBook.Title = *patch.Title
	}
	if patch.Author != nil {
		updatedBook.Author = *patch.Author
	}
	if patch.Price != nil {
		updatedBook.Price = patch.Price
	}
	if patch.PublishedYear != nil {
		updatedBook.PublishedYear = patch.PublishedYear
	}
	if patch.Genre != nil {
		updatedBook.Genre = patch.Genre
	}
	if patch.Description != nil {
		updatedBook.Description = patch.Description
	}
	if patch.ImageURL != nil {
		updatedBook.ImageURL = patch.ImageURL
	}
	//CreatedAt will not change
	updatedBook.UpdatedAt = updatedAt

	if err := txn.Insert("book", updatedBook); err != nil {
		return fmt.Errorf("updating book on db: %w", err)
	}

	txn.Commit()
	return nil
}

func (store *InMemoryStore) DeleteBook(ctx context.Context, id uuid.UUID) error {
	txn := store.db.Txn(true)
	defer txn.Abort()

	if _, err := txn.DeleteAll("book", "id", id.String()); err != nil {
		return fmt.Errorf("deleting book from db: %w", err)
	}

	txn.Commit()
	return nil
}

// -- Cart --

func (store *InMemoryStore) CreateCartItem(ctx context.Context, item book.CartItem) (book.CartItem, error) {
	txn := store.db.Txn(true)
	defer txn.Abort()

	if err := txn.Insert("cart", adaptCartItemIdToString(item)); err != nil {
		return book.CartItem{}, fmt.Errorf("storing cart item on db: %w", err)
	}

	txn.Commit()
	return item, nil
}

func (store *InMemoryStore) ListCartItems(ctx context.Context) ([]book.CartItem, error) {
	txn := store.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get("cart", "id")
	if err != nil {
		return nil, fmt.Errorf("listing cart items from db: %w", err)
	}

	items := []book.CartItem{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		items = append(items, adaptCartItemIdToUUID(obj.(AdaptedCartItem)))
	}

	return items, nil
}

func (store *InMemoryStore) DeleteCartItem(ctx context.Context, id uuid.UUID) error {
	txn := store.db.Txn(true)
	defer txn.Abort()

	if _, err := txn.DeleteAll("cart", "id", id.String()); err != nil {
		return fmt.Errorf("deleting cart item from db: %w", err)
	}

	txn.Commit()
	return nil
}

func (store *InMemoryStore) DeleteCartItemsByBookID(ctx context.Context, bookID uuid.UUID) (int, error) {
	txn := store.db.Txn(true)
	defer txn.Abort()

	count, err := txn.DeleteAll("cart", "book_id", bookID.String())
	if err != nil {
		return 0, fmt.Errorf("deleting cart items by book from db: %w", err)
	}

	txn.Commit()
	return count, nil
}
