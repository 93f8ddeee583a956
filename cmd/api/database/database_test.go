package database_test

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"os"
	"testing"
	"time"

	"github.com/bookshop-service/cmd/api/book"
	"github.com/bookshop-service/cmd/api/database"
	"github.com/golang-migrate/migrate/v4"
	"github.com/google/uuid"
	"github.com/matryer/is"

	_ "github.com/golang-migrate/migrate/v4/source/file"

	_ "github.com/lib/pq"
)

var store *database.Store
var sqlDB *sql.DB
var ctx context.Context = context.Background()

// TestMain is called before all the tests run.
// Usually is where we add logic to initialise resources.
func TestMain(m *testing.M) {
	// Setting up the database for tests. Without a DATABASE_URL there is
	// nothing to run against, so the whole package is skipped.
	var err error
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		log.Println("DATABASE_URL not set, skipping database tests")
		os.Exit(0)
	}

	sqlDB, err = database.ConnectDb(connStr)
	if err != nil {
		log.Fatalln(err)
	}

	store = database.NewStore(sqlDB)
	path := os.Getenv("DATABASE_MIGRATIONS_PATH")
	err = database.MigrationUp(store, path)
	if err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalln(err)
		}
		log.Println(err)
	}

	os.Exit(m.Run())
}

func newBook(title string) book.Book {
	createdAt := time.Now().UTC().Round(time.Millisecond)
	return book.Book{
		ID:        uuid.New(),
		Title:     title,
		Author:    "database tester",
		Price:     toPointer(float32(40.0)),
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestCreateBook(t *testing.T) {
	// Removing all data from the test database.
	// We don't want to the database to be tainted with
	// this test data in another tests.
	t.Cleanup(func() {
		teardownDB(t)
	})

	t.Run("creates a book without errors", func(t *testing.T) {
		is := is.New(t)

		b := newBook("A new book")

		newBook, err := store.CreateBook(ctx, b)
		is.NoErr(err)
		compareBooks(is, newBook, b)
	})

	t.Run("creates a book with the optional fields filled", func(t *testing.T) {
		is := is.New(t)

		b := newBook("A fully described book")
		b.PublishedYear = toPointer(2015)
		b.Genre = toPointer("programming")
		b.Description = toPointer("a book about Go")
		b.ImageURL = toPointer("https://example.com/cover.png")

		newBook, err := store.CreateBook(ctx, b)
		is.NoErr(err)
		compareBooks(is, newBook, b)
	})
}

func TestCreateBooks(t *testing.T) {
	t.Cleanup(func() {
		teardownDB(t)
	})

	t.Run("creates a batch of books and returns the count", func(t *testing.T) {
		is := is.New(t)

		batch := []book.Book{newBook("first of batch"), newBook("second of batch"), newBook("third of batch")}

		count, err := store.CreateBooks(ctx, batch)
		is.NoErr(err)
		is.Equal(count, 3)

		books, err := store.ListBooks(ctx)
		is.NoErr(err)
		is.Equal(len(books), 3)
	})
}

func TestGetBookByID(t *testing.T) {
	t.Cleanup(func() {
		teardownDB(t)
	})

	t.Run("returns a stored book", func(t *testing.T) {
		is := is.New(t)

		b := newBook("A book to be fetched")
		_, err := store.CreateBook(ctx, b)
		is.NoErr(err)

		foundBook, err := store.GetBookByID(ctx, b.ID)
		is.NoErr(err)
		compareBooks(is, foundBook, b)
	})

	t.Run("searching a non existing book should return a not found error", func(t *testing.T) {
		is := is.New(t)

		_, err := store.GetBookByID(ctx, uuid.New())
		is.True(errors.Is(err, book.ErrResponseBookNotFound))
	})
}

func TestUpdateBook(t *testing.T) {
	t.Cleanup(func() {
		teardownDB(t)
	})

	t.Run("patches only the given fields and refreshes the updating time", func(t *testing.T) {
		is := is.New(t)

		b := newBook("A book to be patched")
		_, err := store.CreateBook(ctx, b)
		is.NoErr(err)

		updatedAt := b.UpdatedAt.Add(time.Second)
		patch := book.UpdateBookRequest{
			Title: toPointer("A patched book"),
			Price: toPointer(float32(55.5)),
		}
		err = store.UpdateBook(ctx, b.ID, patch, updatedAt)
		is.NoErr(err)

		patchedBook, err := store.GetBookByID(ctx, b.ID)
		is.NoErr(err)
		is.Equal(patchedBook.Title, "A patched book")
		is.Equal(patchedBook.Price, toPointer(float32(55.5)))
		is.Equal(patchedBook.Author, b.Author)
		is.True(patchedBook.CreatedAt.Equal(b.CreatedAt))
		is.True(patchedBook.UpdatedAt.After(b.UpdatedAt))
	})

	t.Run("updating a non existing book is still acknowledged", func(t *testing.T) {
		is := is.New(t)

		err := store.UpdateBook(ctx, uuid.New(), book.UpdateBookRequest{Title: toPointer("ghost")}, time.Now().UTC())
		is.NoErr(err)
	})
}

func TestDeleteBook(t *testing.T) {
	t.Cleanup(func() {
		teardownDB(t)
	})

	t.Run("deletes a book without errors", func(t *testing.T) {
		is := is.New(t)

		b := newBook("A book to be deleted")
		_, err := store.CreateBook(ctx, b)
		is.NoErr(err)

		err = store.DeleteBook(ctx, b.ID)
		is.NoErr(err)

		_, err = store.GetBookByID(ctx, b.ID)
		is.True(errors.Is(err, book.ErrResponseBookNotFound))
	})

	t.Run("deleting a non existing book is still acknowledged", func(t *testing.T) {
		is := is.New(t)

		err := store.DeleteBook(ctx, uuid.New())
		is.NoErr(err)
	})
}

func TestCartItems(t *testing.T) {
	t.Cleanup(func() {
		teardownDB(t)
	})

	t.Run("creates, lists and removes cart items", func(t *testing.T) {
		is := is.New(t)

		item := book.CartItem{ID: uuid.New(), BookID: uuid.New(), Quantity: 5}
		createdItem, err := store.CreateCartItem(ctx, item)
		is.NoErr(err)
		is.Equal(createdItem, item)

		items, err := store.ListCartItems(ctx)
		is.NoErr(err)
		is.Equal(items, []book.CartItem{item})

		err = store.DeleteCartItem(ctx, item.ID)
		is.NoErr(err)

		items, err = store.ListCartItems(ctx)
		is.NoErr(err)
		is.Equal(items, []book.CartItem{})
	})

	t.Run("removes every cart item of one book and counts them", func(t *testing.T) {
		is := is.New(t)

		bookID := uuid.New()
		_, err := store.CreateCartItem(ctx, book.CartItem{ID: uuid.New(), BookID: bookID, Quantity: 1})
		is.NoErr(err)
		_, err = store.CreateCartItem(ctx, book.CartItem{ID: uuid.New(), BookID: bookID, Quantity: 2})
		is.NoErr(err)
		survivor := book.CartItem{ID: uuid.New(), BookID: uuid.New(), Quantity: 1}
		_, err = store.CreateCartItem(ctx, survivor)
		is.NoErr(err)

		count, err := store.DeleteCartItemsByBookID(ctx, bookID)
		is.NoErr(err)
		is.Equal(count, 2)

		items, err := store.ListCartItems(ctx)
		is.NoErr(err)
		is.Equal(items, []book.CartItem{survivor})
	})
}

// compareBooks asserts that two books are equal,
// handling time.Time values correctly.
func compareBooks(is *is.I, a, b book.Book) {
	is.Helper()

	// Make sure we have the correct timestamps.
	is.True(a.CreatedAt.Equal(b.CreatedAt))
	is.True(a.UpdatedAt.Equal(b.UpdatedAt))

	// Overwrite to be able to compare them.
	b.CreatedAt = a.CreatedAt
	b.UpdatedAt = a.UpdatedAt

	// Assert that they are equal.
	is.Equal(a, b)
}

func teardownDB(t *testing.T) {
	is := is.New(t)

	// Truncating the tables, cleaning up all the records.
	_, err := sqlDB.Exec(`TRUNCATE TABLE public.books CASCADE`)
	is.NoErr(err)

	_, err = sqlDB.Exec(`TRUNCATE TABLE public.cart_items CASCADE`)
	is.NoErr(err)
}

func toPointer[T any](v T) *T {
	return &v
}
