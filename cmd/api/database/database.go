package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bookshop-service/cmd/api/book"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/google/uuid"

	_ "github.com/golang-migrate/migrate/v4/source/file"

	_ "github.com/lib/pq"
)

// Store implements book.Repository over Postgres. It is constructed around
// an injected *sql.DB whose lifetime is owned by the caller.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

/* Connects to the database through a connection string and returns a pointer to a valid DB object (*sql.DB). */
func ConnectDb(connStr string) (*sql.DB, error) {
	sqlDB, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("connecting to db, opening: %w", err)
	}

	err = sqlDB.Ping()
	if err != nil {
		return nil, fmt.Errorf("connecting to db, pinging: %w", err)
	}

	log.Println("Successfully connected!")
	return sqlDB, nil
}

func MigrationUp(store *Store, path string) error {
	driver, err := postgres.WithInstance(store.db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("migrating up: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", path),
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("migrating up: %w", err)
	}

	err = m.Up()
	if err != nil {
		return fmt.Errorf("migrating up: %w", err)
	}
	return nil
}

// -- Books --

/* Stores the book into the database, checks and returns it if succeed. */
func (store *Store) CreateBook(ctx context.Context, bookEntry book.Book) (book.Book, error) {
	sqlStatement := `
	INSERT INTO books (id, title, author, price, published_year, genre, description, image_url, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING *`
	createdRow := store.db.QueryRowContext(ctx, sqlStatement,
		bookEntry.ID, bookEntry.Title, bookEntry.Author, bookEntry.Price,
		bookEntry.PublishedYear, bookEntry.Genre, bookEntry.Description,
		bookEntry.ImageURL, bookEntry.CreatedAt, bookEntry.UpdatedAt)

	bookToReturn, err := scanBook(createdRow)
	if err != nil {
		return book.Book{}, fmt.Errorf("storing book on db: %w", err)
	}

	return bookToReturn, nil
}

/* Stores a batch of books in one statement and returns the inserted count. */
func (store *Store) CreateBooks(ctx context.Context, bookEntries []book.Book) (int, error) {
	valueStrings := make([]string, 0, len(bookEntries))
	args := make([]any, 0, len(bookEntries)*10)
	for i, bookEntry := range bookEntries {
		base := i * 10
		valueStrings = append(valueStrings, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9, base+10))
		args = append(args,
			bookEntry.ID, bookEntry.Title, bookEntry.Author, bookEntry.Price,
			bookEntry.PublishedYear, bookEntry.Genre, bookEntry.Description,
			bookEntry.ImageURL, bookEntry.CreatedAt, bookEntry.UpdatedAt)
	}

	sqlStatement := `
	INSERT INTO books (id, title, author, price, published_year, genre, description, image_url, created_at, updated_at)
	VALUES ` + strings.Join(valueStrings, ", ")

	result, err := store.db.ExecContext(ctx, sqlStatement, args...)
	if err != nil {
		return 0, fmt.Errorf("storing books on db: %w", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storing books on db: %w", err)
	}

	return int(count), nil
}

/* Returns the whole books table in its natural order. */
func (store *Store) ListBooks(ctx context.Context) ([]book.Book, error) {
	sqlStatement := `SELECT id, title, author, price, published_year, genre, description, image_url, created_at, updated_at
	FROM books;`

	rows, err := store.db.QueryContext(ctx, sqlStatement)
	if err != nil {
		return nil, fmt.Errorf("listing books from db: %w", err)
	}
	defer rows.Close()

	booksList := []book.Book{}
	for rows.Next() {
		bookToReturn, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("listing books from db: %w", err)
		}
		booksList = append(booksList, bookToReturn)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("listing books from db: %w", err)
	}

	return booksList, nil
}

/* Searches a book in database based on ID and returns it if succeed. */
func (store *Store) GetBookByID(ctx context.Context, id uuid.UUID) (book.Book, error) {
	sqlStatement := `SELECT id, title, author, price, published_year, genre, description, image_url, created_at, updated_at
	FROM books
	WHERE id=$1;`
	foundRow := store.db.QueryRowContext(ctx, sqlStatement, id)

	bookToReturn, err := scanBook(foundRow)
	if err != nil {
		switch err {
		case sql.ErrNoRows:
			return book.Book{}, fmt.Errorf("searching by ID: %w", book.ErrResponseBookNotFound)
		default:
			return book.Book{}, fmt.Errorf("searching by ID: %w", err)
		}
	}

	return bookToReturn, nil
}

/* Applies the patch as a partial merge: nil patch fields keep the stored
column value. No error when no row matches. */
func (store *Store) UpdateBook(ctx context.Context, id uuid.UUID, patch book.UpdateBookRequest, updatedAt time.Time) error {
	sqlStatement := `
	UPDATE books
	SET title = COALESCE($2, title),
		author = COALESCE($3, author),
		price = COALESCE($4, price),
		published_year = COALESCE($5, published_year),
		genre = COALESCE($6, genre),
		description = COALESCE($7, description),
		image_url = COALESCE($8, image_url),
		updated_at = $9
	WHERE id = $1`
	_, err := store.db.ExecContext(ctx, sqlStatement, id,
		patch.Title, patch.Author, patch.Price, patch.PublishedYear,
		patch.Genre, patch.Description, patch.ImageURL, updatedAt)
	if err != nil {
		return fmt.Errorf("updating book on db: %w", err)
	}

	return nil
}

/* Removes the book row. No error when no row matches. */
func (store *Store) DeleteBook(ctx context.Context, id uuid.UUID) error {
	sqlStatement := `
	DELETE FROM books
	WHERE id = $1;`
	_, err := store.db.ExecContext(ctx, sqlStatement, id)
	if err != nil {
		return fmt.Errorf("deleting book from db: %w", err)
	}

	return nil
}

// -- Cart --

/* Stores the cart item into the database, checks and returns it if succeed. */
func (store *Store) CreateCartItem(ctx context.Context, item book.CartItem) (book.CartItem, error) {
	sqlStatement := `
	INSERT INTO cart_items (id, book_id, quantity)
	VALUES ($1, $2, $3)
	RETURNING *`
	createdRow := store.db.QueryRowContext(ctx, sqlStatement, item.ID, item.BookID, item.Quantity)

	var itemToReturn book.CartItem
	err := createdRow.Scan(&itemToReturn.ID, &itemToReturn.BookID, &itemToReturn.Quantity)
	if err != nil {
		return book.CartItem{}, fmt.Errorf("storing cart item on db: %w", err)
	}

	return itemToReturn, nil
}

/* Returns the whole cart collection. There is no per-user scoping. */
func (store *Store) ListCartItems(ctx context.Context) ([]book.CartItem, error) {
	sqlStatement := `SELECT id, book_id, quantity
	FROM cart_items;`

	rows, err := store.db.QueryContext(ctx, sqlStatement)
	if err != nil {
		return nil, fmt.Errorf("listing cart items from db: %w", err)
	}
	defer rows.Close()

	items := []book.CartItem{}
	var itemToReturn book.CartItem
	for rows.Next() {
		err = rows.Scan(&itemToReturn.ID, &itemToReturn.BookID, &itemToReturn.Quantity)
		if err != nil {
			return nil, fmt.Errorf("listing cart items from db: %w", err)
		}
		items = append(items, itemToReturn)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("listing cart items from db: %w", err)
	}

	return items, nil
}

/* Removes the cart item row. No error when no row matches. */
func (store *Store) DeleteCartItem(ctx context.Context, id uuid.UUID) error {
	sqlStatement := `
	DELETE FROM cart_items
	WHERE id = $1;`
	_, err := store.db.ExecContext(ctx, sqlStatement, id)
	if err != nil {
		return fmt.Errorf("deleting cart item from db: %w", err)
	}

	return nil
}

/* Removes every cart item referencing the given book and returns how many went away. */
func (store *Store) DeleteCartItemsByBookID(ctx context.Context, bookID uuid.UUID) (int, error) {
	sqlStatement := `
	DELETE FROM cart_items
	WHERE book_id = $1;`
	result, err := store.db.ExecContext(ctx, sqlStatement, bookID)
	if err != nil {
		return 0, fmt.Errorf("deleting cart items by book from db: %w", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("deleting cart items by book from db: %w", err)
	}

	return int(count), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (book.Book, error) {
	var b book.Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Price, &b.PublishedYear,
		&b.Genre, &b.Description, &b.ImageURL, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}
