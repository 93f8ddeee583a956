package client

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
)

// State tracks where a local collection stands relative to the server.
type State int

const (
	// Stable: the local copy has no mutation in flight.
	Stable State = iota
	// Pending: a mutation was applied locally and awaits the server's answer.
	Pending
	// Reconciled: the server confirmed the last mutation.
	Reconciled
	// RolledBack: the server rejected the last mutation and the snapshot
	// taken before it was restored.
	RolledBack
)

func (s State) String() string {
	switch s {
	case Stable:
		return "stable"
	case Pending:
		return "pending"
	case Reconciled:
		return "reconciled"
	case RolledBack:
		return "rolled back"
	default:
		return fmt.Sprintf("unknown state %d", int(s))
	}
}

// Notifier surfaces mutation outcomes to whoever renders them. The web
// frontends show these as toasts.
type Notifier interface {
	Success(message string)
	Error(message string)
}

type logNotifier struct{}

func (logNotifier) Success(message string) { log.Println(message) }
func (logNotifier) Error(message string)   { log.Println(message) }

// BookStore keeps an optimistic local copy of the catalog. Every mutation is
// applied locally before the server call; a rejection restores the snapshot
// taken just before the mutation.
//
// There is no optimistic Add: a new book has no ID until the server mints
// one, and the catalog pages create through Client.CreateBook and Refresh
// afterwards, so the store only mirrors edit and delete.
//
// Concurrent mutations are last-response-wins: a second mutation started
// while the first is still pending snapshots the already-mutated copy, so
// callers should serialize mutations per collection.
type BookStore struct {
	mu     sync.Mutex
	api    *Client
	notify Notifier
	books  []Book
	state  State
}

func NewBookStore(api *Client, notify Notifier) *BookStore {
	if notify == nil {
		notify = logNotifier{}
	}
	return &BookStore{api: api, notify: notify, books: []Book{}}
}

// Books returns a copy of the local collection.
func (s *BookStore) Books() []Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Book{}, s.books...)
}

func (s *BookStore) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

/* Replaces the local copy with the server's and settles the store. */
func (s *BookStore) Refresh(ctx context.Context) error {
	books, err := s.api.ListBooks(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.books = books
	s.state = Stable
	return nil
}

/* Removes the book locally, then asks the server. A rejection puts the book
back exactly where it was. */
func (s *BookStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	snapshot := append([]Book{}, s.books...)

	kept := make([]Book, 0, len(s.books))
	for _, b := range s.books {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	s.books = kept
	s.state = Pending
	s.mu.Unlock()

	if err := s.api.DeleteBook(ctx, id); err != nil {
		s.rollback(snapshot)
		s.notify.Error("Failed to delete book: " + err.Error())
		return err
	}

	s.settle(Reconciled)
	s.notify.Success("Book deleted")
	return nil
}

/* Merges the patch into the local record, then asks the server. The server
acknowledges without a richer payload, so on success the optimistic copy IS
the reconciled copy. */
func (s *BookStore) Edit(ctx context.Context, id string, input BookInput) error {
	s.mu.Lock()
	snapshot := append([]Book{}, s.books...)

	for i, b := range s.books {
		if b.ID != id {
			continue
		}
		if input.Title != nil {
			s.books[i].Title = *input.Title
		}
		if input.Author != nil {
			s.books[i].Author = *input.Author
		}
		if input.Price != nil {
			s.books[i].Price = input.Price
		}
		if input.PublishedYear != nil {
			s.books[i].PublishedYear = input.PublishedYear
		}
		if input.Genre != nil {
			s.books[i].Genre = input.Genre
		}
		if input.Description != nil {
			s.books[i].Description = input.Description
		}
		if input.ImageURL != nil {
			s.books[i].ImageURL = input.ImageURL
		}
	}
	s.state = Pending
	s.mu.Unlock()

	if err := s.api.UpdateBook(ctx, id, input); err != nil {
		s.rollback(snapshot)
		s.notify.Error("Failed to update book: " + err.Error())
		return err
	}

	s.settle(Reconciled)
	s.notify.Success("Book updated")
	return nil
}

func (s *BookStore) rollback(snapshot []Book) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books = snapshot
	s.state = RolledBack
}

func (s *BookStore) settle(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// CartStore mirrors the global cart with the same optimistic discipline as
// BookStore.
type CartStore struct {
	mu     sync.Mutex
	api    *Client
	notify Notifier
	items  []CartItem
	state  State
}

func NewCartStore(api *Client, notify Notifier) *CartStore {
	if notify == nil {
		notify = logNotifier{}
	}
	return &CartStore{api: api, notify: notify, items: []CartItem{}}
}

// Items returns a copy of the local collection.
func (s *CartStore) Items() []CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]CartItem{}, s.items...)
}

func (s *CartStore) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

/* Replaces the local copy with the server's and settles the store. */
func (s *CartStore) Refresh(ctx context.Context) error {
	items, err := s.api.ListCart(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	s.state = Stable
	return nil
}

/* Inserts the item locally under a provisional ID, then asks the server. On
success the provisional ID is swapped for the server-minted one; a rejection
removes the item again. */
func (s *CartStore) Add(ctx context.Context, bookID string, quantity int) error {
	provisionalID := "local-" + uuid.NewString()

	s.mu.Lock()
	snapshot := append([]CartItem{}, s.items...)
	s.items = append(s.items, CartItem{ID: provisionalID, BookID: bookID, Quantity: quantity})
	s.state = Pending
	s.mu.Unlock()

	created, err := s.api.AddToCart(ctx, bookID, quantity)
	if err != nil {
		s.rollback(snapshot)
		s.notify.Error("Failed to add to cart: " + err.Error())
		return err
	}

	s.mu.Lock()
	for i, item := range s.items {
		if item.ID == provisionalID {
			s.items[i] = created
		}
	}
	s.state = Reconciled
	s.mu.Unlock()

	s.notify.Success("Added to cart")
	return nil
}

/* Removes the item locally, then asks the server. A rejection puts the item
back exactly where it was. */
func (s *CartStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	snapshot := append([]CartItem{}, s.items...)

	kept := make([]CartItem, 0, len(s.items))
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.state = Pending
	s.mu.Unlock()

	if err := s.api.RemoveCartItem(ctx, id); err != nil {
		s.rollback(snapshot)
		s.notify.Error("Failed to remove cart item: " + err.Error())
		return err
	}

	s.settle(Reconciled)
	s.notify.Success("Cart item removed")
	return nil
}

func (s *CartStore) rollback(snapshot []CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = snapshot
	s.state = RolledBack
}

func (s *CartStore) settle(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}
