package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bookshop-service/cmd/api/client"
	"github.com/matryer/is"
)

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(message string) { n.successes = append(n.successes, message) }
func (n *recordingNotifier) Error(message string)   { n.errors = append(n.errors, message) }

const bookListJSON = `[
	{"id":"b1a9c2e4-0000-4000-8000-000000000001","title":"First","author":"A","price":10,"publishedYear":null,"genre":null,"description":null,"imageUrl":null,"createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"},
	{"id":"b1a9c2e4-0000-4000-8000-000000000002","title":"Second","author":"B","price":20,"publishedYear":null,"genre":null,"description":null,"imageUrl":null,"createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"}
]`

func TestBookStoreDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("a confirmed delete reconciles the local copy", func(t *testing.T) {
		is := is.New(t)

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("content-type", "application/json")
			switch {
			case r.Method == http.MethodGet && r.URL.Path == "/books":
				w.Write([]byte(bookListJSON))
			case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/books/"):
				w.Write([]byte(`{"message":"Book deleted"}`))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer srv.Close()

		notify := &recordingNotifier{}
		store := client.NewBookStore(client.New(srv.URL, "", srv.Client()), notify)

		is.NoErr(store.Refresh(ctx))
		is.Equal(len(store.Books()), 2)
		is.Equal(store.State(), client.Stable)

		err := store.Delete(ctx, "b1a9c2e4-0000-4000-8000-000000000001")
		is.NoErr(err)

		is.Equal(len(store.Books()), 1)
		is.Equal(store.Books()[0].Title, "Second")
		is.Equal(store.State(), client.Reconciled)
		is.Equal(notify.successes, []string{"Book deleted"})
	})

	t.Run("a rejected delete restores the collection exactly", func(t *testing.T) {
		is := is.New(t)

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("content-type", "application/json")
			switch {
			case r.Method == http.MethodGet && r.URL.Path == "/books":
				w.Write([]byte(bookListJSON))
			case r.Method == http.MethodDelete:
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error_code":108,"error_message":"error from repository: boom"}`))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer srv.Close()

		notify := &recordingNotifier{}
		store := client.NewBookStore(client.New(srv.URL, "", srv.Client()), notify)

		is.NoErr(store.Refresh(ctx))
		before := store.Books()

		err := store.Delete(ctx, "b1a9c2e4-0000-4000-8000-000000000001")
		is.True(err != nil)

		is.Equal(store.Books(), before)
		is.Equal(store.State(), client.RolledBack)
		is.Equal(len(notify.errors), 1)
	})
}

func TestBookStoreEdit(t *testing.T) {
	ctx := context.Background()

	t.Run("a confirmed edit keeps the optimistic merge", func(t *testing.T) {
		is := is.New(t)

		var sentBody map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("content-type", "application/json")
			switch {
			case r.Method == http.MethodGet && r.URL.Path == "/books":
				w.Write([]byte(bookListJSON))
			case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/admin/books/"):
				is.NoErr(json.NewDecoder(r.Body).Decode(&sentBody))
				w.Write([]byte(`{"message":"Book updated"}`))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer srv.Close()

		notify := &recordingNotifier{}
		store := client.NewBookStore(client.New(srv.URL, "some-token", srv.Client()), notify)
		is.NoErr(store.Refresh(ctx))

		err := store.Edit(ctx, "b1a9c2e4-0000-4000-8000-000000000001", client.BookInput{Title: toPointer("Renamed")})
		is.NoErr(err)

		// The untouched fields must stay off the wire, or the server's
		// partial merge would blank them while the local copy keeps them.
		is.Equal(sentBody, map[string]any{"title": "Renamed"})

		is.Equal(store.Books()[0].Title, "Renamed")
		is.Equal(store.Books()[0].Author, "A")
		is.Equal(store.State(), client.Reconciled)
	})

	t.Run("a rejected edit rolls the record back", func(t *testing.T) {
		is := is.New(t)

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("content-type", "application/json")
			switch {
			case r.Method == http.MethodGet && r.URL.Path == "/books":
				w.Write([]byte(bookListJSON))
			case r.Method == http.MethodPut:
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error_code":105,"error_message":"one or more fields failed validation: Title"}`))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer srv.Close()

		notify := &recordingNotifier{}
		store := client.NewBookStore(client.New(srv.URL, "some-token", srv.Client()), notify)
		is.NoErr(store.Refresh(ctx))
		before := store.Books()

		err := store.Edit(ctx, "b1a9c2e4-0000-4000-8000-000000000001", client.BookInput{Title: toPointer("x")})
		is.True(err != nil)

		is.Equal(store.Books(), before)
		is.Equal(store.State(), client.RolledBack)
	})
}

func TestCartStoreAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("a confirmed add swaps the provisional ID for the server one", func(t *testing.T) {
		is := is.New(t)

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("content-type", "application/json")
			switch {
			case r.Method == http.MethodGet && r.URL.Path == "/cart":
				w.Write([]byte(`[]`))
			case r.Method == http.MethodPost && r.URL.Path == "/cart":
				w.WriteHeader(http.StatusCreated)
				w.Write([]byte(`{"message":"Added to cart","item":{"id":"c1a9c2e4-0000-4000-8000-000000000009","bookId":"b1a9c2e4-0000-4000-8000-000000000001","quantity":2}}`))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer srv.Close()

		notify := &recordingNotifier{}
		store := client.NewCartStore(client.New(srv.URL, "", srv.Client()), notify)
		is.NoErr(store.Refresh(ctx))

		err := store.Add(ctx, "b1a9c2e4-0000-4000-8000-000000000001", 2)
		is.NoErr(err)

		items := store.Items()
		is.Equal(len(items), 1)
		is.Equal(items[0].ID, "c1a9c2e4-0000-4000-8000-000000000009")
		is.Equal(items[0].Quantity, 2)
		is.Equal(store.State(), client.Reconciled)
	})

	t.Run("a rejected add removes the provisional item again", func(t *testing.T) {
		is := is.New(t)

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("content-type", "application/json")
			switch {
			case r.Method == http.MethodGet && r.URL.Path == "/cart":
				w.Write([]byte(`[]`))
			case r.Method == http.MethodPost && r.URL.Path == "/cart":
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error_code":103,"error_message":"the informed ID is not a valid record identifier."}`))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer srv.Close()

		notify := &recordingNotifier{}
		store := client.NewCartStore(client.New(srv.URL, "", srv.Client()), notify)
		is.NoErr(store.Refresh(ctx))

		err := store.Add(ctx, "not-an-id", 2)
		is.True(err != nil)

		is.Equal(len(store.Items()), 0)
		is.Equal(store.State(), client.RolledBack)
		is.Equal(len(notify.errors), 1)
	})
}

func TestCartStoreRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("a rejected remove restores the cart exactly", func(t *testing.T) {
		is := is.New(t)

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("content-type", "application/json")
			switch {
			case r.Method == http.MethodGet && r.URL.Path == "/cart":
				w.Write([]byte(`[{"id":"c1a9c2e4-0000-4000-8000-000000000009","bookId":"b1a9c2e4-0000-4000-8000-000000000001","quantity":1}]`))
			case r.Method == http.MethodDelete:
				w.WriteHeader(http.StatusGatewayTimeout)
				w.Write([]byte(`{"error_code":106,"error_message":"context deadline exceeded"}`))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer srv.Close()

		notify := &recordingNotifier{}
		store := client.NewCartStore(client.New(srv.URL, "", srv.Client()), notify)
		is.NoErr(store.Refresh(ctx))
		before := store.Items()

		err := store.Remove(ctx, "c1a9c2e4-0000-4000-8000-000000000009")
		is.True(err != nil)

		is.Equal(store.Items(), before)
		is.Equal(store.State(), client.RolledBack)
	})
}

func toPointer[T any](v T) *T {
	return &v
}

func TestStateString(t *testing.T) {
	is := is.New(t)

	is.Equal(client.Stable.String(), "stable")
	is.Equal(client.Pending.String(), "pending")
	is.Equal(client.Reconciled.String(), "reconciled")
	is.Equal(client.RolledBack.String(), "rolled back")
}
