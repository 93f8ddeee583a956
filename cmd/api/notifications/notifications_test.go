package notifications

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestBookCreated(t *testing.T) {

	t.Run("publishes the creation message to the topic", func(t *testing.T) {
		is := is.New(t)

		title := "book to test ntfy"
		author := "someone"

		var gotPath string
		var gotMessage string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			body, _ := io.ReadAll(r.Body)
			gotMessage = string(body)
		}))
		defer srv.Close()

		ntfy := NewNtfy(true, srv.URL, srv.Client())

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		err := ntfy.BookCreated(ctx, title, author)
		is.NoErr(err)
		is.Equal(gotPath, "/new_book_created")
		is.Equal(gotMessage, fmt.Sprintf("New book created: Title: %s Author: %s", title, author))
	})

	t.Run("expected notification failed error on a non-200 answer", func(t *testing.T) {
		is := is.New(t)

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		ntfy := NewNtfy(true, srv.URL, srv.Client())

		err := ntfy.BookCreated(context.Background(), "some book", "someone")
		var failedErr ErrNotificationFailed
		is.True(errors.As(err, &failedErr))
	})

	t.Run("expected context timeout error", func(t *testing.T) {
		is := is.New(t)

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		ntfy := NewNtfy(true, srv.URL, srv.Client())

		ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
		defer cancel()

		err := ntfy.BookCreated(ctx, "book to test context timeout", "someone")
		is.True(errors.Is(err, context.DeadlineExceeded))
	})

	t.Run("does nothing when notifications are disabled", func(t *testing.T) {
		is := is.New(t)

		called := false
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer srv.Close()

		ntfy := NewNtfy(false, srv.URL, srv.Client())

		err := ntfy.BookCreated(context.Background(), "some book", "someone")
		is.NoErr(err)
		is.True(!called)
	})
}
