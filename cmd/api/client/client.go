/*
Package client is the Go consumer of the book management API. It carries the
wire types of the service and an optimistic local store that mirrors what the
web frontends do: apply the mutation locally first, then reconcile or roll
back once the server answers.
*/
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL string, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: baseURL, token: token, http: httpClient}
}

// Book is the wire shape of a catalog record. IDs stay strings on this side:
// the client treats them as opaque handles minted by the server.
type Book struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Price         *float32  `json:"price"`
	PublishedYear *int      `json:"publishedYear"`
	Genre         *string   `json:"genre"`
	Description   *string   `json:"description"`
	ImageURL      *string   `json:"imageUrl"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// BookInput is a partial payload: nil fields stay off the wire entirely, so
// an update touches only the fields the caller set. Sending a zero value
// instead would blank the stored column through the server's partial merge.
type BookInput struct {
	Title         *string  `json:"title,omitempty"`
	Author        *string  `json:"author,omitempty"`
	Price         *float32 `json:"price,omitempty"`
	PublishedYear *int     `json:"publishedYear,omitempty"`
	Genre         *string  `json:"genre,omitempty"`
	Description   *string  `json:"description,omitempty"`
	ImageURL      *string  `json:"imageUrl,omitempty"`
}

type CartItem struct {
	ID       string `json:"id"`
	BookID   string `json:"bookId"`
	Quantity int    `json:"quantity"`
}

// APIError is a non-2xx answer decoded from the service's error body.
type APIError struct {
	Status  int
	Code    int    `json:"error_code"`
	Message string `json:"error_message"`
}

func (e APIError) Error() string {
	return fmt.Sprintf("api error %d (code %d): %s", e.Status, e.Code, e.Message)
}

func (c *Client) ListBooks(ctx context.Context) ([]Book, error) {
	var books []Book
	if err := c.do(ctx, http.MethodGet, "/books", nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (c *Client) GetBook(ctx context.Context, id string) (Book, error) {
	var b Book
	if err := c.do(ctx, http.MethodGet, "/books/"+id, nil, &b); err != nil {
		return Book{}, err
	}
	return b, nil
}

/* Creates a book and returns the server-minted ID. */
func (c *Client) CreateBook(ctx context.Context, input BookInput) (string, error) {
	var created struct {
		Message string `json:"message"`
		ID      string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/books", input, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

/* Sends a partial patch. The server acknowledges without returning the
updated record, so callers refresh or trust their local copy. */
func (c *Client) UpdateBook(ctx context.Context, id string, input BookInput) error {
	return c.do(ctx, http.MethodPut, "/admin/books/"+id, input, nil)
}

func (c *Client) DeleteBook(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/books/"+id, nil, nil)
}

func (c *Client) ListCart(ctx context.Context) ([]CartItem, error) {
	var items []CartItem
	if err := c.do(ctx, http.MethodGet, "/cart", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

/* Adds a book to the cart and returns the stored item with its server ID. */
func (c *Client) AddToCart(ctx context.Context, bookID string, quantity int) (CartItem, error) {
	entry := struct {
		BookID   string `json:"bookId"`
		Quantity int    `json:"quantity"`
	}{BookID: bookID, Quantity: quantity}

	var added struct {
		Message string   `json:"message"`
		Item    CartItem `json:"item"`
	}
	if err := c.do(ctx, http.MethodPost, "/cart", entry, &added); err != nil {
		return CartItem{}, err
	}
	return added.Item, nil
}

func (c *Client) RemoveCartItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/cart/"+id, nil, nil)
}

/* Runs one round trip: encode, send with the bearer token, decode into out
or into an APIError on a non-2xx status. */
func (c *Client) do(ctx context.Context, method string, path string, in any, out any) error {
	var reqBody io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if in != nil {
		req.Header.Set("content-type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := APIError{Status: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
			return APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}
	return nil
}
