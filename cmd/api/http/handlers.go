package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/bookshop-service/cmd/api/book"
	"github.com/google/uuid"
)

var RequestTimeout = 5 * time.Second

type BookHandler struct {
	bookService book.ServiceAPI
}

func NewBookHandler(bookService book.ServiceAPI) *BookHandler {
	return &BookHandler{bookService: bookService}
}

/* Addresses a call to "/books" according to the requested action.  */
func (h *BookHandler) books(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), RequestTimeout)
	defer cancel()
	r = r.WithContext(ctx)

	method := r.Method
	switch method {
	case http.MethodGet:
		h.listBooks(w, r)
		return
	case http.MethodPost:
		h.createBook(w, r)
		return
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
}

/* Addresses a call to "/books/(expected id here)" according to the requested action.  */
func (h *BookHandler) bookById(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), RequestTimeout)
	defer cancel()
	r = r.WithContext(ctx)

	method := r.Method
	switch method {
	case http.MethodGet:
		h.getBookById(w, r, "/books/")
		return
	case http.MethodDelete:
		h.deleteBook(w, r, "/books/")
		return
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
}

/* Addresses a call to "/admin/books". The admin group carries the same
catalog semantics behind the bearer token check. */
func (h *BookHandler) adminBooks(w http.ResponseWriter, r *http.Request) {
	h.books(w, r)
}

/* Addresses a call to "/admin/books/(expected id here)" according to the requested action.  */
func (h *BookHandler) adminBookById(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), RequestTimeout)
	defer cancel()
	r = r.WithContext(ctx)

	method := r.Method
	switch method {
	case http.MethodGet:
		h.getBookById(w, r, "/admin/books/")
		return
	case http.MethodPut:
		h.updateBook(w, r, "/admin/books/")
		return
	case http.MethodDelete:
		h.deleteBook(w, r, "/admin/books/")
		return
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
}

type BookEntry struct {
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	Price         *float32 `json:"price"`
	PublishedYear *int     `json:"publishedYear"`
	Genre         *string  `json:"genre"`
	Description   *string  `json:"description"`
	ImageURL      *string  `json:"imageUrl"`
}

type UpdateBookEntry struct {
	Title         *string  `json:"title"`
	Author        *string  `json:"author"`
	Price         *float32 `json:"price"`
	PublishedYear *int     `json:"publishedYear"`
	Genre         *string  `json:"genre"`
	Description   *string  `json:"description"`
	ImageURL      *string  `json:"imageUrl"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type CreatedBookResponse struct {
	Message string    `json:"message"`
	ID      uuid.UUID `json:"id"`
}

type CreatedBooksResponse struct {
	Message  string `json:"message"`
	Inserted int    `json:"inserted"`
}

/* Stores the entry as a new book. A JSON array body is treated as a bulk insert. */
func (h *BookHandler) createBook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Println(err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if isJSONArray(body) {
		h.createBooks(w, r, body)
		return
	}

	var bookEntry BookEntry
	if err := json.Unmarshal(body, &bookEntry); err != nil {
		log.Println(err)
		responseJSON(w, http.StatusBadRequest, invalidJSONError(err))
		return
	}

	storedBook, err := h.bookService.CreateBook(r.Context(), bookToCreateReq(bookEntry))
	if err != nil {
		handleError(err, w)
		return
	}

	responseJSON(w, http.StatusCreated, CreatedBookResponse{Message: "Book created", ID: storedBook.ID})
}

/* Stores a batch of books and reports how many were inserted. */
func (h *BookHandler) createBooks(w http.ResponseWriter, r *http.Request, body []byte) {
	var bookEntries []BookEntry
	if err := json.Unmarshal(body, &bookEntries); err != nil {
		log.Println(err)
		responseJSON(w, http.StatusBadRequest, invalidJSONError(err))
		return
	}

	reqBooks := make([]book.CreateBookRequest, 0, len(bookEntries))
	for _, bookEntry := range bookEntries {
		reqBooks = append(reqBooks, bookToCreateReq(bookEntry))
	}

	count, err := h.bookService.CreateBooks(r.Context(), reqBooks)
	if err != nil {
		handleError(err, w)
		return
	}

	responseJSON(w, http.StatusCreated, CreatedBooksResponse{Message: "Books created", Inserted: count})
}

/* Returns a list of the stored books. */
func (h *BookHandler) listBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.bookService.ListBooks(r.Context())
	if err != nil {
		handleError(err, w)
		return
	}

	results := []BookResponse{}
	for _, b := range books {
		results = append(results, bookToResponse(b))
	}
	responseJSON(w, http.StatusOK, results)
}

/* Returns the book with that specific ID. */
func (h *BookHandler) getBookById(w http.ResponseWriter, r *http.Request, prefix string) {
	returnedBook, err := h.bookService.GetBook(r.Context(), isolateId(r, prefix))
	if err != nil {
		handleError(err, w)
		return
	}

	responseJSON(w, http.StatusOK, bookToResponse(returnedBook))
}

/* Applies the entry as a partial patch over the asked book. */
func (h *BookHandler) updateBook(w http.ResponseWriter, r *http.Request, prefix string) {
	var bookEntry UpdateBookEntry
	err := json.NewDecoder(r.Body).Decode(&bookEntry)
	if err != nil {
		log.Println(err)
		responseJSON(w, http.StatusBadRequest, invalidJSONError(err))
		return
	}

	err = h.bookService.UpdateBook(r.Context(), isolateId(r, prefix), bookToUpdateReq(bookEntry))
	if err != nil {
		handleError(err, w)
		return
	}

	responseJSON(w, http.StatusOK, MessageResponse{Message: "Book updated"})
}

/* Removes the asked book and its dependent cart items. */
func (h *BookHandler) deleteBook(w http.ResponseWriter, r *http.Request, prefix string) {
	err := h.bookService.DeleteBook(r.Context(), isolateId(r, prefix))

	var cascadeErr book.ErrCascadeFailed
	if errors.As(err, &cascadeErr) {
		// The book row is gone; the orphaned cart items stay behind.
		log.Println(cascadeErr)
		responseJSON(w, http.StatusOK, MessageResponse{Message: "Book deleted"})
		return
	}
	if err != nil {
		handleError(err, w)
		return
	}

	responseJSON(w, http.StatusOK, MessageResponse{Message: "Book deleted"})
}

/* Isolates the raw ID from the URL. Validation happens in the service before any storage access. */
func isolateId(r *http.Request, prefix string) string {
	justId, _ := strings.CutPrefix(r.URL.Path, prefix)
	return justId
}

func isJSONArray(body []byte) bool {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}

func invalidJSONError(err error) book.ErrResponse {
	return book.ErrResponse{
		Code:    book.ErrResponseEntryInvalidJSON.Code,
		Message: book.ErrResponseEntryInvalidJSON.Message + err.Error(),
	}
}

/* Converts from BookEntry type to CreateBookRequest type, with no json tags. */
func bookToCreateReq(b BookEntry) book.CreateBookRequest {
	return book.CreateBookRequest{
		Title:         b.Title,
		Author:        b.Author,
		Price:         b.Price,
		PublishedYear: b.PublishedYear,
		Genre:         b.Genre,
		Description:   b.Description,
		ImageURL:      b.ImageURL,
	}
}

/* Converts from UpdateBookEntry type to UpdateBookRequest type, with no json tags. */
func bookToUpdateReq(b UpdateBookEntry) book.UpdateBookRequest {
	return book.UpdateBookRequest{
		Title:         b.Title,
		Author:        b.Author,
		Price:         b.Price,
		PublishedYear: b.PublishedYear,
		Genre:         b.Genre,
		Description:   b.Description,
		ImageURL:      b.ImageURL,
	}
}

type BookResponse struct {
	ID            uuid.UUID `json:"id"`
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

/*Copy the fields of a book object to an http layer struct with json tags*/
func bookToResponse(b book.Book) BookResponse {
	return BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Price:         b.Price,
		PublishedYear: b.PublishedYear,
		Genre:         b.Genre,
		Description:   b.Description,
		ImageURL:      b.ImageURL,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

/* Maps a service error onto the wire: validation problems are 400s, a missing
book is a 404, context expirations are 504s, anything else is a 500. */
func handleError(err error, w http.ResponseWriter) {
	var errResp book.ErrResponse
	if errors.As(err, &errResp) {
		switch errResp.Code {
		case book.ErrResponseBookNotFound.Code:
			log.Println(err)
			responseJSON(w, http.StatusNotFound, errResp)
		case book.ErrResponseFromRepository.Code:
			log.Println(err)
			w.WriteHeader(http.StatusInternalServerError)
		default:
			responseJSON(w, http.StatusBadRequest, errResp)
		}
		return
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		log.Println(err)
		responseJSON(w, http.StatusGatewayTimeout, book.ErrResponseRequestTimeout)
		return
	}

	log.Println(err)
	w.WriteHeader(http.StatusInternalServerError)
}

/*Writes a JSON response into a http.ResponseWriter. */
func responseJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		log.Println(err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}
