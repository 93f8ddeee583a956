package http

import (
	"fmt"
	"net/http"
)

type ServerConfig struct {
	Port      int
	JWTSecret string
}

func NewServer(config ServerConfig, h *BookHandler) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/", home)
	mux.HandleFunc("/ping", ping)

	mux.HandleFunc("/books", h.books)
	mux.HandleFunc("/books/", h.bookById)

	mux.Handle("/admin/books", RequireToken(config.JWTSecret, http.HandlerFunc(h.adminBooks)))
	mux.Handle("/admin/books/", RequireToken(config.JWTSecret, http.HandlerFunc(h.adminBookById)))

	mux.HandleFunc("/cart", h.cart)
	mux.HandleFunc("/cart/", h.cartItemById)

	server := http.Server{
		Addr:    fmt.Sprintf(":%d", config.Port),
		Handler: mux,
	}
	return &server
}

/* Answers the root route with the API banner. */
func home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	fmt.Fprint(w, "Book Management API")
}

/* Tests the http server connection.  */
func ping(w http.ResponseWriter, r *http.Request) {
	method := r.Method
	if method == http.MethodGet {
		w.WriteHeader(http.StatusNoContent)
		return
	} else {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
}
