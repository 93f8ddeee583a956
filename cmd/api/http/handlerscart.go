package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/bookshop-service/cmd/api/book"
	"github.com/google/uuid"
)

/* Addresses a call to "/cart" according to the requested action.  */
func (h *BookHandler) cart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), RequestTimeout)
	defer cancel()
	r = r.WithContext(ctx)

	method := r.Method
	switch method {
	case http.MethodGet:
		h.listCart(w, r)
		return
	case http.MethodPost:
		h.addToCart(w, r)
		return
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
}

/* Addresses a call to "/cart/(expected id here)" according to the requested action.  */
func (h *BookHandler) cartItemById(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), RequestTimeout)
	defer cancel()
	r = r.WithContext(ctx)

	method := r.Method
	switch method {
	case http.MethodDelete:
		h.removeCartItem(w, r)
		return
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
}

type CartItemEntry struct {
	BookID   string `json:"bookId"`
	Quantity int    `json:"quantity"`
}

type CartItemResponse struct {
	ID       uuid.UUID `json:"id"`
	BookID   uuid.UUID `json:"bookId"`
	Quantity int       `json:"quantity"`
}

type AddedToCartResponse struct {
	Message string           `json:"message"`
	Item    CartItemResponse `json:"item"`
}

/* Returns every item of the global cart collection. */
func (h *BookHandler) listCart(w http.ResponseWriter, r *http.Request) {
	items, err := h.bookService.ListCart(r.Context())
	if err != nil {
		handleError(err, w)
		return
	}

	results := []CartItemResponse{}
	for _, item := range items {
		results = append(results, cartItemToResponse(item))
	}
	responseJSON(w, http.StatusOK, results)
}

/* Validates the entry, then inserts a new cart item. */
func (h *BookHandler) addToCart(w http.ResponseWriter, r *http.Request) {
	var cartEntry CartItemEntry
	err := json.NewDecoder(r.Body).Decode(&cartEntry)
	if err != nil {
		log.Println(err)
		responseJSON(w, http.StatusBadRequest, invalidJSONError(err))
		return
	}

	createdItem, err := h.bookService.AddToCart(r.Context(), book.AddToCartRequest{
		BookID:   cartEntry.BookID,
		Quantity: cartEntry.Quantity,
	})
	if err != nil {
		handleError(err, w)
		return
	}

	responseJSON(w, http.StatusCreated, AddedToCartResponse{
		Message: "Added to cart",
		Item:    cartItemToResponse(createdItem),
	})
}

/* Removes the asked cart item. */
func (h *BookHandler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	err := h.bookService.RemoveCartItem(r.Context(), isolateId(r, "/cart/"))
	if err != nil {
		handleError(err, w)
		return
	}

	responseJSON(w, http.StatusOK, MessageResponse{Message: "Cart item removed"})
}

/*Copy the fields of a cart item object to an http layer struct with json tags*/
func cartItemToResponse(item book.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:       item.ID,
		BookID:   item.BookID,
		Quantity: item.Quantity,
	}
}
