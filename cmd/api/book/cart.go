package book

import (
	"context"

	"github.com/google/uuid"
)

// CartItem is one line in the shopping cart. BookID is a weak reference:
// the item does not own the book and holds no foreign-key constraint in
// storage; cleanup happens through the delete cascade in DeleteBook.
type CartItem struct {
	ID       uuid.UUID
	BookID   uuid.UUID
	Quantity int
}

type AddToCartRequest struct {
	BookID   string `validate:"required"`
	Quantity int    `validate:"gt=0"`
}

/* Returns every cart item. The collection is global: there is no per-user
scoping, every caller sees the same cart. */
func (s *Service) ListCart(ctx context.Context) ([]CartItem, error) {
	items, err := s.repo.ListCartItems(ctx)
	if err != nil {
		return nil, repositoryError("ListCart", err)
	}
	return items, nil
}

/* Validates the referenced book ID and inserts a new cart item. The quantity
is not checked unless strict validation is enabled. */
func (s *Service) AddToCart(ctx context.Context, req AddToCartRequest) (CartItem, error) {
	bookID, err := ParseID(req.BookID)
	if err != nil {
		return CartItem{}, err
	}

	if s.validate != nil {
		if err := s.validate.Struct(req); err != nil {
			return CartItem{}, ErrResponse{
				Code:    ErrResponseEntryInvalidFields.Code,
				Message: ErrResponseEntryInvalidFields.Message + err.Error(),
			}
		}
	}

	item := CartItem{
		ID:       uuid.New(),
		BookID:   bookID,
		Quantity: req.Quantity,
	}

	createdItem, err := s.repo.CreateCartItem(ctx, item)
	if err != nil {
		return CartItem{}, repositoryError("AddToCart", err)
	}

	return createdItem, nil
}

/* Validates the ID and deletes the matching cart item. Succeeds even if no
record matched. */
func (s *Service) RemoveCartItem(ctx context.Context, rawID string) error {
	id, err := ParseID(rawID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteCartItem(ctx, id); err != nil {
		return repositoryError("RemoveCartItem", err)
	}

	return nil
}
