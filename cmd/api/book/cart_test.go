package book_test

import (
	"context"
	"errors"
	"testing"

	"github.com/bookshop-service/cmd/api/book"
	"github.com/google/uuid"
	"github.com/matryer/is"
	gomock "go.uber.org/mock/gomock"
)

func TestAddToCart(t *testing.T) {

	t.Run("adds an item to the cart without errors", func(t *testing.T) {
		is := is.New(t)
		mS, mockRepo, _ := newTestService(t, false)

		bookID := uuid.New()
		req := book.AddToCartRequest{BookID: bookID.String(), Quantity: 3}

		mockRepo.EXPECT().CreateCartItem(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, item book.CartItem) (book.CartItem, error) {
			is.True(item.ID != uuid.Nil)
			is.Equal(item.BookID, bookID)
			is.Equal(item.Quantity, 3)
			return item, nil
		})

		createdItem, err := mS.AddToCart(ctx, req)
		is.NoErr(err)
		is.Equal(createdItem.BookID, bookID)
		is.Equal(createdItem.Quantity, 3)
	})

	t.Run("expected invalid ID error without reaching storage", func(t *testing.T) {
		is := is.New(t)
		mS, _, _ := newTestService(t, false)

		_, err := mS.AddToCart(ctx, book.AddToCartRequest{BookID: "not-a-book", Quantity: 1})
		is.True(errors.Is(err, book.ErrResponseIDInvalidFormat))
	})

	t.Run("a non-positive quantity passes in lenient mode", func(t *testing.T) {
		is := is.New(t)
		mS, mockRepo, _ := newTestService(t, false)

		bookID := uuid.New()
		mockRepo.EXPECT().CreateCartItem(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, item book.CartItem) (book.CartItem, error) {
			return item, nil
		})

		_, err := mS.AddToCart(ctx, book.AddToCartRequest{BookID: bookID.String(), Quantity: 0})
		is.NoErr(err)
	})

	t.Run("strict mode rejects a non-positive quantity", func(t *testing.T) {
		is := is.New(t)
		mS, _, _ := newTestService(t, true)

		bookID := uuid.New()
		_, err := mS.AddToCart(ctx, book.AddToCartRequest{BookID: bookID.String(), Quantity: 0})
		var errResp book.ErrResponse
		is.True(errors.As(err, &errResp))
		is.Equal(errResp.Code, book.ErrResponseEntryInvalidFields.Code)
	})
}

func TestListCart(t *testing.T) {

	t.Run("returns every cart item", func(t *testing.T) {
		is := is.New(t)
		mS, mockRepo, _ := newTestService(t, false)

		storedItems := []book.CartItem{
			{ID: uuid.New(), BookID: uuid.New(), Quantity: 1},
			{ID: uuid.New(), BookID: uuid.New(), Quantity: 2},
		}
		mockRepo.EXPECT().ListCartItems(gomock.Any()).Return(storedItems, nil)

		items, err := mS.ListCart(ctx)
		is.NoErr(err)
		is.Equal(items, storedItems)
	})
}

func TestRemoveCartItem(t *testing.T) {

	t.Run("removes a cart item without errors", func(t *testing.T) {
		is := is.New(t)
		mS, mockRepo, _ := newTestService(t, false)

		id := uuid.New()
		mockRepo.EXPECT().DeleteCartItem(gomock.Any(), id).Return(nil)

		err := mS.RemoveCartItem(ctx, id.String())
		is.NoErr(err)
	})

	t.Run("acknowledges the removal of a missing item", func(t *testing.T) {
		is := is.New(t)
		mS, mockRepo, _ := newTestService(t, false)

		id := uuid.New()
		mockRepo.EXPECT().DeleteCartItem(gomock.Any(), id).Return(nil)

		err := mS.RemoveCartItem(ctx, id.String())
		is.NoErr(err)
	})

	t.Run("expected invalid ID error without reaching storage", func(t *testing.T) {
		is := is.New(t)
		mS, _, _ := newTestService(t, false)

		err := mS.RemoveCartItem(ctx, "")
		is.True(errors.Is(err, book.ErrResponseIDInvalidFormat))
	})
}
