package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/catalog/internal/apperrors"
	"github.com/mrlokans/catalog/internal/entities"
)

func TestCreateBookReview_OnePerBookAndUser(t *testing.T) {
	svc, db, f := setupService(t)
	ctx := context.Background()

	book, err := svc.CreateBook(ctx, actor, bookInput(f, "1111", f.authorA))
	require.NoError(t, err)
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")

	review, err := svc.CreateBookReview(ctx, alice, ReviewInput{Comment: "First", Book: &IDRef{ID: book.ID}})
	require.NoError(t, err)
	assert.False(t, review.Edited)
	assert.Equal(t, alice, review.UserID)

	_, err = svc.CreateBookReview(ctx, alice, ReviewInput{Comment: "Second", Book: &IDRef{ID: book.ID}})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.Equal(t, "You have already written a review for this book", err.Error())

	assert.Equal(t, int64(1), count(t, db, &entities.BookReview{}, "book_id = ? AND user_id = ?", book.ID, alice))

	_, err = svc.CreateBookReview(ctx, bob, ReviewInput{Comment: "Mine", Book: &IDRef{ID: book.ID}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count(t, db, &entities.BookReview{}, "book_id = ?", book.ID))
}

func TestCreateBookReview_BookNotFound(t *testing.T) {
	svc, db, _ := setupService(t)
	user := createUser(t, db, "u@example.com")

	_, err := svc.CreateBookReview(context.Background(), user, ReviewInput{Comment: "Hm", Book: &IDRef{ID: 77}})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Equal(t, int64(0), count(t, db, &entities.BookReview{}, ""))
}

func TestUpdateBookReview(t *testing.T) {
	svc, db, f := setupService(t)
	ctx := context.Background()

	book, err := svc.CreateBook(ctx, actor, bookInput(f, "2222", f.authorA))
	require.NoError(t, err)
	owner := createUser(t, db, "owner@example.com")
	stranger := createUser(t, db, "stranger@example.com")

	review, err := svc.CreateBookReview(ctx, owner, ReviewInput{Comment: "Original", Book: &IDRef{ID: book.ID}})
	require.NoError(t, err)

	t.Run("non-owner is forbidden and nothing changes", func(t *testing.T) {
		_, err := svc.UpdateBookReview(ctx, review.ID, stranger, ReviewPatch{Comment: "Hijacked"})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))

		current, err := svc.GetBookReview(ctx, review.ID)
		require.NoError(t, err)
		assert.Equal(t, "Original", current.Comment)
		assert.False(t, current.Edited)
	})

	t.Run("owner edit is idempotent", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			updated, err := svc.UpdateBookReview(ctx, review.ID, owner, ReviewPatch{Comment: "Revised"})
			require.NoError(t, err)
			assert.True(t, updated.Edited)
			assert.Equal(t, "Revised", updated.Comment)
		}

		current, err := svc.GetBookReview(ctx, review.ID)
		require.NoError(t, err)
		assert.True(t, current.Edited)
		assert.Equal(t, "Revised", current.Comment)
	})

	t.Run("missing review", func(t *testing.T) {
		_, err := svc.UpdateBookReview(ctx, 9999, owner, ReviewPatch{Comment: "x"})
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})
}
