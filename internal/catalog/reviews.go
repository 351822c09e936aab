package catalog

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/catalog/internal/apperrors"
	"github.com/mrlokans/catalog/internal/database/books"
	"github.com/mrlokans/catalog/internal/database/reviews"
	"github.com/mrlokans/catalog/internal/entities"
)

func (s *Service) GetBookReview(ctx context.Context, id uint) (*entities.BookReview, error) {
	review, err := reviews.NewRepository(s.db.DB.WithContext(ctx)).GetReviewByID(id)
	if err != nil {
		return nil, classify("get review", notFound(err, "book review"), "")
	}
	return review, nil
}

// CreateBookReview stores the user's review of a book. A second review of
// the same book by the same user is a conflict, checked before the book's
// existence.
func (s *Service) CreateBookReview(ctx context.Context, userID uint, in ReviewInput) (*entities.BookReview, error) {
	if in.Book == nil {
		return nil, apperrors.FieldError("book", "The book field is required.")
	}
	bookID := in.Book.ID

	var created *entities.BookReview
	err := s.db.SerializableTransaction(ctx, func(tx *gorm.DB) error {
		repo := reviews.NewRepository(tx)

		exists, err := repo.ReviewExists(bookID, userID)
		if err != nil {
			return fmt.Errorf("check review: %w", err)
		}
		if exists {
			return apperrors.Conflict(msgReviewExists)
		}

		found, err := books.NewRepository(tx).BookExists(bookID)
		if err != nil {
			return fmt.Errorf("check book: %w", err)
		}
		if !found {
			return apperrors.NotFound("book")
		}

		review := &entities.BookReview{
			Comment: in.Comment,
			Edited:  false,
			BookID:  bookID,
			UserID:  userID,
		}
		if err := repo.CreateReview(review); err != nil {
			return fmt.Errorf("insert review: %w", err)
		}
		if err := record(tx, userID, entities.AuditActionCreate, "book_review", review.ID,
			fmt.Sprintf("Reviewed book %d", bookID)); err != nil {
			return err
		}

		created = review
		return nil
	})
	if err != nil {
		return nil, classify("create review", err, msgReviewExists)
	}
	return created, nil
}

// UpdateBookReview replaces the comment of a review owned by requesterID
// and marks it edited. Non-owners get Forbidden.
func (s *Service) UpdateBookReview(ctx context.Context, id, requesterID uint, patch ReviewPatch) (*entities.BookReview, error) {
	var updated *entities.BookReview
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		repo := reviews.NewRepository(tx)

		review, err := repo.GetReviewByID(id)
		if err != nil {
			return notFound(err, "book review")
		}
		if review.UserID != requesterID {
			return apperrors.Forbidden(msgNotOwner)
		}

		review.Comment = patch.Comment
		review.Edited = true
		if err := repo.SaveReview(review); err != nil {
			return fmt.Errorf("save review: %w", err)
		}
		if err := record(tx, requesterID, entities.AuditActionUpdate, "book_review", review.ID,
			fmt.Sprintf("Edited review of book %d", review.BookID)); err != nil {
			return err
		}

		updated = review
		return nil
	})
	if err != nil {
		return nil, classify("update review", err, msgReviewExists)
	}
	return updated, nil
}
