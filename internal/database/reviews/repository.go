// Package reviews provides database operations for book reviews.
package reviews

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/catalog/internal/entities"
)

// Repository handles all book review database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new reviews repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetReviewByID retrieves a review row.
func (r *Repository) GetReviewByID(id uint) (*entities.BookReview, error) {
	var review entities.BookReview
	if err := r.db.First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// GetReviewsForBook retrieves a book's reviews, oldest first.
func (r *Repository) GetReviewsForBook(bookID uint) ([]entities.BookReview, error) {
	var reviews []entities.BookReview
	err := r.db.Where("book_id = ?", bookID).Order("created_at ASC").Find(&reviews).Error
	return reviews, err
}

// ReviewExists reports whether the user already reviewed the book.
func (r *Repository) ReviewExists(bookID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.BookReview{}).
		Where("book_id = ? AND user_id = ?", bookID, userID).
		Count(&count).Error
	return count > 0, err
}

// CreateReview inserts a review row.
func (r *Repository) CreateReview(review *entities.BookReview) error {
	return r.db.Omit(clause.Associations).Create(review).Error
}

// SaveReview persists all columns of the review row.
func (r *Repository) SaveReview(review *entities.BookReview) error {
	return r.db.Omit(clause.Associations).Save(review).Error
}

// DeleteReviewsForBook removes every review of a book.
func (r *Repository) DeleteReviewsForBook(bookID uint) error {
	return r.db.Where("book_id = ?", bookID).Delete(&entities.BookReview{}).Error
}
