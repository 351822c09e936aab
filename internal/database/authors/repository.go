// Package authors provides database operations for authors and the author
// side of the book <-> author association.
package authors

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/catalog/internal/entities"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func orderBooks(db *gorm.DB) *gorm.DB {
	return db.Order("title ASC")
}

// GetAuthorByID retrieves an author with their books.
func (r *Repository) GetAuthorByID(id uint) (*entities.Author, error) {
	var author entities.Author
	if err := r.db.Preload("Books", orderBooks).First(&author, id).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

// GetAllAuthors retrieves every author ordered by name.
func (r *Repository) GetAllAuthors() ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.Preload("Books", orderBooks).
		Order("name ASC, first_surname ASC").
		Find(&authors).Error
	return authors, err
}

// FindAuthor retrieves the author row without relations.
func (r *Repository) FindAuthor(id uint) (*entities.Author, error) {
	var author entities.Author
	if err := r.db.First(&author, id).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

// CreateAuthor inserts the author row only.
func (r *Repository) CreateAuthor(author *entities.Author) error {
	return r.db.Omit(clause.Associations).Create(author).Error
}

// SaveAuthor persists all columns of the author row.
func (r *Repository) SaveAuthor(author *entities.Author) error {
	return r.db.Omit(clause.Associations).Save(author).Error
}

// DeleteAuthor removes the author row.
func (r *Repository) DeleteAuthor(id uint) error {
	return r.db.Delete(&entities.Author{}, id).Error
}

// BookIDs returns the ids of the books associated with an author.
func (r *Repository) BookIDs(authorID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&entities.BookAuthor{}).
		Where("author_id = ?", authorID).
		Order("book_id ASC").
		Pluck("book_id", &ids).Error
	return ids, err
}

// AttachBooks inserts association rows for each book id.
func (r *Repository) AttachBooks(authorID uint, bookIDs []uint) error {
	if len(bookIDs) == 0 {
		return nil
	}
	rows := make([]entities.BookAuthor, 0, len(bookIDs))
	for _, bookID := range bookIDs {
		rows = append(rows, entities.BookAuthor{BookID: bookID, AuthorID: authorID})
	}
	return r.db.Create(&rows).Error
}

// DetachBooks removes the association rows for the given book ids.
func (r *Repository) DetachBooks(authorID uint, bookIDs []uint) error {
	if len(bookIDs) == 0 {
		return nil
	}
	return r.db.Where("author_id = ? AND book_id IN ?", authorID, bookIDs).
		Delete(&entities.BookAuthor{}).Error
}

// DetachAllBooks removes every association row of an author.
func (r *Repository) DetachAllBooks(authorID uint) error {
	return r.db.Where("author_id = ?", authorID).Delete(&entities.BookAuthor{}).Error
}
