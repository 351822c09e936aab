// Package books provides database operations for books, their download
// records and the book side of the book <-> author association.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetBookByID(123)
//
// Bind the repository to a transaction handle to make it part of a unit:
//
//	repo := books.NewRepository(tx)
package books

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/catalog/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func orderAuthors(db *gorm.DB) *gorm.DB {
	return db.Order("name ASC, first_surname ASC")
}

// GetBookByID retrieves a book with its authors, category, editorial,
// download record and reviews.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Authors", orderAuthors).
		Preload("Category").
		Preload("Editorial").
		Preload("Download").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetAllBooks retrieves every book ordered by title.
func (r *Repository) GetAllBooks() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Preload("Authors", orderAuthors).
		Preload("Category").
		Preload("Editorial").
		Preload("Download").
		Order("title ASC").
		Find(&books).Error
	return books, err
}

// FindBook retrieves the book row without relations.
func (r *Repository) FindBook(id uint) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// BookExists reports whether a book with the given id exists.
func (r *Repository) BookExists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ISBNTaken reports whether another book already uses the isbn.
// excludeID skips the book being updated; pass 0 on create.
func (r *Repository) ISBNTaken(isbn string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&entities.Book{}).Where("isbn = ?", isbn)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// CreateBook inserts the book row only; associations are written explicitly.
func (r *Repository) CreateBook(book *entities.Book) error {
	return r.db.Omit(clause.Associations).Create(book).Error
}

// SaveBook persists all columns of the book row.
func (r *Repository) SaveBook(book *entities.Book) error {
	return r.db.Omit(clause.Associations).Save(book).Error
}

// DeleteBook removes the book row.
func (r *Repository) DeleteBook(id uint) error {
	return r.db.Delete(&entities.Book{}, id).Error
}

// AuthorIDs returns the ids of the authors associated with a book.
func (r *Repository) AuthorIDs(bookID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&entities.BookAuthor{}).
		Where("book_id = ?", bookID).
		Order("author_id ASC").
		Pluck("author_id", &ids).Error
	return ids, err
}

// AttachAuthors inserts association rows for each author id.
func (r *Repository) AttachAuthors(bookID uint, authorIDs []uint) error {
	if len(authorIDs) == 0 {
		return nil
	}
	rows := make([]entities.BookAuthor, 0, len(authorIDs))
	for _, authorID := range authorIDs {
		rows = append(rows, entities.BookAuthor{BookID: bookID, AuthorID: authorID})
	}
	return r.db.Create(&rows).Error
}

// DetachAuthors removes the association rows for the given author ids.
func (r *Repository) DetachAuthors(bookID uint, authorIDs []uint) error {
	if len(authorIDs) == 0 {
		return nil
	}
	return r.db.Where("book_id = ? AND author_id IN ?", bookID, authorIDs).
		Delete(&entities.BookAuthor{}).Error
}

// DetachAllAuthors removes every association row of a book.
func (r *Repository) DetachAllAuthors(bookID uint) error {
	return r.db.Where("book_id = ?", bookID).Delete(&entities.BookAuthor{}).Error
}

// CreateDownload creates the download record of a book.
func (r *Repository) CreateDownload(bookID uint) (*entities.BookDownload, error) {
	download := &entities.BookDownload{BookID: bookID}
	if err := r.db.Create(download).Error; err != nil {
		return nil, err
	}
	return download, nil
}

// GetDownload retrieves the download record of a book.
func (r *Repository) GetDownload(bookID uint) (*entities.BookDownload, error) {
	var download entities.BookDownload
	if err := r.db.Where("book_id = ?", bookID).First(&download).Error; err != nil {
		return nil, err
	}
	return &download, nil
}

// DeleteDownload removes the download record of a book.
func (r *Repository) DeleteDownload(bookID uint) error {
	return r.db.Where("book_id = ?", bookID).Delete(&entities.BookDownload{}).Error
}

// IncrementDownloads adds one to the book's download counter.
// Returns gorm.ErrRecordNotFound when the book has no download record.
func (r *Repository) IncrementDownloads(bookID uint) (*entities.BookDownload, error) {
	result := r.db.Model(&entities.BookDownload{}).
		Where("book_id = ?", bookID).
		UpdateColumn("total_downloads", gorm.Expr("total_downloads + ?", 1))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetDownload(bookID)
}
