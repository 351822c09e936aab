package catalog

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/catalog/internal/apperrors"
	"github.com/mrlokans/catalog/internal/database/books"
	"github.com/mrlokans/catalog/internal/database/reviews"
	"github.com/mrlokans/catalog/internal/entities"
)

func normalizeISBNField(raw string) (string, error) {
	isbn := NormalizeISBN(raw)
	if isbn == "" {
		return "", apperrors.FieldError("isbn", "The isbn field is required.")
	}
	if len(isbn) > MaxISBNLength {
		return "", apperrors.FieldError("isbn", fmt.Sprintf("The isbn may not be greater than %d characters.", MaxISBNLength))
	}
	return isbn, nil
}

// ListBooks returns every book with authors, category, editorial and
// download record, ordered by title.
func (s *Service) ListBooks(ctx context.Context) ([]entities.Book, error) {
	list, err := books.NewRepository(s.db.DB.WithContext(ctx)).GetAllBooks()
	if err != nil {
		return nil, classify("list books", err, "")
	}
	return list, nil
}

// GetBook returns a book with all its relations, reviews included.
func (s *Service) GetBook(ctx context.Context, id uint) (*entities.Book, error) {
	book, err := books.NewRepository(s.db.DB.WithContext(ctx)).GetBookByID(id)
	if err != nil {
		return nil, classify("get book", notFound(err, "book"), "")
	}
	return book, nil
}

// CreateBook inserts a book, its author associations and its download
// record in one unit. A book with the same normalized isbn is a conflict.
func (s *Service) CreateBook(ctx context.Context, actorID uint, in BookInput) (*entities.Book, error) {
	isbn, err := normalizeISBNField(in.ISBN)
	if err != nil {
		return nil, err
	}
	missing := map[string][]string{}
	if in.Category == nil {
		missing["category"] = []string{"The category field is required."}
	}
	if in.Editorial == nil {
		missing["editorial"] = []string{"The editorial field is required."}
	}
	if len(missing) > 0 {
		return nil, apperrors.Validation(missing)
	}

	publishedDate := time.Now()
	if in.PublishedDate != nil {
		publishedDate = *in.PublishedDate
	}
	authorIDs := UniqueIDs(refIDs(in.Authors))

	var created *entities.Book
	err = s.db.SerializableTransaction(ctx, func(tx *gorm.DB) error {
		repo := books.NewRepository(tx)

		taken, err := repo.ISBNTaken(isbn, 0)
		if err != nil {
			return fmt.Errorf("check isbn: %w", err)
		}
		if taken {
			return apperrors.Conflict(msgISBNTaken)
		}

		if err := requireIDs(tx, &entities.Category{}, "category", []uint{in.Category.ID}); err != nil {
			return err
		}
		if err := requireIDs(tx, &entities.Editorial{}, "editorial", []uint{in.Editorial.ID}); err != nil {
			return err
		}
		if err := requireIDs(tx, &entities.Author{}, "authors", authorIDs); err != nil {
			return err
		}

		book := &entities.Book{
			ISBN:          isbn,
			Title:         in.Title,
			Description:   in.Description,
			PublishedDate: publishedDate,
			CategoryID:    in.Category.ID,
			EditorialID:   in.Editorial.ID,
		}
		if err := repo.CreateBook(book); err != nil {
			return fmt.Errorf("insert book: %w", err)
		}
		if err := repo.AttachAuthors(book.ID, authorIDs); err != nil {
			return fmt.Errorf("attach authors: %w", err)
		}
		if _, err := repo.CreateDownload(book.ID); err != nil {
			return fmt.Errorf("create download record: %w", err)
		}
		if err := record(tx, actorID, entities.AuditActionCreate, "book", book.ID,
			fmt.Sprintf("Created book %q (isbn %s)", book.Title, book.ISBN)); err != nil {
			return err
		}

		created, err = repo.GetBookByID(book.ID)
		return err
	})
	if err != nil {
		return nil, classify("create book", err, msgISBNTaken)
	}
	return created, nil
}

// UpdateBook applies the present fields of the patch. The isbn is checked
// against other books only; a present author list is synced, not appended.
func (s *Service) UpdateBook(ctx context.Context, actorID uint, id uint, patch BookPatch) (*entities.Book, error) {
	var isbn string
	if patch.ISBN != nil {
		var err error
		if isbn, err = normalizeISBNField(*patch.ISBN); err != nil {
			return nil, err
		}
	}

	var updated *entities.Book
	err := s.db.SerializableTransaction(ctx, func(tx *gorm.DB) error {
		repo := books.NewRepository(tx)

		book, err := repo.FindBook(id)
		if err != nil {
			return notFound(err, "book")
		}

		if patch.ISBN != nil {
			taken, err := repo.ISBNTaken(isbn, book.ID)
			if err != nil {
				return fmt.Errorf("check isbn: %w", err)
			}
			if taken {
				return apperrors.Conflict(msgISBNTaken)
			}
			book.ISBN = isbn
		}
		if patch.Title != nil {
			book.Title = *patch.Title
		}
		if patch.Description != nil {
			book.Description = *patch.Description
		}
		if patch.PublishedDate != nil {
			book.PublishedDate = *patch.PublishedDate
		}
		if patch.Category != nil {
			if err := requireIDs(tx, &entities.Category{}, "category", []uint{patch.Category.ID}); err != nil {
				return err
			}
			book.CategoryID = patch.Category.ID
		}
		if patch.Editorial != nil {
			if err := requireIDs(tx, &entities.Editorial{}, "editorial", []uint{patch.Editorial.ID}); err != nil {
				return err
			}
			book.EditorialID = patch.Editorial.ID
		}

		if err := repo.SaveBook(book); err != nil {
			return fmt.Errorf("save book: %w", err)
		}

		if patch.Authors != nil {
			if err := syncBookAuthors(tx, repo, book.ID, refIDs(patch.Authors)); err != nil {
				return err
			}
		}

		if err := record(tx, actorID, entities.AuditActionUpdate, "book", book.ID,
			fmt.Sprintf("Updated book %q", book.Title)); err != nil {
			return err
		}

		updated, err = repo.GetBookByID(book.ID)
		return err
	})
	if err != nil {
		return nil, classify("update book", err, msgISBNTaken)
	}
	return updated, nil
}

func syncBookAuthors(tx *gorm.DB, repo *books.Repository, bookID uint, desired []uint) error {
	desired = UniqueIDs(desired)
	if err := requireIDs(tx, &entities.Author{}, "authors", desired); err != nil {
		return err
	}
	current, err := repo.AuthorIDs(bookID)
	if err != nil {
		return fmt.Errorf("load author ids: %w", err)
	}
	add, remove := ReconcileIDs(current, desired)
	if err := repo.DetachAuthors(bookID, remove); err != nil {
		return fmt.Errorf("detach authors: %w", err)
	}
	if err := repo.AttachAuthors(bookID, add); err != nil {
		return fmt.Errorf("attach authors: %w", err)
	}
	return nil
}

// DeleteBook detaches the authors and removes the download record, the
// reviews and the book in one unit. It returns the book as it was.
func (s *Service) DeleteBook(ctx context.Context, actorID uint, id uint) (*entities.Book, error) {
	var deleted *entities.Book
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		repo := books.NewRepository(tx)

		book, err := repo.GetBookByID(id)
		if err != nil {
			return notFound(err, "book")
		}

		if err := repo.DetachAllAuthors(id); err != nil {
			return fmt.Errorf("detach authors: %w", err)
		}
		if err := repo.DeleteDownload(id); err != nil {
			return fmt.Errorf("delete download record: %w", err)
		}
		if err := reviews.NewRepository(tx).DeleteReviewsForBook(id); err != nil {
			return fmt.Errorf("delete reviews: %w", err)
		}
		if err := repo.DeleteBook(id); err != nil {
			return fmt.Errorf("delete book: %w", err)
		}
		if err := record(tx, actorID, entities.AuditActionDelete, "book", id,
			fmt.Sprintf("Deleted book %q", book.Title)); err != nil {
			return err
		}

		deleted = book
		return nil
	})
	if err != nil {
		return nil, classify("delete book", err, "")
	}
	return deleted, nil
}

// RecordDownload counts one download of a book.
func (s *Service) RecordDownload(ctx context.Context, bookID uint) (*entities.BookDownload, error) {
	var download *entities.BookDownload
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		download, err = books.NewRepository(tx).IncrementDownloads(bookID)
		return notFound(err, "book")
	})
	if err != nil {
		return nil, classify("record download", err, "")
	}
	return download, nil
}
