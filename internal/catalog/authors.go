package catalog

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/catalog/internal/database/authors"
	"github.com/mrlokans/catalog/internal/entities"
)

func fullName(a *entities.Author) string {
	return strings.TrimSpace(strings.Join([]string{a.Name, a.FirstSurname, a.SecondSurname}, " "))
}

func (s *Service) ListAuthors(ctx context.Context) ([]entities.Author, error) {
	list, err := authors.NewRepository(s.db.DB.WithContext(ctx)).GetAllAuthors()
	if err != nil {
		return nil, classify("list authors", err, "")
	}
	return list, nil
}

func (s *Service) GetAuthor(ctx context.Context, id uint) (*entities.Author, error) {
	author, err := authors.NewRepository(s.db.DB.WithContext(ctx)).GetAuthorByID(id)
	if err != nil {
		return nil, classify("get author", notFound(err, "author"), "")
	}
	return author, nil
}

// CreateAuthor inserts an author and attaches the given books.
func (s *Service) CreateAuthor(ctx context.Context, actorID uint, in AuthorInput) (*entities.Author, error) {
	bookIDs := UniqueIDs(refIDs(in.Books))

	var created *entities.Author
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		repo := authors.NewRepository(tx)

		if err := requireIDs(tx, &entities.Book{}, "books", bookIDs); err != nil {
			return err
		}

		author := &entities.Author{
			Name:          in.Name,
			FirstSurname:  in.FirstSurname,
			SecondSurname: in.SecondSurname,
		}
		if err := repo.CreateAuthor(author); err != nil {
			return fmt.Errorf("insert author: %w", err)
		}
		if err := repo.AttachBooks(author.ID, bookIDs); err != nil {
			return fmt.Errorf("attach books: %w", err)
		}
		if err := record(tx, actorID, entities.AuditActionCreate, "author", author.ID,
			"Created author "+fullName(author)); err != nil {
			return err
		}

		var err error
		created, err = repo.GetAuthorByID(author.ID)
		return err
	})
	if err != nil {
		return nil, classify("create author", err, "")
	}
	return created, nil
}

// UpdateAuthor applies the present fields; a present book list is synced.
func (s *Service) UpdateAuthor(ctx context.Context, actorID uint, id uint, patch AuthorPatch) (*entities.Author, error) {
	var updated *entities.Author
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		repo := authors.NewRepository(tx)

		author, err := repo.FindAuthor(id)
		if err != nil {
			return notFound(err, "author")
		}

		if patch.Name != nil {
			author.Name = *patch.Name
		}
		if patch.FirstSurname != nil {
			author.FirstSurname = *patch.FirstSurname
		}
		if patch.SecondSurname != nil {
			author.SecondSurname = *patch.SecondSurname
		}
		if err := repo.SaveAuthor(author); err != nil {
			return fmt.Errorf("save author: %w", err)
		}

		if patch.Books != nil {
			desired := UniqueIDs(refIDs(patch.Books))
			if err := requireIDs(tx, &entities.Book{}, "books", desired); err != nil {
				return err
			}
			current, err := repo.BookIDs(author.ID)
			if err != nil {
				return fmt.Errorf("load book ids: %w", err)
			}
			add, remove := ReconcileIDs(current, desired)
			if err := repo.DetachBooks(author.ID, remove); err != nil {
				return fmt.Errorf("detach books: %w", err)
			}
			if err := repo.AttachBooks(author.ID, add); err != nil {
				return fmt.Errorf("attach books: %w", err)
			}
		}

		if err := record(tx, actorID, entities.AuditActionUpdate, "author", author.ID,
			"Updated author "+fullName(author)); err != nil {
			return err
		}

		updated, err = repo.GetAuthorByID(author.ID)
		return err
	})
	if err != nil {
		return nil, classify("update author", err, "")
	}
	return updated, nil
}

// DeleteAuthor detaches the author's books, then deletes the author.
func (s *Service) DeleteAuthor(ctx context.Context, actorID uint, id uint) (*entities.Author, error) {
	var deleted *entities.Author
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		repo := authors.NewRepository(tx)

		author, err := repo.GetAuthorByID(id)
		if err != nil {
			return notFound(err, "author")
		}
		if err := repo.DetachAllBooks(id); err != nil {
			return fmt.Errorf("detach books: %w", err)
		}
		if err := repo.DeleteAuthor(id); err != nil {
			return fmt.Errorf("delete author: %w", err)
		}
		if err := record(tx, actorID, entities.AuditActionDelete, "author", id,
			"Deleted author "+fullName(author)); err != nil {
			return err
		}

		deleted = author
		return nil
	})
	if err != nil {
		return nil, classify("delete author", err, "")
	}
	return deleted, nil
}
