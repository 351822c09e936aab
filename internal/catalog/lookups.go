package catalog

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/catalog/internal/database/lookups"
	"github.com/mrlokans/catalog/internal/entities"
)

func (s *Service) ListCategories(ctx context.Context) ([]entities.Category, error) {
	list, err := lookups.NewRepository(s.db.DB.WithContext(ctx)).GetAllCategories()
	if err != nil {
		return nil, classify("list categories", err, "")
	}
	return list, nil
}

func (s *Service) GetCategory(ctx context.Context, id uint) (*entities.Category, error) {
	category, err := lookups.NewRepository(s.db.DB.WithContext(ctx)).GetCategoryByID(id)
	if err != nil {
		return nil, classify("get category", notFound(err, "category"), "")
	}
	return category, nil
}

// CreateCategory relies on the unique name index; a duplicate is a conflict.
func (s *Service) CreateCategory(ctx context.Context, actorID uint, in LookupInput) (*entities.Category, error) {
	var created *entities.Category
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		category, err := lookups.NewRepository(tx).CreateCategory(in.Name)
		if err != nil {
			return fmt.Errorf("insert category: %w", err)
		}
		created = category
		return record(tx, actorID, entities.AuditActionCreate, "category", category.ID, "Created category "+category.Name)
	})
	if err != nil {
		return nil, classify("create category", err, msgNameTaken)
	}
	return created, nil
}

func (s *Service) ListEditorials(ctx context.Context) ([]entities.Editorial, error) {
	list, err := lookups.NewRepository(s.db.DB.WithContext(ctx)).GetAllEditorials()
	if err != nil {
		return nil, classify("list editorials", err, "")
	}
	return list, nil
}

func (s *Service) GetEditorial(ctx context.Context, id uint) (*entities.Editorial, error) {
	editorial, err := lookups.NewRepository(s.db.DB.WithContext(ctx)).GetEditorialByID(id)
	if err != nil {
		return nil, classify("get editorial", notFound(err, "editorial"), "")
	}
	return editorial, nil
}

func (s *Service) CreateEditorial(ctx context.Context, actorID uint, in LookupInput) (*entities.Editorial, error) {
	var created *entities.Editorial
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		editorial, err := lookups.NewRepository(tx).CreateEditorial(in.Name)
		if err != nil {
			return fmt.Errorf("insert editorial: %w", err)
		}
		created = editorial
		return record(tx, actorID, entities.AuditActionCreate, "editorial", editorial.ID, "Created editorial "+editorial.Name)
	})
	if err != nil {
		return nil, classify("create editorial", err, msgNameTaken)
	}
	return created, nil
}
