// Package lookups provides database operations for the simple lookup
// entities referenced by books: categories and editorials.
package lookups

import (
	"gorm.io/gorm"

	"github.com/mrlokans/catalog/internal/entities"
)

// Repository handles category and editorial database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new lookups repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAllCategories retrieves every category ordered by name.
func (r *Repository) GetAllCategories() ([]entities.Category, error) {
	var categories []entities.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

// GetCategoryByID retrieves a category by ID.
func (r *Repository) GetCategoryByID(id uint) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateCategory creates a new category.
func (r *Repository) CreateCategory(name string) (*entities.Category, error) {
	category := &entities.Category{Name: name}
	if err := r.db.Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// GetAllEditorials retrieves every editorial ordered by name.
func (r *Repository) GetAllEditorials() ([]entities.Editorial, error) {
	var editorials []entities.Editorial
	err := r.db.Order("name ASC").Find(&editorials).Error
	return editorials, err
}

// GetEditorialByID retrieves an editorial by ID.
func (r *Repository) GetEditorialByID(id uint) (*entities.Editorial, error) {
	var editorial entities.Editorial
	if err := r.db.First(&editorial, id).Error; err != nil {
		return nil, err
	}
	return &editorial, nil
}

// CreateEditorial creates a new editorial.
func (r *Repository) CreateEditorial(name string) (*entities.Editorial, error) {
	editorial := &entities.Editorial{Name: name}
	if err := r.db.Create(editorial).Error; err != nil {
		return nil, err
	}
	return editorial, nil
}
