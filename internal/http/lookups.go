package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/catalog"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/validation"
)

// LookupService manages categories and editorials.
type LookupService interface {
	ListCategories(ctx context.Context) ([]entities.Category, error)
	GetCategory(ctx context.Context, id uint) (*entities.Category, error)
	CreateCategory(ctx context.Context, actorID uint, in catalog.LookupInput) (*entities.Category, error)
	ListEditorials(ctx context.Context) ([]entities.Editorial, error)
	GetEditorial(ctx context.Context, id uint) (*entities.Editorial, error)
	CreateEditorial(ctx context.Context, actorID uint, in catalog.LookupInput) (*entities.Editorial, error)
}

type LookupsController struct {
	lookups  LookupService
	statuses StatusTable
}

func NewLookupsController(lookups LookupService, statuses StatusTable) *LookupsController {
	return &LookupsController{
		lookups:  lookups,
		statuses: statuses,
	}
}

// GET /api/categories
func (controller *LookupsController) GetAllCategories(c *gin.Context) {
	categories, err := controller.lookups.ListCategories(c.Request.Context())
	if err != nil {
		respondAppError(c, err, "list categories")
		return
	}
	respondOK(c, categories)
}

// GET /api/categories/:id
func (controller *LookupsController) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := controller.lookups.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondAppError(c, err, "get category")
		return
	}
	respondOK(c, category)
}

// POST /api/categories
func (controller *LookupsController) CreateCategory(c *gin.Context) {
	var in catalog.LookupInput
	if err := validation.Bind(c, &in); err != nil {
		respondAppError(c, err, "create category")
		return
	}

	category, err := controller.lookups.CreateCategory(c.Request.Context(), GetUserID(c), in)
	if err != nil {
		respondAppError(c, err, "create category")
		return
	}
	respondWrite(c, controller.statuses.For(OperationCreate), "The category has been created", category)
}

// GET /api/editorials
func (controller *LookupsController) GetAllEditorials(c *gin.Context) {
	editorials, err := controller.lookups.ListEditorials(c.Request.Context())
	if err != nil {
		respondAppError(c, err, "list editorials")
		return
	}
	respondOK(c, editorials)
}

// GET /api/editorials/:id
func (controller *LookupsController) GetEditorial(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	editorial, err := controller.lookups.GetEditorial(c.Request.Context(), id)
	if err != nil {
		respondAppError(c, err, "get editorial")
		return
	}
	respondOK(c, editorial)
}

// POST /api/editorials
func (controller *LookupsController) CreateEditorial(c *gin.Context) {
	var in catalog.LookupInput
	if err := validation.Bind(c, &in); err != nil {
		respondAppError(c, err, "create editorial")
		return
	}

	editorial, err := controller.lookups.CreateEditorial(c.Request.Context(), GetUserID(c), in)
	if err != nil {
		respondAppError(c, err, "create editorial")
		return
	}
	respondWrite(c, controller.statuses.For(OperationCreate), "The editorial has been created", editorial)
}
