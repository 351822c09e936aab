package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/catalog"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/validation"
)

type AuthorService interface {
	ListAuthors(ctx context.Context) ([]entities.Author, error)
	GetAuthor(ctx context.Context, id uint) (*entities.Author, error)
	CreateAuthor(ctx context.Context, actorID uint, in catalog.AuthorInput) (*entities.Author, error)
	UpdateAuthor(ctx context.Context, actorID uint, id uint, patch catalog.AuthorPatch) (*entities.Author, error)
	DeleteAuthor(ctx context.Context, actorID uint, id uint) (*entities.Author, error)
}

type AuthorsController struct {
	authors  AuthorService
	statuses StatusTable
}

func NewAuthorsController(authors AuthorService, statuses StatusTable) *AuthorsController {
	return &AuthorsController{
		authors:  authors,
		statuses: statuses,
	}
}

// GET /api/authors
func (controller *AuthorsController) GetAllAuthors(c *gin.Context) {
	authors, err := controller.authors.ListAuthors(c.Request.Context())
	if err != nil {
		respondAppError(c, err, "list authors")
		return
	}
	respondOK(c, authors)
}

// GET /api/authors/:id
func (controller *AuthorsController) GetAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author, err := controller.authors.GetAuthor(c.Request.Context(), id)
	if err != nil {
		respondAppError(c, err, "get author")
		return
	}
	respondOK(c, author)
}

// POST /api/authors
func (controller *AuthorsController) CreateAuthor(c *gin.Context) {
	var in catalog.AuthorInput
	if err := validation.Bind(c, &in); err != nil {
		respondAppError(c, err, "create author")
		return
	}

	author, err := controller.authors.CreateAuthor(c.Request.Context(), GetUserID(c), in)
	if err != nil {
		respondAppError(c, err, "create author")
		return
	}
	respondWrite(c, controller.statuses.For(OperationCreate), "The author has been created", author)
}

// PUT /api/authors/:id
func (controller *AuthorsController) UpdateAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var patch catalog.AuthorPatch
	if err := validation.Bind(c, &patch); err != nil {
		respondAppError(c, err, "update author")
		return
	}

	author, err := controller.authors.UpdateAuthor(c.Request.Context(), GetUserID(c), id, patch)
	if err != nil {
		respondAppError(c, err, "update author")
		return
	}
	respondWrite(c, controller.statuses.For(OperationUpdate), "The author has been updated", author)
}

// DELETE /api/authors/:id
func (controller *AuthorsController) DeleteAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author, err := controller.authors.DeleteAuthor(c.Request.Context(), GetUserID(c), id)
	if err != nil {
		respondAppError(c, err, "delete author")
		return
	}
	respondWrite(c, controller.statuses.For(OperationDelete), "The author has been deleted", author)
}
