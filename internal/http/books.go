package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/catalog"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/validation"
)

// BookService is the subset of the catalog used by BooksController.
type BookService interface {
	ListBooks(ctx context.Context) ([]entities.Book, error)
	GetBook(ctx context.Context, id uint) (*entities.Book, error)
	CreateBook(ctx context.Context, actorID uint, in catalog.BookInput) (*entities.Book, error)
	UpdateBook(ctx context.Context, actorID uint, id uint, patch catalog.BookPatch) (*entities.Book, error)
	DeleteBook(ctx context.Context, actorID uint, id uint) (*entities.Book, error)
	RecordDownload(ctx context.Context, bookID uint) (*entities.BookDownload, error)
}

type BooksController struct {
	books    BookService
	statuses StatusTable
}

func NewBooksController(books BookService, statuses StatusTable) *BooksController {
	return &BooksController{
		books:    books,
		statuses: statuses,
	}
}

// GET /api/books
func (controller *BooksController) GetAllBooks(c *gin.Context) {
	books, err := controller.books.ListBooks(c.Request.Context())
	if err != nil {
		respondAppError(c, err, "list books")
		return
	}
	respondOK(c, books)
}

// GET /api/books/:id
func (controller *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.books.GetBook(c.Request.Context(), id)
	if err != nil {
		respondAppError(c, err, "get book")
		return
	}
	respondOK(c, book)
}

// POST /api/books
func (controller *BooksController) CreateBook(c *gin.Context) {
	var in catalog.BookInput
	if err := validation.Bind(c, &in); err != nil {
		respondAppError(c, err, "create book")
		return
	}

	book, err := controller.books.CreateBook(c.Request.Context(), GetUserID(c), in)
	if err != nil {
		respondAppError(c, err, "create book")
		return
	}
	respondWrite(c, controller.statuses.For(OperationCreate), "The book has been created", book)
}

// PUT /api/books/:id
func (controller *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var patch catalog.BookPatch
	if err := validation.Bind(c, &patch); err != nil {
		respondAppError(c, err, "update book")
		return
	}

	book, err := controller.books.UpdateBook(c.Request.Context(), GetUserID(c), id, patch)
	if err != nil {
		respondAppError(c, err, "update book")
		return
	}
	respondWrite(c, controller.statuses.For(OperationUpdate), "The book has been updated", book)
}

// DELETE /api/books/:id
func (controller *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.books.DeleteBook(c.Request.Context(), GetUserID(c), id)
	if err != nil {
		respondAppError(c, err, "delete book")
		return
	}
	respondWrite(c, controller.statuses.For(OperationDelete), "The book has been deleted", book)
}

// POST /api/books/:id/downloads
func (controller *BooksController) RecordDownload(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	download, err := controller.books.RecordDownload(c.Request.Context(), id)
	if err != nil {
		respondAppError(c, err, "record download")
		return
	}
	respondWrite(c, controller.statuses.For(OperationUpdate), "The download has been recorded", download)
}
