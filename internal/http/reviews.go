package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/catalog"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/validation"
)

type ReviewService interface {
	GetBookReview(ctx context.Context, id uint) (*entities.BookReview, error)
	CreateBookReview(ctx context.Context, userID uint, in catalog.ReviewInput) (*entities.BookReview, error)
	UpdateBookReview(ctx context.Context, id, requesterID uint, patch catalog.ReviewPatch) (*entities.BookReview, error)
}

type ReviewsController struct {
	reviews  ReviewService
	statuses StatusTable
}

func NewReviewsController(reviews ReviewService, statuses StatusTable) *ReviewsController {
	return &ReviewsController{
		reviews:  reviews,
		statuses: statuses,
	}
}

// GET /api/book-reviews/:id
func (controller *ReviewsController) GetReview(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	review, err := controller.reviews.GetBookReview(c.Request.Context(), id)
	if err != nil {
		respondAppError(c, err, "get book review")
		return
	}
	respondOK(c, review)
}

// POST /api/book-reviews
func (controller *ReviewsController) CreateReview(c *gin.Context) {
	var in catalog.ReviewInput
	if err := validation.Bind(c, &in); err != nil {
		respondAppError(c, err, "create book review")
		return
	}

	review, err := controller.reviews.CreateBookReview(c.Request.Context(), GetUserID(c), in)
	if err != nil {
		respondAppError(c, err, "create book review")
		return
	}
	respondWrite(c, controller.statuses.For(OperationCreate), "The book review has been created", review)
}

// PUT /api/book-reviews/:id
func (controller *ReviewsController) UpdateReview(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var patch catalog.ReviewPatch
	if err := validation.Bind(c, &patch); err != nil {
		respondAppError(c, err, "update book review")
		return
	}

	review, err := controller.reviews.UpdateBookReview(c.Request.Context(), id, GetUserID(c), patch)
	if err != nil {
		respondAppError(c, err, "update book review")
		return
	}
	respondWrite(c, controller.statuses.For(OperationUpdate), "The book review has been updated", review)
}
