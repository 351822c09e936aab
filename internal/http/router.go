package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())

	statuses := cfg.Statuses
	if statuses == nil {
		statuses = NewStatusTable("")
	}

	health := NewHealthController(cfg.Database, cfg.Maintenance, cfg.Version)
	authController := NewAuthController(cfg.Accounts, cfg.LoginLimiter, statuses)
	booksController := NewBooksController(cfg.Books, statuses)
	authorsController := NewAuthorsController(cfg.Authors, statuses)
	reviewsController := NewReviewsController(cfg.Reviews, statuses)
	lookupsController := NewLookupsController(cfg.Lookups, statuses)
	auditController := NewAuditController(cfg.Audit)

	// Health endpoints
	router.GET("/health", health.Status)

	// Public endpoints
	public := router.Group("/api")
	public.POST("/register", authController.Register)
	public.POST("/login", authController.Login)

	// Everything else requires a bearer token
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())

	api.POST("/logout", authController.Logout)
	api.GET("/profile", authController.Profile)
	api.POST("/change-password", authController.ChangePassword)

	api.GET("/authors", authorsController.GetAllAuthors)
	api.GET("/authors/:id", authorsController.GetAuthor)
	api.POST("/authors", authorsController.CreateAuthor)
	api.PUT("/authors/:id", authorsController.UpdateAuthor)
	api.DELETE("/authors/:id", authorsController.DeleteAuthor)

	api.GET("/books", booksController.GetAllBooks)
	api.GET("/books/:id", booksController.GetBook)
	api.POST("/books", booksController.CreateBook)
	api.PUT("/books/:id", booksController.UpdateBook)
	api.DELETE("/books/:id", booksController.DeleteBook)
	api.POST("/books/:id/downloads", booksController.RecordDownload)

	api.GET("/book-reviews/:id", reviewsController.GetReview)
	api.POST("/book-reviews", reviewsController.CreateReview)
	api.PUT("/book-reviews/:id", reviewsController.UpdateReview)

	api.GET("/categories", lookupsController.GetAllCategories)
	api.GET("/categories/:id", lookupsController.GetCategory)
	api.POST("/categories", lookupsController.CreateCategory)

	api.GET("/editorials", lookupsController.GetAllEditorials)
	api.GET("/editorials/:id", lookupsController.GetEditorial)
	api.POST("/editorials", lookupsController.CreateEditorial)

	api.GET("/audit", auditController.GetAuditEvents)
	api.GET("/audit/:entity/:id", auditController.GetEntityHistory)

	return router
}
