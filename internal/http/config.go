package http

import (
	"github.com/mrlokans/catalog/internal/auth"
	"github.com/mrlokans/catalog/internal/database"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database
	Books    BookService
	Authors  AuthorService
	Reviews  ReviewService
	Lookups  LookupService
	Audit    AuditStore

	// Authentication
	Accounts       AccountService
	AuthMiddleware *auth.Middleware
	LoginLimiter   *auth.RateLimiter // optional

	// Success status per write operation
	Statuses StatusTable

	// Reported by /health; optional
	Maintenance MaintenanceStatus

	// Application info
	Version string
}
