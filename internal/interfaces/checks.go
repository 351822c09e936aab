package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/catalog/internal/auth"
	"github.com/mrlokans/catalog/internal/catalog"
	"github.com/mrlokans/catalog/internal/database/audit"
	"github.com/mrlokans/catalog/internal/http"
	"github.com/mrlokans/catalog/internal/scheduler"
	"github.com/mrlokans/catalog/internal/tasks"
)

// =============================================================================
// Catalog
// =============================================================================

var _ http.BookService = (*catalog.Service)(nil)
var _ http.AuthorService = (*catalog.Service)(nil)
var _ http.ReviewService = (*catalog.Service)(nil)
var _ http.LookupService = (*catalog.Service)(nil)

// =============================================================================
// Authentication
// =============================================================================

var _ http.AccountService = (*auth.Service)(nil)
var _ auth.Authenticator = (*auth.Service)(nil)

// =============================================================================
// Audit Trail and Maintenance
// =============================================================================

var _ http.AuditStore = (*audit.Repository)(nil)
var _ scheduler.AuditPruner = (*audit.Repository)(nil)
var _ scheduler.TokenPruner = (*auth.Service)(nil)
var _ scheduler.Job = (*scheduler.Maintenance)(nil)
var _ scheduler.Job = (*tasks.MaintenanceDispatcher)(nil)
var _ tasks.MaintenanceRunner = (*scheduler.Maintenance)(nil)
var _ http.MaintenanceStatus = (*scheduler.MaintenanceScheduler)(nil)
