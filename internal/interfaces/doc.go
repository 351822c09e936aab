// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Catalog Interfaces
//
//   - BookService: Book reads, writes and download tracking (internal/http/books.go)
//   - AuthorService: Author reads and writes (internal/http/authors.go)
//   - ReviewService: Book reviews (internal/http/reviews.go)
//   - LookupService: Categories and editorials (internal/http/lookups.go)
//
// All four are implemented by catalog.Service, which runs every write as one
// unit of work on the database.
//
// ## Authentication Interfaces
//
//   - AccountService: Registration, login, logout, password change (internal/http/auth.go)
//   - Authenticator: Bearer token resolution (internal/auth/middleware.go)
//
// ## Maintenance Interfaces
//
//   - AuditStore: Audit event listing (internal/http/audit.go)
//   - TokenPruner, AuditPruner: Periodic cleanup (internal/scheduler/maintenance.go)
//   - Job: What a scheduler tick triggers, inline or through the task queue
//   - MaintenanceRunner: Maintenance pass run by the task queue (internal/tasks/maintenance.go)
//
// # Adding a New Catalog Resource
//
// To add a new resource (e.g., publishers' imprints):
//
//  1. Create sub-package: internal/database/imprints/
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  2. Add service methods in internal/catalog/ that open a unit with
//     db.Transaction and build the repository on the transaction handle:
//
//     err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
//     repo := imprints.NewRepository(tx)
//     ...
//     return record(tx, actorID, entities.AuditActionCreate, "imprint", id, desc)
//     })
//
//  3. Declare the controller's interface in internal/http/ and register
//     routes in router.go
//
//  4. Add a compile-time check to checks.go
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for examples.
package interfaces
