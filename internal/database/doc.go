// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, units of work
//	├── books/           # Books, download records, book -> author pairs
//	├── authors/         # Authors, author -> book pairs
//	├── reviews/         # Book reviews
//	├── lookups/         # Categories and editorials
//	├── users/           # Users and access tokens
//	└── audit/           # Audit events
//
// # Units of Work
//
// Repositories are plain wrappers around a *gorm.DB. The same constructor
// accepts either the root connection or a transaction handle, so a write that
// spans several repositories binds all of them to one unit:
//
//	err := db.Transaction(ctx, func(tx *gorm.DB) error {
//		bookRepo := books.NewRepository(tx)
//		reviewRepo := reviews.NewRepository(tx)
//		...
//	})
//
// Any error returned from the callback rolls the whole unit back.
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Add compile-time interface checks in internal/interfaces when the
//     repository backs an interface
package database
