// Package catalog implements the catalog write protocol: every multi-step
// mutation of books, authors and reviews runs as one unit of work on the
// database, with existence and uniqueness checks as its first statements.
//
// Repositories are bound to the unit's transaction handle:
//
//	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
//		books := books.NewRepository(tx)
//		...
//	})
//
// All returned errors carry an apperrors.Kind.
package catalog

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/catalog/internal/apperrors"
	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/database/audit"
	"github.com/mrlokans/catalog/internal/entities"
)

const (
	msgISBNTaken    = "The isbn field must be unique"
	msgReviewExists = "You have already written a review for this book"
	msgNameTaken    = "The name field must be unique"
	msgNotOwner     = "You can only edit your own reviews"
)

// Service coordinates catalog reads and writes.
type Service struct {
	db *database.Database
}

func NewService(db *database.Database) *Service {
	return &Service{db: db}
}

// classify maps a failed unit to its error kind. Kinds raised by the unit
// itself pass through; a unique violation that slipped past the pre-checks
// becomes a conflict; anything else is internal.
func classify(action string, err error, conflictMessage string) error {
	if err == nil {
		return nil
	}
	if apperrors.As(err) != nil {
		return err
	}
	if database.IsUniqueViolation(err) {
		return apperrors.Conflict(conflictMessage)
	}
	log.Printf("catalog: failed to %s: %v", action, err)
	return apperrors.Internal("failed to "+action, err)
}

// notFound converts gorm.ErrRecordNotFound into a NotFound error.
func notFound(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(resource)
	}
	return err
}

// requireIDs fails with NotFound when any of ids has no row of model.
func requireIDs(tx *gorm.DB, model any, resource string, ids []uint) error {
	missing, err := database.MissingIDs(tx, model, ids)
	if err != nil {
		return fmt.Errorf("check %s ids: %w", resource, err)
	}
	if len(missing) == 0 {
		return nil
	}
	parts := make([]string, 0, len(missing))
	for _, id := range missing {
		parts = append(parts, fmt.Sprint(id))
	}
	return apperrors.NotFound(fmt.Sprintf("%s %s", resource, strings.Join(parts, ", ")))
}

func record(tx *gorm.DB, actorID uint, action entities.AuditAction, entityType string, entityID uint, description string) error {
	if err := audit.NewRepository(tx).Record(actorID, action, entityType, entityID, description); err != nil {
		return fmt.Errorf("record audit event: %w", err)
	}
	return nil
}
