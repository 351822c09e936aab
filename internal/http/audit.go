package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/entities"
)

// AuditStore reads audit events. Implemented by audit.Repository.
type AuditStore interface {
	GetEvents(userID uint, limit, offset int) ([]entities.AuditEvent, int64, error)
	GetEventsForEntity(entityType string, entityID uint) ([]entities.AuditEvent, error)
}

var auditEntityTypes = map[string]bool{
	"author":      true,
	"book":        true,
	"book_review": true,
	"category":    true,
	"editorial":   true,
}

type AuditController struct {
	store AuditStore
}

func NewAuditController(store AuditStore) *AuditController {
	return &AuditController{
		store: store,
	}
}

// GetAuditEvents returns the caller's audit events, newest first
// GET /api/audit
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	userID := GetUserID(c)
	page, limit := parsePagination(c, 25, 100)
	offset := (page - 1) * limit

	events, total, err := ac.store.GetEvents(userID, limit, offset)
	if err != nil {
		respondInternalError(c, err, "load audit events")
		return
	}

	totalPages := (int(total) + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	respondOK(c, PaginatedResponse{
		Data:       events,
		Total:      total,
		Limit:      limit,
		Offset:     offset,
		HasMore:    int64(offset+len(events)) < total,
		TotalPages: totalPages,
	})
}

// GetEntityHistory returns every recorded change of one catalog entity, oldest first
// GET /api/audit/:entity/:id
func (ac *AuditController) GetEntityHistory(c *gin.Context) {
	entityType := c.Param("entity")
	if !auditEntityTypes[entityType] {
		respondBadRequest(c, "unknown entity type")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	events, err := ac.store.GetEventsForEntity(entityType, id)
	if err != nil {
		respondInternalError(c, err, "load entity history")
		return
	}
	respondOK(c, events)
}
