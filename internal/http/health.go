package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/database"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// MaintenanceStatus reports the maintenance scheduler.
// Implemented by *scheduler.MaintenanceScheduler.
type MaintenanceStatus interface {
	IsRunning() bool
	GetNextRunTime() *time.Time
}

type HealthController struct {
	db          *database.Database
	maintenance MaintenanceStatus
	version     string
}

// NewHealthController creates the health controller. maintenance may be nil.
func NewHealthController(db *database.Database, maintenance MaintenanceStatus, version string) *HealthController {
	return &HealthController{
		db:          db,
		maintenance: maintenance,
		version:     version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
	}

	// The scheduler never affects the overall status
	switch {
	case h.maintenance == nil:
		checks["maintenance"] = "disabled"
	case !h.maintenance.IsRunning():
		checks["maintenance"] = "stopped"
	default:
		if next := h.maintenance.GetNextRunTime(); next != nil {
			checks["maintenance"] = "next run " + next.Format(time.RFC3339)
		} else {
			checks["maintenance"] = "running"
		}
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
