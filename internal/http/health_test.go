package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveHealth(controller *HealthController) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/health", controller.Status)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestHealthController_Status(t *testing.T) {
	t.Run("returns healthy when database is connected", func(t *testing.T) {
		db := setupTestDB(t)

		w := serveHealth(NewHealthController(db, nil, "1.0.0"))
		assert.Equal(t, http.StatusOK, w.Code)

		var response HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "1.0.0", response.Version)
		assert.Equal(t, "ok", response.Checks["database"])
		assert.Equal(t, "disabled", response.Checks["maintenance"])
		assert.Contains(t, response.Time, "T")
	})

	t.Run("reports missing database", func(t *testing.T) {
		w := serveHealth(NewHealthController(nil, nil, "1.0.0"))
		assert.Equal(t, http.StatusOK, w.Code)

		var response HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "not configured", response.Checks["database"])
	})

	t.Run("returns unhealthy when database connection is closed", func(t *testing.T) {
		db := setupTestDB(t)
		db.Close()

		w := serveHealth(NewHealthController(db, nil, "1.0.0"))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		var response HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "unhealthy", response.Status)
		assert.Contains(t, response.Checks["database"], "error")
	})
	t.Run("reports the maintenance schedule", func(t *testing.T) {
		next := time.Date(2026, 10, 17, 3, 30, 0, 0, time.UTC)
		tests := []struct {
			name   string
			status *stubMaintenance
			want   string
		}{
			{"running", &stubMaintenance{running: true, next: &next}, "next run 2026-10-17T03:30:00Z"},
			{"stopped", &stubMaintenance{}, "stopped"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				w := serveHealth(NewHealthController(setupTestDB(t), tt.status, "1.0.0"))
				assert.Equal(t, http.StatusOK, w.Code)

				var response HealthResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				assert.Equal(t, tt.want, response.Checks["maintenance"])
				assert.Equal(t, "healthy", response.Status)
			})
		}
	})
}

type stubMaintenance struct {
	running bool
	next    *time.Time
}

func (s *stubMaintenance) IsRunning() bool            { return s.running }
func (s *stubMaintenance) GetNextRunTime() *time.Time { return s.next }
