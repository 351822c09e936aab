package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/scheduler"
)

type fakeRunner struct {
	results chan scheduler.MaintenanceResult
	err     error
}

func (f *fakeRunner) Run(_ context.Context) (scheduler.MaintenanceResult, error) {
	if f.err != nil {
		return scheduler.MaintenanceResult{}, f.err
	}
	result := scheduler.MaintenanceResult{TokensPruned: 2, EventsPruned: 5}
	f.results <- result
	return result, nil
}

func newTestClient(t *testing.T) (*Client, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	client, err := NewClient(dbPath, config.Tasks{Workers: 1})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client, dbPath
}

func TestDatabasePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/data/catalog.db", "/data/catalog-tasks.db"},
		{"catalog", "catalog-tasks"},
		{"", "library-catalog-tasks.db"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, DatabasePath(tt.in))
		})
	}
}

func TestNewClient(t *testing.T) {
	_, dbPath := newTestClient(t)

	_, err := os.Stat(DatabasePath(dbPath))
	assert.NoError(t, err, "tasks database should be created")
}

func TestClientStartStop(t *testing.T) {
	client, _ := newTestClient(t)

	assert.True(t, client.Stop(context.Background()), "stopping an idle client is a no-op")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)
	time.Sleep(50 * time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	assert.True(t, client.Stop(stopCtx))
}

func TestMaintenanceTaskConfig(t *testing.T) {
	cfg := MaintenanceTask{}.Config()

	assert.Equal(t, "catalog_maintenance", cfg.Name)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 5*time.Minute, cfg.Backoff)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
	assert.NotNil(t, cfg.Retention)
}

func TestMaintenanceProcessor(t *testing.T) {
	t.Run("nil runner", func(t *testing.T) {
		err := MaintenanceProcessor(nil)(context.Background(), MaintenanceTask{})
		assert.Error(t, err)
	})

	t.Run("runner failure is retried", func(t *testing.T) {
		runner := &fakeRunner{err: errors.New("database is locked")}
		err := MaintenanceProcessor(runner)(context.Background(), MaintenanceTask{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database is locked")
	})

	t.Run("success", func(t *testing.T) {
		runner := &fakeRunner{results: make(chan scheduler.MaintenanceResult, 1)}
		err := MaintenanceProcessor(runner)(context.Background(), MaintenanceTask{RequestedAt: time.Now()})
		require.NoError(t, err)
		assert.Len(t, runner.results, 1)
	})
}

func TestMaintenanceDispatcher_EnqueuesAndRuns(t *testing.T) {
	client, _ := newTestClient(t)

	runner := &fakeRunner{results: make(chan scheduler.MaintenanceResult, 1)}
	client.Register(NewMaintenanceQueue(runner))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	var job scheduler.Job = NewMaintenanceDispatcher(client)
	require.NoError(t, job.RunMaintenance(context.Background()))

	select {
	case result := <-runner.results:
		assert.Equal(t, int64(2), result.TokensPruned)
		assert.Equal(t, int64(5), result.EventsPruned)
	case <-time.After(5 * time.Second):
		t.Fatal("maintenance task was not executed within timeout")
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	client.Stop(stopCtx)
}
