package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule checks a five field cron expression.
func ValidateCronSchedule(schedule string) error {
	_, err := scheduleParser.Parse(schedule)
	return err
}

// TokenPruner deletes expired access tokens. Implemented by *auth.Service.
type TokenPruner interface {
	PruneExpiredTokens(ctx context.Context) (int64, error)
}

// AuditPruner deletes audit events. Implemented by *audit.Repository.
type AuditPruner interface {
	DeleteOldEvents(olderThan time.Time) (int64, error)
}

// MaintenanceResult reports what one maintenance run removed.
type MaintenanceResult struct {
	TokensPruned int64
	EventsPruned int64
}

// Maintenance prunes expired credentials and audit events past retention.
type Maintenance struct {
	tokens        TokenPruner
	events        AuditPruner
	retentionDays int
	now           func() time.Time
}

func NewMaintenance(tokens TokenPruner, events AuditPruner, retentionDays int) *Maintenance {
	return &Maintenance{
		tokens:        tokens,
		events:        events,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// Run executes one maintenance pass. A retention of zero or less keeps
// audit events forever.
func (m *Maintenance) Run(ctx context.Context) (MaintenanceResult, error) {
	var result MaintenanceResult

	pruned, err := m.tokens.PruneExpiredTokens(ctx)
	if err != nil {
		return result, fmt.Errorf("prune tokens: %w", err)
	}
	result.TokensPruned = pruned

	if m.retentionDays > 0 {
		cutoff := m.now().AddDate(0, 0, -m.retentionDays)
		deleted, err := m.events.DeleteOldEvents(cutoff)
		if err != nil {
			return result, fmt.Errorf("prune audit events: %w", err)
		}
		result.EventsPruned = deleted
	}

	return result, nil
}

// RunMaintenance runs one pass inline and logs what it removed.
func (m *Maintenance) RunMaintenance(ctx context.Context) error {
	result, err := m.Run(ctx)
	if err != nil {
		return err
	}
	log.Printf("Maintenance: pruned %d expired tokens and %d audit events",
		result.TokensPruned, result.EventsPruned)
	return nil
}

// Job is triggered on every scheduler tick. *Maintenance runs inline,
// tasks.MaintenanceDispatcher hands the run to the task queue.
type Job interface {
	RunMaintenance(ctx context.Context) error
}

// MaintenanceScheduler triggers a Job on a cron schedule.
type MaintenanceScheduler struct {
	job      Job
	schedule string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewMaintenanceScheduler creates a new scheduler instance
func NewMaintenanceScheduler(job Job, schedule string) *MaintenanceScheduler {
	return &MaintenanceScheduler{
		job:      job,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(scheduleParser)),
	}
}

// Start schedules the job and starts the cron runner. The scheduler stops
// when ctx is cancelled.
func (s *MaintenanceScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateCronSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runMaintenance(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule maintenance job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Maintenance scheduler: started with schedule '%s'. Next run: %v",
		s.schedule, s.cron.Entry(entryID).Next)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler
func (s *MaintenanceScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Stop accepting new jobs and wait for running jobs to complete
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.cron.Remove(s.entryID)
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Maintenance scheduler: stopped")
}

// IsRunning returns whether the scheduler is active
func (s *MaintenanceScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next run will occur
func (s *MaintenanceScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	entry := s.cron.Entry(s.entryID)
	if !entry.Valid() {
		return nil
	}
	t := entry.Next
	return &t
}

func (s *MaintenanceScheduler) runMaintenance(ctx context.Context) {
	startTime := time.Now()

	if err := s.job.RunMaintenance(ctx); err != nil {
		log.Printf("Maintenance: failed: %v", err)
		return
	}

	log.Printf("Maintenance: tick finished in %v", time.Since(startTime).Round(time.Millisecond))
}
