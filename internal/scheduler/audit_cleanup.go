// Package scheduler runs periodic maintenance jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/openshelf/openshelf/internal/config"
	"github.com/openshelf/openshelf/internal/tasks"
)

// AuditCleanupScheduler periodically enqueues the audit event cleanup task.
type AuditCleanupScheduler struct {
	taskClient *tasks.Client
	cfg        config.Audit

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewAuditCleanupScheduler creates a new scheduler instance.
func NewAuditCleanupScheduler(taskClient *tasks.Client, cfg config.Audit) *AuditCleanupScheduler {
	return &AuditCleanupScheduler{
		taskClient: taskClient,
		cfg:        cfg,
		cron:       cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler.
func (s *AuditCleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.taskClient == nil {
		log.Printf("Audit cleanup scheduler: task queue not configured, skipping")
		return nil
	}

	schedule := s.cfg.CleanupSchedule
	if schedule == "" {
		schedule = "0 3 * * *"
	}

	entryID, err := s.cron.AddFunc(schedule, func() {
		s.enqueueCleanup()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule audit cleanup job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Audit cleanup scheduler: started with schedule '%s' (retention %d days)",
		schedule, s.cfg.RetentionDays)

	// Monitor for context cancellation
	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler.
func (s *AuditCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.isRunning = false

	log.Printf("Audit cleanup scheduler: stopped")
}

func (s *AuditCleanupScheduler) enqueueCleanup() {
	task := tasks.CleanupAuditEventsTask{RetentionDays: s.cfg.RetentionDays}
	if _, err := s.taskClient.Add(task).Save(); err != nil {
		log.Printf("Audit cleanup scheduler: failed to enqueue cleanup task: %v", err)
		return
	}
	log.Printf("Audit cleanup scheduler: enqueued cleanup task")
}
