package CronJobs

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultSchedule runs the daily startup at 06:00 every day.
const DefaultSchedule = "0 6 * * *"

type dailyRunner interface {
	SmartDailyStartup(date time.Time) error
}

// Status is a snapshot of the scheduler state, answered from the service's
// own fields rather than cron introspection.
type Status struct {
	Running  bool       `json:"running"`
	Schedule string     `json:"schedule"`
	LastRun  *time.Time `json:"last_run"`
	NextRun  *time.Time `json:"next_run"`
}

// SchedulerService owns the single daily-startup cron job. There is exactly
// one job handle per service; (re)scheduling replaces it under the mutex.
type SchedulerService struct {
	mu            sync.Mutex
	cronScheduler *cron.Cron
	jobID         cron.EntryID
	schedule      string
	running       bool
	lastRun       *time.Time

	runner dailyRunner
}

// NewSchedulerService creates a stopped scheduler for the given runner.
func NewSchedulerService(runner dailyRunner) *SchedulerService {
	return &SchedulerService{
		cronScheduler: cron.New(),
		schedule:      DefaultSchedule,
		runner:        runner,
	}
}

// Start schedules the daily job and starts the scheduler.
func (s *SchedulerService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}

	var err error
	s.jobID, err = s.cronScheduler.AddFunc(s.schedule, s.runDailyStartup)
	if err != nil {
		return fmt.Errorf("error scheduling daily job: %w", err)
	}

	s.cronScheduler.Start()
	s.running = true
	log.Printf("Daily scheduler started (schedule %q)", s.schedule)
	return nil
}

// Stop halts the scheduler and removes the job.
func (s *SchedulerService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.cronScheduler.Remove(s.jobID)
	s.cronScheduler.Stop()
	s.running = false
	log.Println("Daily scheduler stopped")
}

// UpdateSchedule replaces the job with a new cron expression.
// Format: "0 6 * * *" = at 06:00 every day.
func (s *SchedulerService) UpdateSchedule(schedule string) error {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		s.cronScheduler.Remove(s.jobID)
		var err error
		s.jobID, err = s.cronScheduler.AddFunc(schedule, s.runDailyStartup)
		if err != nil {
			s.running = false
			return fmt.Errorf("error updating schedule: %w", err)
		}
	}
	s.schedule = schedule
	log.Printf("Daily schedule updated to %q", schedule)
	return nil
}

// RunNow executes the daily startup outside the schedule.
func (s *SchedulerService) RunNow() error {
	s.runDailyStartup()
	return nil
}

// GetStatus reports the service state. The next-run time is computed from
// the owned schedule expression.
func (s *SchedulerService) GetStatus() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := Status{
		Running:  s.running,
		Schedule: s.schedule,
		LastRun:  s.lastRun,
	}
	if s.running {
		if spec, err := cron.ParseStandard(s.schedule); err == nil {
			next := spec.Next(time.Now())
			status.NextRun = &next
		}
	}
	return status
}

func (s *SchedulerService) runDailyStartup() {
	now := time.Now()
	log.Println("Running scheduled daily startup")
	if err := s.runner.SmartDailyStartup(now); err != nil {
		log.Printf("Daily startup failed: %v", err)
	} else {
		log.Println("Daily startup completed")
	}

	s.mu.Lock()
	s.lastRun = &now
	s.mu.Unlock()
}
