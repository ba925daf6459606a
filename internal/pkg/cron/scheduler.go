package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Schedule yields the next fire time strictly after the given instant.
type Schedule interface {
	Next(after time.Time) time.Time
}

// Every fires at a fixed interval.
type Every time.Duration

func (e Every) Next(after time.Time) time.Time {
	return after.Add(time.Duration(e))
}

// MonthlyAt fires once a month on the given day at the given UTC hour.
// Day must be 1..28 so every month has the date.
type MonthlyAt struct {
	Day  int
	Hour int
}

func (m MonthlyAt) Next(after time.Time) time.Time {
	after = after.UTC()
	next := time.Date(after.Year(), after.Month(), m.Day, m.Hour, 0, 0, 0, time.UTC)
	if !next.After(after) {
		next = next.AddDate(0, 1, 0)
	}
	return next
}

// Job pairs a schedule with the work it triggers.
type Job struct {
	Name     string
	Schedule Schedule
	Fn       func(ctx context.Context) error
}

// Scheduler runs registered jobs on their schedules until stopped.
type Scheduler struct {
	jobs   []Job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
	now    func() time.Time
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		ctx:    ctx,
		cancel: cancel,
		now:    time.Now,
	}
}

func (s *Scheduler) AddJob(name string, schedule Schedule, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, Job{
		Name:     name,
		Schedule: schedule,
		Fn:       fn,
	})
	slog.Info("scheduled job registered", "name", name, "next_run", schedule.Next(s.now()))
}

// Start launches one goroutine per registered job.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runJob(job)
	}

	slog.Info("scheduler started", "job_count", len(s.jobs))
}

// Stop cancels every job and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Info("scheduler stopped")
}

func (s *Scheduler) runJob(job Job) {
	defer s.wg.Done()

	timer := time.NewTimer(time.Until(job.Schedule.Next(s.now())))
	defer timer.Stop()

	for {
		select {
		case <-s.ctx.Done():
			slog.Info("scheduled job stopping", "name", job.Name)
			return
		case <-timer.C:
			s.executeJob(job)
			timer.Reset(time.Until(job.Schedule.Next(s.now())))
		}
	}
}

func (s *Scheduler) executeJob(job Job) {
	start := s.now()

	if err := job.Fn(s.ctx); err != nil {
		slog.Error("scheduled job failed", "name", job.Name, "error", err, "duration", time.Since(start))
		return
	}
	slog.Debug("scheduled job completed", "name", job.Name, "duration", time.Since(start))
}
