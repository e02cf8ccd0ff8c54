// Package scheduler runs the three named, cron-triggered jobs as
// independent goroutines, one per job, each woken by its own timer
// computed from a parsed cron expression — not by a cron library's own
// trigger loop, so job execution stays visible and individually
// start/stoppable (per spec.md's REDESIGN FLAGS on scheduler
// architecture).
package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"compliance-intel-backend/internal/core/domain"
	"compliance-intel-backend/internal/core/port"
)

// JobFunc executes one run of a named job and returns the history row
// to persist. It must never panic; errors are captured per-record.
type JobFunc func(ctx context.Context) *domain.JobHistory

// job is one scheduler-managed named job: its cron schedule, its work
// function, and the goroutine control handle.
type job struct {
	name     string
	schedule cron.Schedule
	fn       JobFunc
	stop     chan struct{}
	running  bool
}

// Scheduler holds one handle per named job. Start/Stop on a job is
// atomic: the goroutine either is running (stop channel open) or is
// not (per spec.md §5's "atomic, no partial state"), guarded by mu
// since HTTP handlers call Start/Stop/Trigger/Names/IsRunning from
// request goroutines concurrently with each job's own timer loop.
type Scheduler struct {
	store port.Store
	mu    sync.Mutex
	jobs  map[string]*job
}

func New(store port.Store) *Scheduler {
	return &Scheduler{store: store, jobs: map[string]*job{}}
}

// Register parses expr and adds a named job, initially stopped.
func (s *Scheduler) Register(name, expr string, fn JobFunc) error {
	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[name] = &job{name: name, schedule: schedule, fn: fn}
	return nil
}

// StartAll starts every registered job's timer goroutine.
func (s *Scheduler) StartAll() {
	for _, name := range s.Names() {
		s.Start(name)
	}
}

// Start begins the named job's timer goroutine if it is not already
// running. A no-op on an unknown name.
func (s *Scheduler) Start(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[name]
	if !ok || j.running {
		return false
	}
	j.stop = make(chan struct{})
	j.running = true
	go s.loop(j)
	return true
}

// Stop halts the named job's timer goroutine after its current run
// (if any) completes. A no-op on an unknown or already-stopped job.
func (s *Scheduler) Stop(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[name]
	if !ok || !j.running {
		return false
	}
	close(j.stop)
	j.running = false
	return true
}

// Trigger runs the named job immediately, outside its schedule, and
// persists its result like any other run.
func (s *Scheduler) Trigger(ctx context.Context, name string) (*domain.JobHistory, bool) {
	s.mu.Lock()
	j, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return nil, false
	}
	return s.run(ctx, j), true
}

// Names lists every registered job name.
func (s *Scheduler) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.jobs))
	for n := range s.jobs {
		names = append(names, n)
	}
	return names
}

// IsRunning reports whether the named job's timer goroutine is active.
func (s *Scheduler) IsRunning(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[name]
	return ok && j.running
}

func (s *Scheduler) loop(j *job) {
	for {
		next := j.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-timer.C:
			s.run(context.Background(), j)
		case <-j.stop:
			timer.Stop()
			return
		}
	}
}

func (s *Scheduler) run(ctx context.Context, j *job) *domain.JobHistory {
	history := j.fn(ctx)
	if history == nil {
		return nil
	}
	if err := s.store.AppendJobHistory(ctx, history); err != nil {
		log.Printf("scheduler: failed to persist job history for %s: %v", j.name, err)
	}
	return history
}
