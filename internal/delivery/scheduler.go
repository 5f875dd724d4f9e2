package delivery

import (
	"sync"
	"time"
)

// Task is a handle to one scheduled background job. Cancel stops the job
// if it has not fired yet. Nothing cancels tasks today, but the handle
// exists so an abort path can be added without reworking the engine.
type Task struct {
	timer *time.Timer
	sched *Scheduler
}

// Cancel stops the task and reports whether it was still pending.
func (t *Task) Cancel() bool {
	stopped := t.timer.Stop()
	if stopped {
		t.sched.done()
	}
	return stopped
}

// Scheduler runs detached timer-based jobs, such as simulated customer
// replies, and tracks how many are still outstanding.
type Scheduler struct {
	mu      sync.Mutex
	pending int
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// After schedules fn to run once after d and returns its handle.
func (s *Scheduler) After(d time.Duration, fn func()) *Task {
	s.mu.Lock()
	s.pending++
	s.mu.Unlock()

	task := &Task{sched: s}
	task.timer = time.AfterFunc(d, func() {
		defer s.done()
		fn()
	})
	return task
}

// Pending reports the number of scheduled jobs that have not completed.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

func (s *Scheduler) done() {
	s.mu.Lock()
	s.pending--
	s.mu.Unlock()
}
