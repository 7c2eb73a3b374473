package jobs

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotFound is returned when a job ID is not known to the tracker.
var ErrNotFound = errors.New("job not found")

// Status represents the lifecycle state of a background job.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Terminal reports whether the status is a final state.
func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// Job describes a background model build and its progress.
type Job struct {
	ID         string    `json:"id"`
	Status     Status    `json:"status"`
	Progress   int       `json:"progress"`
	Prompt     string    `json:"prompt"`
	Format     string    `json:"format"`
	OutputFile string    `json:"output_file,omitempty"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// WorkFunc performs the actual build for a job and returns the name of
// the file it produced.
type WorkFunc func(ctx context.Context) (string, error)

// Options tunes how the tracker advances job progress.
type Options struct {
	// Steps is the number of progress increments before the work runs.
	Steps int
	// StepDelay is the pause between progress increments.
	StepDelay time.Duration
}

const (
	defaultSteps     = 20
	defaultStepDelay = 150 * time.Millisecond
)

// Tracker runs build jobs in the background and tracks their progress.
type Tracker struct {
	mu     sync.RWMutex
	jobs   map[string]*Job
	steps  int
	delay  time.Duration
	events *EventLog
	logger *zap.Logger
	wg     sync.WaitGroup
}

// NewTracker creates a tracker. A nil events log disables event recording.
func NewTracker(opts Options, events *EventLog, logger *zap.Logger) *Tracker {
	if opts.Steps <= 0 {
		opts.Steps = defaultSteps
	}
	if opts.StepDelay <= 0 {
		opts.StepDelay = defaultStepDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{
		jobs:   make(map[string]*Job),
		steps:  opts.Steps,
		delay:  opts.StepDelay,
		events: events,
		logger: logger,
	}
}

// Start registers a new job and launches its work in the background.
// The returned snapshot has status queued; poll Get for updates.
func (t *Tracker) Start(prompt, format string, work WorkFunc) Job {
	now := time.Now().UTC()
	job := &Job{
		ID:        uuid.NewString(),
		Status:    StatusQueued,
		Prompt:    prompt,
		Format:    format,
		CreatedAt: now,
		UpdatedAt: now,
	}

	t.mu.Lock()
	t.jobs[job.ID] = job
	t.mu.Unlock()

	// Snapshot before the worker goroutine starts mutating the record.
	snapshot := *job

	t.events.JobQueued(job.ID, prompt)

	t.wg.Add(1)
	go t.run(job.ID, work)

	return snapshot
}

// Get returns a snapshot of the job with the given ID.
func (t *Tracker) Get(id string) (Job, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	job, ok := t.jobs[id]
	if !ok {
		return Job{}, ErrNotFound
	}
	return *job, nil
}

// List returns snapshots of all known jobs, newest first.
func (t *Tracker) List() []Job {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Job, 0, len(t.jobs))
	for _, job := range t.jobs {
		out = append(out, *job)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Wait blocks until all running jobs have finished. Intended for tests
// and graceful shutdown.
func (t *Tracker) Wait() {
	t.wg.Wait()
}

// run advances the job's progress in fixed increments, then executes
// the work func. Jobs outlive the request that started them, so the
// work runs under a background context.
func (t *Tracker) run(id string, work WorkFunc) {
	defer t.wg.Done()

	t.update(id, func(j *Job) {
		j.Status = StatusRunning
	})
	t.events.JobStarted(id)

	for i := 1; i <= t.steps; i++ {
		time.Sleep(t.delay)
		progress := i * 100 / t.steps
		if progress > 99 {
			progress = 99
		}
		t.update(id, func(j *Job) {
			j.Progress = progress
		})
	}

	file, err := work(context.Background())
	if err != nil {
		t.update(id, func(j *Job) {
			j.Status = StatusFailed
			j.Error = err.Error()
		})
		t.events.JobFailed(id, err)
		t.logger.Warn("job failed", zap.String("job_id", id), zap.Error(err))
		return
	}

	t.update(id, func(j *Job) {
		j.Status = StatusSucceeded
		j.Progress = 100
		j.OutputFile = file
	})
	t.events.JobSucceeded(id, file)
	t.logger.Info("job succeeded", zap.String("job_id", id), zap.String("output_file", file))
}

func (t *Tracker) update(id string, fn func(*Job)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	job, ok := t.jobs[id]
	if !ok || job.Status.Terminal() {
		return
	}
	fn(job)
	job.UpdatedAt = time.Now().UTC()
}
