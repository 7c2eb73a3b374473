package jobs

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func fastOptions() Options {
	return Options{Steps: 4, StepDelay: time.Millisecond}
}

func TestTrackerSuccess(t *testing.T) {
	tracker := NewTracker(fastOptions(), nil, nil)

	job := tracker.Start("create a plate", "stl", func(ctx context.Context) (string, error) {
		return "plate_20240101_000000_abc123.stl", nil
	})
	if job.Status != StatusQueued {
		t.Errorf("initial status = %q, want %q", job.Status, StatusQueued)
	}
	if job.ID == "" {
		t.Error("job ID should not be empty")
	}

	tracker.Wait()

	got, err := tracker.Get(job.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Status != StatusSucceeded {
		t.Errorf("status = %q, want %q", got.Status, StatusSucceeded)
	}
	if got.Progress != 100 {
		t.Errorf("progress = %d, want 100", got.Progress)
	}
	if got.OutputFile != "plate_20240101_000000_abc123.stl" {
		t.Errorf("output file = %q", got.OutputFile)
	}
	if got.Error != "" {
		t.Errorf("error = %q, want empty", got.Error)
	}
}

func TestTrackerFailure(t *testing.T) {
	tracker := NewTracker(fastOptions(), nil, nil)

	job := tracker.Start("create a plate", "stl", func(ctx context.Context) (string, error) {
		return "", errors.New("export failed")
	})

	tracker.Wait()

	got, err := tracker.Get(job.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Status != StatusFailed {
		t.Errorf("status = %q, want %q", got.Status, StatusFailed)
	}
	if got.Error != "export failed" {
		t.Errorf("error = %q, want %q", got.Error, "export failed")
	}
	if got.Progress == 100 {
		t.Error("failed job should not reach 100 progress")
	}
	if got.OutputFile != "" {
		t.Errorf("output file = %q, want empty", got.OutputFile)
	}
}

func TestTrackerProgressMonotonic(t *testing.T) {
	tracker := NewTracker(fastOptions(), nil, nil)

	job := tracker.Start("create a cylinder", "obj", func(ctx context.Context) (string, error) {
		return "cylinder.obj", nil
	})

	last := -1
	deadline := time.After(5 * time.Second)
	for {
		got, err := tracker.Get(job.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.Progress < last {
			t.Fatalf("progress went backwards: %d then %d", last, got.Progress)
		}
		last = got.Progress
		if got.Status.Terminal() {
			break
		}
		select {
		case <-deadline:
			t.Fatal("job did not finish in time")
		default:
		}
		time.Sleep(time.Millisecond)
	}
	if last != 100 {
		t.Errorf("final progress = %d, want 100", last)
	}
}

func TestTrackerStartSnapshotIsStable(t *testing.T) {
	tracker := NewTracker(Options{Steps: 1, StepDelay: time.Nanosecond}, nil, nil)

	work := func(ctx context.Context) (string, error) { return "out.stl", nil }
	for i := 0; i < 100; i++ {
		job := tracker.Start("create a plate", "stl", work)
		if job.Status != StatusQueued {
			t.Fatalf("snapshot status = %q, want %q", job.Status, StatusQueued)
		}
		if job.Progress != 0 {
			t.Fatalf("snapshot progress = %d, want 0", job.Progress)
		}
	}
	tracker.Wait()
}

func TestTrackerGetNotFound(t *testing.T) {
	tracker := NewTracker(fastOptions(), nil, nil)

	if _, err := tracker.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestTrackerGetReturnsCopy(t *testing.T) {
	tracker := NewTracker(fastOptions(), nil, nil)

	job := tracker.Start("create a plate", "stl", func(ctx context.Context) (string, error) {
		return "plate.stl", nil
	})
	tracker.Wait()

	got, err := tracker.Get(job.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	got.Status = StatusFailed
	got.Progress = 0

	again, err := tracker.Get(job.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if again.Status != StatusSucceeded || again.Progress != 100 {
		t.Error("mutating a snapshot changed the tracked job")
	}
}

func TestTrackerListNewestFirst(t *testing.T) {
	tracker := NewTracker(fastOptions(), nil, nil)

	work := func(ctx context.Context) (string, error) { return "out.stl", nil }
	first := tracker.Start("first", "stl", work)
	time.Sleep(2 * time.Millisecond)
	second := tracker.Start("second", "stl", work)
	tracker.Wait()

	got := tracker.List()
	if len(got) != 2 {
		t.Fatalf("got %d jobs, want 2", len(got))
	}
	if got[0].ID != second.ID || got[1].ID != first.ID {
		t.Error("jobs are not ordered newest first")
	}
}

func TestEventLogRecordsLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.log")
	tracker := NewTracker(fastOptions(), NewEventLog(path), nil)

	tracker.Start("create a plate", "stl", func(ctx context.Context) (string, error) {
		return "plate.stl", nil
	})
	tracker.Wait()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open event log: %v", err)
	}
	defer f.Close()

	var events []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry Event
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("bad event line %q: %v", scanner.Text(), err)
		}
		events = append(events, entry.Event)
	}

	want := []string{EventJobQueued, EventJobStarted, EventJobSucceeded}
	if len(events) != len(want) {
		t.Fatalf("got %d events %v, want %v", len(events), events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event[%d] = %q, want %q", i, events[i], want[i])
		}
	}
}

func TestEventLogNilSafe(t *testing.T) {
	var l *EventLog
	l.JobQueued("id", "prompt")
	l.JobStarted("id")
	l.JobSucceeded("id", "out.stl")
	l.JobFailed("id", errors.New("boom"))
}
