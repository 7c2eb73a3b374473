package jobs

import (
	"encoding/json"
	"os"
	"time"
)

// Event type constants for the job event log.
const (
	EventJobQueued    = "job_queued"
	EventJobStarted   = "job_started"
	EventJobSucceeded = "job_succeeded"
	EventJobFailed    = "job_failed"
)

// Event represents a single job log entry.
type Event struct {
	Timestamp time.Time              `json:"timestamp"`
	Event     string                 `json:"event"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// EventLog writes job lifecycle events to a JSON Lines file. A nil
// EventLog is valid and discards all events.
type EventLog struct {
	path string
}

// NewEventLog creates an event log backed by the given file path.
func NewEventLog(path string) *EventLog {
	return &EventLog{path: path}
}

// Log appends an event to the log file. Errors are swallowed; the log
// is advisory and must never interfere with job execution.
func (l *EventLog) Log(event string, data map[string]interface{}) {
	if l == nil {
		return
	}

	entry := Event{
		Timestamp: time.Now(),
		Event:     event,
		Data:      data,
	}

	jsonBytes, err := json.Marshal(entry)
	if err != nil {
		return
	}
	jsonBytes = append(jsonBytes, '\n')

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	_, _ = f.Write(jsonBytes)
}

// JobQueued logs a job_queued event.
func (l *EventLog) JobQueued(jobID, prompt string) {
	l.Log(EventJobQueued, map[string]interface{}{
		"job_id": jobID,
		"prompt": prompt,
	})
}

// JobStarted logs a job_started event.
func (l *EventLog) JobStarted(jobID string) {
	l.Log(EventJobStarted, map[string]interface{}{
		"job_id": jobID,
	})
}

// JobSucceeded logs a job_succeeded event with the produced file.
func (l *EventLog) JobSucceeded(jobID, outputFile string) {
	l.Log(EventJobSucceeded, map[string]interface{}{
		"job_id":      jobID,
		"output_file": outputFile,
	})
}

// JobFailed logs a job_failed event.
func (l *EventLog) JobFailed(jobID string, err error) {
	l.Log(EventJobFailed, map[string]interface{}{
		"job_id": jobID,
		"error":  err.Error(),
	})
}
