package domain

import "time"

// JobStatus is the terminal status of a scheduled job run.
type JobStatus string

const (
	JobSuccess JobStatus = "success"
	JobPartial JobStatus = "partial"
	JobFailed  JobStatus = "failed"
)

// JobError is one per-record failure captured during a job run.
type JobError struct {
	Timestamp time.Time
	Message   string
	Context   string
}

// JobHistory is the append-only, owned record of a single job
// execution.
type JobHistory struct {
	JobID            string
	JobName          string
	Status           JobStatus
	StartTime        time.Time
	EndTime          time.Time
	DurationMs       int64
	RecordsProcessed int
	Errors           []JobError
}
