package workers

import "time"

// JobType identifies what a job computes
type JobType string

const (
	JobTypeWaveform JobType = "waveform"
	JobTypeMetadata JobType = "metadata"
)

// Job is a single precomputation request for one file
type Job struct {
	ID    int
	Type  JobType
	Path  string
	Width int // waveform jobs only, < 1 for the default
}

// JobResult reports the outcome of one job
type JobResult struct {
	JobID    int           `json:"job_id"`
	Type     JobType       `json:"type"`
	Path     string        `json:"path"`
	WorkerID string        `json:"worker_id"`
	Source   string        `json:"source,omitempty"` // decoded/synthetic or probe/estimate
	Peaks    int           `json:"peaks,omitempty"`
	Duration float64       `json:"duration,omitempty"`
	Elapsed  time.Duration `json:"elapsed"`
	Error    string        `json:"error,omitempty"`
	Err      error         `json:"-"`
}

// Failed reports whether the job returned an error
func (r JobResult) Failed() bool {
	return r.Err != nil
}
