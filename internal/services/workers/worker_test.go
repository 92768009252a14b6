package workers

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProcessor records concurrency and fails jobs whose path is "fail"
type stubProcessor struct {
	jobType  JobType
	delay    time.Duration
	inFlight atomic.Int32
	maxSeen  atomic.Int32
	handled  atomic.Int32
}

func (s *stubProcessor) CanProcess(jobType JobType) bool {
	return jobType == s.jobType
}

func (s *stubProcessor) ProcessJob(ctx context.Context, job *Job) (JobResult, error) {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		seen := s.maxSeen.Load()
		if n <= seen || s.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}

	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
		return JobResult{}, ctx.Err()
	}

	s.handled.Add(1)
	if job.Path == "fail" {
		return JobResult{}, errors.New("stub failure")
	}
	return JobResult{Source: "decoded", Peaks: job.Width}, nil
}

func TestWorkerPool_ProcessAll(t *testing.T) {
	processor := &stubProcessor{jobType: JobTypeWaveform, delay: 5 * time.Millisecond}
	pool := NewWorkerPool(3)
	pool.RegisterProcessor(processor)

	jobs := make([]*Job, 12)
	for i := range jobs {
		jobs[i] = &Job{ID: i + 1, Type: JobTypeWaveform, Path: "clip.mp3", Width: i + 1}
	}
	jobs[4].Path = "fail"

	results, err := pool.ProcessAll(context.Background(), jobs)
	require.NoError(t, err)
	require.Len(t, results, 12)

	for i, result := range results {
		assert.Equal(t, i+1, result.JobID, "results are ordered by job ID")
		assert.NotEmpty(t, result.WorkerID)
		if result.JobID == 5 {
			assert.True(t, result.Failed())
			assert.Equal(t, "stub failure", result.Error)
			continue
		}
		assert.False(t, result.Failed())
		assert.Equal(t, i+1, result.Peaks)
	}

	assert.Equal(t, int32(12), processor.handled.Load())
	assert.LessOrEqual(t, processor.maxSeen.Load(), int32(3), "never more jobs in flight than workers")
}

func TestWorkerPool_UnknownJobType(t *testing.T) {
	pool := NewWorkerPool(1)
	pool.RegisterProcessor(&stubProcessor{jobType: JobTypeWaveform})

	results, err := pool.ProcessAll(context.Background(), []*Job{{ID: 1, Type: JobTypeMetadata, Path: "a.mp3"}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, ErrNoProcessor)
}

func TestWorkerPool_Cancellation(t *testing.T) {
	processor := &stubProcessor{jobType: JobTypeWaveform, delay: time.Second}
	pool := NewWorkerPool(2)
	pool.RegisterProcessor(processor)

	jobs := make([]*Job, 10)
	for i := range jobs {
		jobs[i] = &Job{ID: i + 1, Type: JobTypeWaveform, Path: "slow.mp3"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	started := time.Now()
	results, err := pool.ProcessAll(ctx, jobs)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, len(results), 10)
	assert.Less(t, time.Since(started), 900*time.Millisecond)
}

func TestWorkerPool_Lifecycle(t *testing.T) {
	pool := NewWorkerPool(0)
	assert.Equal(t, 1, pool.workerCount, "worker count is at least one")

	err := pool.Submit(context.Background(), &Job{ID: 1})
	assert.ErrorIs(t, err, ErrPoolNotStarted)

	require.NoError(t, pool.Start(context.Background()))
	assert.Error(t, pool.Start(context.Background()), "double start")

	pool.Stop()
	pool.Stop()

	// A stopped pool can be started again
	pool.RegisterProcessor(&stubProcessor{jobType: JobTypeWaveform})
	results, err := pool.ProcessAll(context.Background(), []*Job{{ID: 7, Type: JobTypeWaveform, Width: 3}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 3, results[0].Peaks)
}

func TestWorkerPool_SubmitAndDrain(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.RegisterProcessor(&stubProcessor{jobType: JobTypeWaveform})
	require.NoError(t, pool.Start(context.Background()))

	results := pool.Results()
	var collected []JobResult
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for r := range results {
			collected = append(collected, r)
		}
	}()

	for i := 1; i <= 5; i++ {
		require.NoError(t, pool.Submit(context.Background(), &Job{ID: i, Type: JobTypeWaveform}))
	}
	pool.Stop()
	wg.Wait()

	assert.Len(t, collected, 5)
}
