package workers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"
)

var (
	// ErrPoolNotStarted is returned when jobs are submitted to a stopped pool
	ErrPoolNotStarted = errors.New("worker pool not started")

	// ErrNoProcessor is returned when no registered processor handles a job type
	ErrNoProcessor = errors.New("no processor for job type")
)

// JobProcessor defines the interface for processing different job types
type JobProcessor interface {
	ProcessJob(ctx context.Context, job *Job) (JobResult, error)
	CanProcess(jobType JobType) bool
}

// Worker processes jobs from a shared queue until it is closed
type Worker struct {
	id         string
	processors []JobProcessor
	jobs       <-chan *Job
	results    chan<- JobResult
}

// NewWorker creates a new worker instance
func NewWorker(id string, processors []JobProcessor, jobs <-chan *Job, results chan<- JobResult) *Worker {
	return &Worker{
		id:         id,
		processors: processors,
		jobs:       jobs,
		results:    results,
	}
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	log.Printf("[DEBUG] Worker %s starting", w.id)
	defer log.Printf("[DEBUG] Worker %s stopped", w.id)

	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-w.jobs:
			if !ok {
				return
			}
			result := w.processJob(ctx, job)
			select {
			case w.results <- result:
			case <-ctx.Done():
				return
			}
		}
	}
}

// processJob runs a job through the first processor that accepts its type
func (w *Worker) processJob(ctx context.Context, job *Job) JobResult {
	started := time.Now()

	var processor JobProcessor
	for _, p := range w.processors {
		if p.CanProcess(job.Type) {
			processor = p
			break
		}
	}

	var (
		result JobResult
		err    error
	)
	if processor == nil {
		err = fmt.Errorf("%w %q", ErrNoProcessor, job.Type)
	} else {
		result, err = processor.ProcessJob(ctx, job)
	}

	result.JobID = job.ID
	result.Type = job.Type
	result.Path = job.Path
	result.WorkerID = w.id
	result.Elapsed = time.Since(started)
	if err != nil {
		result.Err = err
		result.Error = err.Error()
		log.Printf("[ERROR] Worker %s: job %d (%s) failed: %v", w.id, job.ID, job.Path, err)
	} else {
		log.Printf("[DEBUG] Worker %s completed job %d (%s) in %v", w.id, job.ID, job.Path, result.Elapsed)
	}
	return result
}

// WorkerPool manages multiple workers sharing one job queue
type WorkerPool struct {
	workerCount int
	processors  []JobProcessor
	jobs        chan *Job
	results     chan JobResult
	wg          sync.WaitGroup
	mu          sync.RWMutex
	started     bool
}

// NewWorkerPool creates a new worker pool
func NewWorkerPool(workerCount int) *WorkerPool {
	if workerCount < 1 {
		workerCount = 1
	}
	return &WorkerPool{workerCount: workerCount}
}

// RegisterProcessor registers a processor with all workers. Call before Start.
func (p *WorkerPool) RegisterProcessor(processor JobProcessor) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.processors = append(p.processors, processor)
}

// Start starts all workers. Results must be drained while jobs are submitted.
func (p *WorkerPool) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return fmt.Errorf("worker pool already started")
	}

	log.Printf("[INFO] Starting worker pool with %d workers", p.workerCount)

	p.jobs = make(chan *Job)
	p.results = make(chan JobResult, p.workerCount)
	processors := append([]JobProcessor(nil), p.processors...)

	for i := 0; i < p.workerCount; i++ {
		worker := NewWorker(fmt.Sprintf("worker-%d", i+1), processors, p.jobs, p.results)
		p.wg.Add(1)
		go worker.run(ctx, &p.wg)
	}

	p.started = true
	return nil
}

// Submit queues a job, blocking until a worker takes it or ctx ends
func (p *WorkerPool) Submit(ctx context.Context, job *Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.started {
		return ErrPoolNotStarted
	}

	select {
	case p.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Results returns the channel results are delivered on. It is closed by Stop.
func (p *WorkerPool) Results() <-chan JobResult {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.results
}

// Stop closes the queue, waits for in-flight jobs and closes the results channel
func (p *WorkerPool) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	log.Printf("[INFO] Stopping worker pool")

	close(p.jobs)
	p.wg.Wait()
	close(p.results)

	p.started = false
}

// ProcessAll runs every job through the pool and returns the results ordered by job ID.
// Jobs not yet submitted when ctx ends are skipped and ctx's error is returned with the partial results.
func (p *WorkerPool) ProcessAll(ctx context.Context, jobs []*Job) ([]JobResult, error) {
	if err := p.Start(ctx); err != nil {
		return nil, err
	}
	results := p.Results()

	submitErr := make(chan error, 1)
	go func() {
		var err error
		for _, job := range jobs {
			if err = p.Submit(ctx, job); err != nil {
				break
			}
		}
		p.Stop()
		submitErr <- err
	}()

	collected := make([]JobResult, 0, len(jobs))
	for result := range results {
		collected = append(collected, result)
	}

	sort.Slice(collected, func(i, j int) bool {
		return collected[i].JobID < collected[j].JobID
	})
	return collected, <-submitErr
}
