package workers

import (
	"context"
	"fmt"
	"log"

	"github.com/killallgit/audioengine/internal/services/waveforms"
)

// WaveformProcessor precomputes waveforms through the caching service, so decoded
// results land in the cache and the waveform store
type WaveformProcessor struct {
	waveformService waveforms.WaveformService
}

// NewWaveformProcessor creates a new waveform processor
func NewWaveformProcessor(waveformService waveforms.WaveformService) *WaveformProcessor {
	return &WaveformProcessor{waveformService: waveformService}
}

// CanProcess returns true if this processor can handle the job type
func (p *WaveformProcessor) CanProcess(jobType JobType) bool {
	return jobType == JobTypeWaveform
}

// ProcessJob computes one waveform
func (p *WaveformProcessor) ProcessJob(ctx context.Context, job *Job) (JobResult, error) {
	if !p.CanProcess(job.Type) {
		return JobResult{}, fmt.Errorf("unsupported job type: %s", job.Type)
	}

	log.Printf("[DEBUG] Processing waveform job %d for %s", job.ID, job.Path)

	waveform, err := p.waveformService.GetWaveform(ctx, job.Path, job.Width)
	if err != nil {
		return JobResult{}, fmt.Errorf("failed to generate waveform: %w", err)
	}

	return JobResult{
		Source:   string(waveform.Source),
		Peaks:    len(waveform.Peaks),
		Duration: waveform.Duration,
	}, nil
}

// MetadataProcessor warms the metadata cache
type MetadataProcessor struct {
	waveformService waveforms.WaveformService
}

// NewMetadataProcessor creates a new metadata processor
func NewMetadataProcessor(waveformService waveforms.WaveformService) *MetadataProcessor {
	return &MetadataProcessor{waveformService: waveformService}
}

// CanProcess returns true if this processor can handle the job type
func (p *MetadataProcessor) CanProcess(jobType JobType) bool {
	return jobType == JobTypeMetadata
}

// ProcessJob resolves metadata for one file
func (p *MetadataProcessor) ProcessJob(ctx context.Context, job *Job) (JobResult, error) {
	if !p.CanProcess(job.Type) {
		return JobResult{}, fmt.Errorf("unsupported job type: %s", job.Type)
	}

	meta, err := p.waveformService.GetMetadata(ctx, job.Path)
	if err != nil {
		return JobResult{}, fmt.Errorf("failed to read metadata: %w", err)
	}

	return JobResult{
		Source:   string(meta.Source),
		Duration: meta.Duration,
	}, nil
}
