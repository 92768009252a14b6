package cleanup

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Service periodically removes decode scratch files that outlived their call,
// e.g. after the process was killed mid-extraction
type Service struct {
	tempDir         string
	pattern         string
	maxAge          time.Duration
	cleanupInterval time.Duration
	cancel          context.CancelFunc
	wg              sync.WaitGroup
}

// NewService creates a new cleanup service matching file names against a filepath.Match pattern
func NewService(tempDir, pattern string, maxAge, cleanupInterval time.Duration) *Service {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &Service{
		tempDir:         tempDir,
		pattern:         pattern,
		maxAge:          maxAge,
		cleanupInterval: cleanupInterval,
	}
}

// Start runs an initial sweep and then sweeps on every interval until ctx ends or Stop is called
func (s *Service) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.Sweep()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-ctx.Done():
				log.Println("[INFO] Cleanup service stopped")
				return
			}
		}
	}()

	log.Printf("[INFO] Cleanup service started (dir: %s, interval: %v, max age: %v)", s.tempDir, s.cleanupInterval, s.maxAge)
}

// Stop stops the cleanup service
func (s *Service) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// Sweep removes matching files older than maxAge and returns how many were removed
func (s *Service) Sweep() int {
	matches, err := filepath.Glob(filepath.Join(s.tempDir, s.pattern))
	if err != nil {
		log.Printf("[ERROR] Cleanup glob error: %v", err)
		return 0
	}

	removed := 0
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		if time.Since(info.ModTime()) <= s.maxAge {
			continue
		}

		log.Printf("[DEBUG] Removing stale temp file: %s", path)
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("[WARN] Failed to remove temp file %s: %v", path, err)
			continue
		}
		removed++
	}
	return removed
}

// RemoveTempFile deletes a scratch file. Failure is logged, never returned.
func RemoveTempFile(path string) {
	if path == "" {
		return
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[WARN] Failed to cleanup temp file %s: %v", path, err)
	}
}
