package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/killallgit/audioengine/internal/database"
	"github.com/killallgit/audioengine/internal/services/audio"
	"github.com/killallgit/audioengine/internal/services/cache"
	"github.com/killallgit/audioengine/internal/services/cleanup"
	"github.com/killallgit/audioengine/internal/services/waveforms"
	"github.com/killallgit/audioengine/pkg/config"
	"github.com/killallgit/audioengine/pkg/ffmpeg"
)

const defaultCheckTimeout = 10 * time.Second

// componentOptions selects which optional parts a command needs
type componentOptions struct {
	DisableDecoder bool // Force the estimator and synthesizer paths
	UseStore       bool // Open the SQLite waveform store when database.path is set
	SweepTemp      bool // Run the orphaned scratch file sweeper
}

// components is the engine stack shared by every command that touches audio files
type components struct {
	cfg     *config.Config
	engine  *audio.Engine
	cache   *cache.MemoryCache
	db      *database.DB
	service waveforms.WaveformService
	sweeper *cleanup.Service
}

// buildComponents wires decoder, engine, cache, store and caching facade from configuration
// and runs the one-time decoder availability probe
func buildComponents(ctx context.Context, cfg *config.Config, opts componentOptions) (*components, error) {
	decoder := ffmpeg.New(cfg.Decoder.FFmpegPath, cfg.Decoder.FFprobePath, cfg.Decoder.Timeout)
	engine := audio.New(decoder, audio.Options{
		TempDir:        cfg.Decoder.TempDir,
		DefaultWidth:   cfg.Waveform.DefaultWidth,
		DisableDecoder: opts.DisableDecoder || !cfg.Decoder.Enabled,
	})

	checkTimeout := cfg.Decoder.CheckTimeout
	if checkTimeout <= 0 {
		checkTimeout = defaultCheckTimeout
	}
	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	avail := engine.Initialize(checkCtx)
	cancel()
	log.Printf("[DEBUG] Decoder available: %v (%d formats)", avail.Available, avail.Formats)

	c := &components{
		cfg:    cfg,
		engine: engine,
		cache:  cache.NewMemoryCache(cfg.Cache.Memory.MaxSizeMB),
	}

	var repo waveforms.WaveformRepository
	if opts.UseStore && cfg.Database.Path != "" {
		db, err := database.InitializeWithMigrations(cfg.Database.Path, cfg.Database.Verbose)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.db = db
		repo = waveforms.NewRepository(db.DB)
		log.Printf("[INFO] Waveform store opened at %s", cfg.Database.Path)
	}

	c.service = waveforms.NewService(engine, c.cache, repo, waveforms.Options{
		DefaultWidth: cfg.Waveform.DefaultWidth,
		MetadataTTL:  cfg.Cache.Memory.MetadataTTL,
		WaveformTTL:  cfg.Cache.Memory.WaveformTTL,
	})

	if opts.SweepTemp && cfg.Storage.CleanupInterval > 0 {
		c.sweeper = cleanup.NewService(cfg.Decoder.TempDir, audio.TempPattern, cfg.Storage.MaxTempAge, cfg.Storage.CleanupInterval)
		c.sweeper.Start(ctx)
	}

	return c, nil
}

// Close stops background work and releases the database
func (c *components) Close() {
	if c.sweeper != nil {
		c.sweeper.Stop()
	}
	if c.cache != nil {
		logCacheStats(c.cache)
		c.cache.Stop()
	}
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			log.Printf("[WARN] Failed to close database: %v", err)
		}
	}
}

func logCacheStats(p cache.StatsProvider) {
	stats := p.Stats()
	if stats.Hits+stats.Misses == 0 {
		return
	}
	log.Printf("[DEBUG] Cache: %d hits, %d misses, %d evictions, %d bytes held",
		stats.Hits, stats.Misses, stats.Evictions, stats.Size)
}
