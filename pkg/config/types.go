package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment  string           `mapstructure:"environment"`
	Server       ServerConfig     `mapstructure:"server"`
	Database     DatabaseConfig   `mapstructure:"database"`
	Decoder      DecoderConfig    `mapstructure:"decoder"`
	Waveform     WaveformConfig   `mapstructure:"waveform"`
	Storage      StorageConfig    `mapstructure:"storage"`
	Cache        CacheConfig      `mapstructure:"cache"`
	RateLimiting RateLimitConfig  `mapstructure:"rate_limiting"`
	Processing   ProcessingConfig `mapstructure:"processing"`
	Security     SecurityConfig   `mapstructure:"security"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
}

// DatabaseConfig contains database settings. An empty path disables the waveform store.
type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	Verbose bool   `mapstructure:"verbose"`
}

// DecoderConfig contains external decoder settings
type DecoderConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	FFmpegPath   string        `mapstructure:"ffmpeg_path"`
	FFprobePath  string        `mapstructure:"ffprobe_path"`
	Timeout      time.Duration `mapstructure:"timeout"`
	CheckTimeout time.Duration `mapstructure:"check_timeout"`
	TempDir      string        `mapstructure:"temp_dir"`
}

// WaveformConfig contains waveform width bounds
type WaveformConfig struct {
	DefaultWidth int `mapstructure:"default_width"`
	MaxWidth     int `mapstructure:"max_width"`
}

// StorageConfig contains media and scratch file settings
type StorageConfig struct {
	MediaRoot       string        `mapstructure:"media_root"`
	MaxTempAge      time.Duration `mapstructure:"max_temp_age"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// CacheConfig contains cache settings
type CacheConfig struct {
	Memory MemoryCacheConfig `mapstructure:"memory"`
}

// MemoryCacheConfig contains in-memory cache settings
type MemoryCacheConfig struct {
	MaxSizeMB   int64         `mapstructure:"max_size_mb"`
	MetadataTTL time.Duration `mapstructure:"metadata_ttl"`
	WaveformTTL time.Duration `mapstructure:"waveform_ttl"`
}

// RateLimitConfig contains rate limiting settings for the waveform routes
type RateLimitConfig struct {
	Enabled     bool `mapstructure:"enabled"`
	WaveformRPS int  `mapstructure:"waveform_rps"`
	Burst       int  `mapstructure:"burst"`
}

// ProcessingConfig contains batch precompute settings
type ProcessingConfig struct {
	Workers int `mapstructure:"workers"`
}

// SecurityConfig contains CORS settings
type SecurityConfig struct {
	EnableCORS  bool     `mapstructure:"enable_cors"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}
