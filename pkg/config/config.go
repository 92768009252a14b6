package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. AUDIOENGINE_SERVER_PORT
const EnvPrefix = "AUDIOENGINE"

// DefaultConfigFile is read when no explicit path is given; it may be absent
const DefaultConfigFile = "./config/settings.yaml"

var (
	once        sync.Once
	initErr     error
	initialized bool
)

// Init initializes the configuration system from the default config file location.
// This should be called once at application startup.
func Init() error {
	return InitWithPath("")
}

// InitWithPath initializes the configuration from configPath. An empty path means
// DefaultConfigFile, which is optional; an explicit path must exist.
func InitWithPath(configPath string) error {
	once.Do(func() {
		setDefaults()

		// Environment variables override file values
		viper.SetEnvPrefix(EnvPrefix)
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		explicit := configPath != ""
		if !explicit {
			configPath = DefaultConfigFile
		}
		configPath = filepath.Clean(configPath)
		viper.SetConfigFile(configPath)

		if err := viper.ReadInConfig(); err != nil {
			if explicit || !isNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
		}

		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
			return
		}
		initialized = true
	})

	return initErr
}

// Reset clears loaded configuration so Init can run again. Intended for tests.
func Reset() {
	viper.Reset()
	once = sync.Once{}
	initErr = nil
	initialized = false
}

// IsInitialized reports whether Init completed successfully
func IsInitialized() bool {
	return initialized
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// Set overrides a config value at runtime, e.g. from a command line flag
func Set(key string, value any) {
	viper.Set(key, value)
}

// Get returns a config value by key using Viper directly
func Get(key string) any {
	return viper.Get(key)
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.Is(err, os.ErrNotExist) || errors.As(err, &notFound)
}

// validate validates the configuration using Viper values, auto-correcting what it can
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	if viper.GetString("database.path") == "" {
		log.Println("[WARN] No database path configured, decoded waveforms will not be persisted")
	}

	if viper.GetInt("processing.workers") <= 0 {
		viper.Set("processing.workers", 2)
	}

	if viper.GetInt("waveform.max_width") <= 0 {
		viper.Set("waveform.max_width", 10000)
	}

	defaultWidth := viper.GetInt("waveform.default_width")
	if defaultWidth <= 0 || defaultWidth > viper.GetInt("waveform.max_width") {
		viper.Set("waveform.default_width", 800)
	}

	if viper.GetInt("rate_limiting.waveform_rps") <= 0 {
		viper.Set("rate_limiting.waveform_rps", 10)
	}
	if viper.GetInt("rate_limiting.burst") <= 0 {
		viper.Set("rate_limiting.burst", 20)
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Processing.Workers <= 0 {
		c.Processing.Workers = 2
	}

	if c.Waveform.MaxWidth <= 0 {
		c.Waveform.MaxWidth = 10000
	}

	if c.Waveform.DefaultWidth <= 0 || c.Waveform.DefaultWidth > c.Waveform.MaxWidth {
		c.Waveform.DefaultWidth = 800
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 5*time.Minute)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)

	// Database defaults
	viper.SetDefault("database.path", "./data/audioengine.db")
	viper.SetDefault("database.verbose", false)

	// Decoder defaults
	viper.SetDefault("decoder.enabled", true)
	viper.SetDefault("decoder.ffmpeg_path", "ffmpeg")
	viper.SetDefault("decoder.ffprobe_path", "ffprobe")
	viper.SetDefault("decoder.timeout", 5*time.Minute)
	viper.SetDefault("decoder.check_timeout", 10*time.Second)
	viper.SetDefault("decoder.temp_dir", "")

	// Waveform defaults
	viper.SetDefault("waveform.default_width", 800)
	viper.SetDefault("waveform.max_width", 10000)

	// Storage defaults
	viper.SetDefault("storage.media_root", ".")
	viper.SetDefault("storage.max_temp_age", 1*time.Hour)
	viper.SetDefault("storage.cleanup_interval", 15*time.Minute)

	// Cache defaults
	viper.SetDefault("cache.memory.max_size_mb", 64)
	viper.SetDefault("cache.memory.metadata_ttl", 1*time.Hour)
	viper.SetDefault("cache.memory.waveform_ttl", 24*time.Hour)

	// Rate limiting defaults
	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.waveform_rps", 10)
	viper.SetDefault("rate_limiting.burst", 20)

	// Processing defaults
	viper.SetDefault("processing.workers", 2)

	// Security defaults
	viper.SetDefault("security.enable_cors", true)
	viper.SetDefault("security.cors_origins", []string{"*"})
}
