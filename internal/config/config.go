package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Renderers understood by the application.
const (
	RendererOpenCV = "opencv"
	RendererRaster = "raster"
)

type Config struct {
	ImageCount            int           `yaml:"image_count"` // 0 = ask on the terminal
	Width                 int           `yaml:"width"`
	Height                int           `yaml:"height"`
	QueueCapacity         int           `yaml:"queue_capacity"`
	PushTimeout           time.Duration `yaml:"push_timeout"` // liveness timeout on queue push/pop
	Renderer              string        `yaml:"renderer"`
	ShowWindow            bool          `yaml:"show_window"`
	WindowTitle           string        `yaml:"window_title"`
	AutoAdvance           time.Duration `yaml:"auto_advance"` // 0 = wait for keys only
	HTTPAddr              string        `yaml:"http_addr"`    // "" = no web mirror
	ViewerToken           string        `yaml:"viewer_token"`
	DatabasePath          string        `yaml:"database_path"` // "" = no journal
	SnapshotDirectory     string        `yaml:"snapshot_directory"`
	SnapshotFlushInterval time.Duration `yaml:"snapshot_flush_interval"`
	SnapshotLimit         int           `yaml:"snapshot_limit"`
	LogDirectory          string        `yaml:"log_directory"`
	Seed                  uint64        `yaml:"seed"` // 0 = time based
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		QueueCapacity:         8,
		PushTimeout:           time.Second,
		Renderer:              RendererOpenCV,
		ShowWindow:            true,
		WindowTitle:           "Random Color Image Viewer",
		DatabasePath:          filepath.Join(".", "data", "sessions.db"),
		SnapshotFlushInterval: 30 * time.Second,
		SnapshotLimit:         50,
		LogDirectory:          filepath.Join(".", "logs"),
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// CONFIG_FILE (if any), then environment variables. A .env file in the
// working directory is loaded into the environment first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

// LoadFile overlays the YAML file at path onto cfg.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.ImageCount = getEnvAsInt("IMAGE_COUNT", c.ImageCount)
	c.Width = getEnvAsInt("IMAGE_WIDTH", c.Width)
	c.Height = getEnvAsInt("IMAGE_HEIGHT", c.Height)
	c.QueueCapacity = getEnvAsInt("QUEUE_CAPACITY", c.QueueCapacity)
	c.PushTimeout = getEnvAsDuration("PUSH_TIMEOUT", c.PushTimeout)
	c.Renderer = strings.ToLower(getEnv("RENDERER", c.Renderer))
	c.ShowWindow = getEnvAsBool("SHOW_WINDOW", c.ShowWindow)
	c.WindowTitle = getEnv("WINDOW_TITLE", c.WindowTitle)
	c.AutoAdvance = getEnvAsDuration("AUTO_ADVANCE", c.AutoAdvance)
	c.HTTPAddr = getEnv("HTTP_ADDR", c.HTTPAddr)
	c.ViewerToken = getEnv("VIEWER_TOKEN", c.ViewerToken)
	c.DatabasePath = getEnv("DATABASE_PATH", c.DatabasePath)
	c.SnapshotDirectory = getEnv("SNAPSHOT_DIR", c.SnapshotDirectory)
	c.SnapshotFlushInterval = getEnvAsDuration("SNAPSHOT_FLUSH_INTERVAL", c.SnapshotFlushInterval)
	c.SnapshotLimit = getEnvAsInt("SNAPSHOT_LIMIT", c.SnapshotLimit)
	c.LogDirectory = getEnv("LOG_DIR", c.LogDirectory)
	c.Seed = getEnvAsUint64("SEED", c.Seed)
}

// Validate checks a configuration that is about to run a pipeline.
func (c *Config) Validate() error {
	switch {
	case c.ImageCount < 1:
		return fmt.Errorf("image count must be at least 1, got %d", c.ImageCount)
	case c.Width < 1:
		return fmt.Errorf("image width must be at least 1, got %d", c.Width)
	case c.Height < 1:
		return fmt.Errorf("image height must be at least 1, got %d", c.Height)
	case c.QueueCapacity < 1:
		return fmt.Errorf("queue capacity must be at least 1, got %d", c.QueueCapacity)
	case c.PushTimeout <= 0:
		return fmt.Errorf("push timeout must be positive, got %s", c.PushTimeout)
	case c.SnapshotLimit < 0:
		return fmt.Errorf("snapshot limit must not be negative, got %d", c.SnapshotLimit)
	case (c.SnapshotDirectory != "" || c.DatabasePath != "") && c.SnapshotFlushInterval <= 0:
		return fmt.Errorf("snapshot flush interval must be positive, got %s", c.SnapshotFlushInterval)
	}
	if c.Renderer != RendererOpenCV && c.Renderer != RendererRaster {
		return fmt.Errorf("unknown renderer %q", c.Renderer)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsUint64(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseUint(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
