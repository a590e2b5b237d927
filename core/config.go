package slight

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the slight binaries.
type Config struct {
	Socket    string `yaml:"socket"`
	HistoryDB string `yaml:"history_db"` // empty disables persistent history
	MaxDepth  int    `yaml:"max_depth"`
	MaxTraces int    `yaml:"max_traces"`
	KeepSteps bool   `yaml:"keep_steps"`
	HTTPAddr  string `yaml:"http_addr"`
}

func DefaultConfig() Config {
	return Config{
		Socket:    "/tmp/slight.sock",
		MaxDepth:  DefaultMaxDepth,
		MaxTraces: 1000,
		HTTPAddr:  "127.0.0.1:8080",
	}
}

// LoadConfig starts from DefaultConfig, applies the YAML file at path when
// path is non-empty, then applies SLIGHT_* environment overrides.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.Socket = envOr("SLIGHT_SOCK", cfg.Socket)
	cfg.HistoryDB = envOr("SLIGHT_HISTORY_DB", cfg.HistoryDB)
	cfg.HTTPAddr = envOr("SLIGHT_HTTP_ADDR", cfg.HTTPAddr)
	var err error
	if cfg.MaxDepth, err = envInt("SLIGHT_MAX_DEPTH", cfg.MaxDepth); err != nil {
		return Config{}, err
	}
	if cfg.MaxTraces, err = envInt("SLIGHT_MAX_TRACES", cfg.MaxTraces); err != nil {
		return Config{}, err
	}
	if v := os.Getenv("SLIGHT_KEEP_STEPS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("SLIGHT_KEEP_STEPS: %w", err)
		}
		cfg.KeepSteps = b
	}
	return cfg, nil
}

// LoadConfigFromEnv loads the file named by SLIGHT_CONFIG, if any.
func LoadConfigFromEnv() (Config, error) {
	return LoadConfig(os.Getenv("SLIGHT_CONFIG"))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
