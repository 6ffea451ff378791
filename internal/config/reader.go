package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Read returns Default() optionally overridden by the JSON file at
// path (if path is non-empty) and then by any NETAUTH_* environment
// variables that are set, in that order — matching the teacher's
// server.Reader.read(): unmarshal the file onto the defaults, then
// apply environment overrides on top.
func Read(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		fileBytes, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("configuration file does not exist: %s", path)
			}
			return Config{}, fmt.Errorf("configuration file (%s) is unreadable: %w", path, err)
		}
		if err := json.Unmarshal(fileBytes, &cfg); err != nil {
			return Config{}, fmt.Errorf("configuration file (%s) is invalid: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v, ok := envUint("NETAUTH_SKEW_SECONDS"); ok {
		cfg.SkewSeconds = v
	}
	if v, ok := envInt("NETAUTH_MAX_PER_CLIENT"); ok {
		cfg.MaxPerClient = v
	}
	if v, ok := envInt("NETAUTH_MAX_PAYLOAD_LENGTH"); ok {
		cfg.MaxPayloadLength = v
	}
	if v, ok := envInt("NETAUTH_MAX_LENGTH"); ok {
		cfg.MaxLength = v
	}
	if v, ok := envDuration("NETAUTH_FRAME_RECEIVE_TIMEOUT"); ok {
		cfg.FrameReceiveTimeout = v
	}
	if v, ok := envDuration("NETAUTH_RETRY_COOLDOWN"); ok {
		cfg.RetryCooldown = v
	}
	if v, ok := envInt("NETAUTH_MAX_RETRIES"); ok {
		cfg.MaxRetries = v
	}
	if v, ok := envDuration("NETAUTH_CLEANUP_INTERVAL"); ok {
		cfg.CleanupInterval = v
	}
}

func envInt(name string) (int, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func envUint(name string) (uint64, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func envDuration(name string) (time.Duration, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, false
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
