package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"portfolio-backdrop/internal/utils"
)

// Environment variables that override the config file.
const (
	EnvParticleCount = "BACKDROP_PARTICLE_COUNT"
	EnvPointerSource = "BACKDROP_POINTER_SOURCE"
	EnvFPS           = "BACKDROP_FPS"
	EnvInspectAddr   = "BACKDROP_INSPECT_ADDR"
	EnvRecordPath    = "BACKDROP_RECORD_PATH"
	EnvLogLevel      = "BACKDROP_LOG_LEVEL"
)

// LoadDotEnv loads KEY=value files into the process environment without
// replacing variables that are already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
		utils.Debug("Loaded environment from %s", p)
	}
	return nil
}

// ApplyEnv applies BACKDROP_* overrides and re-validates.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvParticleCount); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, EnvParticleCount, v, err)
		}
		c.Field.Count = n
	}
	if v := os.Getenv(EnvPointerSource); v != "" {
		c.Pointer.Source = v
	}
	if v := os.Getenv(EnvFPS); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, EnvFPS, v, err)
		}
		c.Window.FPS = n
	}
	if v := os.Getenv(EnvInspectAddr); v != "" {
		c.Inspector.Addr = v
	}
	if v := os.Getenv(EnvRecordPath); v != "" {
		c.Recorder.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}

	return c.Validate()
}
