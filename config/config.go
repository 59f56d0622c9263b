package config

import (
	"errors"
	"io/fs"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"omibyte.io/bridge/ir"
)

type Config struct {
	// Prefix is the boundary prefix all link symbols and transfer functions
	// are derived from.
	Prefix string `yaml:"prefix"`
	Jobs   int    `yaml:"jobs"`

	// CalleeScope is prepended to paths that reach the real implementation
	// from the generated module.
	CalleeScope string `yaml:"callee_scope"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

func Default() *Config {
	cfg := &Config{
		Prefix:      ir.DefaultPrefix,
		Jobs:        runtime.NumCPU(),
		CalleeScope: "super::",
	}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	return cfg
}

// Load reads the configuration file at path. A missing file yields the
// defaults. Values from the environment (and a .env file) take precedence.
func Load(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config
	file, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, err
		}
	}

	// 3. Override with Environment Variables if present
	if prefix := os.Getenv("BRIDGE_PREFIX"); prefix != "" {
		cfg.Prefix = prefix
	}
	if jobs := os.Getenv("BRIDGE_JOBS"); jobs != "" {
		n, err := strconv.Atoi(jobs)
		if err != nil {
			return nil, errors.Join(errors.New("invalid BRIDGE_JOBS"), err)
		}
		cfg.Jobs = n
	}
	if level := os.Getenv("BRIDGE_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if format := os.Getenv("BRIDGE_LOG_FORMAT"); format != "" {
		cfg.Log.Format = format
	}

	if cfg.Jobs < 1 {
		cfg.Jobs = 1
	}
	return cfg, nil
}

// Namer returns the name mangler for the configured prefix.
func (c *Config) Namer() ir.Namer {
	return ir.NewNamer(c.Prefix)
}
