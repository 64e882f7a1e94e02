package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// Every value can come from the yaml file or be overridden from the environment.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// Marker is the token prefixed to referenced lines
	Marker string `env:"SKIPMARK_MARKER" env-default:"[skip]" yaml:"marker"`

	// Output contains settings for files written by skipmark
	Output struct {
		// FileMode is the octal permission of newly created output files
		FileMode FileMode `env:"SKIPMARK_OUTPUT_FILE_MODE" env-default:"0644" yaml:"fileMode"`
		// NoSync skips flushing written files to stable storage before they replace the destination
		NoSync bool `env:"SKIPMARK_OUTPUT_NO_SYNC" env-default:"false" yaml:"noSync"`
	} `yaml:"output"`

	// Metrics contains run metrics settings
	Metrics struct {
		// Textfile is the path of a Prometheus text exposition file written after each run; empty disables it
		Textfile string `env:"SKIPMARK_METRICS_TEXTFILE" env-default:"" yaml:"textfile"`
	} `yaml:"metrics"`
}

// FileMode is an octal permission string such as "0644".
type FileMode uint32

// SetValue implements cleanenv.Setter.
func (m *FileMode) SetValue(s string) error {
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return fmt.Errorf("invalid file mode %q: %w", s, err)
	}
	if v > 0o777 {
		return fmt.Errorf("invalid file mode %q: permission bits only", s)
	}
	*m = FileMode(v)

	return nil
}

// UnmarshalText lets yaml decode the same octal notation.
func (m *FileMode) UnmarshalText(text []byte) error {
	return m.SetValue(string(text))
}

// Perm returns the mode as permission bits.
func (m FileMode) Perm() fs.FileMode {
	return fs.FileMode(m).Perm()
}

// Load receives the path for yaml config file and returns a filled Config struct.
// A missing file is not an error when path is empty or the file does not
// exist: the configuration then comes from the environment and defaults.
func Load(configPath string) (*Config, error) {
	var cfg Config

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
				return nil, fmt.Errorf("could not read config: %w", err)
			}

			return &cfg, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not stat config: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("could not read config from environment: %w", err)
	}

	return &cfg, nil
}
