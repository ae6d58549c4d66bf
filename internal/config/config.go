// Package config loads bstheme settings from a YAML file, a .env file and
// BSTHEME_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by WithEnv.
const (
	EnvFont         = "BSTHEME_FONT"
	EnvFormat       = "BSTHEME_FORMAT"
	EnvHTTPTimeout  = "BSTHEME_HTTP_TIMEOUT"
	EnvGenAIModel   = "BSTHEME_GENAI_MODEL"
	EnvImageColours = "BSTHEME_IMAGE_COLOURS"
)

// Defaults.
const (
	DefaultFormat       = "yaml"
	DefaultHTTPTimeout  = 30 * time.Second
	DefaultGenAIModel   = "gemini-2.5-flash"
	DefaultImageColours = 8
)

// Config holds application settings.
type Config struct {
	// Font is the catalog font used by init when no theme is given.
	Font string `yaml:"font"`

	// Format is the encoding used when a theme is written to stdout.
	Format string `yaml:"format" validate:"required,oneof=json yaml yml"`

	// HTTPTimeout bounds each remote source request.
	HTTPTimeout time.Duration `yaml:"http_timeout" validate:"min=0"`

	// GenAIModel is the Gemini model asked for palettes by the prompt source.
	GenAIModel string `yaml:"genai_model" validate:"required"`

	// ImageColours is the number of clusters extracted from images.
	ImageColours int `yaml:"image_colours" validate:"min=1,max=64"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Format:       DefaultFormat,
		HTTPTimeout:  DefaultHTTPTimeout,
		GenAIModel:   DefaultGenAIModel,
		ImageColours: DefaultImageColours,
	}
}

// DefaultPath returns ~/.config/bstheme/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "bstheme", "config.yaml")
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// Validate checks the settings for out of range values.
func (c Config) Validate() error {
	if err := validatorInstance().Struct(c); err != nil {
		var ves validator.ValidationErrors
		if errors.As(err, &ves) && len(ves) > 0 {
			return fmt.Errorf("invalid config: %s failed validation for tag '%s'", strings.ToLower(ves[0].Field()), ves[0].Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Builder assembles a Config from its sources.
type Builder struct {
	config       Config
	filePath     string
	fileRequired bool
	dotEnvPaths  []string
	useDotEnv    bool
	useEnv       bool
}

// NewBuilder creates a Builder starting from the defaults.
func NewBuilder() *Builder {
	return &Builder{config: Default()}
}

// WithFile reads settings from a YAML file. A missing file is an error only
// when required is set.
func (b *Builder) WithFile(path string, required bool) *Builder {
	b.filePath = path
	b.fileRequired = required
	return b
}

// WithDotEnv loads .env files into the environment before WithEnv is applied.
// Variables already set are not overridden. With no paths, ./.env is used.
func (b *Builder) WithDotEnv(paths ...string) *Builder {
	b.useDotEnv = true
	b.dotEnvPaths = paths
	return b
}

// WithEnv applies BSTHEME_* environment variables.
func (b *Builder) WithEnv() *Builder {
	b.useEnv = true
	return b
}

// Build resolves and validates the configuration.
func (b *Builder) Build() (*Config, error) {
	config := b.config

	if b.filePath != "" {
		if err := loadFile(b.filePath, &config); err != nil {
			if !errors.Is(err, fs.ErrNotExist) || b.fileRequired {
				return nil, err
			}
		}
	}

	if b.useDotEnv {
		if err := godotenv.Load(b.dotEnvPaths...); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	if b.useEnv {
		if err := applyEnv(&config); err != nil {
			return nil, err
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func loadFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(config *Config) error {
	if v := os.Getenv(EnvFont); v != "" {
		config.Font = v
	}
	if v := os.Getenv(EnvFormat); v != "" {
		config.Format = strings.ToLower(v)
	}
	if v := os.Getenv(EnvHTTPTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvHTTPTimeout, err)
		}
		config.HTTPTimeout = d
	}
	if v := os.Getenv(EnvGenAIModel); v != "" {
		config.GenAIModel = v
	}
	if v := os.Getenv(EnvImageColours); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvImageColours, err)
		}
		config.ImageColours = n
	}
	return nil
}
