package safeprop

import (
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultManifestPath = "manifest/phase-zero-manifest.pinned.json"
	DefaultArtifactsDir = "artifacts"
	DefaultHTTPTimeout  = 30 * time.Second
)

// Config holds everything a pipeline run needs. It is built once at process entry and passed
// down; nothing below it reads the environment.
type Config struct {
	ManifestPath  string `mapstructure:"manifest" validate:"required"`
	ArtifactsDir  string `mapstructure:"artifacts_dir" validate:"required"`
	ProposalsPath string `mapstructure:"proposals" validate:"required"`
	ResultsPath   string `mapstructure:"results" validate:"required"`

	Overrides Overrides `mapstructure:"overrides"`

	ServiceURL   string        `mapstructure:"service_url" validate:"omitempty,url"`
	SafeAddress  string        `mapstructure:"safe_address" validate:"omitempty,eth_addr"`
	RequestDelay time.Duration `mapstructure:"request_delay" validate:"gte=0"`
	HTTPTimeout  time.Duration `mapstructure:"http_timeout" validate:"gt=0"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		ManifestPath:  DefaultManifestPath,
		ArtifactsDir:  DefaultArtifactsDir,
		ProposalsPath: filepath.Join(DefaultArtifactsDir, "safe-proposals.json"),
		ResultsPath:   filepath.Join(DefaultArtifactsDir, "safe-proposals-result.json"),
		RequestDelay:  DefaultRequestDelay,
		HTTPTimeout:   DefaultHTTPTimeout,
	}
}

// Validate checks the tag constraints. Build and Propose call it before touching the filesystem.
func (c *Config) Validate() error {
	// Run tag-based validation
	validate := validator.New()

	return validate.Struct(c)
}
