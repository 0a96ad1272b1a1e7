package commands

import (
	"errors"
	"io/fs"
	"os"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/julius-network/safeprop"
	"github.com/julius-network/safeprop/anchor"
)

// Config is everything the CLI reads from flags, the environment and the optional config file.
type Config struct {
	safeprop.Config `mapstructure:",squash"`

	Anchor   anchor.Config `mapstructure:"anchor"`
	LogLevel string        `mapstructure:"log_level" validate:"oneof=debug info warn error"`
}

func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

var (
	// envBindings maps config keys to the environment variables that can provide them, in order of
	// preference.
	envBindings = map[string][]string{
		"manifest":                   {"SAFEPROP_MANIFEST"},
		"artifacts_dir":              {"SAFEPROP_ARTIFACTS_DIR"},
		"proposals":                  {"SAFEPROP_PROPOSALS"},
		"results":                    {"SAFEPROP_RESULTS"},
		"request_delay":              {"SAFEPROP_REQUEST_DELAY"},
		"http_timeout":               {"SAFEPROP_HTTP_TIMEOUT"},
		"log_level":                  {"SAFEPROP_LOG_LEVEL"},
		"service_url":                {"SAFETXSERVICE_URL"},
		"safe_address":               {"GNOSISSAFEADDR", "GNOSISSAFE_ADDR"},
		"overrides.recipient":        {"GNOSISSAFE_ADDR"},
		"overrides.token_address":    {"JULIUSTOKENADDR"},
		"overrides.registry_address": {"JULIUSREGISTRYADDR"},
		"anchor.github_token":        {"GITHUB_TOKEN"},
		"anchor.github_repo":         {"GITHUB_REPO"},
		"anchor.slack_webhook":       {"SLACK_WEBHOOK"},
		"anchor.discord_webhook":     {"DISCORD_WEBHOOK"},
		"anchor.nft_storage_key":     {"NFT_STORAGE_KEY"},
		"anchor.gateway":             {"ANCHOR_IPFS_GATEWAY"},
		"anchor.metadata_dir":        {"ANCHOR_METADATA_DIR"},
	}

	// flagBindings maps config keys to the command line flags that override them.
	flagBindings = map[string]string{
		"manifest":                   "manifest",
		"artifacts_dir":              "artifacts",
		"proposals":                  "proposals",
		"results":                    "results",
		"request_delay":              "delay",
		"http_timeout":               "timeout",
		"log_level":                  "log-level",
		"service_url":                "service-url",
		"safe_address":               "safe",
		"overrides.recipient":        "recipient",
		"overrides.token_address":    "token",
		"overrides.registry_address": "registry",
		"anchor.gateway":             "gateway",
		"anchor.metadata_dir":        "metadata-dir",
	}
)

func setDefaults(v *viper.Viper) {
	defaults := safeprop.DefaultConfig()
	anchorDefaults := anchor.DefaultConfig()

	v.SetDefault("manifest", defaults.ManifestPath)
	v.SetDefault("artifacts_dir", defaults.ArtifactsDir)
	v.SetDefault("proposals", defaults.ProposalsPath)
	v.SetDefault("results", defaults.ResultsPath)
	v.SetDefault("request_delay", defaults.RequestDelay)
	v.SetDefault("http_timeout", defaults.HTTPTimeout)
	v.SetDefault("log_level", "info")
	v.SetDefault("anchor.gateway", anchorDefaults.Gateway)
	v.SetDefault("anchor.metadata_dir", anchorDefaults.MetadataDir)
}

// bindEnvs binds the environment variables to the viper instance.
func bindEnvs(v *viper.Viper) error {
	for key, envs := range envBindings {
		// Prepend the config key to the start of the arguments
		inputs := slices.Insert(slices.Clone(envs), 0, key)

		if err := v.BindEnv(inputs...); err != nil {
			return err
		}
	}

	return nil
}

// bindFlags binds the flags of flags that the running command defines.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for key, name := range flagBindings {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}

	return nil
}

// loadEnvFile loads a dotenv file into the process environment. A missing file is not an error;
// variables already set take precedence.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return godotenv.Load(path)
}

// LoadConfig resolves the configuration of a command, in order of precedence: flags, environment,
// config file, defaults.
func LoadConfig(flags *pflag.FlagSet, configFile, envFile string) (*Config, error) {
	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	if err := bindEnvs(v); err != nil {
		return nil, err
	}
	if err := bindFlags(v, flags); err != nil {
		return nil, err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
