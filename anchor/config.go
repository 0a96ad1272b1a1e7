package anchor

import (
	"github.com/go-playground/validator/v10"
)

// DefaultMetadataDir is where metadata documents are kept before upload.
const DefaultMetadataDir = "julius_metadata"

// Config holds the credentials and endpoints of the anchor sync collaborators. Every credential is
// optional: a missing one disables its collaborator.
type Config struct {
	GitHubToken    string `mapstructure:"github_token"`
	GitHubRepo     string `mapstructure:"github_repo" validate:"omitempty,contains=/"`
	SlackWebhook   string `mapstructure:"slack_webhook" validate:"omitempty,url"`
	DiscordWebhook string `mapstructure:"discord_webhook" validate:"omitempty,url"`
	NFTStorageKey  string `mapstructure:"nft_storage_key"`
	Gateway        string `mapstructure:"gateway" validate:"required,url"`
	MetadataDir    string `mapstructure:"metadata_dir"`
	Roles          []Role `mapstructure:"roles" validate:"omitempty,dive"`
}

// DefaultConfig returns a configuration with no credentials.
func DefaultConfig() Config {
	return Config{
		Gateway:     DefaultGateway,
		MetadataDir: DefaultMetadataDir,
	}
}

func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// ActiveRoles returns the configured roles, or DefaultRoles when none are configured.
func (c *Config) ActiveRoles() []Role {
	if len(c.Roles) == 0 {
		return DefaultRoles()
	}

	return c.Roles
}
