package safeprop

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	assert.Equal(t, "manifest/phase-zero-manifest.pinned.json", cfg.ManifestPath)
	assert.Equal(t, "artifacts", cfg.ArtifactsDir)
	assert.Equal(t, "artifacts/safe-proposals.json", cfg.ProposalsPath)
	assert.Equal(t, "artifacts/safe-proposals-result.json", cfg.ResultsPath)
	assert.Equal(t, 500*time.Millisecond, cfg.RequestDelay)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		give      func(c *Config)
		wantField string
	}{
		{
			name: "service and safe set",
			give: func(c *Config) {
				c.ServiceURL = "https://safe-transaction-sepolia.safe.global"
				c.SafeAddress = multisigAddr
				c.Overrides.Recipient = recipientAddr
			},
		},
		{
			name:      "missing manifest path",
			give:      func(c *Config) { c.ManifestPath = "" },
			wantField: "ManifestPath",
		},
		{
			name:      "service url is not a url",
			give:      func(c *Config) { c.ServiceURL = "not a url" },
			wantField: "ServiceURL",
		},
		{
			name:      "safe address is not hex",
			give:      func(c *Config) { c.SafeAddress = "0x123" },
			wantField: "SafeAddress",
		},
		{
			name:      "override token address is not hex",
			give:      func(c *Config) { c.Overrides.TokenAddress = "token" },
			wantField: "TokenAddress",
		},
		{
			name:      "negative delay",
			give:      func(c *Config) { c.RequestDelay = -time.Second },
			wantField: "RequestDelay",
		},
		{
			name:      "zero timeout",
			give:      func(c *Config) { c.HTTPTimeout = 0 },
			wantField: "HTTPTimeout",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.give(&cfg)

			err := cfg.Validate()
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.wantField, verrs[0].Field())
		})
	}
}
