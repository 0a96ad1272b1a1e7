package safeprop

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	tokenAddr     = "0x00000000000000000000000000000000000000a1"
	registryAddr  = "0x00000000000000000000000000000000000000b2"
	multisigAddr  = "0x00000000000000000000000000000000000000aa"
	recipientAddr = "0x00000000000000000000000000000000000000cc"
	envRecipient  = "0x00000000000000000000000000000000000000dd"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestNewManifest(t *testing.T) {
	t.Parallel()

	m, err := NewManifest(strings.NewReader(`{
		"contracts": {"JuliusToken": "` + tokenAddr + `", "JuliusRegistry": "` + registryAddr + `"},
		"multisig": {"gnosissafe": "` + multisigAddr + `"},
		"nfts": {"initial_mints": [
			{"token_id": 7, "metadata": "ipfs://x", "julius_id": "J-7"},
			{"token_id": "8", "metadata": "ipfs://y", "recipient": "` + recipientAddr + `", "role": "Treasury"}
		]},
		"registries": [
			{"contract_name": "JuliusRegistry", "initial_entries": [
				{"julius_id": "J-1", "role": "Bridge", "metadata_ipfs": "ipfs://z", "wallet": "` + recipientAddr + `"}
			]}
		]
	}`))
	require.NoError(t, err)

	assert.Equal(t, tokenAddr, m.ContractAddress(ContractJuliusToken))
	assert.Equal(t, registryAddr, m.ContractAddress(ContractJuliusRegistry))
	assert.Equal(t, "", m.ContractAddress("Other"))
	assert.Equal(t, multisigAddr, m.SafeAddress())
	assert.Equal(t, []MintDirective{
		{TokenID: json.Number("7"), Metadata: "ipfs://x", JuliusID: "J-7"},
		{TokenID: json.Number("8"), Metadata: "ipfs://y", Recipient: recipientAddr, Role: "Treasury"},
	}, m.Mints())
	require.Len(t, m.Registries, 1)
	assert.Equal(t, "J-1", m.Registries[0].InitialEntries[0].JuliusID)
}

func TestNewManifest_Empty(t *testing.T) {
	t.Parallel()

	m, err := NewManifest(strings.NewReader(`{}`))
	require.NoError(t, err)

	assert.Empty(t, m.SafeAddress())
	assert.Empty(t, m.Mints())
	assert.Empty(t, m.ContractAddress(ContractJuliusToken))
}

func TestNewManifest_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		give      string
		wantField string
	}{
		{
			name:      "contract address is not hex",
			give:      `{"contracts": {"JuliusToken": "0xAAA"}}`,
			wantField: "Contracts[JuliusToken]",
		},
		{
			name:      "multisig address is not hex",
			give:      `{"multisig": {"gnosissafe": "nope"}}`,
			wantField: "GnosisSafe",
		},
		{
			name:      "mint without token id",
			give:      `{"nfts": {"initial_mints": [{"metadata": "ipfs://x"}]}}`,
			wantField: "TokenID",
		},
		{
			name:      "mint recipient is not hex",
			give:      `{"nfts": {"initial_mints": [{"token_id": 1, "recipient": "0x12"}]}}`,
			wantField: "Recipient",
		},
		{
			name:      "registry wallet is not hex",
			give:      `{"registries": [{"contract_name": "JuliusRegistry", "initial_entries": [{"julius_id": "J", "wallet": "x"}]}]}`,
			wantField: "Wallet",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewManifest(strings.NewReader(tt.give))

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.wantField, verrs[0].Field())
		})
	}
}

func TestLoadManifest(t *testing.T) {
	t.Parallel()

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing.json")
		_, err := LoadManifest(path)

		var notFound *ManifestNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, path, notFound.Path)
	})

	t.Run("invalid json", func(t *testing.T) {
		t.Parallel()

		path := writeManifest(t, `{invalid`)
		_, err := LoadManifest(path)

		var invalid *ManifestInvalidError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, path, invalid.Path)
	})

	t.Run("token id is not a number", func(t *testing.T) {
		t.Parallel()

		_, err := LoadManifest(writeManifest(t, `{"nfts": {"initial_mints": [{"token_id": "seven"}]}}`))

		var invalid *ManifestInvalidError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		m, err := LoadManifest(writeManifest(t, `{"multisig": {"gnosissafe": "`+multisigAddr+`"}}`))
		require.NoError(t, err)
		assert.Equal(t, multisigAddr, m.SafeAddress())
	})
}
