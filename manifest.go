package safeprop

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
)

const (
	ContractJuliusToken    = "JuliusToken"
	ContractJuliusRegistry = "JuliusRegistry"
)

// Manifest declares the mints and registry entries to propose.
type Manifest struct {
	Contracts  map[string]string `json:"contracts" validate:"omitempty,dive,omitempty,eth_addr"`
	Multisig   *Multisig         `json:"multisig,omitempty"`
	NFTs       *NFTs             `json:"nfts,omitempty"`
	Registries []RegistryBlock   `json:"registries,omitempty" validate:"omitempty,dive"`
}

type Multisig struct {
	GnosisSafe string `json:"gnosissafe" validate:"omitempty,eth_addr"`
}

type NFTs struct {
	InitialMints []MintDirective `json:"initial_mints" validate:"omitempty,dive"`
}

// MintDirective asks for one token to be minted and, when a registry is configured, registered.
type MintDirective struct {
	TokenID   json.Number `json:"token_id" validate:"required"`
	Metadata  string      `json:"metadata"`
	Recipient string      `json:"recipient,omitempty" validate:"omitempty,eth_addr"`
	JuliusID  string      `json:"julius_id,omitempty"`
	Role      string      `json:"role,omitempty"`
}

// RegistryBlock lists entries to register on the contract named ContractName.
type RegistryBlock struct {
	ContractName   string          `json:"contract_name"`
	InitialEntries []RegistryEntry `json:"initial_entries" validate:"omitempty,dive"`
}

type RegistryEntry struct {
	JuliusID     string `json:"julius_id"`
	Role         string `json:"role,omitempty"`
	MetadataIPFS string `json:"metadata_ipfs"`
	Wallet       string `json:"wallet,omitempty" validate:"omitempty,eth_addr"`
}

// NewManifest decodes and validates a manifest from r.
func NewManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, err
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// LoadManifest reads the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewManifestNotFoundError(path)
		}

		return nil, err
	}
	defer f.Close()

	m, err := NewManifest(f)
	if err != nil {
		return nil, NewManifestInvalidError(path, err)
	}

	return m, nil
}

func (m *Manifest) Validate() error {
	// Run tag-based validation
	validate := validator.New()

	return validate.Struct(m)
}

// ContractAddress returns the deployed address of the named contract, or "".
func (m *Manifest) ContractAddress(name string) string {
	return m.Contracts[name]
}

// SafeAddress returns the multisig address declared by the manifest, or "".
func (m *Manifest) SafeAddress() string {
	if m.Multisig == nil {
		return ""
	}

	return m.Multisig.GnosisSafe
}

// Mints returns the mint directives in manifest order.
func (m *Manifest) Mints() []MintDirective {
	if m.NFTs == nil {
		return nil
	}

	return m.NFTs.InitialMints
}
