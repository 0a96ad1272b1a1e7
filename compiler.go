package safeprop

import (
	"context"
	"encoding/json"
	"time"

	abiUtils "github.com/julius-network/safeprop/internal/utils/abi"
	"github.com/julius-network/safeprop/sdk"
	sdkerrors "github.com/julius-network/safeprop/sdk/errors"
	"github.com/julius-network/safeprop/sdk/evm"
	"github.com/julius-network/safeprop/types"
)

const unknownRole = "Unknown"

// Overrides take precedence over the addresses declared in a manifest. Recipient is the exception:
// it is only used when the manifest declares no multisig.
type Overrides struct {
	Recipient       string `mapstructure:"recipient" validate:"omitempty,eth_addr"`
	TokenAddress    string `mapstructure:"token_address" validate:"omitempty,eth_addr"`
	RegistryAddress string `mapstructure:"registry_address" validate:"omitempty,eth_addr"`
}

// Compiler turns a manifest into an ordered list of encoded Safe proposals.
type Compiler struct {
	token     *evm.Interface
	registry  *evm.Interface
	overrides Overrides
	now       func() time.Time
}

type CompilerOption func(*Compiler)

// WithCompilerClock sets the clock used to stamp batches.
func WithCompilerClock(now func() time.Time) CompilerOption {
	return func(c *Compiler) {
		c.now = now
	}
}

// NewCompiler returns a compiler encoding mints against token and registrations against
// registry. A nil interface disables the proposals that target it.
func NewCompiler(token, registry *evm.Interface, overrides Overrides, opts ...CompilerOption) *Compiler {
	c := &Compiler{
		token:     token,
		registry:  registry,
		overrides: overrides,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Compile emits, in manifest order, a mint proposal per mint directive immediately followed by its
// register proposal, then a register proposal per registry entry. Directives and entries that lack
// a recipient, target address, metadata or id are skipped with a warning. Token ids are written in
// canonical decimal form, so 7.0 and 7 compile identically. A non-integral token id or any other
// encoding failure is fatal since it means the manifest does not fit the contract interfaces.
func (c *Compiler) Compile(ctx context.Context, m *Manifest) (*types.ProposalBatch, error) {
	lggr := sdk.LoggerFrom(ctx)

	defaultRecipient := firstNonEmpty(m.SafeAddress(), c.overrides.Recipient)
	tokenTo := firstNonEmpty(c.overrides.TokenAddress, m.ContractAddress(ContractJuliusToken))
	registryTo := firstNonEmpty(c.overrides.RegistryAddress, m.ContractAddress(ContractJuliusRegistry))

	if tokenTo != "" && c.token == nil {
		lggr.Warnf("Ignoring %s address %s because no interface is loaded", ContractJuliusToken, tokenTo)
		tokenTo = ""
	}
	if registryTo != "" && c.registry == nil {
		lggr.Warnf("Ignoring %s address %s because no interface is loaded", ContractJuliusRegistry, registryTo)
		registryTo = ""
	}

	proposals := make([]types.Proposal, 0)

	for _, mint := range m.Mints() {
		tokenID, err := canonicalTokenID(mint.TokenID)
		if err != nil {
			return nil, err
		}
		mint.TokenID = tokenID

		recipient := firstNonEmpty(mint.Recipient, defaultRecipient)
		if recipient == "" {
			lggr.Warnf("Skipping mint %s because no recipient specified and no multisig found", mint.TokenID)
			continue
		}
		if tokenTo == "" {
			lggr.Warnf("Skipping mint %s because no %s address is configured", mint.TokenID, ContractJuliusToken)
			continue
		}
		if mint.Metadata == "" {
			lggr.Warnf("Skipping mint %s because it has no metadata", mint.TokenID)
			continue
		}

		juliusID := firstNonEmpty(mint.JuliusID, "JULIUS-"+mint.TokenID.String())
		role := firstNonEmpty(mint.Role, mint.JuliusID, unknownRole)

		mintData, err := evm.EncodeMintTo(c.token, recipient, mint.TokenID, mint.Metadata)
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, types.Proposal{
			Action:   types.ActionMint,
			TokenID:  mint.TokenID,
			JuliusID: juliusID,
			To:       tokenTo,
			Value:    types.ZeroValue,
			Data:     mintData,
		})

		if registryTo == "" {
			continue
		}

		regData, err := evm.EncodeRegister(c.registry, juliusID, role, mint.Metadata, recipient)
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, types.Proposal{
			Action:   types.ActionRegister,
			TokenID:  mint.TokenID,
			JuliusID: juliusID,
			To:       registryTo,
			Value:    types.ZeroValue,
			Data:     regData,
		})
	}

	for _, block := range m.Registries {
		if block.ContractName != ContractJuliusRegistry || len(block.InitialEntries) == 0 {
			continue
		}

		for _, entry := range block.InitialEntries {
			wallet := firstNonEmpty(entry.Wallet, defaultRecipient)
			if registryTo == "" || entry.MetadataIPFS == "" || entry.JuliusID == "" || wallet == "" {
				lggr.Warnf("Skipping registry entry %q: registry address, metadata, id and wallet are all required",
					entry.JuliusID)
				continue
			}

			data, err := evm.EncodeRegister(c.registry, entry.JuliusID, firstNonEmpty(entry.Role, unknownRole),
				entry.MetadataIPFS, wallet)
			if err != nil {
				return nil, err
			}
			proposals = append(proposals, types.Proposal{
				Action:   types.ActionRegister,
				JuliusID: entry.JuliusID,
				To:       registryTo,
				Value:    types.ZeroValue,
				Data:     data,
			})
		}
	}

	return types.NewProposalBatch(c.now(), proposals), nil
}

func canonicalTokenID(id json.Number) (json.Number, error) {
	n, err := abiUtils.ParseNumber(id)
	if err != nil {
		return "", sdkerrors.NewEncodingError(ContractJuliusToken, evm.MethodMintTo, err)
	}

	return json.Number(n.String()), nil
}
