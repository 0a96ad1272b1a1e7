package safeprop

import (
	"github.com/julius-network/safeprop/sdk/evm"
	"github.com/julius-network/safeprop/types"
)

// DecodedProposal is a persisted proposal alongside its decoded call data.
type DecodedProposal struct {
	Proposal types.Proposal
	Method   string
	// Args holds the named call arguments as indented JSON.
	Args string
	Err  error
}

// Inspect decodes every proposal of the batch at cfg.ProposalsPath against the contract interfaces
// in cfg.ArtifactsDir. Call data that fails to decode is reported per proposal.
func Inspect(cfg Config) ([]DecodedProposal, error) {
	batch, err := LoadProposalBatch(cfg.ProposalsPath)
	if err != nil {
		return nil, err
	}

	ifaces, err := evm.LoadInterfaces(cfg.ArtifactsDir, ContractJuliusToken, ContractJuliusRegistry)
	if err != nil {
		return nil, err
	}

	decoded := make([]DecodedProposal, 0, len(batch.Proposals))
	for _, p := range batch.Proposals {
		d := DecodedProposal{Proposal: p}
		d.Method, d.Args, d.Err = decodeProposal(p, ifaces)
		decoded = append(decoded, d)
	}

	return decoded, nil
}

func decodeProposal(p types.Proposal, ifaces map[string]*evm.Interface) (string, string, error) {
	var candidates []*evm.Interface
	switch p.Action {
	case types.ActionMint:
		candidates = []*evm.Interface{ifaces[ContractJuliusToken]}
	case types.ActionRegister:
		candidates = []*evm.Interface{ifaces[ContractJuliusRegistry]}
	default:
		candidates = []*evm.Interface{ifaces[ContractJuliusToken], ifaces[ContractJuliusRegistry]}
	}

	var err error
	for _, iface := range candidates {
		var call *evm.DecodedCall
		if call, err = iface.Decode(p.Data); err == nil {
			return call.String()
		}
	}

	return "", "", err
}
