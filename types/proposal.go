package types

import (
	"encoding/json"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Action tags what a proposal does on chain.
type Action string

const (
	// ActionMint mints a token through JuliusToken.mintTo.
	ActionMint Action = "mint"
	// ActionRegister records an entity through JuliusRegistry.register.
	ActionRegister Action = "register"
)

// ZeroValue is the native currency value carried by every proposal. Transfers of native currency
// are not modelled.
const ZeroValue = "0"

// Proposal is a single fully encoded call waiting to be proposed to a Safe.
type Proposal struct {
	Action   Action        `json:"action" validate:"required,oneof=mint register"`
	TokenID  json.Number   `json:"tokenId,omitempty"`
	JuliusID string        `json:"juliusId,omitempty"`
	To       string        `json:"to" validate:"required"`
	Value    string        `json:"value"`
	Data     hexutil.Bytes `json:"data"`

	// Operation is the Safe operation type. It is never set by the compiler but is honoured by the
	// submitter when a batch is edited by hand.
	Operation *Operation `json:"operation,omitempty"`
}

// ProposalBatch is the persisted output of a compiler run.
type ProposalBatch struct {
	GeneratedAt time.Time  `json:"generatedAt"`
	Proposals   []Proposal `json:"proposals"`
}

// NewProposalBatch stamps the proposals with the generation time.
func NewProposalBatch(generatedAt time.Time, proposals []Proposal) *ProposalBatch {
	if proposals == nil {
		proposals = []Proposal{}
	}

	return &ProposalBatch{
		GeneratedAt: generatedAt.UTC(),
		Proposals:   proposals,
	}
}
