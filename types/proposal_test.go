package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestNewProposalBatch_EmptyMarshalsAsArray(t *testing.T) {
	t.Parallel()

	got, err := json.Marshal(NewProposalBatch(fixedTime, nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"generatedAt":"2025-03-01T12:00:00Z","proposals":[]}`, string(got))

	got, err = json.Marshal(NewResultBatch(fixedTime, nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"generatedAt":"2025-03-01T12:00:00Z","results":[]}`, string(got))
}

func TestProposal_JSON(t *testing.T) {
	t.Parallel()

	p := Proposal{
		Action:   ActionMint,
		TokenID:  json.Number("7"),
		JuliusID: "J-7",
		To:       "0x00000000000000000000000000000000000000aa",
		Value:    ZeroValue,
		Data:     hexutil.Bytes{0x01, 0x02},
	}

	got, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"action": "mint",
		"tokenId": 7,
		"juliusId": "J-7",
		"to": "0x00000000000000000000000000000000000000aa",
		"value": "0",
		"data": "0x0102"
	}`, string(got))

	var back Proposal
	require.NoError(t, json.Unmarshal(got, &back))
	assert.Equal(t, p, back)
}
