package types

import (
	"encoding/json"
	"time"
)

// SubmissionResult is the outcome of proposing one Proposal. Exactly one of the success fields
// (SafeTxHash, TxID, SafeURL, Raw) or Error is populated.
type SubmissionResult struct {
	Action     Action          `json:"action,omitempty"`
	To         string          `json:"to"`
	SafeTxHash string          `json:"safeTxHash,omitempty"`
	TxID       string          `json:"txId,omitempty"`
	SafeURL    string          `json:"safeUrl,omitempty"`
	Raw        json.RawMessage `json:"raw,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// Failed reports whether the submission was rejected or never reached the service.
func (r SubmissionResult) Failed() bool {
	return r.Error != ""
}

// ResultBatch is the persisted output of a submitter run. Results line up 1:1 with the proposals
// of the batch that was submitted.
type ResultBatch struct {
	GeneratedAt time.Time          `json:"generatedAt"`
	Results     []SubmissionResult `json:"results"`
}

// NewResultBatch stamps the results with the generation time.
func NewResultBatch(generatedAt time.Time, results []SubmissionResult) *ResultBatch {
	if results == nil {
		results = []SubmissionResult{}
	}

	return &ResultBatch{
		GeneratedAt: generatedAt.UTC(),
		Results:     results,
	}
}

// Failures counts the results that carry an error.
func (b *ResultBatch) Failures() int {
	n := 0
	for _, r := range b.Results {
		if r.Failed() {
			n++
		}
	}

	return n
}
