package safeprop

import (
	"context"
	"time"

	"github.com/julius-network/safeprop/sdk"
	"github.com/julius-network/safeprop/sdk/safe"
	"github.com/julius-network/safeprop/types"
)

// DefaultRequestDelay spaces consecutive requests to stay under the service's rate limits.
const DefaultRequestDelay = 500 * time.Millisecond

// ServiceClient proposes transactions to a Safe Transaction Service.
type ServiceClient interface {
	ProposeTransaction(ctx context.Context, safeAddress string, tx types.SafeTransaction) (*safe.ProposeResponse, error)
	TransactionURL(safeAddress, txID string) string
}

var _ ServiceClient = (*safe.Client)(nil)

// Submitter proposes a batch of proposals one at a time, recording the outcome of each.
type Submitter struct {
	client      ServiceClient
	safeAddress string
	delay       time.Duration
	now         func() time.Time
}

type SubmitterOption func(*Submitter)

// WithRequestDelay sets the pause between consecutive requests.
func WithRequestDelay(d time.Duration) SubmitterOption {
	return func(s *Submitter) {
		s.delay = d
	}
}

// WithSubmitterClock sets the clock used to stamp result batches.
func WithSubmitterClock(now func() time.Time) SubmitterOption {
	return func(s *Submitter) {
		s.now = now
	}
}

// NewSubmitter returns a submitter proposing to safeAddress through client.
func NewSubmitter(client ServiceClient, safeAddress string, opts ...SubmitterOption) *Submitter {
	s := &Submitter{
		client:      client,
		safeAddress: safeAddress,
		delay:       DefaultRequestDelay,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Submit proposes every proposal of batch in order. It never fails as a whole: a rejected or
// unreachable proposal is recorded as a result carrying the error and the loop moves on, so the
// returned results line up 1:1 with batch.Proposals.
func (s *Submitter) Submit(ctx context.Context, batch *types.ProposalBatch) *types.ResultBatch {
	lggr := sdk.LoggerFrom(ctx)

	results := make([]types.SubmissionResult, 0, len(batch.Proposals))
	for i, p := range batch.Proposals {
		lggr.Infof("Proposing to Safe: to=%s action=%s", p.To, actionOrUnknown(p.Action))
		res := s.submitOne(ctx, p)
		if res.Failed() {
			lggr.Errorf("Proposal %d failed: %s", i, res.Error)
		}
		results = append(results, res)

		s.pause(ctx)
	}

	return types.NewResultBatch(s.now(), results)
}

func (s *Submitter) submitOne(ctx context.Context, p types.Proposal) types.SubmissionResult {
	res := types.SubmissionResult{Action: p.Action, To: p.To}

	tx := types.SafeTransactionFrom(p, s.safeAddress)
	sdk.LoggerFrom(ctx).Debugf("Safe transaction payload: to=%s value=%s data=%s operation=%d",
		tx.To, tx.Value, tx.Data, tx.Operation)

	resp, err := s.client.ProposeTransaction(ctx, s.safeAddress, tx)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	res.SafeTxHash = resp.Reference.Hash
	res.TxID = resp.TxID
	res.SafeURL = s.client.TransactionURL(s.safeAddress, resp.TxID)
	res.Raw = resp.Raw

	return res
}

// pause waits for the request delay after each attempt, successful or not. Cancellation cuts the wait short; the following requests
// then fail on the cancelled context and are recorded like any other failure.
func (s *Submitter) pause(ctx context.Context) {
	if s.delay <= 0 {
		return
	}

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func actionOrUnknown(a types.Action) string {
	if a == "" {
		return "unknown"
	}

	return string(a)
}
