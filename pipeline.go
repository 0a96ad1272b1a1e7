package safeprop

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	jsonutils "github.com/julius-network/safeprop/internal/utils/json"
	"github.com/julius-network/safeprop/sdk"
	"github.com/julius-network/safeprop/sdk/evm"
	"github.com/julius-network/safeprop/sdk/safe"
	"github.com/julius-network/safeprop/types"
)

// Build compiles the manifest at cfg.ManifestPath into a proposal batch written to
// cfg.ProposalsPath, and returns that path.
func Build(ctx context.Context, cfg Config) (string, error) {
	lggr := sdk.LoggerFrom(ctx)

	if err := cfg.Validate(); err != nil {
		return "", fmt.Errorf("invalid config: %w", err)
	}

	m, err := LoadManifest(cfg.ManifestPath)
	if err != nil {
		return "", err
	}

	ifaces, err := evm.LoadInterfaces(cfg.ArtifactsDir, ContractJuliusToken, ContractJuliusRegistry)
	if err != nil {
		return "", err
	}

	compiler := NewCompiler(ifaces[ContractJuliusToken], ifaces[ContractJuliusRegistry], cfg.Overrides)
	batch, err := compiler.Compile(ctx, m)
	if err != nil {
		return "", err
	}

	if err := jsonutils.WriteFile(cfg.ProposalsPath, batch); err != nil {
		return "", fmt.Errorf("failed to write proposals: %w", err)
	}
	lggr.Infof("Wrote %d proposal(s) to %s", len(batch.Proposals), cfg.ProposalsPath)

	return cfg.ProposalsPath, nil
}

// LoadProposalBatch reads a batch previously written by Build.
func LoadProposalBatch(path string) (*types.ProposalBatch, error) {
	var batch types.ProposalBatch
	if err := jsonutils.ReadFile(path, &batch); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewPayloadNotFoundError(path)
		}

		return nil, err
	}

	return &batch, nil
}

// Propose submits the batch at cfg.ProposalsPath to the Safe Transaction Service and writes the
// outcome of every proposal to cfg.ResultsPath, which it returns. The result batch is written even
// when every proposal failed.
func Propose(ctx context.Context, cfg Config) (string, error) {
	lggr := sdk.LoggerFrom(ctx)

	if err := cfg.Validate(); err != nil {
		return "", fmt.Errorf("invalid config: %w", err)
	}

	if cfg.ServiceURL == "" {
		return "", &MissingServiceURLError{}
	}
	if cfg.SafeAddress == "" {
		return "", &MissingSafeAddressError{}
	}

	batch, err := LoadProposalBatch(cfg.ProposalsPath)
	if err != nil {
		return "", err
	}

	client, err := safe.NewClient(cfg.ServiceURL, safe.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}))
	if err != nil {
		return "", err
	}

	var results *types.ResultBatch
	if len(batch.Proposals) == 0 {
		lggr.Infof("No proposals found in %s", cfg.ProposalsPath)
		results = types.NewResultBatch(time.Now(), nil)
	} else {
		submitter := NewSubmitter(client, cfg.SafeAddress, WithRequestDelay(cfg.RequestDelay))
		results = submitter.Submit(ctx, batch)
	}

	if err := jsonutils.WriteFile(cfg.ResultsPath, results); err != nil {
		return "", fmt.Errorf("failed to write results: %w", err)
	}
	lggr.Infof("Wrote %d result(s), %d failed, to %s", len(results.Results), results.Failures(), cfg.ResultsPath)

	return cfg.ResultsPath, nil
}
