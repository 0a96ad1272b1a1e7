package anchor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/julius-network/safeprop/sdk"
)

const reportHeader = "### Julius Metadata Sync Report\n\n" +
	"The following entities have been anchored to IPFS and validated.\n\n" +
	"| Entity | IPFS CID |\n|---|---|\n"

// SyncEntry is the outcome of pinning one role. CID holds a status placeholder when Err is set.
type SyncEntry struct {
	Role Role
	CID  string
	Err  error
}

// SyncReport summarises a sync run.
type SyncReport struct {
	Entries  []SyncEntry
	Title    string
	Body     string
	IssueURL string
	Notified int
}

// Syncer pins role metadata, logs the run as an issue and notifies chat platforms.
type Syncer struct {
	pinner    Pinner
	issues    IssueLogger
	notifiers []Notifier
	gateway   string
	now       func() time.Time
}

type SyncerOption func(*Syncer)

// WithNotifiers sets the platforms notified once the run is logged.
func WithNotifiers(notifiers ...Notifier) SyncerOption {
	return func(s *Syncer) {
		s.notifiers = notifiers
	}
}

// WithGateway sets the IPFS gateway linked from notifications.
func WithGateway(gateway string) SyncerOption {
	return func(s *Syncer) {
		s.gateway = gateway
	}
}

// WithSyncerClock sets the clock used to date the issue title.
func WithSyncerClock(now func() time.Time) SyncerOption {
	return func(s *Syncer) {
		s.now = now
	}
}

func NewSyncer(pinner Pinner, issues IssueLogger, opts ...SyncerOption) *Syncer {
	s := &Syncer{
		pinner:  pinner,
		issues:  issues,
		gateway: DefaultGateway,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// NewSyncerFromConfig validates cfg and wires the collaborators it configures. A dry run derives
// CIDs locally instead of uploading. opts apply to every HTTP collaborator.
func NewSyncerFromConfig(cfg Config, dryRun bool, opts ...HTTPOption) (*Syncer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid anchor config: %w", err)
	}

	var pinner Pinner = NewNFTStoragePinner(cfg.NFTStorageKey, cfg.MetadataDir, opts...)
	if dryRun {
		pinner = NewLocalPinner(cfg.MetadataDir)
	}

	return NewSyncer(
		pinner,
		NewGitHubIssueLogger(cfg.GitHubToken, cfg.GitHubRepo, opts...),
		WithNotifiers(NotifiersFromConfig(cfg, opts...)...),
		WithGateway(cfg.Gateway),
	), nil
}

// Run pins every role in order, then logs the report as an issue. Notifications are sent only
// when the issue was created. Collaborator failures are logged and recorded in the report; Run
// only returns an error when ctx is cancelled.
func (s *Syncer) Run(ctx context.Context, roles []Role) (*SyncReport, error) {
	lggr := sdk.LoggerFrom(ctx)
	lggr.Infof("Starting anchor sync of %d role(s) at %s", len(roles), s.now().UTC().Format(time.RFC3339))

	report := &SyncReport{Entries: make([]SyncEntry, 0, len(roles))}
	for _, r := range roles {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		entry := SyncEntry{Role: r}
		entry.CID, entry.Err = s.pinner.Pin(ctx, r)
		if entry.Err != nil {
			lggr.Errorf("Failed to pin %s: %v", r.Name, entry.Err)
			entry.CID = PinStatus(entry.Err)
		}
		report.Entries = append(report.Entries, entry)
	}

	report.Title = IssueTitle(s.now())
	report.Body = ReportBody(report.Entries)

	url, err := s.issues.LogIssue(ctx, report.Title, report.Body)
	if err != nil {
		lggr.Errorf("Failed to log anchor issue: %v", err)
	}
	report.IssueURL = url

	if report.IssueURL != "" {
		report.Notified = Broadcast(ctx, s.notifiers,
			fmt.Sprintf("New metadata sync completed for %d entities.", len(roles)),
			[]Link{{Name: "GitHub Log", URL: report.IssueURL}, {Name: "IPFS Gateway", URL: s.gateway}},
		)
	}
	lggr.Infof("Anchor sync complete")

	return report, ctx.Err()
}

// ReportBody renders entries as the markdown table logged for a sync run.
func ReportBody(entries []SyncEntry) string {
	rows := make([]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, fmt.Sprintf("| %s | `%s` |", e.Role.Name, e.CID))
	}

	return reportHeader + strings.Join(rows, "\n")
}
