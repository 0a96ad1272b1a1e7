package commands

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/julius-network/safeprop/anchor"
)

func newAnchorSyncCmd(flags *rootFlags) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "anchor-sync",
		Short: "Pin role metadata to IPFS, log the run on GitHub and notify chat platforms",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := prepare(cmd, flags)
			if err != nil {
				return err
			}

			syncer, err := anchor.NewSyncerFromConfig(cfg.Anchor, dryRun,
				anchor.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}))
			if err != nil {
				return err
			}

			report, err := syncer.Run(cmd.Context(), cfg.Anchor.ActiveRoles())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, report.Body)
			if report.IssueURL != "" {
				fmt.Fprintln(out, report.IssueURL)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Derive CIDs locally instead of uploading to nft.storage")
	cmd.Flags().String("gateway", anchor.DefaultGateway, "IPFS gateway linked from notifications")
	cmd.Flags().String("metadata-dir", anchor.DefaultMetadataDir, "Directory metadata documents are written to")

	return cmd
}
