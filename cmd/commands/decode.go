package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/julius-network/safeprop"
)

func newDecodeCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Print the decoded calls of a proposal batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := prepare(cmd, flags)
			if err != nil {
				return err
			}

			decoded, err := safeprop.Inspect(cfg.Config)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, d := range decoded {
				fmt.Fprintf(out, "#%d %s to=%s\n", i, d.Proposal.Action, d.Proposal.To)
				if d.Err != nil {
					fmt.Fprintf(out, "  error: %v\n", d.Err)
					continue
				}
				fmt.Fprintf(out, "  %s %s\n", d.Method, d.Args)
			}

			return nil
		},
	}

	defaults := safeprop.DefaultConfig()
	cmd.Flags().String("proposals", defaults.ProposalsPath, "Path of the proposal batch to decode")
	cmd.Flags().String("artifacts", defaults.ArtifactsDir, "Directory holding the contract build artifacts")

	return cmd
}
