package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/julius-network/safeprop"
)

func newProposeCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "propose",
		Short: "Submit a proposal batch to the Safe Transaction Service",
		Long: `Propose every transaction of the batch to the Safe Transaction Service, one at a time.
A rejected proposal is recorded in the results file and does not stop the run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := prepare(cmd, flags)
			if err != nil {
				return err
			}

			path, err := safeprop.Propose(cmd.Context(), cfg.Config)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)

			return nil
		},
	}

	defaults := safeprop.DefaultConfig()
	cmd.Flags().String("proposals", defaults.ProposalsPath, "Path of the proposal batch to submit")
	cmd.Flags().String("results", defaults.ResultsPath, "Path the results are written to")
	cmd.Flags().String("service-url", "", "Base URL of the Safe Transaction Service")
	cmd.Flags().String("safe", "", "Address of the Safe the transactions are proposed to")
	cmd.Flags().Duration("delay", defaults.RequestDelay, "Pause after each request")
	cmd.Flags().Duration("timeout", defaults.HTTPTimeout, "Timeout of each request")

	return cmd
}
