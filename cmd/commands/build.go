package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/julius-network/safeprop"
)

func newBuildCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile the manifest into a batch of encoded Safe proposals",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := prepare(cmd, flags)
			if err != nil {
				return err
			}

			path, err := safeprop.Build(cmd.Context(), cfg.Config)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)

			return nil
		},
	}

	defaults := safeprop.DefaultConfig()
	cmd.Flags().String("manifest", defaults.ManifestPath, "Path of the pinned manifest")
	cmd.Flags().String("artifacts", defaults.ArtifactsDir, "Directory holding the contract build artifacts")
	cmd.Flags().String("proposals", defaults.ProposalsPath, "Path the proposal batch is written to")
	cmd.Flags().String("recipient", "", "Default recipient when the manifest declares no multisig")
	cmd.Flags().String("token", "", "JuliusToken address, overriding the manifest")
	cmd.Flags().String("registry", "", "JuliusRegistry address, overriding the manifest")

	return cmd
}
