package commands

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/julius-network/safeprop/sdk"
)

type rootFlags struct {
	configFile string
	envFile    string
}

func BuildSafepropCmd() *cobra.Command {
	var flags rootFlags

	cmd := cobra.Command{
		Use:           "safeprop",
		Short:         "Compile manifests into Safe proposals and submit them",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.configFile, "config", "", "Optional config file (json, yaml or toml)")
	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "Dotenv file loaded into the environment when present")
	cmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")

	cmd.AddCommand(newBuildCmd(&flags))
	cmd.AddCommand(newProposeCmd(&flags))
	cmd.AddCommand(newDecodeCmd(&flags))
	cmd.AddCommand(newAnchorSyncCmd(&flags))

	return &cmd
}

// prepare resolves the configuration of cmd and attaches a logger to its context, unless the
// context already carries one.
func prepare(cmd *cobra.Command, flags *rootFlags) (*Config, error) {
	cfg, err := LoadConfig(cmd.Flags(), flags.configFile, flags.envFile)
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	if _, ok := ctx.Value(sdk.ContextLoggerValue).(sdk.Logger); !ok {
		lggr, err := newLogger(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		cmd.SetContext(sdk.WithLogger(ctx, lggr))
	}

	return cfg, nil
}

func newLogger(level string) (*zap.SugaredLogger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	zapCfg := zap.NewProductionConfig()
	if lvl == zapcore.DebugLevel {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)

	lggr, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}

	return lggr.Sugar().With("run_id", uuid.NewString()), nil
}
