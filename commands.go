package main

import (
	"fmt"

	"github.com/gtoxlili/evoTrade/config"
	"github.com/gtoxlili/evoTrade/logger"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "evotrade",
		Short:         "Load and validate the evolutionary trading configuration",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadEnvFile(envFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := loadSettings()
			return err
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "override file merged into the environment at startup")

	root.AddCommand(newCheckCmd(), newEnvCmd(), newSnapshotCmd())
	return root
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration and log a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := loadSettings()
			return err
		},
	}
}

func newEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the environment variables and their defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.PrintUsage(cmd.OutOrStdout())
		},
	}
}

func newSnapshotCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Write the effective configuration to a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			if err := config.SaveSnapshot(out, settings); err != nil {
				return err
			}
			log := logger.WithComponent("cli")
			log.Info().Str("path", out).Msg("snapshot written")
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", config.DefaultSnapshotPath, "snapshot file")
	return cmd
}

// loadSettings 加载配置后按运行环境重新配置日志
func loadSettings() (config.Settings, error) {
	settings, err := config.NewStore().Load()
	if err != nil {
		return lo.Empty[config.Settings](), fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Configure(logger.Config{
		Level:  settings.Runtime.LogLevel,
		Pretty: settings.Runtime.IsDevelopment(),
	})
	log := logger.WithComponent("cli")
	log.Info().
		Str("environment", settings.Runtime.Environment).
		Str("exchange", settings.Trading.Exchange.String()).
		Str("timeframe", settings.Trading.Timeframe.String()).
		Dur("candle", settings.Trading.Timeframe.Duration()).
		Float64("initial_capital", settings.Trading.InitialCapital.Float64()).
		Float64("max_position_size", settings.Trading.MaxPositionSize.Float64()).
		Float64("max_drawdown_pct", settings.Trading.MaxDrawdownPct.Float64()).
		Int("population_size", settings.Evolution.PopulationSize.Int()).
		Int("generations", settings.Evolution.Generations.Int()).
		Float64("mutation_rate", settings.Evolution.MutationRate.Float64()).
		Int("elitism_count", settings.Evolution.ElitismCount.Int()).
		Msg("configuration ok")
	return settings, nil
}
