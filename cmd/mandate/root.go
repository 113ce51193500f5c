package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mandate/internal/platform/config"
	"mandate/internal/platform/logger"
)

var rootCmd = &cobra.Command{
	Use:           "mandate",
	Short:         "Training obligation reconciliation and compliance reporting",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (defaults to ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Override logging.level")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(remindCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(tokenCmd)
}

// loadConfig reads configuration with flag overrides taking precedence over
// the environment and the config file.
func loadConfig(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	v := viper.New()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		v.SetConfigFile(path)
	}
	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		if err := v.BindPFlag("logging.level", f); err != nil {
			return nil, zerolog.Nop(), err
		}
	}

	cfg, err := config.Load(v)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("load config: %w", err)
	}
	return cfg, logger.New(cfg.Logging.Level, cfg.Logging.Pretty), nil
}
