// Package commands wires the portal's cobra CLI: serve, migrate and seed.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/config"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/logging"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "portal",
	Short: "Felix & Castro client portal",
	Long: `portal is the backend for the Felix & Castro Advocacia case-tracking
portal. Staff manage case templates and advance cases step by step; clients
follow their own cases and attach documents.`,
	Version:      "0.1.0",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logging.SetDefault(logging.New(
			logging.ParseLevel(cfg.Logging.Level),
			cfg.Logging.Format,
		))
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
