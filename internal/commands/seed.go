package commands

import (
	"github.com/spf13/cobra"

	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/seed"
)

var (
	seedDemo        bool
	seedDemoClients int
	seedDemoSeed    int64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Install the firm's standard case templates",
	Long: `Install the five standard templates (administrative and judicial
social-security, judicial labor, and the two generic flows). Re-running is
safe: templates already on file are skipped.

With --demo, also generates fake clients and cases for development.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		repo, err := buildRepository(ctx)
		if err != nil {
			return err
		}
		defer repo.Close()

		if err := seed.Templates(ctx, repo); err != nil {
			return err
		}

		if seedDemo {
			return seed.Demo(ctx, repo, seedDemoClients, seedDemoSeed)
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedDemo, "demo", false, "also generate demo clients and cases")
	seedCmd.Flags().IntVar(&seedDemoClients, "demo-clients", 10, "number of demo clients to generate")
	seedCmd.Flags().Int64Var(&seedDemoSeed, "demo-seed", 0, "random seed for reproducible demo data (0 = random)")
}
