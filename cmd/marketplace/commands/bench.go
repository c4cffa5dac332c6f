package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/99minutos/marketplace-system/internal/bench"
)

var (
	benchScenario int
	benchRuns     int
	benchItems    int
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Drive the frontends with concurrent sellers and buyers",
	Long: `Run a predefined scenario against running frontends and report average
response time and throughput per run and across runs.

Scenarios:
  1  one seller, one buyer
  2  ten sellers, ten buyers
  3  one hundred sellers, one hundred buyers

Frontend addresses come from SELLER_FRONTEND_ADDR and BUYER_FRONTEND_ADDR.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signalContext(cmd.Context())
		defer stop()

		cfg, log, err := setup(ctx, "bench")
		if err != nil {
			return err
		}

		_, err = bench.Run(ctx, bench.Config{
			SellerAddr:     cfg.SellerFrontend.Addr,
			BuyerAddr:      cfg.BuyerFrontend.Addr,
			ItemsPerSeller: benchItems,
			Timeout:        cfg.RPCTimeout,
		}, benchScenario, benchRuns, os.Stdout, log)
		return err
	},
}

func init() {
	rootCmd.AddCommand(benchCmd)

	benchCmd.Flags().IntVar(&benchScenario, "scenario", 1, "Scenario number (1, 2 or 3)")
	benchCmd.Flags().IntVar(&benchRuns, "runs", 10, "Number of measured runs")
	benchCmd.Flags().IntVar(&benchItems, "items", 10, "Items listed per seller during setup")
}

