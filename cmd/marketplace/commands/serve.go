package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/99minutos/marketplace-system/internal/app"
	"github.com/99minutos/marketplace-system/internal/infrastructure/config"
	"github.com/99minutos/marketplace-system/internal/protocol"
)

type builder func(context.Context, *config.Config, zerolog.Logger) (*app.Service, error)

var services = []struct {
	use   string
	name  string
	short string
	build builder
}{
	{"customer-db", protocol.ServiceCustomerDB, "Run the account, session and seller rating store", app.NewCustomerDB},
	{"product-db", protocol.ServiceProductDB, "Run the item catalog and cart store", app.NewProductDB},
	{"buyer-frontend", protocol.ServiceBuyerFrontend, "Run the buyer-facing frontend", app.NewBuyerFrontend},
	{"seller-frontend", protocol.ServiceSellerFrontend, "Run the seller-facing frontend", app.NewSellerFrontend},
}

func init() {
	for _, s := range services {
		rootCmd.AddCommand(&cobra.Command{
			Use:   s.use,
			Short: s.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runServices(cmd.Context(), s.name, s.build)
			},
		})
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "all",
		Short: "Run all four processes in one binary (stores first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			builders := make([]builder, 0, len(services))
			for _, s := range services {
				builders = append(builders, s.build)
			}
			return runServices(cmd.Context(), "marketplace", builders...)
		},
	})
}

func runServices(parent context.Context, name string, builders ...builder) error {
	ctx, stop := signalContext(parent)
	defer stop()

	cfg, log, err := setup(ctx, name)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, build := range builders {
		svc, err := build(gctx, cfg, log)
		if err != nil {
			stop()
			_ = g.Wait()
			return fmt.Errorf("start: %w", err)
		}
		// Bind before building the next process so frontends can dial the stores.
		if err := svc.Listen(); err != nil {
			stop()
			_ = g.Wait()
			return fmt.Errorf("%s: %w", svc.Name, err)
		}
		log.Info().Str("process", svc.Name).Str("addr", svc.Addr().String()).Msg("listening")
		g.Go(func() error { return svc.Run(gctx) })
	}

	err = g.Wait()
	log.Info().Msg("shutdown complete")
	return err
}
