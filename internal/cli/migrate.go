package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/alanyang/agent-console/internal/adapter/fixture"
	"github.com/alanyang/agent-console/internal/config"
	"github.com/alanyang/agent-console/internal/wire"
)

func newMigrateCmd() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the agent tables in the configured store",
		Long:  "Applies the schema for the postgres or sqlite backend. With --seed the predefined agents are inserted where missing.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Store.Backend == config.StoreFixture {
				return fmt.Errorf("store.backend is %q: nothing to migrate", config.StoreFixture)
			}

			store, err := wire.OpenStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Closer()

			if !seed {
				slog.Info("migrations complete", "store", cfg.Store.Backend)
				return nil
			}

			n, err := wire.Seed(cmd.Context(), store.Repo, fixture.Agents())
			if err != nil {
				return err
			}
			slog.Info("seed complete", "store", cfg.Store.Backend, "inserted", n)
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d agent(s)\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "insert the predefined agents")
	return cmd
}
