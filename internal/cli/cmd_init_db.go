package cli

import (
	"fmt"
	"io"

	"car-auction/utils"

	"github.com/spf13/cobra"
)

func newInitDBCommand(out io.Writer, globals *globalOptions) *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "init-db",
		Short: "Create the database schema, optionally loading sample listings",
		Example: "  car-auction init-db\n" +
			"  car-auction --db ./data/auctions.db init-db --seed",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(globals)
			if err != nil {
				return err
			}

			store, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					utils.Warn("failed to close database", map[string]any{"error": err.Error()})
				}
			}()

			if seed {
				if err := store.SeedSampleData(cmd.Context()); err != nil {
					return err
				}
			}

			_, err = fmt.Fprintf(out, "initialized database: %s seeded=%t\n", store.Path(), seed)
			return err
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "Wipe all data and load the sample auctions and test user")
	return cmd
}
