package cli

import (
	"github.com/spf13/cobra"

	"quetzal-gate/internal/db"
)

func newMigrateCmd() *cobra.Command {
	var store storeFlags
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Flags(), store)
			if err != nil {
				return err
			}
			pools, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer pools.Close() //nolint:errcheck

			v, err := db.MigrationVersion(pools.Write, pools.Dialect)
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "schema at version %d (%s)\n", v, pools.Dialect)
			return nil
		},
	}
	store.register(cmd.Flags())
	return cmd
}
