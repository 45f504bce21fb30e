package cmd

import (
	"billora-backend/cmd/config"
	migration "billora-backend/cmd/database/migrate"
	"billora-backend/internal/utils"
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the relational schema (STORE_DRIVER=postgres only)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.StoreDriver != utils.StoreDriverPostgres {
			return fmt.Errorf("migrate requires STORE_DRIVER=%s, got %s", utils.StoreDriverPostgres, cfg.StoreDriver)
		}

		db, err := config.ConnectDB(cfg)
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		return migration.Migrate(db)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
