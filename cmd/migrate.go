package cmd

import (
	"fmt"

	"aicodegen-backend/internal/database"
	"aicodegen-backend/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		defer logger.Sync()

		db, err := database.Open(cfg)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer database.Close()

		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}

		logger.Log.Info("database migrated", zap.String("driver", cfg.DBDriver))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
