package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/smartlink-app/smartlink/cmd"
	"github.com/smartlink-app/smartlink/internal/config"
	"github.com/smartlink-app/smartlink/internal/repository"
)

// MigrateCmd represents the 'migrate' command
// This command handles database schema creation and updates
var MigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Executes database migrations to create or update tables.",
	Long: `This command connects to the configured database (SQLite)
and executes GORM automatic migrations to create the 'users', 'links',
'clicks' and 'embeddings' tables based on the Go models.`,
	Run: func(cobraCmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		store, err := repository.OpenStore(cfg.Database.Name)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer store.Close()

		if err := store.AutoMigrate(); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}

		fmt.Println("Database migrations executed successfully.")
	},
}

func init() {
	cmd.RootCmd.AddCommand(MigrateCmd)
}
