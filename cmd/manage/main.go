package main

import (
	"fmt"
	"os"

	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/logging"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "manage",
	Short: "Administrative commands for the commons backend",
	Long: `manage runs one-off administrative tasks against the commons database:
migrations, account suspension, ip blocking and notifications.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		logging.Setup(cfg.LogLevel)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(suspendCmd)
	rootCmd.AddCommand(blockIPCmd)
	rootCmd.AddCommand(flagIPCmd)
	rootCmd.AddCommand(notifyCmd)
}

// openDB connects using the loaded config.
func openDB() (*gorm.DB, error) {
	if err := database.Connect(cfg); err != nil {
		return nil, err
	}
	return database.DB, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
