package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/garland/internal/config"
	"github.com/example/garland/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the garland database and config",
		Long:  `Initialize the garland database at ~/.garland/garland.db with the required schema.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, err := db.GetDBPath()
			if err != nil {
				return fmt.Errorf("failed to get database path: %w", err)
			}

			fmt.Printf("Initializing garland database at %s\n", dbPath)

			if _, err := db.GetDB(); err != nil {
				return fmt.Errorf("failed to initialize schema: %w", err)
			}

			fmt.Println("✓ Database initialized successfully")

			dir, err := config.ConfigDir()
			if err != nil {
				return fmt.Errorf("failed to locate config directory: %w", err)
			}
			if _, err := os.Stat(filepath.Join(dir, "config.json")); os.IsNotExist(err) {
				if err := config.SaveConfig(dir, config.Default()); err != nil {
					return fmt.Errorf("failed to write default config: %w", err)
				}
				fmt.Println("✓ Default config written to ~/.garland/config.json")
			}

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  garland deployment create CHRISTMAS")
			fmt.Println("  garland deployment list")

			return nil
		},
	}
}
