package cli

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/garland/internal/config"
	"github.com/example/garland/internal/db"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the garland environment",
		Long: `Environment health check for garland.

Validates:
- Config directory and config.json
- Database file and schema
- Items service reachability
- Photo service reachability

Examples:
  garland doctor              # Run full health check
  garland doctor --quiet      # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := []CheckResult{
				checkConfig(),
				checkDatabase(),
			}

			dir, err := config.ConfigDir()
			if err == nil {
				if cfg, cfgErr := config.LoadConfig(dir); cfgErr == nil {
					results = append(results, checkService("items service", cfg.ItemsServiceURL))
					results = append(results, checkService("photo service", cfg.PhotoServiceURL))
				}
			}

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				fmt.Println()
				fmt.Println("Check              Status")
				fmt.Println("─────────────────────────")
				for _, r := range results {
					fmt.Printf("%-18s %s\n", r.Name, r.Status)
				}
				fmt.Println()

				for _, r := range results {
					if r.Status != "✓" && r.Details != "" {
						fmt.Printf("%s: %s\n", r.Name, r.Details)
					}
				}
			}

			if hasErrors {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&quiet, "quiet", false, "Exit code only, no output")
	return cmd
}

func checkConfig() CheckResult {
	dir, err := config.ConfigDir()
	if err != nil {
		return CheckResult{Name: "config", Status: "✗", Details: err.Error()}
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return CheckResult{Name: "config", Status: "⚠", Details: "~/.garland missing, run `garland init`"}
	}
	if _, err := config.LoadConfig(dir); err != nil {
		return CheckResult{Name: "config", Status: "✗", Details: err.Error()}
	}
	return CheckResult{Name: "config", Status: "✓"}
}

func checkDatabase() CheckResult {
	if _, err := db.GetDB(); err != nil {
		return CheckResult{Name: "database", Status: "✗", Details: err.Error()}
	}
	return CheckResult{Name: "database", Status: "✓"}
}

// checkService probes an external service's health endpoint.
func checkService(name, baseURL string) CheckResult {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL + "/healthz")
	if err != nil {
		return CheckResult{Name: name, Status: "⚠", Details: fmt.Sprintf("unreachable: %v", err)}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return CheckResult{Name: name, Status: "⚠", Details: fmt.Sprintf("health check returned %d", resp.StatusCode)}
	}
	return CheckResult{Name: name, Status: "✓"}
}
