package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	srvconfig "github.com/uiuclibrary/tyko/internal/tykosrv/config"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/dbmanager"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/gormdb"
)

var (
	serverConfigFile string
	sampleData       bool
)

var initdbCmd = &cobra.Command{
	Use:   "initdb --config FILE [--sample-data]",
	Short: "Create the database tables and seed the enumerations",
	Long: `Create the database tables of a Tyko server and seed the format types, note types
and enumerations. Existing rows are kept. This command opens the database named in
the server configuration file directly.

Examples:
  tyko initdb --config /etc/tyko/tykosrv.conf
  tyko initdb --config tykosrv.conf --sample-data`,
	RunE: initDatabase,
}

var checkdbCmd = &cobra.Command{
	Use:   "checkdb --config FILE",
	Short: "Check the database tables, fixed ids and schema version",
	Long: `Check that every table of a Tyko server exists, that the fixed format and note type
ids carry their expected names and that the schema version is compatible.

Examples:
  tyko checkdb --config /etc/tyko/tykosrv.conf`,
	RunE: checkDatabase,
}

// loadServerConfig reads the server configuration, taking the database password
// from TYKO_DB_PASSWORD when set.
func loadServerConfig() (*srvconfig.ConfigParam, error) {
	if serverConfigFile == "" {
		serverConfigFile = os.Getenv("TYKO_SETTINGS")
	}
	if err := srvconfig.LoadConfig(serverConfigFile); err != nil {
		return nil, err
	}
	cfg := srvconfig.Config()
	if pw := os.Getenv("TYKO_DB_PASSWORD"); pw != "" {
		cfg.DB.Password = pw
	}
	return cfg, nil
}

func initDatabase(cmd *cobra.Command, args []string) error {
	cfg, err := loadServerConfig()
	if err != nil {
		return err
	}
	cfg.DB.InitOnStart = true
	cfg.DB.SampleData = sampleData

	ctx := log.Logger.WithContext(context.Background())
	if err := db.InitWithConfig(ctx, cfg); err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	db.Pool().Close()

	if jsonOutput {
		printJSON(cmd, map[string]any{"result": 1, "sample_data": sampleData})
		return nil
	}
	okLabel.Fprintf(cmd.OutOrStdout(), "[OK] ")
	fmt.Fprintln(cmd.OutOrStdout(), "Database initialized")
	return nil
}

func checkDatabase(cmd *cobra.Command, args []string) error {
	cfg, err := loadServerConfig()
	if err != nil {
		return err
	}

	ctx := log.Logger.WithContext(context.Background())
	p, err := dbmanager.NewPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer p.Close()

	if err := gormdb.ValidateDatabase(ctx, p.Gorm(ctx)); err != nil {
		if jsonOutput {
			printJSON(cmd, map[string]any{"result": 0, "error": err.Error()})
			return ErrAlreadyHandled
		}
		return fmt.Errorf("database check failed: %w", err)
	}

	if jsonOutput {
		printJSON(cmd, map[string]any{"result": 1})
		return nil
	}
	okLabel.Fprintf(cmd.OutOrStdout(), "[OK] ")
	fmt.Fprintln(cmd.OutOrStdout(), "Database is valid")
	return nil
}

func init() {
	for _, c := range []*cobra.Command{initdbCmd, checkdbCmd} {
		c.Flags().StringVar(&serverConfigFile, "config", "", "Server configuration file (defaults to $TYKO_SETTINGS)")
		rootCmd.AddCommand(c)
	}
	initdbCmd.Flags().BoolVar(&sampleData, "sample-data", false, "Also add a sample collection, project and object")
}
