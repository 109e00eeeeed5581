// Package cli implements the tyko command line client. Most commands talk to a Tyko
// server through the REST API; initdb and checkdb open the database directly.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/uiuclibrary/tyko/internal/common/httpclient"
)

var (
	// Global flags
	jsonOutput bool
	configFile string
)

var ErrAlreadyHandled = errors.New("already handled")

var okLabel = color.New(color.FgGreen)
var errorLabel = color.New(color.FgRed)

// newClient returns the client commands use to reach the server.
var newClient = func() httpclient.HTTPClientInterface {
	return httpclient.NewClient(GetConfig())
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tyko [command] [flags]",
	Short: "Tyko CLI - manage AV preservation metadata on a Tyko server",
	Long: `Tyko CLI is a command line interface for a Tyko server.
It lists, reads, creates and deletes projects, collections, objects, items and notes,
downloads PBCore documents and prepares the server database.

Examples:
  # Point the CLI at a server
  tyko config create --server localhost:8000

  # Create resources from a manifest
  tyko create -f manifest.yaml

  # Read a project
  tyko get project/1

  # List objects as JSON
  tyko list objects -j`,
	PersistentPreRunE: preRunHandlePersistents,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "cli-config", "", "", "Path to CLI configuration file to override default")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output in JSON format")

	rootCmd.AddCommand(newVersionCmd())
}

// Execute runs the root command. It is called once by main.
func Execute() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	err := rootCmd.Execute()
	if err != nil {
		if errors.Is(err, ErrAlreadyHandled) {
			os.Exit(1)
		}
		if jsonOutput {
			printJSON(rootCmd, map[string]string{"error": err.Error()})
		} else {
			errorLabel.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// commands that work without a CLI configuration file
var standalone = map[string]bool{
	"config":  true,
	"version": true,
	"initdb":  true,
	"checkdb": true,
	"help":    true,
}

// preRunHandlePersistents loads the CLI configuration for commands that talk to
// the server.
func preRunHandlePersistents(cmd *cobra.Command, args []string) error {
	for c := cmd; c != nil; c = c.Parent() {
		if standalone[c.Name()] {
			return nil
		}
	}
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := LoadConfig(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return errors.New(`tyko config file not found. Configure tyko with "tyko config create" first`)
		}
		return err
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of the tyko CLI",
		Run: func(cmd *cobra.Command, args []string) {
			configPath, err := GetDefaultConfigPath()
			if err != nil {
				configPath = "unknown"
			}

			if jsonOutput {
				printJSON(cmd, map[string]string{
					"version":     getCLIVersion(),
					"config_file": configPath,
				})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "tyko CLI %s\n", getCLIVersion())
				fmt.Fprintf(cmd.OutOrStdout(), "Config file: %s\n", configPath)
			}
		},
	}
}

// printJSON writes data as indented JSON to the output of cmd.
func printJSON(cmd *cobra.Command, data any) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
}

// printResult writes the result envelope used by -j output.
func printResult(cmd *cobra.Command, body []byte) error {
	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return fmt.Errorf("failed to parse response: %v", err)
	}
	printJSON(cmd, map[string]any{"result": 1, "value": value})
	return nil
}

func getCLIVersion() string {
	return "v0.1.0"
}
