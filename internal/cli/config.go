package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default name of the config file
const DefaultConfigFile = "config.yaml"

const configVersion = "0.1.0"

// Config is the configuration of the Tyko CLI.
type Config struct {
	// Version of the configuration file format
	Version string `yaml:"version"`
	// ServerURL is the URL of the Tyko server
	ServerURL string `yaml:"server_url"`
	// APIPrefix is the path the API is mounted under
	APIPrefix string `yaml:"api_prefix"`
}

var config *Config

// GetDefaultConfigPath returns the default path for the config file, under the OS
// specific config directory (e.g., ~/.config/tyko on Linux).
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "tyko", DefaultConfigFile), nil
}

// LoadConfig loads the configuration from file, or from the default location when
// file is empty.
func LoadConfig(file string) error {
	if file == "" {
		var err error
		file, err = GetDefaultConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get default config path: %w", err)
		}
	}

	yamlStr, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("unable to read config file: %w", err)
	}

	var c Config
	if err = yaml.Unmarshal(yamlStr, &c); err != nil {
		return fmt.Errorf("unable to parse config file: %w", err)
	}
	if err := c.ValidateConfig(); err != nil {
		return err
	}
	c.ServerURL = MorphServer(c.ServerURL)

	config = &c
	return nil
}

// GetConfig returns the current configuration
func GetConfig() *Config {
	return config
}

// WriteConfig writes the configuration to file.
func (cfg *Config) WriteConfig(file string) error {
	if file == "" {
		return errors.New("file path cannot be empty")
	}

	err := os.MkdirAll(filepath.Dir(file), os.ModePerm)
	if err != nil {
		return fmt.Errorf("unable to create config directory: %w", err)
	}

	yamlStr, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("unable to generate configuration: %w", err)
	}

	err = os.WriteFile(file, yamlStr, os.FileMode(0600))
	if err != nil {
		return fmt.Errorf("unable to write config file: %w", err)
	}

	return nil
}

func (cfg *Config) ValidateConfig() error {
	if cfg.ServerURL == "" {
		return errors.New("server_url is required")
	}
	if cfg.APIPrefix != "" && !strings.HasPrefix(cfg.APIPrefix, "/") {
		return errors.New("api_prefix must start with /")
	}
	return nil
}

// MorphServer adds http:// when no scheme is given and removes trailing slashes.
func MorphServer(server string) string {
	if server == "" {
		return server
	}
	server = strings.TrimRight(server, "/")
	if !strings.HasPrefix(server, "http://") && !strings.HasPrefix(server, "https://") {
		server = "http://" + server
	}
	return server
}

func (cfg *Config) GetServerURL() string {
	return MorphServer(cfg.ServerURL)
}

func (cfg *Config) GetAPIPrefix() string {
	if cfg.APIPrefix == "" {
		return "/api"
	}
	return cfg.APIPrefix
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
	Long:  `Manage CLI configuration settings like the server URL and API prefix.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var configCreateCmd = &cobra.Command{
	Use:   "create --server URL [--api-prefix PREFIX]",
	Short: "Write a new configuration file",
	Long: `Write a new configuration file pointing the CLI at a Tyko server.

Examples:
  # Use a local server
  tyko config create --server localhost:8000

  # Use a server that mounts the API under /tyko/api
  tyko config create --server https://tyko.example.edu --api-prefix /tyko/api`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, _ := cmd.Flags().GetString("server")
		prefix, _ := cmd.Flags().GetString("api-prefix")
		return setServerConfig(cmd, server, prefix)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}
		if err := LoadConfig(path); err != nil {
			return err
		}
		cfg := GetConfig()
		if jsonOutput {
			printJSON(cmd, map[string]string{
				"server":      cfg.GetServerURL(),
				"api_prefix":  cfg.GetAPIPrefix(),
				"config_file": path,
			})
			return nil
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Server: %s\n", cfg.GetServerURL())
		fmt.Fprintf(out, "API prefix: %s\n", cfg.GetAPIPrefix())
		fmt.Fprintf(out, "Config file: %s\n", path)
		return nil
	},
}

func init() {
	configCreateCmd.Flags().String("server", "", "Server URL (e.g., localhost:8000)")
	configCreateCmd.Flags().String("api-prefix", "/api", "Path the API is mounted under")
	configCreateCmd.MarkFlagRequired("server")

	configCmd.AddCommand(configCreateCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func configPath() (string, error) {
	if configFile != "" {
		return configFile, nil
	}
	return GetDefaultConfigPath()
}

func setServerConfig(cmd *cobra.Command, server, prefix string) error {
	path, err := configPath()
	if err != nil {
		return fmt.Errorf("failed to get default config path: %w", err)
	}

	cfg := &Config{
		Version:   configVersion,
		ServerURL: MorphServer(server),
		APIPrefix: "/" + strings.Trim(prefix, "/"),
	}
	if err := cfg.ValidateConfig(); err != nil {
		return err
	}
	if err := cfg.WriteConfig(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if jsonOutput {
		printJSON(cmd, map[string]string{
			"server":      cfg.ServerURL,
			"config_file": path,
		})
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Server configured: %s\n", cfg.ServerURL)
		fmt.Fprintf(cmd.OutOrStdout(), "Config file: %s\n", path)
	}
	return nil
}
