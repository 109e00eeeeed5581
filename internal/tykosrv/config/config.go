// Package config loads and validates the Tyko server configuration. The configuration
// is a TOML file read once at startup and exposed through Config().
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/go-playground/validator/v10"
)

// FormatVersion is the version of the configuration file format understood by this build.
const FormatVersion = "1.0.0"

// Database drivers.
const (
	DriverPostgres = "postgresql"
	DriverSqlite   = "sqlite"
)

// DBConfig holds the database connection parameters.
type DBConfig struct {
	Driver           string `toml:"driver" validate:"required,oneof=postgresql sqlite"`
	Host             string `toml:"host" validate:"required_if=Driver postgresql"`
	Port             int    `toml:"port" validate:"required_if=Driver postgresql,gte=0,lte=65535"`
	DBName           string `toml:"dbname" validate:"required_if=Driver postgresql"`
	User             string `toml:"user" validate:"required_if=Driver postgresql"`
	Password         string `toml:"password"`
	SSLMode          string `toml:"sslmode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	Path             string `toml:"path" validate:"required_if=Driver sqlite"` // sqlite file, or :memory:
	StatementTimeout string `toml:"statement_timeout"`
	InitOnStart      bool   `toml:"init_on_start"` // create tables and seed enumerations at start
	SampleData       bool   `toml:"sample_data"`   // also add a sample collection, project and object
}

// PBCoreConfig holds the identifier sources written into PBCore documents.
type PBCoreConfig struct {
	IdentifierSource       string `toml:"identifier_source"`
	ObjectIdentifierSource string `toml:"object_identifier_source"`
}

// ConfigParam holds all configuration parameters for the Tyko server.
type ConfigParam struct {
	FormatVersion string `toml:"format_version" validate:"required"`

	ServerHostName     string   `toml:"server_hostname"`
	ServerPort         string   `toml:"server_port" validate:"required,numeric"`
	HandleCORS         bool     `toml:"handle_cors"`
	CORSAllowedOrigins []string `toml:"cors_allowed_origins"`
	MaxRequestBodySize int64    `toml:"max_request_body_size" validate:"gte=0"`
	RequestTimeout     string   `toml:"request_timeout"`
	LogLevel           string   `toml:"log_level" validate:"omitempty,oneof=trace debug info warn error"`
	ServerColor        string   `toml:"server_color"`
	APIPrefix          string   `toml:"api_prefix"`
	FrontendPrefix     string   `toml:"frontend_prefix"`

	DB     DBConfig     `toml:"db"`
	PBCore PBCoreConfig `toml:"pbcore"`
}

var cfg *ConfigParam

// Config returns the current configuration.
func Config() *ConfigParam {
	return cfg
}

// SetConfig replaces the current configuration. It is used by tools that build the
// configuration in code.
func SetConfig(c *ConfigParam) {
	cfg = c
}

// DSN returns the PostgreSQL connection string.
func (c *ConfigParam) DSN() string {
	sslMode := c.DB.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.DBName, sslMode)
}

// GetRequestTimeout returns the request timeout, zero if none is configured.
func (c *ConfigParam) GetRequestTimeout() time.Duration {
	d, _ := time.ParseDuration(c.RequestTimeout)
	return d
}

// GetStatementTimeout returns the database statement timeout, 5s by default.
func (c *ConfigParam) GetStatementTimeout() time.Duration {
	d, err := time.ParseDuration(c.DB.StatementTimeout)
	if err != nil || d <= 0 {
		return 5 * time.Second
	}
	return d
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateConfig checks if all required configuration values are present and valid,
// and fills in defaults for optional values.
func ValidateConfig(cfg *ConfigParam) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}
	if err := validateConfigFormatVersion(cfg); err != nil {
		return err
	}
	if err := validateDurations(cfg); err != nil {
		return err
	}
	applyDefaults(cfg)
	return nil
}

func formatValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

// validateConfigFormatVersion accepts any file whose format version has the same major
// version as this build and is not newer.
func validateConfigFormatVersion(cfg *ConfigParam) error {
	v, err := semver.NewVersion(cfg.FormatVersion)
	if err != nil {
		return fmt.Errorf("invalid format_version %q: %v", cfg.FormatVersion, err)
	}
	current := semver.MustParse(FormatVersion)
	c, err := semver.NewConstraint(fmt.Sprintf(">= %d.0.0, <= %s", current.Major(), current.String()))
	if err != nil {
		return err
	}
	if !c.Check(v) {
		return fmt.Errorf("unsupported config file format version: %s", cfg.FormatVersion)
	}
	return nil
}

func validateDurations(cfg *ConfigParam) error {
	if cfg.RequestTimeout != "" {
		if _, err := time.ParseDuration(cfg.RequestTimeout); err != nil {
			return fmt.Errorf("invalid request_timeout: %v", err)
		}
	}
	if cfg.DB.StatementTimeout != "" {
		if _, err := time.ParseDuration(cfg.DB.StatementTimeout); err != nil {
			return fmt.Errorf("invalid db.statement_timeout: %v", err)
		}
	}
	return nil
}

func applyDefaults(cfg *ConfigParam) {
	if cfg.APIPrefix == "" {
		cfg.APIPrefix = "/api"
	}
	cfg.APIPrefix = "/" + strings.Trim(cfg.APIPrefix, "/")
	if cfg.FrontendPrefix == "" {
		cfg.FrontendPrefix = "/"
	}
	if cfg.ServerColor == "" {
		cfg.ServerColor = "default"
	}
	if cfg.PBCore.IdentifierSource == "" {
		cfg.PBCore.IdentifierSource = "University of Illinois at Urbana-Champaign"
	}
	if cfg.PBCore.ObjectIdentifierSource == "" {
		cfg.PBCore.ObjectIdentifierSource = "TYKO-OBJECT-ID"
	}
}

// LoadConfig loads configuration from a file.
func LoadConfig(filename string) error {
	if filename == "" {
		return fmt.Errorf("config filename is required")
	}
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}
	c, err := ParseConfig(string(content))
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// ParseConfig decodes and validates a configuration document.
func ParseConfig(content string) (*ConfigParam, error) {
	c := &ConfigParam{}
	md, err := toml.Decode(content, c)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %v", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := ValidateConfig(c); err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", err)
	}
	return c, nil
}

var isTest = false

func IsTest() bool {
	return isTest
}

func SetTestMode(test bool) {
	isTest = test
}

// TestInit loads tykosrv.conf from the module root and points the database at a
// private in-memory sqlite store.
func TestInit() {
	isTest = true
	wd, err := os.Getwd()
	if err != nil {
		panic(err)
	}

	projectRoot := wd
	for {
		if _, err := os.Stat(filepath.Join(projectRoot, "go.mod")); err == nil {
			break
		}
		parent := filepath.Dir(projectRoot)
		if parent == projectRoot {
			panic("could not find project root (go.mod)")
		}
		projectRoot = parent
	}
	if err := LoadConfig(filepath.Join(projectRoot, "tykosrv.conf")); err != nil {
		panic(fmt.Errorf("error loading config: %v", err))
	}
	cfg.DB.Driver = DriverSqlite
	cfg.DB.Path = ":memory:"
	cfg.DB.InitOnStart = true
	cfg.DB.SampleData = false
}
