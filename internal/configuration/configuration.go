package configuration

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppConfig represents the complete application configuration.
type AppConfig struct {
	// Logger — logger component configuration
	Logger LoggerConfig `mapstructure:"logger"`
	// Server — HTTP server configuration
	Server ServerConfig `mapstructure:"server"`
	// Scores — remote score repository configuration
	Scores ScoresConfig `mapstructure:"scores"`
	// Validation — judge score admission rules configuration
	Validation ValidationConfig `mapstructure:"validation"`
	// Export — protocol export configuration
	Export ExportConfig `mapstructure:"export"`
}

// LoggerConfig defines logging settings.
type LoggerConfig struct {
	// Level — log level: debug, info, warn, warning, error.
	// Value is case-insensitive but checked in lowercase.
	Level string `mapstructure:"level"`
}

// ServerConfig contains HTTP server parameters.
type ServerConfig struct {
	// Address — address and port where the server will listen (e.g., ":8080").
	Address string `mapstructure:"address"`
	// Static — path to directory with static files served by the server.
	// Can be empty if static serving is not required.
	Static string `mapstructure:"static"`
}

// ScoresConfig defines the connection to the remote score repository.
type ScoresConfig struct {
	// Endpoint — URL of the scores endpoint
	// (e.g., "https://indigo.example/api/scores.php"). Must be set.
	Endpoint string `mapstructure:"endpoint"`
	// Timeout — HTTP request timeout (time.Duration). Default 5s.
	// Example: "3s", "10s".
	Timeout time.Duration `mapstructure:"timeout"`
}

// ValidationConfig defines judge score admission parameters.
type ValidationConfig struct {
	// Rules — path to the file with admission rules in YAML format.
	// Can be empty if no additional admission rules are needed.
	Rules string `mapstructure:"rules"`
}

// JournalConfig defines the protocol export journal parameters.
type JournalConfig struct {
	// File — path to the JSONL journal file (optional).
	File string `mapstructure:"file"`
	// Size — maximal journal file size in MB before rotation (default 100).
	Size int `mapstructure:"size"`
	// Amount — number of rotated journal files to keep (default 20).
	Amount int `mapstructure:"amount"`
	// Recent — capacity of the in-memory recent exports list (default 32).
	Recent int `mapstructure:"recent"`
}

// ExportConfig defines protocol export parameters.
type ExportConfig struct {
	// Directory — archive directory for produced protocol files.
	// Can be empty if no server-side archive is required.
	Directory string `mapstructure:"directory"`
	// Journal — export journal settings.
	Journal JournalConfig `mapstructure:"journal"`
}

// Validate checks the correctness of the entire application configuration.
// Calls validation for each nested structure and returns the first detected error.
// Returns nil if the configuration is valid.
func (c *AppConfig) Validate() error {
	if err := c.Logger.Validate(); err != nil {
		return err
	}

	if err := c.Server.Validate(); err != nil {
		return err
	}

	if err := c.Scores.Validate(); err != nil {
		return err
	}

	if err := c.Export.Journal.Validate(); err != nil {
		return err
	}

	return nil
}

// Validate checks the correctness of the logger configuration.
// Verifies that the log level is set and is one of the supported values.
// Supported values: debug, info, warn, warning, error (case-insensitive).
func (l *LoggerConfig) Validate() error {
	if l.Level == "" {
		return errors.New("logger.level: must be specified")
	}

	valid := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !valid[strings.ToLower(l.Level)] {
		return fmt.Errorf("logger.level: unsupported level '%s'", l.Level)
	}

	return nil
}

// Validate checks the correctness of the server configuration.
// Verifies that the server address is set.
func (n *ServerConfig) Validate() error {
	if n.Address == "" {
		return errors.New("server.address: must be specified")
	}

	return nil
}

// Validate checks the correctness of the score repository configuration.
// Verifies that the endpoint is set and is a parseable absolute URL,
// and applies the default timeout.
func (s *ScoresConfig) Validate() error {
	if s.Endpoint == "" {
		return errors.New("scores.endpoint: must be specified")
	}

	parsed, err := url.Parse(s.Endpoint)
	if err != nil || !parsed.IsAbs() {
		return fmt.Errorf("scores.endpoint: URL is incorrect '%s'", s.Endpoint)
	}

	if s.Timeout == 0 {
		s.Timeout = time.Second * 5
	}

	return nil
}

// Validate applies journal defaults.
func (j *JournalConfig) Validate() error {
	if j.Size == 0 {
		j.Size = 100
	}

	if j.Amount == 0 {
		j.Amount = 20
	}

	if j.Recent == 0 {
		j.Recent = 32
	}

	return nil
}

// LoadConfig loads configuration from the specified file using Viper.
// Supports YAML format. Also includes environment variable loading (AutomaticEnv),
// which can override values from the file.
//
// Parameter configPath — path to the configuration file.
//
// Returns a pointer to AppConfig or an error if:
// - the file is not found or inaccessible
// - the configuration has invalid format
// - one of the sections fails validation
func LoadConfig(configPath string) (*AppConfig, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config AppConfig
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}
