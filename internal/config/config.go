package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Conventional input/output paths, relative to the working
	// directory. A bare invocation uses exactly these.
	DefaultDataPath     = "inspection.json"
	DefaultTemplatePath = "TREC_Template_Blank.pdf"
	DefaultOutputPath   = "output_pdf.pdf"

	DefaultLogLevel = "info"
)

// Config holds all configuration for the report generator.
type Config struct {
	// Input/output paths
	DataPath     string
	TemplatePath string
	OutputPath   string

	// Flatten strips form interactivity from the output document.
	Flatten bool

	// Application configuration
	Version  string
	AppName  string
	LogLevel string
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DataPath:     DefaultDataPath,
		TemplatePath: DefaultTemplatePath,
		OutputPath:   DefaultOutputPath,
		Flatten:      false,
		Version:      "1.0.0",
		AppName:      "trec-report",
		LogLevel:     DefaultLogLevel,
	}
}

// LoadFromFlags parses command line flags and returns a configuration.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("TREC")
	viper.AutomaticEnv()

	viper.SetDefault("data", cfg.DataPath)
	viper.SetDefault("template", cfg.TemplatePath)
	viper.SetDefault("output", cfg.OutputPath)
	viper.SetDefault("flatten", cfg.Flatten)
	viper.SetDefault("loglevel", cfg.LogLevel)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("data", cfg.DataPath, "Path to the inspection record JSON file")
	pflag.String("template", cfg.TemplatePath, "Path to the blank TREC template PDF")
	pflag.String("output", cfg.OutputPath, "Path for the generated report PDF")
	pflag.Bool("flatten", cfg.Flatten, "Strip form interactivity from the output (irreversible)")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("data", pflag.Lookup("data"))
	_ = viper.BindPFlag("template", pflag.Lookup("template"))
	_ = viper.BindPFlag("output", pflag.Lookup("output"))
	_ = viper.BindPFlag("flatten", pflag.Lookup("flatten"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nTREC Report Generator - fills the official TREC template from an inspection record\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                   # conventional paths in the working directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --data=jobs/123/inspection.json   # custom record location\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --flatten                         # emit a non-interactive report\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  TREC_DATA      Inspection record path\n")
		fmt.Fprintf(os.Stderr, "  TREC_TEMPLATE  Template PDF path\n")
		fmt.Fprintf(os.Stderr, "  TREC_OUTPUT    Output PDF path\n")
		fmt.Fprintf(os.Stderr, "  TREC_FLATTEN   Strip form interactivity\n")
		fmt.Fprintf(os.Stderr, "  TREC_LOGLEVEL  Log level\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.DataPath = viper.GetString("data")
	cfg.TemplatePath = viper.GetString("template")
	cfg.OutputPath = viper.GetString("output")
	cfg.Flatten = viper.GetBool("flatten")
	cfg.LogLevel = viper.GetString("loglevel")
}

// Validate checks if the configuration is valid. Whether the input
// files actually exist is the pipeline's concern, so the not-found
// handling stays in one place.
func (c *Config) Validate() error {
	if c.DataPath == "" {
		return errors.New("inspection record path cannot be empty")
	}
	if c.TemplatePath == "" {
		return errors.New("template path cannot be empty")
	}
	if c.OutputPath == "" {
		return errors.New("output path cannot be empty")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Data: %s, Template: %s, Output: %s, Flatten: %t, LogLevel: %s}",
		c.DataPath, c.TemplatePath, c.OutputPath, c.Flatten, c.LogLevel)
}
