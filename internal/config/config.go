package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/docsift/pdf-outliner/internal/outline"
)

const (
	// Mode constants
	ModeBatch = "batch"
	ModeStdio = "stdio"

	// Default values
	DefaultInputDir    = "./input"
	DefaultOutputDir   = "./output"
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
	DefaultTimeout     = 10 * time.Second

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the PDF outline extractor
type Config struct {
	// Mode selects batch directory processing or MCP stdio serving
	Mode string

	// Batch configuration
	InputDir  string
	OutputDir string
	Workers   int // 0 means one worker per CPU core
	Timeout   time.Duration

	// Heading detection configuration
	MinHeadingLength     int
	MaxHeadingLength     int
	HeadingSizeThreshold float64
	MarginBandFraction   float64

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64 // Maximum PDF file size in bytes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	defaults := outline.DefaultConfig()

	return &Config{
		Mode:                 ModeBatch,
		InputDir:             DefaultInputDir,
		OutputDir:            DefaultOutputDir,
		Workers:              0,
		Timeout:              DefaultTimeout,
		MinHeadingLength:     defaults.MinHeadingLength,
		MaxHeadingLength:     defaults.MaxHeadingLength,
		HeadingSizeThreshold: defaults.HeadingSizeThreshold,
		MarginBandFraction:   defaults.MarginBandFraction,
		Version:              "1.0.0",
		ServerName:           "pdf-outliner",
		LogLevel:             DefaultLogLevel,
		MaxFileSize:          DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if expanded, err := filepath.Abs(cfg.InputDir); err == nil {
		cfg.InputDir = expanded
	}
	if expanded, err := filepath.Abs(cfg.OutputDir); err == nil {
		cfg.OutputDir = expanded
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("PDF_OUTLINER")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("input", cfg.InputDir)
	viper.SetDefault("output", cfg.OutputDir)
	viper.SetDefault("workers", cfg.Workers)
	viper.SetDefault("timeout", cfg.Timeout)
	viper.SetDefault("minheadinglength", cfg.MinHeadingLength)
	viper.SetDefault("maxheadinglength", cfg.MaxHeadingLength)
	viper.SetDefault("sizethreshold", cfg.HeadingSizeThreshold)
	viper.SetDefault("marginband", cfg.MarginBandFraction)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Run mode: 'batch' to process a directory, 'stdio' for MCP standard I/O")
	pflag.String("input", cfg.InputDir, "Directory containing PDF files to process")
	pflag.String("output", cfg.OutputDir, "Directory to write outline JSON files to")
	pflag.Int("workers", cfg.Workers, "Number of concurrent documents (0 = number of CPU cores)")
	pflag.Duration("timeout", cfg.Timeout, "Per-document processing budget")
	pflag.Int("minheadinglength", cfg.MinHeadingLength, "Minimum heading text length")
	pflag.Int("maxheadinglength", cfg.MaxHeadingLength, "Maximum heading text length")
	pflag.Float64("sizethreshold", cfg.HeadingSizeThreshold, "Minimum heading-to-body font size ratio")
	pflag.Float64("marginband", cfg.MarginBandFraction, "Header/footer band as a fraction of page height")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("input", pflag.Lookup("input"))
	_ = viper.BindPFlag("output", pflag.Lookup("output"))
	_ = viper.BindPFlag("workers", pflag.Lookup("workers"))
	_ = viper.BindPFlag("timeout", pflag.Lookup("timeout"))
	_ = viper.BindPFlag("minheadinglength", pflag.Lookup("minheadinglength"))
	_ = viper.BindPFlag("maxheadinglength", pflag.Lookup("maxheadinglength"))
	_ = viper.BindPFlag("sizethreshold", pflag.Lookup("sizethreshold"))
	_ = viper.BindPFlag("marginband", pflag.Lookup("marginband"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nPDF Outliner - extracts hierarchical outlines from PDF files\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --input=/docs --output=/out             # process a directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --input=/docs --workers=4 --timeout=30s # bounded concurrency\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=stdio --input=/docs              # serve over MCP\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  PDF_OUTLINER_MODE           Run mode\n")
		fmt.Fprintf(os.Stderr, "  PDF_OUTLINER_INPUT          Input directory\n")
		fmt.Fprintf(os.Stderr, "  PDF_OUTLINER_OUTPUT         Output directory\n")
		fmt.Fprintf(os.Stderr, "  PDF_OUTLINER_WORKERS        Worker count\n")
		fmt.Fprintf(os.Stderr, "  PDF_OUTLINER_TIMEOUT        Per-document timeout\n")
		fmt.Fprintf(os.Stderr, "  PDF_OUTLINER_LOGLEVEL       Log level\n")
		fmt.Fprintf(os.Stderr, "  PDF_OUTLINER_MAXFILESIZE    Maximum file size\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.InputDir = viper.GetString("input")
	cfg.OutputDir = viper.GetString("output")
	cfg.Workers = viper.GetInt("workers")
	cfg.Timeout = viper.GetDuration("timeout")
	cfg.MinHeadingLength = viper.GetInt("minheadinglength")
	cfg.MaxHeadingLength = viper.GetInt("maxheadinglength")
	cfg.HeadingSizeThreshold = viper.GetFloat64("sizethreshold")
	cfg.MarginBandFraction = viper.GetFloat64("marginband")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mode != ModeBatch && c.Mode != ModeStdio {
		return errors.New("mode must be either 'batch' or 'stdio'")
	}

	if c.InputDir == "" {
		return errors.New("input directory cannot be empty")
	}
	if c.OutputDir == "" {
		return errors.New("output directory cannot be empty")
	}

	// Create directories if they don't exist
	for _, dir := range []string{c.InputDir, c.OutputDir} {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, DefaultDirPerm); err != nil {
				return fmt.Errorf("cannot create directory %s: %w", dir, err)
			}
		} else if err != nil {
			return fmt.Errorf("cannot access directory %s: %w", dir, err)
		}
	}

	if c.Workers < 0 {
		return errors.New("workers cannot be negative")
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}

	if c.MinHeadingLength < 1 {
		return errors.New("minimum heading length must be at least 1")
	}
	if c.MaxHeadingLength < c.MinHeadingLength {
		return errors.New("maximum heading length must be at least the minimum")
	}
	if c.HeadingSizeThreshold <= 1.0 {
		return errors.New("heading size threshold must exceed 1.0")
	}
	if c.MarginBandFraction < 0 || c.MarginBandFraction >= 0.5 {
		return errors.New("margin band fraction must be in [0, 0.5)")
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
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

// OutlineConfig converts the application configuration into the pipeline
// configuration consumed by the extraction components.
func (c *Config) OutlineConfig() outline.Config {
	cfg := outline.DefaultConfig()
	cfg.MinHeadingLength = c.MinHeadingLength
	cfg.MaxHeadingLength = c.MaxHeadingLength
	cfg.HeadingSizeThreshold = c.HeadingSizeThreshold
	cfg.MarginBandFraction = c.MarginBandFraction
	return cfg
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// IsBatchMode returns true when the tool processes a directory and exits
func (c *Config) IsBatchMode() bool {
	return c.Mode == ModeBatch
}

// IsStdioMode returns true when the tool serves MCP over standard I/O
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, InputDir: %s, OutputDir: %s, Workers: %d, Timeout: %s, LogLevel: %s}",
		c.Mode, c.InputDir, c.OutputDir, c.Workers, c.Timeout, c.LogLevel)
}
