package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"
)

// Default values shared by the config file and the CLI.
const (
	DefaultInterfaceName = "GeneratedInterface"
	DefaultIndentSize    = 2
	DefaultConcurrency   = 4
)

// Config represents the complete configuration for json2ts
type Config struct {
	InterfaceName string           `yaml:"interface_name"`
	Select        string           `yaml:"select"`
	Concurrency   int              `yaml:"concurrency"`
	Generation    GenerationConfig `yaml:"generation"`
	Naming        NamingConfig     `yaml:"naming"`
	Fetch         FetchConfig      `yaml:"fetch"`
	Output        OutputConfig     `yaml:"output"`
	Logging       LoggingConfig    `yaml:"logging"`
}

// GenerationConfig controls interface generation
type GenerationConfig struct {
	UnwrapData  bool `yaml:"unwrap_data"`
	IndentSize  int  `yaml:"indent_size"`
	DetectDates bool `yaml:"detect_dates"`
	CacheSize   int  `yaml:"cache_size"`
}

// NamingConfig controls how interface names are derived
type NamingConfig struct {
	PascalCase bool `yaml:"pascal_case"`
}

// FetchConfig controls retrieval of remote JSON documents
type FetchConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	UserAgent    string        `yaml:"user_agent"`
}

// OutputConfig controls what is printed
type OutputConfig struct {
	ShowSource bool `yaml:"show_source"`
}

// LoggingConfig controls diagnostics
type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		InterfaceName: DefaultInterfaceName,
		Concurrency:   DefaultConcurrency,
		Generation: GenerationConfig{
			UnwrapData:  false,
			IndentSize:  DefaultIndentSize,
			DetectDates: false,
			CacheSize:   0,
		},
		Naming: NamingConfig{
			PascalCase: false,
		},
		Fetch: FetchConfig{
			Timeout:      10 * time.Second,
			MaxBodyBytes: 10 << 20,
			UserAgent:    "json2ts",
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
			Compress:   true,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".json2ts.yml", ".json2ts.yaml", "json2ts.yml", "json2ts.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.Generation.IndentSize <= 0 {
		return fmt.Errorf("generation.indent_size must be positive, got %d", c.Generation.IndentSize)
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", c.Concurrency)
	}
	if c.Fetch.Timeout < 0 {
		return fmt.Errorf("fetch.timeout must not be negative, got %s", c.Fetch.Timeout)
	}
	if c.Fetch.MaxBodyBytes < 0 {
		return fmt.Errorf("fetch.max_body_bytes must not be negative, got %d", c.Fetch.MaxBodyBytes)
	}
	return nil
}

// InterfaceNameFor returns the interface name to use for a job. An explicit
// name wins over the configured default; blank names fall back to
// DefaultInterfaceName. With naming.pascal_case the result is PascalCased.
func (c *Config) InterfaceNameFor(explicit string) string {
	name := strings.TrimSpace(explicit)
	if name == "" {
		name = strings.TrimSpace(c.InterfaceName)
	}
	if name == "" {
		name = DefaultInterfaceName
	}
	if c.Naming.PascalCase {
		if camel := strcase.ToCamel(name); camel != "" {
			name = camel
		}
	}
	return name
}

// NameFromSource derives an interface name from a file path or URL, e.g.
// "./user_profile.json" becomes "UserProfile". It returns "" when nothing
// usable is left.
func NameFromSource(source string) string {
	base := source
	if i := strings.IndexAny(base, "?#"); i >= 0 {
		base = base[:i]
	}
	base = strings.TrimRight(base, "/")
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "-" {
		return ""
	}
	return strcase.ToCamel(base)
}

// Overrides holds CLI values that replace config file values when set.
type Overrides struct {
	InterfaceName string
	Select        string
	Unwrap        bool
	IndentSize    int
	DetectDates   bool
	PascalCase    bool
	ShowSource    bool
	Timeout       time.Duration
	Concurrency   int
	Debug         bool
	LogFile       string
}

// LoadConfigWithCLI loads config with CLI argument precedence.
// Zero-valued overrides leave the file (or default) value untouched; boolean
// flags can only switch features on.
func LoadConfigWithCLI(configPath string, o Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if o.InterfaceName != "" {
		cfg.InterfaceName = o.InterfaceName
	}
	if o.Select != "" {
		cfg.Select = o.Select
	}
	if o.Unwrap {
		cfg.Generation.UnwrapData = true
	}
	if o.IndentSize != 0 {
		cfg.Generation.IndentSize = o.IndentSize
	}
	if o.DetectDates {
		cfg.Generation.DetectDates = true
	}
	if o.PascalCase {
		cfg.Naming.PascalCase = true
	}
	if o.ShowSource {
		cfg.Output.ShowSource = true
	}
	if o.Timeout != 0 {
		cfg.Fetch.Timeout = o.Timeout
	}
	if o.Concurrency != 0 {
		cfg.Concurrency = o.Concurrency
	}
	if o.Debug {
		cfg.Logging.Level = "debug"
	}
	if o.LogFile != "" {
		cfg.Logging.File = o.LogFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
