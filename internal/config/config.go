package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Input. An empty delimiter picks one from the file extension.
	Delimiter  string `mapstructure:"delimiter" yaml:"delimiter" validate:"omitempty,oneof=comma semicolon tab"`
	SheetName  string `mapstructure:"sheet_name" yaml:"sheet_name"`
	SheetIndex int    `mapstructure:"sheet_index" yaml:"sheet_index" validate:"min=1"`

	// Reports
	OutputFormat string `mapstructure:"output_format" yaml:"output_format" validate:"oneof=markdown json yaml"`
	OutputDir    string `mapstructure:"output_dir" yaml:"output_dir"`
	Precision    int    `mapstructure:"precision" yaml:"precision" validate:"min=0,max=17"`
	MaxDays      int    `mapstructure:"max_days" yaml:"max_days" validate:"min=0"`
	Normalise    bool   `mapstructure:"normalise" yaml:"normalise"`

	// Compute
	Workers           int `mapstructure:"workers" yaml:"workers" validate:"min=0"`
	ParallelThreshold int `mapstructure:"parallel_threshold" yaml:"parallel_threshold" validate:"min=0"`

	// Logging
	LogLevel  string `mapstructure:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format" validate:"oneof=text json"`
}

var validate = validator.New()

// Defaults returns the built-in configuration.
func Defaults() Global {
	return Global{
		SheetIndex:        1,
		OutputFormat:      "markdown",
		Precision:         4,
		ParallelThreshold: 1 << 16,
		LogLevel:          "warn",
		LogFormat:         "text",
	}
}

// Validate checks field constraints and returns a descriptive error.
func (c *Global) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Dir returns the default configuration directory (~/.inflammation).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".inflammation"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.inflammation/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. CLI flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("INFLAMMATION")
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("delimiter", d.Delimiter)
	v.SetDefault("sheet_name", d.SheetName)
	v.SetDefault("sheet_index", d.SheetIndex)
	v.SetDefault("output_format", d.OutputFormat)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("precision", d.Precision)
	v.SetDefault("max_days", d.MaxDays)
	v.SetDefault("normalise", d.Normalise)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("parallel_threshold", d.ParallelThreshold)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// DelimiterRune maps the configured delimiter name to its rune; 0 means auto.
func (c *Global) DelimiterRune() rune {
	switch c.Delimiter {
	case "comma":
		return ','
	case "semicolon":
		return ';'
	case "tab":
		return '\t'
	default:
		return 0
	}
}
