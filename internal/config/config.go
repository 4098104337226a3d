package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete converter configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Export  ExportConfig  `yaml:"export" envconfig:"EXPORT"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/converter.log"`
}

// ExportConfig controls the output dataset writers.
type ExportConfig struct {
	// Format is the default output format when the CLI does not override it.
	Format string `yaml:"format" envconfig:"FORMAT" default:"csv" validate:"oneof=csv xlsx parquet"`
	// ExcelBOM prefixes CSV output with a UTF-8 BOM so Excel opens it
	// without an import dialog.
	ExcelBOM bool `yaml:"excel_bom" envconfig:"EXCEL_BOM" default:"true"`
}

// Load loads configuration from environment variables and the optional
// config file next to the executable. Environment variables win.
func Load() (*Config, error) {
	paths, err := GetPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	return LoadFrom(paths.ConfigFile)
}

// LoadFrom loads configuration using an explicit config file path.
func LoadFrom(configFile string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileCfg, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config; env takes precedence
// for any field envconfig populated away from its default.
func mergeConfigs(fileCfg, envCfg Config) Config {
	if envCfg.Logging.Level == "info" && fileCfg.Logging.Level != "" {
		envCfg.Logging.Level = fileCfg.Logging.Level
	}
	if envCfg.Logging.Output == "console" && fileCfg.Logging.Output != "" {
		envCfg.Logging.Output = fileCfg.Logging.Output
	}
	if envCfg.Logging.FilePath == "logs/converter.log" && fileCfg.Logging.FilePath != "" {
		envCfg.Logging.FilePath = fileCfg.Logging.FilePath
	}
	if envCfg.Export.Format == "csv" && fileCfg.Export.Format != "" {
		envCfg.Export.Format = fileCfg.Export.Format
	}
	return envCfg
}

// validate checks the configuration against struct tags.
func (c *Config) validate() error {
	return validator.New().Struct(c)
}
