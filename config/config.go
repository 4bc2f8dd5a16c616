package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Aashish23092/default-report-dataset/exporter"
	"github.com/Aashish23092/default-report-dataset/utils/reportmetrics"
	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	InputDir    string               `mapstructure:"input_dir"`
	Pattern     string               `mapstructure:"pattern"`
	OutputPath  string               `mapstructure:"output_path"`
	Format      string               `mapstructure:"format"`
	Workers     int                  `mapstructure:"workers"`
	ServerPort  string               `mapstructure:"server_port"`
	MaxFileSize int64                `mapstructure:"max_file_size"`
	LogLevel    string               `mapstructure:"log_level"`
	LogFormat   string               `mapstructure:"log_format"`
	Rules       *reportmetrics.Rules `mapstructure:"rules"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("input_dir", "datasets/mapas_serasa")
	v.SetDefault("pattern", "*.pdf")
	v.SetDefault("output_path", "datasets/serasa.csv")
	v.SetDefault("format", exporter.FormatCSV)
	v.SetDefault("workers", 1)
	v.SetDefault("server_port", "8080")
	v.SetDefault("max_file_size", 10*1024*1024) // 10 MB
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
}

// LoadConfig reads defaults, then the optional YAML file at path, then
// REPORTS_* environment variables (SERVER_PORT is honoured as well).
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("REPORTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("server_port", "REPORTS_SERVER_PORT", "SERVER_PORT"); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.Format = strings.ToLower(c.Format)
	if c.Format != exporter.FormatCSV && c.Format != exporter.FormatXLSX {
		return fmt.Errorf("%w: format must be %s or %s, got %q", ErrInvalidConfig, exporter.FormatCSV, exporter.FormatXLSX, c.Format)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1", ErrInvalidConfig)
	}
	if c.InputDir == "" || c.OutputPath == "" {
		return fmt.Errorf("%w: input_dir and output_path are required", ErrInvalidConfig)
	}
	return nil
}

// MetricRules returns the configured rule set, or the built-in layout.
func (c *Config) MetricRules() reportmetrics.Rules {
	if c.Rules == nil {
		return reportmetrics.DefaultRules()
	}
	return *c.Rules
}
