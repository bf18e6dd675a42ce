package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete engine configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Household struct {
		LocalCurrency string `mapstructure:"local_currency" yaml:"local_currency"`
	} `mapstructure:"household" yaml:"household"`

	Extraction struct {
		ValidityThreshold int `mapstructure:"validity_threshold" yaml:"validity_threshold"`
		TrustedThreshold  int `mapstructure:"trusted_threshold" yaml:"trusted_threshold"`
	} `mapstructure:"extraction" yaml:"extraction"`

	AI struct {
		Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
		Model          string `mapstructure:"model" yaml:"model"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		APIKey         string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`

	Matching struct {
		ReconcileWindowDays int     `mapstructure:"reconcile_window_days" yaml:"reconcile_window_days"`
		ReceiptWindowDays   int     `mapstructure:"receipt_window_days" yaml:"receipt_window_days"`
		CorrelatedTolerance float64 `mapstructure:"correlated_tolerance" yaml:"correlated_tolerance"`
		StrictTolerance     float64 `mapstructure:"strict_tolerance" yaml:"strict_tolerance"`
	} `mapstructure:"matching" yaml:"matching"`

	Sweep struct {
		BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
	} `mapstructure:"sweep" yaml:"sweep"`

	Data struct {
		MerchantMemoryFile string `mapstructure:"merchant_memory_file" yaml:"merchant_memory_file"`
	} `mapstructure:"data" yaml:"data"`
}

// InitializeConfig initializes Viper configuration with hierarchical
// loading: defaults, then an optional config file, then environment
// variables with the TXENGINE prefix.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.txengine")
	v.AddConfigPath(".txengine")
	v.AddConfigPath(".")

	v.SetEnvPrefix("TXENGINE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars; a broken file should
			// not take ingestion down.
			Logger.Warnf("error reading config file %s: %v", v.ConfigFileUsed(), err)
		}
	}

	// The API key always comes from the unprefixed variable.
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		Logger.Warnf("failed to bind GEMINI_API_KEY environment variable: %v", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("household.local_currency", "ILS")

	v.SetDefault("extraction.validity_threshold", 70)
	v.SetDefault("extraction.trusted_threshold", 40)

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout_seconds", 15)

	v.SetDefault("matching.reconcile_window_days", 3)
	v.SetDefault("matching.receipt_window_days", 1)
	v.SetDefault("matching.correlated_tolerance", 0.05)
	v.SetDefault("matching.strict_tolerance", 0.01)

	v.SetDefault("sweep.batch_size", 50)

	v.SetDefault("data.merchant_memory_file", "merchant_memory.yaml")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Extraction.ValidityThreshold < 0 || config.Extraction.ValidityThreshold > 100 {
		return fmt.Errorf("extraction.validity_threshold must be between 0 and 100, got: %d",
			config.Extraction.ValidityThreshold)
	}
	if config.Extraction.TrustedThreshold > config.Extraction.ValidityThreshold {
		return fmt.Errorf("extraction.trusted_threshold must not exceed validity_threshold")
	}

	if config.AI.Enabled {
		if config.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
		}
		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d",
				config.AI.TimeoutSeconds)
		}
	}

	if config.Matching.ReconcileWindowDays < config.Matching.ReceiptWindowDays {
		return fmt.Errorf("matching.reconcile_window_days must be at least receipt_window_days")
	}
	if config.Matching.StrictTolerance > config.Matching.CorrelatedTolerance {
		return fmt.Errorf("matching.strict_tolerance must not exceed correlated_tolerance")
	}

	return nil
}
