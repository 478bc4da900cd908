package config

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config represents the application's configuration structure.
type Config struct {
	Location                string  `json:"location" mapstructure:"location"`
	LogLevel                string  `json:"log-level" mapstructure:"log-level"`
	LogFormat               string  `json:"log-format" mapstructure:"log-format"`
	OutlierSigma            float64 `json:"outlier-sigma" mapstructure:"outlier-sigma"`
	ConfidenceZ             float64 `json:"confidence-z" mapstructure:"confidence-z"`
	TopVariants             int     `json:"top-variants" mapstructure:"top-variants"`
	DefaultDailyConsumption string  `json:"default-daily-consumption" mapstructure:"default-daily-consumption"`
}

var requiredFields = []string{
	"location",
}

// field: default value
var optionalFields = map[string]interface{}{
	"log-level":                 "INFO",
	"log-format":                "console",
	"outlier-sigma":             2.0,
	"confidence-z":              1.96,
	"top-variants":              5,
	"default-daily-consumption": "0",
}

// Load reads configuration from a JSON file and environment variables.
// Environment variables take precedence over the config file.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.SetConfigType("json")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	for _, field := range requiredFields {
		v.BindEnv(field)
	}
	for field := range optionalFields {
		v.BindEnv(field)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	for _, field := range requiredFields {
		if !v.IsSet(field) {
			return nil, fmt.Errorf("missing required config field: %s", field)
		}
	}

	for optField, defaultValue := range optionalFields {
		v.SetDefault(optField, defaultValue)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	if c.OutlierSigma < 0 {
		return fmt.Errorf("outlier-sigma cannot be negative, got %v", c.OutlierSigma)
	}
	if c.ConfidenceZ < 0 {
		return fmt.Errorf("confidence-z cannot be negative, got %v", c.ConfidenceZ)
	}
	if c.TopVariants < 0 {
		return fmt.Errorf("top-variants cannot be negative, got %d", c.TopVariants)
	}
	if _, err := decimal.NewFromString(c.DefaultDailyConsumption); err != nil {
		return fmt.Errorf("invalid default-daily-consumption: %s", c.DefaultDailyConsumption)
	}
	return nil
}

// DailyConsumption returns the default daily consumption rate as a decimal.
// Load has already validated the value.
func (c *Config) DailyConsumption() decimal.Decimal {
	return decimal.RequireFromString(c.DefaultDailyConsumption)
}
