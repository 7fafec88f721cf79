package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/text/currency"
	"gopkg.in/yaml.v3"

	theatre "theatre-billing/internal/theatre/domain"
)

// Supported export formats.
const (
	FormatText = "text"
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

// Pricing overrides the default tariff. Unset fields keep the default.
type Pricing struct {
	TragedyBaseAmount                *int64 `yaml:"tragedy_base_amount"`
	TragedyAudienceThreshold         *int   `yaml:"tragedy_audience_threshold"`
	TragedyOverBaseCapacityPerPerson *int64 `yaml:"tragedy_over_base_capacity_per_person"`
	ComedyBaseAmount                 *int64 `yaml:"comedy_base_amount"`
	ComedyAudienceThreshold          *int   `yaml:"comedy_audience_threshold"`
	ComedyOverBaseCapacityAmount     *int64 `yaml:"comedy_over_base_capacity_amount"`
	ComedyOverBaseCapacityPerPerson  *int64 `yaml:"comedy_over_base_capacity_per_person"`
	ComedyAmountPerAudience          *int64 `yaml:"comedy_amount_per_audience"`
	BaseVolumeCreditThreshold        *int   `yaml:"base_volume_credit_threshold"`
	ComedyExtraVolumeFactor          *int   `yaml:"comedy_extra_volume_factor"`
}

// Config defines statement run configuration.
type Config struct {
	InvoicesPath string   `yaml:"invoices"`
	PlaysPath    string   `yaml:"plays"`
	Locale       string   `yaml:"locale"`
	Currency     string   `yaml:"currency"`
	OutputDir    string   `yaml:"output_dir"`
	Formats      []string `yaml:"formats"`
	TemplatePath string   `yaml:"template"`
	SealSecret   string   `yaml:"seal_secret"`
	MetricsFile  string   `yaml:"metrics_file"`
	LogLevel     string   `yaml:"log_level"`
	Pricing      Pricing  `yaml:"pricing"`
}

// Load builds config from an optional .env file, the environment and an optional yaml file.
func Load() (Config, error) {
	envFile := getenvDefault("THEATRE_ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("config: env file %s: %w", envFile, err)
	}

	cfg := Config{
		InvoicesPath: os.Getenv("THEATRE_INVOICES"),
		PlaysPath:    os.Getenv("THEATRE_PLAYS"),
		Locale:       getenvDefault("THEATRE_LOCALE", "en-US"),
		Currency:     getenvDefault("THEATRE_CURRENCY", "USD"),
		OutputDir:    os.Getenv("THEATRE_OUTPUT_DIR"),
		Formats:      splitCSV(getenvDefault("THEATRE_FORMATS", FormatText)),
		TemplatePath: os.Getenv("THEATRE_TEMPLATE"),
		SealSecret:   os.Getenv("THEATRE_SEAL_SECRET"),
		MetricsFile:  os.Getenv("THEATRE_METRICS_FILE"),
		LogLevel:     getenvDefault("THEATRE_LOG_LEVEL", "info"),
	}

	if path := os.Getenv("THEATRE_CONFIG"); path != "" {
		if err := cfg.MergeFile(path); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// MergeFile overlays values from a yaml file.
func (c *Config) MergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	return nil
}

// Validate checks required fields and supported values.
func (c Config) Validate() error {
	if c.InvoicesPath == "" {
		return errors.New("config: invoices path required")
	}
	if c.PlaysPath == "" {
		return errors.New("config: plays path required")
	}
	if _, err := currency.ParseISO(c.Currency); err != nil {
		return fmt.Errorf("config: currency %q: %w", c.Currency, err)
	}
	if len(c.Formats) == 0 {
		return errors.New("config: at least one format required")
	}
	for _, format := range c.Formats {
		switch format {
		case FormatText, FormatPDF, FormatXLSX:
		default:
			return fmt.Errorf("config: unsupported format %q", format)
		}
	}
	if c.OutputDir == "" && c.HasFormat(FormatPDF, FormatXLSX) {
		return errors.New("config: output dir required for pdf or xlsx export")
	}
	return nil
}

// HasFormat reports whether any of the formats is enabled.
func (c Config) HasFormat(formats ...string) bool {
	for _, enabled := range c.Formats {
		for _, format := range formats {
			if enabled == format {
				return true
			}
		}
	}
	return false
}

// Rules returns the default tariff with pricing overrides applied.
func (c Config) Rules() theatre.Rules {
	return mergeRules(theatre.DefaultRules(), c.Pricing)
}

func mergeRules(base theatre.Rules, override Pricing) theatre.Rules {
	if override.TragedyBaseAmount != nil {
		base.TragedyBaseAmount = *override.TragedyBaseAmount
	}
	if override.TragedyAudienceThreshold != nil {
		base.TragedyAudienceThreshold = *override.TragedyAudienceThreshold
	}
	if override.TragedyOverBaseCapacityPerPerson != nil {
		base.TragedyOverBaseCapacityPerPerson = *override.TragedyOverBaseCapacityPerPerson
	}
	if override.ComedyBaseAmount != nil {
		base.ComedyBaseAmount = *override.ComedyBaseAmount
	}
	if override.ComedyAudienceThreshold != nil {
		base.ComedyAudienceThreshold = *override.ComedyAudienceThreshold
	}
	if override.ComedyOverBaseCapacityAmount != nil {
		base.ComedyOverBaseCapacityAmount = *override.ComedyOverBaseCapacityAmount
	}
	if override.ComedyOverBaseCapacityPerPerson != nil {
		base.ComedyOverBaseCapacityPerPerson = *override.ComedyOverBaseCapacityPerPerson
	}
	if override.ComedyAmountPerAudience != nil {
		base.ComedyAmountPerAudience = *override.ComedyAmountPerAudience
	}
	if override.BaseVolumeCreditThreshold != nil {
		base.BaseVolumeCreditThreshold = *override.BaseVolumeCreditThreshold
	}
	if override.ComedyExtraVolumeFactor != nil {
		base.ComedyExtraVolumeFactor = *override.ComedyExtraVolumeFactor
	}
	return base
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func splitCSV(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	var result []string
	for _, part := range parts {
		part = strings.TrimSpace(strings.ToLower(part))
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

// ParseFormats splits a comma separated format list.
func ParseFormats(value string) []string {
	return splitCSV(value)
}
