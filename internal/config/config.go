package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

const configFileName = "campaign_config.yaml"

// HubConfig defines a vaccination hub and its staffing
type HubConfig struct {
	Name    string `yaml:"name" validate:"required"`
	Doctors int    `yaml:"doctors" validate:"min=1"`
	Nurses  int    `yaml:"nurses" validate:"min=1"`
	Others  int    `yaml:"others" validate:"min=1"`
}

// HoursOverride replaces the working hours of the weekdays matched by an rrule
// (e.g. "FREQ=WEEKLY;BYDAY=SA,SU")
type HoursOverride struct {
	RRule string `yaml:"rrule" validate:"required"`
	Hours int    `yaml:"hours" validate:"min=0,max=12"`
}

// Config represents the campaign configuration
type Config struct {
	// ReferenceYear is the year ages are computed against (defaults to the current year)
	ReferenceYear  int             `yaml:"referenceYear,omitempty" validate:"omitempty,min=1900"`
	Hours          []int           `yaml:"hours" validate:"len=7,dive,min=0,max=12"`
	HoursOverrides []HoursOverride `yaml:"hoursOverrides,omitempty" validate:"dive"`
	AgeIntervals   []int           `yaml:"ageIntervals,omitempty" validate:"dive,min=1"`
	Hubs           []HubConfig     `yaml:"hubs" validate:"required,min=1,unique=Name,dive"`
	PeopleFile     string          `yaml:"peopleFile,omitempty"`
	DatabaseURL    string          `yaml:"databaseURL,omitempty"`
	ExportDir      string          `yaml:"exportDir,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from campaign_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile(configFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadWithEnv loads campaign_config.<env>.yaml, falling back to campaign_config.yaml
func LoadWithEnv(env string) (*Config, error) {
	if env == "" {
		return Load()
	}

	configPath, err := findConfigFile(fmt.Sprintf("campaign_config.%s.yaml", env), configFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file for env %s: %w", env, err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// Validate rrule syntax for each override
	for i, override := range cfg.HoursOverrides {
		if _, err := rrule.StrToRRule(override.RRule); err != nil {
			return fmt.Errorf("invalid rrule in hoursOverrides[%d]: %w", i, err)
		}
	}

	return nil
}

// referenceWeekStart is a Monday; day index 0 of the abstract week maps onto it
var referenceWeekStart = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// WeeklyHours returns the hours profile with every override applied in order
func (c *Config) WeeklyHours() ([]int, error) {
	hours := make([]int, len(c.Hours))
	copy(hours, c.Hours)

	for i, override := range c.HoursOverrides {
		days, err := matchingDays(override.RRule)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule in hoursOverrides[%d]: %w", i, err)
		}
		for _, day := range days {
			if day < len(hours) {
				hours[day] = override.Hours
			}
		}
	}

	return hours, nil
}

// matchingDays returns the day indices (0 = Monday) of the reference week matched by the rule
func matchingDays(rule string) ([]int, error) {
	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return nil, err
	}
	opt.Dtstart = referenceWeekStart

	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, err
	}

	weekEnd := referenceWeekStart.AddDate(0, 0, 6)
	var days []int
	for _, occurrence := range r.Between(referenceWeekStart, weekEnd, true) {
		days = append(days, int(occurrence.Sub(referenceWeekStart).Hours()/24))
	}
	return days, nil
}

// EffectiveReferenceYear returns the configured reference year, or now's year if unset
func (c *Config) EffectiveReferenceYear(now time.Time) int {
	if c.ReferenceYear != 0 {
		return c.ReferenceYear
	}
	return now.Year()
}

// findConfigFile searches for the first of the given names in the current directory, then the home directory
func findConfigFile(names ...string) (string, error) {
	homeDir, homeErr := os.UserHomeDir()

	for _, name := range names {
		// Check current directory
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}

		// Check home directory
		if homeErr != nil {
			continue
		}
		homeConfigPath := filepath.Join(homeDir, name)
		if _, err := os.Stat(homeConfigPath); err == nil {
			return homeConfigPath, nil
		}
	}

	if homeErr != nil {
		return "", fmt.Errorf("failed to get home directory: %w", homeErr)
	}
	return "", fmt.Errorf("config file not found in current directory or home directory")
}
