package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/machielvdw/clokk/internal/core"
	"github.com/machielvdw/clokk/internal/timeparse"
)

// Keys addressable through `clokk config get/set`.
const (
	KeyDefaultProject  = "default_project"
	KeyDefaultBillable = "default_billable"
	KeyDefaultCurrency = "default_currency"
	KeyWeekStart       = "week_start"
	KeyDateFormat      = "date_format"
)

// Get returns the value stored under key.
func Get(cfg Config, key string) (any, error) {
	switch key {
	case KeyDefaultProject:
		return cfg.DefaultProject, nil
	case KeyDefaultBillable:
		return cfg.DefaultBillable, nil
	case KeyDefaultCurrency:
		return cfg.DefaultCurrency, nil
	case KeyWeekStart:
		return cfg.WeekStart, nil
	case KeyDateFormat:
		return cfg.DateFormat, nil
	}
	return nil, core.NewConfigKeyUnknown(key)
}

// Set validates value for key and returns an updated copy of cfg. The
// caller persists the returned configuration.
func Set(cfg Config, key, value string) (Config, error) {
	switch key {
	case KeyDefaultProject:
		cfg.DefaultProject = value
	case KeyDefaultBillable:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return cfg, core.NewConfigValueInvalid(key, value, "boolean")
		}
		cfg.DefaultBillable = b
	case KeyDefaultCurrency:
		if value == "" {
			return cfg, core.NewConfigValueInvalid(key, value, "currency code")
		}
		cfg.DefaultCurrency = strings.ToUpper(value)
	case KeyWeekStart:
		if !validWeekday(value) {
			return cfg, core.NewConfigValueInvalid(key, value, "weekday name")
		}
		cfg.WeekStart = strings.ToLower(value)
	case KeyDateFormat:
		cfg.DateFormat = value
	default:
		return cfg, core.NewConfigKeyUnknown(key)
	}
	return cfg, nil
}

func validWeekday(value string) bool {
	switch strings.ToLower(value) {
	case "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday":
		return true
	}
	return false
}

// WeekStartDay converts the configured week start into time.Weekday
// terms for the range resolver.
func (c Config) WeekStartDay() time.Weekday {
	return timeparse.ParseWeekday(c.WeekStart)
}
