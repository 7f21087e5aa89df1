package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/payroll_backend/config"
	"bitbucket.org/mmdatafocus/payroll_backend/utils"
	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
)

// Statutory contribution rates, as fractions of basic pay. Used whenever the
// rate_settings table has no row for the key.
const (
	RateKeySSS        = "sss_rate"
	RateKeyPhilHealth = "philhealth_rate"
	RateKeyPagIBIG    = "pagibig_rate"

	DefaultSSSRateString        = "0.045"
	DefaultPhilHealthRateString = "0.0275"
	DefaultPagIBIGRateString    = "0.02"
)

const rateSettingsRedisKey = "rateSettings"

// RateSetting is one persisted key/value override.
type RateSetting struct {
	ID        int             `gorm:"primary_key" json:"id"`
	Key       string          `gorm:"column:setting_key;size:50;uniqueIndex;not null" json:"setting_key"`
	Value     decimal.Decimal `gorm:"type:decimal(10,6);not null" json:"value"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// RateSettings is the typed view the detectors consume. Fields are always
// populated: either from the table or from the default constants, never a
// silent zero.
type RateSettings struct {
	SSSRate        decimal.Decimal `json:"sss_rate"`
	PhilHealthRate decimal.Decimal `json:"philhealth_rate"`
	PagIBIGRate    decimal.Decimal `json:"pagibig_rate"`
}

func DefaultRateSettings() RateSettings {
	return RateSettings{
		SSSRate:        decimal.RequireFromString(DefaultSSSRateString),
		PhilHealthRate: decimal.RequireFromString(DefaultPhilHealthRateString),
		PagIBIGRate:    decimal.RequireFromString(DefaultPagIBIGRateString),
	}
}

// RateSettingsFromRows overlays persisted overrides on the defaults.
// Unknown keys are ignored.
func RateSettingsFromRows(rows []RateSetting) RateSettings {
	settings := DefaultRateSettings()
	for _, row := range rows {
		switch row.Key {
		case RateKeySSS:
			settings.SSSRate = row.Value
		case RateKeyPhilHealth:
			settings.PhilHealthRate = row.Value
		case RateKeyPagIBIG:
			settings.PagIBIGRate = row.Value
		}
	}
	return settings
}

// GetRateSettings loads the current rates, redis-cached. A cache miss reads
// the table and repopulates the cache.
func GetRateSettings(ctx context.Context) (RateSettings, error) {
	var settings RateSettings
	exists, err := config.GetRedisObject(rateSettingsRedisKey, &settings)
	if err != nil {
		return DefaultRateSettings(), err
	}
	if exists {
		return settings, nil
	}

	db := config.GetDB()
	var rows []RateSetting
	if err := db.WithContext(ctx).Find(&rows).Error; err != nil {
		return DefaultRateSettings(), err
	}
	settings = RateSettingsFromRows(rows)
	if err := config.SetRedisObject(rateSettingsRedisKey, &settings, 0); err != nil {
		return settings, err
	}
	return settings, nil
}

func isDuplicateKeyErr(err error) bool {
	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return false
}

// UpsertRateSetting writes one override and drops the cached map so the next
// run sees it.
func UpsertRateSetting(ctx context.Context, key string, value decimal.Decimal) error {
	switch key {
	case RateKeySSS, RateKeyPhilHealth, RateKeyPagIBIG:
	default:
		return fmt.Errorf("%w: unknown rate setting key %q", utils.ErrorValidation, key)
	}
	if value.IsNegative() || value.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: rate %s is not a fraction between 0 and 1", utils.ErrorValidation, value)
	}

	db := config.GetDB()
	row := RateSetting{Key: key, Value: value}
	if err := db.WithContext(ctx).Create(&row).Error; err != nil {
		if !isDuplicateKeyErr(err) {
			return err
		}
		if err := db.WithContext(ctx).Model(&RateSetting{}).
			Where("setting_key = ?", key).
			Update("value", value).Error; err != nil {
			return err
		}
	}
	return config.RemoveRedisKey(rateSettingsRedisKey)
}
