package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/savoria/savoria-api/models"
)

// PaymentSettings gates the card payment option on the ordering page.
// When disabled, cash is the only accepted payment method.
type PaymentSettings struct {
	Enabled        bool   `json:"enabled"`
	PublishableKey string `json:"publishableKey"`
	TestMode       bool   `json:"testMode"`
}

// MapsSettings holds the mapping-provider key used for delivery address
// selection.
type MapsSettings struct {
	APIKey string `json:"apiKey"`
}

// SettingsService reads and writes the JSON configuration blobs the admin
// dashboard manages. A missing key reads as the zero value, so a fresh
// install behaves as payments-disabled with no maps key.
type SettingsService struct {
	DB *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{DB: db}
}

func (s *SettingsService) PaymentSettings(ctx context.Context) (PaymentSettings, error) {
	var settings PaymentSettings
	err := s.get(ctx, models.SettingPayments, &settings)
	return settings, err
}

func (s *SettingsService) SavePaymentSettings(ctx context.Context, settings PaymentSettings) error {
	return s.upsert(ctx, models.SettingPayments, settings)
}

func (s *SettingsService) MapsSettings(ctx context.Context) (MapsSettings, error) {
	var settings MapsSettings
	err := s.get(ctx, models.SettingMaps, &settings)
	return settings, err
}

func (s *SettingsService) SaveMapsSettings(ctx context.Context, settings MapsSettings) error {
	return s.upsert(ctx, models.SettingMaps, settings)
}

func (s *SettingsService) get(ctx context.Context, key string, out any) error {
	var setting models.Setting
	err := s.DB.WithContext(ctx).Where("`key` = ?", key).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	if len(setting.Value) == 0 {
		return nil
	}
	if err := json.Unmarshal(setting.Value, out); err != nil {
		return fmt.Errorf("failed to parse setting %s: %w", key, err)
	}
	return nil
}

func (s *SettingsService) upsert(ctx context.Context, key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode setting %s: %w", key, err)
	}
	setting := models.Setting{Key: key, Value: encoded}
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}
