package service

import (
	"context"

	"github.com/tillpoint/pos-api/internal/domain/entity"
	"github.com/tillpoint/pos-api/internal/domain/repository"
)

// SettingsService handles store settings business logic
type SettingsService struct {
	settingsRepo repository.SettingsRepository
	defaults     entity.StoreSettings
}

// NewSettingsService creates a new settings service. The defaults are used
// to seed the settings row on first read.
func NewSettingsService(settingsRepo repository.SettingsRepository, defaults entity.StoreSettings) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		defaults:     defaults,
	}
}

// GetSettings retrieves the store settings, creating defaults if not exists
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.StoreSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	// If no settings exist, create the default row
	if settings == nil {
		defaults := s.defaults
		settings = &defaults
		if err := s.settingsRepo.Create(ctx, settings); err != nil {
			return nil, err
		}
	}

	return settings, nil
}

// UpdateSettingsInput represents the input for updating settings. Nil
// fields are left unchanged.
type UpdateSettingsInput struct {
	BusinessName    *string
	BusinessAddress *string
	BusinessPhone   *string
	BusinessEmail   *string
	BusinessWebsite *string
	TaxID           *string
	Currency        *string
	CurrencySymbol  *string
	Locale          *string
	Timezone        *string
	TaxRate         *float64
	ReceiptFooter   *string
	InvoiceTerms    *string
	LowStockAlert   *bool
}

// UpdateSettings updates the store settings
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.StoreSettings, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	if input.BusinessName != nil {
		settings.BusinessName = *input.BusinessName
	}
	if input.BusinessAddress != nil {
		settings.BusinessAddress = *input.BusinessAddress
	}
	if input.BusinessPhone != nil {
		settings.BusinessPhone = *input.BusinessPhone
	}
	if input.BusinessEmail != nil {
		settings.BusinessEmail = *input.BusinessEmail
	}
	if input.BusinessWebsite != nil {
		settings.BusinessWebsite = *input.BusinessWebsite
	}
	if input.TaxID != nil {
		settings.TaxID = *input.TaxID
	}
	if input.Currency != nil {
		settings.Currency = *input.Currency
	}
	if input.CurrencySymbol != nil {
		settings.CurrencySymbol = *input.CurrencySymbol
	}
	if input.Locale != nil {
		settings.Locale = *input.Locale
	}
	if input.Timezone != nil {
		settings.Timezone = *input.Timezone
	}
	if input.TaxRate != nil {
		settings.TaxRate = *input.TaxRate
	}
	if input.ReceiptFooter != nil {
		settings.ReceiptFooter = *input.ReceiptFooter
	}
	if input.InvoiceTerms != nil {
		settings.InvoiceTerms = *input.InvoiceTerms
	}
	if input.LowStockAlert != nil {
		settings.LowStockAlert = *input.LowStockAlert
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
