package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Business  BusinessConfig
	Trend     TrendConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name    string
	Env     string
	Port    string
	Debug   bool
	BaseURL string // public URL prefix embedded in receipt QR codes
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

// BusinessConfig seeds the store settings row on first boot. After that,
// the database row is authoritative and these values are ignored.
type BusinessConfig struct {
	Name           string
	Address        string
	Phone          string
	Email          string
	Website        string
	TaxID          string
	Currency       string
	CurrencySymbol string
	Locale         string
	Timezone       string
	TaxRate        float64
	ReceiptFooter  string
	InvoiceTerms   string
}

// TrendConfig holds the pricing analytics thresholds
type TrendConfig struct {
	MarginThresholdPts float64
	CostThresholdPct   float64
	ErosionWindowDays  int
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "pos-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("APP_BASE_URL", "")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "pos")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "UTC")
	viper.SetDefault("BUSINESS_NAME", "My Store")
	viper.SetDefault("BUSINESS_ADDRESS", "")
	viper.SetDefault("BUSINESS_PHONE", "")
	viper.SetDefault("BUSINESS_EMAIL", "")
	viper.SetDefault("BUSINESS_WEBSITE", "")
	viper.SetDefault("BUSINESS_TAX_ID", "")
	viper.SetDefault("BUSINESS_CURRENCY", "USD")
	viper.SetDefault("BUSINESS_CURRENCY_SYMBOL", "$")
	viper.SetDefault("BUSINESS_LOCALE", "en-US")
	viper.SetDefault("BUSINESS_TIMEZONE", "UTC")
	viper.SetDefault("BUSINESS_TAX_RATE", 0.0)
	viper.SetDefault("BUSINESS_RECEIPT_FOOTER", "")
	viper.SetDefault("BUSINESS_INVOICE_TERMS", "Net 30")
	viper.SetDefault("TREND_MARGIN_THRESHOLD_PTS", 2.0)
	viper.SetDefault("TREND_COST_THRESHOLD_PCT", 5.0)
	viper.SetDefault("TREND_EROSION_WINDOW_DAYS", 90)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)

	return &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Env:     viper.GetString("APP_ENV"),
			Port:    viper.GetString("APP_PORT"),
			Debug:   viper.GetBool("APP_DEBUG"),
			BaseURL: viper.GetString("APP_BASE_URL"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		Business: BusinessConfig{
			Name:           viper.GetString("BUSINESS_NAME"),
			Address:        viper.GetString("BUSINESS_ADDRESS"),
			Phone:          viper.GetString("BUSINESS_PHONE"),
			Email:          viper.GetString("BUSINESS_EMAIL"),
			Website:        viper.GetString("BUSINESS_WEBSITE"),
			TaxID:          viper.GetString("BUSINESS_TAX_ID"),
			Currency:       viper.GetString("BUSINESS_CURRENCY"),
			CurrencySymbol: viper.GetString("BUSINESS_CURRENCY_SYMBOL"),
			Locale:         viper.GetString("BUSINESS_LOCALE"),
			Timezone:       viper.GetString("BUSINESS_TIMEZONE"),
			TaxRate:        viper.GetFloat64("BUSINESS_TAX_RATE"),
			ReceiptFooter:  viper.GetString("BUSINESS_RECEIPT_FOOTER"),
			InvoiceTerms:   viper.GetString("BUSINESS_INVOICE_TERMS"),
		},
		Trend: TrendConfig{
			MarginThresholdPts: viper.GetFloat64("TREND_MARGIN_THRESHOLD_PTS"),
			CostThresholdPct:   viper.GetFloat64("TREND_COST_THRESHOLD_PCT"),
			ErosionWindowDays:  viper.GetInt("TREND_EROSION_WINDOW_DAYS"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
