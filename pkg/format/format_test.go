package format

import (
	"testing"
	"time"
)

func TestFormatCurrencyUSD(t *testing.T) {
	got := FormatCurrency(1234.5, CurrencyOptions{Currency: "USD", Locale: "en-US"})
	if got != "$1,234.50" {
		t.Errorf("Expected $1,234.50, got %q", got)
	}
}

func TestFormatCurrencyFallbackUnknownCode(t *testing.T) {
	got := FormatCurrency(10, CurrencyOptions{Currency: "XYZ-invalid", Locale: "en-US"})
	if got != "XYZ-invalid 10.00" {
		t.Errorf("Expected fallback 'XYZ-invalid 10.00', got %q", got)
	}
}

func TestFormatCurrencyFallbackBadLocale(t *testing.T) {
	got := FormatCurrency(5, CurrencyOptions{Currency: "EUR", Locale: "!!"})
	if got != "€5.00" {
		t.Errorf("Expected fallback €5.00, got %q", got)
	}
}

func TestFormatCurrencyKnownSymbols(t *testing.T) {
	cases := []struct {
		code string
		want string
	}{
		{"USD", "$10.00"},
		{"GBP", "£10.00"},
		{"BRL", "R$10.00"},
		{"KRW", "₩10.00"},
	}
	for _, tc := range cases {
		// An unparseable locale forces the fallback path so the symbol
		// table itself is exercised.
		got := FormatCurrency(10, CurrencyOptions{Currency: tc.code, Locale: ""})
		if got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.code, tc.want, got)
		}
	}
}

func TestFormatCurrencyFractionDigits(t *testing.T) {
	got := FormatCurrency(7, CurrencyOptions{Currency: "USD", Locale: "en-US", MinFractionDigits: 1, MaxFractionDigits: 1})
	if got != "$7.0" {
		t.Errorf("Expected $7.0, got %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, 3, 7, 14, 30, 0, 0, time.UTC)

	if got := FormatDate(d, "en-US"); got != "March 7, 2024" {
		t.Errorf("en-US: got %q", got)
	}
	if got := FormatDate(d, "en-GB"); got != "7 March 2024" {
		t.Errorf("en-GB: got %q", got)
	}
}

func TestFormatTime(t *testing.T) {
	d := time.Date(2024, 3, 7, 14, 30, 0, 0, time.UTC)

	if got := FormatTime(d, "en-US"); got != "2:30 PM" {
		t.Errorf("en-US: got %q", got)
	}
	if got := FormatTime(d, "de-DE"); got != "14:30" {
		t.Errorf("de-DE: got %q", got)
	}
}

func TestFormatDateTime(t *testing.T) {
	d := time.Date(2024, 3, 7, 9, 5, 0, 0, time.UTC)

	if got := FormatDateTime(d, "en-US"); got != "03/07/2024 9:05 AM" {
		t.Errorf("en-US: got %q", got)
	}
	if got := FormatDateTime(d, "fr-FR"); got != "07/03/2024 09:05" {
		t.Errorf("fr-FR: got %q", got)
	}
}
