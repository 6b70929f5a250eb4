package format

import (
	"strconv"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencyOptions controls currency formatting. Zero fraction-digit values
// mean the default of 2.
type CurrencyOptions struct {
	Currency          string
	Locale            string
	MinFractionDigits int
	MaxFractionDigits int
}

// currencySymbols is the fallback symbol table for the common ISO codes.
// Codes not listed here render as "<CODE> ".
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "¥",
	"INR": "₹",
	"CAD": "CA$",
	"AUD": "A$",
	"MXN": "MX$",
	"BRL": "R$",
	"KRW": "₩",
	"RUB": "₽",
}

// FormatCurrency renders a monetary value for the given currency and locale.
//
// Two tiers: the locale and currency are parsed with x/text and the number is
// rendered with locale-correct grouping and decimal separators; if either
// parse fails the result degrades to the manual fallback of symbol plus the
// value fixed to two decimals. The fallback is deliberate and silent, not an
// error condition.
func FormatCurrency(value float64, opts CurrencyOptions) string {
	min := opts.MinFractionDigits
	if min <= 0 {
		min = 2
	}
	max := opts.MaxFractionDigits
	if max <= 0 {
		max = 2
	}
	if max < min {
		max = min
	}

	tag, err := language.Parse(opts.Locale)
	if err != nil {
		return fallbackCurrency(value, opts.Currency)
	}
	unit, err := currency.ParseISO(opts.Currency)
	if err != nil {
		return fallbackCurrency(value, opts.Currency)
	}

	p := message.NewPrinter(tag)
	formatted := p.Sprint(number.Decimal(value,
		number.MinFractionDigits(min),
		number.MaxFractionDigits(max),
	))
	return symbolFor(unit.String()) + formatted
}

func fallbackCurrency(value float64, code string) string {
	return symbolFor(code) + strconv.FormatFloat(value, 'f', 2, 64)
}

func symbolFor(code string) string {
	if sym, ok := currencySymbols[code]; ok {
		return sym
	}
	return code + " "
}

// monthFirst reports whether the locale uses month-first dates and a 12-hour
// clock. US-style formatting applies to the US region; everything else gets
// day-first dates and a 24-hour clock.
func monthFirst(locale string) bool {
	tag, err := language.Parse(locale)
	if err != nil {
		return true
	}
	region, _ := tag.Region()
	return region.String() == "US"
}

// FormatDate renders a long-form date for the locale, e.g. "January 2, 2006"
// or "2 January 2006".
func FormatDate(t time.Time, locale string) string {
	if monthFirst(locale) {
		return t.Format("January 2, 2006")
	}
	return t.Format("2 January 2006")
}

// FormatTime renders the time of day, 12-hour for US locales and 24-hour
// otherwise.
func FormatTime(t time.Time, locale string) string {
	if monthFirst(locale) {
		return t.Format("3:04 PM")
	}
	return t.Format("15:04")
}

// FormatDateTime renders a short combined date and time.
func FormatDateTime(t time.Time, locale string) string {
	if monthFirst(locale) {
		return t.Format("01/02/2006 3:04 PM")
	}
	return t.Format("02/01/2006 15:04")
}
