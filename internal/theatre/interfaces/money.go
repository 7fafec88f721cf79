package interfaces

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	theatre "theatre-billing/internal/theatre/domain"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"CAD": "CA$",
	"AUD": "A$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "¥",
}

// Languages whose currency pattern puts the symbol after the number,
// separated by a no-break space ("1 730,00 €").
var symbolAfterAmount = map[string]bool{
	"fr": true,
	"de": true,
	"es": true,
	"it": true,
	"pt": true,
	"ru": true,
	"pl": true,
	"cs": true,
	"sv": true,
	"fi": true,
	"da": true,
	"nb": true,
}

// MoneyFormatter renders minor currency units for display.
type MoneyFormatter struct {
	printer *message.Printer
	unit    currency.Unit
	prefix  string
	suffix  string
	decimal string
}

// NewMoneyFormatter builds a formatter for a BCP 47 locale and an ISO 4217 code.
func NewMoneyFormatter(locale, code string) (*MoneyFormatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("money formatter: locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("money formatter: currency %q: %w", code, err)
	}
	symbol, ok := currencySymbols[unit.String()]
	if !ok {
		symbol = unit.String()
	}
	printer := message.NewPrinter(tag)
	f := &MoneyFormatter{
		printer: printer,
		unit:    unit,
		decimal: decimalSeparator(printer),
	}
	base, _ := tag.Base()
	switch {
	case symbolAfterAmount[base.String()]:
		f.suffix = "\u00a0" + symbol
	case !ok:
		f.prefix = symbol + " "
	default:
		f.prefix = symbol
	}
	return f, nil
}

// Currency returns the ISO code.
func (f *MoneyFormatter) Currency() string {
	return f.unit.String()
}

// Format renders an amount in minor units, e.g. 173000 -> "$1,730.00" for en-US
// and "1 730,00 €" for fr-FR with EUR.
func (f *MoneyFormatter) Format(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	major := minor / theatre.PercentFactor
	fraction := minor % theatre.PercentFactor
	return fmt.Sprintf("%s%s%s%s%02d%s", sign, f.prefix, f.printer.Sprintf("%d", major), f.decimal, fraction, f.suffix)
}

func decimalSeparator(printer *message.Printer) string {
	// The sample value only probes the locale's separator.
	sample := printer.Sprintf("%.1f", 1.5)
	sep := strings.Trim(sample, "0123456789")
	if sep == "" {
		return "."
	}
	return sep
}
