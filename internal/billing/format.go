package billing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/andy/boutiquebill/internal/domain"
)

// DefaultCurrencySymbol is used when no symbol is configured
const DefaultCurrencySymbol = "₹"

// FormatAmount renders an amount with two decimals, e.g. "₹1000.00" or "-₹250.00"
func FormatAmount(symbol string, amount float64) string {
	if amount == 0 {
		amount = 0 // drop negative zero
	}
	if amount < 0 {
		return fmt.Sprintf("-%s%.2f", symbol, -amount)
	}
	return fmt.Sprintf("%s%.2f", symbol, amount)
}

// FormatMeasurement renders a measurement value without trailing zeros
func FormatMeasurement(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// MeasurementLine joins a service's non-zero measurements as
// "Chest: 34, Waist: 30.5". It returns "" when there are none.
func MeasurementLine(svc *domain.Service) string {
	visible := svc.VisibleMeasurements()
	parts := make([]string, len(visible))
	for i, m := range visible {
		parts[i] = fmt.Sprintf("%s: %s", m.Name, FormatMeasurement(m.Value))
	}
	return strings.Join(parts, ", ")
}

// FormatLongDate renders t as "October 18th, 2026"
func FormatLongDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s %d%s, %d", t.Month(), t.Day(), ordinalSuffix(t.Day()), t.Year())
}

func ordinalSuffix(day int) string {
	if day%100 >= 11 && day%100 <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}
