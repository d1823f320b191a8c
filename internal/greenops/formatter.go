package greenops

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
// Uses English locale for consistent thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators.
// Example: FormatNumber(18248) returns "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat formats a float with the specified precision and thousand separators.
// Example: FormatFloat(1234.567, 2) returns "1,234.57".
func FormatFloat(f float64, precision int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	if precision < 0 {
		precision = 0
	}

	formatted := strconv.FormatFloat(f, 'f', precision, 64)
	intPart, frac, hasFrac := strings.Cut(formatted, ".")

	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		// Beyond int64; keep the plain representation.
		return formatted
	}

	grouped := FormatNumber(n)
	if n == 0 && strings.HasPrefix(intPart, "-") {
		grouped = "-0"
	}
	if !hasFrac {
		return grouped
	}
	return grouped + "." + frac
}

// FormatGrams formats a CO₂ mass for display, switching to kilograms and
// metric tons as the value grows. Example: FormatGrams(110.25) returns "110.25 g".
func FormatGrams(grams float64) string {
	switch {
	case grams >= TonsToGrams:
		return FormatFloat(grams/TonsToGrams, 2) + " t"
	case grams >= KgToGrams:
		return FormatFloat(grams/KgToGrams, 2) + " kg"
	case grams != 0 && grams < 0.01:
		return strconv.FormatFloat(grams, 'e', 2, 64) + " g"
	default:
		return FormatFloat(grams, 2) + " g"
	}
}

// FormatEnergy formats an energy value in kWh, using Wh below one kWh.
func FormatEnergy(kwh float64) string {
	const whPerKWh = 1000.0
	switch {
	case kwh >= 1:
		return FormatFloat(kwh, 3) + " kWh"
	case kwh*whPerKWh >= 0.01:
		return FormatFloat(kwh*whPerKWh, 2) + " Wh"
	case kwh == 0:
		return "0 Wh"
	default:
		return strconv.FormatFloat(kwh*whPerKWh, 'e', 2, 64) + " Wh"
	}
}
