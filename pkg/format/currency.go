package format

import (
	"fmt"
	"math"
	"strings"
)

// Currency returns a currency string with a yuan sign and thousands separators (e.g., "-¥1,234.56").
func Currency(amount float64) string {
	formatted := formatPositiveCurrency(math.Abs(amount))
	if amount < 0 {
		return "-¥" + formatted
	}
	return "¥" + formatted
}

// PerTonne returns a currency string suffixed with the per-tonne unit (e.g., "¥97.96/t").
func PerTonne(amount float64) string {
	return Currency(amount) + "/t"
}

// Percent renders a proportion as a percentage with two decimals (e.g., "44.10%").
func Percent(fraction float64) string {
	return fmt.Sprintf("%.2f%%", fraction*100)
}

func formatPositiveCurrency(value float64) string {
	formatted := fmt.Sprintf("%.2f", value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}
