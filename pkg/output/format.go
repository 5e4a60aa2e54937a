// Package output provides utilities for formatting and displaying
// optimization results.
package output

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Qiqian1999/sement/internal/optimizer"
	"github.com/Qiqian1999/sement/pkg/format"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(result *optimizer.Result) {
	p := message.NewPrinter(language.English)

	fmt.Printf("--- Blend cost comparison ---\n")
	fmt.Printf("%-16s | %-9s | %-9s | %-11s | %-11s | %-11s\n",
		"Material", "Ref %", "Opt %", "Price", "Ref cost", "Opt cost")
	fmt.Printf("%-16s | %-9s | %-9s | %-11s | %-11s | %-11s\n",
		"________", "_____", "_____", "_____", "________", "________")

	for i, name := range result.Materials {
		fmt.Printf("%-16s | %-9s | %-9s | %-11s | %-11s | %-11s\n",
			name,
			format.Percent(result.Reference[i]),
			format.Percent(result.Optimal[i]),
			format.Currency(result.Prices[i]),
			format.Currency(result.Comparison.ReferenceBreakdown[i]),
			format.Currency(result.Comparison.OptimalBreakdown[i]),
		)
	}

	fmt.Printf("\n")
	_, _ = p.Printf("Reference cost: %s\n", format.PerTonne(result.Comparison.ReferenceCost))
	_, _ = p.Printf("Optimized cost: %s\n", format.PerTonne(result.Comparison.OptimalCost))
	_, _ = p.Printf("Savings: %s\n", format.PerTonne(result.Comparison.Savings))

	if result.Quality.StrengthTarget != 0 || result.Quality.FinenessTarget != 0 {
		fmt.Printf("Quality targets (informational): early strength %.1f MPa, 45um fineness %.1f%%\n",
			result.Quality.StrengthTarget, result.Quality.FinenessTarget)
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(result *optimizer.Result) {
	fmt.Print(CsvString(result))
}

// CsvString renders the comparison in comma-separated value format.
func CsvString(result *optimizer.Result) string {
	var builder strings.Builder

	builder.WriteString(`"material","reference ratio","optimized ratio","price","reference cost","optimized cost"` + "\n")
	for i, name := range result.Materials {
		builder.WriteString(fmt.Sprintf(`"%s","%.6f","%.6f","%.2f","%.2f","%.2f"`+"\n",
			name,
			result.Reference[i],
			result.Optimal[i],
			result.Prices[i],
			result.Comparison.ReferenceBreakdown[i],
			result.Comparison.OptimalBreakdown[i],
		))
	}
	builder.WriteString(fmt.Sprintf(`"total","%.6f","%.6f","","%.2f","%.2f"`+"\n",
		result.Reference.Sum(),
		result.Optimal.Sum(),
		result.Comparison.ReferenceCost,
		result.Comparison.OptimalCost,
	))

	return builder.String()
}
