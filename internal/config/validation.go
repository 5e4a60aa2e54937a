package config

import (
	"fmt"

	"github.com/Qiqian1999/sement/internal/blend"
	"github.com/Qiqian1999/sement/pkg/constants"
	"github.com/Qiqian1999/sement/pkg/mathutil"
)

// Validate checks the configuration for hard errors. Everything it reports
// wraps blend.ErrConfiguration; the caller gets no partial result and no
// silent correction.
func (c *Configuration) Validate() error {
	if len(c.Materials) == 0 {
		return fmt.Errorf("%w: no materials configured", blend.ErrConfiguration)
	}

	seen := make(map[string]struct{}, len(c.Materials))
	for _, m := range c.Materials {
		if m.Name == "" {
			return fmt.Errorf("%w: material with empty name", blend.ErrConfiguration)
		}
		if _, dup := seen[m.Name]; dup {
			return fmt.Errorf("%w: duplicate material %q", blend.ErrConfiguration, m.Name)
		}
		seen[m.Name] = struct{}{}

		if !mathutil.IsFinite(m.Price) || !mathutil.IsFinite(m.MinRatio) ||
			!mathutil.IsFinite(m.MaxRatio) || !mathutil.IsFinite(m.ReferenceRatio) {
			return fmt.Errorf("%w: material %q has a non-finite value", blend.ErrConfiguration, m.Name)
		}
		if m.Price < 0 {
			return fmt.Errorf("%w: material %q has negative price %.2f", blend.ErrConfiguration, m.Name, m.Price)
		}
		if m.MinRatio < 0 || m.MinRatio > 1 {
			return fmt.Errorf("%w: material %q has minimum ratio %.4f outside [0,1]", blend.ErrConfiguration, m.Name, m.MinRatio)
		}
		if m.MaxRatio < 0 || m.MaxRatio > 1 {
			return fmt.Errorf("%w: material %q has maximum ratio %.4f outside [0,1]", blend.ErrConfiguration, m.Name, m.MaxRatio)
		}
		if m.MinRatio > m.MaxRatio {
			return fmt.Errorf("%w: material %q has minimum ratio %.4f above maximum %.4f",
				blend.ErrConfiguration, m.Name, m.MinRatio, m.MaxRatio)
		}
		if m.ReferenceRatio < 0 || m.ReferenceRatio > 1 {
			return fmt.Errorf("%w: material %q has reference ratio %.4f outside [0,1]", blend.ErrConfiguration, m.Name, m.ReferenceRatio)
		}
	}

	return nil
}

// ValidateConfiguration performs advisory validation and returns warnings.
// Warnings do not block an optimization run.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	referenceSum := c.ReferenceBlend().Sum()
	if !mathutil.WithinTolerance(referenceSum, 1, constants.ProportionTolerance) {
		warnings = append(warnings,
			fmt.Sprintf("reference ratios sum to %.4f rather than 1; cost comparison assumes a complete blend", referenceSum))
	}

	for _, m := range c.Materials {
		if m.ReferenceRatio < m.MinRatio || m.ReferenceRatio > m.MaxRatio {
			warnings = append(warnings,
				fmt.Sprintf("material %q reference ratio %.4f lies outside its bounds [%.4f, %.4f]",
					m.Name, m.ReferenceRatio, m.MinRatio, m.MaxRatio))
		}
	}

	if c.Quality.StrengthTarget != 0 &&
		(c.Quality.StrengthTarget < constants.MinStrengthTarget || c.Quality.StrengthTarget > constants.MaxStrengthTarget) {
		warnings = append(warnings,
			fmt.Sprintf("strength target %.1f MPa lies outside the usual range [%.1f, %.1f]",
				c.Quality.StrengthTarget, constants.MinStrengthTarget, constants.MaxStrengthTarget))
	}
	if c.Quality.FinenessTarget != 0 &&
		(c.Quality.FinenessTarget < constants.MinFinenessTarget || c.Quality.FinenessTarget > constants.MaxFinenessTarget) {
		warnings = append(warnings,
			fmt.Sprintf("fineness target %.1f%% lies outside the usual range [%.1f, %.1f]",
				c.Quality.FinenessTarget, constants.MinFinenessTarget, constants.MaxFinenessTarget))
	}

	return warnings
}
