package optimizer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Qiqian1999/sement/internal/blend"
	"github.com/Qiqian1999/sement/internal/config"
)

func twoMaterialConfig() *config.Configuration {
	return &config.Configuration{
		Materials: []config.Material{
			{Name: "A", Price: 10, MinRatio: 0, MaxRatio: 1, ReferenceRatio: 0.5},
			{Name: "B", Price: 2, MinRatio: 0, MaxRatio: 1, ReferenceRatio: 0.5},
		},
	}
}

func TestNewRunnerNilConfiguration(t *testing.T) {
	_, err := NewRunner(zap.NewNop(), nil)
	require.Error(t, err)
}

func TestNewRunnerNilLogger(t *testing.T) {
	runner, err := NewRunner(nil, twoMaterialConfig())
	require.NoError(t, err)
	_, err = runner.Run()
	require.NoError(t, err)
}

func TestRunEndToEnd(t *testing.T) {
	runner, err := NewRunner(zap.NewNop(), twoMaterialConfig())
	require.NoError(t, err)

	result, err := runner.Run()
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, result.Materials)
	assert.InDelta(t, 0, result.Optimal[0], 1e-6)
	assert.InDelta(t, 1, result.Optimal[1], 1e-6)
	assert.InDelta(t, 6, result.Comparison.ReferenceCost, 1e-6)
	assert.InDelta(t, 2, result.Comparison.OptimalCost, 1e-6)
	assert.InDelta(t, 4, result.Comparison.Savings, 1e-6)
}

func TestRunCementRecipe(t *testing.T) {
	conf := &config.Configuration{
		Materials: []config.Material{
			{Name: "clinker", Price: 225.60, MinRatio: 0.391, MaxRatio: 0.491, ReferenceRatio: 0.441},
			{Name: "fly ash", Price: 19.07, MinRatio: 0.177, MaxRatio: 0.277, ReferenceRatio: 0.227},
			{Name: "limestone", Price: 39.31, MinRatio: 0.068, MaxRatio: 0.168, ReferenceRatio: 0.118},
			{Name: "pozzolan", Price: 34.46, MinRatio: 0.000, MaxRatio: 0.050, ReferenceRatio: 0.000},
			{Name: "coal slag", Price: 14.51, MinRatio: 0.023, MaxRatio: 0.123, ReferenceRatio: 0.073},
			{Name: "phosphogypsum", Price: 0.09, MinRatio: 0.000, MaxRatio: 0.100, ReferenceRatio: 0.050},
			{Name: "slag powder", Price: 108.06, MinRatio: 0.041, MaxRatio: 0.141, ReferenceRatio: 0.091},
		},
		Quality: config.QualityConfig{StrengthTarget: 15, FinenessTarget: 20},
	}

	runner, err := NewRunner(zap.NewNop(), conf)
	require.NoError(t, err)

	result, err := runner.Run()
	require.NoError(t, err)

	assert.InDelta(t, 1, result.Optimal.Sum(), 1e-6)
	assert.LessOrEqual(t, result.Comparison.OptimalCost, result.Comparison.ReferenceCost)
	assert.Greater(t, result.Comparison.Savings, 0.0)
	assert.Equal(t, 15.0, result.Quality.StrengthTarget)

	// The optimum keeps clinker at its floor.
	assert.InDelta(t, 0.391, result.Optimal[0], 1e-6)
}

func TestRunExcludesPinnedMaterial(t *testing.T) {
	// A material pinned at [0,0] stays out of the blend even when it is the
	// cheapest option available.
	conf := &config.Configuration{
		Materials: []config.Material{
			{Name: "clinker", Price: 225.60, MinRatio: 0, MaxRatio: 1, ReferenceRatio: 0.5},
			{Name: "fly ash", Price: 19.07, MinRatio: 0, MaxRatio: 1, ReferenceRatio: 0.5},
			{Name: "pozzolan", Price: 0.01, MinRatio: 0, MaxRatio: 0, ReferenceRatio: 0},
		},
	}

	runner, err := NewRunner(zap.NewNop(), conf)
	require.NoError(t, err)

	result, err := runner.Run()
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.Optimal[2])
	assert.InDelta(t, 1, result.Optimal[1], 1e-6)
	assert.InDelta(t, 19.07, result.Comparison.OptimalCost, 1e-6)
}

func TestRunInfeasibleReturnsNoPartialResult(t *testing.T) {
	conf := &config.Configuration{
		Materials: []config.Material{
			{Name: "A", Price: 10, MinRatio: 0.6, MaxRatio: 1, ReferenceRatio: 0.5},
			{Name: "B", Price: 2, MinRatio: 0.6, MaxRatio: 1, ReferenceRatio: 0.5},
		},
	}

	runner, err := NewRunner(zap.NewNop(), conf)
	require.NoError(t, err)

	result, err := runner.Run()
	require.Error(t, err)
	assert.True(t, errors.Is(err, blend.ErrInfeasible), "expected ErrInfeasible, got %v", err)
	assert.Nil(t, result)
}

func TestRunConfigurationError(t *testing.T) {
	conf := &config.Configuration{
		Materials: []config.Material{
			{Name: "A", Price: -1, MaxRatio: 1},
		},
	}

	runner, err := NewRunner(zap.NewNop(), conf)
	require.NoError(t, err)

	result, err := runner.Run()
	require.Error(t, err)
	assert.True(t, errors.Is(err, blend.ErrConfiguration), "expected ErrConfiguration, got %v", err)
	assert.Nil(t, result)
}

func TestRunDeterministic(t *testing.T) {
	runner, err := NewRunner(zap.NewNop(), twoMaterialConfig())
	require.NoError(t, err)

	first, err := runner.Run()
	require.NoError(t, err)
	second, err := runner.Run()
	require.NoError(t, err)

	assert.Equal(t, first.Optimal, second.Optimal)
	assert.Equal(t, first.Comparison, second.Comparison)
}
