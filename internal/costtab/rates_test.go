package costtab

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRates(t *testing.T) {
	t.Parallel()
	rates := DefaultRates()

	assert.Equal(t, 350.0, rates.Plumbing.Resolve("toilet"))
	assert.Equal(t, 300.0, rates.Doors.Resolve("unknown door type"))
	assert.Equal(t, 85.0, rates.Electrical.Resolve("GFCI receptacle"))
	assert.Equal(t, 175.0, rates.Concrete.Resolve("4000"))
	assert.Equal(t, 1200.0, rates.ReinforcementPerTon)

	assert.Equal(t, 0.65, rates.Labor.Walls)
	assert.Equal(t, 0.70, rates.Labor.Electrical)
	assert.Equal(t, 1.10, rates.Labor.Plumbing)
	assert.Equal(t, 0.90, rates.Labor.HVAC)
	assert.Equal(t, 0.40, rates.Labor.Concrete)

	assert.Equal(t, 125.0, rates.Defaults.ReinforcementLbsPerCY)
	assert.Equal(t, 50.0, rates.Defaults.FormworkSFPerCY)
}

func TestLoadRatesEmptyPath(t *testing.T) {
	t.Parallel()

	rates, err := LoadRates("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRates().Plumbing.Resolve("toilet"), rates.Plumbing.Resolve("toilet"))
}

func TestLoadRatesOverrides(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rates.yaml")
	content := `
plumbing:
  toilet: 425.0
doors:
  general: 275.0
reinforcement_per_ton: 1350.0
defaults:
  reinforcement_lbs_per_cy: 150.0
  formwork_sf_per_cy: 45.0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rates, err := LoadRates(path)
	require.NoError(t, err)

	assert.Equal(t, 425.0, rates.Plumbing.Resolve("toilet"))
	assert.Equal(t, 275.0, rates.Doors.Resolve("unknown"))
	assert.Equal(t, 1350.0, rates.ReinforcementPerTon)
	assert.Equal(t, 150.0, rates.Defaults.ReinforcementLbsPerCY)
	assert.Equal(t, 45.0, rates.Defaults.FormworkSFPerCY)
	// Untouched tables keep defaults.
	assert.Equal(t, 450.0, rates.Plumbing.Resolve("urinal"))
	assert.Equal(t, 0.65, rates.Labor.Walls)
}

func TestLoadRatesMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadRates("/nonexistent/rates.yaml")
	assert.Error(t, err)
}
