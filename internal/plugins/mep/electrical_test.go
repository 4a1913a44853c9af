package mep

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/constructai/estimator-cli/internal/costtab"
	"github.com/constructai/estimator-cli/internal/model"
	"github.com/constructai/estimator-cli/internal/plugin"
	"github.com/constructai/estimator-cli/pkg/anthropic/mocks"
)

func testElectrical(t *testing.T) *ElectricalSystems {
	t.Helper()
	return NewElectricalSystems(mocks.NewMockClient(t), plugin.LLMOptions{Model: "m", MaxTokens: 100}, costtab.DefaultRates())
}

func TestElectricalMetadata(t *testing.T) {
	t.Parallel()

	meta := testElectrical(t).Metadata()
	assert.Equal(t, "mep.electrical_systems", meta.ID)
	assert.Equal(t, model.CategoryMEP, meta.Category)
	assert.Equal(t, 199.0, meta.Price)
}

func TestElectricalGFCIOutranksReceptacle(t *testing.T) {
	t.Parallel()

	p := testElectrical(t)
	res := model.Success(map[string]any{
		"fixtures": []any{
			// "GFCI receptacle" matches the gfci keyword first: $85, not $45.
			map[string]any{"type": "gfci receptacle", "quantity": 10.0},
			map[string]any{"type": "duplex receptacle", "quantity": 10.0},
		},
	})

	out := p.FormatResults(res)
	cb := out.CostBlock()

	assert.Equal(t, 20.0, cb["fixtures_total_count"])
	// 10*85 + 10*45 = 1300
	assert.Equal(t, 1300.0, cb["estimated_material_cost"])
	// Labor at 0.70 of material.
	assert.Equal(t, 910.0, cb["estimated_labor_cost"])
}

func TestElectricalEquipmentAndFixtures(t *testing.T) {
	t.Parallel()

	p := testElectrical(t)
	res := model.Success(map[string]any{
		"equipment": []any{
			map[string]any{"type": "panel", "description": "200A distribution panel"}, // 1800
			map[string]any{"type": "generator", "quantity": 1.0},                      // 12000
		},
		"fixtures": []any{
			map[string]any{"type": "exit sign", "quantity": 4.0}, // 4 x 120
		},
	})

	out := p.FormatResults(res)
	cb := out.CostBlock()

	assert.Equal(t, 2.0, cb["equipment_total_count"])
	assert.Equal(t, 4.0, cb["fixtures_total_count"])
	assert.Equal(t, 14280.0, cb["estimated_material_cost"])
	assert.InDelta(t, 9996.0, cb["estimated_labor_cost"].(float64), 0.001)
}

func TestElectricalShortCircuits(t *testing.T) {
	t.Parallel()

	p := testElectrical(t)

	failed := model.Failure("bad")
	assert.Equal(t, failed, p.FormatResults(failed))

	priced := model.Success(map[string]any{
		"fixtures":       []any{map[string]any{"type": "panel", "quantity": 1.0}},
		"cost_estimates": map[string]any{"estimated_material_cost": 5.0},
	})
	out := p.FormatResults(priced)
	assert.Equal(t, 5.0, out.CostBlock()["estimated_material_cost"])
}
