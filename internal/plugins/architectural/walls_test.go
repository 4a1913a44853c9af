package architectural

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/constructai/estimator-cli/internal/costtab"
	"github.com/constructai/estimator-cli/internal/model"
	"github.com/constructai/estimator-cli/internal/plugin"
	"github.com/constructai/estimator-cli/pkg/anthropic"
	"github.com/constructai/estimator-cli/pkg/anthropic/mocks"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func testWalls(t *testing.T) *WallsPartitions {
	t.Helper()
	return NewWallsPartitions(mocks.NewMockClient(t), plugin.LLMOptions{Model: "m", MaxTokens: 100}, costtab.DefaultRates())
}

func TestWallsMetadata(t *testing.T) {
	t.Parallel()

	meta := testWalls(t).Metadata()
	assert.Equal(t, "architectural.walls_partitions", meta.ID)
	assert.Equal(t, model.CategoryArchitectural, meta.Category)
	assert.Equal(t, 99.0, meta.Price)
}

func TestWallsValidateInput(t *testing.T) {
	t.Parallel()

	p := testWalls(t)
	assert.True(t, p.ValidateInput("wall schedule"))
	assert.False(t, p.ValidateInput("   "))
	assert.False(t, p.ValidateInput(""))
}

func TestWallsFormatResultsPricesByMaterial(t *testing.T) {
	t.Parallel()

	p := testWalls(t)
	res := model.Success(map[string]any{
		"walls": []any{
			// 100 SF of concrete at $22/SF.
			map[string]any{"material": "concrete", "quantity": 100.0},
			// 10 x 8 drywall partition wall at $2.50/SF.
			map[string]any{"material": "drywall", "length": "10'", "height": "8'"},
		},
		"partitions": []any{
			// Unknown material falls back to $15/SF.
			map[string]any{"material": "unknown", "quantity": 50.0},
		},
	})

	out := p.FormatResults(res)
	cb := out.CostBlock()

	assert.Equal(t, 180.0, cb["walls_total_area"])
	assert.Equal(t, 50.0, cb["partitions_total_area"])
	// 100*22 + 80*2.5 + 50*15 = 2200 + 200 + 750
	assert.Equal(t, 3150.0, cb["estimated_material_cost"])
	// Labor at 0.65 of material.
	assert.Equal(t, 2047.5, cb["estimated_labor_cost"])
	assert.Equal(t, "USD", cb["currency"])
}

func TestWallsFormatResultsShortCircuits(t *testing.T) {
	t.Parallel()

	p := testWalls(t)

	failed := model.Failure("bad")
	assert.Equal(t, failed, p.FormatResults(failed))

	// Pre-existing material cost is left alone.
	priced := model.Success(map[string]any{
		"walls":          []any{map[string]any{"material": "concrete", "quantity": 10.0}},
		"cost_estimates": map[string]any{"estimated_material_cost": 999.0},
	})
	out := p.FormatResults(priced)
	assert.Equal(t, 999.0, out.CostBlock()["estimated_material_cost"])

	// No line items leaves the result untouched.
	empty := model.Success(map[string]any{"notes": []any{}})
	out = p.FormatResults(empty)
	_, ok := out.Data["cost_estimates"]
	assert.False(t, ok)
}

func TestWallsFormatResultsUnparseableDimensions(t *testing.T) {
	t.Parallel()

	p := testWalls(t)
	res := model.Success(map[string]any{
		"walls": []any{
			map[string]any{"material": "concrete", "length": "varies", "height": "see plans"},
		},
	})

	out := p.FormatResults(res)
	cb := out.CostBlock()
	assert.Equal(t, 0.0, cb["walls_total_area"])
	assert.Nil(t, cb["estimated_material_cost"])
}

func TestWallsAnalyzeInvalidInput(t *testing.T) {
	t.Parallel()

	p := testWalls(t)
	res, err := p.Analyze(context.Background(), "  ", nil)
	require.NoError(t, err)
	assert.True(t, res.Failed())
}

func TestWallsAnalyzeParsesResponse(t *testing.T) {
	t.Parallel()

	client := mocks.NewMockClient(t)
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Return(&anthropic.MessageResponse{
			Content: []anthropic.ContentBlock{{Type: "text", Text: `{"walls": [], "partitions": []}`}},
		}, nil)

	p := NewWallsPartitions(client, plugin.LLMOptions{Model: "m", MaxTokens: 100}, costtab.DefaultRates())
	res, err := p.Analyze(context.Background(), "wall text", nil)
	require.NoError(t, err)
	assert.Contains(t, res.Data, "walls")
}
