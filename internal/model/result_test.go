package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultVariants(t *testing.T) {
	t.Parallel()

	ok := Success(map[string]any{"walls": []any{}})
	assert.False(t, ok.Failed())

	failed := Failure("Analysis failed")
	assert.True(t, failed.Failed())
	assert.Nil(t, failed.Data)

	raw := FailureRaw("Could not parse AI response as JSON", "not json")
	assert.True(t, raw.Failed())
	assert.Equal(t, "not json", raw.Raw)
}

func TestResultWireFormat(t *testing.T) {
	t.Parallel()

	t.Run("success marshals domain object", func(t *testing.T) {
		t.Parallel()
		b, err := json.Marshal(Success(map[string]any{"doors": []any{}}))
		require.NoError(t, err)

		var m map[string]any
		require.NoError(t, json.Unmarshal(b, &m))
		assert.Contains(t, m, "doors")
		assert.NotContains(t, m, "error")
	})

	t.Run("failure marshals error keys", func(t *testing.T) {
		t.Parallel()
		b, err := json.Marshal(FailureRaw("bad", "raw text"))
		require.NoError(t, err)

		var m map[string]any
		require.NoError(t, json.Unmarshal(b, &m))
		assert.Equal(t, "bad", m["error"])
		assert.Equal(t, "raw text", m["raw_response"])
	})

	t.Run("failure without raw omits raw_response", func(t *testing.T) {
		t.Parallel()
		b, err := json.Marshal(Failure("bad"))
		require.NoError(t, err)

		var m map[string]any
		require.NoError(t, json.Unmarshal(b, &m))
		assert.NotContains(t, m, "raw_response")
	})

	t.Run("unmarshal restores the tag", func(t *testing.T) {
		t.Parallel()
		var failed Result
		require.NoError(t, json.Unmarshal([]byte(`{"error":"boom","raw_response":"x"}`), &failed))
		assert.True(t, failed.Failed())
		assert.Equal(t, "boom", failed.ErrMsg)
		assert.Equal(t, "x", failed.Raw)

		var ok Result
		require.NoError(t, json.Unmarshal([]byte(`{"walls":[]}`), &ok))
		assert.False(t, ok.Failed())
		assert.Contains(t, ok.Data, "walls")
	})
}

func TestCostBlock(t *testing.T) {
	t.Parallel()

	res := Success(map[string]any{})
	cb := res.CostBlock()
	require.NotNil(t, cb)
	cb["currency"] = "USD"

	// The block is attached to the result's data.
	attached, ok := res.Data["cost_estimates"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "USD", attached["currency"])

	// Second call returns the same map.
	res.CostBlock()["estimated_material_cost"] = 10.0
	assert.Equal(t, 10.0, attached["estimated_material_cost"])

	assert.Nil(t, Failure("bad").CostBlock())
}

func TestItems(t *testing.T) {
	t.Parallel()

	res := Success(map[string]any{
		"doors": []any{
			map[string]any{"type": "solid core"},
			"not an item",
			map[string]any{"type": "metal"},
		},
	})

	items := res.Items("doors")
	require.Len(t, items, 2)
	assert.Equal(t, "solid core", Str(items[0], "type"))

	assert.Nil(t, res.Items("windows"))
	assert.Nil(t, Failure("bad").Items("doors"))
}

func TestHasCost(t *testing.T) {
	t.Parallel()

	res := Success(map[string]any{
		"cost_estimates": map[string]any{
			"estimated_material_cost": 100.0,
			"estimated_labor_cost":    nil,
		},
	})

	assert.True(t, res.HasCost("estimated_material_cost"))
	assert.False(t, res.HasCost("estimated_labor_cost"))
	assert.False(t, res.HasCost("missing"))
	assert.False(t, Success(map[string]any{}).HasCost("estimated_material_cost"))
}

func TestFieldHelpers(t *testing.T) {
	t.Parallel()

	item := map[string]any{"type": "toilet", "quantity": 3.0, "count": 2}

	assert.Equal(t, "toilet", Str(item, "type"))
	assert.Equal(t, "", Str(item, "missing"))

	n, ok := Num(item, "quantity")
	assert.True(t, ok)
	assert.Equal(t, 3.0, n)

	n, ok = Num(item, "count")
	assert.True(t, ok)
	assert.Equal(t, 2.0, n)

	_, ok = Num(item, "type")
	assert.False(t, ok)

	assert.Nil(t, NilIfZero(0))
	assert.Nil(t, NilIfZero(-1))
	assert.Equal(t, 5.0, NilIfZero(5.0))
}
