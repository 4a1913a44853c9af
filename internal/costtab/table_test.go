package costtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveOrderedFirstMatch(t *testing.T) {
	t.Parallel()

	table := New(
		Entry{"gfci", 85.0},
		Entry{"receptacle", 45.0},
		Entry{"general", 100.0},
	)

	// "GFCI receptacle" contains both keywords; the earlier declaration wins.
	assert.Equal(t, 85.0, table.Resolve("GFCI receptacle"))
	assert.Equal(t, 45.0, table.Resolve("duplex receptacle"))
	assert.Equal(t, 100.0, table.Resolve("junction box"))
}

func TestResolveCaseInsensitive(t *testing.T) {
	t.Parallel()

	table := New(
		Entry{"solid core", 250.0},
		Entry{"general", 300.0},
	)

	assert.Equal(t, 250.0, table.Resolve("SOLID CORE wood door"))
	assert.Equal(t, 250.0, table.Resolve("Solid Core"))
}

func TestResolveKeyword(t *testing.T) {
	t.Parallel()

	table := New(
		Entry{"toilet", 350.0},
		Entry{"general", 400.0},
	)

	kw, price := table.ResolveKeyword("floor-mounted toilet")
	assert.Equal(t, "toilet", kw)
	assert.Equal(t, 350.0, price)

	kw, price = table.ResolveKeyword("mystery fixture")
	assert.Equal(t, "general", kw)
	assert.Equal(t, 400.0, price)
}

func TestNewPanicsWithoutGeneral(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		New(Entry{"toilet", 350.0})
	})
}

func TestFallback(t *testing.T) {
	t.Parallel()

	table := New(Entry{"general", 20.0})
	assert.Equal(t, 20.0, table.Fallback())
	assert.Equal(t, 20.0, table.Resolve("anything"))
}

func TestOverride(t *testing.T) {
	t.Parallel()

	table := New(
		Entry{"toilet", 350.0},
		Entry{"sink", 325.0},
		Entry{"general", 400.0},
	)

	out := table.Override(map[string]float64{
		"toilet":  375.0,
		"urinal":  450.0,
		"general": 425.0,
	})

	assert.Equal(t, 375.0, out.Resolve("toilet"))
	assert.Equal(t, 450.0, out.Resolve("urinal"))
	assert.Equal(t, 425.0, out.Resolve("unknown"))
	// Untouched keyword and the original table keep their prices.
	assert.Equal(t, 325.0, out.Resolve("sink"))
	assert.Equal(t, 350.0, table.Resolve("toilet"))
	assert.Equal(t, 400.0, table.Resolve("unknown"))
}
