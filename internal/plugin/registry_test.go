package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/constructai/estimator-cli/internal/model"
)

func TestRegistryRegisterAndGet(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.NoError(t, r.Register(stubFactory("a.one")))
	require.NoError(t, r.Register(stubFactory("a.two")))

	f, ok := r.Get("a.one")
	require.True(t, ok)
	assert.Equal(t, "a.one", f().Metadata().ID)

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestRegistryEmptyIDRejected(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	assert.Error(t, r.Register(stubFactory("")))
	assert.Empty(t, r.List())
}

func TestRegistryLastWriterWins(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	first := func() Plugin { return &stubPlugin{id: "dup", version: "1.0.0"} }
	second := func() Plugin { return &stubPlugin{id: "dup", version: "2.0.0"} }

	require.NoError(t, r.Register(first))
	require.NoError(t, r.Register(second))

	f, ok := r.Get("dup")
	require.True(t, ok)
	assert.Equal(t, "2.0.0", f().Metadata().Version)

	// Re-registration does not duplicate the listing.
	assert.Len(t, r.List(), 1)
}

func TestRegistryListOrder(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.NoError(t, r.Register(stubFactory("z.last")))
	require.NoError(t, r.Register(stubFactory("a.first")))

	metas := r.List()
	require.Len(t, metas, 2)
	assert.Equal(t, "z.last", metas[0].ID)
	assert.Equal(t, "a.first", metas[1].ID)
}

func TestRegistryListByCategory(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.NoError(t, r.Register(func() Plugin {
		return &stubPlugin{id: "mep.a", category: model.CategoryMEP}
	}))
	require.NoError(t, r.Register(func() Plugin {
		return &stubPlugin{id: "cost.b", category: model.CategoryCost}
	}))

	mep := r.ListByCategory(model.CategoryMEP)
	assert.Len(t, mep, 1)
	assert.Contains(t, mep, "mep.a")

	assert.Empty(t, r.ListByCategory(model.CategoryStructural))
}

func TestRegistryCategories(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.NoError(t, r.Register(func() Plugin {
		return &stubPlugin{id: "mep.a", category: model.CategoryMEP}
	}))
	require.NoError(t, r.Register(func() Plugin {
		return &stubPlugin{id: "mep.b", category: model.CategoryMEP}
	}))
	require.NoError(t, r.Register(func() Plugin {
		return &stubPlugin{id: "cost.c", category: model.CategoryCost}
	}))

	assert.Equal(t, []model.Category{model.CategoryMEP, model.CategoryCost}, r.Categories())
}
