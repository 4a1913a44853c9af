package plugin

import (
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/constructai/estimator-cli/internal/model"
)

// Registry is the process-wide catalog mapping plugin id to factory. It is
// populated once at startup by explicit Register calls and read-mostly
// afterwards. Re-registering an id overwrites the previous factory with a
// warning — last loaded wins, which keeps hot-reload during development
// cheap.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	order     []string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register stores the factory under the id of the plugin it constructs.
// Empty ids are rejected.
func (r *Registry) Register(f Factory) error {
	meta := f().Metadata()
	if meta.ID == "" {
		return eris.New("registry: plugin id must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[meta.ID]; exists {
		zap.L().Warn("registry: overwriting plugin registration",
			zap.String("plugin", meta.ID),
			zap.String("version", meta.Version),
		)
	} else {
		r.order = append(r.order, meta.ID)
	}
	r.factories[meta.ID] = f

	return nil
}

// Get returns the factory for an id, or false when unknown.
func (r *Registry) Get(id string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[id]
	return f, ok
}

// List returns the metadata of every registered plugin in registration order.
func (r *Registry) List() []model.PluginMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.PluginMetadata, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.factories[id]().Metadata())
	}
	return out
}

// ListByCategory returns the factories of every plugin in the category.
func (r *Registry) ListByCategory(category model.Category) map[string]Factory {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]Factory)
	for id, f := range r.factories {
		if f().Metadata().Category == category {
			out[id] = f
		}
	}
	return out
}

// Categories returns the unique set of categories across registered plugins,
// in first-registration order.
func (r *Registry) Categories() []model.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[model.Category]bool)
	var out []model.Category
	for _, id := range r.order {
		c := r.factories[id]().Metadata().Category
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}
