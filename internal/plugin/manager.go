package plugin

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/constructai/estimator-cli/internal/model"
)

// defaultFanout bounds concurrent plugin runs in RunAllEnabled. Analysis is
// I/O-bound on the LLM call, so a small limit keeps request bursts polite
// without serializing the whole fan-out.
const defaultFanout = 4

// Manager tracks which registered plugins are enabled and runs analyses
// against them. The plugin map is populated at startup; the enabled set is
// mutated only through Enable/Disable. Analysis never mutates either, so
// concurrent reads during fan-out are safe.
type Manager struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
	enabled map[string]struct{}
	fanout  int
}

// NewManager creates a Manager with the given fan-out limit (<=0 uses the
// default).
func NewManager(fanout int) *Manager {
	if fanout <= 0 {
		fanout = defaultFanout
	}
	return &Manager{
		plugins: make(map[string]Plugin),
		enabled: make(map[string]struct{}),
		fanout:  fanout,
	}
}

// RegisterPlugin adds an instance to the manager. Empty ids are rejected.
func (m *Manager) RegisterPlugin(p Plugin) error {
	id := p.Metadata().ID
	if id == "" {
		return eris.New("manager: plugin id must not be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.plugins[id] = p
	return nil
}

// Get returns the plugin instance for an id.
func (m *Manager) Get(id string) (Plugin, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.plugins[id]
	return p, ok
}

// Enable marks a plugin as enabled. Unknown ids fail with ErrNotFound and
// leave the enabled set untouched.
func (m *Manager) Enable(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.plugins[id]; !ok {
		return eris.Wrap(ErrNotFound, fmt.Sprintf("manager: enable %q", id))
	}
	m.enabled[id] = struct{}{}
	return nil
}

// Disable removes a plugin from the enabled set. Disabling an unknown or
// already-disabled id is a no-op.
func (m *Manager) Disable(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.enabled, id)
}

// Enabled reports whether the id is currently enabled.
func (m *Manager) Enabled(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.enabled[id]
	return ok
}

// List returns metadata for every registered plugin, sorted by id.
func (m *Manager) List() []model.PluginMetadata {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.PluginMetadata, 0, len(m.plugins))
	for _, p := range m.plugins {
		out = append(out, p.Metadata())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ListEnabled returns metadata for the enabled plugins, sorted by id.
func (m *Manager) ListEnabled() []model.PluginMetadata {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.PluginMetadata, 0, len(m.enabled))
	for id := range m.enabled {
		out = append(out, m.plugins[id].Metadata())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RunAnalysis runs a single plugin against the text: not-found, not-enabled
// and invalid-input gates first, then Analyze followed by FormatResults.
// Upstream failures propagate as the returned error.
func (m *Manager) RunAnalysis(ctx context.Context, text, id string, analysisCtx map[string]any) (model.Result, error) {
	m.mu.RLock()
	p, registered := m.plugins[id]
	_, isEnabled := m.enabled[id]
	m.mu.RUnlock()

	if !registered {
		return model.Result{}, eris.Wrap(ErrNotFound, fmt.Sprintf("manager: run %q", id))
	}
	if !isEnabled {
		return model.Result{}, eris.Wrap(ErrNotEnabled, fmt.Sprintf("manager: run %q", id))
	}
	if !p.ValidateInput(text) {
		return model.Result{}, eris.Wrap(ErrInvalidInput, fmt.Sprintf("manager: run %q", id))
	}

	res, err := p.Analyze(ctx, text, analysisCtx)
	if err != nil {
		return model.Result{}, err
	}

	return p.FormatResults(res), nil
}

// RunAllEnabled runs every enabled plugin against the text and returns a map
// keyed by plugin id. Each plugin's failure — error, panic, or upstream — is
// recorded as a failure Result under its own id and never aborts or corrupts
// the sibling analyses. The returned key set always equals the enabled set.
func (m *Manager) RunAllEnabled(ctx context.Context, text string, analysisCtx map[string]any) map[string]model.Result {
	m.mu.RLock()
	ids := make([]string, 0, len(m.enabled))
	for id := range m.enabled {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	results := make(map[string]model.Result, len(ids))
	var resMu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(m.fanout)

	for _, id := range ids {
		id := id
		g.Go(func() error {
			res := m.runIsolated(gCtx, text, id, analysisCtx)
			resMu.Lock()
			results[id] = res
			resMu.Unlock()
			return nil // Individual failures never cancel the group.
		})
	}

	_ = g.Wait()
	return results
}

// runIsolated wraps RunAnalysis so that any error or panic becomes a failure
// Result for that plugin alone.
func (m *Manager) runIsolated(ctx context.Context, text, id string, analysisCtx map[string]any) (res model.Result) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("manager: plugin panicked",
				zap.String("plugin", id),
				zap.Any("panic", r),
			)
			res = model.Failure(fmt.Sprintf("plugin panicked: %v", r))
		}
	}()

	res, err := m.RunAnalysis(ctx, text, id, analysisCtx)
	if err != nil {
		zap.L().Warn("manager: plugin analysis failed",
			zap.String("plugin", id),
			zap.Error(err),
		)
		return model.Failure(err.Error())
	}
	return res
}
