// Package plugins assembles the domain plugin set and registers it with a
// registry. Registration is explicit and happens once at startup, so the set
// of available analyzers is visible in one place rather than scattered
// across import side effects.
package plugins

import (
	"github.com/constructai/estimator-cli/internal/costtab"
	"github.com/constructai/estimator-cli/internal/plugin"
	"github.com/constructai/estimator-cli/internal/plugins/architectural"
	"github.com/constructai/estimator-cli/internal/plugins/costplugins"
	"github.com/constructai/estimator-cli/internal/plugins/mep"
	"github.com/constructai/estimator-cli/internal/plugins/structural"
	"github.com/constructai/estimator-cli/pkg/anthropic"
)

// Deps carries everything a plugin constructor needs.
type Deps struct {
	AI    anthropic.Client
	Opts  plugin.LLMOptions
	Rates costtab.Rates
}

// RegisterAll registers every built-in plugin factory with the registry.
func RegisterAll(reg *plugin.Registry, deps Deps) error {
	factories := []plugin.Factory{
		func() plugin.Plugin { return architectural.NewWallsPartitions(deps.AI, deps.Opts, deps.Rates) },
		func() plugin.Plugin { return architectural.NewDoorsWindows(deps.AI, deps.Opts, deps.Rates) },
		func() plugin.Plugin { return structural.NewConcrete(deps.AI, deps.Opts, deps.Rates) },
		func() plugin.Plugin { return structural.NewFoundationAnalysis(deps.AI, deps.Opts) },
		func() plugin.Plugin { return structural.NewFramingAnalysis(deps.AI, deps.Opts) },
		func() plugin.Plugin { return structural.NewLoadAnalysis(deps.AI, deps.Opts) },
		func() plugin.Plugin { return mep.NewElectricalSystems(deps.AI, deps.Opts, deps.Rates) },
		func() plugin.Plugin { return mep.NewPlumbingSystems(deps.AI, deps.Opts, deps.Rates) },
		func() plugin.Plugin { return mep.NewHVACSystems(deps.AI, deps.Opts, deps.Rates) },
		func() plugin.Plugin { return costplugins.NewMaterialCost(deps.AI, deps.Opts) },
		func() plugin.Plugin { return costplugins.NewLaborCost(deps.AI, deps.Opts) },
		func() plugin.Plugin { return costplugins.NewQuantityTakeoff(deps.AI, deps.Opts) },
	}

	for _, f := range factories {
		if err := reg.Register(f); err != nil {
			return err
		}
	}
	return nil
}

// BuildManager constructs a manager holding one instance of every registered
// plugin. When enableAll is set, every plugin starts enabled — the
// development default the HTTP surface uses.
func BuildManager(reg *plugin.Registry, fanout int, enableAll bool) (*plugin.Manager, error) {
	m := plugin.NewManager(fanout)
	for _, meta := range reg.List() {
		f, ok := reg.Get(meta.ID)
		if !ok {
			continue
		}
		if err := m.RegisterPlugin(f()); err != nil {
			return nil, err
		}
		if enableAll {
			if err := m.Enable(meta.ID); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}
