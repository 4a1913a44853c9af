package main

import (
	"github.com/rotisserie/eris"

	"github.com/constructai/estimator-cli/internal/costtab"
	"github.com/constructai/estimator-cli/internal/plugin"
	"github.com/constructai/estimator-cli/internal/plugins"
	"github.com/constructai/estimator-cli/pkg/anthropic"
)

// estimatorEnv bundles the wired plugin registry and manager for a command
// invocation.
type estimatorEnv struct {
	Registry *plugin.Registry
	Manager  *plugin.Manager
	Rates    costtab.Rates
}

// initEstimator wires the LLM client, rate tables, registry and manager from
// config. When enableAll is false only the configured enabled list starts
// enabled.
func initEstimator(enableAll bool) (*estimatorEnv, error) {
	rates, err := costtab.LoadRates(cfg.Estimator.RatesFile)
	if err != nil {
		return nil, err
	}

	client := anthropic.NewRateLimitedClient(
		anthropic.NewClient(cfg.Anthropic.Key),
		cfg.Anthropic.RPS,
		cfg.Anthropic.Burst,
	)

	deps := plugins.Deps{
		AI: client,
		Opts: plugin.LLMOptions{
			Model:       cfg.Anthropic.Model,
			MaxTokens:   cfg.Anthropic.MaxTokens,
			Temperature: cfg.Anthropic.Temperature,
			CharBudget:  cfg.Estimator.CharBudget,
		},
		Rates: rates,
	}

	reg := plugin.NewRegistry()
	if err := plugins.RegisterAll(reg, deps); err != nil {
		return nil, eris.Wrap(err, "register plugins")
	}

	mgr, err := plugins.BuildManager(reg, cfg.Estimator.Fanout, enableAll)
	if err != nil {
		return nil, eris.Wrap(err, "build manager")
	}
	if !enableAll {
		for _, id := range cfg.Estimator.Enabled {
			if err := mgr.Enable(id); err != nil {
				return nil, eris.Wrap(err, "enable configured plugin")
			}
		}
	}

	return &estimatorEnv{Registry: reg, Manager: mgr, Rates: rates}, nil
}
