// Package plugin defines the analysis-plugin contract and the registry and
// manager that orchestrate plugins over construction document text.
package plugin

import (
	"context"
	"strings"

	"github.com/constructai/estimator-cli/internal/model"
)

// Plugin is the contract every domain analyzer implements. Analyze produces
// the raw domain mapping (typically via an LLM call); FormatResults
// post-processes it, backfilling cost estimates where the domain calculator
// knows how. FormatResults must pass failed results through untouched.
type Plugin interface {
	// Metadata returns the plugin's immutable descriptor.
	Metadata() model.PluginMetadata

	// ValidateInput reports whether the text is analyzable. The default
	// policy is non-empty after trimming whitespace (see ValidTextInput).
	ValidateInput(text string) bool

	// Analyze extracts the domain mapping from the text. Transport or
	// upstream failures surface as the returned error; unparseable upstream
	// content surfaces as a failure Result.
	Analyze(ctx context.Context, text string, analysisCtx map[string]any) (model.Result, error)

	// Prompts exposes the prompt templates the plugin sends upstream.
	Prompts() map[string]string

	// FormatResults normalizes the raw result, computing cost_estimates
	// when the analysis did not already carry them.
	FormatResults(res model.Result) model.Result
}

// Factory constructs a plugin instance. The registry stores factories rather
// than instances so callers control instantiation and no reflection-based
// class loading is needed.
type Factory func() Plugin

// ValidTextInput is the default ValidateInput policy: text must be non-empty
// after stripping whitespace.
func ValidTextInput(text string) bool {
	return strings.TrimSpace(text) != ""
}
