package plugin

import (
	"context"

	"github.com/constructai/estimator-cli/internal/model"
	"github.com/constructai/estimator-cli/pkg/anthropic"
)

// Extractor is a prompt-only plugin: it sends its system prompt to the LLM
// and returns the structured extraction as-is, with no cost calculator.
// Several analyzers need nothing more than that.
type Extractor struct {
	meta   model.PluginMetadata
	prompt string
	ai     anthropic.Client
	opts   LLMOptions
}

// NewExtractor creates a prompt-only plugin from a descriptor and its system
// prompt.
func NewExtractor(meta model.PluginMetadata, prompt string, ai anthropic.Client, opts LLMOptions) *Extractor {
	return &Extractor{meta: meta, prompt: prompt, ai: ai, opts: opts}
}

func (e *Extractor) Metadata() model.PluginMetadata {
	return e.meta
}

func (e *Extractor) ValidateInput(text string) bool {
	return ValidTextInput(text)
}

func (e *Extractor) Prompts() map[string]string {
	return map[string]string{"system_prompt": e.prompt}
}

func (e *Extractor) Analyze(ctx context.Context, text string, _ map[string]any) (model.Result, error) {
	if !e.ValidateInput(text) {
		return model.Failure("Invalid input text for analysis"), nil
	}
	return AnalyzeText(ctx, e.ai, e.opts, e.prompt, text)
}

// FormatResults is the identity for prompt-only plugins.
func (e *Extractor) FormatResults(res model.Result) model.Result {
	return res
}
