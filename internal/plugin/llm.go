package plugin

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/constructai/estimator-cli/internal/model"
	"github.com/constructai/estimator-cli/pkg/anthropic"
)

// ParseFailureMsg is the failure message for upstream content that could not
// be recovered into JSON.
const ParseFailureMsg = "Could not parse AI response as JSON"

// LLMOptions configures the shared analyze-via-LLM path.
type LLMOptions struct {
	Model string
	// MaxTokens caps the completion length.
	MaxTokens int64
	// Temperature is kept low for deterministic extraction.
	Temperature float64
	// CharBudget truncates the document text sent upstream.
	CharBudget int
}

// AnalyzeText sends the plugin's system prompt plus the (truncated) document
// text to the LLM and parses the response into a Result. Transport failures
// return an error; unparseable content returns a failure Result so callers
// can distinguish UpstreamFailure-as-error from degraded output.
func AnalyzeText(ctx context.Context, client anthropic.Client, opts LLMOptions, systemPrompt, text string) (model.Result, error) {
	if opts.CharBudget > 0 && len(text) > opts.CharBudget {
		text = text[:opts.CharBudget]
	}

	temp := opts.Temperature
	resp, err := client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       opts.Model,
		MaxTokens:   opts.MaxTokens,
		System:      systemPrompt,
		Temperature: &temp,
		Messages: []anthropic.Message{
			{Role: "user", Content: text},
		},
	})
	if err != nil {
		return model.Result{}, eris.Wrap(err, "plugin: llm analyze")
	}

	return ParseResponse(resp.Text()), nil
}

// ParseResponse recovers a JSON object from LLM output: direct parse first,
// then a fenced ```json block or brace-delimited extraction. Anything else
// becomes a failure Result carrying the raw text.
func ParseResponse(text string) model.Result {
	var data map[string]any
	if err := json.Unmarshal([]byte(text), &data); err == nil {
		return model.Success(data)
	}

	if cleaned := cleanJSON(text); cleaned != "" {
		if err := json.Unmarshal([]byte(cleaned), &data); err == nil {
			return model.Success(data)
		}
	}

	return model.FailureRaw(ParseFailureMsg, text)
}

// cleanJSON attempts to extract a JSON object from text that may contain
// markdown code fences or other wrapping.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	// Strip markdown code fences.
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	// Find first { and last }.
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	} else {
		return ""
	}

	return strings.TrimSpace(text)
}
