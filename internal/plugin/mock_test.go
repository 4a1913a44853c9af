package plugin

import (
	"context"

	"go.uber.org/zap"

	"github.com/constructai/estimator-cli/internal/model"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

// stubPlugin is a configurable in-memory plugin for registry/manager tests.
type stubPlugin struct {
	id         string
	category   model.Category
	version    string
	rejectAll  bool
	analyzeFn  func(ctx context.Context, text string) (model.Result, error)
	formatCall func(res model.Result) model.Result
}

func (s *stubPlugin) Metadata() model.PluginMetadata {
	version := s.version
	if version == "" {
		version = "1.0.0"
	}
	category := s.category
	if category == "" {
		category = model.CategoryGeneral
	}
	return model.PluginMetadata{
		ID:       s.id,
		Name:     s.id,
		Category: category,
		Version:  version,
		Price:    10.0,
	}
}

func (s *stubPlugin) ValidateInput(text string) bool {
	if s.rejectAll {
		return false
	}
	return ValidTextInput(text)
}

func (s *stubPlugin) Prompts() map[string]string {
	return map[string]string{"system_prompt": "stub"}
}

func (s *stubPlugin) Analyze(ctx context.Context, text string, _ map[string]any) (model.Result, error) {
	if s.analyzeFn != nil {
		return s.analyzeFn(ctx, text)
	}
	return model.Success(map[string]any{"plugin": s.id}), nil
}

func (s *stubPlugin) FormatResults(res model.Result) model.Result {
	if s.formatCall != nil {
		return s.formatCall(res)
	}
	return res
}

func stubFactory(id string) Factory {
	return func() Plugin { return &stubPlugin{id: id} }
}
