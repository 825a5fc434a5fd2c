package services

import (
	"context"
	"fmt"

	"omal-editor/internal/languages"
	"omal-editor/internal/runner"
)

// ExecutionService resolves language names and starts runs.
type ExecutionService struct {
	registry *languages.Registry
	runner   *runner.Runner
}

func NewExecutionService(registry *languages.Registry, r *runner.Runner) *ExecutionService {
	return &ExecutionService{
		registry: registry,
		runner:   r,
	}
}

func (es *ExecutionService) Languages() []string {
	return es.registry.Names()
}

// Extensions lists the source extensions of every language.
func (es *ExecutionService) Extensions() []string {
	return es.registry.Extensions()
}

func (es *ExecutionService) DefaultLanguage() string {
	return es.registry.Default().Name
}

// Start begins running source with the named language.
func (es *ExecutionService) Start(ctx context.Context, language, source string, allowShell bool) (*runner.Job, error) {
	lang, ok := es.registry.Lookup(language)
	if !ok {
		return nil, fmt.Errorf("unknown language %q", language)
	}
	return es.runner.Start(ctx, runner.Request{
		Language:   lang,
		Source:     source,
		AllowShell: allowShell,
	}), nil
}
