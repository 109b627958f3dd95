package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/cardbench/internal/agent"
	"github.com/lox/cardbench/internal/llm"
)

// parseAgent reads a roster entry written as type, type:model or
// type:model=name, e.g. "random" or "llm:openai/gpt-4o-mini=mini".
func parseAgent(s string) (agent.Spec, error) {
	var spec agent.Spec
	rest, name, hasName := strings.Cut(s, "=")
	if hasName {
		spec.Name = name
	}
	spec.Type, spec.Model, _ = strings.Cut(rest, ":")
	if err := spec.Validate(); err != nil {
		return agent.Spec{}, fmt.Errorf("agent %q: %w", s, err)
	}
	return spec, nil
}

func parseAgents(entries []string) ([]agent.Spec, error) {
	specs := make([]agent.Spec, 0, len(entries))
	for _, e := range entries {
		spec, err := parseAgent(e)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// newFactory builds an agent factory, connecting to the LLM provider only
// when the roster has an LLM agent in it.
func newFactory(specs []agent.Spec, logger *log.Logger) (*agent.Factory, error) {
	deps := agent.Deps{Logger: logger}
	for _, s := range specs {
		if s.Type != agent.TypeLLM {
			continue
		}
		cfg, err := llm.LoadConfig()
		if err != nil {
			return nil, err
		}
		deps.Chatter = llm.NewClient(cfg, logger.WithPrefix("llm"))
		break
	}
	return agent.NewFactory(deps), nil
}
