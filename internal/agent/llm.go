package agent

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/charmbracelet/log"
	"github.com/lox/cardbench/internal/game"
	"github.com/lox/cardbench/internal/llm"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

var prompts = template.Must(template.ParseFS(promptFS, "prompts/*.tmpl"))

var (
	// ErrBadResponse is returned when a model reply is not the expected JSON
	ErrBadResponse = errors.New("malformed model response")
	// ErrActionIndex is returned when a model picks an index outside the legal list
	ErrActionIndex = errors.New("action index out of range")
)

// Chatter sends a conversation to a model and returns its reply
type Chatter interface {
	Chat(ctx context.Context, model string, messages []llm.Message) (string, error)
}

// LLM asks a language model to choose each move. It keeps the whole
// conversation for the match so the model sees its earlier reasoning.
type LLM struct {
	name     string
	model    string
	client   Chatter
	logger   *log.Logger
	messages []llm.Message
	pending  []string // events from turns the model never answered
}

// response is the JSON shape the model is told to reply with
type response struct {
	Thoughts    string `json:"thoughts"`
	ActionIndex *int   `json:"action_index"`
}

// NewLLM creates an agent that plays gameName with the given rules text
func NewLLM(name, model, gameName, rules string, client Chatter, logger *log.Logger) (*LLM, error) {
	var system bytes.Buffer
	err := prompts.ExecuteTemplate(&system, "system.tmpl", struct{ Game, Rules string }{gameName, rules})
	if err != nil {
		return nil, fmt.Errorf("render system prompt: %w", err)
	}
	return &LLM{
		name:     name,
		model:    model,
		client:   client,
		logger:   game.DiscardLogger(logger),
		messages: []llm.Message{{Role: llm.RoleSystem, Content: system.String()}},
	}, nil
}

func (a *LLM) Name() string {
	return a.name
}

// Messages returns a copy of the conversation so far
func (a *LLM) Messages() []llm.Message {
	return append([]llm.Message(nil), a.messages...)
}

func (a *LLM) SelectAction(ctx context.Context, newEvents []string, view game.View, legal []game.Action) (game.Action, error) {
	if len(legal) == 0 {
		return nil, ErrNoLegalActions
	}
	var state string
	if view != nil {
		state = view.String()
	}
	events := append(a.pending, newEvents...)
	var user bytes.Buffer
	err := prompts.ExecuteTemplate(&user, "user.tmpl", struct {
		Events  []string
		State   string
		Actions []game.Action
	}{events, state, legal})
	if err != nil {
		return nil, fmt.Errorf("render user prompt: %w", err)
	}

	a.messages = append(a.messages, llm.Message{Role: llm.RoleUser, Content: user.String()})
	reply, err := a.client.Chat(ctx, a.model, a.messages)
	if err != nil {
		// Unanswered turns are dropped so user and assistant keep alternating;
		// their events go out with the next turn instead.
		a.messages = a.messages[:len(a.messages)-1]
		a.pending = events
		return nil, fmt.Errorf("%s: %w", a.name, err)
	}
	a.pending = nil
	a.messages = append(a.messages, llm.Message{Role: llm.RoleAssistant, Content: reply})

	var r response
	if err := json.Unmarshal([]byte(stripFences(reply)), &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if r.ActionIndex == nil {
		return nil, fmt.Errorf("%w: missing action_index", ErrBadResponse)
	}
	i := *r.ActionIndex
	if i < 0 || i >= len(legal) {
		return nil, fmt.Errorf("%w: %d of %d", ErrActionIndex, i, len(legal))
	}
	a.logger.Debug("Model choice", "agent", a.name, "action", legal[i], "thoughts", r.Thoughts)
	return legal[i], nil
}

// stripFences removes a surrounding markdown code fence (``` or ```json)
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
