// Package llm is a minimal OpenAI-compatible chat completions client, pointed
// at OpenRouter by default.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// ErrNoAPIKey is returned when no API key is configured
var ErrNoAPIKey = errors.New("OPENROUTER_API_KEY is not set")

// ErrNoChoices is returned when a completion carries no message
var ErrNoChoices = errors.New("no choices returned")

const maxErrorBody = 800

// Config controls the client. It is read from the environment.
type Config struct {
	APIKey  string        `env:"OPENROUTER_API_KEY"`
	BaseURL string        `env:"OPENROUTER_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	Timeout time.Duration `env:"LLM_TIMEOUT"         envDefault:"60s"`
	Title   string        `env:"OPENROUTER_TITLE"    envDefault:"cardbench"`
}

// LoadConfig parses Config from environment variables
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	return cfg, nil
}

// Message is one turn of a chat conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Roles used in conversations
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Client sends chat completion requests. One Client is shared by every LLM
// agent in the process and is safe for concurrent use.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *log.Logger
	clock  quartz.Clock
}

// NewClient creates a client. The API key is checked on first use so a
// process without LLM agents never needs one.
func NewClient(cfg Config, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
		clock:  quartz.NewReal(),
	}
}

// WithClock replaces the clock used to time requests
func (c *Client) WithClock(clock quartz.Clock) *Client {
	c.clock = clock
	return c
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []Message      `json:"messages"`
	ResponseFormat map[string]any `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// Chat sends messages to model and returns the reply content. The model is
// asked for a JSON object.
func (c *Client) Chat(ctx context.Context, model string, messages []Message) (string, error) {
	if c.cfg.APIKey == "" {
		return "", ErrNoAPIKey
	}
	body, err := json.Marshal(chatRequest{
		Model:          model,
		Messages:       messages,
		ResponseFormat: map[string]any{"type": "json_object"},
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	if c.cfg.Title != "" {
		req.Header.Set("X-Title", c.cfg.Title)
	}

	start := c.clock.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat %s: %w", model, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	c.logger.Debug("Chat completion", "model", model, "status", resp.StatusCode, "duration", c.clock.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("chat %s: http %d: %s", model, resp.StatusCode, truncate(string(raw), maxErrorBody))
	}

	var cc chatResponse
	if err := json.Unmarshal(raw, &cc); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(cc.Choices) == 0 {
		return "", ErrNoChoices
	}
	return cc.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
