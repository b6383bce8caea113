package interpreter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"cuemark/internal/config"
	"cuemark/internal/logging"
	"cuemark/internal/services"
)

// completer is the slice of the OpenAI client the planner needs. Tests
// substitute a canned implementation.
type completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client generates execution plans via an OpenAI-compatible chat endpoint.
type Client struct {
	api     completer
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

// New builds a planning client from the LLM settings. An absent API key is a
// configuration error unless the provider is a local endpoint that skips auth.
func New(cfg config.LLMConfig, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" && cfg.Provider != "lmstudio" {
		return nil, services.Wrap(services.ErrConfiguration, "interpreter", "new",
			"no API key configured; set llm.api_key or CUEMARK_OPENAI_API_KEY", nil)
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Client{
		api:     openai.NewClientWithConfig(clientConfig),
		model:   cfg.Model,
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		logger:  logger.With(logging.FieldComponent, "interpreter"),
	}, nil
}

// WithCompleter replaces the chat backend. Test hook.
func (c *Client) WithCompleter(api completer) {
	c.api = api
}

// GeneratePlan asks the model for an execution plan answering the request
// against the given editor context.
func (c *Client) GeneratePlan(ctx context.Context, editorContext json.RawMessage, request string) (*Plan, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	prompt := BuildPrompt(editorContext, request)
	c.logger.Debug("requesting plan", "model", c.model, "prompt_bytes", len(prompt))

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: 4096,
	})
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "interpreter", "generate-plan",
			"chat completion request failed", err)
	}
	if len(resp.Choices) == 0 {
		return nil, services.Wrap(services.ErrExternalTool, "interpreter", "generate-plan",
			"model returned no choices", nil)
	}

	plan, err := ParsePlan(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "interpreter", "generate-plan",
			fmt.Sprintf("model response rejected: %v", err), nil)
	}

	if plan.IsRefusal() {
		c.logger.Info("planner declined request", "reason", plan.Error)
	} else {
		c.logger.Debug("plan generated", "operations", len(plan.Operations))
	}
	return plan, nil
}
