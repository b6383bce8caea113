package resolve

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"cuemark/internal/config"
	"cuemark/internal/logging"
	"cuemark/internal/services"
)

// Runner executes the bridge process with the given stdin payload and returns
// its stdout and stderr. Injectable for tests.
type Runner func(ctx context.Context, input []byte) (stdout, stderr []byte, err error)

// Client executes commands against the editor bridge.
type Client struct {
	pythonPath string
	scriptPath string
	timeout    time.Duration
	logger     *slog.Logger
	runner     Runner
}

// NewClient constructs a bridge client from configuration.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	c := &Client{
		pythonPath: cfg.Resolve.PythonPath,
		scriptPath: findScriptPath(cfg.Resolve.BridgeScript),
		timeout:    time.Duration(cfg.Resolve.TimeoutSeconds) * time.Second,
		logger:     logging.NewComponentLogger(logger, "resolve"),
	}
	c.runner = c.spawn
	return c
}

// WithRunner sets a custom bridge runner (for testing).
func (c *Client) WithRunner(runner Runner) {
	c.runner = runner
}

// ScriptPath returns the resolved bridge script location.
func (c *Client) ScriptPath() string {
	return c.scriptPath
}

// findScriptPath locates the bridge script next to the executable, then
// relative to the working directory. An absolute path is used as-is.
func findScriptPath(script string) string {
	if filepath.IsAbs(script) {
		return script
	}
	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), script)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	if _, err := os.Stat(script); err == nil {
		if abs, err := filepath.Abs(script); err == nil {
			return abs
		}
	}
	return script
}

type bridgeCommand struct {
	Op        string `json:"op"`
	Params    any    `json:"params,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type bridgeResponse struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

// Execute runs one bridge operation and decodes the result into out when out
// is non-nil.
func (c *Client) Execute(ctx context.Context, op string, params any, out any) error {
	requestID := uuid.NewString()
	ctx = services.WithRequestID(ctx, requestID)
	logger := logging.WithContext(ctx, c.logger)

	input, err := json.Marshal(bridgeCommand{Op: op, Params: params, RequestID: requestID})
	if err != nil {
		return services.Wrap(services.ErrValidation, "resolve", op, "encode command", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	logger.Debug("executing bridge command", logging.String("op", op))
	stdout, stderr, err := c.runner(ctx, input)
	if trimmed := strings.TrimSpace(string(stderr)); trimmed != "" {
		logger.Debug("bridge stderr", logging.String("output", trimmed))
	}
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "resolve", op, "bridge execution failed", err)
	}

	var response bridgeResponse
	if err := json.Unmarshal(bytes.TrimSpace(stdout), &response); err != nil {
		return services.Wrap(services.ErrExternalTool, "resolve", op,
			fmt.Sprintf("parse bridge response %q", truncate(string(stdout), 200)), err)
	}

	if !response.Success {
		return bridgeError(op, response)
	}

	if out != nil && len(response.Result) > 0 {
		if err := json.Unmarshal(response.Result, out); err != nil {
			return services.Wrap(services.ErrExternalTool, "resolve", op, "unexpected result shape", err)
		}
	}
	return nil
}

// bridgeError classifies a failure response. Missing application, project, or
// timeline are preconditions the user must fix before any clip is touched;
// everything else stays recoverable.
func bridgeError(op string, response bridgeResponse) error {
	message := response.Error
	if message == "" {
		message = "unknown error"
	}
	if response.Code != "" {
		message = fmt.Sprintf("[%s] %s", response.Code, message)
	}
	marker := services.ErrExternalTool
	switch response.Code {
	case "RESOLVE_NOT_RUNNING", "NO_PROJECT", "NO_TIMELINE":
		marker = services.ErrConfiguration
	case "NOT_FOUND", "NO_CLIPS":
		marker = services.ErrNotFound
	}
	return services.Wrap(marker, "resolve", op, message, nil)
}

func (c *Client) spawn(ctx context.Context, input []byte) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, c.pythonPath, c.scriptPath) //nolint:gosec
	cmd.Stdin = bytes.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.Bytes(), stderr.Bytes(), fmt.Errorf("spawn %s %s: %w", c.pythonPath, c.scriptPath, err)
	}
	return stdout.Bytes(), stderr.Bytes(), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// ConnectionInfo identifies the running editor instance.
type ConnectionInfo struct {
	Product string `json:"product"`
	Version string `json:"version"`
}

// CheckConnection verifies the editor is running and reachable.
func (c *Client) CheckConnection(ctx context.Context) (ConnectionInfo, error) {
	var info ConnectionInfo
	err := c.Execute(ctx, "check_connection", nil, &info)
	return info, err
}

// ContextJSON returns the editor's full state snapshot as raw JSON: project,
// timeline, tracks, clips, markers, and media pool contents.
func (c *Client) ContextJSON(ctx context.Context) (json.RawMessage, error) {
	var snapshot json.RawMessage
	if err := c.Execute(ctx, "get_context", nil, &snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}
