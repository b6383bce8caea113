package interpreter

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Plan is the structured response generated from a natural-language request.
// A plan either carries operations to run against the bridge or an error with
// a suggested manual alternative, never both.
type Plan struct {
	Version    string      `json:"version"`
	Target     *Target     `json:"target,omitempty"`
	Operations []Operation `json:"operations,omitempty"`
	Error      string      `json:"error,omitempty"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// Target names the project and timeline the plan applies to.
type Target struct {
	Project  string `json:"project"`
	Timeline string `json:"timeline,omitempty"`
}

// Operation is one bridge call with its parameters.
type Operation struct {
	Op     string          `json:"op"`
	Params json.RawMessage `json:"params,omitempty"`
}

// knownOperations lists every bridge operation the planner may emit.
var knownOperations = map[string]bool{
	"import_media":       true,
	"append_to_timeline": true,
	"create_timeline":    true,
	"add_marker":         true,
	"delete_marker":      true,
	"clear_markers":      true,
	"add_track":          true,
	"set_track_name":     true,
	"enable_track":       true,
	"lock_track":         true,
	"add_render_job":     true,
	"start_render":       true,
	"set_timeline":       true,
	"duplicate_timeline": true,
	"export_timeline":    true,
}

// IsRefusal reports whether the plan declines the request instead of
// proposing operations.
func (p *Plan) IsRefusal() bool {
	return p.Error != ""
}

// Validate checks the plan for structural problems before execution.
func (p *Plan) Validate() error {
	if p.Version == "" {
		return fmt.Errorf("plan missing version")
	}
	if p.IsRefusal() {
		if len(p.Operations) > 0 {
			return fmt.Errorf("error plan must not carry operations")
		}
		return nil
	}
	if len(p.Operations) == 0 {
		return fmt.Errorf("plan has no operations")
	}
	for i, op := range p.Operations {
		if op.Op == "" {
			return fmt.Errorf("operation %d missing op name", i)
		}
		if !knownOperations[op.Op] {
			return fmt.Errorf("operation %d: unsupported operation %q", i, op.Op)
		}
	}
	return nil
}

// extractJSON strips a surrounding markdown code fence from a model response.
func extractJSON(text string) string {
	trimmed := strings.TrimSpace(text)

	body, found := strings.CutPrefix(trimmed, "```json")
	if !found {
		body, found = strings.CutPrefix(trimmed, "```")
	}
	if found {
		if end := strings.LastIndex(body, "```"); end >= 0 {
			return strings.TrimSpace(body[:end])
		}
	}
	return trimmed
}

// ParsePlan decodes and validates a model response.
func ParsePlan(response string) (*Plan, error) {
	var plan Plan
	if err := json.Unmarshal([]byte(extractJSON(response)), &plan); err != nil {
		return nil, fmt.Errorf("parse response as plan: %w", err)
	}
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}
	return &plan, nil
}
