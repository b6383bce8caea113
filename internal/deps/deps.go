package deps

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external dependency cuemark relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// CheckPythonModule reports whether the given module imports cleanly under the
// configured Python interpreter.
func CheckPythonModule(ctx context.Context, pythonPath, module string) Status {
	status := Status{
		Name:        module,
		Command:     pythonPath,
		Description: fmt.Sprintf("Python module %q", module),
	}
	pythonPath = strings.TrimSpace(pythonPath)
	if pythonPath == "" {
		status.Detail = "python interpreter not configured"
		return status
	}
	if _, err := exec.LookPath(pythonPath); err != nil {
		status.Detail = fmt.Sprintf("python binary %q not found", pythonPath)
		return status
	}
	cmd := exec.CommandContext(ctx, pythonPath, "-c", fmt.Sprintf("import %s", module)) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		status.Detail = firstLine(string(output))
		if status.Detail == "" {
			status.Detail = err.Error()
		}
		return status
	}
	status.Available = true
	return status
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
