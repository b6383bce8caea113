package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cuemark/internal/deps"
	"cuemark/internal/services"
)

type doctorCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
}

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check editor, Python, bridge, and analysis tool availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			checks := []doctorCheck{}
			report := deps.CheckAudio(cmd.Context(), cfg.Resolve.PythonPath, cfg.AubioBinary(), cfg.FFmpegBinary())

			pythonCheck := doctorCheck{Name: "python", Status: "ok", Message: "available", Path: cfg.Resolve.PythonPath}
			if !report.Python.Available {
				pythonCheck.Status = "error"
				pythonCheck.Message = report.Python.Detail
			}
			checks = append(checks, pythonCheck)

			client, err := ctx.bridgeClient()
			if err != nil {
				return err
			}
			scriptCheck := doctorCheck{Name: "bridge_script", Status: "ok", Message: "found", Path: client.ScriptPath()}
			if _, statErr := os.Stat(client.ScriptPath()); statErr != nil {
				scriptCheck.Status = "error"
				scriptCheck.Message = "not found"
			}
			checks = append(checks, scriptCheck)

			resolveCheck := doctorCheck{Name: "resolve", Status: "ok"}
			if info, connErr := client.CheckConnection(cmd.Context()); connErr == nil {
				resolveCheck.Message = fmt.Sprintf("%s %s", info.Product, info.Version)
			} else if services.IsFatal(connErr) {
				resolveCheck.Status = "warning"
				resolveCheck.Message = connErr.Error()
			} else {
				resolveCheck.Status = "error"
				resolveCheck.Message = connErr.Error()
			}
			checks = append(checks, resolveCheck)

			beatnetCheck := doctorCheck{Name: "beatnet", Status: "ok", Message: "available"}
			if !report.BeatNet.Available {
				beatnetCheck.Status = "warning"
				beatnetCheck.Message = "not found (high-accuracy analysis unavailable)"
			}
			checks = append(checks, beatnetCheck)

			aubioCheck := doctorCheck{Name: "aubio", Status: "ok", Message: "available"}
			if !report.Aubio.Available {
				aubioCheck.Status = "warning"
				aubioCheck.Message = "not found (fallback analysis unavailable)"
			}
			checks = append(checks, aubioCheck)

			ffmpegCheck := doctorCheck{Name: "ffmpeg", Status: "ok", Message: "available"}
			if !report.FFmpeg.Available {
				ffmpegCheck.Status = "warning"
				ffmpegCheck.Message = "not found (required for fallback analysis)"
			}
			checks = append(checks, ffmpegCheck)

			if jsonOut {
				return writeJSON(cmd, map[string]any{"checks": checks})
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintln(out, "Cuemark Doctor")
			fmt.Fprintln(out)
			failed := false
			for _, check := range checks {
				kind := statusOK
				switch check.Status {
				case "warning":
					kind = statusWarn
				case "error":
					kind = statusError
					failed = true
				}
				fmt.Fprintln(out, renderCheckLine(check.Name, kind, check.Message, colorize))
				if check.Path != "" {
					fmt.Fprintf(out, "    Path: %s\n", check.Path)
				}
			}
			if !report.HighAccuracyAvailable() && !report.FallbackAvailable() {
				fmt.Fprintln(out)
				fmt.Fprintln(out, report.Remedy())
				failed = true
			}
			if failed {
				return fmt.Errorf("one or more checks failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit check results as JSON")
	return cmd
}
