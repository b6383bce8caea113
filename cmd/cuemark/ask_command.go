package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cuemark/internal/interpreter"
)

func newAskCommand(ctx *commandContext) *cobra.Command {
	var run bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "ask <request>",
		Short: "Turn a natural-language editing request into an execution plan",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			client, err := ctx.bridgeClient()
			if err != nil {
				return err
			}

			planner, err := interpreter.New(cfg.GetLLM(), logger)
			if err != nil {
				return err
			}

			editorContext, err := client.ContextJSON(cmd.Context())
			if err != nil {
				return err
			}

			request := strings.Join(args, " ")
			plan, err := planner.GeneratePlan(cmd.Context(), editorContext, request)
			if err != nil {
				return err
			}

			if plan.IsRefusal() {
				if jsonOut {
					return writeJSON(cmd, plan)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Cannot fulfill request: %s\n", plan.Error)
				if plan.Suggestion != "" {
					fmt.Fprintf(out, "Suggestion: %s\n", plan.Suggestion)
				}
				return nil
			}

			if !run {
				return writeJSON(cmd, plan)
			}

			out := cmd.OutOrStdout()
			for i, op := range plan.Operations {
				var params any
				if len(op.Params) > 0 {
					if err := json.Unmarshal(op.Params, &params); err != nil {
						return fmt.Errorf("operation %d: decode params: %w", i, err)
					}
				}
				var result json.RawMessage
				if err := client.Execute(cmd.Context(), op.Op, params, &result); err != nil {
					return fmt.Errorf("operation %d (%s): %w", i, op.Op, err)
				}
				fmt.Fprintf(out, "[%d/%d] %s ok\n", i+1, len(plan.Operations), op.Op)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&run, "run", false, "Execute the generated plan instead of printing it")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit refusal plans as JSON")
	return cmd
}
