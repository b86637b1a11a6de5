package main

import (
	"context"
	"fmt"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/spf13/cobra"
)

func newGraphCmd(a *app) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "graph <machine>",
		Short: "Export the state diagram of a machine",
		Long: `Outputs a Mermaid state diagram of the machine. With --input the machine is
run first and the states it visited are highlighted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := cli.LoadEngine(args[0], a.cfg, a.logger)
			if err != nil {
				return err
			}

			var overlay *graph.Overlay
			if cmd.Flags().Changed("input") {
				tape, err := runner.SanitizeInput(input, eng.Machine().Symbols.Names())
				if err != nil {
					return err
				}
				if overlay, err = trace(cmd.Context(), eng, tape); err != nil {
					return err
				}
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(eng.Machine(), overlay))
			return err
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "Run on this tape and highlight visited states")
	return cmd
}

// trace runs eng on tape and collects the states it occupied, in order of first visit.
func trace(ctx context.Context, eng *turing.Engine, tape []string) (*graph.Overlay, error) {
	run, err := eng.NewRun(tape)
	if err != nil {
		return nil, err
	}
	states := eng.Machine().States
	overlay := &graph.Overlay{}
	seen := map[string]bool{}
	visit := func() {
		name := states.Name(run.State().State)
		if !seen[name] {
			seen[name] = true
			overlay.Visited = append(overlay.Visited, name)
		}
		overlay.Current = name
	}

	visit()
	for !run.Status().Terminal() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		run.StepContext(ctx)
		visit()
	}
	return overlay, nil
}
