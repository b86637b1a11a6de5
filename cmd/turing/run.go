package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/pkg/format"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/spf13/cobra"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		input    string
		trace    bool
		jsonMode bool
		save     bool
		parallel int
	)

	cmd := &cobra.Command{
		Use:   "run <machine> [input-file...]",
		Short: "Run a machine on an input tape",
		Long: `Runs the machine on a tape given with --input or read from an input file,
then prints the status, the number of steps and the final tape.
With several input files the runs execute in parallel.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if input != "" && len(args) > 1 {
				return errors.New("--input and input files cannot be used together")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			eng, err := cli.LoadEngine(args[0], a.cfg, a.logger)
			if err != nil {
				return err
			}
			alphabet := eng.Machine().Symbols.Names()

			out := cmd.OutOrStdout()
			var handler runner.Handler = runner.NewTextHandler(out, cli.UseColor(a.cfg, out))
			if jsonMode {
				handler = runner.NewJSONHandler(out)
			}
			opts := []runner.Option{
				runner.WithHandler(handler),
				runner.WithLogger(a.logger),
				runner.WithTrace(trace),
				runner.WithParallelism(parallel),
			}
			if save {
				backend, err := cli.OpenBackend(ctx, a.cfg)
				if err != nil {
					return err
				}
				defer backend.Close()
				opts = append(opts, runner.WithStore(backend.Store))
			}
			r := runner.NewRunner(opts...)

			if len(args) > 2 {
				inputs := make([][]string, 0, len(args)-1)
				for _, path := range args[1:] {
					tape, err := format.LoadInput(path, alphabet)
					if err != nil {
						return err
					}
					inputs = append(inputs, tape)
				}
				_, err := r.RunBatch(ctx, eng, inputs)
				return err
			}

			tape, err := readTape(input, args[1:], alphabet)
			if err != nil {
				return err
			}
			rec, err := r.Run(ctx, eng, tape)
			if errors.Is(err, context.Canceled) {
				fmt.Fprintf(cmd.ErrOrStderr(), "interrupted after %d steps\n", rec.Steps)
				return nil
			}
			if err == nil && save {
				fmt.Fprintf(cmd.ErrOrStderr(), "saved run %s\n", rec.ID)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Input tape as whitespace separated symbols")
	cmd.Flags().BoolVar(&trace, "trace", false, "Print the tape before every step")
	cmd.Flags().BoolVar(&jsonMode, "json", false, "Emit JSON lines instead of text")
	cmd.Flags().BoolVar(&save, "save", false, "Persist the run record in the configured store")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", runner.DefaultParallelism, "Concurrent runs when several input files are given")
	return cmd
}

// readTape picks the tape from --input or the single input file. No tape is
// an empty (all blank) tape.
func readTape(input string, files []string, alphabet []string) ([]string, error) {
	if len(files) == 1 {
		return format.LoadInput(files[0], alphabet)
	}
	return runner.SanitizeInput(input, alphabet)
}
