package main

import (
	"fmt"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate <machine>",
		Short: "Check a machine for undefined cells and unreachable states",
		Long: `Compiles the machine, then reports every (state, symbol) cell without a rule
and every state the start state never reaches. Undefined cells are legal, a
run reaching one halts rejecting; --strict turns them into errors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := cli.LoadEngine(args[0], a.cfg, a.logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rep, err := eng.Validate(strict)
			for _, c := range rep.Missing {
				fmt.Fprintf(out, "undefined: state %q reading %q\n", c.State, c.Symbol)
			}
			for _, s := range rep.Unreachable {
				fmt.Fprintf(out, "unreachable: state %q\n", s)
			}
			if err != nil {
				return fmt.Errorf("%s: %d problem(s)", eng.Name, len(domain.Errors(err)))
			}
			if rep.OK() {
				fmt.Fprintf(out, "%s is valid\n", eng.Name)
			} else {
				fmt.Fprintf(out, "%s compiles; use --strict to reject undefined cells\n", eng.Name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Treat undefined cells as errors")
	return cmd
}
