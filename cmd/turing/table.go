package main

import (
	"fmt"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/presentation/statetable"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/spf13/cobra"
)

func newTableCmd(a *app) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "table <machine>",
		Short: "Print the state table of a machine",
		Long:  `Prints the alphabet, blank symbol, start state, states and rules. Rendered as styled Markdown on a terminal, raw Markdown otherwise.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := cli.LoadEngine(args[0], a.cfg, a.logger)
			if err != nil {
				return err
			}
			md := statetable.Markdown(eng.Machine())

			out := cmd.OutOrStdout()
			if raw || !cli.IsTerminal(out) {
				_, err := fmt.Fprint(out, md)
				return err
			}
			rendered, err := tui.NewRenderer(!cli.UseColor(a.cfg, out))(md)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(out, rendered)
			return err
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print Markdown source even on a terminal")
	return cmd
}
