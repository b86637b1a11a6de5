package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/presentation/tapeview"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/spf13/cobra"
)

func newRunsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Manage stored runs",
	}
	cmd.AddCommand(newRunsListCmd(a), newRunsInspectCmd(a), newRunsRemoveCmd(a))
	return cmd
}

func newRunsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List stored runs",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			backend, err := cli.OpenBackend(ctx, a.cfg)
			if err != nil {
				return err
			}
			defer backend.Close()

			ids, err := backend.Store.List(ctx)
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "no stored runs")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tMACHINE\tSTATUS\tSTEPS\tCREATED")
			for _, id := range ids {
				rec, err := backend.Store.Load(ctx, id)
				if err != nil {
					a.logger.Warn("skipping unreadable run", "id", id, "error", err)
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", rec.ID, rec.Machine, rec.Status, rec.Steps, rec.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			return w.Flush()
		},
	}
}

func newRunsInspectCmd(a *app) *cobra.Command {
	var jsonMode bool

	cmd := &cobra.Command{
		Use:   "inspect <id>",
		Short: "Show a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			backend, err := cli.OpenBackend(ctx, a.cfg)
			if err != nil {
				return err
			}
			defer backend.Close()

			rec, err := backend.Store.Load(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonMode {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rec)
			}
			fmt.Fprintf(out, "ID:      %s\nMachine: %s\nStatus:  %s\nSteps:   %d\nCreated: %s\n",
				rec.ID, rec.Machine, rec.Status, rec.Steps, rec.CreatedAt.Format("2006-01-02 15:04:05"))
			return tapeview.NewPrinter(out, cli.UseColor(a.cfg, out)).Print(domain.FrameOf(rec, rec.Blank))
		},
	}
	cmd.Flags().BoolVar(&jsonMode, "json", false, "Print the record as JSON")
	return cmd
}

func newRunsRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"delete"},
		Short:   "Delete stored runs",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			backend, err := cli.OpenBackend(ctx, a.cfg)
			if err != nil {
				return err
			}
			defer backend.Close()

			for _, id := range args {
				if err := backend.Store.Delete(ctx, id); err != nil {
					return fmt.Errorf("delete %s: %w", id, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
			}
			return nil
		},
	}
}
