package main

import (
	"log/slog"

	"github.com/aretw0/turing/internal/cli"
	"github.com/spf13/cobra"
)

// app carries what every command needs once flags are parsed.
type app struct {
	cfg    cli.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	defaults := cli.DefaultConfig()

	root := &cobra.Command{
		Use:   "turing",
		Short: "Turing is a deterministic single-tape Turing machine simulator",
		Long: `Turing compiles machines written as five-field transition rules and runs
them on an unbounded tape, reporting whether they halt accepting, halt
rejecting or hit the step limit.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := cli.LoadConfig(path, cmd.Flags())
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = cli.NewLogger(cfg)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "Config file (default ./"+cli.DefaultConfigFile+" when present)")
	pf.Int("step-limit", defaults.StepLimit, "Maximum number of moving transitions per run")
	pf.String("store", defaults.Store, "Run store: memory, file or redis")
	pf.String("runs-dir", defaults.RunsDir, "Directory of the file store")
	pf.String("redis-url", defaults.RedisURL, "Redis URL of the redis store")
	pf.Bool("debug", false, "Log every transition to stderr")
	pf.Bool("no-color", false, "Disable colored output")

	root.AddCommand(
		newRunCmd(a),
		newValidateCmd(a),
		newTableCmd(a),
		newGraphCmd(a),
		newEncodeCmd(a),
		newDecodeCmd(a),
		newServeCmd(a),
		newMCPCmd(a),
		newRunsCmd(a),
		newVersionCmd(),
	)
	return root
}
