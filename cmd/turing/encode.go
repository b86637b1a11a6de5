package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/pkg/encoding"
	"github.com/aretw0/turing/pkg/format"
	"github.com/spf13/cobra"
)

func newEncodeCmd(a *app) *cobra.Command {
	var compact bool

	cmd := &cobra.Command{
		Use:   "encode <machine>",
		Short: "Encode a complete machine as a word over its first two symbols",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := cli.LoadEngine(args[0], a.cfg, a.logger)
			if err != nil {
				return err
			}
			word, err := eng.Encode()
			if err != nil {
				return err
			}
			sep := " "
			if compact {
				sep = ""
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(word, sep))
			return err
		},
	}
	cmd.Flags().BoolVar(&compact, "compact", false, "Join the symbols without spaces")
	return cmd
}

func newDecodeCmd(a *app) *cobra.Command {
	var (
		alphabet string
		yamlOut  bool
		name     string
	)

	cmd := &cobra.Command{
		Use:   "decode <word-file>",
		Short: "Decode a word produced by encode back into a machine",
		Long: `Reads an encoded word from a file ("-" for stdin) and prints the machine in
text format, or YAML with --yaml. States are named q0, q1, ... in encoding order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if args[0] == "-" {
				data, err = io.ReadAll(io.LimitReader(cmd.InOrStdin(), 1<<20))
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return err
			}

			symbols := strings.Fields(alphabet)
			def, err := encoding.Decode(splitWord(string(data)), symbols)
			if err != nil {
				return err
			}
			def.Name = name

			if yamlOut {
				return format.WriteYAML(cmd.OutOrStdout(), def)
			}
			return format.WriteText(cmd.OutOrStdout(), def)
		},
	}
	cmd.Flags().StringVar(&alphabet, "alphabet", "", "Whitespace separated alphabet, blank symbol first")
	cmd.Flags().BoolVar(&yamlOut, "yaml", false, "Print YAML instead of the text format")
	cmd.Flags().StringVar(&name, "name", "", "Name of the decoded machine")
	_ = cmd.MarkFlagRequired("alphabet")
	return cmd
}

// splitWord accepts "0 1 1" as well as "011".
func splitWord(raw string) []string {
	if fields := strings.Fields(raw); len(fields) != 1 {
		return fields
	}
	word := strings.TrimSpace(raw)
	out := make([]string, 0, len(word))
	for _, r := range word {
		out = append(out, string(r))
	}
	return out
}
