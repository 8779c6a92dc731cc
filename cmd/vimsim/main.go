// Command vimsim runs a compiled Vim regex automaton over a text file.
//
//	vimsim run --automaton testdata/captures.yaml --text input.txt --all
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coregx/vimregex/internal/cli"
)

func main() {
	os.Exit(execute(os.Args[1:]))
}

// execute runs the command line and returns the process exit code.
func execute(args []string) int {
	code := 0
	root := &cobra.Command{
		Use:           "vimsim",
		Short:         "Simulate Vim regex automata over editor text",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCommand(&code))
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "vimsim:", err)
		return 2
	}
	return code
}

func newRunCommand(code *int) *cobra.Command {
	var (
		cfg   cli.Config
		color string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Match an automaton against a text file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, err := cli.ParseColorMode(color)
			if err != nil {
				return err
			}
			cfg.Color = mode
			*code = cli.Run(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&cfg.Automaton, "automaton", "a", "", "YAML automaton file")
	f.StringVarP(&cfg.TextFile, "text", "t", "", "text file to search")
	f.IntVarP(&cfg.Start, "start", "s", -1, "match anchored at this character offset instead of searching")
	f.BoolVarP(&cfg.IgnoreCase, "ignore-case", "i", false, "case-insensitive matching")
	f.BoolVar(&cfg.All, "all", false, "report every non-overlapping match")
	f.IntSliceVar(&cfg.Cursors, "cursor", nil, "cursor offset (repeatable)")
	f.StringSliceVar(&cfg.Marks, "mark", nil, "mark as name=offset (repeatable)")
	f.StringVar(&cfg.Selection, "selection", "", "visual selection as start:end")
	f.StringVar(&cfg.Strategy, "strategy", "auto", "simulation strategy: auto, backtrack or dfa")
	f.IntVar(&cfg.MaxMatches, "max-matches", 0, "stop --all after this many matches (0 = unlimited)")
	f.BoolVar(&cfg.NoWrap, "nowrapscan", false, "do not wrap the search around the end of the text")
	f.StringVar(&color, "color", "auto", "color output: auto, always or never")
	f.BoolVarP(&cfg.Verbose, "verbose", "v", false, "log engine decisions")
	_ = cmd.MarkFlagRequired("automaton")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}
