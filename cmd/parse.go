package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rushsh/rush/core/syntax"
)

var tokensOnly bool

// parseCmd dumps the token stream or command tree for a line, for
// debugging the grammar without executing anything.
var parseCmd = &cobra.Command{
	Use:   "parse LINE...",
	Short: "Show how a command line parses, without running it.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		line := strings.Join(args, " ")

		if tokensOnly {
			tokens, err := syntax.NewLexer(line).Tokens()
			if err != nil {
				return err
			}
			for _, tok := range tokens {
				fmt.Fprintln(cmd.OutOrStdout(), tok)
			}
			return nil
		}

		tree, err := syntax.Parse(line)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), syntax.Dump(tree))
		return nil
	},
}

func init() {
	parseCmd.Flags().BoolVarP(&tokensOnly, "tokens", "t", false, "dump tokens instead of the tree")
	rootCmd.AddCommand(parseCmd)
}
