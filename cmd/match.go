package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"jjcolor/internal/matcher"
)

var matchCmd = &cobra.Command{
	Use:   "match FILE OFFSET",
	Short: "Find the delimiter matching the one before OFFSET",
	Long: `Look at the character just before OFFSET (a caret position, counted
in characters). If it is one of {}[]()<> print the offsets of both ends of
the balanced pair, skipping brackets inside double-quoted strings.`,
	Args: cobra.ExactArgs(2),
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	caret, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid offset %q: %w", args[1], err)
	}
	doc, err := newDocumentCache().Load(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	pair, ok := matcher.New().Match(doc.Doc, caret)
	if !ok {
		_, _ = fmt.Fprintln(out, "no match")
		return nil
	}
	offset, length := pair.Region()
	_, _ = fmt.Fprintf(out, "open %d close %d anchor %s region %d+%d\n", pair.Open, pair.Close, pair.Anchor, offset, length)
	return nil
}
