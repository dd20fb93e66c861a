package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"jjcolor/internal/highlighter"
	"jjcolor/internal/lang"
	"jjcolor/internal/scanner"
)

var (
	tokensChunk      int
	tokensWhitespace bool
)

var tokensCmd = &cobra.Command{
	Use:   "tokens FILE",
	Short: "Print the classified tokens of a grammar file",
	Long: `Print one line per token: offset, length, category and text, followed
by the classifier's context stack at the end of the file.

The file is scanned in ranges of --chunk characters, or line by line when
--chunk is 0, saving a snapshot at each range start as an editor would.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().IntVar(&tokensChunk, "chunk", -1, "range length (default: highlight.chunk_size)")
	tokensCmd.Flags().BoolVarP(&tokensWhitespace, "whitespace", "w", false, "include whitespace tokens")
}

func runTokens(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(newDocumentCache(), args[0])
	if err != nil {
		return err
	}
	// Unknown kinds are scanned anyway; only Java is known not to be a grammar.
	if doc.Lang == lang.Java {
		return fmt.Errorf("%s is Java source, not a grammar", args[0])
	}

	chunk := tokensChunk
	if chunk < 0 {
		chunk = cfg.Highlight.ChunkSize
	}

	c := scanner.New()
	out := cmd.OutOrStdout()
	for _, tok := range highlighter.Scan(c, doc.Doc, chunk) {
		if tok.Cat == scanner.CatWhitespace && !tokensWhitespace {
			continue
		}
		_, _ = fmt.Fprintf(out, "%6d %4d %-30s %q\n", tok.Offset, tok.Length, tok.Cat, doc.Doc.Slice(tok.Offset, tok.End()))
	}
	_, _ = fmt.Fprintf(out, "stack: %s\n", c.Stack())
	return nil
}
