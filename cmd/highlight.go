package cmd

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"jjcolor/internal/highlighter"
	"jjcolor/internal/log"
	"jjcolor/internal/theme"
)

var (
	highlightColor       string
	highlightLineNumbers bool
)

var highlightCmd = &cobra.Command{
	Use:   "highlight FILE...",
	Short: "Print files with ANSI colors",
	Long: `Print each file colored by token category. Grammar files go through
the classifier, .java files through tree-sitter, anything else is printed
plain. Files are highlighted in parallel by highlight.workers workers.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runHighlight,
}

func init() {
	rootCmd.AddCommand(highlightCmd)

	highlightCmd.Flags().StringVar(&highlightColor, "color", "auto", "color output: auto, always or never")
	highlightCmd.Flags().BoolVarP(&highlightLineNumbers, "line-numbers", "n", false, "prefix lines with their number")
}

func applyColorMode(mode string) error {
	switch mode {
	case "auto":
	case "always":
		lipgloss.SetColorProfile(termenv.TrueColor)
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	default:
		return fmt.Errorf("invalid --color %q (use auto, always or never)", mode)
	}
	return nil
}

type rendered struct {
	text string
	err  error
}

func runHighlight(cmd *cobra.Command, args []string) error {
	if err := applyColorMode(highlightColor); err != nil {
		return err
	}
	t, err := loadTheme()
	if err != nil {
		return err
	}

	h := highlighter.New(highlighter.Config{
		Workers:   cfg.Highlight.Workers,
		CacheSize: cfg.Highlight.CacheSize,
		ChunkSize: cfg.Highlight.ChunkSize,
	})
	defer h.Close()

	results := highlightFiles(h, newDocumentCache(), t, args, cfg.Highlight.Workers)

	out := cmd.OutOrStdout()
	var errs []error
	for i, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		if len(args) > 1 {
			_, _ = fmt.Fprintf(out, "==> %s <==\n", args[i])
		}
		_, _ = fmt.Fprint(out, r.text)
	}
	return errors.Join(errs...)
}

// highlightFiles renders files on a bounded pool; results keep the order
// of paths.
func highlightFiles(h *highlighter.Highlighter, docs *highlighter.DocumentCache, t *theme.Theme, paths []string, workers int) []rendered {
	results := make([]rendered, len(paths))
	tasks := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < max(1, min(workers, len(paths))); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range tasks {
				doc, err := loadDocument(docs, paths[i])
				if err != nil {
					log.Warn(log.CatHighlight, "skipping file", "path", paths[i], "error", err)
					results[i].err = err
					continue
				}
				spans := h.Highlight(highlighter.Request{Lang: doc.Lang, Text: doc.Text, File: doc.Path})
				results[i].text = renderDocument(t, doc, spans, highlightLineNumbers)
			}
		}()
	}

	for i := range paths {
		tasks <- i
	}
	close(tasks)
	wg.Wait()
	return results
}

func renderDocument(t *theme.Theme, doc *highlighter.Document, spans []highlighter.Span, numbers bool) string {
	numStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Palette().Muted))
	lines := highlighter.SplitLines(spans, doc.Doc)

	var b strings.Builder
	for i, line := range lines {
		text := doc.Doc.Line(i)
		if i == len(lines)-1 && text == "" {
			break
		}
		if numbers {
			b.WriteString(numStyle.Render(fmt.Sprintf("%6d ", i+1)))
		}
		runes := []rune(text)
		for _, s := range line {
			b.WriteString(t.Style(s.Cat, false).Render(string(runes[s.Start:s.End])))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
