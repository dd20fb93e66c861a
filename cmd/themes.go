package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"jjcolor/internal/scanner"
	"jjcolor/internal/theme"
)

var themesCategories bool

var themesCmd = &cobra.Command{
	Use:   "themes [QUERY]",
	Short: "List the available color schemes",
	Long: `List the chroma styles usable as "theme". The active one is marked
with '*'. With --categories, show how the active theme colors each token
category instead. A QUERY lists only the closest names.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)

	themesCmd.Flags().BoolVar(&themesCategories, "categories", false, "show the active theme's category colors")
}

func runThemes(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	t, err := loadTheme()
	if err != nil {
		return err
	}

	if themesCategories {
		for _, cat := range scanner.Categories() {
			a := t.Lookup(cat)
			sample := t.Style(cat, false).Render(cat.String())
			_, _ = fmt.Fprintf(out, "%-32s fg=%-8s bg=%-8s %s%s\n", cat, a.Foreground, a.Background, fontFlags(a.Style), sample)
		}
		return nil
	}

	names := theme.Names()
	if len(args) == 1 {
		names = theme.Suggest(args[0], 10)
		if len(names) == 0 {
			return fmt.Errorf("no theme matches %q", args[0])
		}
	}
	for _, name := range names {
		marker := " "
		if name == t.Name() {
			marker = "*"
		}
		_, _ = fmt.Fprintf(out, "%s %s\n", marker, name)
	}
	return nil
}

func fontFlags(s theme.FontStyle) string {
	flags := ""
	if s.Has(theme.Bold) {
		flags += "bold "
	}
	if s.Has(theme.Italic) {
		flags += "italic "
	}
	if s.Has(theme.Underline) {
		flags += "underline "
	}
	return flags
}
