package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"jjcolor/internal/prefs"
	"jjcolor/internal/viewer"
)

var viewNoWatch bool

var viewCmd = &cobra.Command{
	Use:   "view FILE",
	Short: "Open a grammar file in the terminal viewer",
	Long: `Open FILE read-only. The status line shows the token category and the
classifier's context stack under the caret; the delimiter matching the one
under the caret is highlighted. The file and the config are watched: edits
are re-highlighted from the first changed line and theme changes apply live.`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)

	viewCmd.Flags().BoolVar(&viewNoWatch, "no-watch", false, "do not reload on file or config changes")
}

func runView(_ *cobra.Command, args []string) error {
	t, err := loadTheme()
	if err != nil {
		return err
	}

	hub := prefs.NewHub()
	defer hub.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stop := t.Listen(ctx, hub)
	defer stop()

	viewCfg := cfg
	if viewNoWatch {
		viewCfg.Viewer.Watch = false
	}

	model, err := viewer.New(viewer.Options{
		Path:       args[0],
		Lang:       langID,
		ConfigPath: configPath,
		Config:     viewCfg,
		Theme:      t,
		Hub:        hub,
		Docs:       newDocumentCache(),
	})
	if err != nil {
		return err
	}
	defer model.Close()

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running viewer: %w", err)
	}
	return nil
}
