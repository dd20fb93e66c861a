package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"jjcolor/internal/config"
	"jjcolor/internal/highlighter"
	"jjcolor/internal/lang"
	"jjcolor/internal/log"
	"jjcolor/internal/theme"
)

func init() {
	// Query the terminal background before any bubbletea program starts so
	// the OSC 11 reply cannot race the program's input loop.
	_ = lipgloss.HasDarkBackground()
}

var (
	version    = "dev"
	cfgFile    string
	debugFlag  bool
	cfg        config.Config
	configPath string
	configErr  error
	langFlag   string
	langID     lang.ID
	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "jjcolor",
	Short: "Color and inspect JavaCC, JJTree and JTB grammar files",
	Long: `jjcolor classifies JavaCC, JJTree and JTB grammars into semantic token
categories, renders them with a chroma color scheme and matches their
delimiters. Plain .java companion files are colored through tree-sitter.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if logCleanup != nil {
			logCleanup()
			logCleanup = nil
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .jjcolor/config.yaml, then ~/.config/jjcolor/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs (also enabled by JJCOLOR_DEBUG)")
	rootCmd.PersistentFlags().String("theme", "", "chroma style name, overrides the config")
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "",
		"input kind instead of detecting it: javacc, jjtree, jtb, java or plain")

	_ = viper.BindPFlag("theme", rootCmd.PersistentFlags().Lookup("theme"))
}

func initConfig() {
	configPath = config.Resolve(cfgFile)
	cfg, configErr = config.Load(viper.GetViper(), configPath)
}

// setup surfaces config errors and starts logging. The viewer owns the
// terminal, so it logs through bubbletea.
func setup(cmd *cobra.Command, _ []string) error {
	if configErr != nil {
		return configErr
	}
	langID = ""
	if langFlag != "" {
		id, ok := lang.Parse(langFlag)
		if !ok {
			return fmt.Errorf("invalid --lang %q", langFlag)
		}
		langID = id
	}
	if os.Getenv("JJCOLOR_DEBUG") == "" && !debugFlag {
		return nil
	}

	logPath := os.Getenv("JJCOLOR_LOG")
	if logPath == "" {
		logPath = cfg.Log.File
	}

	var err error
	if cmd.Name() == "view" {
		logCleanup, err = log.InitWithTeaLog(logPath, "jjcolor")
	} else {
		logCleanup, err = log.Init(logPath)
	}
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
		log.SetMinLevel(level)
	}
	log.Info(log.CatConfig, "jjcolor starting", "command", cmd.Name(), "config", configPath, "theme", cfg.Theme)
	return nil
}

func loadTheme() (*theme.Theme, error) {
	t, err := theme.Load(cfg.Theme, cfg.Categories)
	if err != nil {
		return nil, fmt.Errorf("loading theme: %w", err)
	}
	return t, nil
}

func newDocumentCache() *highlighter.DocumentCache {
	return highlighter.NewDocumentCache(highlighter.DefaultDocumentExpiration, highlighter.DefaultDocumentCleanup)
}

// loadDocument loads path through docs, applying --lang.
func loadDocument(docs *highlighter.DocumentCache, path string) (*highlighter.Document, error) {
	doc, err := docs.Load(path)
	if err != nil {
		return nil, err
	}
	if langID != "" {
		doc = doc.WithLang(langID)
	}
	return doc, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
