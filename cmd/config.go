package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jjcolor/internal/config"
	"jjcolor/internal/theme"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the jjcolor configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [PATH]",
	Short: "Write a commented default config",
	Long: `Write the default configuration, with comments, to PATH or to
` + config.LocalPath + `. An existing file is kept unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.LocalPath
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil && !configForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.WriteDefaultConfig(path); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

var configThemeCmd = &cobra.Command{
	Use:   "set-theme NAME",
	Short: "Store the theme in the config file, keeping its comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := theme.Load(args[0], nil); err != nil {
			return err
		}
		path := configPath
		if path == "" {
			path = config.LocalPath
			if err := config.WriteDefaultConfig(path); err != nil {
				return err
			}
		}
		if err := config.SaveTheme(path, args[0]); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "theme %s saved to %s\n", args[0], path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configThemeCmd)

	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing file")
}
