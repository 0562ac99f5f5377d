package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yuzeguitarist/loveqr/internal/app"
	"github.com/yuzeguitarist/loveqr/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate the YAML config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		force, _ := cmd.Flags().GetBool("force")
		if out == "" {
			out = app.ConfigPath
		}
		if _, err := os.Stat(out); err == nil && !force {
			return fmt.Errorf("%s exists (use --force to overwrite)", out)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		y, err := config.Default().YAML()
		if err != nil {
			return err
		}
		if err := app.EnsureDir(filepath.Dir(out), 0755); err != nil {
			return err
		}
		if err := app.AtomicWriteFile(out, 0644, y); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), app.Color("Wrote:", app.Green), filepath.Clean(out))
		return nil
	},
}

var configCheckCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate a config file (strict: unknown keys are errors)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			path = app.ConfigPath
		}
		y, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := config.ValidateYAML(y); err != nil {
			return err
		}
		// env overrides can still break a valid file
		if _, err := config.Load(path); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), app.Color("OK", app.Green), path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd, configCheckCmd)
	configInitCmd.Flags().String("out", "", "output path (default "+app.ConfigPath+")")
	configInitCmd.Flags().Bool("force", false, "overwrite an existing file")
}
