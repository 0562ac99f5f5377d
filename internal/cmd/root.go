package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yuzeguitarist/loveqr/internal/app"
	"github.com/yuzeguitarist/loveqr/internal/config"
)

var (
	rootCmd = &cobra.Command{
		Use:           "loveqr",
		Short:         "Love QR - heart-shaped QR code generator (HTTP API + CLI)",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	configPath string
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, app.ColorFor(os.Stderr, "error:", app.Red), err)
		os.Exit(1)
	}
}

// loadConfig uses --config when given, else the system config file when it exists.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		if _, err := os.Stat(app.ConfigPath); err == nil {
			path = app.ConfigPath
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	return config.Load(path)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+app.ConfigPath+" when present)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(configCmd)
}
