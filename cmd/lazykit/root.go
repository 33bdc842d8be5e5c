package main

import (
	"fmt"
	"os"

	"github.com/ZanzyTHEbar/lazykit/kit"
	"github.com/ZanzyTHEbar/lazykit/kit/config"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "lazykit",
	Short:         "lazykit maps a project and the @kit annotations in its files",
	Long:          `lazykit crawls a project directory and collects the "@kit:key:value" magic comments found in every file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (default: ./config.yaml or ~/.config/lazykit/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
}

// loadSettings reads the config file and applies persistent flag overrides.
func loadSettings(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level, _ = cmd.Flags().GetString("log-level")
	}
	level, err := cfg.Log.ParseLevel()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, kit.NewLogger(cmd.ErrOrStderr(), level), nil
}
