// Package cmd provides CLI commands for oaswitchboard.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lepidus/oaswitchboard/settings"
)

var (
	configFile  string
	profileName string
	profileFile string
	locale      string

	// cfg is loaded before every command runs.
	cfg *settings.Config
)

func setupLogger() {
	logLevel := strings.ToUpper(os.Getenv("LOG_LEVEL"))
	if logLevel == "" {
		logLevel = "INFO"
	}

	var level slog.Level
	switch logLevel {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN", "WARNING":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	logger := slog.New(handler)

	slog.SetDefault(logger)
}

var rootCmd = &cobra.Command{
	Use:   "oaswitchboard",
	Short: "Build, validate and send OA Switchboard P1-PIO messages",
	Long: `oaswitchboard builds P1-PIO messages from OJS submission snapshots and
sends them to the OA Switchboard.

A message is only built when the submission carries every mandatory datum:
author family names and affiliations, a DOI and an ISSN (plus the first
author's ROR id for the registry profile).

Examples:
  oaswitchboard build -i submission.json
  oaswitchboard validate -i submissions.yaml --verbose
  oaswitchboard send -i submission.json --profile registry
  oaswitchboard ledger list`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := settings.LoadDotEnv(); err != nil {
			return err
		}
		loaded, err := settings.Load(configFile)
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}
		if cmd.Flags().Changed("profile") {
			loaded.Profile = profileName
		}
		if cmd.Flags().Changed("profile-file") {
			loaded.ProfileFile = profileFile
		}
		if cmd.Flags().Changed("locale") {
			loaded.Locale = locale
		}
		cfg = loaded
		if cfg.Path != "" {
			slog.Debug("loaded settings", "path", cfg.Path)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	setupLogger()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Settings file (default: $XDG_CONFIG_HOME/oaswitchboard/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&profileName, "profile", "p", "", "Schema profile name (registry, server)")
	rootCmd.PersistentFlags().StringVar(&profileFile, "profile-file", "", "Custom profile YAML file")
	rootCmd.PersistentFlags().StringVar(&locale, "locale", "", "Preferred locale for localized values (e.g., en_US)")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(ledgerCmd)
	rootCmd.AddCommand(auditCmd)
}
