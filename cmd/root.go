package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Tim-element/element-nutrients-automation/internal/config"
	"github.com/Tim-element/element-nutrients-automation/internal/storage"
	"github.com/Tim-element/element-nutrients-automation/pkg/logutils"
)

var (
	flagDataDir    string
	flagConfigFile string
	flagLogLevel   string
	flagLogFile    string

	// appCfg is loaded before any command runs.
	appCfg    config.Config
	logCloser = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "hearth",
	Short: "hearth – household reminders and daily briefings",
	Long: `hearth keeps a household on schedule: activity prep, recurring chores,
bedtimes and "remind me to..." reminders merged into one feed, delivered once.
All data is stored as human-readable files in ~/.hearth/.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Data directory (default ~/.hearth)")
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "Config file (default <data-dir>/config.json)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file (default <data-dir>/hearth.log)")

	rootCmd.AddCommand(remindersCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(briefingCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(outlookCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	if flagDataDir == "" {
		base, err := storage.BaseDir()
		if err != nil {
			return err
		}
		flagDataDir = base
	}

	logFile := flagLogFile
	if logFile == "" {
		logFile = filepath.Join(flagDataDir, "hearth.log")
	}
	logger, closer, err := logutils.New(flagLogLevel, logFile)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	log.Logger = logger
	logCloser = closer

	cfg, err := config.Load(flagConfigFile, flagDataDir)
	if err != nil {
		return err
	}
	warnings, err := cfg.Validate()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, "Warning:", w)
		log.Warn().Msg(w)
	}
	appCfg = cfg

	log.Debug().Str("command", cmd.CommandPath()).Str("data_dir", flagDataDir).Msg("starting")
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	logCloser()
	return nil
}
