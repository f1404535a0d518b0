// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the speaker-notes CLI, which writes
// the speaker notes of a presentation to a numbered plain-text report.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/speaker-notes/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is configured in PersistentPreRunE.
var logger = zerolog.Nop()

// rootCmd is the base command for the speaker-notes CLI.
var rootCmd = &cobra.Command{
	Use:   "speaker-notes",
	Short: "Extract speaker notes from presentations",
	Long: `speaker-notes reads a PowerPoint presentation (.pptx) and writes the
speaker notes of every slide to a plain-text file, one numbered block per
slide. Slides without notes get a "(No notes)" placeholder.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		level := viper.GetString("log.level")
		if verbose {
			level = "debug"
		}
		lvl, err := zerolog.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
		zerolog.TimeFieldFormat = time.RFC3339
		logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.RFC3339}).
			Level(lvl).
			With().Timestamp().Logger()
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Debug().Str("file", f).Msg("using config file")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./speaker-notes.yaml or ~/.config/speaker-notes/speaker-notes.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("speaker-notes")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "speaker-notes"))
		}
	}

	viper.SetDefault("extract.output", types.DefaultOutput)
	viper.SetDefault("history.enabled", false)
	viper.SetDefault("history.path", defaultHistoryPath())
	viper.SetDefault("history.max_results", 20)
	viper.SetDefault("log.level", "info")

	viper.SetEnvPrefix("SPEAKER_NOTES")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintln(os.Stderr, "warning: reading config:", err)
		}
	}
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".speaker-notes", "history.db")
	}
	return filepath.Join(home, ".local", "state", "speaker-notes", "history.db")
}

// loadConfig reads the merged configuration (flags, env, file, defaults).
func loadConfig() types.Config {
	return types.Config{
		Extract: types.ExtractConfig{
			Output: viper.GetString("extract.output"),
		},
		History: types.HistoryConfig{
			Enabled:    viper.GetBool("history.enabled"),
			Path:       viper.GetString("history.path"),
			MaxResults: viper.GetInt("history.max_results"),
		},
		Log: types.LogConfig{
			Level: viper.GetString("log.level"),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
