// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/speaker-notes/internal/history"
	"github.com/pdiddy/speaker-notes/internal/notes"
)

var extractCmd = &cobra.Command{
	Use:   "extract SOURCE [DESTINATION]",
	Short: "Write the speaker notes of a presentation to a text file",
	Long: `Extract reads the presentation at SOURCE and writes one block per slide
to DESTINATION (default speaker_notes.txt, or extract.output from the config):

  Slide 1:
  <notes, or "(No notes)">

An existing DESTINATION is overwritten. Its directory must already exist.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	dst := cfg.Extract.Output
	if len(args) == 2 {
		dst = args[1]
	}

	x := &notes.Extractor{
		Out: cmd.OutOrStdout(),
		Log: logger,
	}

	if cfg.History.Enabled {
		store, err := history.Open(cfg.History)
		if err != nil {
			logger.Warn().Err(err).Msg("run history disabled")
		} else {
			defer store.Close()
			x.Recorder = store
		}
	}

	_, err := x.Extract(args[0], dst)
	return err
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
