package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"parrot/internal/cards"
	"parrot/internal/config"
	"parrot/internal/generate"
	"parrot/internal/ledger"
	"parrot/internal/logging"
	"parrot/internal/tts"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var (
		audioDir     string
		voice        string
		neural       bool
		tabs         bool
		skipExisting bool
	)

	cmd := &cobra.Command{
		Use:   "generate <source> <target>",
		Short: "Generate cards with synthesized audio from a delimited source file",
		Long: `Generate reads card rows from the source file, synthesizes audio for each
unique sentence (first column) with the selected Polly voice, writes the
audio files into the audio directory, and writes every surviving row to the
target file with a [sound:...] field appended.

Exact duplicate rows are dropped. Rows that share a sentence but differ in
other fields are all kept and share one audio file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			opts, err := generateOptions(cfg, cmd, args, audioDir, voice, neural, tabs, skipExisting)
			if err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}

			svc, err := tts.NewPollyService(cmd.Context())
			if err != nil {
				return err
			}

			var store *ledger.Store
			if cfg.Ledger.Enabled {
				store, err = ledger.Open(cfg.Ledger.Path)
				if err != nil {
					logger.Warn("ledger unavailable; run will not be recorded", logging.Error(err))
				} else {
					defer store.Close()
				}
			}

			summary, err := generate.NewRunner(svc, store, logger).Run(cmd.Context(), opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %d rows to %s (%d unique sentences, %d audio files)\n",
				summary.RowsEmitted, opts.Target, summary.UniqueSentences, summary.AudioWritten)
			return nil
		},
	}

	cmd.Flags().StringVar(&audioDir, "audio-dir", "", "Directory where audio files are written (default from config)")
	cmd.Flags().StringVarP(&voice, "voice", "v", "", "Amazon Polly voice ID (default from config)")
	cmd.Flags().BoolVar(&neural, "neural", false, "Use the neural engine (voice must support it)")
	cmd.Flags().BoolVar(&tabs, "tabs", false, "Read and write tab-separated values instead of comma-separated")
	cmd.Flags().BoolVar(&skipExisting, "skip-existing", false, "Skip rows whose audio file already exists in the audio directory")

	return cmd
}

// generateOptions merges config defaults with per-run flags. Flags win when
// set; boolean flags only override the config when passed explicitly.
func generateOptions(cfg *config.Config, cmd *cobra.Command, args []string, audioDir, voice string, neural, tabs, skipExisting bool) (generate.Options, error) {
	opts := generate.Options{
		Source:       args[0],
		Target:       args[1],
		AudioDir:     cfg.Paths.AudioDir,
		Voice:        cfg.Audio.Voice,
		Neural:       cfg.Audio.Neural,
		Format:       cfg.Audio.Format,
		AudioExt:     cfg.AudioExtension(),
		SkipExisting: cfg.Output.SkipExisting,
	}

	if audioDir != "" {
		expanded, err := config.ExpandPath(audioDir)
		if err != nil {
			return generate.Options{}, fmt.Errorf("resolve audio directory: %w", err)
		}
		opts.AudioDir = expanded
	}
	if voice != "" {
		opts.Voice = voice
	}
	if cmd.Flags().Changed("neural") {
		opts.Neural = neural
	}
	if cmd.Flags().Changed("skip-existing") {
		opts.SkipExisting = skipExisting
	}

	delimiterName := cfg.Output.Delimiter
	if cmd.Flags().Changed("tabs") {
		if tabs {
			delimiterName = "tab"
		} else {
			delimiterName = "comma"
		}
	}
	delim, err := cards.ParseDelimiter(delimiterName)
	if err != nil {
		return generate.Options{}, err
	}
	opts.Delimiter = delim

	return opts, nil
}
