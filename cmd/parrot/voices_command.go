package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"parrot/internal/tts"
)

func newVoicesCommand(ctx *commandContext) *cobra.Command {
	var languageCode string

	cmd := &cobra.Command{
		Use:         "voices",
		Short:       "List the available Amazon Polly voices",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := tts.NewPollyService(cmd.Context())
			if err != nil {
				return err
			}
			voices, err := svc.ListVoices(cmd.Context(), languageCode)
			if err != nil {
				return err
			}

			headers, rows := voiceRows(voices)
			out := cmd.OutOrStdout()
			if stdoutIsTerminal() {
				fmt.Fprintln(out, renderTable(headers, rows))
			} else {
				fmt.Fprintln(out, renderPlain(headers, rows))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&languageCode, "language", "l", "", "Only show voices for this language code (e.g. es-ES)")
	return cmd
}

// voiceRows flattens the catalog into table rows sorted by display language
// and voice ID, so output is stable run to run.
func voiceRows(voices []tts.Voice) ([]string, [][]string) {
	sorted := make([]tts.Voice, len(voices))
	copy(sorted, voices)

	coll := collate.New(language.English)
	sort.Slice(sorted, func(i, j int) bool {
		if cmp := coll.CompareString(sorted[i].Language, sorted[j].Language); cmp != 0 {
			return cmp < 0
		}
		return coll.CompareString(sorted[i].ID, sorted[j].ID) < 0
	})

	rows := make([][]string, 0, len(sorted))
	for _, voice := range sorted {
		rows = append(rows, []string{
			voice.Language,
			voice.Code,
			genderGlyph(voice.Gender) + " " + voice.ID,
			engineLabel(voice.Neural),
		})
	}
	return []string{"Language", "Code", "Voice", "Engines"}, rows
}

func genderGlyph(gender string) string {
	switch gender {
	case "Male":
		return "♂"
	case "Female":
		return "♀"
	default:
		return "?"
	}
}

func engineLabel(neural bool) string {
	if neural {
		return "supports neural"
	}
	return "standard only"
}
