package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"parrot/internal/ledger"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent generate runs from the ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if !cfg.Ledger.Enabled {
				return fmt.Errorf("ledger is disabled in configuration (ledger.enabled = false)")
			}

			store, err := ledger.Open(cfg.Ledger.Path)
			if err != nil {
				return fmt.Errorf("open ledger: %w", err)
			}
			defer store.Close()

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet")
				return nil
			}

			headers, rows := historyRows(runs)
			if stdoutIsTerminal() {
				fmt.Fprintln(out, renderTable(headers, rows))
			} else {
				fmt.Fprintln(out, renderPlain(headers, rows))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	return cmd
}

func historyRows(runs []ledger.Run) ([]string, [][]string) {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.StartedAt.Local().Format("2006-01-02 15:04"),
			run.Source,
			run.Voice,
			run.Engine,
			strconv.Itoa(run.RowsEmitted) + "/" + strconv.Itoa(run.RowsRead),
			strconv.Itoa(run.UniqueSentences),
			run.Duration.Round(time.Millisecond).String(),
			statusLabel(run),
		})
	}
	return []string{"Started", "Source", "Voice", "Engine", "Rows", "Unique", "Duration", "Status"}, rows
}

func statusLabel(run ledger.Run) string {
	if run.Status == ledger.StatusFailed && run.Error != "" {
		return run.Status + ": " + run.Error
	}
	return run.Status
}
