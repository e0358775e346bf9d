package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"reelsort/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var runID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show journaled runs and their decisions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := journal.Open(cfg.JournalPath())
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if runID != "" {
				decisions, err := store.DecisionsForRun(cmd.Context(), runID)
				if err != nil {
					return fmt.Errorf("load run %s: %w", runID, err)
				}
				if len(decisions) == 0 {
					fmt.Fprintf(out, "No decisions journaled for run %s\n", runID)
					return nil
				}
				fmt.Fprintln(out, renderDecisionsTable(decisions))
				return nil
			}

			runs, err := store.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("load runs: %w", err)
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No journaled runs yet")
				return nil
			}
			fmt.Fprintln(out, renderRunsTable(runs))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of runs to show")
	cmd.Flags().StringVar(&runID, "run", "", "Show every decision of one run")
	return cmd
}

func renderRunsTable(runs []journal.Run) string {
	headers := []string{"Run", "Started", "Finished", "Dry run", "Discs", "Tracks"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		finished := "running"
		if run.Finished {
			finished = run.FinishedAt.Local().Format(time.RFC3339)
		}
		rows = append(rows, []string{
			run.ID,
			run.StartedAt.Local().Format(time.RFC3339),
			finished,
			yesNo(run.DryRun),
			strconv.Itoa(run.DiscCount),
			strconv.Itoa(run.TrackCount),
		})
	}
	return renderTable(headers, rows, aligns)
}

func renderDecisionsTable(decisions []journal.DecisionRecord) string {
	headers := []string{"#", "Source", "Kind", "Episode", "Destination", "Moved"}
	aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft}

	rows := make([][]string, 0, len(decisions))
	for _, dec := range decisions {
		episode := ""
		switch {
		case dec.Episode > 0 && dec.EpisodeEnd > dec.Episode:
			episode = fmt.Sprintf("%d-%d", dec.Episode, dec.EpisodeEnd)
		case dec.Episode > 0:
			episode = strconv.Itoa(dec.Episode)
		}
		status := yesNo(dec.Moved)
		if dec.Error != "" {
			status = "error: " + dec.Error
		}
		rows = append(rows, []string{
			strconv.Itoa(dec.Position),
			dec.SourcePath,
			dec.Kind,
			episode,
			dec.DestPath,
			status,
		})
	}
	return renderTable(headers, rows, aligns)
}
