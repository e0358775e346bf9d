package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"reelsort/internal/classify"
	"reelsort/internal/journal"
	"reelsort/internal/logging"
	"reelsort/internal/organize"
	"reelsort/internal/runlock"
	"reelsort/internal/scan"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "process [staging-dir]",
		Short: "Classify staged discs and move tracks into the library",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(ctx, cmd, args, dryRun)
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Plan every move without touching the filesystem")
	return cmd
}

// newPlanCommand is process with the dry-run switch forced on.
func newPlanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "plan [staging-dir]",
		Short: "Show what a run would do without moving anything",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(ctx, cmd, args, true)
		},
	}
}

func runProcess(ctx *commandContext, cmd *cobra.Command, args []string, dryRun bool) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if dryRun {
		cfg.Behavior.DryRun = true
	}

	root := cfg.Paths.StagingDir
	if len(args) == 1 {
		root = args[0]
	}
	if root == "" {
		return fmt.Errorf("no staging directory: pass one or set paths.staging_dir")
	}

	logger, err := ctx.newLogger(cfg)
	if err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}

	lock, err := runlock.Acquire(cfg.LockPath())
	if err != nil {
		return err
	}
	defer func() {
		_ = lock.Release()
	}()

	store, err := journal.Open(cfg.JournalPath())
	if err != nil {
		logger.Warn("journal disabled", logging.Error(err))
		store = nil
	} else {
		defer store.Close()
	}

	discs, err := scan.FindDiscs(root, logger)
	if err != nil {
		return fmt.Errorf("scan %s: %w", root, err)
	}
	if len(discs) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No discs found under %s\n", root)
		return nil
	}

	organizer := organize.NewWithDependencies(cfg, logger, organize.Dependencies{
		Journal: store,
	})

	report, err := organizer.Run(cmd.Context(), discs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, dr := range report.Discs {
		fmt.Fprintf(out, "\n%s (%s)\n", dr.Disc.Display, dr.Disc.Category)
		fmt.Fprintln(out, renderDiscTable(dr))
	}
	printRunSummary(out, report, cfg.Behavior.DryRun)
	return nil
}

func renderDiscTable(dr organize.DiscReport) string {
	headers := []string{"#", "Track", "Size", "Kind", "Destination", "Moved"}
	aligns := []columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignLeft, alignLeft}

	rows := make([][]string, 0, len(dr.Results))
	for _, tr := range dr.Results {
		size := "?"
		if tr.Track.HasSize {
			size = humanize.IBytes(uint64(tr.Track.Size))
		}
		dest := tr.DestPath
		if dest != "" {
			dest = filepath.Base(dest)
		}
		status := yesNo(tr.Moved)
		if tr.Err != nil {
			status = "error"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", tr.Track.Position),
			filepath.Base(tr.Track.Path),
			size,
			describeDecision(tr.Decision),
			dest,
			status,
		})
	}
	return renderTable(headers, rows, aligns)
}

func describeDecision(dec classify.Decision) string {
	switch dec.Kind {
	case classify.KindEpisode:
		return fmt.Sprintf("episode %d", dec.Episode)
	case classify.KindDoubleEpisode:
		return fmt.Sprintf("episodes %d-%d", dec.Episode, dec.EpisodeEnd)
	case classify.KindTrailer:
		if dec.Index > 1 {
			return fmt.Sprintf("trailer %d", dec.Index)
		}
		return "trailer"
	case classify.KindBonus:
		return fmt.Sprintf("bonus %d", dec.Index)
	case classify.KindPlayAll:
		return "play-all"
	case classify.KindMainFeature:
		return "main feature"
	case classify.KindFallback:
		return fmt.Sprintf("fallback %d", dec.Index)
	default:
		return string(dec.Kind)
	}
}

func printRunSummary(out io.Writer, report organize.RunReport, dryRun bool) {
	moved, failed := 0, 0
	for _, dr := range report.Discs {
		for _, tr := range dr.Results {
			if tr.Err != nil {
				failed++
			} else if tr.Moved {
				moved++
			}
		}
	}
	verb := "moved"
	if dryRun {
		verb = "planned"
	}
	fmt.Fprintf(out, "\n%d discs processed, %d tracks %s, %d errors\n", len(report.Discs), moved, verb, failed)
	if report.RunID != "" {
		fmt.Fprintf(out, "Journaled as run %s\n", report.RunID)
	}
}
