package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/sweep/internal/cli"
	"github.com/Veraticus/sweep/internal/common"
	"github.com/Veraticus/sweep/internal/config"
	"github.com/Veraticus/sweep/internal/storage"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <database>",
		Short: "Summarize a run stored in a SQLite export",
		Long: `Show a stored run and how many of its rows fall in each period.
Without --run the most recent run is shown.`,
		Args: cobra.ExactArgs(1),
		RunE: runReport,
	}

	cmd.Flags().String("run", "", "run ID to show")

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	runID, _ := cmd.Flags().GetString("run")

	store, err := storage.NewSQLiteStorage(config.ExpandPath(args[0]))
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			common.LogWarn("Failed to close database", common.Fields{"error": closeErr})
		}
	}()

	if err := store.Migrate(ctx); err != nil {
		return err
	}

	var info *storage.RunInfo
	if runID != "" {
		info, err = store.GetRun(ctx, runID)
	} else {
		info, err = store.LatestRun(ctx)
	}
	if errors.Is(err, storage.ErrRunNotFound) {
		return common.NewUserError("No matching run in "+args[0], err)
	}
	if err != nil {
		return err
	}

	counts, err := store.PeriodCounts(ctx, info.ID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	lines := []string{
		cli.Bullet("Run", info.ID),
		cli.Bullet("Source", info.Source),
		cli.Bullet("Rows", info.Rows),
		cli.Bullet("Chunks", info.Chunks),
		cli.Bullet("Stages", strings.Join(info.Stages, ", ")),
		cli.Bullet("Time taken", info.Duration.Round(time.Millisecond)),
	}
	fmt.Fprintln(out, cli.RenderBox("Stored Run", strings.Join(lines, "\n")))

	if len(counts) == 0 {
		fmt.Fprintln(out, cli.InfoStyle.Render("No period assignments stored for this run."))
		return nil
	}

	rows := make([][]string, len(counts))
	for i, c := range counts {
		rows[i] = []string{c.Name, c.Start, c.End, strconv.Itoa(c.Rows)}
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTable([]string{"Period", "Start", "End", "Rows"}, rows))
	return nil
}
