package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/sweep/internal/cli"
	"github.com/Veraticus/sweep/internal/config"
	"github.com/Veraticus/sweep/internal/export"
	"github.com/Veraticus/sweep/internal/geo"
	"github.com/Veraticus/sweep/internal/ingest"
	"github.com/Veraticus/sweep/internal/period"
	"github.com/Veraticus/sweep/internal/pipeline"
	"github.com/Veraticus/sweep/internal/translate"
)

func cleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean <input>",
		Short: "Clean a sales export",
		Long: `Read a CSV or XLSX sales export, derive the cleaned columns and
write the result.

Periods come from the default calendar (--default-periods), from
--period flags, and from a bulk --period-file, admitted in that order.
A period overlapping one already admitted is rejected.`,
		Args: cobra.ExactArgs(1),
		RunE: runClean,
	}

	// Flags
	cmd.Flags().String("rules", "", "rules file (YAML; default: ./rules.yaml, then ~/.config/sweep/rules.yaml)")
	cmd.Flags().String("lookup", "", "province lookup file (JSON or YAML)")
	cmd.Flags().StringP("output", "o", "", "output file (.csv, .xlsx or .db)")
	cmd.Flags().String("output-dir", ".", "directory for generated output names")
	cmd.Flags().String("format", string(export.FormatXLSX), "output format when --output is not set (csv, xlsx, sqlite)")
	cmd.Flags().String("filename-template", export.DefaultFilenameTemplate, "output name template (Sprig functions available)")
	cmd.Flags().StringSlice("stages", nil, "stages to run (default: all)")
	cmd.Flags().Bool("default-periods", true, "add the Double Day / Mid Month / Pay Day calendar")
	cmd.Flags().StringArray("period", nil, "manual period as name,DD/MM/YYYY,DD/MM/YYYY (repeatable)")
	cmd.Flags().String("period-file", "", "bulk period file with period_name, start_date, end_date")
	cmd.Flags().StringArray("gift", nil, "extra gift rule as KEY=VALUE, checked after the configured rules (repeatable)")
	cmd.Flags().Bool("no-translate", false, "skip translating foreign province names")
	cmd.Flags().Int("chunk-size", 0, "rows per chunk (default from rules)")
	cmd.Flags().Int("workers", 0, "chunks processed in parallel (default from rules)")
	cmd.Flags().Bool("no-progress", false, "hide the progress bar")

	_ = viper.BindPFlag("rules.path", cmd.Flags().Lookup("rules"))
	_ = viper.BindPFlag("geography.lookup", cmd.Flags().Lookup("lookup"))

	return cmd
}

func runClean(cmd *cobra.Command, args []string) error {
	input := args[0]
	flags := cmd.Flags()

	rulesPath := viper.GetString("rules.path")
	if rulesPath == "" {
		found, err := config.FindRules()
		if err != nil {
			return err
		}
		rulesPath = found
	}
	if rulesPath != "" {
		slog.Info("Using rules file", "path", rulesPath)
	}

	rules, err := config.Load(rulesPath)
	if err != nil {
		return err
	}
	if n, _ := flags.GetInt("chunk-size"); n > 0 {
		rules.ChunkSize = n
	}
	if n, _ := flags.GetInt("workers"); n > 0 {
		rules.Workers = n
	}
	if off, _ := flags.GetBool("no-translate"); off {
		rules.Translation.Enabled = false
	}

	gifts, _ := flags.GetStringArray("gift")
	for _, g := range gifts {
		key, value, ok := strings.Cut(g, "=")
		if !ok {
			return fmt.Errorf("invalid --gift %q: want KEY=VALUE", g)
		}
		if err := rules.AddGift(key, value); err != nil {
			return fmt.Errorf("invalid --gift %q: %w", g, err)
		}
	}

	stageNames, _ := flags.GetStringSlice("stages")
	stages, err := pipeline.ParseStages(stageNames)
	if err != nil {
		return err
	}

	plan, err := periodPlan(cmd)
	if err != nil {
		return err
	}

	lookup, err := loadLookup(rules)
	if err != nil {
		return err
	}

	opts := pipeline.Options{
		Rules:   rules,
		Lookup:  lookup,
		Stages:  stages,
		Periods: plan,
	}
	if rules.Translation.Enabled {
		client := translate.NewGoogleClient(rules.GoogleConfig())
		opts.Resolver = translate.NewFallback(client, rules.FallbackOptions())
	}

	var progress *cli.ChunkProgress
	if hide, _ := flags.GetBool("no-progress"); !hide {
		progress = cli.NewChunkProgress(cmd.ErrOrStderr())
		opts.OnChunk = progress.Update
	}

	exec, err := pipeline.New(opts)
	if err != nil {
		return err
	}

	table, err := ingest.ReadTable(input, rules.Columns)
	if err != nil {
		return err
	}

	result, err := exec.Run(cmd.Context(), table)
	if progress != nil {
		progress.Finish()
	}
	if err != nil {
		return err
	}

	output, err := outputPath(cmd, input, result.Stats.RunID)
	if err != nil {
		return err
	}

	stageList := make([]string, len(result.Stats.Stages))
	for i, s := range result.Stats.Stages {
		stageList[i] = string(s)
	}

	meta := export.Meta{
		RunID:    result.Stats.RunID,
		Source:   input,
		Stages:   stageList,
		Chunks:   result.Stats.Chunks,
		Duration: result.Stats.Duration,
	}
	if result.Registry != nil {
		meta.Periods = result.Registry.Periods()
	}

	if err := export.Write(cmd.Context(), output, result.Table, meta); err != nil {
		return err
	}

	printCleanSummary(cmd, result, output)
	return nil
}

func periodPlan(cmd *cobra.Command) (pipeline.PeriodPlan, error) {
	flags := cmd.Flags()
	var plan pipeline.PeriodPlan

	plan.Defaults, _ = flags.GetBool("default-periods")

	manual, _ := flags.GetStringArray("period")
	periods, err := parseManualPeriods(manual)
	if err != nil {
		return plan, err
	}
	plan.Manual = periods

	if path, _ := flags.GetString("period-file"); path != "" {
		rows, err := ingest.ReadPeriods(config.ExpandPath(path))
		if err != nil {
			return plan, err
		}
		plan.Bulk = rows
	}

	return plan, nil
}

func loadLookup(rules *config.Rules) (*geo.Lookup, error) {
	path := viper.GetString("geography.lookup")
	if path == "" {
		path = rules.Geography.LookupPath
	}
	if path == "" {
		slog.Debug("No province lookup configured")
		return nil, nil
	}
	return geo.LoadLookup(config.ExpandPath(path))
}

func outputPath(cmd *cobra.Command, input, runID string) (string, error) {
	flags := cmd.Flags()
	if out, _ := flags.GetString("output"); out != "" {
		return config.ExpandPath(out), nil
	}

	formatName, _ := flags.GetString("format")
	format := export.Format(strings.ToLower(formatName))
	switch format {
	case export.FormatCSV, export.FormatXLSX:
	case export.FormatSQLite:
		format = "db"
	default:
		return "", fmt.Errorf("unknown output format %q", formatName)
	}

	tmpl, _ := flags.GetString("filename-template")
	name, err := export.RenderFilename(tmpl, export.FilenameData{
		Now:    time.Now(),
		Input:  export.InputBase(input),
		RunID:  runID,
		Format: format,
	})
	if err != nil {
		return "", err
	}

	dir, _ := flags.GetString("output-dir")
	return filepath.Join(config.ExpandPath(dir), name), nil
}

func printCleanSummary(cmd *cobra.Command, result *pipeline.Result, output string) {
	stats := result.Stats
	lines := []string{
		cli.Bullet("Rows", stats.Rows),
		cli.Bullet("Chunks", stats.Chunks),
		cli.Bullet("Time taken", stats.Duration.Round(time.Millisecond)),
	}
	if result.Registry != nil {
		lines = append(lines, cli.Bullet("Periods", result.Registry.Len()))
	}
	if len(stats.Manual) > 0 {
		lines = append(lines, cli.Bullet("Manual periods", admissionSummary(stats.Manual)))
	}
	if stats.Import != nil {
		lines = append(lines, cli.Bullet("Period file",
			fmt.Sprintf("%d accepted, %d rejected, %d skipped",
				stats.Import.Accepted, stats.Import.Rejected, stats.Import.Skipped)))
	}
	lines = append(lines, cli.Bullet("Output", output))

	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBox("Cleaning Complete", strings.Join(lines, "\n")))
}

func admissionSummary(decisions []period.Decision) string {
	accepted := 0
	var rejected []string
	for _, d := range decisions {
		if d.Admission == period.Accepted {
			accepted++
			continue
		}
		rejected = append(rejected, fmt.Sprintf("%s (%s)", d.Period.Name, d.Admission))
	}

	summary := fmt.Sprintf("%d accepted, %d rejected", accepted, len(rejected))
	if len(rejected) > 0 {
		summary += ": " + strings.Join(rejected, ", ")
	}
	return summary
}
