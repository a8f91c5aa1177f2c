package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Veraticus/sweep/internal/cli"
	"github.com/Veraticus/sweep/internal/config"
	"github.com/Veraticus/sweep/internal/ingest"
	"github.com/Veraticus/sweep/internal/model"
	"github.com/Veraticus/sweep/internal/period"
)

func periodsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "periods",
		Short: "Inspect the period calendar",
		Long:  `Preview default periods and validate bulk period files before a clean run.`,
	}

	cmd.AddCommand(periodsDefaultsCmd())
	cmd.AddCommand(periodsCheckCmd())

	return cmd
}

func periodsDefaultsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Show the default periods for a date range",
		Args:  cobra.NoArgs,
		RunE:  runPeriodsDefaults,
	}

	cmd.Flags().String("from", "", "first day (DD/MM/YYYY)")
	cmd.Flags().String("to", "", "last day (DD/MM/YYYY)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func runPeriodsDefaults(cmd *cobra.Command, _ []string) error {
	fromRaw, _ := cmd.Flags().GetString("from")
	toRaw, _ := cmd.Flags().GetString("to")

	from, err := period.ParseDate(fromRaw)
	if err != nil {
		return fmt.Errorf("invalid --from: %w", err)
	}
	to, err := period.ParseDate(toRaw)
	if err != nil {
		return fmt.Errorf("invalid --to: %w", err)
	}
	if from.After(to) {
		return fmt.Errorf("--from must not be after --to: %w", period.ErrInvalidRange)
	}

	periods := period.GenerateDefaults(from, to)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatTitle("Default Periods"))
	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTable([]string{"Name", "Start", "End"}, periodRows(periods)))
	return nil
}

func periodsCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a bulk period file",
		Long: `Import a CSV or XLSX period file into an empty calendar and report
which rows would be accepted. Manual --period values are admitted first,
the same way clean admits them.`,
		Args: cobra.ExactArgs(1),
		RunE: runPeriodsCheck,
	}

	cmd.Flags().StringArray("period", nil, "manual period as name,DD/MM/YYYY,DD/MM/YYYY (repeatable)")

	return cmd
}

func runPeriodsCheck(cmd *cobra.Command, args []string) error {
	manual, _ := cmd.Flags().GetStringArray("period")
	periods, err := parseManualPeriods(manual)
	if err != nil {
		return err
	}

	rows, err := ingest.ReadPeriods(config.ExpandPath(args[0]))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	registry := period.NewRegistry()
	for _, p := range periods {
		if a := registry.AddManual(p.Name, p.Start, p.End); a != period.Accepted {
			fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("Manual period %s rejected: %s", p, a)))
		}
	}

	report := registry.Import(rows)

	fmt.Fprintln(out, cli.FormatTitle("Period File Check"))
	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTable([]string{"Line", "Name", "Start", "End", "Result"}, reportRows(report)))
	fmt.Fprintln(out)

	summary := fmt.Sprintf("%d accepted, %d rejected, %d skipped", report.Accepted, report.Rejected, report.Skipped)
	if report.Rejected+report.Skipped > 0 {
		fmt.Fprintln(out, cli.FormatWarning(summary))
	} else {
		fmt.Fprintln(out, cli.FormatSuccess(summary))
	}
	return nil
}

func periodRows(periods []model.Period) [][]string {
	rows := make([][]string, len(periods))
	for i, p := range periods {
		rows[i] = []string{
			p.Name,
			p.Start.Format(period.ImportDateLayout),
			p.End.Format(period.ImportDateLayout),
		}
	}
	return rows
}

func reportRows(report period.ImportReport) [][]string {
	rows := make([][]string, len(report.Rows))
	for i, r := range report.Rows {
		rows[i] = []string{strconv.Itoa(r.Line), r.Period.Name, "", "", describeRow(r)}
		if !r.Period.Start.IsZero() {
			rows[i][2] = r.Period.Start.Format(period.ImportDateLayout)
			rows[i][3] = r.Period.End.Format(period.ImportDateLayout)
		}
	}
	return rows
}

func describeRow(r period.RowResult) string {
	switch {
	case r.Skipped:
		return "skipped: " + r.Err.Error()
	case r.Admission == period.Accepted:
		return "accepted"
	default:
		return "rejected: " + r.Admission.String()
	}
}
