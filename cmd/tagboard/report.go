package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"tagboard/export"
	"tagboard/pipeline"
	"tagboard/store"
	"tagboard/telemetry"
	"tagboard/types"
)

// ReportCommand implements the 'tagboard report' command
type ReportCommand struct {
	Data         string
	Departments  []string
	Services     []string
	Regions      []string
	Environments []string
	Output       string
	Lowest       int
	Out          io.Writer
}

// governanceReport is the machine-readable report shape.
type governanceReport struct {
	Tagging      pipeline.TaggingSummary         `json:"tagging"`
	Costs        pipeline.CostSummary            `json:"costs"`
	Completeness pipeline.CompletenessStats      `json:"completeness"`
	Departments  []pipeline.GroupCost            `json:"departments"`
	MissingTags  []pipeline.FieldGap             `json:"missing_tags"`
	Environments []pipeline.EnvironmentBreakdown `json:"environments"`
	Lowest       []pipeline.ScoredRecord         `json:"lowest_completeness"`
	Untagged     []types.Record                  `json:"untagged"`
}

// Run executes the report command
func (cmd *ReportCommand) Run() error {
	logger := telemetry.NewConsoleLogger(os.Stderr, false)

	dataset, err := store.NewLoader(logger).Load(cmd.Data)
	if err != nil {
		return err
	}

	view := pipeline.Apply(dataset.Records, pipeline.Selections{
		Departments:  cmd.Departments,
		Services:     cmd.Services,
		Regions:      cmd.Regions,
		Environments: cmd.Environments,
	})

	report := governanceReport{
		Tagging:      pipeline.Summarize(view),
		Costs:        pipeline.CostRollup(view),
		Completeness: pipeline.Completeness(view),
		Departments:  pipeline.GroupCosts(view, types.FieldDepartment),
		MissingTags:  pipeline.MissingTagCensus(view),
		Environments: pipeline.EnvironmentSummary(view),
		Lowest:       pipeline.LowestCompleteness(view, cmd.Lowest),
		Untagged:     pipeline.UntaggedByCost(view),
	}

	switch cmd.Output {
	case "json":
		return cmd.outputJSON(report)
	case "csv":
		return cmd.outputCSV(report)
	default:
		return cmd.outputTable(report)
	}
}

// outputTable prints the human-readable governance report
func (cmd *ReportCommand) outputTable(report governanceReport) error {
	fmt.Fprintf(cmd.Out, "Tagging Summary:\n")
	fmt.Fprintf(cmd.Out, "   Total resources: %d\n", report.Tagging.Total)
	fmt.Fprintf(cmd.Out, "   Tagged: %d (%.1f%%)\n", report.Tagging.Tagged, report.Tagging.TaggedPct)
	fmt.Fprintf(cmd.Out, "   Untagged: %d (%.1f%%)\n", report.Tagging.Untagged, report.Tagging.UntaggedPct)
	fmt.Fprintf(cmd.Out, "\n")

	fmt.Fprintf(cmd.Out, "Cost Summary:\n")
	fmt.Fprintf(cmd.Out, "   Total monthly cost: $%.2f\n", report.Costs.Total)
	fmt.Fprintf(cmd.Out, "   Untagged monthly cost: $%.2f (%.1f%%)\n", report.Costs.Untagged, report.Costs.UntaggedPct)
	fmt.Fprintf(cmd.Out, "   Mean tag completeness: %.2f / 5\n", report.Completeness.Mean)
	fmt.Fprintf(cmd.Out, "\n")

	if len(report.Departments) > 0 {
		fmt.Fprintf(cmd.Out, "Cost by Department:\n")
		w := tabwriter.NewWriter(cmd.Out, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "DEPARTMENT\tMONTHLY COST")
		_, _ = fmt.Fprintln(w, "----------\t------------")
		for _, g := range report.Departments {
			key := g.Key
			if key == "" {
				key = "(missing)"
			}
			_, _ = fmt.Fprintf(w, "%s\t$%.2f\n", key, g.Cost)
		}
		_ = w.Flush()
		fmt.Fprintf(cmd.Out, "\n")
	}

	if len(report.Untagged) == 0 {
		fmt.Fprintln(cmd.Out, "All resources are tagged!")
		return nil
	}

	fmt.Fprintf(cmd.Out, "Untagged Resources (highest cost first):\n")
	w := tabwriter.NewWriter(cmd.Out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "RESOURCE\tSERVICE\tREGION\tDEPARTMENT\tENVIRONMENT\tMONTHLY COST")
	_, _ = fmt.Fprintln(w, "--------\t-------\t------\t----------\t-----------\t------------")
	for _, r := range report.Untagged {
		cost := "-"
		if r.CostKnown {
			cost = fmt.Sprintf("$%.2f", r.MonthlyCostUSD)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			truncate(r.ResourceID, 24),
			r.Service,
			r.Region,
			r.Department,
			r.Environment,
			cost,
		)
	}
	_ = w.Flush()
	fmt.Fprintf(cmd.Out, "\n")

	if len(report.Lowest) > 0 {
		fmt.Fprintf(cmd.Out, "Lowest Tag Completeness:\n")
		w := tabwriter.NewWriter(cmd.Out, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "RESOURCE\tSCORE\tMISSING")
		_, _ = fmt.Fprintln(w, "--------\t-----\t-------")
		for _, sr := range report.Lowest {
			missing := make([]string, 0, len(types.TagFields))
			for _, f := range sr.Record.MissingTagFields() {
				missing = append(missing, f.String())
			}
			_, _ = fmt.Fprintf(w, "%s\t%d/5\t%s\n",
				truncate(sr.Record.ResourceID, 24),
				sr.Score,
				strings.Join(missing, ", "),
			)
		}
		_ = w.Flush()
		fmt.Fprintf(cmd.Out, "\n")
	}

	cmd.printMissingTags(report.MissingTags)
	return nil
}

// printMissingTags shows which tag fields need the most work
func (cmd *ReportCommand) printMissingTags(gaps []pipeline.FieldGap) {
	fmt.Fprintf(cmd.Out, "Missing Tag Fields:\n")
	for _, gap := range gaps {
		if gap.Missing == 0 {
			continue
		}
		fmt.Fprintf(cmd.Out, "   • %s missing on %d resources (%.1f%%)\n", gap.Field, gap.Missing, gap.Pct)
	}

	fmt.Fprintf(cmd.Out, "\nNext steps:\n")
	fmt.Fprintf(cmd.Out, "   tagboard export --kind untagged   # Export untagged resources as CSV\n")
	fmt.Fprintf(cmd.Out, "   tagboard serve                    # Open the remediation dashboard\n")
}

// outputJSON prints the report as JSON
func (cmd *ReportCommand) outputJSON(report governanceReport) error {
	enc := json.NewEncoder(cmd.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// outputCSV prints the untagged resources as CSV
func (cmd *ReportCommand) outputCSV(report governanceReport) error {
	return export.WriteRecords(cmd.Out, report.Untagged)
}

// truncate shortens a string for table display
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
