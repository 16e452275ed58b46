package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tagboard/export"
	"tagboard/pipeline"
	"tagboard/remediation"
	"tagboard/store"
	"tagboard/telemetry"
	"tagboard/types"
)

var (
	exportData         string
	exportKind         string
	exportOutput       string
	exportDepartments  []string
	exportServices     []string
	exportRegions      []string
	exportEnvironments []string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export resource views as CSV",
	Long: `Export a view of the resource inventory as a fresh CSV file.

Kinds:
- untagged: untagged resources, highest monthly cost first
- full:     the filtered view in source order
- template: remediation working copy seeded from the untagged rows`,
	Example: `  tagboard export --data resources.csv --kind untagged --out untagged.csv
  tagboard export --data resources.csv --kind full --department Finance --out finance.csv
  tagboard export --data resources.csv --kind template --out remediation.csv`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportData, "data", "d", "", "Resource inventory CSV file (required)")
	exportCmd.Flags().StringVarP(&exportKind, "kind", "k", "untagged", "Export kind: untagged, full, template")
	exportCmd.Flags().StringVarP(&exportOutput, "out", "o", "", "Output file (required)")
	exportCmd.Flags().StringSliceVar(&exportDepartments, "department", nil, "Filter by department")
	exportCmd.Flags().StringSliceVar(&exportServices, "service", nil, "Filter by service")
	exportCmd.Flags().StringSliceVar(&exportRegions, "region", nil, "Filter by region")
	exportCmd.Flags().StringSliceVar(&exportEnvironments, "environment", nil, "Filter by environment")
	_ = exportCmd.MarkFlagRequired("data")
	_ = exportCmd.MarkFlagRequired("out")
}

func runExport(cmd *cobra.Command, args []string) error {
	validKinds := []string{"untagged", "full", "template"}
	if !contains(validKinds, exportKind) {
		return fmt.Errorf("invalid export kind: %s (must be one of: %s)",
			exportKind, strings.Join(validKinds, ", "))
	}

	logger := telemetry.NewConsoleLogger(os.Stderr, false)
	dataset, err := store.NewLoader(logger).Load(exportData)
	if err != nil {
		return err
	}

	view := pipeline.Apply(dataset.Records, pipeline.Selections{
		Departments:  exportDepartments,
		Services:     exportServices,
		Regions:      exportRegions,
		Environments: exportEnvironments,
	})

	var records []types.Record
	switch exportKind {
	case "untagged":
		records = pipeline.UntaggedByCost(view)
	case "full":
		records = view
	case "template":
		records = remediation.NewCopy(pipeline.Untagged(view)).Records()
	}

	if err := export.WriteFile(exportOutput, records); err != nil {
		return err
	}

	fmt.Printf("Exported %d records to %s\n", len(records), exportOutput)
	return nil
}
