package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	reportData         string
	reportDepartments  []string
	reportServices     []string
	reportRegions      []string
	reportEnvironments []string
	reportOutput       string
	reportLowest       int
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "One-shot governance report for a resource inventory CSV",
	Long: `Load a resource inventory CSV and print the tagging governance
report: tagged vs untagged counts and cost, cost by department,
tag completeness, and the untagged resources ranked by monthly cost.

Filter flags narrow the report the same way the dashboard filters do:
values within one flag are OR'd, flags are AND'd together.`,
	Example: `  tagboard report --data resources.csv
  tagboard report --data resources.csv --department Engineering
  tagboard report --data resources.csv --environment prod --region us-east-1
  tagboard report --data resources.csv --output json`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportData, "data", "d", "", "Resource inventory CSV file (required)")
	reportCmd.Flags().StringSliceVar(&reportDepartments, "department", nil, "Filter by department")
	reportCmd.Flags().StringSliceVar(&reportServices, "service", nil, "Filter by service")
	reportCmd.Flags().StringSliceVar(&reportRegions, "region", nil, "Filter by region")
	reportCmd.Flags().StringSliceVar(&reportEnvironments, "environment", nil, "Filter by environment")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "table", "Output format: table, json, csv")
	reportCmd.Flags().IntVar(&reportLowest, "lowest", 10, "How many lowest-completeness resources to list")
	_ = reportCmd.MarkFlagRequired("data")
}

func runReport(cmd *cobra.Command, args []string) error {
	validOutputs := []string{"table", "json", "csv"}
	if !contains(validOutputs, reportOutput) {
		return fmt.Errorf("invalid output format: %s (must be one of: %s)",
			reportOutput, strings.Join(validOutputs, ", "))
	}

	report := &ReportCommand{
		Data:         reportData,
		Departments:  reportDepartments,
		Services:     reportServices,
		Regions:      reportRegions,
		Environments: reportEnvironments,
		Output:       reportOutput,
		Lowest:       reportLowest,
		Out:          os.Stdout,
	}
	return report.Run()
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
