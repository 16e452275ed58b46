package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	rootCmd = &cobra.Command{
		Use:   "tagboard",
		Short: "Cloud Tagging & Cost Governance Dashboard",
		Long: `Tagboard - Cloud Tagging & Cost Governance Dashboard

Tagboard reads a cloud resource inventory CSV and shows where the
untagged spend hides. Filter by department, service, region and
environment, measure tag completeness, and draft tag remediation
without ever touching the source data.`,
		Version: version,
	}
)

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// init sets up the root command
func init() {
	rootCmd.SetVersionTemplate(`Tagboard {{.Version}} - Cloud Tagging & Cost Governance Dashboard
`)
}
