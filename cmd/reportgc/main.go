// Package main is the entry point for the reportgc CLI. reportgc ingests
// vulnerability-scanner output (Trivy JSON or SARIF), classifies the
// findings into a graded execution plan, and renders the plan for
// downstream consumers.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Killmanga-AI/reportgc/cmd/analyze"
	"github.com/Killmanga-AI/reportgc/cmd/list"
	"github.com/Killmanga-AI/reportgc/cmd/render"
	"github.com/Killmanga-AI/reportgc/pkg/logger"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var (
		debug     bool
		logFormat string
	)

	rootCmd := &cobra.Command{
		Use:     "reportgc",
		Short:   "Security scan classification and reporting",
		Long:    "reportgc turns Trivy or SARIF scanner output into a graded security execution plan.",
		Version: fmt.Sprintf("%s (built %s)", version, buildTime),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.SetGlobalLogger(logger.New(debug, logFormat))
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text or json)")

	rootCmd.AddCommand(analyze.NewCommand())
	rootCmd.AddCommand(render.NewCommand())
	rootCmd.AddCommand(list.NewCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
