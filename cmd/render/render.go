// Package render implements the render command: re-render a stored report
// into additional output formats.
package render

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Killmanga-AI/reportgc/internal/config"
	"github.com/Killmanga-AI/reportgc/internal/report"
	"github.com/Killmanga-AI/reportgc/internal/storage"
	"github.com/Killmanga-AI/reportgc/pkg/logger"
)

type options struct {
	reportID   string
	configFile string
	outputDir  string
	formats    []string
}

// NewCommand creates the render command.
func NewCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a stored report into output formats",
		Example: `  reportgc render --report latest --format html
  reportgc render --report 20260829-101500 --format html,json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.reportID, "report", "latest", "Report id to render (or 'latest')")
	cmd.Flags().StringVar(&opts.configFile, "config", "", "Configuration file")
	cmd.Flags().StringVar(&opts.outputDir, "output", "", "Data directory (overrides config)")
	cmd.Flags().StringSliceVar(&opts.formats, "format", []string{"html"}, "Output format(s)")

	return cmd
}

func run(out io.Writer, opts *options) error {
	log := logger.GetGlobalLogger()

	cfg := config.Default()
	if opts.configFile != "" {
		loaded, err := config.Load(opts.configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if opts.outputDir != "" {
		cfg.Output.Dir = opts.outputDir
	}

	store := storage.New(cfg.Output.Dir, log)
	rep, err := store.LoadReport(opts.reportID)
	if err != nil {
		return err
	}

	dir, err := store.ReportDir(rep.ReportID)
	if err != nil {
		return err
	}

	for _, name := range opts.formats {
		format, err := report.GetFormat(name, log)
		if err != nil {
			return err
		}

		outputPath := filepath.Join(dir, "report."+format.Name())
		if err := format.Generate(rep, outputPath); err != nil {
			return fmt.Errorf("generating %s report: %w", name, err)
		}
		fmt.Fprintln(out, outputPath)
	}

	return nil
}
