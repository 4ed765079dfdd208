// Package list implements the list command for browsing report history.
package list

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Killmanga-AI/reportgc/internal/config"
	"github.com/Killmanga-AI/reportgc/internal/database"
)

type options struct {
	configFile string
	outputDir  string
	limit      int
}

// NewCommand creates the list command.
func NewCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List previously generated reports",
		Example: `  reportgc list --limit 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.configFile, "config", "", "Configuration file")
	cmd.Flags().StringVar(&opts.outputDir, "output", "", "Data directory (overrides config)")
	cmd.Flags().IntVar(&opts.limit, "limit", 20, "Maximum number of reports to show")

	return cmd
}

func run(ctx context.Context, out io.Writer, opts *options) error {
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

	db, err := database.New(filepath.Join(cfg.Output.Dir, "reportgc.db"))
	if err != nil {
		return fmt.Errorf("opening report history: %w", err)
	}
	defer func() { _ = db.Close() }()

	records, err := db.ListReports(ctx, opts.limit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "No reports found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "REPORT\tGENERATED\tGRADE\tFINDINGS\tCRITICAL\tKEV\tEFFORT")
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%dh\n",
			rec.ReportID, rec.GeneratedAt, rec.Grade,
			rec.TotalFindings, rec.Critical, rec.CisaKEVCount,
			rec.TotalEffortHours,
		)
	}

	return w.Flush()
}
