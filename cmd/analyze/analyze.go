// Package analyze implements the analyze command: scan file in, graded
// execution plan out.
package analyze

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Killmanga-AI/reportgc/internal/config"
	"github.com/Killmanga-AI/reportgc/internal/database"
	"github.com/Killmanga-AI/reportgc/internal/engine"
	"github.com/Killmanga-AI/reportgc/internal/models"
	"github.com/Killmanga-AI/reportgc/internal/publish"
	"github.com/Killmanga-AI/reportgc/internal/report"
	"github.com/Killmanga-AI/reportgc/internal/storage"
	"github.com/Killmanga-AI/reportgc/pkg/logger"
)

type options struct {
	input      string
	configFile string
	reportID   string
	outputDir  string
	formats    []string
	doPublish  bool
}

// NewCommand creates the analyze command.
func NewCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Classify a scan file into a graded execution plan",
		Long: `Analyze reads Trivy JSON or SARIF output, classifies every finding
into a risk tier with a remediation-effort estimate, and stores the
resulting execution-plan report.`,
		Example: `  reportgc analyze --input trivy-scan.json
  reportgc analyze --input results.sarif --format json,html --publish`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Scan file to analyze (Trivy JSON or SARIF)")
	_ = cmd.MarkFlagRequired("input")
	cmd.Flags().StringVar(&opts.configFile, "config", "", "Configuration file")
	cmd.Flags().StringVar(&opts.reportID, "report-id", "", "Override the generated report identifier")
	cmd.Flags().StringVar(&opts.outputDir, "output", "", "Data directory (overrides config)")
	cmd.Flags().StringSliceVar(&opts.formats, "format", nil, "Output format(s) (overrides config)")
	cmd.Flags().BoolVar(&opts.doPublish, "publish", false, "Upload rendered artifacts to the configured S3 bucket")

	return cmd
}

func run(ctx context.Context, out io.Writer, opts *options) error {
	log := logger.GetGlobalLogger().With("run_id", uuid.NewString())

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(opts.input) // #nosec G304 - user-specified scan file
	if err != nil {
		return fmt.Errorf("reading scan file: %w", err)
	}

	eng := engine.New(log)
	rep := eng.Analyze(raw, opts.reportID)

	log.Info("analyzed scan",
		"input", opts.input,
		"report_id", rep.ReportID,
		"grade", rep.Grade,
		"findings", rep.Summary.TotalFindings,
	)

	store := storage.New(cfg.Output.Dir, log)
	dir, err := store.SaveReport(rep)
	if err != nil {
		return fmt.Errorf("storing report: %w", err)
	}

	artifacts, err := renderFormats(rep, dir, cfg.Output.Formats, log)
	if err != nil {
		return err
	}

	if err := recordHistory(ctx, cfg, rep, dir); err != nil {
		return err
	}

	if opts.doPublish {
		if !cfg.PublishEnabled() {
			return fmt.Errorf("--publish requires publish.bucket in the config")
		}
		if err := publishArtifacts(ctx, cfg, rep, artifacts, log); err != nil {
			return err
		}
	}

	fmt.Fprintln(out, report.Summary(rep))
	return nil
}

func loadConfig(opts *options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configFile != "" {
		loaded, err := config.Load(opts.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if opts.outputDir != "" {
		cfg.Output.Dir = opts.outputDir
	}
	if len(opts.formats) > 0 {
		cfg.Output.Formats = opts.formats
	}

	return cfg, nil
}

// renderFormats renders the report in every requested format into the
// report directory and returns the artifact paths.
func renderFormats(rep *models.Report, dir string, formats []string, log logger.Logger) ([]string, error) {
	var artifacts []string
	for _, name := range formats {
		format, err := report.GetFormat(name, log)
		if err != nil {
			return nil, err
		}

		outputPath := filepath.Join(dir, "report."+format.Name())
		if err := format.Generate(rep, outputPath); err != nil {
			return nil, fmt.Errorf("generating %s report: %w", name, err)
		}
		artifacts = append(artifacts, outputPath)
	}

	return artifacts, nil
}

func recordHistory(ctx context.Context, cfg *config.Config, rep *models.Report, dir string) error {
	db, err := database.New(filepath.Join(cfg.Output.Dir, "reportgc.db"))
	if err != nil {
		return fmt.Errorf("opening report history: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.InsertReport(ctx, database.RecordFromReport(rep, dir)); err != nil {
		return fmt.Errorf("recording report history: %w", err)
	}

	return nil
}

var contentTypes = map[string]string{
	".json": "application/json",
	".html": "text/html",
}

func publishArtifacts(ctx context.Context, cfg *config.Config, rep *models.Report, artifacts []string, log logger.Logger) error {
	publisher, err := publish.NewS3Publisher(ctx, cfg.Publish.Bucket, cfg.Publish.Prefix, cfg.Publish.Region, log)
	if err != nil {
		return fmt.Errorf("creating publisher: %w", err)
	}

	for _, artifact := range artifacts {
		body, err := os.ReadFile(artifact) // #nosec G304 - paths produced by renderFormats
		if err != nil {
			return fmt.Errorf("reading artifact %s: %w", artifact, err)
		}

		ext := filepath.Ext(artifact)
		contentType, ok := contentTypes[ext]
		if !ok {
			contentType = "application/octet-stream"
		}

		name := filepath.Join(rep.ReportID, filepath.Base(artifact))
		if _, err := publisher.Publish(ctx, name, contentType, body); err != nil {
			return err
		}
	}

	return nil
}
