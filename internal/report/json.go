package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Killmanga-AI/reportgc/internal/models"
	"github.com/Killmanga-AI/reportgc/pkg/logger"
)

// jsonFormat writes the report document as indented JSON. This is the
// canonical machine-readable artifact; every other renderer is a view of
// the same document.
type jsonFormat struct {
	logger logger.Logger
}

// Generate writes the report to outputPath.
func (f *jsonFormat) Generate(report *models.Report, outputPath string) (err error) {
	file, err := os.Create(outputPath) // #nosec G304 - caller controls output path
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing output file: %w", closeErr)
		}
	}()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	f.logger.Info("generated JSON report", "path", outputPath)
	return nil
}

// Name returns the format identifier.
func (f *jsonFormat) Name() string {
	return "json"
}

// Description returns a human-readable description.
func (f *jsonFormat) Description() string {
	return "Machine-readable report document"
}
