// Package storage handles persistence of generated reports.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Killmanga-AI/reportgc/internal/models"
	"github.com/Killmanga-AI/reportgc/pkg/logger"
	"github.com/Killmanga-AI/reportgc/pkg/pathutil"
)

// reportsSubdir is where report documents live under the base directory.
const reportsSubdir = "reports"

// Storage saves and loads report documents under a base directory. Each
// report gets its own directory named after its report id, holding
// report.json plus any rendered artifacts.
type Storage struct {
	logger  logger.Logger
	baseDir string
}

// New creates a storage instance rooted at baseDir.
func New(baseDir string, log logger.Logger) *Storage {
	return &Storage{
		baseDir: baseDir,
		logger:  log,
	}
}

// ReportDir returns the directory for a report id without touching disk.
func (s *Storage) ReportDir(reportID string) (string, error) {
	return pathutil.JoinAndValidate(s.baseDir, reportsSubdir, reportID)
}

// SaveReport writes a report document to its directory and returns that
// directory.
func (s *Storage) SaveReport(report *models.Report) (string, error) {
	dir, err := s.ReportDir(report.ReportID)
	if err != nil {
		return "", fmt.Errorf("invalid report directory: %w", err)
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}

	path := filepath.Join(dir, "report.json")
	if err := s.saveJSON(path, report); err != nil {
		return "", fmt.Errorf("saving report: %w", err)
	}

	s.logger.Info("saved report", "id", report.ReportID, "path", path)
	return dir, nil
}

// LoadReport reads a report document by id. The id "latest" resolves to the
// most recently generated report.
func (s *Storage) LoadReport(reportID string) (*models.Report, error) {
	if reportID == "latest" {
		latest, err := s.FindLatestReport()
		if err != nil {
			return nil, fmt.Errorf("finding latest report: %w", err)
		}
		reportID = latest
	}

	dir, err := s.ReportDir(reportID)
	if err != nil {
		return nil, fmt.Errorf("invalid report directory: %w", err)
	}

	var report models.Report
	if err := s.loadJSON(filepath.Join(dir, "report.json"), &report); err != nil {
		return nil, fmt.Errorf("loading report %s: %w", reportID, err)
	}

	return &report, nil
}

// FindLatestReport returns the id of the most recently generated report.
// Report ids are timestamp-prefixed, so lexicographic order is
// chronological order.
func (s *Storage) FindLatestReport() (string, error) {
	ids, err := s.ListReports()
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("no reports found under %s", s.baseDir)
	}
	return ids[len(ids)-1], nil
}

// ListReports returns all stored report ids in ascending order.
func (s *Storage) ListReports() ([]string, error) {
	dir := filepath.Join(s.baseDir, reportsSubdir)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading reports directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			ids = append(ids, entry.Name())
		}
	}
	sort.Strings(ids)

	return ids, nil
}

func (s *Storage) saveJSON(path string, data any) (err error) {
	file, err := os.Create(path) // #nosec G304 - path validated by caller
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing file: %w", closeErr)
		}
	}()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}

	return nil
}

func (s *Storage) loadJSON(path string, data any) (err error) {
	file, err := os.Open(path) // #nosec G304 - path validated by caller
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing file: %w", closeErr)
		}
	}()

	if err := json.NewDecoder(file).Decode(data); err != nil {
		return fmt.Errorf("decoding JSON: %w", err)
	}

	return nil
}
