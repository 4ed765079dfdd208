// Package engine implements the scan classification and aggregation engine.
// It normalizes Trivy and SARIF payloads into a uniform finding model and
// aggregates the findings into a graded execution-plan report.
package engine

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/Killmanga-AI/reportgc/internal/models"
	"github.com/Killmanga-AI/reportgc/pkg/logger"
)

// Engine turns one raw scan payload into one report. It keeps no state
// between calls, so a single Engine may be shared across goroutines.
type Engine struct {
	logger logger.Logger
	now    func() time.Time
}

// Option represents a functional option for configuring the engine.
type Option func(*Engine)

// WithClock overrides the engine's time source, primarily for tests that
// need deterministic report identifiers and timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an engine.
func New(log logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		logger: log,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Analyze processes one scan snapshot end-to-end. The payload is raw scanner
// JSON: a top-level "runs" key selects the SARIF path, anything else is
// treated as native Trivy output. Input the engine does not recognize
// degrades to an empty report rather than an error, since absence of
// structure is indistinguishable from a scan that found nothing; validating
// the payload up front is the ingestion caller's job. A non-empty reportID
// replaces the generated identifier.
func (e *Engine) Analyze(raw []byte, reportID string) *models.Report {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		e.logger.Warn("scan payload is not a JSON object, reporting zero findings", "error", err)
		return e.aggregate(nil, reportID)
	}

	var findings []models.Finding
	if _, ok := top["runs"]; ok {
		findings = e.parseSARIF(raw)
	} else {
		findings = e.parseTrivy(raw)
	}

	e.logger.Debug("normalized scan payload", "findings", len(findings))

	return e.aggregate(findings, reportID)
}

// safeFloat coerces a decoded JSON value to a float64, falling back when
// the value is missing or unparseable. Coercion failures are a local
// concern and never propagate.
func safeFloat(raw any, fallback float64) float64 {
	switch v := raw.(type) {
	case float64:
		return v
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	case int:
		return float64(v)
	}
	return fallback
}

// present reports whether a decoded JSON score value is usable at all:
// nil, zero, and empty-string scores are treated as absent so the next
// source in the precedence order gets a chance.
func present(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return false
	case float64:
		return v != 0
	case string:
		return strings.TrimSpace(v) != ""
	default:
		return true
	}
}

// stringOr returns s, or fallback when s is empty.
func stringOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
