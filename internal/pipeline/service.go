package pipeline

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gstreco/internal"
	"gstreco/internal/config"
	"gstreco/internal/storage"
)

// Service runs reconciliations over ledger files and records each run.
type Service struct {
	db  *storage.DB
	cfg config.Config
}

func NewService(db *storage.DB, cfg config.Config) *Service {
	return &Service{db: db, cfg: cfg}
}

// RunResult summarizes one completed run for the CLI.
type RunResult struct {
	TraceID  string
	Rows     int
	Summary  internal.Summary
	Warnings int
	Output   string
}

// RunFiles reconciles two ledger files and writes the reconciled workbook to
// outputPath, or to a timestamped file under the configured output directory
// when outputPath is empty. The run is recorded in storage regardless of the
// caller keeping the output.
func (s *Service) RunFiles(path2b, pathBooks, outputPath string, opts Options) (RunResult, error) {
	start := time.Now()

	if strings.TrimSpace(outputPath) == "" {
		name := fmt.Sprintf("reconciliation-%s.xlsx", start.Format("20060102-150405"))
		outputPath = filepath.Join(s.cfg.OutputDir, name)
	}

	gst2b, err := ReadTable(path2b, "2B File")
	if err != nil {
		return RunResult{}, fmt.Errorf("reading 2B file: %w", err)
	}
	books, err := ReadTable(pathBooks, "Purchase File")
	if err != nil {
		return RunResult{}, fmt.Errorf("reading purchase file: %w", err)
	}

	res, err := Reconcile(gst2b, books, opts)
	if err != nil {
		return RunResult{}, err
	}

	if err := ExportResultToXLSX(res, outputPath); err != nil {
		return RunResult{}, fmt.Errorf("writing report: %w", err)
	}

	trace := traceID()
	totalMs := float64(time.Since(start).Milliseconds())
	if err := s.db.InsertRun(trace, path2b, pathBooks, outputPath, res.Summary.Counts, len(res.Warnings), totalMs); err != nil {
		return RunResult{}, fmt.Errorf("recording run: %w", err)
	}

	return RunResult{
		TraceID:  trace,
		Rows:     len(res.Rows),
		Summary:  res.Summary,
		Warnings: len(res.Warnings),
		Output:   outputPath,
	}, nil
}

func traceID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
