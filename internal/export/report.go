// Package export persists optimisation results: JSON report files, optionally
// xz-compressed, and PNG swatch sheets.
package export

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/huetune/internal/anneal"
	"github.com/jmylchreest/huetune/internal/cost"
	"github.com/jmylchreest/huetune/internal/palette"
	"github.com/jmylchreest/huetune/internal/security"
)

// maxReportSize bounds how much a report file may decompress to.
const maxReportSize = 16 * 1024 * 1024

// compressedSuffix selects xz compression.
const compressedSuffix = ".xz"

// Meta describes the run a report came from.
type Meta struct {
	Theme string
	Mode  string
	Seed  []byte
}

// ReportFile is the on-disk form of an anneal.Report.
type ReportFile struct {
	RunID      string           `json:"run_id"`
	CreatedAt  time.Time        `json:"created_at"`
	Theme      string           `json:"theme,omitempty"`
	Mode       string           `json:"mode,omitempty"`
	Seed       string           `json:"seed,omitempty"`
	StartCost  cost.TotalCost   `json:"start_cost"`
	FinalCost  cost.TotalCost   `json:"final_cost"`
	StartTotal float32          `json:"start_total"`
	FinalTotal float32          `json:"final_total"`
	Start      palette.Snapshot `json:"start"`
	Final      palette.Snapshot `json:"final"`
	Sweeps     int              `json:"sweeps"`
	DurationNS int64            `json:"duration_ns"`
	Weights    cost.Weights     `json:"weights"`
}

// NewReportFile wraps r with a fresh run id.
func NewReportFile(r anneal.Report, meta Meta) ReportFile {
	f := ReportFile{
		RunID:      uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		Theme:      meta.Theme,
		Mode:       meta.Mode,
		StartCost:  r.StartCost,
		FinalCost:  r.FinalCost,
		StartTotal: r.StartTotal(),
		FinalTotal: r.FinalTotal(),
		Start:      r.Start,
		Final:      r.Final,
		Sweeps:     r.Sweeps,
		DurationNS: r.Duration.Nanoseconds(),
		Weights:    r.Weights,
	}
	if len(meta.Seed) > 0 {
		f.Seed = hex.EncodeToString(meta.Seed)
	}
	return f
}

// Report converts the file back into an anneal.Report. Colours carry the
// 8-bit precision they were saved with.
func (f ReportFile) Report() anneal.Report {
	return anneal.Report{
		StartCost: f.StartCost,
		FinalCost: f.FinalCost,
		Start:     f.Start,
		Final:     f.Final,
		Duration:  time.Duration(f.DurationNS),
		Sweeps:    f.Sweeps,
		Weights:   f.Weights,
	}
}

// SaveReport writes f as indented JSON, xz-compressed if path ends in ".xz".
func SaveReport(path string, f ReportFile) (err error) {
	if err := security.ValidateOutputPath(path); err != nil {
		return err
	}

	out, err := os.Create(path) // #nosec G304 - Output path chosen by the user
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close report file: %w", closeErr)
		}
	}()

	var w io.Writer = out
	var xzw *xz.Writer
	if strings.HasSuffix(path, compressedSuffix) {
		xzw, err = xz.NewWriter(out)
		if err != nil {
			return fmt.Errorf("failed to create xz writer: %w", err)
		}
		w = xzw
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if xzw != nil {
		if err := xzw.Close(); err != nil {
			return fmt.Errorf("failed to finish xz stream: %w", err)
		}
	}
	return nil
}

// LoadReport reads a file written by SaveReport.
func LoadReport(path string) (ReportFile, error) {
	in, err := os.Open(path) // #nosec G304 - Report path chosen by the user
	if err != nil {
		return ReportFile{}, fmt.Errorf("failed to open report: %w", err)
	}
	defer in.Close()

	var r io.Reader = in
	if strings.HasSuffix(path, compressedSuffix) {
		xzr, err := xz.NewReader(in)
		if err != nil {
			return ReportFile{}, fmt.Errorf("failed to create xz reader: %w", err)
		}
		r = xzr
	}

	var f ReportFile
	dec := json.NewDecoder(security.NewLimitedReader(r, maxReportSize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return ReportFile{}, fmt.Errorf("failed to decode report %s: %w", path, err)
	}
	if _, err := uuid.Parse(f.RunID); err != nil {
		return ReportFile{}, fmt.Errorf("report %s has invalid run id: %w", path, err)
	}
	return f, nil
}
