// Package extract turns semicolon-separated experiment result files into
// long-form observation sets.
//
// Two row layouts are supported:
//   - WidePivot: one row per phase, one column per <Metric>-<Model>-<Solver>.
//     The independent value is the 1-based row counter within each file.
//   - Filter: each row names its own Solver and Model; rows for other solvers
//     are skipped and the independent value comes from the Input descriptor.
//
// Any unreadable file, missing column or non-integer value aborts the whole
// extraction; no partial set is returned.
package extract

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/iafilius/PlacementBoxPlots/src/logging"
	"github.com/iafilius/PlacementBoxPlots/src/types"
)

var (
	ErrMissingColumn = errors.New("missing column")
	ErrBadValue      = errors.New("non-integer value")
	ErrEmptyFile     = errors.New("missing header row")
)

// Column names used by filter-mode files.
const (
	SolverColumn = "Solver"
	ModelColumn  = "Model"
)

// DefaultDelimiter separates fields in every result file the simulator writes.
const DefaultDelimiter = ';'

// Mode selects the row layout.
type Mode int

const (
	WidePivot Mode = iota
	Filter
)

func (m Mode) String() string {
	switch m {
	case WidePivot:
		return "wide"
	case Filter:
		return "filter"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts "wide" (also "wide-pivot", "pivot") or "filter".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wide", "wide-pivot", "pivot":
		return WidePivot, nil
	case "filter":
		return Filter, nil
	}
	return 0, fmt.Errorf("unknown extractor mode %q", s)
}

// Input describes one result file. X is only used in Filter mode.
type Input struct {
	Path string
	Run  int
	X    float64
}

// PivotColumn returns the wide-pivot column name for a metric/model/solver triple.
func PivotColumn(metric, model, solver string) string {
	return metric + "-" + model + "-" + solver
}

// Extractor reads Inputs in order and emits observations.
type Extractor struct {
	Mode      Mode
	Models    []string // wide-pivot column order; defaults to types.Models
	Delimiter rune     // defaults to DefaultDelimiter
}

// New returns an Extractor with the canonical model list and delimiter.
func New(mode Mode) *Extractor {
	return &Extractor{Mode: mode, Models: types.Models, Delimiter: DefaultDelimiter}
}

// Extract reads every input and returns the observations for (solver, metric).
func (e *Extractor) Extract(inputs []Input, solver, metric string) (types.ObservationSet, error) {
	var out types.ObservationSet
	for _, in := range inputs {
		var err error
		before := len(out)
		out, err = e.extractFile(in, solver, metric, out)
		if err != nil {
			return nil, err
		}
		logging.Debugf("read %s run=%d: %d observations", in.Path, in.Run, len(out)-before)
	}
	return out, nil
}

func (e *Extractor) models() []string {
	if len(e.Models) == 0 {
		return types.Models
	}
	return e.Models
}

func (e *Extractor) extractFile(in Input, solver, metric string, out types.ObservationSet) (types.ObservationSet, error) {
	f, err := os.Open(in.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = e.Delimiter
	if r.Comma == 0 {
		r.Comma = DefaultDelimiter
	}
	r.ReuseRecord = true
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", in.Path, ErrEmptyFile)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", in.Path, err)
	}
	cols := indexHeader(header)

	switch e.Mode {
	case WidePivot:
		return e.readWide(r, in, cols, solver, metric, out)
	case Filter:
		return readFiltered(r, in, cols, solver, metric, out)
	}
	return nil, fmt.Errorf("%s: unsupported mode %s", in.Path, e.Mode)
}

func (e *Extractor) readWide(r *csv.Reader, in Input, cols map[string]int, solver, metric string, out types.ObservationSet) (types.ObservationSet, error) {
	models := e.models()
	idx := make([]int, len(models))
	for i, m := range models {
		key := PivotColumn(metric, m, solver)
		c, ok := cols[key]
		if !ok {
			return nil, fmt.Errorf("%s: %w %q", in.Path, ErrMissingColumn, key)
		}
		idx[i] = c
	}
	phase := 1
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", in.Path, err)
		}
		for i, m := range models {
			v, err := parseValue(r, in.Path, rec, idx[i], PivotColumn(metric, m, solver))
			if err != nil {
				return nil, err
			}
			out = append(out, types.Observation{X: float64(phase), Run: in.Run, Model: m, Value: v})
		}
		phase++
	}
}

func readFiltered(r *csv.Reader, in Input, cols map[string]int, solver, metric string, out types.ObservationSet) (types.ObservationSet, error) {
	var idx [3]int
	for i, name := range []string{SolverColumn, ModelColumn, metric} {
		c, ok := cols[name]
		if !ok {
			return nil, fmt.Errorf("%s: %w %q", in.Path, ErrMissingColumn, name)
		}
		idx[i] = c
	}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", in.Path, err)
		}
		if rec[idx[0]] != solver {
			continue
		}
		v, err := parseValue(r, in.Path, rec, idx[2], metric)
		if err != nil {
			return nil, err
		}
		out = append(out, types.Observation{X: in.X, Run: in.Run, Model: rec[idx[1]], Value: v})
	}
}

// indexHeader maps column names to positions; a repeated name keeps its last position.
func indexHeader(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	return cols
}

func parseValue(r *csv.Reader, path string, rec []string, idx int, column string) (float64, error) {
	raw := strings.TrimSpace(rec[idx])
	n, err := strconv.Atoi(raw)
	if err != nil {
		line, _ := r.FieldPos(idx)
		return 0, fmt.Errorf("%s:%d: %w in column %q: %q", path, line, ErrBadValue, column, raw)
	}
	return float64(n), nil
}
