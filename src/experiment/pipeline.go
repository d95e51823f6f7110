package experiment

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/iafilius/PlacementBoxPlots/src/analysis"
	"github.com/iafilius/PlacementBoxPlots/src/charts"
	"github.com/iafilius/PlacementBoxPlots/src/extract"
	"github.com/iafilius/PlacementBoxPlots/src/logging"
)

// Options controls one pipeline run.
type Options struct {
	DataDir string // parent of the variant directories
	OutDir  string // where charts and reports are written
	Format  string // overrides the variant's image format when set
	Trend   bool   // also write a per-model mean trend PNG per chart
	Caption bool   // stamp the trend charts with a short caption
	Report  bool   // write <tag>_report.json with the group summaries

	Renderer *charts.Renderer // size and palette; models always follow the variant
}

// Result lists what a run wrote.
type Result struct {
	Files  []string
	Report analysis.Report
}

// Run renders every (solver, metric) chart of v. It stops at the first error;
// files written before the failure are left in place and listed in the result.
// A pair without any observation is skipped with a warning.
func Run(v Variant, opts Options) (*Result, error) {
	defer logging.TimeTrack(time.Now(), "variant "+v.Tag)
	if opts.Format != "" {
		v.Format = opts.Format
	}
	v.applyDefaults()
	if err := v.Validate(); err != nil {
		return nil, err
	}
	r := charts.NewRenderer()
	if opts.Renderer != nil {
		rc := *opts.Renderer
		r = &rc
	}
	r.Models = v.Models
	ex, err := v.Extractor()
	if err != nil {
		return nil, err
	}
	inputs, err := v.Inputs(opts.DataDir)
	if err != nil {
		return nil, err
	}
	outDir := opts.OutDir
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create out dir: %w", err)
	}

	res := &Result{Report: analysis.Report{Variant: v.Tag, GeneratedAt: time.Now().UTC()}}
	for _, solver := range v.Solvers {
		for _, metric := range v.Metrics {
			cr, files, err := runPair(&v, ex, r, inputs, solver, metric, outDir, opts)
			res.Files = append(res.Files, files...)
			if err != nil {
				return res, fmt.Errorf("%s %s/%s: %w", v.Tag, solver, metric, err)
			}
			res.Report.Charts = append(res.Report.Charts, cr)
		}
	}
	if opts.Report {
		path := filepath.Join(outDir, v.Tag+"_report.json")
		if err := analysis.WriteReport(path, res.Report); err != nil {
			return res, err
		}
		res.Files = append(res.Files, path)
	}
	return res, nil
}

func runPair(v *Variant, ex *extract.Extractor, r *charts.Renderer, inputs []extract.Input, solver, metric, outDir string, opts Options) (analysis.ChartReport, []string, error) {
	cr := analysis.ChartReport{Solver: solver, Metric: metric}
	spec, err := v.ChartSpec(solver, metric)
	if err != nil {
		return cr, nil, err
	}
	obs, err := ex.Extract(inputs, solver, metric)
	if err != nil {
		return cr, nil, err
	}
	if len(obs) == 0 {
		logging.Warnf("[%s %s %s] no observations; chart skipped", v.Tag, solver, metric)
		return cr, nil, nil
	}
	sums := analysis.Summarize(obs, v.Models)
	cr.Observations = len(obs)
	cr.Groups = sums

	var files []string
	cr.File = v.OutputName(solver, metric)
	path := filepath.Join(outDir, cr.File)
	if err := r.Render(obs, spec, path); err != nil {
		return cr, nil, err
	}
	files = append(files, path)
	logging.Infof("[%s %s %s] wrote %s observations=%d groups=%d", v.Tag, solver, metric, path, len(obs), len(sums))

	if opts.Trend {
		cr.TrendFile = v.TrendName(solver, metric)
		tc := charts.TrendChart{Title: fmt.Sprintf("%s %s %s: group means", v.Tag, solver, metric), Models: v.Models}
		if opts.Caption {
			tc.Caption = fmt.Sprintf("%s | %d observations in %d groups", spec.YLabel, len(obs), len(sums))
		}
		tpath := filepath.Join(outDir, cr.TrendFile)
		if err := tc.Render(sums, spec, tpath); err != nil {
			return cr, files, err
		}
		files = append(files, tpath)
		logging.Debugf("[%s %s %s] wrote %s", v.Tag, solver, metric, tpath)
	}
	return cr, files, nil
}

// RunAll runs the variants named by tags, or every configured variant when tags
// is empty, and stops at the first failure.
func RunAll(cfg *Config, tags []string, opts Options) ([]string, error) {
	if len(tags) == 0 {
		tags = cfg.Tags()
	}
	var files []string
	for _, tag := range tags {
		v, err := cfg.Variant(tag)
		if err != nil {
			return files, err
		}
		res, err := Run(v, opts)
		if res != nil {
			files = append(files, res.Files...)
		}
		if err != nil {
			return files, err
		}
	}
	return files, nil
}
