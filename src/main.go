// placementplots entrypoint.
//
// Renders the box-plot reports of the placement study: for every experiment
// variant and every (solver, metric) pair, the per-run result files are read
// into observations and drawn as one grouped box plot per pair.
//
// Commands:
//   - render [variant...]: render the named variants (all when none given).
//   - list: print the configured variants and their chart table.
//
// Variants come from the built-in table, optionally overridden or extended by a
// YAML file (--config). Output file names are <tag>_<solver>_<metric>.<format>.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iafilius/PlacementBoxPlots/src/experiment"
	"github.com/iafilius/PlacementBoxPlots/src/logging"
)

var (
	logLevel    string
	verbose     bool
	configPath  string
	dataDir     string
	outDir      string
	format      string
	withTrend   bool
	withCaption bool
	withReport  bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "placementplots",
		Short:         "Render box-plot reports of the placement experiments",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logLevel = "debug"
			}
			if _, err := logging.ParseLevel(logLevel); err != nil {
				return err
			}
			logging.SetLogLevel(logLevel)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Sync()
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug|info|warn|error)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Shorthand for --log-level=debug")
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML variants file overriding or extending the built-in variants")

	render := &cobra.Command{
		Use:   "render [variant...]",
		Short: "Render the charts of the given variants (all when none given)",
		RunE:  runRender,
	}
	render.Flags().StringVar(&dataDir, "data-dir", ".", "Directory holding one sub-directory per variant")
	render.Flags().StringVar(&outDir, "out-dir", ".", "Directory the charts are written to")
	render.Flags().StringVar(&format, "format", "", "Override the image format (pdf|png|svg|eps|jpg|tif)")
	render.Flags().BoolVar(&withTrend, "trend", false, "Also write a per-model mean trend PNG for every chart")
	render.Flags().BoolVar(&withCaption, "caption", false, "Stamp trend charts with a short caption")
	render.Flags().BoolVar(&withReport, "report", false, "Write <tag>_report.json with the group summaries")

	list := &cobra.Command{
		Use:   "list",
		Short: "List the configured variants",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	root.AddCommand(render, list)
	return root
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := experiment.Load(configPath)
	if err != nil {
		return err
	}
	opts := experiment.Options{
		DataDir: dataDir,
		OutDir:  outDir,
		Format:  format,
		Trend:   withTrend,
		Caption: withCaption,
		Report:  withReport,
	}
	files, err := experiment.RunAll(cfg, args, opts)
	logging.Infof("wrote %d files to %s", len(files), outDir)
	return err
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := experiment.Load(configPath)
	if err != nil {
		return err
	}
	return printVariants(cmd.OutOrStdout(), cfg)
}

func printVariants(w io.Writer, cfg *experiment.Config) error {
	for _, v := range cfg.Variants {
		fmt.Fprintf(w, "%s\t%s\tmode=%s dir=%s format=%s\n", v.Tag, v.XLabel, v.Mode, v.Dir, v.Format)
		for _, s := range v.Solvers {
			for _, m := range v.Metrics {
				spec, err := v.ChartSpec(s, m)
				if err != nil {
					return err
				}
				var extra []string
				if spec.YLimits != nil {
					extra = append(extra, fmt.Sprintf("ylim=(%g,%g)", spec.YLimits.Min, spec.YLimits.Max))
				}
				extra = append(extra, "scale="+string(spec.YScale))
				if !spec.ShowMeans {
					extra = append(extra, "no-means")
				}
				if spec.Legend != "" {
					extra = append(extra, "legend="+string(spec.Legend))
				}
				fmt.Fprintf(w, "  %s\t%s\t%s\n", v.OutputName(s, m), spec.YLabel, strings.Join(extra, " "))
			}
		}
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
