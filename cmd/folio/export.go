package main

import (
	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/smartymode/folio/pkg/core"
	"github.com/smartymode/folio/pkg/export"
)

var (
	exportDir     string
	exportMetrics bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the unified content as JSON for the site build",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("dir") {
			cfg.Export.Dir = exportDir
		}
		if cmd.Flags().Changed("metrics") {
			cfg.Export.Metrics = exportMetrics
		}

		m, err := runExport(cmd)
		if err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ exported %d guides, %d reviews, %d pages to %s\n",
			m.Counts[core.Guides], m.Counts[core.Reviews], m.Counts[core.Pages], cfg.Export.Dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "Output directory (overrides export.dir)")
	exportCmd.Flags().BoolVar(&exportMetrics, "metrics", false, "Also write unification metrics as a Prometheus textfile")
}

// runExport builds a fresh app and writes one snapshot. Each run gets its
// own registry so counters describe that run only.
func runExport(cmd *cobra.Command) (*export.Manifest, error) {
	reg := prometheus.NewRegistry()
	app, err := openApp(reg)
	if err != nil {
		return nil, err
	}

	opts := []export.Option{export.WithLogger(logger)}
	if cfg.Export.Metrics {
		opts = append(opts, export.WithMetrics(reg))
	}
	return export.New(app.Site, cfg.Export.Dir, opts...).Export(cmd.Context())
}
