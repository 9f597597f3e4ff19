package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/smartymode/folio/internal/config"
	"github.com/smartymode/folio/internal/platform"
)

var (
	cfgFile string
	verbose bool
	noColor bool

	// Set by PersistentPreRunE for every subcommand.
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Unified content for the review site",
	Long: `folio reads guides, reviews and pages from the editor working copy,
the local content tree and the product catalog, and merges them into one
view. Editor content wins over local files, which win over the catalog.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			color.NoColor = true
		}

		root := siteRoot()
		if err := config.LoadDotEnv(root); err != nil {
			return err
		}

		file := cfgFile
		if file == "" {
			if candidate := filepath.Join(root, "folio.yaml"); fileExists(candidate) {
				file = candidate
			}
		}
		loaded, err := config.Load(file)
		if err != nil {
			return err
		}
		resolvePaths(loaded, root)
		cfg = loaded

		logger = newLogger(cmd, cfg)
		slog.SetDefault(logger)
		logger.Debug("configuration loaded",
			"root", root,
			"content_dir", cfg.Content.Dir,
			"editor", cfg.Editor.Enabled,
			"catalog", cfg.Catalog.Enabled)
		return nil
	},
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: folio.yaml in the site root)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

func newLogger(cmd *cobra.Command, c *config.Config) *slog.Logger {
	level := c.LogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), opts))
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
}

// siteRoot is the nearest directory above the working directory that
// looks like a site, or the working directory itself.
func siteRoot() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	if root, err := platform.FindRoot(wd); err == nil {
		return root
	}
	return wd
}

// resolvePaths anchors relative directories at the site root so commands
// behave the same from any subdirectory.
func resolvePaths(c *config.Config, root string) {
	for _, p := range []*string{&c.Content.Dir, &c.Editor.Dir, &c.Export.Dir} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(root, *p)
		}
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
