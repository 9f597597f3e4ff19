package main

import (
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/smartymode/folio/pkg/core"
)

const titleWidth = 48

var (
	listJSON     bool
	listCategory string
)

var listCmd = &cobra.Command{
	Use:     "list <collection>",
	Aliases: []string{"ls"},
	Short:   "List the unified documents of a collection",
	Long: `List every document of a collection (guides, reviews or pages), newest first.

Examples:
  folio list guides
  folio list reviews --category "Mirrorless Cameras"
  folio list pages --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		collection, err := collectionArg(args[0])
		if err != nil {
			return err
		}
		app, err := openApp(nil)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		var docs []core.Document
		if listCategory != "" {
			docs, err = app.Site.ByCategory(ctx, collection, listCategory)
		} else {
			docs, err = app.Site.ListAllDocuments(ctx, collection)
		}
		if err != nil {
			return err
		}

		if listJSON {
			return printJSON(cmd.OutOrStdout(), docs)
		}
		return renderTable(cmd.OutOrStdout(), docs)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listCategory, "category", "", "Only documents in this category (\"all\" disables the filter)")
}

func renderTable(w io.Writer, docs []core.Document) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)

	rows := make([][]string, 0, len(docs))
	for _, d := range docs {
		date := ""
		if t, ok := d.Date(); ok {
			date = t.Format("2006-01-02")
		}
		rows = append(rows, []string{
			d.Slug,
			runewidth.Truncate(d.Title(), titleWidth, "..."),
			date,
			d.Category(),
			sourceLabel(d.Source),
		})
	}

	table.Header([]string{"SLUG", "TITLE", "DATE", "CATEGORY", "SOURCE"})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
