package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var readJSON bool

var readCmd = &cobra.Command{
	Use:   "read <collection> <slug>",
	Short: "Read one document",
	Long:  `Read a document by collection and slug. Prints the body by default, or the whole document with --json.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		collection, err := collectionArg(args[0])
		if err != nil {
			return err
		}
		app, err := openApp(nil)
		if err != nil {
			return err
		}

		doc, err := app.Site.GetDocument(cmd.Context(), collection, args[1])
		if err != nil {
			return fmt.Errorf("%s/%s: %w", collection, args[1], err)
		}

		if readJSON {
			return printJSON(cmd.OutOrStdout(), doc)
		}
		fmt.Fprint(cmd.OutOrStdout(), doc.Content)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
	readCmd.Flags().BoolVar(&readJSON, "json", false, "Output in JSON format")
}
