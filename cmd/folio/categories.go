package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories <collection>",
	Short: "List the distinct categories of a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		collection, err := collectionArg(args[0])
		if err != nil {
			return err
		}
		app, err := openApp(nil)
		if err != nil {
			return err
		}
		cats, err := app.Site.Categories(cmd.Context(), collection)
		if err != nil {
			return err
		}
		for _, c := range cats {
			fmt.Fprintln(cmd.OutOrStdout(), c)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
