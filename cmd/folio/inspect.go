package main

import (
	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"
)

type componentState struct {
	Type  string `json:"type"`
	State any    `json:"state"`
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the wired components and their state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(nil)
		if err != nil {
			return err
		}

		var out []componentState
		for _, c := range app.Components() {
			s := componentState{Type: "unknown"}
			if comp, ok := c.(introspection.Component); ok {
				s.Type = comp.ComponentType()
			}
			if intro, ok := c.(introspection.Introspectable); ok {
				s.State = intro.State()
			}
			out = append(out, s)
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
