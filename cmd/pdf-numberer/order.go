// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-numberer/internal/pipeline"
)

func newOrderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "order [dir]",
		Short: "Print the PDFs of a folder in merge order",
		Long: `Order lists the PDFs that a run would merge, in the order they would be
merged, with the sort key derived from each filename. Nothing is written.

The folder is the argument, or the configured dir, or the current folder.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			switch {
			case len(args) == 1:
				dir = args[0]
			case a.v.IsSet("dir"):
				dir = a.v.GetString("dir")
			}
			entries, err := pipeline.Plan(dir, nil)
			if err != nil {
				return err
			}
			pipeline.PrintPlan(a.out, entries)
			return nil
		},
	}
}
