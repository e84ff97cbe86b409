package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zeusync/replicanet/internal/core/replica/component"
)

func kindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the component kinds and their roles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KIND\tNAME\tCONSTRUCTION\tSERIALIZATION")
			for _, k := range component.Known() {
				_, construction := component.LookupConstruction(k)
				_, serialization := component.LookupSerialization(k)
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", uint32(k), k, construction, serialization)
			}
			return tw.Flush()
		},
	}
}
