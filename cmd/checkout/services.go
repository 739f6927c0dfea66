package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"homecare-booking/pkg/checkout"

	"github.com/spf13/cobra"
)

func servicesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "services",
		Short: "Show the price list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api := checkout.NewAPIClient(serverURL, httpClient())
			list, err := api.Services(cmd.Context())
			if err != nil {
				return fmt.Errorf("load services: %w", err)
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(list)
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSERVICE\tCATEGORY\tPRICE")
			for _, s := range list.Services {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.ID, s.Label, s.Category, s.DisplayPrice)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}
