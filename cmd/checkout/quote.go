package main

import (
	"fmt"

	"homecare-booking/pkg/checkout"

	"github.com/spf13/cobra"
)

func quoteCmd() *cobra.Command {
	var req checkout.QuoteRequest

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Ask for a quote without paying",
		Long: `Send a quote request to the business. Nothing is charged.

Examples:
  checkout quote --name "Sam Lee" --email sam@example.com --phone 416-555-0199 \
    --service drywall --time Morning --message "Patch two holes"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api := checkout.NewAPIClient(serverURL, httpClient())
			if err := api.RequestQuote(cmd.Context(), req); err != nil {
				return fmt.Errorf("send quote request: %w", err)
			}
			fmt.Println("Quote request sent. We will be in touch shortly.")
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "your name")
	cmd.Flags().StringVar(&req.Email, "email", "", "e-mail address")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&req.Service, "service", "", "service id, see 'checkout services'")
	cmd.Flags().StringVar(&req.Date, "date", "", "preferred date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.Time, "time", "", "preferred time of day")
	cmd.Flags().StringVar(&req.Message, "message", "", "anything we should know")
	for _, name := range []string{"name", "email", "phone", "service"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
