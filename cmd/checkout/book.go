package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"homecare-booking/pkg/checkout"

	"github.com/spf13/cobra"
)

const maxCardAttempts = 3

func bookCmd() *cobra.Command {
	var (
		details checkout.Details
		billing checkout.Billing
		card    cardFlags
	)

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book a service and pay by card",
		Long: `Book a service and pay for it. The card goes straight to the payment
processor; the booking server only sees the payment reference.

Card details not given as flags are prompted for. A declined card can be
retried with another card against the same payment.

Examples:
  checkout book --service deluxe --name "Jane Doe" --email jane@example.com \
    --phone 416-555-0100 --date 2026-12-01
  checkout book --service carpentry --quantity 3 ... --card 4242424242424242 --exp 12/30 --cvc 123`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := httpClient()
			api := checkout.NewAPIClient(serverURL, client)

			cfg, err := api.PaymentConfig(ctx)
			if err != nil {
				return fmt.Errorf("load payment config: %w", err)
			}
			confirmer := checkout.NewConfirmer(cfg.PublishableKey, stripeURL, client)
			flow := checkout.NewFlow(api, confirmer)

			billing.Name, billing.Email, billing.Phone = details.Name, details.Email, details.Phone

			if err := flow.Submit(ctx, details); err != nil {
				return fmt.Errorf("start booking: %w", err)
			}
			fmt.Printf("Payment %s created.\n", flow.PaymentIntentID())

			in := bufio.NewReader(os.Stdin)
			for attempt := 1; flow.State() != checkout.StateProcessorSucceeded; attempt++ {
				if attempt > maxCardAttempts {
					return fmt.Errorf("payment not completed: %s", flow.LastFailure())
				}

				c, err := card.resolve(in, attempt > 1)
				if err != nil {
					return err
				}

				result, err := flow.Pay(ctx, c, billing)
				if err != nil {
					return fmt.Errorf("pay: %w", err)
				}
				if result.Status == checkout.ConfirmFailed {
					fmt.Fprintf(os.Stderr, "Payment failed: %s\n", result.FailureReason)
				}
			}

			booking, err := flow.Finalize(ctx)
			switch {
			case errors.Is(err, checkout.ErrAlreadyConfirmed):
				fmt.Println("This payment was already confirmed as a booking.")
				return nil
			case err != nil:
				return fmt.Errorf("confirm booking: %w", err)
			}

			fmt.Printf("Booking confirmed: %s\n", booking.Reference)
			fmt.Printf("  %s x%d, %s\n", booking.ServiceLabel, booking.Quantity, formatAmount(booking.Amount, booking.Currency))
			if booking.Date != "" {
				fmt.Printf("  Preferred date: %s\n", booking.Date)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&details.Service, "service", "", "service id, see 'checkout services'")
	f.IntVar(&details.Quantity, "quantity", 1, "jobs or hours")
	f.StringVar(&details.Name, "name", "", "your name")
	f.StringVar(&details.Email, "email", "", "e-mail address for the receipt")
	f.StringVar(&details.Phone, "phone", "", "phone number")
	f.StringVar(&details.PreferredDate, "date", "", "preferred date (YYYY-MM-DD)")
	f.StringVar(&details.Notes, "notes", "", "notes for the crew")
	f.StringVar(&billing.PostalCode, "postal-code", "", "billing postal code")
	f.StringVar(&billing.Country, "country", "CA", "billing country")
	f.StringVar(&card.number, "card", "", "card number")
	f.StringVar(&card.exp, "exp", "", "card expiry (MM/YY)")
	f.StringVar(&card.cvc, "cvc", "", "card security code")
	for _, name := range []string{"service", "name", "email", "phone"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

type cardFlags struct {
	number string
	exp    string
	cvc    string
}

// resolve uses the flags on the first attempt and prompts otherwise.
func (f cardFlags) resolve(in *bufio.Reader, retry bool) (checkout.Card, error) {
	number, exp, cvc := f.number, f.exp, f.cvc
	if retry || number == "" {
		var err error
		if number, err = prompt(in, "Card number: "); err != nil {
			return checkout.Card{}, err
		}
		if exp, err = prompt(in, "Expiry (MM/YY): "); err != nil {
			return checkout.Card{}, err
		}
		if cvc, err = prompt(in, "CVC: "); err != nil {
			return checkout.Card{}, err
		}
	}

	month, year, err := parseExpiry(exp)
	if err != nil {
		return checkout.Card{}, err
	}
	return checkout.Card{
		Number:   strings.ReplaceAll(number, " ", ""),
		ExpMonth: month,
		ExpYear:  year,
		CVC:      cvc,
	}, nil
}

func prompt(in *bufio.Reader, label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read %s: %w", strings.TrimSuffix(label, ": "), err)
	}
	return strings.TrimSpace(line), nil
}

// parseExpiry accepts MM/YY or MM/YYYY.
func parseExpiry(s string) (month, year int, err error) {
	mm, yy, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok {
		return 0, 0, fmt.Errorf("expiry %q: want MM/YY", s)
	}
	month, err = strconv.Atoi(strings.TrimSpace(mm))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("expiry %q: bad month", s)
	}
	year, err = strconv.Atoi(strings.TrimSpace(yy))
	if err != nil || year < 0 {
		return 0, 0, fmt.Errorf("expiry %q: bad year", s)
	}
	if year < 100 {
		year += 2000
	}
	return month, year, nil
}

func formatAmount(cents int64, currency string) string {
	return fmt.Sprintf("$%d.%02d %s", cents/100, cents%100, strings.ToUpper(currency))
}
