// Command checkout is a terminal client for the booking server: it lists the
// price list, sends quote requests, and books and pays for a service.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
)

var Version = "dev"

var (
	serverURL string
	stripeURL string
	timeout   time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "checkout",
		Short:        "Book and pay for home services from the terminal",
		Version:      Version,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("BOOKING_SERVER_URL", "http://localhost:8080"), "booking server base URL")
	rootCmd.PersistentFlags().StringVar(&stripeURL, "stripe-url", os.Getenv("STRIPE_API_URL"), "payment processor API URL override")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "per-request timeout")

	rootCmd.AddCommand(servicesCmd())
	rootCmd.AddCommand(quoteCmd())
	rootCmd.AddCommand(bookCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func httpClient() *http.Client {
	return &http.Client{Timeout: timeout}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
