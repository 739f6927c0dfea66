package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// APIError is a non-2xx answer from the booking server.
type APIError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("booking server responded %d: %s", e.StatusCode, e.Message)
}

type IntentRequest struct {
	Amount        *int64 `json:"amount,omitempty"`
	Service       string `json:"service"`
	Quantity      int    `json:"quantity,omitempty"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
	PreferredDate string `json:"preferredDate,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

type IntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
}

type FinalizeRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
	Amount          int64  `json:"amount"`
	Service         string `json:"service"`
	Quantity        int    `json:"quantity"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Date            string `json:"date,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

type Booking struct {
	ID           string    `json:"id"`
	Reference    string    `json:"reference"`
	Service      string    `json:"service"`
	ServiceLabel string    `json:"serviceLabel"`
	Amount       int64     `json:"amount"`
	Currency     string    `json:"currency"`
	Quantity     int       `json:"quantity"`
	Date         string    `json:"date,omitempty"`
	Status       string    `json:"status"`
	BookedAt     time.Time `json:"bookedAt"`
}

type FinalizeResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Booking Booking `json:"booking"`
}

type QuoteRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Service string `json:"service"`
	Date    string `json:"date,omitempty"`
	Time    string `json:"time,omitempty"`
	Message string `json:"message,omitempty"`
}

type PaymentConfig struct {
	PublishableKey string `json:"publishableKey"`
	Currency       string `json:"currency"`
}

type ServiceOption struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	Category     string `json:"category"`
	Unit         string `json:"unit"`
	UnitPrice    int64  `json:"unitPrice"`
	DisplayPrice string `json:"displayPrice"`
}

type ServiceList struct {
	Currency string          `json:"currency"`
	Services []ServiceOption `json:"services"`
}

// APIClient talks to the booking server's JSON endpoints.
type APIClient struct {
	baseURL string
	client  *http.Client
}

func NewAPIClient(baseURL string, client *http.Client) *APIClient {
	return &APIClient{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (c *APIClient) Services(ctx context.Context) (*ServiceList, error) {
	var out ServiceList
	if err := c.do(ctx, http.MethodGet, "/api/services", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) PaymentConfig(ctx context.Context) (*PaymentConfig, error) {
	var out PaymentConfig
	if err := c.do(ctx, http.MethodGet, "/api/payment-config", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePaymentIntent sends token as the Idempotency-Key header when set.
func (c *APIClient) CreatePaymentIntent(ctx context.Context, req IntentRequest, token string) (*IntentResponse, error) {
	var headers map[string]string
	if token != "" {
		headers = map[string]string{"Idempotency-Key": token}
	}

	var out IntentResponse
	if err := c.do(ctx, http.MethodPost, "/api/create-payment-intent", headers, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) FinalizeBooking(ctx context.Context, req FinalizeRequest) (*FinalizeResponse, error) {
	var out FinalizeResponse
	if err := c.do(ctx, http.MethodPost, "/api/payment", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) RequestQuote(ctx context.Context, req QuoteRequest) error {
	return c.do(ctx, http.MethodPost, "/api/contact", nil, req, nil)
}

func (c *APIClient) do(ctx context.Context, method, path string, headers map[string]string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error   string `json:"error"`
			Details string `json:"details"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&apiErr)
		if apiErr.Error == "" {
			apiErr.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error, Details: apiErr.Details}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
