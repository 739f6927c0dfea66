package relay

import (
	"context"
	"net/http"
)

// Email is a templated message for the e-mail endpoint.
type Email struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject"`
	Template string         `json:"template"`
	Data     map[string]any `json:"data"`
}

type MailClient struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewMailClient(endpoint, apiKey string, client *http.Client) *MailClient {
	return &MailClient{endpoint: endpoint, apiKey: apiKey, client: client}
}

func (c *MailClient) Send(ctx context.Context, email Email) error {
	if c.endpoint == "" {
		return ErrNotConfigured
	}

	var headers map[string]string
	if c.apiKey != "" {
		headers = map[string]string{"Authorization": "Bearer " + c.apiKey}
	}
	return postJSON(ctx, c.client, c.endpoint, headers, email)
}
