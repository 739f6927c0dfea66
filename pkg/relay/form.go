package relay

import (
	"context"
	"net/http"
)

// FormSubmission is the relay's submission body.
type FormSubmission struct {
	AccessKey string `json:"access_key"`
	ToEmail   string `json:"to_email"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Service   string `json:"service"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Message   string `json:"message"`
}

type FormClient struct {
	url       string
	accessKey string
	toEmail   string
	client    *http.Client
}

func NewFormClient(url, accessKey, toEmail string, client *http.Client) *FormClient {
	return &FormClient{url: url, accessKey: accessKey, toEmail: toEmail, client: client}
}

// Submit fills in the access key and destination and posts the submission.
func (c *FormClient) Submit(ctx context.Context, sub FormSubmission) error {
	if c.accessKey == "" || c.url == "" {
		return ErrNotConfigured
	}
	sub.AccessKey = c.accessKey
	sub.ToEmail = c.toEmail
	return postJSON(ctx, c.client, c.url, nil, sub)
}
