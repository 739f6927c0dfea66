package relay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormClient_Submit(t *testing.T) {
	var got FormSubmission
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewFormClient(srv.URL, "key-123", "owner@example.com", srv.Client())
	err := c.Submit(context.Background(), FormSubmission{
		AccessKey: "ignored",
		Name:      "Jane",
		Phone:     "403-555-0100",
		Email:     "jane@example.com",
		Service:   "basic",
		Time:      "morning",
	})
	require.NoError(t, err)

	assert.Equal(t, "key-123", got.AccessKey)
	assert.Equal(t, "owner@example.com", got.ToEmail)
	assert.Equal(t, "Jane", got.Name)
	assert.Equal(t, "morning", got.Time)
}

func TestFormClient_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"bad access key"}`))
	}))
	defer srv.Close()

	err := NewFormClient(srv.URL, "key", "owner@example.com", srv.Client()).Submit(context.Background(), FormSubmission{})
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnprocessableEntity, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "bad access key")
}

func TestFormClient_NotConfigured(t *testing.T) {
	err := NewFormClient("https://relay.example", "", "owner@example.com", http.DefaultClient).Submit(context.Background(), FormSubmission{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestMailClient_Send(t *testing.T) {
	var got Email
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	err := NewMailClient(srv.URL, "mail-key", srv.Client()).Send(context.Background(), Email{
		To:       "jane@example.com",
		Subject:  "Booking Confirmation",
		Template: "booking-confirmation",
		Data:     map[string]any{"name": "Jane"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer mail-key", auth)
	assert.Equal(t, "booking-confirmation", got.Template)
	assert.Equal(t, "Jane", got.Data["name"])
}

func TestMailClient_NotConfigured(t *testing.T) {
	err := NewMailClient("", "", http.DefaultClient).Send(context.Background(), Email{To: "a@b.c"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
