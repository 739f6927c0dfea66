package usecase

import (
	"errors"
	"fmt"
)

// Client input errors.
var (
	ErrMissingField        = errors.New("missing required field")
	ErrInvalidField        = errors.New("invalid field")
	ErrUnknownService      = errors.New("unknown service")
	ErrInvalidQuantity     = errors.New("quantity must be a whole number of at least 1")
	ErrInvalidAmount       = errors.New("invalid payment amount")
	ErrMissingCustomerInfo = errors.New("missing customer information")
)

// Consistency errors. These are never fixed up, only rejected.
var (
	ErrPaymentNotVerified  = errors.New("payment could not be verified")
	ErrPaymentNotSucceeded = errors.New("payment has not succeeded")
	ErrAmountMismatch      = errors.New("amount mismatch")
	ErrIntentMismatch      = errors.New("payment does not match booking")
	ErrAlreadyFinalized    = errors.New("booking already confirmed for this payment")
)

// Upstream and configuration errors.
var (
	ErrProcessorAuth        = errors.New("payment processor authentication failed")
	ErrProcessorRejected    = errors.New("payment processor rejected the request")
	ErrProcessorUnavailable = errors.New("payment processor unavailable")
	ErrRelayFailed          = errors.New("form relay failed")
	ErrNotConfigured        = errors.New("server configuration error")
)

// FieldError names the offending request field.
type FieldError struct {
	Field   string
	Kind    error
	Message string
}

func (e *FieldError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Field)
}

func (e *FieldError) Unwrap() error { return e.Kind }

func missingField(field string) error {
	return &FieldError{Field: field, Kind: ErrMissingField, Message: "is required"}
}

func invalidField(field, message string) error {
	return &FieldError{Field: field, Kind: ErrInvalidField, Message: message}
}

// AmountMismatchError reports the catalog amount against what was seen.
type AmountMismatchError struct {
	Expected       int64
	Actual         int64
	Currency       string
	ActualCurrency string
	Source         string // "processor" or "request"
}

func (e *AmountMismatchError) Error() string {
	actualCurrency := e.ActualCurrency
	if actualCurrency == "" {
		actualCurrency = e.Currency
	}
	return fmt.Sprintf("amount mismatch: expected %d %s, %s has %d %s",
		e.Expected, e.Currency, e.Source, e.Actual, actualCurrency)
}

func (e *AmountMismatchError) Unwrap() error { return ErrAmountMismatch }

// PaymentStatusError carries the processor status that blocked finalizing.
type PaymentStatusError struct {
	Status string
}

func (e *PaymentStatusError) Error() string {
	return fmt.Sprintf("payment has not succeeded (status: %s)", e.Status)
}

func (e *PaymentStatusError) Unwrap() error { return ErrPaymentNotSucceeded }

// ProcessorError is a translated processor failure with its reason.
type ProcessorError struct {
	Kind   error
	Reason string
}

func (e *ProcessorError) Error() string {
	if e.Reason == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Reason)
}

func (e *ProcessorError) Unwrap() error { return e.Kind }

// RelayError mirrors the relay's status code back to the caller.
type RelayError struct {
	StatusCode int
}

func (e *RelayError) Error() string {
	return fmt.Sprintf("form relay responded %d", e.StatusCode)
}

func (e *RelayError) Unwrap() error { return ErrRelayFailed }
