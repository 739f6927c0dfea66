package adaptor

import (
	"errors"
	"net/http"

	"homecare-booking/internal/usecase"
	"homecare-booking/pkg/utils"

	"go.uber.org/zap"
)

// writeServiceError maps the use case taxonomy to a status and a short
// message. Internal details reach the body only in debug mode.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string, debug bool) {
	var (
		relayErr     *usecase.RelayError
		processorErr *usecase.ProcessorError
	)

	switch {
	case errors.Is(err, usecase.ErrMissingCustomerInfo):
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, "Missing customer information. Please fill in all required fields.")

	case errors.Is(err, usecase.ErrMissingField),
		errors.Is(err, usecase.ErrInvalidField),
		errors.Is(err, usecase.ErrUnknownService),
		errors.Is(err, usecase.ErrInvalidQuantity),
		errors.Is(err, usecase.ErrInvalidAmount):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error())

	case errors.Is(err, usecase.ErrAmountMismatch),
		errors.Is(err, usecase.ErrPaymentNotSucceeded),
		errors.Is(err, usecase.ErrIntentMismatch):
		log.Warn(operation+" failed verification", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error())

	case errors.Is(err, usecase.ErrPaymentNotVerified):
		log.Warn(operation+" could not verify payment", zap.Error(err))
		utils.ResponseBadRequest(w, "Payment could not be verified with the payment processor")

	case errors.Is(err, usecase.ErrAlreadyFinalized):
		log.Warn(operation+" duplicate", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrProcessorAuth):
		log.Error(operation+" failed, processor authentication", zap.Error(err))
		utils.ResponseUnauthorized(w, "Authentication failed. Please try again later.")

	case errors.Is(err, usecase.ErrProcessorRejected):
		log.Warn(operation+" rejected by processor", zap.Error(err))
		reason := "request rejected"
		if errors.As(err, &processorErr) && processorErr.Reason != "" {
			reason = processorErr.Reason
		}
		utils.ResponseBadRequest(w, "Invalid request: "+reason)

	case errors.Is(err, usecase.ErrNotConfigured):
		log.Error(operation+" failed, missing configuration", zap.Error(err))
		utils.ResponseInternalError(w, "Server configuration error", "")

	case errors.As(err, &relayErr):
		log.Error(operation+" failed at relay", zap.Error(err), zap.Int("relay_status", relayErr.StatusCode))
		utils.ResponseError(w, relayStatus(relayErr.StatusCode), "Failed to submit form")

	case errors.Is(err, usecase.ErrRelayFailed):
		log.Error(operation+" failed at relay", zap.Error(err))
		utils.ResponseInternalError(w, "Failed to submit form", debugDetails(err, debug))

	case errors.Is(err, usecase.ErrProcessorUnavailable):
		log.Error(operation+" failed, processor unavailable", zap.Error(err))
		utils.ResponseInternalError(w, "Payment processor unavailable. Please try again.", debugDetails(err, debug))

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Failed to "+operation, debugDetails(err, debug))
	}
}

// relayStatus mirrors the relay's code, keeping it an error status.
func relayStatus(code int) int {
	if code < http.StatusBadRequest || code > 599 {
		return http.StatusBadGateway
	}
	return code
}

func debugDetails(err error, debug bool) string {
	if !debug {
		return ""
	}
	return err.Error()
}
