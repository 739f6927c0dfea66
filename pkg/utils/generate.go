package utils

import (
	"encoding/hex"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// ==================== UUID ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

// ==================== BOOKING REFERENCE ====================

// GenerateBookingReference returns a human-friendly reference for receipts.
// It is not a key; bookings are keyed by their UUID.
func GenerateBookingReference(now time.Time) string {
	// Format: BOOK-YYYYMMDD-HHMMSS-RANDOM
	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rand.IntN(10000))

	return fmt.Sprintf("BOOK-%s-%s-%s", datePart, timePart, randomPart)
}

// ==================== IDEMPOTENCY ====================

// DeriveIdempotencyKey binds a client token to the request it was issued for.
// The same token with different parts yields a different key, so an edited
// booking never replays an intent created for the old amount.
func DeriveIdempotencyKey(token string, parts ...string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return ""
	}

	h, _ := blake2b.New256(nil)
	h.Write([]byte(token))
	for _, p := range parts {
		h.Write([]byte{0})
		h.Write([]byte(p))
	}
	return "booking-" + hex.EncodeToString(h.Sum(nil))
}
