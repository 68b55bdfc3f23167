package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Order is the gateway-side record created before checkout.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type Gateway interface {
	// CreateOrder registers an order for amountMinor (paise for INR).
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*Order, error)
	// VerifySignature reports whether signature was produced by the gateway
	// for this order and payment.
	VerifySignature(orderID, paymentID, signature string) bool
	// KeyID is the public key the checkout widget needs.
	KeyID() string
}

// Sign returns the hex HMAC-SHA256 of "orderID|paymentID" under secret.
func Sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// ToMinorUnits converts a rupee amount to paise.
func ToMinorUnits(amount float64) int64 {
	return int64(amount*100 + 0.5)
}
