package domain

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// PaymentSignature computes the hex-encoded HMAC-SHA256 the gateway attaches
// to a payment confirmation: the key is the shared secret, the message is
// "<providerOrderID>|<providerPaymentID>".
func PaymentSignature(secret, providerOrderID, providerPaymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(providerOrderID + "|" + providerPaymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyPaymentSignature reports whether the supplied signature matches the
// expected HMAC for the given identifiers. Comparison is constant-time.
func VerifyPaymentSignature(secret, providerOrderID, providerPaymentID, signature string) bool {
	expected := PaymentSignature(secret, providerOrderID, providerPaymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}
