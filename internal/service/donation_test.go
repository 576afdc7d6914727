package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signPayload(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	svc := &donationService{webhookSecret: []byte("test-webhook-secret")}

	t.Run("Valid signature accepted", func(t *testing.T) {
		sig := signPayload("test-webhook-secret", "order_abc", "pay_123")
		assert.True(t, svc.verifySignature("order_abc", "pay_123", sig))
	})

	t.Run("Tampered payment id rejected", func(t *testing.T) {
		sig := signPayload("test-webhook-secret", "order_abc", "pay_123")
		assert.False(t, svc.verifySignature("order_abc", "pay_999", sig))
	})

	t.Run("Wrong secret rejected", func(t *testing.T) {
		sig := signPayload("other-secret", "order_abc", "pay_123")
		assert.False(t, svc.verifySignature("order_abc", "pay_123", sig))
	})

	t.Run("Empty secret accepts everything", func(t *testing.T) {
		dev := &donationService{}
		assert.True(t, dev.verifySignature("order_abc", "pay_123", "anything"))
	})
}
