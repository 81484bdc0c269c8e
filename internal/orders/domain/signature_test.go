package domain_test

import (
	"testing"

	"github.com/mveljko/paybridge/internal/orders/domain"
)

func TestPaymentSignature(t *testing.T) {
	t.Run("deterministic for same inputs", func(t *testing.T) {
		first := domain.PaymentSignature("secret", "order_1", "pay_1")
		second := domain.PaymentSignature("secret", "order_1", "pay_1")
		if first != second {
			t.Errorf("PaymentSignature() not deterministic: %q != %q", first, second)
		}
	})

	t.Run("changes with any input", func(t *testing.T) {
		base := domain.PaymentSignature("secret", "order_1", "pay_1")
		variants := map[string]string{
			"different secret":     domain.PaymentSignature("other", "order_1", "pay_1"),
			"different order id":   domain.PaymentSignature("secret", "order_2", "pay_1"),
			"different payment id": domain.PaymentSignature("secret", "order_1", "pay_2"),
		}
		for name, got := range variants {
			if got == base {
				t.Errorf("%s produced the same signature %q", name, got)
			}
		}
	})

	t.Run("hex encoded sha256 length", func(t *testing.T) {
		sig := domain.PaymentSignature("secret", "order_1", "pay_1")
		if len(sig) != 64 {
			t.Errorf("PaymentSignature() length = %d, want 64", len(sig))
		}
	})
}

func TestVerifyPaymentSignature(t *testing.T) {
	secret := "whsec_test"
	valid := domain.PaymentSignature(secret, "order_abc", "pay_xyz")

	tests := []struct {
		name      string
		signature string
		want      bool
	}{
		{"valid signature", valid, true},
		{"empty signature", "", false},
		{"tampered signature", valid[:len(valid)-1] + "0", false},
		{"uppercase hex rejected", "ABCDEF" + valid[6:], false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.VerifyPaymentSignature(secret, "order_abc", "pay_xyz", tt.signature)
			if got != tt.want {
				t.Errorf("VerifyPaymentSignature() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("wrong secret fails", func(t *testing.T) {
		if domain.VerifyPaymentSignature("other-secret", "order_abc", "pay_xyz", valid) {
			t.Error("VerifyPaymentSignature() accepted a signature keyed with a different secret")
		}
	})
}
