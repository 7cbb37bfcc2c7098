package models

import "testing"

func TestCanTransitionOrderStatus(t *testing.T) {
	tests := []struct {
		from    string
		to      string
		allowed bool
	}{
		{OrderStatusPending, OrderStatusPaid, true},
		{OrderStatusPaid, OrderStatusActive, true},
		{OrderStatusActive, OrderStatusCompleted, true},
		{OrderStatusPending, OrderStatusActive, false},
		{OrderStatusPending, OrderStatusCompleted, false},
		{OrderStatusPaid, OrderStatusPending, false},
		{OrderStatusActive, OrderStatusPaid, false},
		{OrderStatusCompleted, OrderStatusActive, false},
		{OrderStatusCompleted, OrderStatusPending, false},
		{"bogus", OrderStatusPaid, false},
		{OrderStatusPending, "bogus", false},
	}

	for _, tt := range tests {
		if got := CanTransitionOrderStatus(tt.from, tt.to); got != tt.allowed {
			t.Errorf("CanTransitionOrderStatus(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.allowed)
		}
	}
}

func TestIsValidPaymentMethod(t *testing.T) {
	for _, method := range []string{PaymentMethodUPI, PaymentMethodCard, PaymentMethodNetbanking} {
		if !IsValidPaymentMethod(method) {
			t.Errorf("IsValidPaymentMethod(%q) = false, want true", method)
		}
	}
	for _, method := range []string{"", "upi", "Cash", "Bitcoin"} {
		if IsValidPaymentMethod(method) {
			t.Errorf("IsValidPaymentMethod(%q) = true, want false", method)
		}
	}
}

func TestGroupKey(t *testing.T) {
	g := Group{ServiceName: "Netflix", PlanName: "Premium 4K + HDR"}
	if got := g.Key(); got != "Netflix - Premium 4K + HDR" {
		t.Errorf("Key() = %q", got)
	}
}
