package services

import (
	"context"
	"errors"
	"testing"

	"splitup-be/internal/catalog"
	"splitup-be/internal/config"
	"splitup-be/internal/models"
	"splitup-be/internal/store"

	"github.com/google/uuid"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]catalog.Plan{
		{ID: "netflix-premium", ServiceName: "Netflix", PlanName: "Premium 4K + HDR", TotalPrice: 649, SplitBetween: 4, PerPersonShare: 162, Active: true},
		{ID: "spotify-family", ServiceName: "Spotify", PlanName: "Premium Family", TotalPrice: 199, SplitBetween: 6, PerPersonShare: 34, Active: true},
		{ID: "retired-plan", ServiceName: "Hooq", PlanName: "Premium", TotalPrice: 199, SplitBetween: 4, PerPersonShare: 50, Active: false},
	})
	if err != nil {
		t.Fatal(err)
	}
	return cat
}

func newTestOrderService(t *testing.T) (*OrderService, *store.MemoryOrderStore) {
	t.Helper()
	st := store.NewMemoryOrderStore()
	pricing := config.PricingConfig{BookingPercent: 10, ConvenienceFee: 5}
	return NewOrderService(st, testCatalog(t), pricing, nil), st
}

func TestBookingAmount(t *testing.T) {
	tests := []struct {
		share   int
		percent int
		want    int
	}{
		{162, 10, 17}, // ceil(16.2)
		{100, 10, 10}, // exact
		{34, 10, 4},   // ceil(3.4)
		{139, 10, 14}, // ceil(13.9)
		{1, 10, 1},    // never zero for a priced share
	}
	for _, tt := range tests {
		if got := BookingAmount(tt.share, tt.percent); got != tt.want {
			t.Errorf("BookingAmount(%d, %d) = %d, want %d", tt.share, tt.percent, got, tt.want)
		}
	}
}

func TestCreateOrderPricing(t *testing.T) {
	svc, _ := newTestOrderService(t)

	order, err := svc.Create(context.Background(), models.OrderCreateRequest{
		PlanID:        "netflix-premium",
		Name:          "Asha",
		Email:         "asha@example.com",
		PaymentMethod: models.PaymentMethodUPI,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Share 162 at 10% booking: pay 17 now, owe 162-17+5 fee = 150.
	if order.AmountPaid != 17 {
		t.Errorf("AmountPaid = %d, want 17", order.AmountPaid)
	}
	if order.AmountRemaining != 150 {
		t.Errorf("AmountRemaining = %d, want 150", order.AmountRemaining)
	}
	if order.TotalAmount != 167 {
		t.Errorf("TotalAmount = %d, want 167", order.TotalAmount)
	}
	if order.AmountPaid+order.AmountRemaining != order.TotalAmount {
		t.Error("paid + remaining != total")
	}
	if order.Status != models.OrderStatusPending {
		t.Errorf("Status = %q, want pending", order.Status)
	}
	if order.ServiceName != "Netflix" || order.PlanName != "Premium 4K + HDR" {
		t.Errorf("plan snapshot wrong: %q %q", order.ServiceName, order.PlanName)
	}
	if order.SplitBetween != 4 {
		t.Errorf("SplitBetween = %d, want 4", order.SplitBetween)
	}
	if order.ID == uuid.Nil {
		t.Error("order ID not assigned")
	}
}

func TestCreateOrderRejections(t *testing.T) {
	svc, _ := newTestOrderService(t)

	_, err := svc.Create(context.Background(), models.OrderCreateRequest{
		PlanID: "no-such-plan", Name: "A", Email: "a@example.com", PaymentMethod: models.PaymentMethodUPI,
	})
	if !errors.Is(err, ErrPlanNotFound) {
		t.Errorf("unknown plan: got %v, want ErrPlanNotFound", err)
	}

	_, err = svc.Create(context.Background(), models.OrderCreateRequest{
		PlanID: "retired-plan", Name: "A", Email: "a@example.com", PaymentMethod: models.PaymentMethodUPI,
	})
	if !errors.Is(err, ErrPlanInactive) {
		t.Errorf("inactive plan: got %v, want ErrPlanInactive", err)
	}

	_, err = svc.Create(context.Background(), models.OrderCreateRequest{
		PlanID: "netflix-premium", Name: "A", Email: "a@example.com", PaymentMethod: "Cash",
	})
	if !errors.Is(err, ErrInvalidPaymentMethod) {
		t.Errorf("bad payment method: got %v, want ErrInvalidPaymentMethod", err)
	}
}

func TestSettleOrder(t *testing.T) {
	svc, _ := newTestOrderService(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, models.OrderCreateRequest{
		PlanID: "netflix-premium", Name: "Asha", Email: "asha@example.com", PaymentMethod: models.PaymentMethodUPI,
	})
	if err != nil {
		t.Fatal(err)
	}

	settled, err := svc.Settle(ctx, order.ID, models.OrderSettleRequest{PaymentMethod: models.PaymentMethodCard})
	if err != nil {
		t.Fatalf("Settle failed: %v", err)
	}
	if settled.AmountRemaining != 0 {
		t.Errorf("AmountRemaining = %d, want 0", settled.AmountRemaining)
	}
	if settled.AmountPaid != settled.TotalAmount {
		t.Errorf("AmountPaid = %d, want %d", settled.AmountPaid, settled.TotalAmount)
	}
	if settled.Status != models.OrderStatusPaid {
		t.Errorf("Status = %q, want paid", settled.Status)
	}
	if settled.PaymentMethod != models.PaymentMethodCard {
		t.Errorf("PaymentMethod = %q, want Card", settled.PaymentMethod)
	}

	// Settling again is rejected, not double charged.
	_, err = svc.Settle(ctx, order.ID, models.OrderSettleRequest{})
	if !errors.Is(err, ErrAlreadySettled) {
		t.Errorf("second settle: got %v, want ErrAlreadySettled", err)
	}

	reloaded, err := svc.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.AmountPaid != reloaded.TotalAmount {
		t.Errorf("stored AmountPaid changed by rejected settle: %d", reloaded.AmountPaid)
	}
}

func TestSettleUnknownOrder(t *testing.T) {
	svc, _ := newTestOrderService(t)

	_, err := svc.Settle(context.Background(), uuid.New(), models.OrderSettleRequest{})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestListForUser(t *testing.T) {
	svc, _ := newTestOrderService(t)
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com", "a@example.com"} {
		if _, err := svc.Create(ctx, models.OrderCreateRequest{
			PlanID: "spotify-family", Name: "X", Email: email, PaymentMethod: models.PaymentMethodUPI,
		}); err != nil {
			t.Fatal(err)
		}
	}

	orders, err := svc.ListForUser(ctx, "a@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders for a@example.com, got %d", len(orders))
	}

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 orders total, got %d", len(all))
	}
}

func TestOverrideStatus(t *testing.T) {
	svc, _ := newTestOrderService(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, models.OrderCreateRequest{
		PlanID: "netflix-premium", Name: "Asha", Email: "asha@example.com", PaymentMethod: models.PaymentMethodUPI,
	})
	if err != nil {
		t.Fatal(err)
	}

	// pending -> active skips a step and is rejected
	if _, err := svc.OverrideStatus(ctx, order.ID, models.OrderStatusActive); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("pending->active: got %v, want ErrInvalidTransition", err)
	}

	updated, err := svc.OverrideStatus(ctx, order.ID, models.OrderStatusPaid)
	if err != nil {
		t.Fatalf("pending->paid failed: %v", err)
	}
	if updated.Status != models.OrderStatusPaid {
		t.Errorf("Status = %q, want paid", updated.Status)
	}

	// No way back
	if _, err := svc.OverrideStatus(ctx, order.ID, models.OrderStatusPending); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("paid->pending: got %v, want ErrInvalidTransition", err)
	}
}
