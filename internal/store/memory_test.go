package store

import (
	"context"
	"errors"
	"testing"

	"splitup-be/internal/models"

	"github.com/google/uuid"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	st := NewMemoryOrderStore()
	ctx := context.Background()

	order := &models.Order{
		Name:        "Asha",
		Email:       "asha@example.com",
		ServiceName: "Netflix",
		PlanName:    "Premium",
		Status:      models.OrderStatusPending,
	}
	if err := st.Create(ctx, order); err != nil {
		t.Fatal(err)
	}
	if order.ID == uuid.Nil {
		t.Fatal("Create did not assign an ID")
	}
	if order.Version != 1 {
		t.Errorf("Version = %d, want 1", order.Version)
	}

	got, err := st.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Email != "asha@example.com" || got.Status != models.OrderStatusPending {
		t.Errorf("round trip mismatch: %+v", got)
	}

	if _, err := st.GetByID(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id: got %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreInsertionOrder(t *testing.T) {
	st := NewMemoryOrderStore()
	ctx := context.Background()

	emails := []string{"a@example.com", "b@example.com", "c@example.com"}
	for _, email := range emails {
		if err := st.Create(ctx, &models.Order{Email: email, Status: models.OrderStatusPending}); err != nil {
			t.Fatal(err)
		}
	}

	all, err := st.GetAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for i, order := range all {
		if order.Email != emails[i] {
			t.Errorf("GetAll()[%d] = %q, want %q", i, order.Email, emails[i])
		}
	}
}

func TestMemoryStoreVersionConflict(t *testing.T) {
	st := NewMemoryOrderStore()
	ctx := context.Background()

	order := &models.Order{Email: "a@example.com", Status: models.OrderStatusPending}
	if err := st.Create(ctx, order); err != nil {
		t.Fatal(err)
	}

	// Two readers load the same version
	first, _ := st.GetByID(ctx, order.ID)
	second, _ := st.GetByID(ctx, order.ID)

	first.Status = models.OrderStatusPaid
	if err := st.Update(ctx, first); err != nil {
		t.Fatalf("first update failed: %v", err)
	}
	if first.Version != 2 {
		t.Errorf("Version after update = %d, want 2", first.Version)
	}

	// The stale writer loses
	second.Status = models.OrderStatusActive
	if err := st.Update(ctx, second); !errors.Is(err, ErrVersionConflict) {
		t.Errorf("stale update: got %v, want ErrVersionConflict", err)
	}

	got, _ := st.GetByID(ctx, order.ID)
	if got.Status != models.OrderStatusPaid {
		t.Errorf("stale writer overwrote: status = %q", got.Status)
	}
}

func TestMemoryStoreClonesCredentials(t *testing.T) {
	st := NewMemoryOrderStore()
	ctx := context.Background()

	order := &models.Order{Email: "a@example.com", Status: models.OrderStatusPaid}
	if err := st.Create(ctx, order); err != nil {
		t.Fatal(err)
	}

	loaded, _ := st.GetByID(ctx, order.ID)
	loaded.Credentials = &models.OrderCredentials{Username: "u", Password: "p"}
	if err := st.Update(ctx, loaded); err != nil {
		t.Fatal(err)
	}

	// Mutating the caller's copy must not leak into the store
	loaded.Credentials.Password = "tampered"

	got, _ := st.GetByID(ctx, order.ID)
	if got.Credentials.Password != "p" {
		t.Error("store shares credential memory with callers")
	}
}
