package services

import (
	"context"
	"errors"
	"testing"

	"splitup-be/internal/models"
	"splitup-be/internal/store"

	"github.com/google/uuid"
)

func paidOrder(service, plan, email string) models.Order {
	return models.Order{
		ID:          uuid.New(),
		Name:        email,
		Email:       email,
		ServiceName: service,
		PlanName:    plan,
		Status:      models.OrderStatusPaid,
	}
}

func TestGroupOrders(t *testing.T) {
	orders := []models.Order{
		paidOrder("Netflix", "Premium", "a@example.com"),
		paidOrder("Spotify", "Family", "b@example.com"),
		paidOrder("Netflix", "Premium", "c@example.com"),
		{ID: uuid.New(), Email: "d@example.com", ServiceName: "Netflix", PlanName: "Premium", Status: models.OrderStatusPending, AmountRemaining: 150},
		{ID: uuid.New(), Email: "e@example.com", ServiceName: "Netflix", PlanName: "Premium", Status: models.OrderStatusActive},
	}

	groups := GroupOrders(orders)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	// Groups keep first-seen order
	if groups[0].Key() != "Netflix - Premium" {
		t.Errorf("groups[0] = %q, want Netflix - Premium", groups[0].Key())
	}
	if groups[1].Key() != "Spotify - Family" {
		t.Errorf("groups[1] = %q, want Spotify - Family", groups[1].Key())
	}

	// Only fully paid orders are grouped
	if len(groups[0].Members) != 2 {
		t.Fatalf("Netflix group has %d members, want 2", len(groups[0].Members))
	}
	if groups[0].Members[0].Email != "a@example.com" || groups[0].Members[1].Email != "c@example.com" {
		t.Errorf("member order wrong: %s, %s", groups[0].Members[0].Email, groups[0].Members[1].Email)
	}
}

func TestGroupOrdersSkipsUnsettledPaid(t *testing.T) {
	// A paid status with an outstanding balance never groups.
	orders := []models.Order{
		{ID: uuid.New(), Email: "a@example.com", ServiceName: "Netflix", PlanName: "Premium", Status: models.OrderStatusPaid, AmountRemaining: 50},
	}
	if groups := GroupOrders(orders); len(groups) != 0 {
		t.Errorf("expected no groups, got %d", len(groups))
	}
}

func TestSplitIntoSubgroups(t *testing.T) {
	group := models.Group{ServiceName: "Netflix", PlanName: "Premium"}
	for i := 0; i < 5; i++ {
		group.Members = append(group.Members, paidOrder("Netflix", "Premium", string(rune('a'+i))+"@example.com"))
	}

	subgroups, err := SplitIntoSubgroups(group, 2)
	if err != nil {
		t.Fatal(err)
	}

	// 5 members in chunks of 2: [2, 2, 1]
	sizes := []int{2, 2, 1}
	if len(subgroups) != len(sizes) {
		t.Fatalf("expected %d subgroups, got %d", len(sizes), len(subgroups))
	}
	total := 0
	for i, sg := range subgroups {
		if sg.Index != i+1 {
			t.Errorf("subgroup %d has index %d", i, sg.Index)
		}
		if len(sg.Members) != sizes[i] {
			t.Errorf("subgroup %d has %d members, want %d", i, len(sg.Members), sizes[i])
		}
		total += len(sg.Members)
	}
	if total != len(group.Members) {
		t.Errorf("subgroups cover %d members, want %d", total, len(group.Members))
	}

	// Chunking is sequential, members keep their order
	if subgroups[0].Members[0].Email != "a@example.com" || subgroups[2].Members[0].Email != "e@example.com" {
		t.Error("subgroup chunking reordered members")
	}
}

func TestSplitIntoSubgroupsSizeBounds(t *testing.T) {
	group := models.Group{Members: []models.Order{paidOrder("Netflix", "Premium", "a@example.com")}}

	for _, size := range []int{0, 1, 7, -3} {
		if _, err := SplitIntoSubgroups(group, size); !errors.Is(err, ErrInvalidSubgroupSize) {
			t.Errorf("size %d: got %v, want ErrInvalidSubgroupSize", size, err)
		}
	}

	if subgroups, err := SplitIntoSubgroups(models.Group{}, 3); err != nil || len(subgroups) != 0 {
		t.Errorf("empty group: got %v subgroups, err %v", subgroups, err)
	}
}

func seedPaidOrders(t *testing.T, st *store.MemoryOrderStore, n int) []uuid.UUID {
	t.Helper()
	ids := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		order := paidOrder("Netflix", "Premium", string(rune('a'+i))+"@example.com")
		if err := st.Create(context.Background(), &order); err != nil {
			t.Fatal(err)
		}
		ids = append(ids, order.ID)
	}
	return ids
}

func TestDistributeCredentials(t *testing.T) {
	st := store.NewMemoryOrderStore()
	svc := NewGroupService(st, nil)
	ctx := context.Background()

	ids := seedPaidOrders(t, st, 3)

	result, err := svc.DistributeCredentials(ctx, models.DistributeCredentialsRequest{
		OrderIDs:       []string{ids[0].String(), ids[1].String(), ids[2].String()},
		Username:       "family@splitup.in",
		Password:       "s3cret",
		AdditionalInfo: "Profile 2",
	})
	if err != nil {
		t.Fatalf("DistributeCredentials failed: %v", err)
	}
	if result.Sent != 3 || result.Failed != 0 {
		t.Fatalf("sent=%d failed=%d, want 3/0", result.Sent, result.Failed)
	}

	for _, id := range ids {
		order, err := st.GetByID(ctx, id)
		if err != nil {
			t.Fatal(err)
		}
		if order.Status != models.OrderStatusActive {
			t.Errorf("order %s status = %q, want active", id, order.Status)
		}
		if order.Credentials == nil {
			t.Fatalf("order %s has no credentials", id)
		}
		if order.Credentials.Username != "family@splitup.in" || order.Credentials.Password != "s3cret" {
			t.Errorf("order %s credentials wrong: %+v", id, order.Credentials)
		}
		if order.Credentials.SentAt == nil {
			t.Errorf("order %s SentAt not recorded", id)
		}
	}
}

func TestDistributeCredentialsBestEffort(t *testing.T) {
	st := store.NewMemoryOrderStore()
	svc := NewGroupService(st, nil)
	ctx := context.Background()

	ids := seedPaidOrders(t, st, 3)
	st.FailIDs = map[uuid.UUID]bool{ids[1]: true}
	missing := uuid.New()

	result, err := svc.DistributeCredentials(ctx, models.DistributeCredentialsRequest{
		OrderIDs: []string{ids[0].String(), ids[1].String(), ids[2].String(), missing.String()},
		Username: "family@splitup.in",
		Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("DistributeCredentials failed: %v", err)
	}

	if result.Sent != 2 {
		t.Errorf("Sent = %d, want 2", result.Sent)
	}
	if result.Failed != 2 {
		t.Errorf("Failed = %d, want 2", result.Failed)
	}
	if len(result.FailedIDs) != 2 {
		t.Fatalf("FailedIDs = %v", result.FailedIDs)
	}

	// The members that worked stay delivered, the failed one is untouched.
	ok, _ := st.GetByID(ctx, ids[0])
	if ok.Status != models.OrderStatusActive {
		t.Errorf("successful member status = %q, want active", ok.Status)
	}
	failed, _ := st.GetByID(ctx, ids[1])
	if failed.Status != models.OrderStatusPaid || failed.Credentials != nil {
		t.Errorf("failed member mutated: status=%q credentials=%+v", failed.Status, failed.Credentials)
	}
}

func TestDistributeCredentialsValidation(t *testing.T) {
	st := store.NewMemoryOrderStore()
	svc := NewGroupService(st, nil)
	ctx := context.Background()

	ids := seedPaidOrders(t, st, 1)

	// Empty username rejects the whole batch before any mutation
	_, err := svc.DistributeCredentials(ctx, models.DistributeCredentialsRequest{
		OrderIDs: []string{ids[0].String()},
		Username: "",
		Password: "s3cret",
	})
	if !errors.Is(err, ErrEmptyCredentials) {
		t.Errorf("got %v, want ErrEmptyCredentials", err)
	}

	_, err = svc.DistributeCredentials(ctx, models.DistributeCredentialsRequest{
		Username: "u", Password: "p",
	})
	if !errors.Is(err, ErrNoOrdersSelected) {
		t.Errorf("got %v, want ErrNoOrdersSelected", err)
	}

	_, err = svc.DistributeCredentials(ctx, models.DistributeCredentialsRequest{
		OrderIDs: []string{"not-a-uuid"},
		Username: "u", Password: "p",
	})
	if err == nil {
		t.Error("expected error for malformed order ID")
	}

	order, _ := st.GetByID(ctx, ids[0])
	if order.Status != models.OrderStatusPaid || order.Credentials != nil {
		t.Error("rejected batch mutated an order")
	}
}

func TestDistributeCredentialsSkipsPendingOrders(t *testing.T) {
	st := store.NewMemoryOrderStore()
	svc := NewGroupService(st, nil)
	ctx := context.Background()

	pending := models.Order{
		ID: uuid.New(), Email: "p@example.com",
		ServiceName: "Netflix", PlanName: "Premium",
		Status: models.OrderStatusPending, AmountRemaining: 150,
	}
	if err := st.Create(ctx, &pending); err != nil {
		t.Fatal(err)
	}

	result, err := svc.DistributeCredentials(ctx, models.DistributeCredentialsRequest{
		OrderIDs: []string{pending.ID.String()},
		Username: "u", Password: "p",
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.Sent != 0 || result.Failed != 1 {
		t.Errorf("sent=%d failed=%d, want 0/1", result.Sent, result.Failed)
	}

	order, _ := st.GetByID(ctx, pending.ID)
	if order.Status != models.OrderStatusPending || order.Credentials != nil {
		t.Error("pending order mutated by distribution")
	}
}

func TestListGroups(t *testing.T) {
	st := store.NewMemoryOrderStore()
	svc := NewGroupService(st, nil)
	ctx := context.Background()

	seedPaidOrders(t, st, 2)
	other := paidOrder("Spotify", "Family", "z@example.com")
	if err := st.Create(ctx, &other); err != nil {
		t.Fatal(err)
	}

	groups, err := svc.ListGroups(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if len(groups[0].Members) != 2 || len(groups[1].Members) != 1 {
		t.Errorf("member counts: %d, %d", len(groups[0].Members), len(groups[1].Members))
	}
}
