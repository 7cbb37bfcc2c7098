package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"splitup-be/internal/models"
	"splitup-be/internal/service"
	"splitup-be/internal/store"

	"github.com/google/uuid"
)

const (
	MinSubgroupSize = 2
	MaxSubgroupSize = 6
)

var (
	ErrInvalidSubgroupSize = errors.New("subgroup size must be between 2 and 6")
	ErrEmptyCredentials    = errors.New("credential username and password are required")
	ErrNoOrdersSelected    = errors.New("no orders selected")
)

// GroupOrders buckets fully paid orders by service and plan. Groups
// appear in the order their first member was seen; members keep their
// stored order.
func GroupOrders(orders []models.Order) []models.Group {
	var groups []models.Group
	index := map[string]int{}

	for _, order := range orders {
		if order.Status != models.OrderStatusPaid || order.AmountRemaining != 0 {
			continue
		}
		key := order.ServiceName + " - " + order.PlanName
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, models.Group{
				ServiceName: order.ServiceName,
				PlanName:    order.PlanName,
			})
		}
		groups[i].Members = append(groups[i].Members, order)
	}

	return groups
}

// SplitIntoSubgroups chunks a group's members sequentially into
// subgroups of at most size members. The last subgroup holds the
// remainder and may be smaller.
func SplitIntoSubgroups(group models.Group, size int) ([]models.Subgroup, error) {
	if size < MinSubgroupSize || size > MaxSubgroupSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSubgroupSize, size)
	}

	var subgroups []models.Subgroup
	for start := 0; start < len(group.Members); start += size {
		end := start + size
		if end > len(group.Members) {
			end = len(group.Members)
		}
		subgroups = append(subgroups, models.Subgroup{
			Index:   len(subgroups) + 1,
			Members: group.Members[start:end],
		})
	}

	return subgroups, nil
}

// GroupService derives groups from the order book and drives credential
// distribution. Groups are never persisted, they are recomputed from
// order state on every read.
type GroupService struct {
	store    store.OrderStore
	notifier service.Notifier
}

func NewGroupService(st store.OrderStore, notifier service.Notifier) *GroupService {
	return &GroupService{store: st, notifier: notifier}
}

// ListGroups returns the current grouping of fully paid orders.
func (s *GroupService) ListGroups(ctx context.Context) ([]models.Group, error) {
	orders, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	return GroupOrders(orders), nil
}

// DistributeCredentials writes the shared account login onto each
// selected order, marks it active, and emails the member. Distribution
// is best effort: a failure on one member does not roll back the
// others, it is reported in the result instead.
func (s *GroupService) DistributeCredentials(ctx context.Context, req models.DistributeCredentialsRequest) (*models.DistributeCredentialsResult, error) {
	if req.Username == "" || req.Password == "" {
		return nil, ErrEmptyCredentials
	}
	if len(req.OrderIDs) == 0 {
		return nil, ErrNoOrdersSelected
	}

	ids := make([]uuid.UUID, 0, len(req.OrderIDs))
	for _, raw := range req.OrderIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid order ID %q: %w", raw, err)
		}
		ids = append(ids, id)
	}

	result := &models.DistributeCredentialsResult{}
	now := time.Now()

	for _, id := range ids {
		order, err := s.store.GetByID(ctx, id)
		if err != nil {
			log.Printf("Credential distribution: order %s not loaded: %v", id, err)
			result.Failed++
			result.FailedIDs = append(result.FailedIDs, id.String())
			continue
		}

		// Only fully paid orders receive credentials. Re-sends to
		// already active orders are allowed for password rotations.
		if order.Status != models.OrderStatusPaid && order.Status != models.OrderStatusActive {
			log.Printf("Credential distribution: order %s is %s, skipping", id, order.Status)
			result.Failed++
			result.FailedIDs = append(result.FailedIDs, id.String())
			continue
		}

		order.Credentials = &models.OrderCredentials{
			Username:       req.Username,
			Password:       req.Password,
			AdditionalInfo: req.AdditionalInfo,
			SentAt:         &now,
		}
		order.Status = models.OrderStatusActive

		if err := s.store.Update(ctx, order); err != nil {
			log.Printf("Credential distribution: order %s not updated: %v", id, err)
			result.Failed++
			result.FailedIDs = append(result.FailedIDs, id.String())
			continue
		}

		result.Sent++
		s.notifyCredentials(*order)
	}

	return result, nil
}

func (s *GroupService) notifyCredentials(order models.Order) {
	if s.notifier == nil || order.Credentials == nil {
		return
	}

	data := service.CredentialsEmailData{
		Name:           order.Name,
		Email:          order.Email,
		ServiceName:    order.ServiceName,
		PlanName:       order.PlanName,
		Username:       order.Credentials.Username,
		Password:       order.Credentials.Password,
		AdditionalInfo: order.Credentials.AdditionalInfo,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.notifier.SendCredentialsEmail(ctx, data); err != nil {
			log.Printf("Failed to send credentials email to %s: %v", order.Email, err)
		}
	}()
}
