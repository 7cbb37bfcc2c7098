package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"splitup-be/internal/catalog"
	"splitup-be/internal/config"
	"splitup-be/internal/models"
	"splitup-be/internal/service"
	"splitup-be/internal/store"

	"github.com/google/uuid"
)

var (
	ErrPlanNotFound         = errors.New("plan not found")
	ErrPlanInactive         = errors.New("plan is not available")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrAlreadySettled       = errors.New("order is already fully paid")
	ErrInvalidTransition    = errors.New("invalid status transition")
)

// OrderService owns the order lifecycle: booking intake, settling the
// remaining balance, listing, and admin status overrides.
type OrderService struct {
	store    store.OrderStore
	catalog  *catalog.Catalog
	pricing  config.PricingConfig
	notifier service.Notifier
}

func NewOrderService(st store.OrderStore, cat *catalog.Catalog, pricing config.PricingConfig, notifier service.Notifier) *OrderService {
	return &OrderService{
		store:    st,
		catalog:  cat,
		pricing:  pricing,
		notifier: notifier,
	}
}

// BookingAmount is the upfront charge for a per-person share, rounded
// up to the next whole rupee.
func BookingAmount(share, percent int) int {
	return (share*percent + 99) / 100
}

// Create validates the plan and payment method, computes the booking
// split, and persists a pending order. The remaining balance carries
// the convenience fee.
func (s *OrderService) Create(ctx context.Context, req models.OrderCreateRequest) (*models.Order, error) {
	plan, ok := s.catalog.Get(req.PlanID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlanNotFound, req.PlanID)
	}
	if !plan.Active {
		return nil, fmt.Errorf("%w: %s", ErrPlanInactive, req.PlanID)
	}
	if !models.IsValidPaymentMethod(req.PaymentMethod) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPaymentMethod, req.PaymentMethod)
	}

	booking := BookingAmount(plan.PerPersonShare, s.pricing.BookingPercent)
	remaining := plan.PerPersonShare - booking + s.pricing.ConvenienceFee

	order := &models.Order{
		ID:              uuid.New(),
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		ServiceName:     plan.ServiceName,
		PlanName:        plan.PlanName,
		SplitBetween:    plan.SplitBetween,
		AmountPaid:      booking,
		AmountRemaining: remaining,
		TotalAmount:     booking + remaining,
		PaymentMethod:   req.PaymentMethod,
		Status:          models.OrderStatusPending,
	}

	if err := s.store.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.notifyOrderCreated(*order)

	return order, nil
}

// Settle collects the remaining balance on a pending order and marks it
// fully paid. Settling an order with no balance left is rejected.
func (s *OrderService) Settle(ctx context.Context, id uuid.UUID, req models.OrderSettleRequest) (*models.Order, error) {
	order, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.AmountRemaining <= 0 {
		return nil, ErrAlreadySettled
	}

	order.AmountPaid += order.AmountRemaining
	order.AmountRemaining = 0
	order.Status = models.OrderStatusPaid
	if req.PaymentMethod != "" {
		if !models.IsValidPaymentMethod(req.PaymentMethod) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidPaymentMethod, req.PaymentMethod)
		}
		order.PaymentMethod = req.PaymentMethod
	}

	if err := s.store.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to settle order: %w", err)
	}

	return order, nil
}

// ListForUser returns the orders placed under an email address, oldest
// first.
func (s *OrderService) ListForUser(ctx context.Context, email string) ([]models.Order, error) {
	return s.store.GetByEmail(ctx, email)
}

// List returns every order, oldest first.
func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	return s.store.GetAll(ctx)
}

// GetByID returns a single order.
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.store.GetByID(ctx, id)
}

// OverrideStatus moves an order to a new status, validating the move
// against the lifecycle. Used by admins to complete or activate orders
// out of band.
func (s *OrderService) OverrideStatus(ctx context.Context, id uuid.UUID, newStatus string) (*models.Order, error) {
	order, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !models.CanTransitionOrderStatus(order.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, newStatus)
	}

	order.Status = newStatus
	if err := s.store.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return order, nil
}

func (s *OrderService) notifyOrderCreated(order models.Order) {
	if s.notifier == nil {
		return
	}

	data := service.OrderEmailData{
		Name:            order.Name,
		Email:           order.Email,
		ServiceName:     order.ServiceName,
		PlanName:        order.PlanName,
		SplitBetween:    order.SplitBetween,
		AmountPaid:      order.AmountPaid,
		AmountRemaining: order.AmountRemaining,
		TotalAmount:     order.TotalAmount,
		PaymentMethod:   order.PaymentMethod,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.notifier.SendOrderConfirmationEmail(ctx, data); err != nil {
			log.Printf("Failed to send order confirmation to %s: %v", order.Email, err)
		}
		if err := s.notifier.SendAdminOrderAlert(ctx, data); err != nil {
			log.Printf("Failed to send admin order alert for %s: %v", order.ID, err)
		}
	}()
}
