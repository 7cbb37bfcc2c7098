package models

import (
	"time"

	"github.com/google/uuid"
)

// Order Status Constants
//
// pending   - booking paid, balance outstanding
// paid      - fully paid, waiting for admin to send credentials
// active    - credentials delivered, subscription running
// completed - subscription period over
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusActive    = "active"
	OrderStatusCompleted = "completed"
)

// Payment Method Constants
const (
	PaymentMethodUPI        = "UPI"
	PaymentMethodCard       = "Card"
	PaymentMethodNetbanking = "Netbanking"
)

// orderStatusTransitions defines the allowed forward moves. There is no
// way back: a status regression is always rejected.
var orderStatusTransitions = map[string][]string{
	OrderStatusPending:   {OrderStatusPaid},
	OrderStatusPaid:      {OrderStatusActive},
	OrderStatusActive:    {OrderStatusCompleted},
	OrderStatusCompleted: {},
}

// CanTransitionOrderStatus reports whether an order may move from one
// status to another.
func CanTransitionOrderStatus(from, to string) bool {
	allowed, exists := orderStatusTransitions[from]
	if !exists {
		return false
	}
	for _, status := range allowed {
		if status == to {
			return true
		}
	}
	return false
}

// IsValidPaymentMethod reports whether the given payment method is one
// the storefront accepts.
func IsValidPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodUPI, PaymentMethodCard, PaymentMethodNetbanking:
		return true
	}
	return false
}

// OrderCredentials holds the shared account login delivered to a
// subgroup. Present on an order only after distribution.
type OrderCredentials struct {
	Username       string     `json:"username" db:"credential_username"`
	Password       string     `json:"password" db:"credential_password"`
	AdditionalInfo string     `json:"additional_info,omitempty" db:"credential_additional_info"`
	SentAt         *time.Time `json:"sent_at" db:"credential_sent_at"`
}

type Order struct {
	ID              uuid.UUID         `json:"id" db:"id"`
	Name            string            `json:"name" db:"name"`
	Email           string            `json:"email" db:"email"`
	Phone           string            `json:"phone" db:"phone"`
	ServiceName     string            `json:"service_name" db:"service_name"`
	PlanName        string            `json:"plan_name" db:"plan_name"`
	SplitBetween    int               `json:"split_between" db:"split_between"`
	AmountPaid      int               `json:"amount_paid" db:"amount_paid"`
	AmountRemaining int               `json:"amount_remaining" db:"amount_remaining"`
	TotalAmount     int               `json:"total_amount" db:"total_amount"`
	PaymentMethod   string            `json:"payment_method" db:"payment_method"`
	Status          string            `json:"status" db:"status"`
	Credentials     *OrderCredentials `json:"credentials,omitempty"`
	Version         int               `json:"-" db:"version"`
	CreatedAt       time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at" db:"updated_at"`
}

type OrderCreateRequest struct {
	PlanID        string `json:"plan_id" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone"`
	PaymentMethod string `json:"payment_method" binding:"required"`
}

type OrderSettleRequest struct {
	PaymentMethod string `json:"payment_method"`
}

type AdminOrderStatusRequest struct {
	NewStatus string `json:"new_status" binding:"required"`
}
