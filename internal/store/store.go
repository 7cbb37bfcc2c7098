package store

import (
	"context"
	"errors"

	"splitup-be/internal/models"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no order exists for the given id.
	ErrNotFound = errors.New("order not found")
	// ErrVersionConflict is returned when an update raced with another
	// writer; the caller decides whether to re-read and retry.
	ErrVersionConflict = errors.New("order was modified concurrently")
)

// OrderStore is the order record boundary. Records are created once,
// read in insertion order, and updated with an optimistic version check.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByEmail(ctx context.Context, email string) ([]models.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)

	// Update persists the order's current fields. The row is matched on
	// (id, Version); on success the stored and in-memory Version are
	// both incremented.
	Update(ctx context.Context, order *models.Order) error
}
