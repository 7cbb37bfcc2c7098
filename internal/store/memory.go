package store

import (
	"context"
	"sync"
	"time"

	"splitup-be/internal/models"

	"github.com/google/uuid"
)

// MemoryOrderStore is an in-memory OrderStore with the same insertion
// ordering and version semantics as the Postgres implementation. Used
// by tests and local development without a database.
type MemoryOrderStore struct {
	mu     sync.RWMutex
	orders []models.Order
	index  map[uuid.UUID]int

	// FailIDs makes Update fail for the listed orders, simulating
	// per-record persistence failures in batch operations.
	FailIDs map[uuid.UUID]bool
}

func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{index: make(map[uuid.UUID]int)}
}

func (s *MemoryOrderStore) Create(ctx context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	if order.Version == 0 {
		order.Version = 1
	}

	s.index[order.ID] = len(s.orders)
	s.orders = append(s.orders, cloneOrder(*order))
	return nil
}

func (s *MemoryOrderStore) GetAll(ctx context.Context) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]models.Order, 0, len(s.orders))
	for _, order := range s.orders {
		orders = append(orders, cloneOrder(order))
	}
	return orders, nil
}

func (s *MemoryOrderStore) GetByEmail(ctx context.Context, email string) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var orders []models.Order
	for _, order := range s.orders {
		if order.Email == email {
			orders = append(orders, cloneOrder(order))
		}
	}
	return orders, nil
}

func (s *MemoryOrderStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.index[id]
	if !ok {
		return nil, ErrNotFound
	}
	order := cloneOrder(s.orders[pos])
	return &order, nil
}

func (s *MemoryOrderStore) Update(ctx context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailIDs[order.ID] {
		return ErrVersionConflict
	}

	pos, ok := s.index[order.ID]
	if !ok {
		return ErrNotFound
	}
	if s.orders[pos].Version != order.Version {
		return ErrVersionConflict
	}

	order.UpdatedAt = time.Now()
	order.Version++
	s.orders[pos] = cloneOrder(*order)
	return nil
}

func cloneOrder(order models.Order) models.Order {
	if order.Credentials != nil {
		creds := *order.Credentials
		if creds.SentAt != nil {
			sentAt := *creds.SentAt
			creds.SentAt = &sentAt
		}
		order.Credentials = &creds
	}
	return order
}
