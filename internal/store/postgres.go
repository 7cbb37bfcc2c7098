package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"splitup-be/internal/models"

	"github.com/google/uuid"
)

// PostgresOrderStore keeps orders in the orders table.
type PostgresOrderStore struct {
	db *sql.DB
}

func NewPostgresOrderStore(db *sql.DB) *PostgresOrderStore {
	return &PostgresOrderStore{db: db}
}

const orderColumns = `
	id, name, email, phone, service_name, plan_name, split_between,
	amount_paid, amount_remaining, total_amount, payment_method, status,
	credential_username, credential_password, credential_additional_info, credential_sent_at,
	version, created_at, updated_at
`

func (s *PostgresOrderStore) Create(ctx context.Context, order *models.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	if order.Version == 0 {
		order.Version = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO orders (id, name, email, phone, service_name, plan_name, split_between,
			amount_paid, amount_remaining, total_amount, payment_method, status,
			version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, order.ID, order.Name, order.Email, order.Phone, order.ServiceName, order.PlanName,
		order.SplitBetween, order.AmountPaid, order.AmountRemaining, order.TotalAmount,
		order.PaymentMethod, order.Status, order.Version, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (s *PostgresOrderStore) GetAll(ctx context.Context) ([]models.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (s *PostgresOrderStore) GetByEmail(ctx context.Context, email string) ([]models.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE email = $1
		ORDER BY created_at ASC
	`, email)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders for %s: %w", email, err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (s *PostgresOrderStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1
	`, id)

	order, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order %s: %w", id, err)
	}
	return order, nil
}

func (s *PostgresOrderStore) Update(ctx context.Context, order *models.Order) error {
	order.UpdatedAt = time.Now()

	var credUsername, credPassword, credInfo sql.NullString
	var credSentAt sql.NullTime
	if order.Credentials != nil {
		credUsername = sql.NullString{String: order.Credentials.Username, Valid: true}
		credPassword = sql.NullString{String: order.Credentials.Password, Valid: true}
		credInfo = sql.NullString{String: order.Credentials.AdditionalInfo, Valid: order.Credentials.AdditionalInfo != ""}
		if order.Credentials.SentAt != nil {
			credSentAt = sql.NullTime{Time: *order.Credentials.SentAt, Valid: true}
		}
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE orders
		SET amount_paid = $1, amount_remaining = $2, payment_method = $3, status = $4,
			credential_username = $5, credential_password = $6,
			credential_additional_info = $7, credential_sent_at = $8,
			version = version + 1, updated_at = $9
		WHERE id = $10 AND version = $11
	`, order.AmountPaid, order.AmountRemaining, order.PaymentMethod, order.Status,
		credUsername, credPassword, credInfo, credSentAt,
		order.UpdatedAt, order.ID, order.Version)
	if err != nil {
		return fmt.Errorf("failed to update order %s: %w", order.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update order %s: %w", order.ID, err)
	}
	if affected == 0 {
		// Either the row is gone or another writer bumped the version.
		var exists bool
		if err := s.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)`, order.ID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to update order %s: %w", order.ID, err)
		}
		if !exists {
			return ErrNotFound
		}
		return ErrVersionConflict
	}

	order.Version++
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var order models.Order
	var credUsername, credPassword, credInfo sql.NullString
	var credSentAt sql.NullTime

	err := row.Scan(
		&order.ID, &order.Name, &order.Email, &order.Phone,
		&order.ServiceName, &order.PlanName, &order.SplitBetween,
		&order.AmountPaid, &order.AmountRemaining, &order.TotalAmount,
		&order.PaymentMethod, &order.Status,
		&credUsername, &credPassword, &credInfo, &credSentAt,
		&order.Version, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if credUsername.Valid {
		order.Credentials = &models.OrderCredentials{
			Username:       credUsername.String,
			Password:       credPassword.String,
			AdditionalInfo: credInfo.String,
		}
		if credSentAt.Valid {
			sentAt := credSentAt.Time
			order.Credentials.SentAt = &sentAt
		}
	}
	return &order, nil
}

func scanOrders(rows *sql.Rows) ([]models.Order, error) {
	var orders []models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}
	return orders, nil
}
