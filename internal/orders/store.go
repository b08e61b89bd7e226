package orders

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository is the persistence the order service needs.
// GetOrder returns nil, nil when the order does not exist.
type Repository interface {
	GetOrder(ctx context.Context, id int64) (*Order, error)
}

// Store reads orders from postgres.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// GetOrder loads the order with its client and items.
func (s *Store) GetOrder(ctx context.Context, id int64) (*Order, error) {
	var o Order
	var status string
	err := s.db.QueryRowContext(ctx, `
		SELECT o.id, o.moment, o.status, u.id, u.name, u.email
		FROM tb_order o
		JOIN tb_user u ON u.id = o.client_id
		WHERE o.id = $1
	`, id).Scan(&o.ID, &o.Moment, &status, &o.Client.ID, &o.Client.Name, &o.Client.Email)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetOrder query: %w", err)
	}
	o.Status = Status(status)

	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.name, oi.price, oi.quantity, COALESCE(p.img_url, '')
		FROM tb_order_item oi
		JOIN tb_product p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY p.id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("GetOrder items query: %w", err)
	}
	defer rows.Close()

	o.Items = []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ProductID, &it.Name, &it.Price, &it.Quantity, &it.ImgURL); err != nil {
			return nil, fmt.Errorf("GetOrder items scan: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetOrder items: %w", err)
	}
	return &o, nil
}
