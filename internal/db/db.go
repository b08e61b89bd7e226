// Package db opens the postgres pool and prepares the schema.
package db

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"commerce-api/internal/config"
	"commerce-api/internal/fixtures"
	"commerce-api/internal/logger"
)

//go:embed schema.sql
var schema string

// Init opens the pool described by cfg and waits until the database answers.
func Init(ctx context.Context, cfg config.DBConfig) (*sql.DB, error) {
	sqlDB, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return sqlDB, nil
}

// Migrate creates any missing tables.
func Migrate(ctx context.Context, sqlDB *sql.DB) error {
	if _, err := sqlDB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Seed loads the fixtures into an empty database. A database that already
// holds products is left untouched.
func Seed(ctx context.Context, sqlDB *sql.DB) error {
	var n int
	if err := sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM tb_product`).Scan(&n); err != nil {
		return fmt.Errorf("seed count: %w", err)
	}
	if n > 0 {
		logger.Debugf("seed skipped: %d products present", n)
		return nil
	}

	tx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, c := range fixtures.Categories() {
		if _, err := tx.ExecContext(ctx, `INSERT INTO tb_category (id, name) VALUES ($1, $2)`, c.ID, c.Name); err != nil {
			return fmt.Errorf("seed category %d: %w", c.ID, err)
		}
	}
	for _, p := range fixtures.Products() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tb_product (id, name, description, price, img_url) VALUES ($1, $2, $3, $4, $5)`,
			p.ID, p.Name, p.Description, p.Price, p.ImgURL,
		); err != nil {
			return fmt.Errorf("seed product %d: %w", p.ID, err)
		}
		for _, cid := range p.CategoryIDs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO tb_product_category (product_id, category_id) VALUES ($1, $2)`, p.ID, cid,
			); err != nil {
				return fmt.Errorf("seed product %d category %d: %w", p.ID, cid, err)
			}
		}
	}
	for _, u := range fixtures.Users() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tb_user (id, name, email, phone, birth_date) VALUES ($1, $2, $3, $4, $5)`,
			u.ID, u.Name, u.Email, u.Phone, u.BirthDate,
		); err != nil {
			return fmt.Errorf("seed user %d: %w", u.ID, err)
		}
		for _, role := range u.Roles {
			if _, err := tx.ExecContext(ctx, `INSERT INTO tb_user_role (user_id, role) VALUES ($1, $2)`, u.ID, role); err != nil {
				return fmt.Errorf("seed user %d role: %w", u.ID, err)
			}
		}
	}
	for _, o := range fixtures.Orders() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tb_order (id, moment, status, client_id) VALUES ($1, $2, $3, $4)`,
			o.ID, o.Moment, o.Status, o.ClientID,
		); err != nil {
			return fmt.Errorf("seed order %d: %w", o.ID, err)
		}
		for _, it := range o.Items {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO tb_order_item (order_id, product_id, quantity, price) VALUES ($1, $2, $3, $4)`,
				o.ID, it.ProductID, it.Quantity, it.Price,
			); err != nil {
				return fmt.Errorf("seed order %d item: %w", o.ID, err)
			}
		}
	}

	// explicit ids leave the sequences behind
	for _, table := range []string{"tb_category", "tb_product", "tb_user", "tb_order"} {
		q := fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('%s', 'id'), (SELECT MAX(id) FROM %s))`, table, table)
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("seed sequence %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}
	logger.Infof("database seeded with %d products", len(fixtures.Products()))
	return nil
}
