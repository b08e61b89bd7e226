package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// Repository is the persistence the catalog service needs.
// GetProduct returns nil, nil when the product does not exist.
type Repository interface {
	GetProduct(ctx context.Context, id int64) (*Product, error)
	ListProducts(ctx context.Context, q ListQuery) ([]Product, error)
	CountProducts(ctx context.Context, name string) (int64, error)
	CreateProduct(ctx context.Context, p Product) (*Product, error)
	FindCategories(ctx context.Context, ids []int64) ([]Category, error)
	ListCategories(ctx context.Context) ([]Category, error)
}

// Store handles database operations for products
type Store struct {
	db *sql.DB
}

// NewStore creates a new product store
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func namePattern(name string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(name)) + "%"
}

var sortColumns = map[SortField]string{
	SortByID:    "id",
	SortByName:  "LOWER(name)",
	SortByPrice: "price",
}

// ListProducts retrieves one page of products whose name contains q.Name.
func (s *Store) ListProducts(ctx context.Context, q ListQuery) ([]Product, error) {
	q = q.normalize()

	dir := "ASC"
	if q.Desc {
		dir = "DESC"
	}
	query := fmt.Sprintf(`
		SELECT id, name, description, price, COALESCE(img_url, '')
		FROM tb_product
		WHERE LOWER(name) LIKE $1 ESCAPE '\'
		ORDER BY %s %s, id ASC
		LIMIT $2 OFFSET $3
	`, sortColumns[q.Sort], dir)

	rows, err := s.db.QueryContext(ctx, query, namePattern(q.Name), q.Size, q.offset())
	if err != nil {
		return nil, fmt.Errorf("ListProducts query: %w", err)
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImgURL); err != nil {
			return nil, fmt.Errorf("ListProducts scan: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListProducts rows: %w", err)
	}

	if err := s.attachCategories(ctx, products); err != nil {
		return nil, fmt.Errorf("ListProducts: %w", err)
	}
	return products, nil
}

// CountProducts returns the number of products whose name contains name.
func (s *Store) CountProducts(ctx context.Context, name string) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tb_product WHERE LOWER(name) LIKE $1 ESCAPE '\'`,
		namePattern(name),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("CountProducts: %w", err)
	}
	return count, nil
}

// GetProduct retrieves a single product by ID
func (s *Store) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var p Product
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, price, COALESCE(img_url, '')
		FROM tb_product
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImgURL)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetProduct query: %w", err)
	}

	products := []Product{p}
	if err := s.attachCategories(ctx, products); err != nil {
		return nil, fmt.Errorf("GetProduct: %w", err)
	}
	return &products[0], nil
}

// CreateProduct inserts the product and its category links in one transaction.
func (s *Store) CreateProduct(ctx context.Context, p Product) (*Product, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("CreateProduct begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	err = tx.QueryRowContext(ctx, `
		INSERT INTO tb_product (name, description, price, img_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, p.Name, p.Description, p.Price, p.ImgURL).Scan(&p.ID)
	if err != nil {
		return nil, fmt.Errorf("CreateProduct insert: %w", err)
	}

	ids := make([]int64, 0, len(p.Categories))
	for _, c := range p.Categories {
		ids = append(ids, c.ID)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO tb_product_category (product_id, category_id)
		SELECT $1, UNNEST($2::bigint[])
		ON CONFLICT DO NOTHING
	`, p.ID, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("CreateProduct categories: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("CreateProduct commit: %w", err)
	}

	return s.GetProduct(ctx, p.ID)
}

// FindCategories returns the categories among ids that exist, ordered by id.
func (s *Store) FindCategories(ctx context.Context, ids []int64) ([]Category, error) {
	if len(ids) == 0 {
		return []Category{}, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name FROM tb_category WHERE id = ANY($1) ORDER BY id`,
		pq.Array(ids),
	)
	if err != nil {
		return nil, fmt.Errorf("FindCategories query: %w", err)
	}
	defer rows.Close()
	return scanCategories(rows)
}

// ListCategories returns every category ordered by name.
func (s *Store) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM tb_category ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("ListCategories query: %w", err)
	}
	defer rows.Close()
	return scanCategories(rows)
}

func scanCategories(rows *sql.Rows) ([]Category, error) {
	cats := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// attachCategories loads the categories of all products with a single query.
func (s *Store) attachCategories(ctx context.Context, products []Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]int64, len(products))
	index := make(map[int64]int, len(products))
	for i, p := range products {
		ids[i] = p.ID
		index[p.ID] = i
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT pc.product_id, c.id, c.name
		FROM tb_product_category pc
		JOIN tb_category c ON c.id = pc.category_id
		WHERE pc.product_id = ANY($1)
		ORDER BY pc.product_id, c.id
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("categories query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var productID int64
		var c Category
		if err := rows.Scan(&productID, &c.ID, &c.Name); err != nil {
			return fmt.Errorf("categories scan: %w", err)
		}
		i := index[productID]
		products[i].Categories = append(products[i].Categories, c)
	}
	return rows.Err()
}
