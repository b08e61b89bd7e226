package catalog

import (
	"math"

	"github.com/shopspring/decimal"
)

// Category groups products. Categories are seeded, never created here.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Product represents a product in the catalog
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	ImgURL      string
	Categories  []Category
}

// ProductDTO is the JSON shape of a product.
type ProductDTO struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	ImgURL      string     `json:"imgUrl"`
	Categories  []Category `json:"categories"`
}

func toDTO(p *Product) ProductDTO {
	cats := p.Categories
	if cats == nil {
		cats = []Category{}
	}
	return ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		ImgURL:      p.ImgURL,
		Categories:  cats,
	}
}

// CategoryRef points at an existing category by id.
type CategoryRef struct {
	ID int64 `json:"id"`
}

// ProductInput is the payload for creating a product. Pointer fields
// distinguish a missing value from a zero one.
type ProductInput struct {
	Name        string           `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	ImgURL      string           `json:"imgUrl"`
	Categories  []CategoryRef    `json:"categories"`
}

// SortField is a column products can be ordered by.
type SortField string

const (
	SortByID    SortField = "id"
	SortByName  SortField = "name"
	SortByPrice SortField = "price"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListQuery selects one page of products.
type ListQuery struct {
	Name string
	Page int
	Size int
	Sort SortField
	Desc bool
}

func (q ListQuery) offset() int {
	return q.Page * q.Size
}

// normalize applies defaults and bounds.
func (q ListQuery) normalize() ListQuery {
	if q.Page < 0 {
		q.Page = 0
	}
	if q.Size <= 0 {
		q.Size = DefaultPageSize
	}
	if q.Size > MaxPageSize {
		q.Size = MaxPageSize
	}
	// Page*Size must fit a 32-bit OFFSET.
	if maxPage := math.MaxInt32 / q.Size; q.Page > maxPage {
		q.Page = maxPage
	}
	switch q.Sort {
	case SortByID, SortByName, SortByPrice:
	default:
		q.Sort = SortByID
	}
	return q
}

// Page is a bounded slice of an ordered result with total-count metadata.
type Page[T any] struct {
	Content          []T   `json:"content"`
	TotalElements    int64 `json:"totalElements"`
	TotalPages       int   `json:"totalPages"`
	Size             int   `json:"size"`
	Number           int   `json:"number"`
	NumberOfElements int   `json:"numberOfElements"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
	Empty            bool  `json:"empty"`
}

func newPage[T any](content []T, q ListQuery, total int64) *Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if q.Size > 0 {
		totalPages = int((total + int64(q.Size) - 1) / int64(q.Size))
	}
	return &Page[T]{
		Content:          content,
		TotalElements:    total,
		TotalPages:       totalPages,
		Size:             q.Size,
		Number:           q.Page,
		NumberOfElements: len(content),
		First:            q.Page == 0,
		Last:             q.Page+1 >= totalPages,
		Empty:            len(content) == 0,
	}
}
