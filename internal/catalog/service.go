package catalog

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"commerce-api/internal/apperr"
	"commerce-api/internal/auth"
	"commerce-api/internal/logger"
)

const (
	nameMinLen        = 3
	nameMaxLen        = 80
	descriptionMinLen = 10
	imgURLMaxLen      = 512
	priceScale        = 2
)

// maxPrice is the first value NUMERIC(12,2) cannot hold.
var maxPrice = decimal.New(1, 10)

// Service holds the catalog use cases.
type Service struct {
	repo   Repository
	tracer trace.Tracer
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:   repo,
		tracer: otel.Tracer("commerce-api/catalog"),
	}
}

// GetProduct returns the product or apperr.ErrNotFound.
func (s *Service) GetProduct(ctx context.Context, id int64) (*ProductDTO, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.GetProduct", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "lookup failed")
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("product %d: %w", id, apperr.ErrNotFound)
	}
	dto := toDTO(p)
	return &dto, nil
}

// ListProducts returns one page of products matching q.
func (s *Service) ListProducts(ctx context.Context, q ListQuery) (*Page[ProductDTO], error) {
	q = q.normalize()
	ctx, span := s.tracer.Start(ctx, "catalog.ListProducts", trace.WithAttributes(
		attribute.String("filter.name", q.Name),
		attribute.Int("page.number", q.Page),
		attribute.Int("page.size", q.Size),
	))
	defer span.End()

	products, err := s.repo.ListProducts(ctx, q)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list failed")
		return nil, err
	}
	total, err := s.repo.CountProducts(ctx, q.Name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "count failed")
		return nil, err
	}

	content := make([]ProductDTO, len(products))
	for i := range products {
		content[i] = toDTO(&products[i])
	}
	span.SetAttributes(attribute.Int64("page.total", total))
	return newPage(content, q, total), nil
}

// InsertProduct creates a product. Authorization is checked before validation,
// and validation reports every invalid field at once.
func (s *Service) InsertProduct(ctx context.Context, p *auth.Principal, in ProductInput) (*ProductDTO, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.InsertProduct")
	defer span.End()

	switch auth.Authorize(auth.OpProductInsert, p, "") {
	case auth.Unauthorized:
		return nil, apperr.ErrUnauthorized
	case auth.Forbidden:
		logger.Debugf("InsertProduct: %s lacks admin role", p.Email)
		return nil, apperr.ErrForbidden
	}

	cats, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CreateProduct(ctx, Product{
		Name:        in.Name,
		Description: *in.Description,
		Price:       *in.Price,
		ImgURL:      in.ImgURL,
		Categories:  cats,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return nil, err
	}

	span.SetAttributes(attribute.Int64("product.id", created.ID))
	logger.Infof("product %d created by %s", created.ID, p.Email)
	dto := toDTO(created)
	return &dto, nil
}

// ListCategories returns every category.
func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.ListCategories")
	defer span.End()
	return s.repo.ListCategories(ctx)
}

// validate checks every field of in and resolves its categories.
func (s *Service) validate(ctx context.Context, in ProductInput) ([]Category, error) {
	var v apperr.Validator

	nameLen := utf8.RuneCountInString(in.Name)
	switch {
	case strings.TrimSpace(in.Name) == "":
		v.Add("name", "Required field")
	case nameLen < nameMinLen || nameLen > nameMaxLen:
		v.Add("name", fmt.Sprintf("Name must have between %d and %d characters", nameMinLen, nameMaxLen))
	}

	switch {
	case in.Description == nil || strings.TrimSpace(*in.Description) == "":
		v.Add("description", "Required field")
	case utf8.RuneCountInString(*in.Description) < descriptionMinLen:
		v.Add("description", fmt.Sprintf("Description must have at least %d characters", descriptionMinLen))
	}

	switch {
	case in.Price == nil:
		v.Add("price", "Required field")
	case !in.Price.IsPositive():
		v.Add("price", "Price must be positive")
	default:
		v.Check(in.Price.LessThan(maxPrice), "price", fmt.Sprintf("Price must be less than %s", maxPrice))
		v.Check(in.Price.Equal(in.Price.Round(priceScale)), "price", fmt.Sprintf("Price must have at most %d decimal places", priceScale))
	}

	v.Check(utf8.RuneCountInString(in.ImgURL) <= imgURLMaxLen, "imgUrl",
		fmt.Sprintf("Image URL must have at most %d characters", imgURLMaxLen))

	var cats []Category
	if len(in.Categories) == 0 {
		v.Add("categories", "Product must have at least one category")
	} else {
		ids := make([]int64, len(in.Categories))
		for i, c := range in.Categories {
			ids[i] = c.ID
		}
		found, err := s.repo.FindCategories(ctx, ids)
		if err != nil {
			return nil, err
		}
		known := make(map[int64]bool, len(found))
		for _, c := range found {
			known[c.ID] = true
		}
		for _, id := range ids {
			if !known[id] {
				v.Add("categories", fmt.Sprintf("Category %d does not exist", id))
			}
		}
		cats = found
	}

	if err := v.Err(); err != nil {
		return nil, err
	}
	return cats, nil
}
