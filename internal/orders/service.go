package orders

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"commerce-api/internal/apperr"
	"commerce-api/internal/auth"
	"commerce-api/internal/logger"
)

type Service struct {
	repo   Repository
	tracer trace.Tracer
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:   repo,
		tracer: otel.Tracer("commerce-api/orders"),
	}
}

// GetOrder returns order id as seen by p. A missing order is always
// apperr.ErrNotFound; ownership is only evaluated for orders that exist.
func (s *Service) GetOrder(ctx context.Context, p *auth.Principal, id int64) (*OrderDTO, error) {
	ctx, span := s.tracer.Start(ctx, "orders.GetOrder", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	if p == nil {
		return nil, apperr.ErrUnauthorized
	}

	o, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "lookup failed")
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("order %d: %w", id, apperr.ErrNotFound)
	}

	switch auth.Authorize(auth.OpOrderRead, p, o.Client.Email) {
	case auth.Allow:
	case auth.Unauthorized:
		return nil, apperr.ErrUnauthorized
	default:
		logger.Debugf("GetOrder: %s may not read order %d", p.Email, id)
		return nil, apperr.ErrForbidden
	}

	dto := toDTO(o)
	return &dto, nil
}
