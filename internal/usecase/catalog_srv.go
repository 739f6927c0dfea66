package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"

	"homecare-booking/internal/data/entity"
	"homecare-booking/internal/data/repository"

	"go.uber.org/zap"
)

// CatalogService is the only place prices come from.
type CatalogService interface {
	Lookup(ctx context.Context, serviceID string) (*entity.ServiceOption, error)
	List(ctx context.Context) ([]entity.ServiceOption, error)
	Quote(ctx context.Context, serviceID string, quantity int) (int64, *entity.ServiceOption, error)
}

type catalogService struct {
	repo repository.ServiceOptionRepository
	log  *zap.Logger
}

func NewCatalogService(repo repository.ServiceOptionRepository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) Lookup(ctx context.Context, serviceID string) (*entity.ServiceOption, error) {
	id := strings.TrimSpace(serviceID)
	opt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup service %s: %w", id, err)
	}
	if opt == nil {
		return nil, &FieldError{Field: "service", Kind: ErrUnknownService, Message: fmt.Sprintf("unknown service %q", id)}
	}
	return opt, nil
}

func (s *catalogService) List(ctx context.Context) ([]entity.ServiceOption, error) {
	return s.repo.FindAll(ctx)
}

// Quote returns unitPrice * quantity in cents.
func (s *catalogService) Quote(ctx context.Context, serviceID string, quantity int) (int64, *entity.ServiceOption, error) {
	if quantity < 1 {
		return 0, nil, ErrInvalidQuantity
	}

	opt, err := s.Lookup(ctx, serviceID)
	if err != nil {
		return 0, nil, err
	}

	if opt.UnitPrice > math.MaxInt64/int64(quantity) {
		return 0, nil, ErrInvalidAmount
	}
	return opt.UnitPrice * int64(quantity), opt, nil
}
