package repository

import (
	"context"

	"homecare-booking/internal/data/entity"

	"go.uber.org/zap"
)

// ServiceOptionRepository is the read-only price list. Safe for concurrent use.
type ServiceOptionRepository interface {
	FindByID(ctx context.Context, id string) (*entity.ServiceOption, error)
	FindAll(ctx context.Context) ([]entity.ServiceOption, error)
}

type serviceOptionRepository struct {
	ordered []entity.ServiceOption
	byID    map[string]entity.ServiceOption
}

// NewServiceOptionRepository snapshots options at startup. Entries without a
// positive price or with a repeated id are dropped and logged.
func NewServiceOptionRepository(options []entity.ServiceOption, log *zap.Logger) ServiceOptionRepository {
	log = log.With(zap.String("repository", "service_option"))

	repo := &serviceOptionRepository{
		ordered: make([]entity.ServiceOption, 0, len(options)),
		byID:    make(map[string]entity.ServiceOption, len(options)),
	}
	for _, opt := range options {
		if opt.ID == "" || opt.UnitPrice <= 0 {
			log.Error("Invalid service option skipped",
				zap.String("service_id", opt.ID),
				zap.Int64("unit_price", opt.UnitPrice),
			)
			continue
		}
		if _, dup := repo.byID[opt.ID]; dup {
			log.Error("Duplicate service option skipped", zap.String("service_id", opt.ID))
			continue
		}
		repo.byID[opt.ID] = opt
		repo.ordered = append(repo.ordered, opt)
	}
	return repo
}

func (r *serviceOptionRepository) FindByID(ctx context.Context, id string) (*entity.ServiceOption, error) {
	opt, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &opt, nil
}

func (r *serviceOptionRepository) FindAll(ctx context.Context) ([]entity.ServiceOption, error) {
	out := make([]entity.ServiceOption, len(r.ordered))
	copy(out, r.ordered)
	return out, nil
}
