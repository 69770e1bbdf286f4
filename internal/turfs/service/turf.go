package service

import (
	"context"
	"errors"

	turfserrors "github.com/Prasi710/Turffy/internal/turfs/errors"
	"github.com/Prasi710/Turffy/internal/turfs/repository"
	apperrors "github.com/Prasi710/Turffy/pkg/errors"
	"github.com/Prasi710/Turffy/pkg/logger"
	"github.com/Prasi710/Turffy/pkg/model"
	"github.com/Prasi710/Turffy/pkg/sanitizer"
)

type TurfService interface {
	GetByID(ctx context.Context, id string) (*model.Turf, error)
	List(ctx context.Context, city string) ([]*model.Turf, error)
	Cities(ctx context.Context) ([]string, error)
}

type turfService struct {
	repo repository.TurfRepository
	log  *logger.Logger
}

func NewTurfService(repo repository.TurfRepository, log *logger.Logger) TurfService {
	return &turfService{
		repo: repo,
		log:  log,
	}
}

func (s *turfService) GetByID(ctx context.Context, id string) (*model.Turf, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Turf ID cannot be empty")
	}

	turf, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, turfserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Turf", id)
		}
		return nil, apperrors.Internal("Failed to retrieve turf", err)
	}

	return turf, nil
}

func (s *turfService) List(ctx context.Context, city string) ([]*model.Turf, error) {
	turfs, err := s.repo.FindAll(ctx, sanitizer.NormalizeCity(city))
	if err != nil {
		s.log.Error("Failed to list turfs", "city", city, "error", err)
		return nil, apperrors.Internal("Failed to retrieve turfs", err)
	}
	return turfs, nil
}

// Cities returns the distinct catalog cities prefixed with "All", which
// clients use as the unfiltered option.
func (s *turfService) Cities(ctx context.Context) ([]string, error) {
	cities, err := s.repo.Cities(ctx)
	if err != nil {
		s.log.Error("Failed to list cities", "error", err)
		return nil, apperrors.Internal("Failed to retrieve cities", err)
	}
	return append([]string{"All"}, cities...), nil
}
