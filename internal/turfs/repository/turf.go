package repository

import (
	"context"
	"sort"

	turfserrors "github.com/Prasi710/Turffy/internal/turfs/errors"
	"github.com/Prasi710/Turffy/pkg/model"
)

// TurfRepository is the read-only catalog boundary. The reservation
// core only ever looks turfs up through this interface, so the static
// catalog can be swapped for a real store without touching it.
type TurfRepository interface {
	FindByID(ctx context.Context, id string) (*model.Turf, error)
	FindAll(ctx context.Context, city string) ([]*model.Turf, error)
	Cities(ctx context.Context) ([]string, error)
}

type staticTurfRepository struct {
	turfs []*model.Turf
	byID  map[string]*model.Turf
}

// NewStaticTurfRepository serves the seed catalog from memory.
func NewStaticTurfRepository(turfs []*model.Turf) TurfRepository {
	byID := make(map[string]*model.Turf, len(turfs))
	for _, t := range turfs {
		byID[t.ID] = t
	}
	return &staticTurfRepository{
		turfs: turfs,
		byID:  byID,
	}
}

func (r *staticTurfRepository) FindByID(_ context.Context, id string) (*model.Turf, error) {
	turf, ok := r.byID[id]
	if !ok {
		return nil, turfserrors.ErrNotFound
	}
	return turf, nil
}

func (r *staticTurfRepository) FindAll(_ context.Context, city string) ([]*model.Turf, error) {
	if city == "" || city == "All" {
		return r.turfs, nil
	}

	filtered := make([]*model.Turf, 0, len(r.turfs))
	for _, t := range r.turfs {
		if t.City == city {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

func (r *staticTurfRepository) Cities(_ context.Context) ([]string, error) {
	seen := make(map[string]struct{}, len(r.turfs))
	cities := make([]string, 0, len(r.turfs))
	for _, t := range r.turfs {
		if _, ok := seen[t.City]; ok {
			continue
		}
		seen[t.City] = struct{}{}
		cities = append(cities, t.City)
	}
	sort.Strings(cities)
	return cities, nil
}
