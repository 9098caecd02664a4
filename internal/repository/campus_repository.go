package repository

import (
	"context"
	"slices"
	"strings"

	"homebite/internal/model"
)

// campusRepository serves a fixed campus list.
type campusRepository struct {
	campuses []model.Campus
}

// NewCampusRepository creates a read-only repository over campuses.
func NewCampusRepository(campuses []model.Campus) CampusRepository {
	sorted := slices.Clone(campuses)
	slices.SortFunc(sorted, func(a, b model.Campus) int {
		return strings.Compare(a.Name, b.Name)
	})
	return &campusRepository{campuses: sorted}
}

// List retrieves all campuses sorted by name.
func (r *campusRepository) List(ctx context.Context) ([]model.Campus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(r.campuses), nil
}
