package entities

import (
	"context"
	"strings"

	"github.com/angelmondragon/pawhaven-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Repository exposes entity persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an entities repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, entity *models.Entity) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

// List returns entities matching the filter, newest first.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Entity, error) {
	qb := r.db.WithContext(ctx).Model(&models.Entity{})
	if filter.CreatedBy != nil {
		qb = qb.Where("created_by = ?", *filter.CreatedBy)
	}
	if name := strings.TrimSpace(filter.Name); name != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(name)) + "%"
		qb = qb.Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern)
	}

	var list []models.Entity
	if err := qb.Order("created_at DESC").Order("id DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// ListByCreator returns the entities created by the user.
func (r *Repository) ListByCreator(ctx context.Context, userID uuid.UUID) ([]models.Entity, error) {
	return r.List(ctx, ListFilter{CreatedBy: &userID})
}

// Delete removes the entity and reports whether a row existed.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Entity{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
