package adoptions

import (
	"context"

	"github.com/angelmondragon/pawhaven-backend/pkg/db/models"
	"github.com/angelmondragon/pawhaven-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes adoption request persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an adoptions repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, req *models.AdoptionRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.AdoptionRequest, error) {
	var req models.AdoptionRequest
	if err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// List returns requests matching every supplied filter, newest first.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.AdoptionRequest, error) {
	qb := r.db.WithContext(ctx).Model(&models.AdoptionRequest{})
	if filter.PetID != nil {
		qb = qb.Where("pet_id = ?", *filter.PetID)
	}
	if filter.OwnerID != nil {
		qb = qb.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.AdopterID != nil {
		qb = qb.Where("adopter_id = ?", *filter.AdopterID)
	}
	if filter.Status != nil {
		qb = qb.Where("status = ?", *filter.Status)
	}

	var list []models.AdoptionRequest
	if err := qb.Order("created_at DESC").Order("id DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateStatus overwrites the request status unconditionally; last write wins.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.AdoptionStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.AdoptionRequest{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
