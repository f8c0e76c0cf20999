package pets

import (
	"context"

	"github.com/angelmondragon/pawhaven-backend/pkg/db/models"
	"github.com/angelmondragon/pawhaven-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes pet persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a pets repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, pet *models.Pet) error {
	return r.db.WithContext(ctx).Create(pet).Error
}

// FindByID returns gorm.ErrRecordNotFound when the pet does not exist.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Pet, error) {
	var pet models.Pet
	if err := r.db.WithContext(ctx).First(&pet, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pet, nil
}

// Search runs the compiled query against the pets table.
func (r *Repository) Search(ctx context.Context, query Query) ([]models.Pet, error) {
	var list []models.Pet
	if err := query.Apply(r.db.WithContext(ctx).Model(&models.Pet{})).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// ListByOwner returns every pet owned by the user regardless of status, newest first.
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Pet, error) {
	var list []models.Pet
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Save overwrites every column of an existing pet.
func (r *Repository) Save(ctx context.Context, pet *models.Pet) error {
	return r.db.WithContext(ctx).Save(pet).Error
}

// UpdateStatus sets the pet status; gorm.ErrRecordNotFound means no row matched.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.PetStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.Pet{}).
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

// Delete removes the pet and reports whether a row existed.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Pet{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
