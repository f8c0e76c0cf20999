package users

import (
	"context"

	"github.com/angelmondragon/pawhaven-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists accounts. Lookups return gorm.ErrRecordNotFound for
// missing rows.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) users() gorm.Interface[models.User] {
	return gorm.G[models.User](r.db)
}

// Create inserts the user; the id is assigned by the model hook.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if err := r.users().Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// FindByEmail matches the address exactly, case included.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := r.users().Where("email = ?", email).First(ctx)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := r.users().Where("id = ?", id).First(ctx)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	_, err := r.users().Where("id = ?", id).Update(ctx, "password_hash", hash)
	return err
}

// ListSummaries returns every user as id, name and email, ordered by name.
func (r *Repository) ListSummaries(ctx context.Context) ([]UserSummary, error) {
	rows, err := r.users().Select("id", "name", "email").Order("name ASC").Order("id ASC").Find(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]UserSummary, 0, len(rows))
	for _, u := range rows {
		list = append(list, UserSummary{ID: u.ID, Name: u.Name, Email: u.Email})
	}
	return list, nil
}
