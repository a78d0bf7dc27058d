package postgres

import (
	"context"
	"time"

	"github.com/dom/crowd-translate/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{db: db}
}

// Upsert runs a single INSERT ... ON CONFLICT (email) DO UPDATE so that
// concurrent sign-ins for one email never produce two rows. An existing row
// keeps its id and email.
func (r *userRepository) Upsert(ctx context.Context, email, name, avatar string) (*domain.User, error) {
	user := &domain.User{
		ID:     uuid.New(),
		Email:  email,
		Name:   name,
		Avatar: avatar,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "email"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"name":       name,
			"avatar":     avatar,
			"updated_at": time.Now(),
		}),
	}).Create(user).Error
	if err != nil {
		return nil, err
	}

	return r.GetByEmail(ctx, email)
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
