package postgres

import (
	"context"
	"errors"

	userDatamodel "github.com/frahmantamala/inventory-tracker/internal/core/datamodel/user"
	"github.com/frahmantamala/inventory-tracker/internal/user"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetAll(ctx context.Context) ([]*userDatamodel.User, error) {
	var rows []*userDatamodel.User
	err := r.db.WithContext(ctx).Order("seq ASC").Find(&rows).Error
	return rows, err
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (*userDatamodel.User, error) {
	return r.first(ctx, "user_id = ?", userID)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*userDatamodel.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *UserRepository) first(ctx context.Context, query string, arg string) (*userDatamodel.User, error) {
	var row userDatamodel.User
	err := r.db.WithContext(ctx).Where(query, arg).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *UserRepository) Create(ctx context.Context, row *userDatamodel.User) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *UserRepository) Update(ctx context.Context, row *userDatamodel.User) error {
	return r.db.WithContext(ctx).Save(row).Error
}

func (r *UserRepository) Delete(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&userDatamodel.User{}).Error
}
