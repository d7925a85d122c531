package postgres

import (
	userDatamodel "github.com/inspectra/inspection-management/internal/core/datamodel/user"
	"github.com/inspectra/inspection-management/internal/user"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(userID int64) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("id = ?", userID).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByOrgID(orgID string) ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := r.db.Where("org_id = ?", orgID).Order("created_at ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) CountByOrgID(orgID string) (int64, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).
		Where("org_id = ? AND is_active = true", orgID).
		Count(&count).Error
	return count, err
}

func (r *UserRepository) Create(u *userDatamodel.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) Update(u *userDatamodel.User) error {
	return r.db.Save(u).Error
}
