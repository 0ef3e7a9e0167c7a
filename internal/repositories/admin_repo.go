package repositories

import (
	"zenith-backend/internal/models"

	"gorm.io/gorm"
)

type adminRepo struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepo{db: db}
}

func (r *adminRepo) GetAdminByUsernameOrEmail(login string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.Where("username = ? OR email = ?", login, login).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepo) GetAdminByID(id string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.Where("id = ?", id).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepo) CreateAdmin(admin *models.Admin) error {
	return r.db.Create(admin).Error
}

func (r *adminRepo) UpdateAdmin(admin *models.Admin) error {
	return r.db.Save(admin).Error
}

func (r *adminRepo) ListAdmins() ([]models.Admin, error) {
	var admins []models.Admin
	if err := r.db.Order("created_at ASC").Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

func (r *adminRepo) DeleteAdmin(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Admin{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
