package repository

import (
	"time"

	"futuretech_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LeadRepository struct {
	DB *gorm.DB
}

func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

// Upsert 按邮箱去重,已存在的线索更新联系信息与最近触达时间
func (r *LeadRepository) Upsert(lead *model.Lead) error {
	lead.LastContactAt = time.Now()
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "phone", "college", "course", "year", "source", "last_contact_at",
		}),
	}).Create(lead).Error
}

func (r *LeadRepository) FindByEmail(email string) (*model.Lead, error) {
	var lead model.Lead
	err := r.DB.Where("email = ?", email).First(&lead).Error
	return &lead, err
}

func (r *LeadRepository) List(page, limit int) ([]model.Lead, int64, error) {
	var leads []model.Lead
	var total int64

	if err := r.DB.Model(&model.Lead{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.DB.Order("last_contact_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&leads).Error
	return leads, total, err
}
