package repository

import (
	"errors"

	"futuretech_backend/internal/model"
	"futuretech_backend/internal/util"

	"gorm.io/gorm"
)

type ResumeRepository struct {
	DB *gorm.DB
}

func NewResumeRepository(db *gorm.DB) *ResumeRepository {
	return &ResumeRepository{DB: db}
}

func (r *ResumeRepository) Create(resume *model.Resume) error {
	return r.DB.Create(resume).Error
}

func (r *ResumeRepository) FindByID(id string, userID uint) (*model.Resume, error) {
	var resume model.Resume
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&resume).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrResumeNotFound
	}
	return &resume, err
}

func (r *ResumeRepository) FindByUserID(userID uint) ([]model.Resume, error) {
	var resumes []model.Resume
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&resumes).Error
	return resumes, err
}

func (r *ResumeRepository) Update(resume *model.Resume) error {
	return r.DB.Save(resume).Error
}
