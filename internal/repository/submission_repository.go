package repository

import (
	"errors"

	"futuretech_backend/internal/model"
	"futuretech_backend/internal/util"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

// InsertIfAbsent 依赖 user_id 唯一索引原子落库,
// 并发重复提交时数据库层面只会留下一条,其余返回重复错误
func (r *SubmissionRepository) InsertIfAbsent(submission *model.TestSubmission) error {
	err := r.DB.Create(submission).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.ErrDuplicateSubmission
	}
	return err
}

func (r *SubmissionRepository) FindByUserID(userID uint) (*model.TestSubmission, error) {
	var submission model.TestSubmission
	err := r.DB.Where("user_id = ?", userID).First(&submission).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrResultNotFound
	}
	return &submission, err
}

func (r *SubmissionRepository) FindByID(id string) (*model.TestSubmission, error) {
	var submission model.TestSubmission
	err := r.DB.Where("id = ?", id).First(&submission).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrResultNotFound
	}
	return &submission, err
}

func (r *SubmissionRepository) ExistsByUserID(userID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.TestSubmission{}).Where("user_id = ?", userID).Count(&count).Error
	return count > 0, err
}

func (r *SubmissionRepository) List(page, limit int) ([]model.TestSubmission, int64, error) {
	var submissions []model.TestSubmission
	var total int64

	if err := r.DB.Model(&model.TestSubmission{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.DB.Order("submitted_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&submissions).Error
	return submissions, total, err
}
