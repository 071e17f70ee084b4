package service

import (
	"futuretech_backend/internal/model"
	"futuretech_backend/internal/repository"
	"futuretech_backend/internal/util"
)

// SaveLeadRequest 保存线索请求
type SaveLeadRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	College string `json:"college"`
	Course  string `json:"course"`
	Year    string `json:"year"`
	Source  string `json:"source"`
}

type LeadService struct {
	LeadRepo *repository.LeadRepository
}

func NewLeadService(leadRepo *repository.LeadRepository) *LeadService {
	return &LeadService{LeadRepo: leadRepo}
}

func (s *LeadService) Save(req *SaveLeadRequest) (*model.Lead, error) {
	if req.Name == "" || req.Email == "" {
		return nil, util.ErrLeadInvalid
	}
	lead := &model.Lead{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		College: req.College,
		Course:  req.Course,
		Year:    req.Year,
		Source:  req.Source,
	}
	if lead.Source == "" {
		lead.Source = "scholarship-test"
	}
	if err := s.LeadRepo.Upsert(lead); err != nil {
		return nil, err
	}
	return lead, nil
}

func (s *LeadService) List(page, limit int) ([]model.Lead, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.LeadRepo.List(page, limit)
}
