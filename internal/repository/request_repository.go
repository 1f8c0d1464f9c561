package repository

import (
	"kstudent_backend/internal/model"

	"gorm.io/gorm"
)

type RequestRepository struct {
	DB *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{DB: db}
}

func (r *RequestRepository) Create(req *model.Request) error {
	return r.DB.Create(req).Error
}

func (r *RequestRepository) FindByID(id uint) (*model.Request, error) {
	var req model.Request
	err := r.DB.Preload("User").First(&req, id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepository) ListByUser(userID uint) ([]model.Request, error) {
	var requests []model.Request
	err := r.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&requests).Error
	return requests, err
}

func (r *RequestRepository) List(status model.RequestStatus, page, limit int) ([]model.Request, int64, error) {
	var requests []model.Request
	var total int64
	query := r.DB.Model(&model.Request{}).Preload("User")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&requests).Error
	return requests, total, err
}

func (r *RequestRepository) CountByStatus() (map[model.RequestStatus]int64, error) {
	type row struct {
		Status model.RequestStatus
		N      int64
	}
	var rows []row
	err := r.DB.Model(&model.Request{}).
		Select("status, count(*) as n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[model.RequestStatus]int64, len(rows))
	for _, rr := range rows {
		counts[rr.Status] = rr.N
	}
	return counts, nil
}

func (r *RequestRepository) Resolve(id uint, status model.RequestStatus, reply string, resolverID uint) error {
	return r.DB.Model(&model.Request{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":      status,
		"reply":       reply,
		"resolved_by": resolverID,
	}).Error
}
