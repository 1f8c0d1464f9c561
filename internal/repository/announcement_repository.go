package repository

import (
	"kstudent_backend/internal/model"

	"gorm.io/gorm"
)

type AnnouncementRepository struct {
	DB *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) *AnnouncementRepository {
	return &AnnouncementRepository{DB: db}
}

func (r *AnnouncementRepository) Create(a *model.Announcement) error {
	return r.DB.Create(a).Error
}

func (r *AnnouncementRepository) FindByID(id uint) (*model.Announcement, error) {
	var a model.Announcement
	err := r.DB.Preload("Author").First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AnnouncementRepository) List(page, limit int) ([]model.Announcement, int64, error) {
	var announcements []model.Announcement
	var total int64
	query := r.DB.Model(&model.Announcement{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Preload("Author").Order("created_at desc").Offset(offset).Limit(limit).Find(&announcements).Error
	return announcements, total, err
}

func (r *AnnouncementRepository) Update(a *model.Announcement) error {
	return r.DB.Save(a).Error
}

func (r *AnnouncementRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Announcement{}, id).Error
}
