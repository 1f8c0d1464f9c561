package repository

import (
	"kstudent_backend/internal/model"

	"gorm.io/gorm"
)

type SubjectRepository struct {
	DB *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) *SubjectRepository {
	return &SubjectRepository{DB: db}
}

func (r *SubjectRepository) Create(s *model.Subject) error {
	return r.DB.Create(s).Error
}

func (r *SubjectRepository) FindByID(id uint) (*model.Subject, error) {
	var s model.Subject
	err := r.DB.First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubjectRepository) FindByCode(code string) (*model.Subject, error) {
	var s model.Subject
	err := r.DB.Where("code = ?", code).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubjectRepository) List() ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.DB.Order("code").Find(&subjects).Error
	return subjects, err
}

func (r *SubjectRepository) ListByTeacher(teacherID uint) ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.DB.Where("teacher_id = ?", teacherID).Order("code").Find(&subjects).Error
	return subjects, err
}

func (r *SubjectRepository) Update(s *model.Subject) error {
	return r.DB.Save(s).Error
}

func (r *SubjectRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Subject{}, id).Error
}
