package repository

import (
	"kstudent_backend/internal/model"

	"gorm.io/gorm"
)

type ClassroomRepository struct {
	DB *gorm.DB
}

func NewClassroomRepository(db *gorm.DB) *ClassroomRepository {
	return &ClassroomRepository{DB: db}
}

func (r *ClassroomRepository) Create(c *model.Classroom) error {
	return r.DB.Create(c).Error
}

func (r *ClassroomRepository) FindByID(id uint) (*model.Classroom, error) {
	var c model.Classroom
	err := r.DB.First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClassroomRepository) FindByName(name string) (*model.Classroom, error) {
	var c model.Classroom
	err := r.DB.Where("name = ?", name).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClassroomRepository) List() ([]model.Classroom, error) {
	var classrooms []model.Classroom
	err := r.DB.Order("name").Find(&classrooms).Error
	return classrooms, err
}

func (r *ClassroomRepository) Update(c *model.Classroom) error {
	return r.DB.Save(c).Error
}

func (r *ClassroomRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Classroom{}, id).Error
}
