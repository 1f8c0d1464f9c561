package service

import (
	"errors"

	"kstudent_backend/internal/model"
	"kstudent_backend/internal/repository"

	"gorm.io/gorm"
)

type ClassroomService struct {
	ClassroomRepo *repository.ClassroomRepository
}

func NewClassroomService(classroomRepo *repository.ClassroomRepository) *ClassroomService {
	return &ClassroomService{ClassroomRepo: classroomRepo}
}

var ErrClassroomNameTaken = errors.New("classroom name already exists")

func (s *ClassroomService) Create(name string) (*model.Classroom, error) {
	if _, err := s.ClassroomRepo.FindByName(name); err == nil {
		return nil, ErrClassroomNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	classroom := &model.Classroom{Name: name}
	if err := s.ClassroomRepo.Create(classroom); err != nil {
		return nil, err
	}
	return classroom, nil
}

func (s *ClassroomService) List() ([]model.Classroom, error) {
	return s.ClassroomRepo.List()
}
