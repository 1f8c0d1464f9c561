package service

import (
	"errors"

	"kstudent_backend/internal/grading"
	"kstudent_backend/internal/model"
	"kstudent_backend/internal/repository"

	"gorm.io/gorm"
)

type SubjectService struct {
	SubjectRepo *repository.SubjectRepository
}

func NewSubjectService(subjectRepo *repository.SubjectRepository) *SubjectService {
	return &SubjectService{SubjectRepo: subjectRepo}
}

var ErrSubjectCodeTaken = errors.New("subject code already exists")

// SubjectView decorates a subject with the level and semester decoded
// from its code.
type SubjectView struct {
	model.Subject
	Level int `json:"level"`
	Term  int `json:"term"`
}

func decorate(subjects []model.Subject) []SubjectView {
	views := make([]SubjectView, 0, len(subjects))
	for _, sub := range subjects {
		level, term := grading.LevelTerm(sub.Code)
		views = append(views, SubjectView{Subject: sub, Level: level, Term: term})
	}
	return views
}

func (s *SubjectService) Create(code, name string, credit float64, teacherID uint) (*model.Subject, error) {
	if _, err := s.SubjectRepo.FindByCode(code); err == nil {
		return nil, ErrSubjectCodeTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	subject := &model.Subject{
		Code:      code,
		Name:      name,
		Credit:    credit,
		TeacherID: &teacherID,
	}
	if err := s.SubjectRepo.Create(subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *SubjectService) List() ([]SubjectView, error) {
	subjects, err := s.SubjectRepo.List()
	if err != nil {
		return nil, err
	}
	return decorate(subjects), nil
}

func (s *SubjectService) ListByTeacher(teacherID uint) ([]SubjectView, error) {
	subjects, err := s.SubjectRepo.ListByTeacher(teacherID)
	if err != nil {
		return nil, err
	}
	return decorate(subjects), nil
}
