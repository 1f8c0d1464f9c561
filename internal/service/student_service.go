package service

import (
	"kstudent_backend/internal/model"
	"kstudent_backend/internal/repository"
	"kstudent_backend/internal/util"
)

type StudentService struct {
	StudentRepo *repository.StudentRepository
}

func NewStudentService(studentRepo *repository.StudentRepository) *StudentService {
	return &StudentService{StudentRepo: studentRepo}
}

func (s *StudentService) Get(id uint) (*model.Student, error) {
	student, err := s.StudentRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrStudentNotFound
	}
	return student, nil
}

// ForUser resolves the student row behind an authenticated user account.
func (s *StudentService) ForUser(userID uint) (*model.Student, error) {
	student, err := s.StudentRepo.FindByUserID(userID)
	if err != nil {
		return nil, util.ErrStudentNotFound
	}
	return student, nil
}

// Roster lists students filtered by classroom and/or subject enrollment,
// in register order.
func (s *StudentService) Roster(classroomID, subjectID uint) ([]model.Student, error) {
	return s.StudentRepo.List(classroomID, subjectID)
}

// AdjustBehavior applies a behavior score delta with its reason. The
// resulting score is clamped to [0,100].
func (s *StudentService) AdjustBehavior(studentID uint, delta int, reason string, teacherID uint) (int, error) {
	if _, err := s.StudentRepo.FindByID(studentID); err != nil {
		return 0, util.ErrStudentNotFound
	}
	return s.StudentRepo.AdjustBehavior(studentID, delta, reason, teacherID)
}

func (s *StudentService) BehaviorLogs(studentID uint) ([]model.BehaviorLog, error) {
	if _, err := s.StudentRepo.FindByID(studentID); err != nil {
		return nil, util.ErrStudentNotFound
	}
	return s.StudentRepo.ListBehaviorLogs(studentID)
}
