package service

import (
	"errors"

	"kstudent_backend/internal/grading"
	"kstudent_backend/internal/model"
	"kstudent_backend/internal/repository"
	"kstudent_backend/internal/util"

	"gorm.io/gorm"
)

// GradeService carries grade reads and single-record edits. Batch CSV
// work lives in GradeCSVService.
type GradeService struct {
	GradeRepo   *repository.GradeRepository
	StudentRepo *repository.StudentRepository
	SubjectRepo *repository.SubjectRepository
}

func NewGradeService(gradeRepo *repository.GradeRepository, studentRepo *repository.StudentRepository, subjectRepo *repository.SubjectRepository) *GradeService {
	return &GradeService{
		GradeRepo:   gradeRepo,
		StudentRepo: studentRepo,
		SubjectRepo: subjectRepo,
	}
}

// Transcript returns the student's grades grouped by (level, semester)
// with per-group and overall credit-weighted GPAs.
func (s *GradeService) Transcript(studentID uint) (*grading.Transcript, error) {
	if _, err := s.StudentRepo.FindByID(studentID); err != nil {
		return nil, util.ErrStudentNotFound
	}

	records, err := s.GradeRepo.ListGradesForStudent(studentID)
	if err != nil {
		return nil, err
	}

	t := grading.Aggregate(records)
	return &t, nil
}

// UpdateGrade upserts one grade record from a manual edit.
func (s *GradeService) UpdateGrade(studentID, subjectID uint, year, semester int, midterm, final float64, actorID uint) error {
	if _, err := s.StudentRepo.FindByID(studentID); err != nil {
		return util.ErrStudentNotFound
	}
	if _, err := s.SubjectRepo.FindByID(subjectID); err != nil {
		return util.ErrSubjectNotFound
	}

	return s.GradeRepo.UpsertGrade(studentID, subjectID, year, semester, midterm, final, actorID)
}

// Enroll creates a zero-score grade record for a student in a subject
// and term. Grades are filled in later by the teacher; the creation
// itself is still logged.
func (s *GradeService) Enroll(studentID, subjectID uint, year, semester int, actorID uint) error {
	if _, err := s.StudentRepo.FindByID(studentID); err != nil {
		return util.ErrStudentNotFound
	}
	if _, err := s.SubjectRepo.FindByID(subjectID); err != nil {
		return util.ErrSubjectNotFound
	}

	err := s.GradeRepo.Enroll(studentID, subjectID, year, semester, actorID)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.ErrAlreadyEnrolled
	}
	return err
}

// Unenroll drops a student's grade record for one subject and term.
func (s *GradeService) Unenroll(studentID, subjectID uint, year, semester int, actorID uint) error {
	err := s.GradeRepo.Unenroll(studentID, subjectID, year, semester, actorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrEnrollmentNotFound
	}
	return err
}

func (s *GradeService) GradeLogs(studentID uint) ([]model.GradeLog, error) {
	if _, err := s.StudentRepo.FindByID(studentID); err != nil {
		return nil, util.ErrStudentNotFound
	}
	return s.GradeRepo.ListLogsForStudent(studentID)
}
