package repository

import (
	"kstudent_backend/internal/model"

	"gorm.io/gorm"
)

type StudentRepository struct {
	DB *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

func (r *StudentRepository) Create(s *model.Student) error {
	return r.DB.Create(s).Error
}

func (r *StudentRepository) CreateTx(tx *gorm.DB, s *model.Student) error {
	return tx.Create(s).Error
}

func (r *StudentRepository) FindByID(id uint) (*model.Student, error) {
	var s model.Student
	err := r.DB.Preload("User").Preload("Classroom").First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StudentRepository) FindByUserID(userID uint) (*model.Student, error) {
	var s model.Student
	err := r.DB.Preload("User").Preload("Classroom").Where("user_id = ?", userID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StudentRepository) FindByCode(code string) (*model.Student, error) {
	var s model.Student
	err := r.DB.Preload("User").Where("student_code = ?", code).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns the roster, optionally filtered to one classroom and to
// students enrolled in one subject, ordered by classroom then student
// code the way the class register prints.
func (r *StudentRepository) List(classroomID, subjectID uint) ([]model.Student, error) {
	query := r.DB.Preload("User").Preload("Classroom").
		Joins("JOIN classrooms c ON c.id = students.classroom_id").
		Order("c.name, students.student_code")

	if classroomID > 0 {
		query = query.Where("students.classroom_id = ?", classroomID)
	}
	if subjectID > 0 {
		query = query.Where("students.id IN (?)",
			r.DB.Table("enrollments").Select("student_id").Where("subject_id = ?", subjectID))
	}

	var students []model.Student
	err := query.Find(&students).Error
	return students, err
}

func (r *StudentRepository) Update(s *model.Student) error {
	return r.DB.Save(s).Error
}

func (r *StudentRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Student{}, id).Error
}

// AdjustBehavior applies a clamped delta to the behavior score and logs
// the change, atomically.
func (r *StudentRepository) AdjustBehavior(studentID uint, delta int, reason string, teacherID uint) (int, error) {
	var newScore int
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var s model.Student
		if err := tx.First(&s, studentID).Error; err != nil {
			return err
		}

		newScore = model.ClampBehavior(s.BehaviorScore + delta)
		if err := tx.Model(&s).Update("behavior_score", newScore).Error; err != nil {
			return err
		}

		entry := model.BehaviorLog{
			StudentID:   studentID,
			ScoreChange: delta,
			Reason:      reason,
			TeacherID:   teacherID,
		}
		return tx.Create(&entry).Error
	})
	return newScore, err
}

func (r *StudentRepository) ListBehaviorLogs(studentID uint) ([]model.BehaviorLog, error) {
	var logs []model.BehaviorLog
	err := r.DB.Where("student_id = ?", studentID).Order("created_at desc, id desc").Find(&logs).Error
	return logs, err
}

func (r *StudentRepository) AverageBehavior() (float64, error) {
	var avg *float64
	err := r.DB.Model(&model.Student{}).Select("avg(behavior_score)").Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

func (r *StudentRepository) CountByClassroom() (map[uint]int64, error) {
	type row struct {
		ClassroomID uint
		N           int64
	}
	var rows []row
	err := r.DB.Model(&model.Student{}).
		Select("classroom_id, count(*) as n").
		Group("classroom_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for _, rr := range rows {
		counts[rr.ClassroomID] = rr.N
	}
	return counts, nil
}
