package repository

import (
	"kstudent_backend/internal/model"

	"gorm.io/gorm"
)

type ScheduleRepository struct {
	DB *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{DB: db}
}

// dayOrder sorts timetable rows Monday to Friday; the column stores the
// English day name.
const dayOrder = "CASE day " +
	"WHEN 'Monday' THEN 1 WHEN 'Tuesday' THEN 2 WHEN 'Wednesday' THEN 3 " +
	"WHEN 'Thursday' THEN 4 WHEN 'Friday' THEN 5 ELSE 6 END, time_slot"

func (r *ScheduleRepository) Create(s *model.Schedule) error {
	return r.DB.Create(s).Error
}

func (r *ScheduleRepository) ListByClassroom(classroomID uint) ([]model.Schedule, error) {
	var slots []model.Schedule
	err := r.DB.Preload("Subject").
		Where("classroom_id = ?", classroomID).
		Order(dayOrder).
		Find(&slots).Error
	return slots, err
}

// ListByTeacher returns every slot whose subject is taught by the given
// teacher, across all classrooms.
func (r *ScheduleRepository) ListByTeacher(teacherID uint) ([]model.Schedule, error) {
	var slots []model.Schedule
	err := r.DB.Preload("Subject").Preload("Classroom").
		Joins("JOIN subjects s ON s.id = schedules.subject_id AND s.deleted_at IS NULL").
		Where("s.teacher_id = ?", teacherID).
		Order(dayOrder).
		Find(&slots).Error
	return slots, err
}

func (r *ScheduleRepository) Update(s *model.Schedule) error {
	return r.DB.Save(s).Error
}

func (r *ScheduleRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Schedule{}, id).Error
}
