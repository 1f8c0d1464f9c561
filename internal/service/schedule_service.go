package service

import (
	"kstudent_backend/internal/model"
	"kstudent_backend/internal/repository"
	"kstudent_backend/internal/util"
)

type ScheduleService struct {
	ScheduleRepo  *repository.ScheduleRepository
	ClassroomRepo *repository.ClassroomRepository
	SubjectRepo   *repository.SubjectRepository
}

func NewScheduleService(scheduleRepo *repository.ScheduleRepository, classroomRepo *repository.ClassroomRepository, subjectRepo *repository.SubjectRepository) *ScheduleService {
	return &ScheduleService{
		ScheduleRepo:  scheduleRepo,
		ClassroomRepo: classroomRepo,
		SubjectRepo:   subjectRepo,
	}
}

func (s *ScheduleService) Create(classroomID, subjectID uint, day, timeSlot string) (*model.Schedule, error) {
	if !model.ValidDay(day) {
		return nil, util.ErrInvalidDay
	}
	if _, err := s.ClassroomRepo.FindByID(classroomID); err != nil {
		return nil, util.ErrClassroomNotFound
	}
	if _, err := s.SubjectRepo.FindByID(subjectID); err != nil {
		return nil, util.ErrSubjectNotFound
	}

	slot := &model.Schedule{
		ClassroomID: classroomID,
		SubjectID:   subjectID,
		Day:         day,
		TimeSlot:    timeSlot,
	}
	if err := s.ScheduleRepo.Create(slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *ScheduleService) ForClassroom(classroomID uint) ([]model.Schedule, error) {
	return s.ScheduleRepo.ListByClassroom(classroomID)
}

func (s *ScheduleService) ForTeacher(teacherID uint) ([]model.Schedule, error) {
	return s.ScheduleRepo.ListByTeacher(teacherID)
}

func (s *ScheduleService) Delete(id uint) error {
	return s.ScheduleRepo.Delete(id)
}
