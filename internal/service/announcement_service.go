package service

import (
	"errors"

	"kstudent_backend/internal/model"
	"kstudent_backend/internal/repository"
	"kstudent_backend/internal/util"

	"gorm.io/gorm"
)

type AnnouncementService struct {
	AnnouncementRepo *repository.AnnouncementRepository
}

func NewAnnouncementService(announcementRepo *repository.AnnouncementRepository) *AnnouncementService {
	return &AnnouncementService{AnnouncementRepo: announcementRepo}
}

func (s *AnnouncementService) Create(title, body string, authorID uint) (*model.Announcement, error) {
	a := &model.Announcement{
		Title:    title,
		Body:     body,
		AuthorID: authorID,
	}
	if err := s.AnnouncementRepo.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AnnouncementService) List(page, limit int) ([]model.Announcement, int64, error) {
	return s.AnnouncementRepo.List(page, limit)
}

func (s *AnnouncementService) Update(id uint, title, body string) (*model.Announcement, error) {
	a, err := s.AnnouncementRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAnnouncementNotFound
	}
	if err != nil {
		return nil, err
	}

	a.Title = title
	a.Body = body
	if err := s.AnnouncementRepo.Update(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AnnouncementService) Delete(id uint) error {
	return s.AnnouncementRepo.Delete(id)
}
