package service

import (
	"errors"

	"kstudent_backend/internal/model"
	"kstudent_backend/internal/repository"
	"kstudent_backend/internal/util"

	"gorm.io/gorm"
)

type RequestService struct {
	RequestRepo *repository.RequestRepository
}

func NewRequestService(requestRepo *repository.RequestRepository) *RequestService {
	return &RequestService{RequestRepo: requestRepo}
}

func (s *RequestService) Create(userID uint, topic, description, attachment string) (*model.Request, error) {
	req := &model.Request{
		Reference:   model.GenerateUUID(),
		UserID:      userID,
		Topic:       topic,
		Description: description,
		Attachment:  attachment,
		Status:      model.RequestPending,
	}
	if err := s.RequestRepo.Create(req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *RequestService) ListMine(userID uint) ([]model.Request, error) {
	return s.RequestRepo.ListByUser(userID)
}

func (s *RequestService) List(status model.RequestStatus, page, limit int) ([]model.Request, int64, error) {
	return s.RequestRepo.List(status, page, limit)
}

// Resolve approves or rejects a pending request. Resolved requests are
// final; a follow-up must be filed as a new request.
func (s *RequestService) Resolve(id uint, status model.RequestStatus, reply string, resolverID uint) error {
	if status != model.RequestApproved && status != model.RequestRejected {
		return util.ErrInvalidStatus
	}

	req, err := s.RequestRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrRequestNotFound
	}
	if err != nil {
		return err
	}
	if req.Status != model.RequestPending {
		return util.ErrRequestResolved
	}

	return s.RequestRepo.Resolve(id, status, reply, resolverID)
}
