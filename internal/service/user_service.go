package service

import (
	"errors"

	"kstudent_backend/internal/model"
	"kstudent_backend/internal/repository"
	"kstudent_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	UserRepo      *repository.UserRepository
	StudentRepo   *repository.StudentRepository
	ClassroomRepo *repository.ClassroomRepository
}

func NewUserService(userRepo *repository.UserRepository, studentRepo *repository.StudentRepository, classroomRepo *repository.ClassroomRepository) *UserService {
	return &UserService{
		UserRepo:      userRepo,
		StudentRepo:   studentRepo,
		ClassroomRepo: classroomRepo,
	}
}

type CreateUserInput struct {
	Username string         `json:"username" binding:"required"`
	Password string         `json:"password" binding:"required,min=6"`
	Role     model.UserRole `json:"role" binding:"required,oneof=student teacher staff manager executive"`
	FullName string         `json:"fullName" binding:"required"`

	// Student-only fields.
	ClassroomID uint   `json:"classroomId"`
	StudentCode string `json:"studentCode"`
}

// CreateUser registers an account; student accounts also get their
// student row (classroom assignment + student code).
func (s *UserService) CreateUser(in CreateUserInput) (*model.User, error) {
	if _, err := s.UserRepo.FindByUsername(in.Username); err == nil {
		return nil, util.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if in.Role == model.RoleStudent {
		if _, err := s.ClassroomRepo.FindByID(in.ClassroomID); err != nil {
			return nil, util.ErrClassroomNotFound
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: in.Username,
		Password: string(hashed),
		Role:     in.Role,
		FullName: in.FullName,
	}

	// One transaction for both rows: a failed student insert must not
	// leave an account without its student record behind.
	err = s.UserRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.UserRepo.CreateTx(tx, user); err != nil {
			return err
		}
		if in.Role != model.RoleStudent {
			return nil
		}
		student := &model.Student{
			UserID:        user.ID,
			ClassroomID:   in.ClassroomID,
			StudentCode:   in.StudentCode,
			BehaviorScore: 100,
		}
		return s.StudentRepo.CreateTx(tx, student)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) List(role model.UserRole, page, limit int) ([]model.User, int64, error) {
	return s.UserRepo.List(role, page, limit)
}

func (s *UserService) ResetPassword(userID uint, newPassword string) error {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return util.ErrUserNotFound
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return s.UserRepo.Update(user)
}

func (s *UserService) Delete(userID uint) error {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		return util.ErrUserNotFound
	}
	return s.UserRepo.Delete(userID)
}

// SelectHomeroom assigns a teacher their homeroom classroom.
func (s *UserService) SelectHomeroom(teacherID, classroomID uint) error {
	if _, err := s.ClassroomRepo.FindByID(classroomID); err != nil {
		return util.ErrClassroomNotFound
	}
	return s.UserRepo.SetHomeroom(teacherID, classroomID)
}
