package service

import (
	"testing"

	"kstudent_backend/internal/model"
	"kstudent_backend/internal/repository"
	"kstudent_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type userFixture struct {
	db        *gorm.DB
	svc       *UserService
	classroom *model.Classroom
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()

	db := newTestDB(t)
	f := &userFixture{db: db}
	f.svc = NewUserService(
		repository.NewUserRepository(db),
		repository.NewStudentRepository(db),
		repository.NewClassroomRepository(db),
	)

	f.classroom = &model.Classroom{Name: "M.1/1"}
	require.NoError(t, db.Create(f.classroom).Error)
	return f
}

func TestCreateUserStudent(t *testing.T) {
	f := newUserFixture(t)

	user, err := f.svc.CreateUser(CreateUserInput{
		Username:    "somchai",
		Password:    "secret1",
		Role:        model.RoleStudent,
		FullName:    "Somchai J.",
		ClassroomID: f.classroom.ID,
		StudentCode: "10001",
	})
	require.NoError(t, err)

	var student model.Student
	require.NoError(t, f.db.Where("user_id = ?", user.ID).First(&student).Error)
	assert.Equal(t, "10001", student.StudentCode)
	assert.Equal(t, f.classroom.ID, student.ClassroomID)
	assert.Equal(t, 100, student.BehaviorScore)
}

func TestCreateUserStudentFailureLeavesNoAccount(t *testing.T) {
	f := newUserFixture(t)

	_, err := f.svc.CreateUser(CreateUserInput{
		Username:    "somchai",
		Password:    "secret1",
		Role:        model.RoleStudent,
		FullName:    "Somchai J.",
		ClassroomID: f.classroom.ID,
		StudentCode: "10001",
	})
	require.NoError(t, err)

	// Same student code under a fresh username: the student insert hits
	// the unique index, and the account row must roll back with it.
	_, err = f.svc.CreateUser(CreateUserInput{
		Username:    "somsri",
		Password:    "secret1",
		Role:        model.RoleStudent,
		FullName:    "Somsri K.",
		ClassroomID: f.classroom.ID,
		StudentCode: "10001",
	})
	require.Error(t, err)

	var orphans int64
	require.NoError(t, f.db.Model(&model.User{}).Where("username = ?", "somsri").Count(&orphans).Error)
	assert.Zero(t, orphans)
}

func TestCreateUserValidation(t *testing.T) {
	f := newUserFixture(t)

	_, err := f.svc.CreateUser(CreateUserInput{
		Username: "teach1",
		Password: "secret1",
		Role:     model.RoleTeacher,
		FullName: "Teacher One",
	})
	require.NoError(t, err)

	_, err = f.svc.CreateUser(CreateUserInput{
		Username: "teach1",
		Password: "secret1",
		Role:     model.RoleTeacher,
		FullName: "Teacher Two",
	})
	assert.ErrorIs(t, err, util.ErrUsernameTaken)

	_, err = f.svc.CreateUser(CreateUserInput{
		Username:    "stud1",
		Password:    "secret1",
		Role:        model.RoleStudent,
		FullName:    "Student One",
		ClassroomID: 999,
		StudentCode: "20001",
	})
	assert.ErrorIs(t, err, util.ErrClassroomNotFound)
}
