package service

import (
	"testing"

	"kstudent_backend/internal/model"
	"kstudent_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerOverview(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.AutoMigrate(&model.Request{}))

	svc := NewDashboardService(
		repository.NewUserRepository(db),
		repository.NewStudentRepository(db),
		repository.NewClassroomRepository(db),
		repository.NewGradeRepository(db),
		repository.NewRequestRepository(db),
		nil,
	)
	gradeRepo := repository.NewGradeRepository(db)

	users := []*model.User{
		{Username: "s1", Password: "x", Role: model.RoleStudent, FullName: "Student One"},
		{Username: "s2", Password: "x", Role: model.RoleStudent, FullName: "Student Two"},
		{Username: "t1", Password: "x", Role: model.RoleTeacher, FullName: "Teacher One"},
		{Username: "m1", Password: "x", Role: model.RoleManager, FullName: "Manager One"},
	}
	for _, u := range users {
		require.NoError(t, db.Create(u).Error)
	}

	for _, name := range []string{"M.1/1", "M.1/2"} {
		require.NoError(t, db.Create(&model.Classroom{Name: name}).Error)
	}

	for i, status := range []model.RequestStatus{model.RequestPending, model.RequestPending, model.RequestApproved} {
		require.NoError(t, db.Create(&model.Request{
			Reference: model.GenerateUUID(),
			UserID:    users[i].ID,
			Topic:     "leave",
			Status:    status,
		}).Error)
	}

	classroom := &model.Classroom{Name: "M.6/1"}
	require.NoError(t, db.Create(classroom).Error)
	student := &model.Student{UserID: users[0].ID, ClassroomID: classroom.ID, StudentCode: "10001"}
	require.NoError(t, db.Create(student).Error)
	math := &model.Subject{Code: "ค21101", Name: "Math", Credit: 1.5}
	require.NoError(t, db.Create(math).Error)
	sci := &model.Subject{Code: "ว21101", Name: "Science", Credit: 0.5}
	require.NoError(t, db.Create(sci).Error)

	// A (4.0) at credit 1.5 and C (2.0) at credit 0.5:
	// (4.0*1.5 + 2.0*0.5) / 2.0 = 3.50
	require.NoError(t, gradeRepo.UpsertGrade(student.ID, math.ID, 2568, 1, 40, 45, 1))
	require.NoError(t, gradeRepo.UpsertGrade(student.ID, sci.ID, 2568, 1, 30, 32, 1))

	overview, err := svc.ManagerOverview()
	require.NoError(t, err)

	assert.Equal(t, int64(2), overview.StudentCount)
	assert.Equal(t, int64(1), overview.TeacherCount)
	assert.Equal(t, int64(3), overview.ClassroomCount)
	assert.Equal(t, int64(2), overview.RequestCounts[model.RequestPending])
	assert.Equal(t, int64(1), overview.RequestCounts[model.RequestApproved])
	assert.Equal(t, int64(3), overview.RequestTotal)
	assert.Equal(t, "3.50", overview.AverageGPA)
}

func TestManagerOverviewEmptySchool(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.AutoMigrate(&model.Request{}))

	svc := NewDashboardService(
		repository.NewUserRepository(db),
		repository.NewStudentRepository(db),
		repository.NewClassroomRepository(db),
		repository.NewGradeRepository(db),
		repository.NewRequestRepository(db),
		nil,
	)

	overview, err := svc.ManagerOverview()
	require.NoError(t, err)
	assert.Zero(t, overview.StudentCount)
	assert.Zero(t, overview.RequestTotal)
	assert.Equal(t, "0.00", overview.AverageGPA)
}
