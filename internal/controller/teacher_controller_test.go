package controller

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kstudent_backend/internal/config"
	"kstudent_backend/internal/model"
	"kstudent_backend/internal/repository"
	"kstudent_backend/internal/service"
	"kstudent_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
}

func newExportFixture(t *testing.T) (*TeacherController, *model.Classroom, *model.Subject) {
	t.Helper()

	dsn := fmt.Sprintf("file:ctl-%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Classroom{},
		&model.Student{},
		&model.Subject{},
		&model.Enrollment{},
		&model.GradeLog{},
	))

	classroom := &model.Classroom{Name: "M.1/1"}
	require.NoError(t, db.Create(classroom).Error)
	subject := &model.Subject{Code: "ค21101", Name: "คณิตศาสตร์", Credit: 1.5}
	require.NoError(t, db.Create(subject).Error)

	csvService := service.NewGradeCSVService(
		repository.NewGradeRepository(db),
		repository.NewSubjectRepository(db),
	)
	ctl := &TeacherController{
		CSVService: csvService,
		Cfg:        &config.Config{School: config.SchoolConfig{AcademicYear: 2568, Semester: 1}},
	}
	return ctl, classroom, subject
}

func exportRequest(ctl *TeacherController, query string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/api/teacher/grades/export"+query, nil)
	ctl.ExportGrades(ctx)
	return w
}

func TestExportGradesMissingSubjectIsPlainJSON(t *testing.T) {
	ctl, classroom, _ := newExportFixture(t)

	w := exportRequest(ctl, fmt.Sprintf("?classroomId=%d", classroom.ID))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.Empty(t, w.Header().Get("Content-Disposition"))
}

func TestExportGradesSuccessIsCSVAttachment(t *testing.T) {
	ctl, classroom, subject := newExportFixture(t)

	w := exportRequest(ctl, fmt.Sprintf("?classroomId=%d&subjectId=%d", classroom.ID, subject.ID))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.True(t, strings.HasPrefix(w.Body.String(), "\xef\xbb\xbf"))
}
