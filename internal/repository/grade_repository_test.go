package repository

import (
	"fmt"
	"testing"

	"kstudent_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
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
		&model.BehaviorLog{},
	))
	return db
}

func seedStudent(t *testing.T, db *gorm.DB, code string) *model.Student {
	t.Helper()

	user := &model.User{Username: "u-" + code, Password: "x", Role: model.RoleStudent, FullName: "Student " + code}
	require.NoError(t, db.Create(user).Error)

	classroom := &model.Classroom{Name: "M.1/" + code}
	require.NoError(t, db.Create(classroom).Error)

	student := &model.Student{UserID: user.ID, ClassroomID: classroom.ID, StudentCode: code, BehaviorScore: 100}
	require.NoError(t, db.Create(student).Error)
	return student
}

func seedSubject(t *testing.T, db *gorm.DB, code string, credit float64) *model.Subject {
	t.Helper()

	subject := &model.Subject{Code: code, Name: "Subject " + code, Credit: credit}
	require.NoError(t, db.Create(subject).Error)
	return subject
}

func TestUpsertGradeInsertThenUpdate(t *testing.T) {
	db := newTestDB(t)
	repo := NewGradeRepository(db)

	student := seedStudent(t, db, "10001")
	subject := seedSubject(t, db, "ค21101", 1.5)

	require.NoError(t, repo.UpsertGrade(student.ID, subject.ID, 2568, 1, 40, 45, 7))

	e, err := repo.FindEnrollment(student.ID, subject.ID, 2568, 1)
	require.NoError(t, err)
	assert.Equal(t, 40.0, e.GradeMidterm)
	assert.Equal(t, 45.0, e.GradeFinal)
	assert.Equal(t, 85.0, e.TotalScore)
	assert.Equal(t, "A", e.GradeChar)
	assert.Equal(t, uint(7), e.RecordedBy)

	// Second write on the same key updates in place.
	require.NoError(t, repo.UpsertGrade(student.ID, subject.ID, 2568, 1, 20, 25, 8))

	var count int64
	require.NoError(t, db.Model(&model.Enrollment{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	e, err = repo.FindEnrollment(student.ID, subject.ID, 2568, 1)
	require.NoError(t, err)
	assert.Equal(t, 45.0, e.TotalScore)
	assert.Equal(t, "F", e.GradeChar)
	assert.Equal(t, uint(8), e.RecordedBy)

	logs, err := repo.ListLogsForStudent(student.ID)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	// Newest first: the update carries the previous values, the insert
	// carries none.
	update, insert := logs[0], logs[1]
	require.NotNil(t, update.OldMidterm)
	assert.Equal(t, 40.0, *update.OldMidterm)
	require.NotNil(t, update.OldFinal)
	assert.Equal(t, 45.0, *update.OldFinal)
	assert.Equal(t, model.GradeActionManual, update.Action)

	assert.Nil(t, insert.OldMidterm)
	assert.Nil(t, insert.OldFinal)
	assert.Equal(t, 40.0, insert.NewMidterm)
	assert.Equal(t, 45.0, insert.NewFinal)
}

func TestUpsertGradeClampsComponents(t *testing.T) {
	db := newTestDB(t)
	repo := NewGradeRepository(db)

	student := seedStudent(t, db, "10002")
	subject := seedSubject(t, db, "ว21101", 1.0)

	require.NoError(t, repo.UpsertGrade(student.ID, subject.ID, 2568, 1, 60, -5, 1))

	e, err := repo.FindEnrollment(student.ID, subject.ID, 2568, 1)
	require.NoError(t, err)
	assert.Equal(t, 50.0, e.GradeMidterm)
	assert.Equal(t, 0.0, e.GradeFinal)
	assert.Equal(t, 50.0, e.TotalScore)
	assert.Equal(t, "D", e.GradeChar)

	// Upper bound of both components together.
	require.NoError(t, repo.UpsertGrade(student.ID, subject.ID, 2568, 1, 45, 50, 1))
	e, err = repo.FindEnrollment(student.ID, subject.ID, 2568, 1)
	require.NoError(t, err)
	assert.Equal(t, 95.0, e.TotalScore)
	assert.Equal(t, "A", e.GradeChar)
}

func TestUpsertGradeSeparateTerms(t *testing.T) {
	db := newTestDB(t)
	repo := NewGradeRepository(db)

	student := seedStudent(t, db, "10003")
	subject := seedSubject(t, db, "อ21102", 1.0)

	require.NoError(t, repo.UpsertGrade(student.ID, subject.ID, 2568, 1, 30, 30, 1))
	require.NoError(t, repo.UpsertGrade(student.ID, subject.ID, 2568, 2, 40, 40, 1))
	require.NoError(t, repo.UpsertGrade(student.ID, subject.ID, 2569, 1, 20, 20, 1))

	var count int64
	require.NoError(t, db.Model(&model.Enrollment{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestEnrollCreatesZeroScoreRecord(t *testing.T) {
	db := newTestDB(t)
	repo := NewGradeRepository(db)

	student := seedStudent(t, db, "10001")
	subject := seedSubject(t, db, "ค21101", 1.5)

	require.NoError(t, repo.Enroll(student.ID, subject.ID, 2568, 1, 7))

	e, err := repo.FindEnrollment(student.ID, subject.ID, 2568, 1)
	require.NoError(t, err)
	assert.Zero(t, e.GradeMidterm)
	assert.Zero(t, e.GradeFinal)
	assert.Zero(t, e.TotalScore)
	assert.Equal(t, uint(7), e.RecordedBy)

	logs, err := repo.ListLogsForStudent(student.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, model.GradeActionEnroll, logs[0].Action)
	assert.Nil(t, logs[0].OldMidterm)
	assert.Nil(t, logs[0].OldFinal)
}

func TestEnrollNeverOverwritesGrades(t *testing.T) {
	db := newTestDB(t)
	repo := NewGradeRepository(db)

	student := seedStudent(t, db, "10001")
	subject := seedSubject(t, db, "ค21101", 1.5)

	require.NoError(t, repo.UpsertGrade(student.ID, subject.ID, 2568, 1, 40, 45, 7))

	err := repo.Enroll(student.ID, subject.ID, 2568, 1, 8)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	e, err := repo.FindEnrollment(student.ID, subject.ID, 2568, 1)
	require.NoError(t, err)
	assert.Equal(t, 85.0, e.TotalScore)

	// The rejected enrollment must not leave a log row behind.
	logs, err := repo.ListLogsForStudent(student.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, model.GradeActionManual, logs[0].Action)
}

func TestUnenroll(t *testing.T) {
	db := newTestDB(t)
	repo := NewGradeRepository(db)

	student := seedStudent(t, db, "10004")
	subject := seedSubject(t, db, "ท21101", 1.0)

	require.NoError(t, repo.UpsertGrade(student.ID, subject.ID, 2568, 1, 35, 40, 1))
	require.NoError(t, repo.Unenroll(student.ID, subject.ID, 2568, 1, 9))

	_, err := repo.FindEnrollment(student.ID, subject.ID, 2568, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	logs, err := repo.ListLogsForStudent(student.ID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, model.GradeActionUnenroll, logs[0].Action)
	require.NotNil(t, logs[0].OldMidterm)
	assert.Equal(t, 35.0, *logs[0].OldMidterm)

	// The key is free again after unenrollment.
	require.NoError(t, repo.UpsertGrade(student.ID, subject.ID, 2568, 1, 10, 10, 1))
}

func TestUnenrollMissingRecord(t *testing.T) {
	db := newTestDB(t)
	repo := NewGradeRepository(db)

	err := repo.Unenroll(99, 99, 2568, 1, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTransactionRollsBackEveryWrite(t *testing.T) {
	db := newTestDB(t)
	repo := NewGradeRepository(db)

	student := seedStudent(t, db, "10005")
	subject := seedSubject(t, db, "ส21101", 1.0)

	boom := fmt.Errorf("batch failed")
	err := repo.Transaction(func(tx *gorm.DB) error {
		_, err := repo.UpsertGradeTx(tx, student.ID, subject.ID, 2568, 1, 25, 25, 1,
			model.GradeActionCSVInsert, model.GradeActionCSVUpdate)
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var enrollments, logs int64
	require.NoError(t, db.Model(&model.Enrollment{}).Count(&enrollments).Error)
	require.NoError(t, db.Model(&model.GradeLog{}).Count(&logs).Error)
	assert.Zero(t, enrollments)
	assert.Zero(t, logs)
}

func TestListGradesForStudent(t *testing.T) {
	db := newTestDB(t)
	repo := NewGradeRepository(db)

	student := seedStudent(t, db, "10006")
	math := seedSubject(t, db, "ค21101", 1.5)
	science := seedSubject(t, db, "ว21102", 1.0)

	require.NoError(t, repo.UpsertGrade(student.ID, math.ID, 2568, 1, 40, 42, 1))
	require.NoError(t, repo.UpsertGrade(student.ID, science.ID, 2568, 2, 30, 31, 1))

	views, err := repo.ListGradesForStudent(student.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, "ค21101", views[0].SubjectCode)
	assert.Equal(t, 1.5, views[0].Credit)
	assert.Equal(t, 82.0, views[0].TotalScore)
	assert.Equal(t, "A", views[0].GradeChar)
	assert.Equal(t, "ว21102", views[1].SubjectCode)
	assert.Equal(t, 61.0, views[1].TotalScore)
	assert.Equal(t, "C", views[1].GradeChar)
}

func TestGradeDistribution(t *testing.T) {
	db := newTestDB(t)
	repo := NewGradeRepository(db)

	a := seedStudent(t, db, "10007")
	b := seedStudent(t, db, "10008")
	subject := seedSubject(t, db, "ศ21101", 0.5)

	require.NoError(t, repo.UpsertGrade(a.ID, subject.ID, 2568, 1, 45, 45, 1)) // A
	require.NoError(t, repo.UpsertGrade(b.ID, subject.ID, 2568, 1, 10, 10, 1)) // F

	dist, err := repo.GradeDistribution()
	require.NoError(t, err)
	assert.Equal(t, int64(1), dist["A"])
	assert.Equal(t, int64(1), dist["F"])
}

func TestExportRows(t *testing.T) {
	db := newTestDB(t)
	repo := NewGradeRepository(db)

	classroom := &model.Classroom{Name: "M.2/1"}
	require.NoError(t, db.Create(classroom).Error)

	var students []*model.Student
	for i, code := range []string{"20001", "20002"} {
		user := &model.User{Username: code, Password: "x", Role: model.RoleStudent, FullName: fmt.Sprintf("Student %d", i+1)}
		require.NoError(t, db.Create(user).Error)
		s := &model.Student{UserID: user.ID, ClassroomID: classroom.ID, StudentCode: code}
		require.NoError(t, db.Create(s).Error)
		students = append(students, s)
	}

	subject := seedSubject(t, db, "ค22101", 1.5)
	require.NoError(t, repo.UpsertGrade(students[0].ID, subject.ID, 2568, 1, 40, 45, 1))

	rows, err := repo.ExportRows(classroom.ID, subject.ID, 1, 2568)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// First student has a record, second gets nil scores for blank cells.
	assert.Equal(t, "20001", rows[0].StudentCode)
	require.NotNil(t, rows[0].Total)
	assert.Equal(t, 85.0, *rows[0].Total)
	require.NotNil(t, rows[0].Letter)
	assert.Equal(t, "A", *rows[0].Letter)

	assert.Equal(t, "20002", rows[1].StudentCode)
	assert.Nil(t, rows[1].Midterm)
	assert.Nil(t, rows[1].Final)
	assert.Nil(t, rows[1].Total)
	assert.Nil(t, rows[1].Letter)
}
