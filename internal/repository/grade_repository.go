package repository

import (
	"errors"
	"time"

	"kstudent_backend/internal/grading"
	"kstudent_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GradeRepository is the sole mutation point for enrollments. Every grade
// write appends a GradeLog row in the same transaction as the enrollment
// upsert; both land or neither does.
type GradeRepository struct {
	DB *gorm.DB
}

func NewGradeRepository(db *gorm.DB) *GradeRepository {
	return &GradeRepository{DB: db}
}

var enrollmentKey = []clause.Column{
	{Name: "student_id"},
	{Name: "subject_id"},
	{Name: "academic_year"},
	{Name: "semester"},
}

func (r *GradeRepository) FindEnrollment(studentID, subjectID uint, year, semester int) (*model.Enrollment, error) {
	var e model.Enrollment
	err := r.DB.Where("student_id = ? AND subject_id = ? AND academic_year = ? AND semester = ?",
		studentID, subjectID, year, semester).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *GradeRepository) ListGradesForStudent(studentID uint) ([]model.GradeView, error) {
	var views []model.GradeView
	err := r.DB.Table("enrollments e").
		Select("e.id AS enrollment_id, e.student_id, e.subject_id, s.code AS subject_code, s.name AS subject_name, s.credit, e.academic_year, e.semester, e.grade_midterm, e.grade_final, e.total_score, e.grade_char").
		Joins("JOIN subjects s ON s.id = e.subject_id AND s.deleted_at IS NULL").
		Where("e.student_id = ?", studentID).
		Order("s.code").
		Scan(&views).Error
	return views, err
}

// Transaction runs fn inside one database transaction. The CSV importer
// uses it to make a whole batch atomic.
func (r *GradeRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.DB.Transaction(fn)
}

func (r *GradeRepository) FindStudentByCodeTx(tx *gorm.DB, code string) (*model.Student, error) {
	var s model.Student
	err := tx.Where("student_code = ?", code).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UpsertGrade applies one manual grade edit in its own transaction.
func (r *GradeRepository) UpsertGrade(studentID, subjectID uint, year, semester int, midterm, final float64, actorID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		_, err := r.UpsertGradeTx(tx, studentID, subjectID, year, semester, midterm, final, actorID,
			model.GradeActionManual, model.GradeActionManual)
		return err
	})
}

// UpsertGradeTx upserts one grade record inside the caller's transaction
// and reports whether the row was newly created. Scores are clamped to
// [0,50] each, the total and letter grade recomputed, and a log row with
// the previous values (nil on insert) appended first. The enrollment
// write uses ON CONFLICT on the natural key so concurrent edits cannot
// duplicate rows.
func (r *GradeRepository) UpsertGradeTx(tx *gorm.DB, studentID, subjectID uint, year, semester int, midterm, final float64, actorID uint, insertAction, updateAction model.GradeAction) (bool, error) {
	midterm = model.ClampComponent(midterm)
	final = model.ClampComponent(final)
	total := midterm + final
	letter, _ := grading.Classify(total)

	var current model.Enrollment
	err := tx.Where("student_id = ? AND subject_id = ? AND academic_year = ? AND semester = ?",
		studentID, subjectID, year, semester).First(&current).Error
	inserted := errors.Is(err, gorm.ErrRecordNotFound)
	if err != nil && !inserted {
		return false, err
	}

	entry := model.GradeLog{
		StudentID:    studentID,
		SubjectID:    subjectID,
		AcademicYear: year,
		Semester:     semester,
		NewMidterm:   midterm,
		NewFinal:     final,
		ActorID:      actorID,
		Action:       updateAction,
	}
	if inserted {
		entry.Action = insertAction
	} else {
		oldMidterm, oldFinal := current.GradeMidterm, current.GradeFinal
		entry.OldMidterm = &oldMidterm
		entry.OldFinal = &oldFinal
	}
	if err := tx.Create(&entry).Error; err != nil {
		return false, err
	}

	row := model.Enrollment{
		StudentID:    studentID,
		SubjectID:    subjectID,
		AcademicYear: year,
		Semester:     semester,
		GradeMidterm: midterm,
		GradeFinal:   final,
		TotalScore:   total,
		GradeChar:    letter,
		RecordedBy:   actorID,
		RecordedAt:   time.Now(),
	}
	err = tx.Clauses(clause.OnConflict{
		Columns: enrollmentKey,
		DoUpdates: clause.AssignmentColumns([]string{
			"grade_midterm", "grade_final", "total_score", "grade_char",
			"recorded_by", "recorded_at", "updated_at",
		}),
	}).Create(&row).Error
	if err != nil {
		return false, err
	}
	return inserted, nil
}

// Enroll creates the student's grade record for one subject and term
// with both score components at zero. Returns gorm.ErrDuplicatedKey when
// the record already exists, so a stray enrollment can never wipe grades
// that a teacher has already entered.
func (r *GradeRepository) Enroll(studentID, subjectID uint, year, semester int, actorID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var current model.Enrollment
		err := tx.Where("student_id = ? AND subject_id = ? AND academic_year = ? AND semester = ?",
			studentID, subjectID, year, semester).First(&current).Error
		if err == nil {
			return gorm.ErrDuplicatedKey
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		_, err = r.UpsertGradeTx(tx, studentID, subjectID, year, semester, 0, 0, actorID,
			model.GradeActionEnroll, model.GradeActionEnroll)
		return err
	})
}

// Unenroll removes a grade record outright. This is a distinct operation
// from grade editing and still leaves an audit row behind.
func (r *GradeRepository) Unenroll(studentID, subjectID uint, year, semester int, actorID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var current model.Enrollment
		err := tx.Where("student_id = ? AND subject_id = ? AND academic_year = ? AND semester = ?",
			studentID, subjectID, year, semester).First(&current).Error
		if err != nil {
			return err
		}

		oldMidterm, oldFinal := current.GradeMidterm, current.GradeFinal
		entry := model.GradeLog{
			StudentID:    studentID,
			SubjectID:    subjectID,
			AcademicYear: year,
			Semester:     semester,
			OldMidterm:   &oldMidterm,
			OldFinal:     &oldFinal,
			ActorID:      actorID,
			Action:       model.GradeActionUnenroll,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Enrollment{}, current.ID).Error
	})
}

func (r *GradeRepository) ListLogsForStudent(studentID uint) ([]model.GradeLog, error) {
	var logs []model.GradeLog
	err := r.DB.Where("student_id = ?", studentID).Order("created_at desc, id desc").Find(&logs).Error
	return logs, err
}

// GradeDistribution counts enrollments per letter grade across the whole
// school, for the executive dashboard.
func (r *GradeRepository) GradeDistribution() (map[string]int64, error) {
	type row struct {
		GradeChar string
		N         int64
	}
	var rows []row
	err := r.DB.Model(&model.Enrollment{}).
		Select("grade_char, count(*) as n").
		Where("grade_char <> ''").
		Group("grade_char").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	dist := make(map[string]int64, len(rows))
	for _, rr := range rows {
		dist[rr.GradeChar] = rr.N
	}
	return dist, nil
}

// AverageGradePoints is the school-wide credit-weighted grade point
// average over every enrollment, 0 when nothing is graded yet.
func (r *GradeRepository) AverageGradePoints() (float64, error) {
	type row struct {
		GradeChar string
		Credit    float64
	}
	var rows []row
	err := r.DB.Table("enrollments e").
		Select("e.grade_char, s.credit").
		Joins("JOIN subjects s ON s.id = e.subject_id AND s.deleted_at IS NULL").
		Scan(&rows).Error
	if err != nil {
		return 0, err
	}

	var totalPoints, totalCredits float64
	for _, rr := range rows {
		totalPoints += grading.Points(rr.GradeChar) * rr.Credit
		totalCredits += rr.Credit
	}
	if totalCredits == 0 {
		return 0, nil
	}
	return totalPoints / totalCredits, nil
}

// ExportRow is one line of the classroom grade report. Score fields are
// nil when the student has no record for the subject and term, so the CSV
// writer can emit blanks rather than zeros.
type ExportRow struct {
	StudentCode string   `gorm:"column:student_code"`
	FullName    string   `gorm:"column:full_name"`
	Midterm     *float64 `gorm:"column:grade_midterm"`
	Final       *float64 `gorm:"column:grade_final"`
	Total       *float64 `gorm:"column:total_score"`
	Letter      *string  `gorm:"column:grade_char"`
}

// ExportRows lists every student currently in the classroom, left-joined
// with their grade record for the given subject and term, ordered by
// student code.
func (r *GradeRepository) ExportRows(classroomID, subjectID uint, semester, year int) ([]ExportRow, error) {
	var rows []ExportRow
	err := r.DB.Table("students st").
		Select("st.student_code, u.full_name, e.grade_midterm, e.grade_final, e.total_score, e.grade_char").
		Joins("JOIN users u ON u.id = st.user_id AND u.deleted_at IS NULL").
		Joins("LEFT JOIN enrollments e ON e.student_id = st.id AND e.subject_id = ? AND e.semester = ? AND e.academic_year = ?",
			subjectID, semester, year).
		Where("st.classroom_id = ? AND st.deleted_at IS NULL", classroomID).
		Order("st.student_code").
		Scan(&rows).Error
	return rows, err
}
