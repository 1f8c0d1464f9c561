package model

import "time"

// Enrollment is one student's grade record for one subject in one
// academic year and semester. The four columns form the natural key;
// grade edits upsert against it and never create duplicates. Unenrollment
// deletes the row outright — no soft delete, or the unique index would
// block re-enrollment.
type Enrollment struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	StudentID    uint      `gorm:"not null;uniqueIndex:idx_enrollment_key" json:"studentId"`
	Student      *Student  `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	SubjectID    uint      `gorm:"not null;uniqueIndex:idx_enrollment_key" json:"subjectId"`
	Subject      *Subject  `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	AcademicYear int       `gorm:"not null;uniqueIndex:idx_enrollment_key" json:"academicYear"`
	Semester     int       `gorm:"not null;uniqueIndex:idx_enrollment_key" json:"semester"`

	GradeMidterm float64   `gorm:"default:0" json:"gradeMidterm"`
	GradeFinal   float64   `gorm:"default:0" json:"gradeFinal"`
	TotalScore   float64   `gorm:"default:0" json:"totalScore"`
	GradeChar    string    `gorm:"size:2" json:"gradeChar"`
	RecordedBy   uint      `json:"recordedBy"`
	RecordedAt   time.Time `json:"recordedAt"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// ClampComponent bounds a midterm or final score to its [0,50] range.
func ClampComponent(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 50 {
		return 50
	}
	return score
}
