package model

import "time"

type GradeAction string

const (
	GradeActionEnroll    GradeAction = "enroll"
	GradeActionManual    GradeAction = "manual"
	GradeActionCSVInsert GradeAction = "csv_insert"
	GradeActionCSVUpdate GradeAction = "csv_update"
	GradeActionUnenroll  GradeAction = "unenroll"
)

// GradeLog is the append-only audit trail of grade mutations. Old values
// are nil when the mutation created the enrollment. Rows are never
// updated or deleted.
type GradeLog struct {
	ID           uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID    uint        `gorm:"not null;index" json:"studentId"`
	SubjectID    uint        `gorm:"not null;index" json:"subjectId"`
	AcademicYear int         `gorm:"not null" json:"academicYear"`
	Semester     int         `gorm:"not null" json:"semester"`
	OldMidterm   *float64    `json:"oldMidterm"`
	OldFinal     *float64    `json:"oldFinal"`
	NewMidterm   float64     `json:"newMidterm"`
	NewFinal     float64     `json:"newFinal"`
	Action       GradeAction `gorm:"size:20;not null" json:"action"`
	ActorID      uint        `gorm:"not null" json:"actorId"`
	CreatedAt    time.Time   `json:"createdAt"`
}

func (GradeLog) TableName() string {
	return "grade_logs"
}
