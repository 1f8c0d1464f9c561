package model

// GradeView is one enrollment joined with its subject, as read by the
// transcript and export queries.
type GradeView struct {
	EnrollmentID uint    `gorm:"column:enrollment_id" json:"enrollmentId"`
	StudentID    uint    `gorm:"column:student_id" json:"studentId"`
	SubjectID    uint    `gorm:"column:subject_id" json:"subjectId"`
	SubjectCode  string  `gorm:"column:subject_code" json:"subjectCode"`
	SubjectName  string  `gorm:"column:subject_name" json:"subjectName"`
	Credit       float64 `gorm:"column:credit" json:"credit"`
	AcademicYear int     `gorm:"column:academic_year" json:"academicYear"`
	Semester     int     `gorm:"column:semester" json:"semester"`
	GradeMidterm float64 `gorm:"column:grade_midterm" json:"gradeMidterm"`
	GradeFinal   float64 `gorm:"column:grade_final" json:"gradeFinal"`
	TotalScore   float64 `gorm:"column:total_score" json:"totalScore"`
	GradeChar    string  `gorm:"column:grade_char" json:"gradeChar"`
}
