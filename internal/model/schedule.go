package model

// Schedule is one timetable slot for a classroom.
type Schedule struct {
	BaseModel
	ClassroomID uint       `gorm:"not null;index" json:"classroomId"`
	Classroom   *Classroom `gorm:"foreignKey:ClassroomID" json:"classroom,omitempty"`
	SubjectID   uint       `gorm:"not null;index" json:"subjectId"`
	Subject     *Subject   `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	Day         string     `gorm:"size:10;not null" json:"day"`
	TimeSlot    string     `gorm:"size:20;not null" json:"timeSlot"`
}

func (Schedule) TableName() string {
	return "schedules"
}

// ValidDay reports whether day is a school day label accepted by the
// timetable.
func ValidDay(day string) bool {
	switch day {
	case "Monday", "Tuesday", "Wednesday", "Thursday", "Friday":
		return true
	}
	return false
}
