package model

// swagger:model Student
type Student struct {
	BaseModel
	UserID        uint       `gorm:"not null;index" json:"userId"`
	User          *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ClassroomID   uint       `gorm:"not null;index" json:"classroomId"`
	Classroom     *Classroom `gorm:"foreignKey:ClassroomID" json:"classroom,omitempty"`
	StudentCode   string     `gorm:"size:20;unique;not null" json:"studentCode"`
	BehaviorScore int        `gorm:"default:100" json:"behaviorScore"`
}

func (Student) TableName() string {
	return "students"
}

// ClampBehavior bounds a behavior score to the valid [0,100] range.
func ClampBehavior(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
