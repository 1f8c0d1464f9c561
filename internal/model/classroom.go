package model

// Classroom is one homeroom unit, e.g. "M.1/1".
type Classroom struct {
	BaseModel
	Name string `gorm:"size:50;unique;not null" json:"name"`
}

func (Classroom) TableName() string {
	return "classrooms"
}
