package model

// Subject is a course offering. The code follows the Thai basic education
// convention: characters 2-3 encode the grade level ("21".."33") and the
// final digit's parity encodes the semester (odd = 1, even = 2).
type Subject struct {
	BaseModel
	Code      string  `gorm:"size:20;unique;not null" json:"code"`
	Name      string  `gorm:"size:200;not null" json:"name"`
	Credit    float64 `gorm:"not null" json:"credit"`
	TeacherID *uint   `gorm:"index" json:"teacherId"`
	Teacher   *User   `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
}

func (Subject) TableName() string {
	return "subjects"
}
