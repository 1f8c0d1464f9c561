package model

// Announcement is a school-wide notice published by an executive.
type Announcement struct {
	BaseModel
	Title    string `gorm:"size:200;not null" json:"title"`
	Body     string `gorm:"size:5000" json:"body"`
	AuthorID uint   `gorm:"not null;index" json:"authorId"`
	Author   *User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (Announcement) TableName() string {
	return "announcements"
}
