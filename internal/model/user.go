package model

type UserRole string

const (
	RoleStudent   UserRole = "student"
	RoleTeacher   UserRole = "teacher"
	RoleStaff     UserRole = "staff"
	RoleManager   UserRole = "manager"
	RoleExecutive UserRole = "executive"
)

// swagger:model User
type User struct {
	BaseModel
	Username            string   `gorm:"size:100;unique;not null" json:"username"`
	Password            string   `gorm:"size:100;not null" json:"-"`
	Role                UserRole `gorm:"size:20;default:'student'" json:"role"`
	FullName            string   `gorm:"size:200;not null" json:"fullName"`
	ProfilePic          string   `gorm:"size:255;default:'default.png'" json:"profilePic"`
	HomeroomClassroomID *uint    `json:"homeroomClassroomId"`
}

func (User) TableName() string {
	return "users"
}
