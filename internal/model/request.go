package model

type RequestStatus string

const (
	RequestPending  RequestStatus = "Pending"
	RequestApproved RequestStatus = "Approved"
	RequestRejected RequestStatus = "Rejected"
)

// Request is a leave/petition request filed by any user and resolved by
// staff or executives.
type Request struct {
	BaseModel
	Reference   string        `gorm:"size:36;unique;not null" json:"reference"`
	UserID      uint          `gorm:"not null;index" json:"userId"`
	User        *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Topic       string        `gorm:"size:200;not null" json:"topic"`
	Description string        `gorm:"size:2000" json:"description"`
	Attachment  string        `gorm:"size:255" json:"attachment"`
	Status      RequestStatus `gorm:"size:20;default:'Pending'" json:"status"`
	Reply       string        `gorm:"size:2000" json:"reply"`
	ResolvedBy  *uint         `json:"resolvedBy"`
}

func (Request) TableName() string {
	return "requests"
}
