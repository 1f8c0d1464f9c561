package model

import "time"

// BehaviorLog records one adjustment to a student's behavior score.
type BehaviorLog struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID   uint      `gorm:"not null;index" json:"studentId"`
	ScoreChange int       `gorm:"not null" json:"scoreChange"`
	Reason      string    `gorm:"size:500" json:"reason"`
	TeacherID   uint      `gorm:"not null" json:"teacherId"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (BehaviorLog) TableName() string {
	return "behavior_logs"
}
