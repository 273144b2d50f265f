package model

import "time"

// swagger:model Course
type Course struct {
	BaseModel
	Title              string     `gorm:"size:255;not null" json:"title"`
	Objectives         string     `gorm:"type:text" json:"objectives"`
	Content            string     `gorm:"type:text" json:"content"`
	Instructor         string     `gorm:"size:100" json:"instructor"`
	StartDate          *time.Time `json:"startDate,omitempty"`
	EndDate            *time.Time `json:"endDate,omitempty"`
	TargetParticipants int        `gorm:"default:0" json:"targetParticipants"`
	CreatorID          uint       `gorm:"index;type:bigint unsigned" json:"creatorId"`
}

func (Course) TableName() string {
	return "courses"
}
