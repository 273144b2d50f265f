package model

import (
	"encoding/json"
	"time"
)

type SurveyStatus string

const (
	SurveyDraft  SurveyStatus = "draft"
	SurveyActive SurveyStatus = "active"
	SurveyClosed SurveyStatus = "closed"
)

// 응답 척도 크기. 신규 설문은 이 중 하나만 허용한다.
var ValidScaleTypes = map[int]bool{5: true, 7: true, 9: true, 10: true}

// swagger:model Survey
type Survey struct {
	BaseModel
	CourseID    uint         `gorm:"index;type:bigint unsigned;not null" json:"courseId"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Status      SurveyStatus `gorm:"size:20;default:'draft'" json:"status"`
	Code        string       `gorm:"size:12;uniqueIndex;not null" json:"code"`
	ScaleType   int          `gorm:"default:5" json:"scaleType"`
	IsAnonymous bool         `gorm:"default:true" json:"isAnonymous"`
	StartDate   *time.Time   `json:"startDate,omitempty"`
	EndDate     *time.Time   `json:"endDate,omitempty"`
	CreatorID   uint         `gorm:"index;type:bigint unsigned" json:"creatorId"`

	// AI 분석 결과 캐시. 분석 성공 시에만 채워진다.
	AISummary         string          `gorm:"type:text" json:"aiSummary,omitempty"`
	AIInsights        json.RawMessage `gorm:"type:json" json:"aiInsights,omitempty"`
	AIRecommendations json.RawMessage `gorm:"type:json" json:"aiRecommendations,omitempty"`
	AnalyzedAt        *time.Time      `json:"analyzedAt,omitempty"`
}

func (Survey) TableName() string {
	return "surveys"
}
