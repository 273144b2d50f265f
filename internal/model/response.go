package model

import "time"

// swagger:model Response
type Response struct {
	BaseModel
	SurveyID       uint      `gorm:"uniqueIndex:idx_survey_session;type:bigint unsigned;not null" json:"surveyId"`
	SessionID      string    `gorm:"uniqueIndex:idx_survey_session;size:64;not null" json:"sessionId"`
	RespondentName string    `gorm:"size:100" json:"respondentName,omitempty"`
	SubmittedAt    time.Time `json:"submittedAt"`
	Answers        []Answer  `gorm:"foreignKey:ResponseID" json:"answers"`
}

func (Response) TableName() string {
	return "responses"
}

// Answer 한 응답 안에서 한 문항에 대한 값. 점수/텍스트 중 하나만 채워진다.
// swagger:model Answer
type Answer struct {
	BaseModel
	ResponseID uint   `gorm:"index;type:bigint unsigned;not null" json:"responseId"`
	QuestionID uint   `gorm:"index;type:bigint unsigned;not null" json:"questionId"`
	Score      *int   `json:"score,omitempty"`
	Text       string `gorm:"type:text" json:"text,omitempty"`
}

func (Answer) TableName() string {
	return "answers"
}
