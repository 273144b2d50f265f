package model

type QuestionType string

const (
	QuestionChoice QuestionType = "choice"
	QuestionText   QuestionType = "text"
)

type QuestionCategory string

const (
	CategoryOverall    QuestionCategory = "overall"
	CategoryContent    QuestionCategory = "content"
	CategoryInstructor QuestionCategory = "instructor"
	CategoryFacility   QuestionCategory = "facility"
	CategoryOther      QuestionCategory = "other"
)

// CategoryOrder 통계/리포트에서 카테고리를 표시하는 고정 순서
var CategoryOrder = []QuestionCategory{
	CategoryOverall, CategoryContent, CategoryInstructor, CategoryFacility, CategoryOther,
}

func ValidQuestionType(t QuestionType) bool {
	return t == QuestionChoice || t == QuestionText
}

func ValidQuestionCategory(c QuestionCategory) bool {
	switch c {
	case CategoryOverall, CategoryContent, CategoryInstructor, CategoryFacility, CategoryOther:
		return true
	}
	return false
}

// swagger:model Question
type Question struct {
	BaseModel
	SurveyID   uint             `gorm:"index;type:bigint unsigned;not null" json:"surveyId"`
	Type       QuestionType     `gorm:"size:20;not null" json:"type"`
	Category   QuestionCategory `gorm:"size:20;default:'other'" json:"category"`
	Content    string           `gorm:"type:text;not null" json:"content"`
	Order      int              `gorm:"default:0" json:"order"`
	IsRequired bool             `gorm:"default:true" json:"isRequired"`
}

func (Question) TableName() string {
	return "questions"
}
