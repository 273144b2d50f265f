package repository

import (
	"hrd_survey_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) ListBySurvey(surveyID uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("survey_id = ?", surveyID).Order("`order` asc, id asc").Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) CountBySurvey(surveyID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("survey_id = ?", surveyID).Count(&count).Error
	return count, err
}

// ReplaceAll 설문의 문항 전체를 교체한다. AI 생성 결과 저장과 수동 편집 저장이
// 모두 이 경로를 타며, 기존 문항을 지우고 새 문항을 같은 트랜잭션으로 넣는다.
func (r *QuestionRepository) ReplaceAll(surveyID uint, questions []model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("survey_id = ?", surveyID).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].ID = 0
			questions[i].SurveyID = surveyID
		}
		if len(questions) == 0 {
			return nil
		}
		return tx.Create(&questions).Error
	})
}
