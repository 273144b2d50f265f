package repository

import (
	"hrd_survey_backend/internal/model"

	"gorm.io/gorm"
)

type ResponseRepository struct {
	DB *gorm.DB
}

func NewResponseRepository(db *gorm.DB) *ResponseRepository {
	return &ResponseRepository{DB: db}
}

// Create 응답과 답변을 한 트랜잭션으로 저장한다.
// (survey_id, session_id) 복합 유니크 인덱스가 중복 제출을 최종적으로 막는다.
func (r *ResponseRepository) Create(response *model.Response) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(response).Error
	})
}

func (r *ResponseRepository) ExistsBySession(surveyID uint, sessionID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Response{}).
		Where("survey_id = ? AND session_id = ?", surveyID, sessionID).
		Count(&count).Error
	return count > 0, err
}

func (r *ResponseRepository) ListBySurvey(surveyID uint) ([]model.Response, error) {
	var rs []model.Response
	err := r.DB.Preload("Answers").Where("survey_id = ?", surveyID).Find(&rs).Error
	return rs, err
}

func (r *ResponseRepository) CountBySurvey(surveyID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Response{}).Where("survey_id = ?", surveyID).Count(&count).Error
	return count, err
}

func (r *ResponseRepository) ListRecent(limit int) ([]model.Response, error) {
	var rs []model.Response
	err := r.DB.Order("submitted_at desc").Limit(limit).Find(&rs).Error
	return rs, err
}
