package repository

import (
	"encoding/json"
	"time"

	"hrd_survey_backend/internal/model"

	"gorm.io/gorm"
)

type SurveyRepository struct {
	DB *gorm.DB
}

func NewSurveyRepository(db *gorm.DB) *SurveyRepository {
	return &SurveyRepository{DB: db}
}

func (r *SurveyRepository) Create(survey *model.Survey) error {
	return r.DB.Create(survey).Error
}

func (r *SurveyRepository) FindByID(id uint) (*model.Survey, error) {
	var s model.Survey
	err := r.DB.First(&s, id).Error
	return &s, err
}

func (r *SurveyRepository) FindByCode(code string) (*model.Survey, error) {
	var s model.Survey
	err := r.DB.Where("code = ?", code).First(&s).Error
	return &s, err
}

func (r *SurveyRepository) ExistsByCode(code string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Survey{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *SurveyRepository) List(page, limit int, courseID uint, status model.SurveyStatus) ([]model.Survey, int64, error) {
	var ss []model.Survey
	var total int64
	query := r.DB.Model(&model.Survey{})
	if courseID > 0 {
		query = query.Where("course_id = ?", courseID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&ss).Error
	return ss, total, err
}

func (r *SurveyRepository) ListByCourse(courseID uint) ([]model.Survey, error) {
	var ss []model.Survey
	err := r.DB.Where("course_id = ?", courseID).Find(&ss).Error
	return ss, err
}

func (r *SurveyRepository) Update(survey *model.Survey) error {
	return r.DB.Save(survey).Error
}

func (r *SurveyRepository) UpdateStatus(id uint, status model.SurveyStatus) error {
	return r.DB.Model(&model.Survey{}).Where("id = ?", id).Update("status", status).Error
}

// UpdateAnalysis AI 분석 결과를 설문 레코드에 캐시한다.
// 동시에 두 번 분석하면 나중에 쓴 쪽이 남는다.
func (r *SurveyRepository) UpdateAnalysis(id uint, summary string, insights, recommendations []string, analyzedAt time.Time) error {
	insightsJSON, err := json.Marshal(insights)
	if err != nil {
		return err
	}
	recommendationsJSON, err := json.Marshal(recommendations)
	if err != nil {
		return err
	}
	return r.DB.Model(&model.Survey{}).Where("id = ?", id).Updates(map[string]interface{}{
		"ai_summary":         summary,
		"ai_insights":        json.RawMessage(insightsJSON),
		"ai_recommendations": json.RawMessage(recommendationsJSON),
		"analyzed_at":        analyzedAt,
	}).Error
}

func (r *SurveyRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var responseIDs []uint
		if err := tx.Model(&model.Response{}).Where("survey_id = ?", id).Pluck("id", &responseIDs).Error; err != nil {
			return err
		}
		if len(responseIDs) > 0 {
			if err := tx.Where("response_id IN ?", responseIDs).Delete(&model.Answer{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", responseIDs).Delete(&model.Response{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("survey_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Survey{}, id).Error
	})
}

func (r *SurveyRepository) CountByStatus() (map[model.SurveyStatus]int64, error) {
	type row struct {
		Status model.SurveyStatus
		Count  int64
	}
	var rows []row
	err := r.DB.Model(&model.Survey{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[model.SurveyStatus]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}
