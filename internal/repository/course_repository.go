package repository

import (
	"hrd_survey_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var c model.Course
	err := r.DB.First(&c, id).Error
	return &c, err
}

func (r *CourseRepository) List(page, limit int, keyword string) ([]model.Course, int64, error) {
	var cs []model.Course
	var total int64
	query := r.DB.Model(&model.Course{})
	if keyword != "" {
		query = query.Where("title LIKE ?", "%"+keyword+"%")
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&cs).Error
	return cs, total, err
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

// Delete 과정과 하위 설문/문항/응답을 함께 soft-delete 한다.
// 하나의 트랜잭션으로 묶지만 설문별 응답 삭제는 순차적이다.
func (r *CourseRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var surveyIDs []uint
		if err := tx.Model(&model.Survey{}).Where("course_id = ?", id).Pluck("id", &surveyIDs).Error; err != nil {
			return err
		}
		if len(surveyIDs) > 0 {
			var responseIDs []uint
			if err := tx.Model(&model.Response{}).Where("survey_id IN ?", surveyIDs).Pluck("id", &responseIDs).Error; err != nil {
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
			if err := tx.Where("survey_id IN ?", surveyIDs).Delete(&model.Question{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", surveyIDs).Delete(&model.Survey{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Course{}, id).Error
	})
}

func (r *CourseRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).Count(&count).Error
	return count, err
}
