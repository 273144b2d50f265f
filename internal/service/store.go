package service

import (
	"errors"
	"time"

	"hrd_survey_backend/internal/model"
	"hrd_survey_backend/internal/repository"

	"gorm.io/gorm"
)

// SurveyDataStore 집계 파이프라인이 사용하는 저장소 접근 인터페이스.
// 목록의 정렬 순서는 보장되지 않으므로 호출 측에서 가정하면 안 된다.
type SurveyDataStore interface {
	GetSurvey(id uint) (*model.Survey, error)
	GetCourse(id uint) (*model.Course, error)
	ListQuestions(surveyID uint) ([]model.Question, error)
	ListResponses(surveyID uint) ([]model.Response, error)
}

// AnalysisStore AI 분석 결과 캐시까지 다루는 확장 인터페이스
type AnalysisStore interface {
	SurveyDataStore
	ListSurveysByCourse(courseID uint) ([]model.Survey, error)
	UpdateSurveyAnalysis(id uint, summary string, insights, recommendations []string, analyzedAt time.Time) error
}

// SurveyStore 설문 생명주기 서비스가 쓰는 저장 연산.
// *repository.SurveyRepository가 그대로 만족한다.
type SurveyStore interface {
	Create(survey *model.Survey) error
	FindByID(id uint) (*model.Survey, error)
	FindByCode(code string) (*model.Survey, error)
	ExistsByCode(code string) (bool, error)
	List(page, limit int, courseID uint, status model.SurveyStatus) ([]model.Survey, int64, error)
	Update(survey *model.Survey) error
	UpdateStatus(id uint, status model.SurveyStatus) error
	Delete(id uint) error
}

type CourseStore interface {
	FindByID(id uint) (*model.Course, error)
}

type QuestionStore interface {
	ListBySurvey(surveyID uint) ([]model.Question, error)
	CountBySurvey(surveyID uint) (int64, error)
}

type ResponseStore interface {
	Create(response *model.Response) error
	ExistsBySession(surveyID uint, sessionID string) (bool, error)
	ListBySurvey(surveyID uint) ([]model.Response, error)
}

type gormSurveyStore struct {
	surveys   *repository.SurveyRepository
	courses   *repository.CourseRepository
	questions *repository.QuestionRepository
	responses *repository.ResponseRepository
}

func NewSurveyDataStore(
	surveys *repository.SurveyRepository,
	courses *repository.CourseRepository,
	questions *repository.QuestionRepository,
	responses *repository.ResponseRepository,
) AnalysisStore {
	return &gormSurveyStore{
		surveys:   surveys,
		courses:   courses,
		questions: questions,
		responses: responses,
	}
}

func (s *gormSurveyStore) GetSurvey(id uint) (*model.Survey, error) {
	return s.surveys.FindByID(id)
}

// GetCourse 과정이 없으면 (nil, nil)을 돌려준다. 과정이 지워진 설문도
// 통계 자체는 계산할 수 있어야 하기 때문이다 (응답률만 0이 된다).
func (s *gormSurveyStore) GetCourse(id uint) (*model.Course, error) {
	c, err := s.courses.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *gormSurveyStore) ListQuestions(surveyID uint) ([]model.Question, error) {
	return s.questions.ListBySurvey(surveyID)
}

func (s *gormSurveyStore) ListResponses(surveyID uint) ([]model.Response, error) {
	return s.responses.ListBySurvey(surveyID)
}

func (s *gormSurveyStore) ListSurveysByCourse(courseID uint) ([]model.Survey, error) {
	return s.surveys.ListByCourse(courseID)
}

func (s *gormSurveyStore) UpdateSurveyAnalysis(id uint, summary string, insights, recommendations []string, analyzedAt time.Time) error {
	return s.surveys.UpdateAnalysis(id, summary, insights, recommendations, analyzedAt)
}
