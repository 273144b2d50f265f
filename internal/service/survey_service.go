package service

import (
	"errors"
	"time"

	"hrd_survey_backend/internal/model"
	"hrd_survey_backend/internal/util"

	"gorm.io/gorm"
)

const surveyCodeLength = 6

type SurveyService struct {
	Repo       SurveyStore
	CourseRepo CourseStore
	Questions  QuestionStore
}

func NewSurveyService(repo SurveyStore, courseRepo CourseStore, questions QuestionStore) *SurveyService {
	return &SurveyService{Repo: repo, CourseRepo: courseRepo, Questions: questions}
}

type SurveyRequest struct {
	CourseID    uint       `json:"courseId" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	ScaleType   int        `json:"scaleType"`
	IsAnonymous *bool      `json:"isAnonymous"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

func (s *SurveyService) Create(req SurveyRequest, creatorID uint) (*model.Survey, error) {
	if _, err := s.CourseRepo.FindByID(req.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	scale := req.ScaleType
	if scale == 0 {
		scale = 5
	}
	if !model.ValidScaleTypes[scale] {
		return nil, errors.New("허용되지 않는 응답 척도입니다 (5/7/9/10)")
	}

	code, err := s.uniqueCode()
	if err != nil {
		return nil, err
	}

	anonymous := true
	if req.IsAnonymous != nil {
		anonymous = *req.IsAnonymous
	}

	survey := &model.Survey{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
		Status:      model.SurveyDraft,
		Code:        code,
		ScaleType:   scale,
		IsAnonymous: anonymous,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatorID:   creatorID,
	}
	if err := s.Repo.Create(survey); err != nil {
		return nil, err
	}
	return survey, nil
}

// uniqueCode 충돌하지 않는 공개 코드를 뽑는다. 6자리 31진수 공간이라
// 충돌은 드물지만 몇 번은 다시 시도한다.
func (s *SurveyService) uniqueCode() (string, error) {
	for i := 0; i < 5; i++ {
		code := util.GenerateSurveyCode(surveyCodeLength)
		exists, err := s.Repo.ExistsByCode(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", errors.New("설문 코드 생성에 실패했습니다")
}

func (s *SurveyService) Get(id uint) (*model.Survey, error) {
	survey, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSurveyNotFound
	}
	if err != nil {
		return nil, err
	}
	return survey, nil
}

func (s *SurveyService) List(page, limit int, courseID uint, status model.SurveyStatus) ([]model.Survey, int64, error) {
	return s.Repo.List(page, limit, courseID, status)
}

func (s *SurveyService) Update(id uint, req SurveyRequest) (*model.Survey, error) {
	survey, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	// 진행 중이거나 종료된 설문은 척도를 바꿀 수 없다. 이미 수집된
	// 점수의 범위가 달라지기 때문이다.
	if req.ScaleType != 0 && req.ScaleType != survey.ScaleType && survey.Status != model.SurveyDraft {
		return nil, util.ErrInvalidTransition
	}
	if req.ScaleType != 0 {
		if !model.ValidScaleTypes[req.ScaleType] {
			return nil, errors.New("허용되지 않는 응답 척도입니다 (5/7/9/10)")
		}
		survey.ScaleType = req.ScaleType
	}

	survey.Title = req.Title
	survey.Description = req.Description
	survey.StartDate = req.StartDate
	survey.EndDate = req.EndDate
	if req.IsAnonymous != nil {
		survey.IsAnonymous = *req.IsAnonymous
	}

	if err := s.Repo.Update(survey); err != nil {
		return nil, err
	}
	return survey, nil
}

// Activate draft/closed 설문을 진행 상태로 전환한다. 문항이 하나도 없으면 거부한다.
func (s *SurveyService) Activate(id uint) (*model.Survey, error) {
	survey, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if survey.Status == model.SurveyActive {
		return survey, nil
	}

	count, err := s.Questions.CountBySurvey(id)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, util.ErrSurveyHasNoQuestions
	}

	if err := s.Repo.UpdateStatus(id, model.SurveyActive); err != nil {
		return nil, err
	}
	survey.Status = model.SurveyActive
	return survey, nil
}

// Close 진행 중인 설문을 종료한다.
func (s *SurveyService) Close(id uint) (*model.Survey, error) {
	survey, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if survey.Status != model.SurveyActive {
		return nil, util.ErrInvalidTransition
	}

	if err := s.Repo.UpdateStatus(id, model.SurveyClosed); err != nil {
		return nil, err
	}
	survey.Status = model.SurveyClosed
	return survey, nil
}

func (s *SurveyService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}

// GetPublicByCode 응답자 화면용 조회. 진행 중인 설문만 내준다.
func (s *SurveyService) GetPublicByCode(code string) (*model.Survey, []model.Question, error) {
	survey, err := s.Repo.FindByCode(code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, util.ErrSurveyNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	if survey.Status != model.SurveyActive {
		return nil, nil, util.ErrSurveyNotActive
	}

	questions, err := s.Questions.ListBySurvey(survey.ID)
	if err != nil {
		return nil, nil, err
	}
	return survey, questions, nil
}
