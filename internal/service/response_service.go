package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hrd_survey_backend/internal/model"
	"hrd_survey_backend/internal/util"
	"hrd_survey_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type ResponseService struct {
	Repo       ResponseStore
	SurveyRepo SurveyStore
	Questions  QuestionStore
	Stats      *StatsService
}

func NewResponseService(repo ResponseStore, surveyRepo SurveyStore, questions QuestionStore, stats *StatsService) *ResponseService {
	return &ResponseService{Repo: repo, SurveyRepo: surveyRepo, Questions: questions, Stats: stats}
}

type AnswerInput struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	Score      *int   `json:"score"`
	Text       string `json:"text"`
}

type SubmitRequest struct {
	SessionID      string        `json:"sessionId" binding:"required"`
	RespondentName string        `json:"respondentName"`
	Answers        []AnswerInput `json:"answers" binding:"required"`
}

// Submit 공개 코드로 응답을 제출한다. 세션 중복은 사전 조회로 거르고,
// 남는 경합은 (survey_id, session_id) 유니크 인덱스가 막는다.
func (s *ResponseService) Submit(ctx context.Context, code string, req SubmitRequest) (*model.Response, error) {
	survey, err := s.SurveyRepo.FindByCode(code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSurveyNotFound
	}
	if err != nil {
		return nil, err
	}

	if survey.Status != model.SurveyActive {
		return nil, util.ErrSurveyNotActive
	}
	now := time.Now()
	if survey.StartDate != nil && now.Before(*survey.StartDate) {
		return nil, util.ErrSurveyNotStarted
	}
	if survey.EndDate != nil && now.After(*survey.EndDate) {
		return nil, util.ErrSurveyExpired
	}

	exists, err := s.Repo.ExistsBySession(survey.ID, req.SessionID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrAlreadySubmitted
	}

	questions, err := s.Questions.ListBySurvey(survey.ID)
	if err != nil {
		return nil, err
	}

	answers, err := validateAnswers(survey, questions, req.Answers)
	if err != nil {
		return nil, err
	}

	response := &model.Response{
		SurveyID:    survey.ID,
		SessionID:   req.SessionID,
		SubmittedAt: now,
		Answers:     answers,
	}
	// 익명 설문에서는 이름을 받아도 버린다.
	if !survey.IsAnonymous {
		response.RespondentName = strings.TrimSpace(req.RespondentName)
	}

	if err := s.Repo.Create(response); err != nil {
		if isDuplicateKey(err) {
			return nil, util.ErrAlreadySubmitted
		}
		return nil, err
	}

	s.Stats.InvalidateCache(ctx, survey.ID)
	monitoring.ResponseCounter.WithLabelValues(survey.Code).Inc()

	return response, nil
}

// validateAnswers 답변 모양이 문항 유형과 맞는지, 필수 문항이 빠지지 않았는지
// 검사한다. 첫 번째 위반만 메시지로 돌려준다.
func validateAnswers(survey *model.Survey, questions []model.Question, inputs []AnswerInput) ([]model.Answer, error) {
	byID := make(map[uint]*model.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	answered := make(map[uint]bool, len(inputs))
	answers := make([]model.Answer, 0, len(inputs))

	for _, in := range inputs {
		q, ok := byID[in.QuestionID]
		if !ok {
			return nil, fmt.Errorf("설문에 속하지 않는 문항입니다: %d", in.QuestionID)
		}
		if answered[in.QuestionID] {
			return nil, fmt.Errorf("문항에 대한 답변이 중복되었습니다: %d", in.QuestionID)
		}
		answered[in.QuestionID] = true

		switch q.Type {
		case model.QuestionChoice:
			if in.Score == nil {
				return nil, fmt.Errorf("선택형 문항에 점수가 없습니다: %d", in.QuestionID)
			}
			if in.Text != "" {
				return nil, fmt.Errorf("선택형 문항에 텍스트를 보낼 수 없습니다: %d", in.QuestionID)
			}
			if *in.Score < 1 || *in.Score > survey.ScaleType {
				return nil, fmt.Errorf("점수는 1~%d 범위여야 합니다: 문항 %d", survey.ScaleType, in.QuestionID)
			}
			score := *in.Score
			answers = append(answers, model.Answer{QuestionID: in.QuestionID, Score: &score})
		case model.QuestionText:
			if in.Score != nil {
				return nil, fmt.Errorf("주관식 문항에 점수를 보낼 수 없습니다: %d", in.QuestionID)
			}
			text := strings.TrimSpace(in.Text)
			if text == "" && q.IsRequired {
				return nil, fmt.Errorf("필수 문항에 답변이 없습니다: %d", in.QuestionID)
			}
			if text == "" {
				continue
			}
			answers = append(answers, model.Answer{QuestionID: in.QuestionID, Text: text})
		}
	}

	for _, q := range questions {
		if q.IsRequired && !answered[q.ID] {
			return nil, fmt.Errorf("필수 문항에 답변이 없습니다: %d", q.ID)
		}
	}

	return answers, nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// MySQL 1062
	return strings.Contains(err.Error(), "Duplicate entry")
}

func (s *ResponseService) ListBySurvey(surveyID uint) ([]model.Response, error) {
	if _, err := s.SurveyRepo.FindByID(surveyID); err != nil {
		return nil, util.ErrSurveyNotFound
	}
	return s.Repo.ListBySurvey(surveyID)
}
