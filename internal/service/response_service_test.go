package service

import (
	"context"
	"errors"
	"testing"

	"hrd_survey_backend/internal/model"
	"hrd_survey_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubSurveyRepo struct {
	surveys map[uint]*model.Survey
	updated []model.SurveyStatus
}

func newStubSurveyRepo(surveys ...*model.Survey) *stubSurveyRepo {
	m := make(map[uint]*model.Survey, len(surveys))
	for _, s := range surveys {
		m[s.ID] = s
	}
	return &stubSurveyRepo{surveys: m}
}

func (r *stubSurveyRepo) Create(s *model.Survey) error {
	r.surveys[s.ID] = s
	return nil
}

func (r *stubSurveyRepo) FindByID(id uint) (*model.Survey, error) {
	if s, ok := r.surveys[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSurveyRepo) FindByCode(code string) (*model.Survey, error) {
	for _, s := range r.surveys {
		if s.Code == code {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSurveyRepo) ExistsByCode(code string) (bool, error) {
	_, err := r.FindByCode(code)
	return err == nil, nil
}

func (r *stubSurveyRepo) List(page, limit int, courseID uint, status model.SurveyStatus) ([]model.Survey, int64, error) {
	return nil, 0, nil
}

func (r *stubSurveyRepo) Update(s *model.Survey) error {
	r.surveys[s.ID] = s
	return nil
}

func (r *stubSurveyRepo) UpdateStatus(id uint, status model.SurveyStatus) error {
	r.updated = append(r.updated, status)
	if s, ok := r.surveys[id]; ok {
		s.Status = status
	}
	return nil
}

func (r *stubSurveyRepo) Delete(id uint) error {
	delete(r.surveys, id)
	return nil
}

type stubQuestionRepo struct {
	questions []model.Question
}

func (r *stubQuestionRepo) ListBySurvey(surveyID uint) ([]model.Question, error) {
	var out []model.Question
	for _, q := range r.questions {
		if q.SurveyID == surveyID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *stubQuestionRepo) CountBySurvey(surveyID uint) (int64, error) {
	qs, _ := r.ListBySurvey(surveyID)
	return int64(len(qs)), nil
}

type stubResponseRepo struct {
	sessions  map[string]bool
	createErr error
	created   []*model.Response
}

func (r *stubResponseRepo) Create(resp *model.Response) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, resp)
	return nil
}

func (r *stubResponseRepo) ExistsBySession(surveyID uint, sessionID string) (bool, error) {
	return r.sessions[sessionID], nil
}

func (r *stubResponseRepo) ListBySurvey(surveyID uint) ([]model.Response, error) {
	out := make([]model.Response, 0, len(r.created))
	for _, resp := range r.created {
		if resp.SurveyID == surveyID {
			out = append(out, *resp)
		}
	}
	return out, nil
}

func submitFixture(anonymous bool) (*ResponseService, *stubResponseRepo) {
	survey := &model.Survey{
		BaseModel:   model.BaseModel{ID: 1},
		Code:        "ABC234",
		Status:      model.SurveyActive,
		ScaleType:   5,
		IsAnonymous: anonymous,
	}
	questions := &stubQuestionRepo{questions: []model.Question{
		{BaseModel: model.BaseModel{ID: 100}, SurveyID: 1, Type: model.QuestionChoice, Category: model.CategoryOverall, Content: "만족도", Order: 1, IsRequired: true},
	}}
	responses := &stubResponseRepo{sessions: map[string]bool{}}

	svc := NewResponseService(responses, newStubSurveyRepo(survey), questions,
		NewStatsService(&stubStore{}, nil))
	return svc, responses
}

func validationFixture() (*model.Survey, []model.Question) {
	survey := &model.Survey{
		BaseModel: model.BaseModel{ID: 1},
		ScaleType: 5,
	}
	questions := []model.Question{
		{BaseModel: model.BaseModel{ID: 100}, SurveyID: 1, Type: model.QuestionChoice, Category: model.CategoryOverall, Content: "만족도", Order: 1, IsRequired: true},
		{BaseModel: model.BaseModel{ID: 101}, SurveyID: 1, Type: model.QuestionText, Category: model.CategoryOther, Content: "의견", Order: 2, IsRequired: false},
	}
	return survey, questions
}

func TestValidateAnswersAccepts(t *testing.T) {
	survey, questions := validationFixture()

	answers, err := validateAnswers(survey, questions, []AnswerInput{
		{QuestionID: 100, Score: scorePtr(4)},
		{QuestionID: 101, Text: "  실습 확대 바랍니다  "},
	})
	require.NoError(t, err)
	require.Len(t, answers, 2)
	assert.Equal(t, 4, *answers[0].Score)
	// 서술형 답변은 공백만 정리된다
	assert.Equal(t, "실습 확대 바랍니다", answers[1].Text)
}

func TestValidateAnswersRejections(t *testing.T) {
	survey, questions := validationFixture()

	tests := []struct {
		name   string
		inputs []AnswerInput
	}{
		{
			name:   "설문에 없는 문항",
			inputs: []AnswerInput{{QuestionID: 100, Score: scorePtr(4)}, {QuestionID: 999, Score: scorePtr(3)}},
		},
		{
			name:   "중복 답변",
			inputs: []AnswerInput{{QuestionID: 100, Score: scorePtr(4)}, {QuestionID: 100, Score: scorePtr(5)}},
		},
		{
			name:   "선택형에 점수 누락",
			inputs: []AnswerInput{{QuestionID: 100, Text: "글로 답함"}},
		},
		{
			name:   "선택형에 텍스트 동봉",
			inputs: []AnswerInput{{QuestionID: 100, Score: scorePtr(4), Text: "추가 의견"}},
		},
		{
			name:   "척도 상한 초과",
			inputs: []AnswerInput{{QuestionID: 100, Score: scorePtr(6)}},
		},
		{
			name:   "척도 하한 미만",
			inputs: []AnswerInput{{QuestionID: 100, Score: scorePtr(0)}},
		},
		{
			name:   "주관식에 점수 동봉",
			inputs: []AnswerInput{{QuestionID: 100, Score: scorePtr(4)}, {QuestionID: 101, Score: scorePtr(3)}},
		},
		{
			name:   "필수 문항 누락",
			inputs: []AnswerInput{{QuestionID: 101, Text: "의견만 제출"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validateAnswers(survey, questions, tt.inputs)
			assert.Error(t, err)
		})
	}
}

func TestValidateAnswersOptionalTextMayBeEmpty(t *testing.T) {
	survey, questions := validationFixture()

	answers, err := validateAnswers(survey, questions, []AnswerInput{
		{QuestionID: 100, Score: scorePtr(5)},
		{QuestionID: 101, Text: "   "},
	})
	require.NoError(t, err)
	// 빈 선택 답변은 저장하지 않는다
	require.Len(t, answers, 1)
	assert.Equal(t, uint(100), answers[0].QuestionID)
}

func TestSubmitStoresResponse(t *testing.T) {
	svc, repo := submitFixture(false)

	resp, err := svc.Submit(context.Background(), "ABC234", SubmitRequest{
		SessionID:      "sess-1",
		RespondentName: " 홍길동 ",
		Answers:        []AnswerInput{{QuestionID: 100, Score: scorePtr(4)}},
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "홍길동", resp.RespondentName)
	assert.Equal(t, "sess-1", resp.SessionID)
	assert.False(t, resp.SubmittedAt.IsZero())
	require.Len(t, resp.Answers, 1)
	assert.Equal(t, 4, *resp.Answers[0].Score)
}

func TestSubmitAnonymousDiscardsName(t *testing.T) {
	svc, repo := submitFixture(true)

	resp, err := svc.Submit(context.Background(), "ABC234", SubmitRequest{
		SessionID:      "sess-1",
		RespondentName: "홍길동",
		Answers:        []AnswerInput{{QuestionID: 100, Score: scorePtr(4)}},
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	// 익명 설문은 이름을 저장하지 않는다
	assert.Empty(t, resp.RespondentName)
}

func TestSubmitRejectsDuplicateSession(t *testing.T) {
	svc, repo := submitFixture(false)
	repo.sessions["sess-1"] = true

	_, err := svc.Submit(context.Background(), "ABC234", SubmitRequest{
		SessionID: "sess-1",
		Answers:   []AnswerInput{{QuestionID: 100, Score: scorePtr(4)}},
	})
	require.ErrorIs(t, err, util.ErrAlreadySubmitted)
	assert.Empty(t, repo.created)
}

// 사전 조회를 통과한 경합 제출은 유니크 인덱스 위반으로 돌아온다.
// MySQL 1062 에러도 중복 제출로 번역돼야 한다.
func TestSubmitMapsDuplicateKeyToAlreadySubmitted(t *testing.T) {
	svc, repo := submitFixture(false)
	repo.createErr = errors.New("Error 1062 (23000): Duplicate entry '1-sess-1' for key 'idx_survey_session'")

	_, err := svc.Submit(context.Background(), "ABC234", SubmitRequest{
		SessionID: "sess-1",
		Answers:   []AnswerInput{{QuestionID: 100, Score: scorePtr(4)}},
	})
	require.ErrorIs(t, err, util.ErrAlreadySubmitted)

	repo.createErr = gorm.ErrDuplicatedKey
	_, err = svc.Submit(context.Background(), "ABC234", SubmitRequest{
		SessionID: "sess-2",
		Answers:   []AnswerInput{{QuestionID: 100, Score: scorePtr(4)}},
	})
	require.ErrorIs(t, err, util.ErrAlreadySubmitted)
}

func TestSubmitRejectsInactiveSurvey(t *testing.T) {
	svc, _ := submitFixture(false)
	survey, err := svc.SurveyRepo.FindByCode("ABC234")
	require.NoError(t, err)
	survey.Status = model.SurveyClosed

	_, err = svc.Submit(context.Background(), "ABC234", SubmitRequest{
		SessionID: "sess-1",
		Answers:   []AnswerInput{{QuestionID: 100, Score: scorePtr(4)}},
	})
	require.ErrorIs(t, err, util.ErrSurveyNotActive)
}

func TestSubmitUnknownCode(t *testing.T) {
	svc, _ := submitFixture(false)

	_, err := svc.Submit(context.Background(), "ZZZZ99", SubmitRequest{
		SessionID: "sess-1",
		Answers:   []AnswerInput{{QuestionID: 100, Score: scorePtr(4)}},
	})
	require.ErrorIs(t, err, util.ErrSurveyNotFound)
}

func TestValidateAnswersRequiredTextEmpty(t *testing.T) {
	survey, questions := validationFixture()
	questions[1].IsRequired = true

	_, err := validateAnswers(survey, questions, []AnswerInput{
		{QuestionID: 100, Score: scorePtr(5)},
		{QuestionID: 101, Text: ""},
	})
	assert.Error(t, err)
}
