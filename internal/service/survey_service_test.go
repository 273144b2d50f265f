package service

import (
	"testing"

	"hrd_survey_backend/internal/model"
	"hrd_survey_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lifecycleFixture(status model.SurveyStatus, questionCount int) (*SurveyService, *stubSurveyRepo) {
	survey := &model.Survey{
		BaseModel: model.BaseModel{ID: 1},
		Code:      "ABC234",
		Status:    status,
		ScaleType: 5,
	}
	questions := &stubQuestionRepo{}
	for i := 0; i < questionCount; i++ {
		questions.questions = append(questions.questions, model.Question{
			BaseModel: model.BaseModel{ID: uint(100 + i)},
			SurveyID:  1,
			Type:      model.QuestionChoice,
			Category:  model.CategoryOverall,
			Content:   "만족도",
			Order:     i + 1,
		})
	}
	repo := newStubSurveyRepo(survey)
	return NewSurveyService(repo, nil, questions), repo
}

func TestActivateRequiresAtLeastOneQuestion(t *testing.T) {
	svc, repo := lifecycleFixture(model.SurveyDraft, 0)

	_, err := svc.Activate(1)
	require.ErrorIs(t, err, util.ErrSurveyHasNoQuestions)
	// 상태 전환이 일어나면 안 된다
	assert.Empty(t, repo.updated)
	assert.Equal(t, model.SurveyDraft, repo.surveys[1].Status)
}

func TestActivateDraftWithQuestions(t *testing.T) {
	svc, repo := lifecycleFixture(model.SurveyDraft, 1)

	survey, err := svc.Activate(1)
	require.NoError(t, err)
	assert.Equal(t, model.SurveyActive, survey.Status)
	assert.Equal(t, []model.SurveyStatus{model.SurveyActive}, repo.updated)
}

func TestActivateAlreadyActiveIsNoOp(t *testing.T) {
	svc, repo := lifecycleFixture(model.SurveyActive, 1)

	survey, err := svc.Activate(1)
	require.NoError(t, err)
	assert.Equal(t, model.SurveyActive, survey.Status)
	assert.Empty(t, repo.updated)
}

// 종료됐던 설문도 다시 시작할 수 있다. 문항 요건은 똑같이 적용된다.
func TestActivateReopensClosedSurvey(t *testing.T) {
	svc, _ := lifecycleFixture(model.SurveyClosed, 1)

	survey, err := svc.Activate(1)
	require.NoError(t, err)
	assert.Equal(t, model.SurveyActive, survey.Status)
}

func TestCloseRequiresActiveSurvey(t *testing.T) {
	svc, repo := lifecycleFixture(model.SurveyDraft, 1)

	_, err := svc.Close(1)
	require.ErrorIs(t, err, util.ErrInvalidTransition)
	assert.Empty(t, repo.updated)
}

func TestCloseActiveSurvey(t *testing.T) {
	svc, _ := lifecycleFixture(model.SurveyActive, 1)

	survey, err := svc.Close(1)
	require.NoError(t, err)
	assert.Equal(t, model.SurveyClosed, survey.Status)
}

func TestActivateUnknownSurvey(t *testing.T) {
	svc, _ := lifecycleFixture(model.SurveyDraft, 1)

	_, err := svc.Activate(42)
	require.ErrorIs(t, err, util.ErrSurveyNotFound)
}

func TestScaleChangeLockedAfterDraft(t *testing.T) {
	svc, _ := lifecycleFixture(model.SurveyActive, 1)

	_, err := svc.Update(1, SurveyRequest{Title: "만족도 조사", ScaleType: 7})
	require.ErrorIs(t, err, util.ErrInvalidTransition)
}
