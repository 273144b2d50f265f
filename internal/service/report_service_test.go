package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"hrd_survey_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportFixtureStore(anonymous bool) *stubStore {
	analyzedAt := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	return &stubStore{
		survey: &model.Survey{
			BaseModel:         model.BaseModel{ID: 1},
			CourseID:          10,
			Title:             "만족도 조사",
			ScaleType:         5,
			IsAnonymous:       anonymous,
			AISummary:         "만족도가 높습니다.",
			AIInsights:        json.RawMessage(`["평균이 높음"]`),
			AIRecommendations: json.RawMessage(`["현행 유지"]`),
			AnalyzedAt:        &analyzedAt,
		},
		course: &model.Course{
			BaseModel:          model.BaseModel{ID: 10},
			Title:              "리더십 교육",
			Instructor:         "박강사",
			TargetParticipants: 4,
		},
		questions: []model.Question{
			{BaseModel: model.BaseModel{ID: 100}, SurveyID: 1, Type: model.QuestionChoice, Category: model.CategoryOverall, Content: "전반 만족도", Order: 1},
			{BaseModel: model.BaseModel{ID: 101}, SurveyID: 1, Type: model.QuestionText, Category: model.CategoryOther, Content: "개선 의견", Order: 2},
		},
		responses: []model.Response{
			{
				SurveyID: 1, SessionID: "s1", RespondentName: "홍길동", SubmittedAt: time.Now(),
				Answers: []model.Answer{
					{QuestionID: 100, Score: scorePtr(5)},
					{QuestionID: 101, Text: "실습이 더 있으면 좋겠습니다"},
				},
			},
			{
				SurveyID: 1, SessionID: "s2", RespondentName: "김철수", SubmittedAt: time.Now(),
				Answers: []model.Answer{
					{QuestionID: 100, Score: scorePtr(4)},
				},
			},
		},
	}
}

func TestAssembleReport(t *testing.T) {
	store := reportFixtureStore(false)
	svc := NewReportService(store, NewStatsService(store, nil))

	report, err := svc.Assemble(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "리더십 교육", report.Header.CourseTitle)
	assert.Equal(t, "만족도 조사", report.Header.SurveyTitle)
	assert.Equal(t, "박강사", report.Header.Instructor)

	assert.Equal(t, 2, report.Summary.RespondentCount)
	assert.Equal(t, 50, report.Summary.ResponseRate)
	assert.InDelta(t, 4.5, report.Summary.OverallAverage, 0.001)

	// 캐시된 AI 분석이 그대로 실린다
	require.NotNil(t, report.Analysis)
	assert.Equal(t, "만족도가 높습니다.", report.Analysis.Summary)
	assert.Equal(t, []string{"평균이 높음"}, report.Analysis.Insights)
	assert.Equal(t, []string{"현행 유지"}, report.Analysis.Recommendations)

	require.Len(t, report.Questions, 2)
	choice := report.Questions[0]
	require.Len(t, choice.Bars, 5)
	assert.Equal(t, 5, choice.Bars[4].Score)
	assert.Equal(t, 2, choice.Bars[4].Count+choice.Bars[3].Count)
	assert.Empty(t, report.Questions[1].Bars)

	require.Len(t, report.TextAnswers, 1)
	assert.Equal(t, "개선 의견", report.TextAnswers[0].Content)

	assert.Equal(t, []string{"홍길동", "김철수"}, report.Respondents)
}

func TestAssembleReportAnonymousHidesNames(t *testing.T) {
	store := reportFixtureStore(true)
	svc := NewReportService(store, NewStatsService(store, nil))

	report, err := svc.Assemble(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, report.Respondents)
	// 익명은 신원만 가린다. 서술형 답변 자체는 리포트에 남는다.
	assert.NotEmpty(t, report.TextAnswers)
}

func TestAssembleReportWithoutAnalysis(t *testing.T) {
	store := reportFixtureStore(false)
	store.survey.AISummary = ""
	svc := NewReportService(store, NewStatsService(store, nil))

	report, err := svc.Assemble(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, report.Analysis)
}
