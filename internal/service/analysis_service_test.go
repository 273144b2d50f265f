package service

import (
	"context"
	"errors"
	"testing"

	"hrd_survey_backend/internal/model"
	"hrd_survey_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChat struct {
	configured bool
	reply      string
	err        error
	lastPrompt string
}

func (f *fakeChat) IsConfigured() bool { return f.configured }
func (f *fakeChat) Chat(system, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.reply, f.err
}

func analysisFixtureStore() *stubStore {
	return &stubStore{
		survey: &model.Survey{
			BaseModel: model.BaseModel{ID: 1},
			CourseID:  10,
			Title:     "신입사원 교육 만족도",
			ScaleType: 5,
		},
		course: &model.Course{
			BaseModel:          model.BaseModel{ID: 10},
			Title:              "신입사원 온보딩",
			Instructor:         "김강사",
			TargetParticipants: 20,
		},
		questions: []model.Question{
			{BaseModel: model.BaseModel{ID: 100}, SurveyID: 1, Type: model.QuestionChoice, Category: model.CategoryOverall, Content: "전반 만족도", Order: 1},
		},
		responses: []model.Response{
			scoredResponse(1, "s1", model.Answer{QuestionID: 100, Score: scorePtr(5)}),
			scoredResponse(1, "s2", model.Answer{QuestionID: 100, Score: scorePtr(4)}),
		},
	}
}

func TestAnalyzeSurveyNotConfigured(t *testing.T) {
	store := analysisFixtureStore()
	svc := NewAnalysisService(store, NewStatsService(store, nil), &fakeChat{configured: false})

	_, err := svc.AnalyzeSurvey(context.Background(), 1)
	assert.ErrorIs(t, err, util.ErrAINotConfigured)
}

func TestAnalyzeSurveyNoResponses(t *testing.T) {
	store := analysisFixtureStore()
	store.responses = nil
	svc := NewAnalysisService(store, NewStatsService(store, nil), &fakeChat{configured: true})

	_, err := svc.AnalyzeSurvey(context.Background(), 1)
	assert.ErrorIs(t, err, util.ErrNoResponses)
}

func TestAnalyzeSurveyParsesProseWrappedJSON(t *testing.T) {
	store := analysisFixtureStore()
	chat := &fakeChat{
		configured: true,
		reply: "요청하신 분석 결과입니다:\n" +
			`{"summary": "전반적으로 만족도가 높습니다.", "insights": ["평균 4.5점"], "recommendations": ["현행 유지"]}` +
			"\n추가 문의는 말씀해 주세요.",
	}
	svc := NewAnalysisService(store, NewStatsService(store, nil), chat)

	result, err := svc.AnalyzeSurvey(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "전반적으로 만족도가 높습니다.", result.Summary)
	assert.Equal(t, []string{"평균 4.5점"}, result.Insights)
	assert.Equal(t, []string{"현행 유지"}, result.Recommendations)
	assert.False(t, result.AnalyzedAt.IsZero())

	// 결과는 설문 레코드에 캐시된다
	assert.True(t, store.analysisUpdated)
	assert.Equal(t, "전반적으로 만족도가 높습니다.", store.updatedSummary)

	// 프롬프트에는 집계 수치가 실린다
	assert.Contains(t, chat.lastPrompt, "신입사원 온보딩")
	assert.Contains(t, chat.lastPrompt, "응답자 수: 2명")
}

func TestAnalyzeSurveyChatError(t *testing.T) {
	store := analysisFixtureStore()
	svc := NewAnalysisService(store, NewStatsService(store, nil), &fakeChat{configured: true, err: errors.New("timeout")})

	_, err := svc.AnalyzeSurvey(context.Background(), 1)
	assert.ErrorIs(t, err, util.ErrAIFailed)
	assert.False(t, store.analysisUpdated)
}

func TestAnalyzeSurveyUnparsableReply(t *testing.T) {
	store := analysisFixtureStore()
	svc := NewAnalysisService(store, NewStatsService(store, nil), &fakeChat{configured: true, reply: "죄송합니다, 분석할 수 없습니다."})

	_, err := svc.AnalyzeSurvey(context.Background(), 1)
	assert.ErrorIs(t, err, util.ErrAIParseFailed)
	assert.False(t, store.analysisUpdated)
}

func TestAnalyzeCourse(t *testing.T) {
	store := analysisFixtureStore()
	store.surveysByCourse = []model.Survey{*store.survey}
	chat := &fakeChat{
		configured: true,
		reply:      `{"summary": "과정 운영이 안정적입니다.", "strengths": ["강사 전달력"], "weaknesses": ["실습 시간 부족"], "insights": ["반복 수요 존재"], "recommendations": ["실습 확대"]}`,
	}
	svc := NewAnalysisService(store, NewStatsService(store, nil), chat)

	result, err := svc.AnalyzeCourse(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, "과정 운영이 안정적입니다.", result.Summary)
	assert.Equal(t, []string{"강사 전달력"}, result.Strengths)
	assert.Equal(t, []string{"실습 시간 부족"}, result.Weaknesses)
	assert.Contains(t, chat.lastPrompt, "신입사원 교육 만족도")
}

func TestAnalyzeCourseNoResponses(t *testing.T) {
	store := analysisFixtureStore()
	store.responses = nil
	store.surveysByCourse = []model.Survey{*store.survey}
	svc := NewAnalysisService(store, NewStatsService(store, nil), &fakeChat{configured: true})

	_, err := svc.AnalyzeCourse(context.Background(), 10)
	assert.ErrorIs(t, err, util.ErrNoResponses)
}
