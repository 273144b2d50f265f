package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hrd_survey_backend/internal/model"
	"hrd_survey_backend/internal/util"
	"hrd_survey_backend/pkg/logger"
	"hrd_survey_backend/pkg/monitoring"

	"go.uber.org/zap"
)

const analysisSystemPrompt = "당신은 기업 교육(HRD) 만족도 조사 결과를 분석하는 전문 컨설턴트입니다. " +
	"요청된 JSON 형식으로만 답변하고, 수치 근거를 바탕으로 구체적으로 작성하세요."

// SurveyAnalysis 설문 단위 정성 분석 결과
type SurveyAnalysis struct {
	Summary         string    `json:"summary"`
	Insights        []string  `json:"insights"`
	Recommendations []string  `json:"recommendations"`
	AnalyzedAt      time.Time `json:"analyzedAt"`
}

// CourseAnalysis 과정 단위 정성 분석 결과. 강점/약점까지 포함한다.
type CourseAnalysis struct {
	Summary         string   `json:"summary"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Insights        []string `json:"insights"`
	Recommendations []string `json:"recommendations"`
}

type AnalysisService struct {
	store AnalysisStore
	stats *StatsService
	ai    ChatClient
}

func NewAnalysisService(store AnalysisStore, stats *StatsService, ai ChatClient) *AnalysisService {
	return &AnalysisService{store: store, stats: stats, ai: ai}
}

// AnalyzeSurvey 설문 집계 결과를 AI에 보내 정성 분석을 받고 설문 레코드에 캐시한다.
// 재시도는 하지 않으며, 동시 호출 시 나중 결과가 남는다.
func (s *AnalysisService) AnalyzeSurvey(ctx context.Context, surveyID uint) (*SurveyAnalysis, error) {
	if !s.ai.IsConfigured() {
		return nil, util.ErrAINotConfigured
	}

	survey, err := s.store.GetSurvey(surveyID)
	if err != nil {
		return nil, err
	}

	stats, err := s.stats.Aggregate(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if stats.RespondentCount == 0 {
		return nil, util.ErrNoResponses
	}

	var course *model.Course
	if survey.CourseID > 0 {
		if course, err = s.store.GetCourse(survey.CourseID); err != nil {
			return nil, err
		}
	}

	prompt := buildSurveyPrompt(survey, course, stats)

	raw, err := s.ai.Chat(analysisSystemPrompt, prompt)
	if err != nil {
		monitoring.AIRequestCounter.WithLabelValues("survey_analysis", "error").Inc()
		logger.Log.Error("AI analysis request failed", zap.Uint("surveyId", surveyID), zap.Error(err))
		return nil, util.ErrAIFailed
	}

	var parsed struct {
		Summary         string   `json:"summary"`
		Insights        []string `json:"insights"`
		Recommendations []string `json:"recommendations"`
	}
	if err := util.ExtractJSONTo(raw, &parsed); err != nil {
		monitoring.AIRequestCounter.WithLabelValues("survey_analysis", "parse_error").Inc()
		logger.Log.Error("AI analysis response unparsable", zap.Uint("surveyId", surveyID), zap.Error(err))
		return nil, util.ErrAIParseFailed
	}
	monitoring.AIRequestCounter.WithLabelValues("survey_analysis", "ok").Inc()

	analyzedAt := time.Now()
	if err := s.store.UpdateSurveyAnalysis(surveyID, parsed.Summary, parsed.Insights, parsed.Recommendations, analyzedAt); err != nil {
		return nil, err
	}

	return &SurveyAnalysis{
		Summary:         parsed.Summary,
		Insights:        parsed.Insights,
		Recommendations: parsed.Recommendations,
		AnalyzedAt:      analyzedAt,
	}, nil
}

// AnalyzeCourse 과정에 속한 설문들의 요약을 모아 과정 단위 분석을 요청한다.
// 결과는 캐시하지 않고 매번 계산한다.
func (s *AnalysisService) AnalyzeCourse(ctx context.Context, courseID uint) (*CourseAnalysis, error) {
	if !s.ai.IsConfigured() {
		return nil, util.ErrAINotConfigured
	}

	course, err := s.store.GetCourse(courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, util.ErrCourseNotFound
	}

	surveys, err := s.store.ListSurveysByCourse(courseID)
	if err != nil {
		return nil, err
	}

	var sections []string
	totalRespondents := 0
	for _, sv := range surveys {
		stats, err := s.stats.Aggregate(ctx, sv.ID)
		if err != nil {
			return nil, err
		}
		if stats.RespondentCount == 0 {
			continue
		}
		totalRespondents += stats.RespondentCount
		sections = append(sections, surveySummaryLine(&sv, stats))
	}
	if totalRespondents == 0 {
		return nil, util.ErrNoResponses
	}

	prompt := buildCoursePrompt(course, sections)

	raw, err := s.ai.Chat(analysisSystemPrompt, prompt)
	if err != nil {
		monitoring.AIRequestCounter.WithLabelValues("course_analysis", "error").Inc()
		logger.Log.Error("AI course analysis request failed", zap.Uint("courseId", courseID), zap.Error(err))
		return nil, util.ErrAIFailed
	}

	var parsed CourseAnalysis
	if err := util.ExtractJSONTo(raw, &parsed); err != nil {
		monitoring.AIRequestCounter.WithLabelValues("course_analysis", "parse_error").Inc()
		return nil, util.ErrAIParseFailed
	}
	monitoring.AIRequestCounter.WithLabelValues("course_analysis", "ok").Inc()

	return &parsed, nil
}

var categoryLabels = map[model.QuestionCategory]string{
	model.CategoryOverall:    "전반 만족도",
	model.CategoryContent:    "교육 내용",
	model.CategoryInstructor: "강사",
	model.CategoryFacility:   "교육 환경",
	model.CategoryOther:      "기타",
}

func buildSurveyPrompt(survey *model.Survey, course *model.Course, stats *SurveyStats) string {
	var b strings.Builder

	b.WriteString("다음은 교육 만족도 설문의 집계 결과입니다.\n\n")
	if course != nil {
		fmt.Fprintf(&b, "과정명: %s\n", course.Title)
		if course.Instructor != "" {
			fmt.Fprintf(&b, "강사: %s\n", course.Instructor)
		}
	}
	fmt.Fprintf(&b, "설문명: %s\n", survey.Title)
	fmt.Fprintf(&b, "응답자 수: %d명 (응답률 %d%%)\n", stats.RespondentCount, stats.ResponseRate)
	fmt.Fprintf(&b, "전체 평균: %.2f / %d (표준편차 %.2f)\n\n", stats.OverallAverage, stats.ScaleType, stats.OverallStdDeviation)

	b.WriteString("카테고리별 통계:\n")
	for _, cs := range stats.Categories {
		label := categoryLabels[cs.Category]
		if label == "" {
			label = string(cs.Category)
		}
		fmt.Fprintf(&b, "- %s: 평균 %.2f, 표준편차 %.2f (문항 %d개, 답변 %d건)\n",
			label, cs.Average, cs.StdDeviation, cs.QuestionCount, cs.ResponseCount)
	}

	b.WriteString("\n문항별 통계:\n")
	for _, qs := range stats.Questions {
		if qs.Type != model.QuestionChoice {
			continue
		}
		fmt.Fprintf(&b, "- %s: 평균 %.2f, 중앙값 %.1f, 최빈값 %d\n", qs.Content, qs.Average, qs.Median, qs.Mode)
	}

	// 서술형 답변은 앞쪽 일부만 프롬프트에 싣는다.
	var texts []string
	for _, qs := range stats.Questions {
		texts = append(texts, qs.Texts...)
	}
	if len(texts) > 0 {
		b.WriteString("\n주관식 의견 (일부):\n")
		limit := len(texts)
		if limit > 20 {
			limit = 20
		}
		for _, t := range texts[:limit] {
			fmt.Fprintf(&b, "- %s\n", t)
		}
	}

	b.WriteString("\n위 결과를 바탕으로 아래 키를 가진 JSON 객체 하나만 출력하세요:\n")
	b.WriteString(`{"summary": "3~4문장의 종합 요약", "insights": ["주목할 만한 발견 3~5개"], "recommendations": ["개선 제안 3~5개"]}`)

	return b.String()
}

func surveySummaryLine(survey *model.Survey, stats *SurveyStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "설문 \"%s\": 응답 %d명, 전체 평균 %.2f/%d",
		survey.Title, stats.RespondentCount, stats.OverallAverage, stats.ScaleType)
	for _, cs := range stats.Categories {
		label := categoryLabels[cs.Category]
		if label == "" {
			label = string(cs.Category)
		}
		fmt.Fprintf(&b, ", %s %.2f", label, cs.Average)
	}
	return b.String()
}

func buildCoursePrompt(course *model.Course, sections []string) string {
	var b strings.Builder

	b.WriteString("다음은 한 교육 과정에 속한 만족도 설문들의 집계 요약입니다.\n\n")
	fmt.Fprintf(&b, "과정명: %s\n", course.Title)
	if course.Objectives != "" {
		fmt.Fprintf(&b, "교육 목표: %s\n", course.Objectives)
	}
	if course.Instructor != "" {
		fmt.Fprintf(&b, "강사: %s\n", course.Instructor)
	}
	b.WriteString("\n설문별 요약:\n")
	for _, line := range sections {
		fmt.Fprintf(&b, "- %s\n", line)
	}

	b.WriteString("\n위 결과를 바탕으로 아래 키를 가진 JSON 객체 하나만 출력하세요:\n")
	b.WriteString(`{"summary": "과정 전체에 대한 종합 요약", "strengths": ["강점"], "weaknesses": ["약점"], "insights": ["발견"], "recommendations": ["개선 제안"]}`)

	return b.String()
}
