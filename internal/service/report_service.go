package service

import (
	"context"
	"encoding/json"
	"time"

	"hrd_survey_backend/internal/model"
)

// Report 화면 조회와 내보내기가 함께 쓰는 리포트 문서 모델.
// 소비 측은 읽기 전용 트리로만 다룬다.
type Report struct {
	Header      ReportHeader     `json:"header"`
	Summary     ReportSummary    `json:"summary"`
	Analysis    *ReportAnalysis  `json:"analysis,omitempty"`
	Categories  []CategoryStats  `json:"categories"`
	Questions   []ReportQuestion `json:"questions"`
	TextAnswers []TextSection    `json:"textAnswers,omitempty"`
	Respondents []string         `json:"respondents,omitempty"`
	GeneratedAt time.Time        `json:"generatedAt"`
}

type ReportHeader struct {
	CourseTitle string     `json:"courseTitle"`
	SurveyTitle string     `json:"surveyTitle"`
	Instructor  string     `json:"instructor,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
}

type ReportSummary struct {
	RespondentCount     int     `json:"respondentCount"`
	ResponseRate        int     `json:"responseRate"`
	OverallAverage      float64 `json:"overallAverage"`
	OverallStdDeviation float64 `json:"overallStdDeviation"`
	ScaleType           int     `json:"scaleType"`
}

type ReportAnalysis struct {
	Summary         string     `json:"summary"`
	Insights        []string   `json:"insights,omitempty"`
	Recommendations []string   `json:"recommendations,omitempty"`
	AnalyzedAt      *time.Time `json:"analyzedAt,omitempty"`
}

// DistributionBar 점수 분포 막대 하나. Ratio는 0~100 백분율이라
// 렌더링 측에서 그대로 막대 너비로 쓸 수 있다.
type DistributionBar struct {
	Score int     `json:"score"`
	Count int     `json:"count"`
	Ratio float64 `json:"ratio"`
}

type ReportQuestion struct {
	QuestionStats
	Bars []DistributionBar `json:"bars,omitempty"`
}

type TextSection struct {
	QuestionID uint     `json:"questionId"`
	Content    string   `json:"content"`
	Texts      []string `json:"texts"`
}

type ReportService struct {
	store SurveyDataStore
	stats *StatsService
}

func NewReportService(store SurveyDataStore, stats *StatsService) *ReportService {
	return &ReportService{store: store, stats: stats}
}

// Assemble 집계 결과와 캐시된 AI 분석을 합쳐 리포트 문서 하나를 만든다.
// AI 분석이 없으면 Analysis 블록은 생략된다. 여기서 AI를 재호출하지 않는다.
func (s *ReportService) Assemble(ctx context.Context, surveyID uint) (*Report, error) {
	survey, err := s.store.GetSurvey(surveyID)
	if err != nil {
		return nil, err
	}

	stats, err := s.stats.Aggregate(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	var course *model.Course
	if survey.CourseID > 0 {
		if course, err = s.store.GetCourse(survey.CourseID); err != nil {
			return nil, err
		}
	}

	report := &Report{
		Header: ReportHeader{
			SurveyTitle: survey.Title,
		},
		Summary: ReportSummary{
			RespondentCount:     stats.RespondentCount,
			ResponseRate:        stats.ResponseRate,
			OverallAverage:      stats.OverallAverage,
			OverallStdDeviation: stats.OverallStdDeviation,
			ScaleType:           stats.ScaleType,
		},
		Categories:  stats.Categories,
		GeneratedAt: time.Now(),
	}

	if course != nil {
		report.Header.CourseTitle = course.Title
		report.Header.Instructor = course.Instructor
		report.Header.StartDate = course.StartDate
		report.Header.EndDate = course.EndDate
	}

	if survey.AISummary != "" {
		report.Analysis = &ReportAnalysis{
			Summary:         survey.AISummary,
			Insights:        decodeStringList(survey.AIInsights),
			Recommendations: decodeStringList(survey.AIRecommendations),
			AnalyzedAt:      survey.AnalyzedAt,
		}
	}

	for _, qs := range stats.Questions {
		rq := ReportQuestion{QuestionStats: qs}
		if qs.Type == model.QuestionChoice {
			for score := 1; score <= stats.ScaleType; score++ {
				rq.Bars = append(rq.Bars, DistributionBar{
					Score: score,
					Count: qs.Distribution[score],
					Ratio: qs.Percentages[score],
				})
			}
		}
		report.Questions = append(report.Questions, rq)

		if qs.Type == model.QuestionText && len(qs.Texts) > 0 {
			report.TextAnswers = append(report.TextAnswers, TextSection{
				QuestionID: qs.QuestionID,
				Content:    qs.Content,
				Texts:      qs.Texts,
			})
		}
	}

	// 익명 여부는 신원 노출만 가른다. 서술형 답변은 항상 싣고,
	// 응답자 명단은 기명 설문에서만 노출한다.
	if !survey.IsAnonymous {
		responses, err := s.store.ListResponses(surveyID)
		if err != nil {
			return nil, err
		}
		for _, resp := range responses {
			if resp.RespondentName != "" {
				report.Respondents = append(report.Respondents, resp.RespondentName)
			}
		}
	}

	return report, nil
}

func decodeStringList(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
