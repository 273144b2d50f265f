package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"hrd_survey_backend/internal/model"
	"hrd_survey_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const statsCacheTTL = 60 * time.Second

// QuestionStats 한 문항의 기술통계. 선택형은 수치 필드가,
// 서술형은 Texts만 채워진다.
type QuestionStats struct {
	QuestionID   uint                   `json:"questionId"`
	Content      string                 `json:"content"`
	Type         model.QuestionType     `json:"type"`
	Category     model.QuestionCategory `json:"category"`
	AnswerCount  int                    `json:"answerCount"`
	Average      float64                `json:"average"`
	Median       float64                `json:"median"`
	Mode         int                    `json:"mode"`
	StdDeviation float64                `json:"stdDeviation"`
	Distribution map[int]int            `json:"distribution,omitempty"`
	Percentages  map[int]float64        `json:"percentages,omitempty"`
	Texts        []string               `json:"texts,omitempty"`
}

// CategoryStats 같은 카테고리 문항들의 점수를 전부 합친 풀에 대한 통계.
// 문항별 평균의 평균이 아니다.
type CategoryStats struct {
	Category      model.QuestionCategory `json:"category"`
	QuestionCount int                    `json:"questionCount"`
	ResponseCount int                    `json:"responseCount"`
	Average       float64                `json:"average"`
	StdDeviation  float64                `json:"stdDeviation"`
}

// SurveyStats 설문 전체 집계 결과
type SurveyStats struct {
	SurveyID            uint            `json:"surveyId"`
	ScaleType           int             `json:"scaleType"`
	RespondentCount     int             `json:"respondentCount"`
	ResponseRate        int             `json:"responseRate"`
	OverallAverage      float64         `json:"overallAverage"`
	OverallStdDeviation float64         `json:"overallStdDeviation"`
	Categories          []CategoryStats `json:"categories"`
	Questions           []QuestionStats `json:"questions"`
}

type StatsService struct {
	store SurveyDataStore
	rdb   *redis.Client
}

func NewStatsService(store SurveyDataStore, rdb *redis.Client) *StatsService {
	return &StatsService{store: store, rdb: rdb}
}

// Aggregate 설문 하나의 통계를 계산한다. Redis에 짧게 캐시하며,
// 입력이 같으면 결과도 같은 순수 계산이라 캐시 일관성 부담이 없다.
func (s *StatsService) Aggregate(ctx context.Context, surveyID uint) (*SurveyStats, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, statsCacheKey(surveyID)).Result(); err == nil {
			var stats SurveyStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	stats, err := s.compute(surveyID)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := s.rdb.Set(ctx, statsCacheKey(surveyID), data, statsCacheTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache survey stats", zap.Uint("surveyId", surveyID), zap.Error(err))
			}
		}
	}

	return stats, nil
}

// InvalidateCache 새 응답이 제출되면 캐시를 지운다.
func (s *StatsService) InvalidateCache(ctx context.Context, surveyID uint) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, statsCacheKey(surveyID)).Err(); err != nil {
		logger.Log.Warn("failed to invalidate stats cache", zap.Uint("surveyId", surveyID), zap.Error(err))
	}
}

func statsCacheKey(surveyID uint) string {
	return fmt.Sprintf("survey:stats:%d", surveyID)
}

func (s *StatsService) compute(surveyID uint) (*SurveyStats, error) {
	survey, err := s.store.GetSurvey(surveyID)
	if err != nil {
		return nil, err
	}

	questions, err := s.store.ListQuestions(surveyID)
	if err != nil {
		return nil, err
	}
	responses, err := s.store.ListResponses(surveyID)
	if err != nil {
		return nil, err
	}

	var course *model.Course
	if survey.CourseID > 0 {
		course, err = s.store.GetCourse(survey.CourseID)
		if err != nil {
			return nil, err
		}
	}

	scaleMax := survey.ScaleType
	if scaleMax <= 0 {
		scaleMax = 5
	}

	// 저장소가 정렬을 보장하지 않으므로 여기서 표시 순서를 고정한다.
	sort.SliceStable(questions, func(i, j int) bool {
		if questions[i].Order != questions[j].Order {
			return questions[i].Order < questions[j].Order
		}
		return questions[i].ID < questions[j].ID
	})

	// 문항별 답변 묶기
	scoresByQuestion := make(map[uint][]int, len(questions))
	textsByQuestion := make(map[uint][]string, len(questions))
	for _, resp := range responses {
		for _, ans := range resp.Answers {
			if ans.Score != nil {
				scoresByQuestion[ans.QuestionID] = append(scoresByQuestion[ans.QuestionID], *ans.Score)
			} else if ans.Text != "" {
				textsByQuestion[ans.QuestionID] = append(textsByQuestion[ans.QuestionID], ans.Text)
			}
		}
	}

	stats := &SurveyStats{
		SurveyID:        surveyID,
		ScaleType:       scaleMax,
		RespondentCount: len(responses),
	}

	pooledByCategory := make(map[model.QuestionCategory][]int)
	questionCountByCategory := make(map[model.QuestionCategory]int)
	var pooledAll []int

	for _, q := range questions {
		qs := QuestionStats{
			QuestionID: q.ID,
			Content:    q.Content,
			Type:       q.Type,
			Category:   q.Category,
		}

		switch q.Type {
		case model.QuestionChoice:
			scores := scoresByQuestion[q.ID]
			qs.AnswerCount = len(scores)
			qs.Distribution, qs.Percentages = distribution(scores, scaleMax)
			if len(scores) > 0 {
				qs.Average = round2(mean(scores))
				qs.Median = round2(median(scores))
				qs.Mode = mode(scores)
				qs.StdDeviation = round2(stdDeviation(scores))
			}
			pooledByCategory[q.Category] = append(pooledByCategory[q.Category], scores...)
			questionCountByCategory[q.Category]++
			pooledAll = append(pooledAll, scores...)
		case model.QuestionText:
			qs.Texts = textsByQuestion[q.ID]
			qs.AnswerCount = len(qs.Texts)
		}

		stats.Questions = append(stats.Questions, qs)
	}

	for _, cat := range model.CategoryOrder {
		count, ok := questionCountByCategory[cat]
		if !ok {
			continue
		}
		pooled := pooledByCategory[cat]
		cs := CategoryStats{
			Category:      cat,
			QuestionCount: count,
			ResponseCount: len(pooled),
		}
		if len(pooled) > 0 {
			cs.Average = round2(mean(pooled))
			cs.StdDeviation = round2(stdDeviation(pooled))
		}
		stats.Categories = append(stats.Categories, cs)
	}

	if len(pooledAll) > 0 {
		stats.OverallAverage = round2(mean(pooledAll))
		stats.OverallStdDeviation = round2(stdDeviation(pooledAll))
	}

	if course != nil && course.TargetParticipants > 0 {
		rate := float64(stats.RespondentCount) / float64(course.TargetParticipants) * 100
		// 목표 인원보다 많이 응답하면 100을 넘을 수 있다.
		stats.ResponseRate = int(math.Round(rate))
	}

	return stats, nil
}

func mean(scores []int) float64 {
	sum := 0
	for _, v := range scores {
		sum += v
	}
	return float64(sum) / float64(len(scores))
}

func median(scores []int) float64 {
	sorted := make([]int, len(scores))
	copy(sorted, scores)
	sort.Ints(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return float64(sorted[n/2-1]+sorted[n/2]) / 2
}

// mode 최빈값. 빈도가 같으면 낮은 점수를 택해 결과를 결정적으로 만든다.
func mode(scores []int) int {
	freq := make(map[int]int, len(scores))
	for _, v := range scores {
		freq[v]++
	}
	best, bestCount := 0, 0
	for v, c := range freq {
		if c > bestCount || (c == bestCount && v < best) {
			best, bestCount = v, c
		}
	}
	return best
}

// stdDeviation 모표준편차 (N으로 나눔)
func stdDeviation(scores []int) float64 {
	m := mean(scores)
	var sum float64
	for _, v := range scores {
		d := float64(v) - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(scores)))
}

// distribution 1..scaleMax 모든 점수 칸을 0으로 채운 분포와 백분율
func distribution(scores []int, scaleMax int) (map[int]int, map[int]float64) {
	dist := make(map[int]int, scaleMax)
	pct := make(map[int]float64, scaleMax)
	for i := 1; i <= scaleMax; i++ {
		dist[i] = 0
		pct[i] = 0
	}
	for _, v := range scores {
		if v >= 1 && v <= scaleMax {
			dist[v]++
		}
	}
	if len(scores) > 0 {
		for i := 1; i <= scaleMax; i++ {
			pct[i] = round1(float64(dist[i]) / float64(len(scores)) * 100)
		}
	}
	return dist, pct
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
