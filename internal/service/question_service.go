package service

import (
	"fmt"
	"strings"

	"hrd_survey_backend/internal/model"
	"hrd_survey_backend/internal/repository"
	"hrd_survey_backend/internal/util"
	"hrd_survey_backend/pkg/logger"
	"hrd_survey_backend/pkg/monitoring"

	"go.uber.org/zap"
)

const generateSystemPrompt = "당신은 기업 교육(HRD) 만족도 설문 문항을 설계하는 전문가입니다. " +
	"요청된 JSON 형식으로만 답변하세요."

type QuestionService struct {
	Repo       *repository.QuestionRepository
	SurveyRepo *repository.SurveyRepository
	CourseRepo *repository.CourseRepository
	AI         ChatClient
}

func NewQuestionService(repo *repository.QuestionRepository, surveyRepo *repository.SurveyRepository, courseRepo *repository.CourseRepository, ai ChatClient) *QuestionService {
	return &QuestionService{Repo: repo, SurveyRepo: surveyRepo, CourseRepo: courseRepo, AI: ai}
}

type QuestionInput struct {
	Type       model.QuestionType     `json:"type" binding:"required"`
	Category   model.QuestionCategory `json:"category"`
	Content    string                 `json:"content" binding:"required"`
	IsRequired *bool                  `json:"isRequired"`
}

func (s *QuestionService) List(surveyID uint) ([]model.Question, error) {
	if _, err := s.SurveyRepo.FindByID(surveyID); err != nil {
		return nil, util.ErrSurveyNotFound
	}
	return s.Repo.ListBySurvey(surveyID)
}

// Save 문항 전체 교체 저장. 응답이 이미 쌓이는 설문의 문항을 바꾸면
// 기존 답변과 어긋나므로 draft 상태에서만 허용한다.
func (s *QuestionService) Save(surveyID uint, inputs []QuestionInput) ([]model.Question, error) {
	survey, err := s.SurveyRepo.FindByID(surveyID)
	if err != nil {
		return nil, util.ErrSurveyNotFound
	}
	if survey.Status != model.SurveyDraft {
		return nil, util.ErrInvalidTransition
	}

	questions := make([]model.Question, 0, len(inputs))
	for i, in := range inputs {
		if !model.ValidQuestionType(in.Type) {
			return nil, fmt.Errorf("%d번째 문항의 유형이 올바르지 않습니다: %s", i+1, in.Type)
		}
		category := in.Category
		if category == "" {
			category = model.CategoryOther
		}
		if !model.ValidQuestionCategory(category) {
			return nil, fmt.Errorf("%d번째 문항의 카테고리가 올바르지 않습니다: %s", i+1, in.Category)
		}
		if strings.TrimSpace(in.Content) == "" {
			return nil, fmt.Errorf("%d번째 문항의 내용이 비어 있습니다", i+1)
		}
		required := true
		if in.IsRequired != nil {
			required = *in.IsRequired
		}
		questions = append(questions, model.Question{
			SurveyID:   surveyID,
			Type:       in.Type,
			Category:   category,
			Content:    strings.TrimSpace(in.Content),
			Order:      i + 1,
			IsRequired: required,
		})
	}

	if err := s.Repo.ReplaceAll(surveyID, questions); err != nil {
		return nil, err
	}
	return s.Repo.ListBySurvey(surveyID)
}

type GenerateRequest struct {
	Count       int    `json:"count"`
	IncludeText bool   `json:"includeText"`
	Extra       string `json:"extra"`
}

// Generate 과정 메타데이터를 바탕으로 AI에게 문항 초안을 받아온다.
// 결과는 저장하지 않고 돌려주며, 관리자가 편집 후 Save로 확정한다.
func (s *QuestionService) Generate(surveyID uint, req GenerateRequest) ([]QuestionInput, error) {
	if !s.AI.IsConfigured() {
		return nil, util.ErrAINotConfigured
	}

	survey, err := s.SurveyRepo.FindByID(surveyID)
	if err != nil {
		return nil, util.ErrSurveyNotFound
	}
	course, err := s.CourseRepo.FindByID(survey.CourseID)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}

	count := req.Count
	if count <= 0 || count > 30 {
		count = 10
	}

	prompt := buildGeneratePrompt(course, survey, count, req.IncludeText, req.Extra)

	raw, err := s.AI.Chat(generateSystemPrompt, prompt)
	if err != nil {
		monitoring.AIRequestCounter.WithLabelValues("question_generate", "error").Inc()
		logger.Log.Error("AI question generation failed", zap.Uint("surveyId", surveyID), zap.Error(err))
		return nil, util.ErrAIFailed
	}

	out, err := parseGeneratedQuestions(raw)
	if err != nil {
		monitoring.AIRequestCounter.WithLabelValues("question_generate", "parse_error").Inc()
		return nil, err
	}
	monitoring.AIRequestCounter.WithLabelValues("question_generate", "ok").Inc()

	return out, nil
}

// parseGeneratedQuestions AI 응답에서 문항 초안을 추출한다. 모델이 이상한
// 유형/카테고리를 끼워넣는 경우가 있어 경계에서 걸러낸다.
func parseGeneratedQuestions(raw string) ([]QuestionInput, error) {
	var parsed struct {
		Questions []struct {
			Type     string `json:"type"`
			Category string `json:"category"`
			Content  string `json:"content"`
			Required *bool  `json:"required"`
		} `json:"questions"`
	}
	if err := util.ExtractJSONTo(raw, &parsed); err != nil {
		return nil, util.ErrAIParseFailed
	}

	out := make([]QuestionInput, 0, len(parsed.Questions))
	for _, q := range parsed.Questions {
		qt := model.QuestionType(q.Type)
		qc := model.QuestionCategory(q.Category)
		if !model.ValidQuestionType(qt) {
			continue
		}
		if !model.ValidQuestionCategory(qc) {
			qc = model.CategoryOther
		}
		if strings.TrimSpace(q.Content) == "" {
			continue
		}
		out = append(out, QuestionInput{
			Type:       qt,
			Category:   qc,
			Content:    strings.TrimSpace(q.Content),
			IsRequired: q.Required,
		})
	}
	if len(out) == 0 {
		return nil, util.ErrAIParseFailed
	}
	return out, nil
}

func buildGeneratePrompt(course *model.Course, survey *model.Survey, count int, includeText bool, extra string) string {
	var b strings.Builder

	b.WriteString("다음 교육 과정의 만족도 설문 문항을 만들어 주세요.\n\n")
	fmt.Fprintf(&b, "과정명: %s\n", course.Title)
	if course.Objectives != "" {
		fmt.Fprintf(&b, "교육 목표: %s\n", course.Objectives)
	}
	if course.Content != "" {
		fmt.Fprintf(&b, "교육 내용: %s\n", course.Content)
	}
	if course.Instructor != "" {
		fmt.Fprintf(&b, "강사: %s\n", course.Instructor)
	}
	fmt.Fprintf(&b, "\n문항 수: %d개\n", count)
	fmt.Fprintf(&b, "선택형 문항의 응답 척도: 1~%d점\n", survey.ScaleType)
	if includeText {
		b.WriteString("마지막에 주관식(text) 문항을 1~2개 포함하세요.\n")
	} else {
		b.WriteString("전부 선택형(choice) 문항으로 구성하세요.\n")
	}
	if extra != "" {
		fmt.Fprintf(&b, "추가 요청사항: %s\n", extra)
	}

	b.WriteString("\n아래 형식의 JSON 객체 하나만 출력하세요:\n")
	b.WriteString(`{"questions": [{"type": "choice|text", "category": "overall|content|instructor|facility|other", "content": "문항 내용", "required": true}]}`)

	return b.String()
}
