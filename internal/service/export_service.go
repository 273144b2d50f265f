package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"time"

	"hrd_survey_backend/internal/model"
)

type ExportService struct {
	store   SurveyDataStore
	storage *StorageService
}

func NewExportService(store SurveyDataStore, storage *StorageService) *ExportService {
	return &ExportService{store: store, storage: storage}
}

// BuildCSV 설문 응답을 문항×응답 행렬 CSV로 만든다.
// 열은 제출시각, (기명 설문이면) 응답자명, 문항 순서대로다.
func (s *ExportService) BuildCSV(surveyID uint) ([]byte, string, error) {
	survey, err := s.store.GetSurvey(surveyID)
	if err != nil {
		return nil, "", err
	}
	questions, err := s.store.ListQuestions(surveyID)
	if err != nil {
		return nil, "", err
	}
	responses, err := s.store.ListResponses(surveyID)
	if err != nil {
		return nil, "", err
	}

	sort.SliceStable(questions, func(i, j int) bool {
		if questions[i].Order != questions[j].Order {
			return questions[i].Order < questions[j].Order
		}
		return questions[i].ID < questions[j].ID
	})
	sort.SliceStable(responses, func(i, j int) bool {
		return responses[i].SubmittedAt.Before(responses[j].SubmittedAt)
	})

	var buf bytes.Buffer
	// 엑셀 한글 호환을 위한 UTF-8 BOM
	buf.WriteString("\uFEFF")
	w := csv.NewWriter(&buf)

	header := []string{"제출시각"}
	if !survey.IsAnonymous {
		header = append(header, "응답자")
	}
	for _, q := range questions {
		header = append(header, q.Content)
	}
	if err := w.Write(header); err != nil {
		return nil, "", err
	}

	for _, resp := range responses {
		byQuestion := make(map[uint]model.Answer, len(resp.Answers))
		for _, ans := range resp.Answers {
			byQuestion[ans.QuestionID] = ans
		}

		row := []string{resp.SubmittedAt.Format("2006-01-02 15:04:05")}
		if !survey.IsAnonymous {
			row = append(row, resp.RespondentName)
		}
		for _, q := range questions {
			ans, ok := byQuestion[q.ID]
			if !ok {
				row = append(row, "")
				continue
			}
			if ans.Score != nil {
				row = append(row, strconv.Itoa(*ans.Score))
			} else {
				row = append(row, ans.Text)
			}
		}
		if err := w.Write(row); err != nil {
			return nil, "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("survey_%s_%s.csv", survey.Code, time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

// Archive CSV를 만들어 설정된 저장소(MinIO 또는 로컬)에 보관하고 URL을 돌려준다.
func (s *ExportService) Archive(ctx context.Context, surveyID uint) (string, error) {
	data, filename, err := s.BuildCSV(surveyID)
	if err != nil {
		return "", err
	}
	return s.storage.Provider.Upload(ctx, filename, bytes.NewReader(data), int64(len(data)), "text/csv; charset=utf-8")
}
