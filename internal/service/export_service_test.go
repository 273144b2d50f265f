package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"hrd_survey_backend/internal/config"
	"hrd_survey_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localStorage(t *testing.T) *StorageService {
	t.Helper()
	return &StorageService{Provider: &LocalStorageProvider{
		Config: &config.StorageConfig{LocalPath: t.TempDir()},
	}}
}

func TestBuildCSV(t *testing.T) {
	earlier := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	later := time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)

	store := &stubStore{
		survey: &model.Survey{
			BaseModel:   model.BaseModel{ID: 1},
			Code:        "ABC234",
			ScaleType:   5,
			IsAnonymous: false,
		},
		questions: []model.Question{
			{BaseModel: model.BaseModel{ID: 100}, SurveyID: 1, Type: model.QuestionChoice, Category: model.CategoryOverall, Content: "만족도", Order: 1},
			{BaseModel: model.BaseModel{ID: 101}, SurveyID: 1, Type: model.QuestionText, Category: model.CategoryOther, Content: "의견", Order: 2},
		},
		responses: []model.Response{
			{
				SurveyID: 1, SessionID: "s2", RespondentName: "김철수", SubmittedAt: later,
				Answers: []model.Answer{{QuestionID: 100, Score: scorePtr(4)}},
			},
			{
				SurveyID: 1, SessionID: "s1", RespondentName: "홍길동", SubmittedAt: earlier,
				Answers: []model.Answer{
					{QuestionID: 100, Score: scorePtr(5)},
					{QuestionID: 101, Text: "좋았습니다"},
				},
			},
		},
	}

	svc := NewExportService(store, localStorage(t))

	data, filename, err := svc.BuildCSV(1)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filename, "survey_ABC234_"))
	assert.True(t, strings.HasSuffix(filename, ".csv"))

	// 엑셀 호환용 UTF-8 BOM
	require.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))

	rows, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"제출시각", "응답자", "만족도", "의견"}, rows[0])

	// 제출 시각 순으로 정렬된다
	assert.Equal(t, "홍길동", rows[1][1])
	assert.Equal(t, "5", rows[1][2])
	assert.Equal(t, "좋았습니다", rows[1][3])

	assert.Equal(t, "김철수", rows[2][1])
	assert.Equal(t, "4", rows[2][2])
	assert.Equal(t, "", rows[2][3])
}

func TestBuildCSVAnonymousOmitsNameColumn(t *testing.T) {
	store := &stubStore{
		survey: &model.Survey{
			BaseModel:   model.BaseModel{ID: 1},
			Code:        "XYZ789",
			ScaleType:   5,
			IsAnonymous: true,
		},
		questions: []model.Question{
			{BaseModel: model.BaseModel{ID: 100}, SurveyID: 1, Type: model.QuestionChoice, Category: model.CategoryOverall, Content: "만족도", Order: 1},
		},
		responses: []model.Response{
			{
				SurveyID: 1, SessionID: "s1", SubmittedAt: time.Now(),
				Answers: []model.Answer{{QuestionID: 100, Score: scorePtr(3)}},
			},
		},
	}

	svc := NewExportService(store, localStorage(t))

	data, _, err := svc.BuildCSV(1)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"제출시각", "만족도"}, rows[0])
}

func TestArchiveWritesFileAndReturnsURL(t *testing.T) {
	store := &stubStore{
		survey: &model.Survey{
			BaseModel: model.BaseModel{ID: 1},
			Code:      "QRX456",
			ScaleType: 5,
		},
	}

	svc := NewExportService(store, localStorage(t))

	url, err := svc.Archive(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/exports/survey_QRX456_"))
}
