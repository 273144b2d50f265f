package service

import (
	"testing"

	"hrd_survey_backend/internal/model"
	"hrd_survey_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGeneratedQuestions(t *testing.T) {
	raw := "생성된 문항입니다:\n" + `{
		"questions": [
			{"type": "choice", "category": "overall", "content": "전반적으로 만족하셨나요?", "required": true},
			{"type": "choice", "category": "instructor", "content": "강사의 전달력은 어땠나요?"},
			{"type": "text", "category": "other", "content": "개선할 점을 적어주세요", "required": false}
		]
	}`

	out, err := parseGeneratedQuestions(raw)
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, model.QuestionChoice, out[0].Type)
	assert.Equal(t, model.CategoryOverall, out[0].Category)
	require.NotNil(t, out[0].IsRequired)
	assert.True(t, *out[0].IsRequired)

	assert.Nil(t, out[1].IsRequired)
	assert.Equal(t, model.QuestionText, out[2].Type)
}

func TestParseGeneratedQuestionsFiltersInvalid(t *testing.T) {
	raw := `{
		"questions": [
			{"type": "rating", "category": "overall", "content": "잘못된 유형"},
			{"type": "choice", "category": "snacks", "content": "카테고리가 이상한 문항"},
			{"type": "choice", "category": "content", "content": "   "},
			{"type": "choice", "category": "content", "content": "정상 문항"}
		]
	}`

	out, err := parseGeneratedQuestions(raw)
	require.NoError(t, err)
	require.Len(t, out, 2)

	// 모르는 카테고리는 기타로 바꾸고, 모르는 유형과 빈 내용은 버린다
	assert.Equal(t, model.CategoryOther, out[0].Category)
	assert.Equal(t, "카테고리가 이상한 문항", out[0].Content)
	assert.Equal(t, model.CategoryContent, out[1].Category)
}

func TestParseGeneratedQuestionsAllInvalid(t *testing.T) {
	_, err := parseGeneratedQuestions(`{"questions": [{"type": "rating", "content": "x"}]}`)
	assert.ErrorIs(t, err, util.ErrAIParseFailed)

	_, err = parseGeneratedQuestions("JSON이 아닌 응답")
	assert.ErrorIs(t, err, util.ErrAIParseFailed)
}
