package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "순수 JSON",
			in:   `{"summary":"ok"}`,
			want: `{"summary":"ok"}`,
		},
		{
			name: "앞뒤 산문",
			in:   `여기 결과입니다: {"summary":"ok","insights":[]} 도움이 되셨길!`,
			want: `{"summary":"ok","insights":[]}`,
		},
		{
			name: "마크다운 코드펜스",
			in:   "```json\n{\"summary\":\"ok\"}\n```",
			want: `{"summary":"ok"}`,
		},
		{
			name: "문자열 안의 중괄호",
			in:   `{"summary":"중괄호 {테스트} 포함","insights":["a"]}`,
			want: `{"summary":"중괄호 {테스트} 포함","insights":["a"]}`,
		},
		{
			name: "이스케이프된 따옴표",
			in:   `답변: {"summary":"그는 \"좋다\"고 말했다"}`,
			want: `{"summary":"그는 \"좋다\"고 말했다"}`,
		},
		{
			name: "배열",
			in:   `결과 목록: [1, 2, 3]`,
			want: `[1, 2, 3]`,
		},
		{
			name: "중첩 객체",
			in:   `{"a":{"b":{"c":1}}}`,
			want: `{"a":{"b":{"c":1}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONObject(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractJSONObjectNotFound(t *testing.T) {
	for _, in := range []string{"", "   ", "JSON이 없는 순수 산문입니다.", `{"broken":`} {
		_, err := ExtractJSONObject(in)
		assert.ErrorIs(t, err, ErrNoJSONFound, "input: %q", in)
	}
}

func TestExtractJSONTo(t *testing.T) {
	var out struct {
		Summary  string   `json:"summary"`
		Insights []string `json:"insights"`
	}
	err := ExtractJSONTo(`분석 결과: {"summary":"요약","insights":["발견 1"]}`, &out)
	require.NoError(t, err)
	assert.Equal(t, "요약", out.Summary)
	assert.Equal(t, []string{"발견 1"}, out.Insights)
}
