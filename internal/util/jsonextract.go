package util

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrNoJSONFound 응답 텍스트에서 유효한 JSON 객체를 찾지 못했을 때
var ErrNoJSONFound = errors.New("no valid JSON object found in text")

var codeFenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")

// ExtractJSONObject LLM 응답처럼 산문에 JSON이 섞여 있는 텍스트에서
// 첫 번째 완전한 JSON 객체(또는 배열)를 추출한다.
// 마크다운 코드펜스, 앞뒤 잡설이 섞인 경우를 모두 처리한다.
func ExtractJSONObject(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrNoJSONFound
	}

	cleaned := stripCodeFence(text)

	if s := matchBrackets(cleaned); s != "" && json.Valid([]byte(s)) {
		return s, nil
	}

	if c := strings.TrimSpace(cleaned); json.Valid([]byte(c)) {
		return c, nil
	}

	// 코드펜스 제거 전 원문에서 한 번 더 시도
	if s := matchBrackets(text); s != "" && json.Valid([]byte(s)) {
		return s, nil
	}

	return "", ErrNoJSONFound
}

// ExtractJSONTo 추출한 JSON을 target에 언마샬한다.
func ExtractJSONTo(text string, target interface{}) error {
	s, err := ExtractJSONObject(text)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(s), target)
}

func stripCodeFence(s string) string {
	if m := codeFenceRe.FindStringSubmatch(s); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// matchBrackets 첫 { 또는 [ 부터 괄호 짝이 맞는 지점까지 잘라낸다.
// 문자열 리터럴 내부의 괄호와 이스케이프는 건너뛴다.
func matchBrackets(s string) string {
	startObj := strings.Index(s, "{")
	startArr := strings.Index(s, "[")

	var start int
	var open, close byte
	switch {
	case startObj == -1 && startArr == -1:
		return ""
	case startArr == -1 || (startObj != -1 && startObj < startArr):
		start, open, close = startObj, '{', '}'
	default:
		start, open, close = startArr, '[', ']'
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		if c == open {
			depth++
		} else if c == close {
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
