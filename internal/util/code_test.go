package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSurveyCode(t *testing.T) {
	code := GenerateSurveyCode(6)
	assert.Len(t, code, 6)
	for _, c := range code {
		assert.True(t, strings.ContainsRune(codeAlphabet, c), "unexpected char %q", c)
	}
}

func TestGenerateSurveyCodeDefaultLength(t *testing.T) {
	assert.Len(t, GenerateSurveyCode(0), 6)
	assert.Len(t, GenerateSurveyCode(-3), 6)
}

func TestGenerateSurveyCodeExcludesAmbiguousChars(t *testing.T) {
	for _, c := range "0O1IL" {
		assert.False(t, strings.ContainsRune(codeAlphabet, c))
	}
}
