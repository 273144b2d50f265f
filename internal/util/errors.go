package util

import "errors"

var (
	// NotFound
	ErrUserNotFound     = errors.New("사용자를 찾을 수 없습니다")
	ErrCourseNotFound   = errors.New("과정을 찾을 수 없습니다")
	ErrSurveyNotFound   = errors.New("설문을 찾을 수 없습니다")
	ErrQuestionNotFound = errors.New("문항을 찾을 수 없습니다")

	// InvalidState
	ErrSurveyHasNoQuestions = errors.New("문항이 없는 설문은 시작할 수 없습니다")
	ErrInvalidTransition    = errors.New("현재 상태에서는 허용되지 않는 작업입니다")
	ErrSurveyNotActive      = errors.New("진행 중인 설문이 아닙니다")
	ErrSurveyNotStarted     = errors.New("설문 응답 기간이 아직 시작되지 않았습니다")
	ErrSurveyExpired        = errors.New("설문 응답 기간이 종료되었습니다")
	ErrAlreadySubmitted     = errors.New("이미 설문에 참여했습니다")

	// Validation
	ErrEmailRegistered = errors.New("이미 등록된 이메일입니다")
	ErrNoResponses     = errors.New("분석할 응답이 없습니다")

	// ExternalService / Unconfigured
	ErrAIFailed        = errors.New("AI 분석에 실패했습니다")
	ErrAIParseFailed   = errors.New("AI 응답 파싱에 실패했습니다")
	ErrAINotConfigured = errors.New("AI 서비스가 설정되지 않았습니다")
)
