package controller

import (
	"errors"
	"net/http"
	"strconv"

	"hrd_survey_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// respondError 서비스 계층의 에러를 HTTP 상태로 변환한다.
// 분류에 없는 에러는 전부 500으로 처리하고 로그를 남긴다.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrSurveyNotFound),
		errors.Is(err, util.ErrQuestionNotFound),
		errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		util.NotFound(ctx, err.Error())

	case errors.Is(err, util.ErrAlreadySubmitted):
		util.Conflict(ctx, err.Error())

	case errors.Is(err, util.ErrSurveyHasNoQuestions),
		errors.Is(err, util.ErrInvalidTransition),
		errors.Is(err, util.ErrSurveyNotActive),
		errors.Is(err, util.ErrSurveyNotStarted),
		errors.Is(err, util.ErrSurveyExpired),
		errors.Is(err, util.ErrEmailRegistered),
		errors.Is(err, util.ErrNoResponses):
		util.BadRequest(ctx, err.Error())

	case errors.Is(err, util.ErrAINotConfigured):
		util.Error(ctx, http.StatusServiceUnavailable, err.Error())

	case errors.Is(err, util.ErrAIFailed),
		errors.Is(err, util.ErrAIParseFailed):
		util.Error(ctx, http.StatusBadGateway, err.Error())

	default:
		util.LogInternalError(ctx, err)
	}
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil || id <= 0 {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func pageParams(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
