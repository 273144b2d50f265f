package controller

import (
	"hrd_survey_backend/internal/service"
	"hrd_survey_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResponseController struct {
	Service *service.ResponseService
}

func NewResponseController(svc *service.ResponseService) *ResponseController {
	return &ResponseController{Service: svc}
}

// @Summary 설문 응답 제출
// @Description 공개 코드로 응답을 제출한다. 같은 세션의 재제출은 거부된다.
// @Tags 공개
// @Accept json
// @Produce json
// @Param code path string true "설문 코드"
// @Param body body service.SubmitRequest true "응답 내용"
// @Success 201 {object} util.Response
// @Router /api/public/surveys/{code}/responses [post]
func (c *ResponseController) Submit(ctx *gin.Context) {
	code := ctx.Param("code")

	var req service.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	response, err := c.Service.Submit(ctx.Request.Context(), code, req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"responseId": response.ID})
}

// @Summary 설문 응답 목록
// @Tags 응답
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "설문 ID"
// @Success 200 {object} util.Response
// @Router /api/surveys/{id}/responses [get]
func (c *ResponseController) ListBySurvey(ctx *gin.Context) {
	surveyID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	responses, err := c.Service.ListBySurvey(surveyID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, responses)
}
