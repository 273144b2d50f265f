package controller

import (
	"hrd_survey_backend/internal/model"
	"hrd_survey_backend/internal/service"
	"hrd_survey_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type SurveyController struct {
	Service *service.SurveyService
}

func NewSurveyController(svc *service.SurveyService) *SurveyController {
	return &SurveyController{Service: svc}
}

// @Summary 설문 생성
// @Tags 설문
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SurveyRequest true "설문 정보"
// @Success 201 {object} util.Response
// @Router /api/surveys [post]
func (c *SurveyController) Create(ctx *gin.Context) {
	var req service.SurveyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	survey, err := c.Service.Create(req, claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, survey)
}

// @Summary 설문 목록
// @Tags 설문
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "페이지"
// @Param limit query int false "페이지 크기"
// @Param courseId query int false "과정 ID"
// @Param status query string false "상태 (draft/active/closed)"
// @Success 200 {object} util.Response
// @Router /api/surveys [get]
func (c *SurveyController) List(ctx *gin.Context) {
	page, limit := pageParams(ctx)

	courseID := uint(0)
	if idStr := ctx.Query("courseId"); idStr != "" {
		if id, err := strconv.Atoi(idStr); err == nil {
			courseID = uint(id)
		}
	}
	status := model.SurveyStatus(ctx.Query("status"))

	surveys, total, err := c.Service.List(page, limit, courseID, status)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  surveys,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary 설문 상세
// @Tags 설문
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "설문 ID"
// @Success 200 {object} util.Response
// @Router /api/surveys/{id} [get]
func (c *SurveyController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	survey, err := c.Service.Get(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, survey)
}

// @Summary 설문 수정
// @Tags 설문
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "설문 ID"
// @Param body body service.SurveyRequest true "설문 정보"
// @Success 200 {object} util.Response
// @Router /api/surveys/{id} [put]
func (c *SurveyController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req service.SurveyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	survey, err := c.Service.Update(id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, survey)
}

// @Summary 설문 시작
// @Description draft 설문을 active로 전환한다. 문항이 없으면 실패한다.
// @Tags 설문
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "설문 ID"
// @Success 200 {object} util.Response
// @Router /api/surveys/{id}/activate [post]
func (c *SurveyController) Activate(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	survey, err := c.Service.Activate(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, survey)
}

// @Summary 설문 종료
// @Tags 설문
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "설문 ID"
// @Success 200 {object} util.Response
// @Router /api/surveys/{id}/close [post]
func (c *SurveyController) Close(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	survey, err := c.Service.Close(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, survey)
}

// @Summary 설문 삭제
// @Tags 설문
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "설문 ID"
// @Success 200 {object} util.Response
// @Router /api/surveys/{id} [delete]
func (c *SurveyController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.Service.Delete(id); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary 응답자용 설문 조회
// @Description 공개 코드로 진행 중인 설문과 문항을 조회한다. 인증 불필요.
// @Tags 공개
// @Produce json
// @Param code path string true "설문 코드"
// @Success 200 {object} util.Response
// @Router /api/public/surveys/{code} [get]
func (c *SurveyController) GetPublic(ctx *gin.Context) {
	code := ctx.Param("code")

	survey, questions, err := c.Service.GetPublicByCode(code)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"survey": gin.H{
			"title":       survey.Title,
			"description": survey.Description,
			"code":        survey.Code,
			"scaleType":   survey.ScaleType,
			"isAnonymous": survey.IsAnonymous,
		},
		"questions": questions,
	})
}
