package controller

import (
	"hrd_survey_backend/internal/service"
	"hrd_survey_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	Service *service.CourseService
}

func NewCourseController(svc *service.CourseService) *CourseController {
	return &CourseController{Service: svc}
}

// @Summary 과정 등록
// @Tags 과정
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CourseRequest true "과정 정보"
// @Success 201 {object} util.Response
// @Router /api/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	course, err := c.Service.Create(req, claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, course)
}

// @Summary 과정 목록
// @Tags 과정
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "페이지"
// @Param limit query int false "페이지 크기"
// @Param keyword query string false "제목 검색어"
// @Success 200 {object} util.Response
// @Router /api/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	page, limit := pageParams(ctx)
	keyword := ctx.Query("keyword")

	courses, total, err := c.Service.List(page, limit, keyword)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  courses,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary 과정 상세
// @Tags 과정
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "과정 ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.Service.Get(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, course)
}

// @Summary 과정 수정
// @Tags 과정
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "과정 ID"
// @Param body body service.CourseRequest true "과정 정보"
// @Success 200 {object} util.Response
// @Router /api/courses/{id} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.Service.Update(id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, course)
}

// @Summary 과정 삭제
// @Tags 과정
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "과정 ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
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
