package controller

import (
	"hrd_survey_backend/internal/service"
	"hrd_survey_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Service *service.AuthService
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{Service: svc}
}

// @Summary 관리자 가입
// @Tags 인증
// @Accept json
// @Produce json
// @Param body body service.RegisterRequest true "가입 정보"
// @Success 201 {object} util.Response
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req service.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.Service.Register(req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, user)
}

// @Summary 관리자 로그인
// @Tags 인증
// @Accept json
// @Produce json
// @Param body body service.LoginRequest true "로그인 정보"
// @Success 200 {object} util.Response
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req service.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.Login(req)
	if err != nil {
		// 존재하지 않는 계정과 비밀번호 오류를 구분해서 알려주지 않는다.
		util.Error(ctx, 401, "이메일 또는 비밀번호가 올바르지 않습니다")
		return
	}

	util.Success(ctx, result)
}

// @Summary 내 정보 조회
// @Tags 인증
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.Service.Repo.FindByID(claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, user)
}
