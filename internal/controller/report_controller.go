package controller

import (
	"hrd_survey_backend/internal/service"
	"hrd_survey_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	Report *service.ReportService
	Export *service.ExportService
}

func NewReportController(report *service.ReportService, export *service.ExportService) *ReportController {
	return &ReportController{Report: report, Export: export}
}

// @Summary 설문 리포트 문서 조회
// @Description 화면 조회와 내보내기가 함께 쓰는 리포트 문서 모델을 돌려준다.
// @Tags 리포트
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "설문 ID"
// @Success 200 {object} util.Response
// @Router /api/surveys/{id}/report [get]
func (c *ReportController) GetReport(ctx *gin.Context) {
	surveyID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	report, err := c.Report.Assemble(ctx.Request.Context(), surveyID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, report)
}

// @Summary 응답 CSV 다운로드
// @Tags 리포트
// @Produce text/csv
// @Security ApiKeyAuth
// @Param id path int true "설문 ID"
// @Success 200 {file} file
// @Router /api/surveys/{id}/export [get]
func (c *ReportController) ExportCSV(ctx *gin.Context) {
	surveyID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	data, filename, err := c.Export.BuildCSV(surveyID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(200, "text/csv; charset=utf-8", data)
}

// @Summary 응답 CSV 보관
// @Description CSV를 설정된 저장소에 업로드하고 URL을 돌려준다.
// @Tags 리포트
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "설문 ID"
// @Success 200 {object} util.Response
// @Router /api/surveys/{id}/export/archive [post]
func (c *ReportController) ArchiveExport(ctx *gin.Context) {
	surveyID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	url, err := c.Export.Archive(ctx.Request.Context(), surveyID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"url": url})
}
