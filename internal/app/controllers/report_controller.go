package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/arjun/projecthub/internal/app/services"
	"github.com/arjun/projecthub/internal/middleware"
)

// ReportController handles coordinator export endpoints
type ReportController struct {
	reportService services.IReportService
	logger        zerolog.Logger
}

// NewReportController creates a new ReportController
func NewReportController(reportService services.IReportService, logger zerolog.Logger) *ReportController {
	return &ReportController{
		reportService: reportService,
		logger:        logger,
	}
}

// GroupReport streams the group roster of the coordinator's school as a CSV
// download. An optional branch query parameter restricts the export.
func (c *ReportController) GroupReport(ctx *gin.Context) {
	branch := ctx.Query("branch")

	filename, body, err := c.reportService.GroupReportCSV(ctx, middleware.UserID(ctx), branch)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, "text/csv", body)
}
