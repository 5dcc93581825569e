package controllers

import (
	"sazonpos/pkg/resp"
	"sazonpos/services"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	reportService *services.ReportService
}

func NewReportController(service *services.ReportService) *ReportController {
	return &ReportController{reportService: service}
}

// GET /api/reportes?fechaInicio=2024-01-01&fechaFin=2024-01-31
func (rc *ReportController) Summary(c *gin.Context) {
	report, err := rc.reportService.Summary(c.Request.Context(), c.Query("fechaInicio"), c.Query("fechaFin"))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, report)
}

// GET /api/reportes/historial
func (rc *ReportController) History(c *gin.Context) {
	rows, err := rc.reportService.History(c.Request.Context())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, rows)
}

// POST /api/ventas/reset
func (rc *ReportController) ResetSales(c *gin.Context) {
	if err := rc.reportService.ResetSales(c.Request.Context()); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "sales history reset"})
}

// GET /api/dashboard
func (rc *ReportController) Dashboard(c *gin.Context) {
	d, err := rc.reportService.Dashboard(c.Request.Context())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, d)
}
