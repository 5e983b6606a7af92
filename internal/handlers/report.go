package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskdesk/taskdesk-api/internal/access"
	"github.com/taskdesk/taskdesk-api/internal/report"
	"github.com/taskdesk/taskdesk-api/internal/services"
)

// ReportHandler serves spreadsheet exports.
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// ExportTasks streams the task report as an xlsx attachment.
func (h *ReportHandler) ExportTasks(c *gin.Context) {
	h.export(c, "tasks_report.xlsx", "export tasks", h.reportService.ExportTasks)
}

// ExportUsers streams the user report as an xlsx attachment.
func (h *ReportHandler) ExportUsers(c *gin.Context) {
	h.export(c, "users_report.xlsx", "export users", h.reportService.ExportUsers)
}

func (h *ReportHandler) export(c *gin.Context, filename, op string, write func(access.Caller, io.Writer) error) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := write(caller, &buf); err != nil {
		respondUserError(c, op, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, report.ContentType, buf.Bytes())
}
