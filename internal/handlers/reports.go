package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"ayana_shop/internal/middleware"
	"ayana_shop/internal/services"
)

const recentReports = 20

type ReportHandler struct {
	view    *View
	reports *services.ReportService
}

func NewReportHandler(view *View, reports *services.ReportService) *ReportHandler {
	return &ReportHandler{view: view, reports: reports}
}

func (h *ReportHandler) Index(c *gin.Context) {
	reports, err := h.reports.Recent(c.Request.Context(), recentReports)
	if err != nil {
		h.view.Internal(c, err)
		return
	}
	h.view.HTML(c, http.StatusOK, "reports_index.html", gin.H{
		"Reports": reports,
		"Links":   h.reports.ArchiveLinks(c.Request.Context(), reports),
		"Types":   []string{services.ReportWeekly, services.ReportMonthly, services.ReportYearly},
	})
}

// 📊 Téléchargement xlsx
func (h *ReportHandler) CreateReport(c *gin.Context) {
	out, err := h.reports.Generate(c.Request.Context(), middleware.Actor(c), c.Query("type"))
	if errors.Is(err, services.ErrUnknownReportType) {
		h.view.Error(c, http.StatusBadRequest, "Unknown report type.")
		return
	}
	if err != nil {
		h.view.Internal(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+out.Filename+`"`)
	c.Header("Content-Length", strconv.Itoa(len(out.Content)))
	c.Data(http.StatusOK, services.XLSXContentType, out.Content)
}
