package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/dsf-platform/advisor-api/internal/service"
	"github.com/dsf-platform/advisor-api/pkg/response"
)

// ExportHandler serves schedule downloads.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler constructs handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Export godoc
// @Summary Download the finalized schedule as CSV or PDF
// @Tags Advising
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Session ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Router /sessions/{id}/schedule/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	exported, err := h.service.Export(c.Request.Context(), c.Param("id"), c.DefaultQuery("format", service.ExportFormatCSV))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+exported.FileName+`"`)
	c.Data(200, exported.ContentType, exported.Payload)
}
