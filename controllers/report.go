package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"paper-review-api/middleware"
	"paper-review-api/services"

	"github.com/gin-gonic/gin"
)

// GetPaperStats returns dashboard counters. Admin only.
func GetPaperStats(c *gin.Context) {
	stats, err := services.NewReportService(nil).Stats(c.Request.Context())
	if err != nil {
		middleware.Fail(c, services.ServerError("Server error while computing statistics.", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"stats": stats},
	})
}

// ExportPapers downloads every paper as CSV. Admin only.
func ExportPapers(c *gin.Context) {
	var buf bytes.Buffer
	if err := services.NewReportService(nil).ExportCSV(c.Request.Context(), &buf); err != nil {
		middleware.Fail(c, services.ServerError("Server error while exporting papers.", err))
		return
	}

	filename := fmt.Sprintf("papers-%s.csv", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
