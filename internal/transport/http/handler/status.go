package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hr-assistant/internal/bootstrap"
)

type StatusHandler struct {
	app *bootstrap.App
}

func NewStatusHandler(app *bootstrap.App) *StatusHandler {
	return &StatusHandler{app: app}
}

// DatabaseStatus reports how much data the service is holding.
func (h *StatusHandler) DatabaseStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats": gin.H{
			"totalEmployees":          h.app.Employees.Count(),
			"totalAnnualLeaveRecords": h.app.Leaves.Count(),
			"totalChunks":             h.app.Corpus.Count(),
			"sources":                 h.app.Corpus.Sources(),
			"departments":             h.app.Employees.Departments(),
			"initialized":             h.app.Corpus.Count() > 0,
		},
	})
}
