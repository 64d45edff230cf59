package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hr-assistant/internal/app"
	"hr-assistant/internal/store"
)

type LeaveHandler struct {
	leaves       *store.LeaveStore
	leaveService *app.LeaveService
}

type LeaveActionRequest struct {
	EmployeeName   string `json:"employeeName"`
	EmployeeNumber string `json:"employeeNumber"`
	UseDate        string `json:"useDate"`
	CancelDate     string `json:"cancelDate"`
}

func NewLeaveHandler(leaves *store.LeaveStore, leaveService *app.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaves: leaves, leaveService: leaveService}
}

func (h *LeaveHandler) List(c *gin.Context) {
	records := h.leaves.All()
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"annualLeave": records,
		"count":       len(records),
	})
}

func (h *LeaveHandler) Search(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		query = c.Query("q")
	}
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "검색어가 필요합니다.",
		})
		return
	}

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	records := h.leaves.Search(query, limit)
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"annualLeave": records,
		"count":       len(records),
	})
}

func (h *LeaveHandler) ByEmployee(c *gin.Context) {
	name := c.Param("name")
	record, ok := h.leaves.ByEmployeeName(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "연차 기록을 찾을 수 없습니다.",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"annualLeave": record,
	})
}

func (h *LeaveHandler) Use(c *gin.Context) {
	var req LeaveActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badLeaveRequest(c)
		return
	}

	result, err := h.leaveService.RegisterUse(app.LeaveActionInput{
		EmployeeName:   req.EmployeeName,
		EmployeeNumber: req.EmployeeNumber,
		Date:           req.UseDate,
	})
	h.respond(c, result, err)
}

func (h *LeaveHandler) Cancel(c *gin.Context) {
	var req LeaveActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badLeaveRequest(c)
		return
	}

	result, err := h.leaveService.CancelUse(app.LeaveActionInput{
		EmployeeName:   req.EmployeeName,
		EmployeeNumber: req.EmployeeNumber,
		Date:           req.CancelDate,
	})
	h.respond(c, result, err)
}

// respond maps validation failures to 400 and everything else, including
// domain rule violations, to 200 with the result's success flag.
func (h *LeaveHandler) respond(c *gin.Context, result *app.LeaveActionResult, err error) {
	if err != nil {
		if errors.Is(err, app.ErrInvalidLeaveInput) {
			badLeaveRequest(c)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "서버 오류가 발생했습니다.",
		})
		return
	}

	payload := gin.H{
		"success": result.Success,
		"message": result.Message,
	}
	if result.Record != nil {
		payload["record"] = result.Record
	}
	c.JSON(http.StatusOK, payload)
}

func badLeaveRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   "직원 이름, 사번, 날짜(YYYY-MM-DD)가 필요합니다.",
	})
}
