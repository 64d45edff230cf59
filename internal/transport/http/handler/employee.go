package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hr-assistant/internal/model"
	"hr-assistant/internal/store"
)

type EmployeeHandler struct {
	employees    *store.EmployeeStore
	maskContacts bool
}

func NewEmployeeHandler(employees *store.EmployeeStore, maskContacts bool) *EmployeeHandler {
	return &EmployeeHandler{employees: employees, maskContacts: maskContacts}
}

func (h *EmployeeHandler) List(c *gin.Context) {
	employees := h.present(h.employees.All())
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"employees": employees,
		"count":     len(employees),
	})
}

func (h *EmployeeHandler) Search(c *gin.Context) {
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

	employees := h.present(h.employees.Search(query, limit))
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"employees": employees,
		"count":     len(employees),
	})
}

func (h *EmployeeHandler) present(employees []model.Employee) []model.Employee {
	if !h.maskContacts {
		return employees
	}
	out := make([]model.Employee, len(employees))
	for i, e := range employees {
		out[i] = e.Masked()
	}
	return out
}
