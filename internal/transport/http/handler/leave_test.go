package handler

import (
	"net/http"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-assistant/internal/app"
	"hr-assistant/internal/store"
)

func newLeaveTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	leaveStore, err := store.NewLeaveStore(filepath.Join(t.TempDir(), "leave.json"), testEmployees(), 25)
	require.NoError(t, err)

	h := NewLeaveHandler(leaveStore, app.NewLeaveService(leaveStore, nil))
	r := gin.New()
	r.GET("/api/annual-leave", h.List)
	r.GET("/api/annual-leave/search", h.Search)
	r.GET("/api/annual-leave/employee/:name", h.ByEmployee)
	r.POST("/api/annual-leave/use", h.Use)
	r.POST("/api/annual-leave/cancel", h.Cancel)
	return r
}

func TestLeaveList(t *testing.T) {
	r := newLeaveTestRouter(t)

	w := performJSON(t, r, http.MethodGet, "/api/annual-leave", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["count"])
}

func TestLeaveSearchRequiresQuery(t *testing.T) {
	r := newLeaveTestRouter(t)

	w := performJSON(t, r, http.MethodGet, "/api/annual-leave/search", nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "검색어가 필요합니다.", decodeBody(t, w)["error"])
}

func TestLeaveByEmployeeNotFound(t *testing.T) {
	r := newLeaveTestRouter(t)

	w := performJSON(t, r, http.MethodGet, "/api/annual-leave/employee/none", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "연차 기록을 찾을 수 없습니다.", decodeBody(t, w)["error"])
}

func TestLeaveUseRejectsInvalidInput(t *testing.T) {
	r := newLeaveTestRouter(t)

	cases := []gin.H{
		{},
		{"employeeName": "김철수", "employeeNumber": "EMP001"},
		{"employeeName": "김철수", "employeeNumber": "EMP001", "useDate": "2024/03/15"},
		{"employeeName": "김철수", "employeeNumber": "EMP001", "useDate": "24-03-15"},
	}
	for _, body := range cases {
		w := performJSON(t, r, http.MethodPost, "/api/annual-leave/use", body)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "직원 이름, 사번, 날짜(YYYY-MM-DD)가 필요합니다.", decodeBody(t, w)["error"])
	}
}

func TestLeaveUseAndCancel(t *testing.T) {
	r := newLeaveTestRouter(t)

	w := performJSON(t, r, http.MethodPost, "/api/annual-leave/use", gin.H{
		"employeeName": "김철수", "employeeNumber": "EMP001", "useDate": "2024-03-15",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "김철수님이 2024-03-15에 연차를 사용했습니다. 남은 연차: 24일", body["message"])
	assert.NotNil(t, body["record"])

	w = performJSON(t, r, http.MethodPost, "/api/annual-leave/cancel", gin.H{
		"employeeName": "김철수", "employeeNumber": "EMP001", "cancelDate": "2024-03-15",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "김철수님이 2024-03-15 연차 사용을 취소했습니다. 남은 연차: 25일", body["message"])
}

func TestLeaveUseDuplicateDate(t *testing.T) {
	r := newLeaveTestRouter(t)

	payload := gin.H{"employeeName": "김철수", "employeeNumber": "EMP001", "useDate": "2024-03-15"}
	w := performJSON(t, r, http.MethodPost, "/api/annual-leave/use", payload)
	require.Equal(t, http.StatusOK, w.Code)

	w = performJSON(t, r, http.MethodPost, "/api/annual-leave/use", payload)

	require.Equal(t, http.StatusOK, w.Code, "domain failures still return 200")
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "이미 사용한 날짜입니다.", body["message"])
}

func TestLeaveCancelDateNotUsed(t *testing.T) {
	r := newLeaveTestRouter(t)

	w := performJSON(t, r, http.MethodPost, "/api/annual-leave/cancel", gin.H{
		"employeeName": "김철수", "employeeNumber": "EMP001", "cancelDate": "2024-03-15",
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "해당 날짜에 사용한 연차가 없습니다.", body["message"])
}
