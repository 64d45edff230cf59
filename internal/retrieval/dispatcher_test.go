package retrieval

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-assistant/internal/corpus"
	"hr-assistant/internal/intent"
	"hr-assistant/internal/model"
	"hr-assistant/internal/store"
)

func newTestDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	employees := []model.Employee{
		{ID: "1", Name: "김철수", Position: "과장", Department: "개발팀", EmployeeNumber: "EMP001", Status: model.StatusActive},
		{ID: "2", Name: "이영희", Position: "대리", Department: "영업팀", EmployeeNumber: "EMP002", Status: model.StatusActive},
	}
	empStore := store.NewEmployeeStoreFromRecords(employees)
	leaveStore, err := store.NewLeaveStore(filepath.Join(t.TempDir(), "leave.json"), employees, 25)
	require.NoError(t, err)
	return NewDispatcher(empStore, leaveStore, corpus.New("", "", employees, nil))
}

func TestRetrieveEmployeeByName(t *testing.T) {
	d := newTestDispatcher(t)

	res := d.Retrieve(intent.Classify("김철수 직원 정보 알려줘"), "김철수 직원 정보 알려줘")

	assert.Equal(t, SourceEmployees, res.DataSource)
	assert.Contains(t, res.Text, "김철수")
}

func TestRetrieveLeaveByEntity(t *testing.T) {
	d := newTestDispatcher(t)

	res := d.Retrieve(intent.Classify("이영희 연차 현황 알려줘"), "이영희 연차 현황 알려줘")

	assert.Equal(t, SourceLeave, res.DataSource)
	assert.Contains(t, res.Text, "이영희")
}

func TestRetrieveLeaveWithoutEntityListsAll(t *testing.T) {
	d := newTestDispatcher(t)

	res := d.Retrieve(intent.Result{Category: intent.CategoryAnnualLeave}, "연차")

	assert.Equal(t, SourceLeave, res.DataSource)
	assert.Contains(t, res.Text, "연차 현황 (2명):")
}

func TestRetrieveDepartment(t *testing.T) {
	d := newTestDispatcher(t)

	res := d.Retrieve(intent.Classify("개발팀 인원이 몇 명이야?"), "개발팀 인원이 몇 명이야?")

	assert.Equal(t, SourceDepartment, res.DataSource)
	assert.Contains(t, res.Text, "개발팀 부서 정보:")
	assert.Contains(t, res.Text, "총 인원: 1명")
}

func TestRetrieveDepartmentUnknown(t *testing.T) {
	d := newTestDispatcher(t)

	res := d.Retrieve(intent.Classify("총무팀 인원 알려줘"), "총무팀 인원 알려줘")

	assert.Empty(t, res.Text)
	assert.Empty(t, res.DataSource)
}

func TestRetrieveAnalysis(t *testing.T) {
	d := newTestDispatcher(t)

	res := d.Retrieve(intent.Result{Category: intent.CategoryAnalysis}, "부서별 분석해줘")

	assert.Equal(t, SourceAnalytics, res.DataSource)
	assert.Contains(t, res.Text, "인사 데이터 분석 (총 2명):")
}

func TestRetrieveKnowledge(t *testing.T) {
	d := newTestDispatcher(t)

	res := d.Retrieve(intent.Result{Category: intent.CategoryGeneral}, "연차 유급휴가 기준이 뭐야")

	assert.Equal(t, SourceKnowledge, res.DataSource)
	assert.NotEmpty(t, res.Text)
}
