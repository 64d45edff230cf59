package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyCategories(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		want      Category
	}{
		{"employee lookup", "김철수 직원 정보 알려줘", CategoryEmployee},
		{"annual leave", "제 연차가 며칠 남았나요?", CategoryAnnualLeave},
		{"department", "개발팀 인원이 몇 명이야?", CategoryDepartment},
		{"analysis", "부서별 인원 분포 분석해줘", CategoryAnalysis},
		{"general falls through", "근로기준법 제60조 내용이 뭐야?", CategoryGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.utterance).Category)
		})
	}
}

func TestClassifyPriority(t *testing.T) {
	// 분석 outranks the 직원 trigger even when both appear.
	res := Classify("직원 연봉 통계 분석 부탁해")
	assert.Equal(t, CategoryAnalysis, res.Category)

	// 직원 outranks 연차.
	res = Classify("직원별 연차 현황 알려줘")
	assert.Equal(t, CategoryEmployee, res.Category)
}

func TestClassifyEntities(t *testing.T) {
	res := Classify("개발팀 김철수님 연락처 알려줘")

	assert.Contains(t, res.Names, "김철수님")
	assert.Contains(t, res.Departments, "개발팀")
	assert.Equal(t, append(append([]string{}, res.Names...), res.Departments...), res.Entities())
}

func TestClassifyNoEntities(t *testing.T) {
	res := Classify("hello there")

	assert.Equal(t, CategoryGeneral, res.Category)
	assert.Empty(t, res.Names)
	assert.Empty(t, res.Departments)
}
