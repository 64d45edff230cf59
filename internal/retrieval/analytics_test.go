package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hr-assistant/internal/model"
)

func analyticsEmployees() []model.Employee {
	return []model.Employee{
		{Name: "김철수", Position: "과장", Department: "개발팀", HireDate: "2020-01-02", Salary: "55,000,000원"},
		{Name: "이영희", Position: "대리", Department: "영업팀", HireDate: "2021-05-10", Salary: "42,000,000원"},
		{Name: "박민수", Position: "부장", Department: "개발팀", HireDate: "2015-03-01", Salary: "85,000,000원"},
		{Name: "최지은", Position: "사원", Department: "인사팀", HireDate: "2023-07-15", Salary: "38,000,000원"},
	}
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, "분석할 직원 데이터가 없습니다.", Summarize(nil))
}

func TestSummarizeSections(t *testing.T) {
	out := Summarize(analyticsEmployees())

	assert.Contains(t, out, "인사 데이터 분석 (총 4명):")
	assert.Contains(t, out, "[부서별 인원]")
	assert.Contains(t, out, "개발팀: 2명 (50.0%)")
	assert.Contains(t, out, "[직급별 인원]")
	assert.Contains(t, out, "과장: 1명 (25.0%)")
	assert.Contains(t, out, "[연봉 구간별 인원]")
	assert.Contains(t, out, "4천만원 미만: 1명 (25.0%)")
	assert.Contains(t, out, "4천만원대~5천만원대: 2명 (50.0%)")
	assert.Contains(t, out, "8천만원 이상: 1명 (25.0%)")
	assert.Contains(t, out, "[입사 연도별 인원]")
	assert.Contains(t, out, "2020: 1명 (25.0%)")
}

func TestParseSalary(t *testing.T) {
	tests := []struct {
		raw  string
		want int
		ok   bool
	}{
		{"55,000,000원", 55_000_000, true},
		{"42000000", 42_000_000, true},
		{" 38,000,000 ", 38_000_000, true},
		{"", 0, false},
		{"미공개", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseSalary(tt.raw)
		assert.Equal(t, tt.ok, ok, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func TestSummarizePercentagesSum(t *testing.T) {
	out := Summarize(analyticsEmployees())

	// The department section percentages cover everyone.
	assert.Contains(t, out, "영업팀: 1명 (25.0%)")
	assert.Contains(t, out, "인사팀: 1명 (25.0%)")
}
