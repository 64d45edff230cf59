package retrieval

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"hr-assistant/internal/model"
)

// salaryBucket labels, in reporting order.
var salaryBuckets = []struct {
	label string
	min   int
	max   int // exclusive, 0 = unbounded
}{
	{"4천만원 미만", 0, 40_000_000},
	{"4천만원대~5천만원대", 40_000_000, 60_000_000},
	{"6천만원대~7천만원대", 60_000_000, 80_000_000},
	{"8천만원 이상", 80_000_000, 0},
}

// Summarize computes descriptive aggregates over the full employee set:
// counts and percentages by department, position, salary bucket and hire
// year. Bucket counting only; no statistical machinery.
func Summarize(employees []model.Employee) string {
	if len(employees) == 0 {
		return "분석할 직원 데이터가 없습니다."
	}
	total := len(employees)

	byDept := make(map[string]int)
	byPosition := make(map[string]int)
	byYear := make(map[string]int)
	bucketCounts := make([]int, len(salaryBuckets))

	for _, emp := range employees {
		byDept[emp.Department]++
		byPosition[emp.Position]++
		if len(emp.HireDate) >= 4 {
			byYear[emp.HireDate[:4]]++
		}
		if salary, ok := parseSalary(emp.Salary); ok {
			for i, b := range salaryBuckets {
				if salary >= b.min && (b.max == 0 || salary < b.max) {
					bucketCounts[i]++
					break
				}
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "인사 데이터 분석 (총 %d명):\n\n", total)

	b.WriteString("[부서별 인원]\n")
	writeCounts(&b, byDept, total)

	b.WriteString("\n[직급별 인원]\n")
	writeCounts(&b, byPosition, total)

	b.WriteString("\n[연봉 구간별 인원]\n")
	for i, bucket := range salaryBuckets {
		fmt.Fprintf(&b, "%s: %d명 (%.1f%%)\n", bucket.label, bucketCounts[i], percent(bucketCounts[i], total))
	}

	b.WriteString("\n[입사 연도별 인원]\n")
	writeCounts(&b, byYear, total)

	return strings.TrimRight(b.String(), "\n")
}

func writeCounts(b *strings.Builder, counts map[string]int, total int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "%s: %d명 (%.1f%%)\n", k, counts[k], percent(counts[k], total))
	}
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

// parseSalary reads the salary column, tolerating thousands separators and
// a trailing 원 suffix.
func parseSalary(raw string) (int, bool) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimSuffix(cleaned, "원")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0, false
	}
	n, err := strconv.Atoi(cleaned)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
