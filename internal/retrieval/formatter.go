package retrieval

import (
	"fmt"
	"strings"

	"hr-assistant/internal/model"
)

// Formatting renders matched records as plain Korean text for prompt
// injection. One record gets a labeled field dump, several get one line
// each, none gets a fixed no-results string. No escaping is applied.

// FormatEmployees renders employee search results.
func FormatEmployees(employees []model.Employee) string {
	if len(employees) == 0 {
		return "검색 결과가 없습니다."
	}

	if len(employees) == 1 {
		emp := employees[0]
		return fmt.Sprintf(
			"직원 정보:\n이름: %s\n직급: %s\n부서: %s\n이메일: %s\n연락처: %s\n입사일: %s\n사번: %s\n연봉: %s원\n상태: %s",
			emp.Name, emp.Position, emp.Department, emp.Email, emp.Phone,
			emp.HireDate, emp.EmployeeNumber, emp.Salary, emp.Status,
		)
	}

	lines := make([]string, len(employees))
	for i, emp := range employees {
		lines[i] = fmt.Sprintf("%s %s (%s) - %s", emp.Name, emp.Position, emp.Department, emp.Email)
	}
	return fmt.Sprintf("검색 결과 (%d명):\n%s", len(employees), strings.Join(lines, "\n"))
}

// FormatAnnualLeave renders annual-leave search results.
func FormatAnnualLeave(records []model.AnnualLeaveRecord) string {
	if len(records) == 0 {
		return "연차 기록이 없습니다."
	}

	if len(records) == 1 {
		r := records[0]
		lastUsed := r.LastUsedDate
		if lastUsed == "" {
			lastUsed = "없음"
		}
		return fmt.Sprintf(
			"연차 현황:\n이름: %s\n부서: %s\n총 연차: %d일\n사용한 연차: %d일\n잔여 연차: %d일\n마지막 사용일: %s",
			r.EmployeeName, r.Department, r.TotalDays, r.UsedDays, r.RemainingDays, lastUsed,
		)
	}

	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = fmt.Sprintf("%s (%s): %d/%d일 사용, %d일 남음",
			r.EmployeeName, r.Department, r.UsedDays, r.TotalDays, r.RemainingDays)
	}
	return fmt.Sprintf("연차 현황 (%d명):\n%s", len(records), strings.Join(lines, "\n"))
}

// FormatDepartment renders a department roster with its leave records.
func FormatDepartment(department string, employees []model.Employee, records []model.AnnualLeaveRecord) string {
	if len(employees) == 0 {
		return fmt.Sprintf("%s 부서 정보를 찾을 수 없습니다.", department)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s 부서 정보:\n", department)
	fmt.Fprintf(&b, "총 인원: %d명\n", len(employees))
	fmt.Fprintf(&b, "연차 기록: %d건\n\n", len(records))

	b.WriteString("직원 목록:\n")
	for i, emp := range employees {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s (%s) - %s", emp.Name, emp.Position, emp.Email)
	}

	if len(records) > 0 {
		b.WriteString("\n\n연차 현황:\n")
		for i, r := range records {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "%s: %d/%d일 사용", r.EmployeeName, r.UsedDays, r.TotalDays)
		}
	}
	return b.String()
}

// FormatChunks renders corpus search results grouped by chunk type.
func FormatChunks(chunks []model.Chunk) string {
	if len(chunks) == 0 {
		return "관련 정보를 찾을 수 없습니다. 다른 키워드로 다시 시도해주세요."
	}

	var legal, employee, regulation []model.Chunk
	for _, ch := range chunks {
		switch ch.Metadata.Type {
		case model.ChunkTypeLegal:
			legal = append(legal, ch)
		case model.ChunkTypeEmployee:
			employee = append(employee, ch)
		case model.ChunkTypeRegulation:
			regulation = append(regulation, ch)
		}
	}

	var sections []string
	if len(legal) > 0 {
		parts := []string{"=== 📋 관련 법령 정보 ==="}
		for _, ch := range legal {
			parts = append(parts, fmt.Sprintf("[%s]\n%s", ch.Metadata.Title, ch.Content))
		}
		sections = append(sections, strings.Join(parts, "\n\n"))
	}
	if len(employee) > 0 {
		parts := []string{"=== 👥 관련 직원 정보 ==="}
		for _, ch := range employee {
			parts = append(parts, ch.Content)
		}
		sections = append(sections, strings.Join(parts, "\n\n"))
	}
	if len(regulation) > 0 {
		parts := []string{"=== 📜 관련 사내 규정 ==="}
		for _, ch := range regulation {
			section := fmt.Sprintf("[%s]\n%s", ch.Metadata.Title, ch.Content)
			if ch.Metadata.Context != "" {
				section += "\n" + ch.Metadata.Context
			}
			parts = append(parts, section)
		}
		sections = append(sections, strings.Join(parts, "\n\n"))
	}
	return strings.Join(sections, "\n\n")
}
