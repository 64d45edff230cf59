package intent

import (
	"regexp"
	"strings"
)

// Category is the coarse intent of a user utterance.
type Category string

const (
	CategoryAnalysis    Category = "analysis"
	CategoryEmployee    Category = "employee_search"
	CategoryAnnualLeave Category = "annual_leave"
	CategoryDepartment  Category = "department_info"
	CategoryGeneral     Category = "general_inquiry"
)

// Result is the classifier output. Entities preserve match order and
// duplicates; both lists may be empty.
type Result struct {
	Category    Category
	Names       []string
	Departments []string
}

// Entities returns names and departments merged, matching the order the
// extraction passes produce them.
func (r Result) Entities() []string {
	out := make([]string, 0, len(r.Names)+len(r.Departments))
	out = append(out, r.Names...)
	out = append(out, r.Departments...)
	return out
}

// rule is one priority slot of the classification table. The first rule
// whose trigger set has any substring match wins.
type rule struct {
	category Category
	triggers []string
}

// rules are evaluated in order: analytical queries outrank employee lookup,
// which outranks leave lookup, which outranks department lookup.
var rules = []rule{
	{CategoryAnalysis, []string{"분석", "통계", "평균", "비율", "분포", "현황 분석", "퍼센트", "추이"}},
	{CategoryEmployee, []string{"직원", "사원", "이름", "연락처", "이메일", "사번", "연봉", "입사일"}},
	{CategoryAnnualLeave, []string{"연차", "휴가", "잔여연차", "사용한 연차", "연차 현황"}},
	{CategoryDepartment, []string{"부서", "팀", "인원", "몇 명", "구성"}},
}

var (
	// nameRe captures 2-4 consecutive Korean syllable blocks, optionally
	// followed by an honorific suffix.
	nameRe = regexp.MustCompile(`[가-힣]{2,4}(?:씨|님)?`)
	// deptRe captures syllable blocks ending in a team/division marker.
	deptRe = regexp.MustCompile(`[가-힣]+(?:팀|부)`)
)

// Classify maps an utterance to a category and extracts naive name and
// department entities. It always returns a result; an utterance matching
// no rule is general_inquiry with whatever entities the regexes found.
func Classify(utterance string) Result {
	lower := strings.ToLower(utterance)

	result := Result{Category: CategoryGeneral}
	for _, r := range rules {
		if matchesAny(lower, r.triggers) {
			result.Category = r.category
			break
		}
	}

	result.Names = nameRe.FindAllString(utterance, -1)
	result.Departments = deptRe.FindAllString(utterance, -1)
	return result
}

func matchesAny(lower string, triggers []string) bool {
	for _, t := range triggers {
		if strings.Contains(lower, strings.ToLower(t)) {
			return true
		}
	}
	return false
}
