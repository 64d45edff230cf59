package retrieval

import (
	"strings"

	"hr-assistant/internal/corpus"
	"hr-assistant/internal/intent"
	"hr-assistant/internal/model"
	"hr-assistant/internal/store"
)

// Data source labels reported back to the client.
const (
	SourceEmployees  = "직원 데이터베이스"
	SourceLeave      = "연차 데이터베이스"
	SourceDepartment = "부서 데이터베이스"
	SourceAnalytics  = "인사 데이터 분석"
	SourceKnowledge  = "사내 지식 베이스"
)

const searchLimit = 10

// Result is the retrieval block handed to the prompt composer. Empty Text
// means nothing matched and no data section should be injected.
type Result struct {
	Text       string
	DataSource string
}

// Dispatcher routes a classified utterance to the matching store queries
// and renders the result as a prompt-ready text block.
type Dispatcher struct {
	employees *store.EmployeeStore
	leaves    *store.LeaveStore
	corpus    *corpus.Corpus
}

func NewDispatcher(employees *store.EmployeeStore, leaves *store.LeaveStore, c *corpus.Corpus) *Dispatcher {
	return &Dispatcher{employees: employees, leaves: leaves, corpus: c}
}

// Retrieve selects and formats records for the classified intent. Reads
// only; leave mutations go through the store directly.
func (d *Dispatcher) Retrieve(res intent.Result, message string) Result {
	switch res.Category {
	case intent.CategoryEmployee:
		return d.retrieveEmployees(res, message)
	case intent.CategoryAnnualLeave:
		return d.retrieveLeave(res, message)
	case intent.CategoryDepartment:
		return d.retrieveDepartment(res)
	case intent.CategoryAnalysis:
		return Result{Text: Summarize(d.employees.All()), DataSource: SourceAnalytics}
	default:
		return d.retrieveKnowledge(message)
	}
}

func (d *Dispatcher) retrieveEmployees(res intent.Result, message string) Result {
	var matched []model.Employee
	seen := make(map[string]struct{})
	add := func(emps []model.Employee) {
		for _, e := range emps {
			if _, ok := seen[e.ID]; ok {
				continue
			}
			seen[e.ID] = struct{}{}
			matched = append(matched, e)
		}
	}

	for _, entity := range res.Entities() {
		add(d.employees.Search(entity, searchLimit))
	}
	if len(matched) == 0 {
		add(d.employees.Search(strings.TrimSpace(message), searchLimit))
	}
	if len(matched) > searchLimit {
		matched = matched[:searchLimit]
	}
	if len(matched) == 0 {
		return Result{}
	}
	return Result{Text: FormatEmployees(matched), DataSource: SourceEmployees}
}

func (d *Dispatcher) retrieveLeave(res intent.Result, message string) Result {
	var matched []model.AnnualLeaveRecord
	seen := make(map[string]struct{})
	add := func(records []model.AnnualLeaveRecord) {
		for _, r := range records {
			if _, ok := seen[r.EmployeeID]; ok {
				continue
			}
			seen[r.EmployeeID] = struct{}{}
			matched = append(matched, r)
		}
	}

	entities := res.Entities()
	for _, entity := range entities {
		add(d.leaves.Search(entity, searchLimit))
	}
	if len(entities) == 0 {
		// A bare leave question gets the overall status.
		records := d.leaves.All()
		if len(records) > searchLimit {
			records = records[:searchLimit]
		}
		add(records)
	}
	if len(matched) > searchLimit {
		matched = matched[:searchLimit]
	}
	if len(matched) == 0 {
		return Result{}
	}
	return Result{Text: FormatAnnualLeave(matched), DataSource: SourceLeave}
}

func (d *Dispatcher) retrieveDepartment(res intent.Result) Result {
	dept := ""
	for _, candidate := range res.Departments {
		if strings.HasSuffix(candidate, "팀") || strings.HasSuffix(candidate, "부") {
			dept = candidate
			break
		}
	}
	if dept == "" {
		return Result{}
	}

	employees := d.employees.ByDepartment(dept)
	if len(employees) == 0 {
		return Result{}
	}
	records := d.leaves.Search(dept, searchLimit)
	return Result{Text: FormatDepartment(dept, employees, records), DataSource: SourceDepartment}
}

// retrieveKnowledge searches the chunk corpus; when keyword matching finds
// nothing it falls back to the pseudo-vector ranking for broader recall.
func (d *Dispatcher) retrieveKnowledge(message string) Result {
	chunks := d.corpus.Search(message, 5)
	if len(chunks) == 0 {
		chunks = d.corpus.VectorSearch(message, 5)
	}
	if len(chunks) == 0 {
		return Result{}
	}
	return Result{Text: FormatChunks(chunks), DataSource: SourceKnowledge}
}
