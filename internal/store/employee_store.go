package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"sync"

	"hr-assistant/internal/model"
)

// Column layout of the employee master CSV dump. The file carries more
// columns than the service uses; only these indexes are read.
const (
	colID             = 0
	colName           = 1
	colPosition       = 2
	colDepartment     = 3
	colEmail          = 5
	colPhone          = 6
	colHireDate       = 7
	colEmployeeNumber = 8
	colSalary         = 13
	colStatus         = 20
	minColumns        = 21
)

// EmployeeStore holds the employee master records. Records only change on
// an explicit Reload; normal operation is read-only.
type EmployeeStore struct {
	mu        sync.RWMutex
	path      string
	employees []model.Employee
}

// NewEmployeeStore loads the CSV at path. A missing file yields an empty
// store rather than an error; rows with too few columns are skipped.
func NewEmployeeStore(path string) (*EmployeeStore, error) {
	employees, err := loadEmployeeCSV(path)
	if err != nil {
		return nil, err
	}
	return &EmployeeStore{path: path, employees: employees}, nil
}

// NewEmployeeStoreFromRecords builds a store from already-parsed records.
func NewEmployeeStoreFromRecords(employees []model.Employee) *EmployeeStore {
	return &EmployeeStore{employees: employees}
}

// Reload rereads the CSV and swaps in the new records. The old records stay
// in place when the read fails.
func (s *EmployeeStore) Reload() error {
	employees, err := loadEmployeeCSV(s.path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.employees = employees
	s.mu.Unlock()
	return nil
}

func loadEmployeeCSV(path string) ([]model.Employee, error) {
	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open employee csv failed: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read employee csv failed: %w", err)
	}

	var employees []model.Employee
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < minColumns {
			continue
		}
		employees = append(employees, model.Employee{
			ID:             strings.TrimSpace(row[colID]),
			Name:           strings.TrimSpace(row[colName]),
			Position:       strings.TrimSpace(row[colPosition]),
			Department:     strings.TrimSpace(row[colDepartment]),
			Email:          strings.TrimSpace(row[colEmail]),
			Phone:          strings.TrimSpace(row[colPhone]),
			HireDate:       strings.TrimSpace(row[colHireDate]),
			EmployeeNumber: strings.TrimSpace(row[colEmployeeNumber]),
			Salary:         strings.TrimSpace(row[colSalary]),
			Status:         strings.TrimSpace(row[colStatus]),
		})
	}
	return employees, nil
}

// All returns a copy of every employee record in store order.
func (s *EmployeeStore) All() []model.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Employee, len(s.employees))
	copy(out, s.employees)
	return out
}

// Count returns the number of loaded records.
func (s *EmployeeStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.employees)
}

// Departments returns the distinct department names in first-seen order.
func (s *EmployeeStore) Departments() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	var out []string
	for _, e := range s.employees {
		if _, ok := seen[e.Department]; ok {
			continue
		}
		seen[e.Department] = struct{}{}
		out = append(out, e.Department)
	}
	return out
}

// Search matches query against employee fields with a fixed priority:
// exact full-name match first, then partial-name containment, then
// position/department/email containment. Store order is preserved within
// each tier and the result is truncated to limit.
func (s *EmployeeStore) Search(query string, limit int) []model.Employee {
	if limit <= 0 {
		limit = 10
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var exact, partial, other []model.Employee
	for _, e := range s.employees {
		name := strings.ToLower(e.Name)
		switch {
		case name == q:
			exact = append(exact, e)
		case strings.Contains(name, q):
			partial = append(partial, e)
		case strings.Contains(strings.ToLower(e.Position), q),
			strings.Contains(strings.ToLower(e.Department), q),
			strings.Contains(strings.ToLower(e.Email), q):
			other = append(other, e)
		}
	}

	results := append(exact, partial...)
	results = append(results, other...)
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// ByDepartment returns employees whose department contains dept.
func (s *EmployeeStore) ByDepartment(dept string) []model.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Employee
	for _, e := range s.employees {
		if strings.Contains(e.Department, dept) {
			out = append(out, e)
		}
	}
	return out
}
