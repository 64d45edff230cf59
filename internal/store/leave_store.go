package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"hr-assistant/internal/model"
)

var (
	// ErrAuthMismatch means no record matched the name+employeeNumber pair.
	ErrAuthMismatch = errors.New("employee name and number do not match")
	// ErrDuplicateDate means the date was already registered as used.
	ErrDuplicateDate = errors.New("leave date already used")
	// ErrNoBalance means the record has no remaining days.
	ErrNoBalance = errors.New("no remaining leave days")
	// ErrDateNotUsed means a cancellation targeted a date never used.
	ErrDateNotUsed = errors.New("leave date was not used")
)

// LeaveStore owns the annual-leave records. It is the sole writer; every
// successful mutation rewrites the full record set to the backing JSON file
// before success is reported, via a temp file and atomic rename.
type LeaveStore struct {
	mu      sync.RWMutex
	path    string
	records []model.AnnualLeaveRecord
}

// NewLeaveStore loads records from path, or provisions one record per
// active employee with defaultDays entitlement when the file is absent.
// The provisioned set is persisted immediately so restarts see it.
func NewLeaveStore(path string, employees []model.Employee, defaultDays int) (*LeaveStore, error) {
	if defaultDays <= 0 {
		defaultDays = 25
	}
	s := &LeaveStore{path: path}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err == nil {
			if err := json.Unmarshal(raw, &s.records); err != nil {
				return nil, fmt.Errorf("parse annual leave file failed: %w", err)
			}
			return s, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read annual leave file failed: %w", err)
		}
	}

	for _, emp := range employees {
		if emp.Status != model.StatusActive {
			continue
		}
		s.records = append(s.records, model.AnnualLeaveRecord{
			EmployeeID:     emp.ID,
			EmployeeName:   emp.Name,
			Department:     emp.Department,
			EmployeeNumber: emp.EmployeeNumber,
			TotalDays:      defaultDays,
			UsedDays:       0,
			RemainingDays:  defaultDays,
			UsedDates:      []string{},
		})
	}

	if s.path != "" && len(s.records) > 0 {
		if err := s.persistLocked(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// All returns a deep copy of every record in store order.
func (s *LeaveStore) All() []model.AnnualLeaveRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.AnnualLeaveRecord, len(s.records))
	for i := range s.records {
		out[i] = s.records[i].Clone()
	}
	return out
}

// Count returns the number of leave records.
func (s *LeaveStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Search matches query against employee name, department and employee id,
// preserving store order and truncating to limit.
func (s *LeaveStore) Search(query string, limit int) []model.AnnualLeaveRecord {
	if limit <= 0 {
		limit = 10
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.AnnualLeaveRecord
	for i := range s.records {
		r := &s.records[i]
		if strings.Contains(strings.ToLower(r.EmployeeName), q) ||
			strings.Contains(strings.ToLower(r.Department), q) ||
			strings.Contains(strings.ToLower(r.EmployeeID), q) {
			out = append(out, r.Clone())
			if len(out) >= limit {
				break
			}
		}
	}
	return out
}

// ByEmployeeName returns the first record whose name contains name
// (case-insensitive), or false.
func (s *LeaveStore) ByEmployeeName(name string) (model.AnnualLeaveRecord, bool) {
	q := strings.ToLower(name)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.records {
		if strings.Contains(strings.ToLower(s.records[i].EmployeeName), q) {
			return s.records[i].Clone(), true
		}
	}
	return model.AnnualLeaveRecord{}, false
}

// ByEmployeeID returns the record with the exact employee id, or false.
func (s *LeaveStore) ByEmployeeID(id string) (model.AnnualLeaveRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.records {
		if s.records[i].EmployeeID == id {
			return s.records[i].Clone(), true
		}
	}
	return model.AnnualLeaveRecord{}, false
}

// RegisterUse records one day of leave for the employee identified by the
// name+number pair. The name matches by case-insensitive containment, the
// number exactly. The mutation is rolled back if persistence fails.
func (s *LeaveStore) RegisterUse(name, employeeNumber, date string) (model.AnnualLeaveRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findLocked(name, employeeNumber)
	if idx < 0 {
		return model.AnnualLeaveRecord{}, ErrAuthMismatch
	}
	r := &s.records[idx]

	if r.HasUsedDate(date) {
		return model.AnnualLeaveRecord{}, ErrDuplicateDate
	}
	if r.RemainingDays <= 0 {
		return model.AnnualLeaveRecord{}, ErrNoBalance
	}

	snapshot := r.Clone()
	r.UsedDates = append(r.UsedDates, date)
	r.UsedDays++
	r.RemainingDays--
	r.LastUsedDate = date

	if err := s.persistLocked(); err != nil {
		s.records[idx] = snapshot
		return model.AnnualLeaveRecord{}, err
	}
	return r.Clone(), nil
}

// CancelUse removes a previously used day for the authenticated employee.
// LastUsedDate is recomputed as the maximum of the remaining dates.
func (s *LeaveStore) CancelUse(name, employeeNumber, date string) (model.AnnualLeaveRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findLocked(name, employeeNumber)
	if idx < 0 {
		return model.AnnualLeaveRecord{}, ErrAuthMismatch
	}
	r := &s.records[idx]

	if !r.HasUsedDate(date) {
		return model.AnnualLeaveRecord{}, ErrDateNotUsed
	}

	snapshot := r.Clone()
	kept := r.UsedDates[:0]
	for _, d := range r.UsedDates {
		if d != date {
			kept = append(kept, d)
		}
	}
	r.UsedDates = kept
	r.UsedDays--
	r.RemainingDays++
	r.LastUsedDate = r.MaxUsedDate()

	if err := s.persistLocked(); err != nil {
		s.records[idx] = snapshot
		return model.AnnualLeaveRecord{}, err
	}
	return r.Clone(), nil
}

func (s *LeaveStore) findLocked(name, employeeNumber string) int {
	q := strings.ToLower(name)
	for i := range s.records {
		r := &s.records[i]
		if strings.Contains(strings.ToLower(r.EmployeeName), q) &&
			r.EmployeeNumber == employeeNumber {
			return i
		}
	}
	return -1
}

// persistLocked rewrites the whole record set. Write-to-temp plus rename
// keeps the on-disk file whole if the process dies mid-write.
func (s *LeaveStore) persistLocked() error {
	if s.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal annual leave records failed: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir failed: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "annual-leave-*.json")
	if err != nil {
		return fmt.Errorf("create temp leave file failed: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp leave file failed: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp leave file failed: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace annual leave file failed: %w", err)
	}
	return nil
}
