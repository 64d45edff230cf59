package model

// AnnualLeaveRecord tracks annual-leave usage for one active employee.
// Invariants: UsedDays + RemainingDays == TotalDays and
// len(UsedDates) == UsedDays, at all times.
type AnnualLeaveRecord struct {
	EmployeeID     string   `json:"employeeId"`
	EmployeeName   string   `json:"employeeName"`
	Department     string   `json:"department"`
	EmployeeNumber string   `json:"employeeNumber"`
	TotalDays      int      `json:"totalDays"`
	UsedDays       int      `json:"usedDays"`
	RemainingDays  int      `json:"remainingDays"`
	UsedDates      []string `json:"usedDates"`
	LastUsedDate   string   `json:"lastUsedDate,omitempty"`
}

// HasUsedDate reports whether date is already in UsedDates.
func (r *AnnualLeaveRecord) HasUsedDate(date string) bool {
	for _, d := range r.UsedDates {
		if d == date {
			return true
		}
	}
	return false
}

// MaxUsedDate returns the lexicographically greatest used date. ISO dates
// sort the same lexically and chronologically, so this is the latest one.
func (r *AnnualLeaveRecord) MaxUsedDate() string {
	max := ""
	for _, d := range r.UsedDates {
		if d > max {
			max = d
		}
	}
	return max
}

// Clone returns a deep copy, so callers never share the UsedDates slice
// with the store's record.
func (r *AnnualLeaveRecord) Clone() AnnualLeaveRecord {
	out := *r
	out.UsedDates = make([]string, len(r.UsedDates))
	copy(out.UsedDates, r.UsedDates)
	return out
}
