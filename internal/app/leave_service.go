package app

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"hr-assistant/internal/model"
	"hr-assistant/internal/store"
)

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ErrInvalidLeaveInput marks malformed leave requests (missing fields or a
// date that is not YYYY-MM-DD). The handler turns this into a 400.
var ErrInvalidLeaveInput = errors.New("invalid leave request input")

// LeaveService wraps the leave store with the user-facing Korean result
// messages. Domain rule violations are reported as unsuccessful results,
// not errors; only malformed input and persistence failures return an error.
type LeaveService struct {
	leaves *store.LeaveStore
	logger *zap.Logger
}

type LeaveActionInput struct {
	EmployeeName   string
	EmployeeNumber string
	Date           string
}

type LeaveActionResult struct {
	Success bool                     `json:"success"`
	Message string                   `json:"message"`
	Record  *model.AnnualLeaveRecord `json:"record,omitempty"`
}

func NewLeaveService(leaves *store.LeaveStore, logger *zap.Logger) *LeaveService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeaveService{leaves: leaves, logger: logger}
}

// RegisterUse records one day of leave for the authenticated employee.
func (s *LeaveService) RegisterUse(input LeaveActionInput) (*LeaveActionResult, error) {
	name, number, date, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	record, err := s.leaves.RegisterUse(name, number, date)
	if err != nil {
		return s.domainResult(err, "register", name, date)
	}
	return &LeaveActionResult{
		Success: true,
		Message: fmt.Sprintf("%s님이 %s에 연차를 사용했습니다. 남은 연차: %d일", record.EmployeeName, date, record.RemainingDays),
		Record:  &record,
	}, nil
}

// CancelUse removes a previously used leave day.
func (s *LeaveService) CancelUse(input LeaveActionInput) (*LeaveActionResult, error) {
	name, number, date, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	record, err := s.leaves.CancelUse(name, number, date)
	if err != nil {
		return s.domainResult(err, "cancel", name, date)
	}
	return &LeaveActionResult{
		Success: true,
		Message: fmt.Sprintf("%s님이 %s 연차 사용을 취소했습니다. 남은 연차: %d일", record.EmployeeName, date, record.RemainingDays),
		Record:  &record,
	}, nil
}

func (s *LeaveService) validate(input LeaveActionInput) (name, number, date string, err error) {
	name = strings.TrimSpace(input.EmployeeName)
	number = strings.TrimSpace(input.EmployeeNumber)
	date = strings.TrimSpace(input.Date)
	if name == "" || number == "" || date == "" || !dateRe.MatchString(date) {
		return "", "", "", ErrInvalidLeaveInput
	}
	return name, number, date, nil
}

func (s *LeaveService) domainResult(err error, op, name, date string) (*LeaveActionResult, error) {
	var msg string
	switch {
	case errors.Is(err, store.ErrAuthMismatch):
		msg = "직원 이름과 사번이 일치하지 않습니다. 본인인증을 확인해주세요."
	case errors.Is(err, store.ErrDuplicateDate):
		msg = "이미 사용한 날짜입니다."
	case errors.Is(err, store.ErrNoBalance):
		msg = "사용 가능한 연차가 없습니다."
	case errors.Is(err, store.ErrDateNotUsed):
		msg = "해당 날짜에 사용한 연차가 없습니다."
	default:
		s.logger.Error("leave mutation failed",
			zap.String("op", op), zap.String("employee", name),
			zap.String("date", date), zap.Error(err))
		return nil, err
	}
	return &LeaveActionResult{Success: false, Message: msg}, nil
}
