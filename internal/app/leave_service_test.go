package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-assistant/internal/model"
	"hr-assistant/internal/store"
)

func newTestLeaveService(t *testing.T) *LeaveService {
	t.Helper()
	leaves, err := store.NewLeaveStore(
		filepath.Join(t.TempDir(), "leave.json"),
		[]model.Employee{
			{ID: "1", Name: "김철수", Department: "개발팀", EmployeeNumber: "EMP001", Status: model.StatusActive},
		},
		25,
	)
	require.NoError(t, err)
	return NewLeaveService(leaves, nil)
}

func TestLeaveRegisterUseSuccess(t *testing.T) {
	svc := newTestLeaveService(t)

	result, err := svc.RegisterUse(LeaveActionInput{
		EmployeeName: "김철수", EmployeeNumber: "EMP001", Date: "2024-03-15",
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "김철수님이 2024-03-15에 연차를 사용했습니다. 남은 연차: 24일", result.Message)
	require.NotNil(t, result.Record)
	assert.Equal(t, 24, result.Record.RemainingDays)
}

func TestLeaveCancelUseSuccess(t *testing.T) {
	svc := newTestLeaveService(t)

	_, err := svc.RegisterUse(LeaveActionInput{
		EmployeeName: "김철수", EmployeeNumber: "EMP001", Date: "2024-03-15",
	})
	require.NoError(t, err)

	result, err := svc.CancelUse(LeaveActionInput{
		EmployeeName: "김철수", EmployeeNumber: "EMP001", Date: "2024-03-15",
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "김철수님이 2024-03-15 연차 사용을 취소했습니다. 남은 연차: 25일", result.Message)
}

func TestLeaveDomainFailureMessages(t *testing.T) {
	svc := newTestLeaveService(t)

	tests := []struct {
		name    string
		run     func() (*LeaveActionResult, error)
		message string
	}{
		{
			"auth mismatch",
			func() (*LeaveActionResult, error) {
				return svc.RegisterUse(LeaveActionInput{EmployeeName: "김철수", EmployeeNumber: "EMP999", Date: "2024-03-15"})
			},
			"직원 이름과 사번이 일치하지 않습니다. 본인인증을 확인해주세요.",
		},
		{
			"cancel unused date",
			func() (*LeaveActionResult, error) {
				return svc.CancelUse(LeaveActionInput{EmployeeName: "김철수", EmployeeNumber: "EMP001", Date: "2024-12-25"})
			},
			"해당 날짜에 사용한 연차가 없습니다.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.run()
			require.NoError(t, err, "domain failures are results, not errors")
			assert.False(t, result.Success)
			assert.Equal(t, tt.message, result.Message)
			assert.Nil(t, result.Record)
		})
	}
}

func TestLeaveDuplicateDateMessage(t *testing.T) {
	svc := newTestLeaveService(t)

	_, err := svc.RegisterUse(LeaveActionInput{EmployeeName: "김철수", EmployeeNumber: "EMP001", Date: "2024-03-15"})
	require.NoError(t, err)

	result, err := svc.RegisterUse(LeaveActionInput{EmployeeName: "김철수", EmployeeNumber: "EMP001", Date: "2024-03-15"})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "이미 사용한 날짜입니다.", result.Message)
}

func TestLeaveInputValidation(t *testing.T) {
	svc := newTestLeaveService(t)

	cases := []LeaveActionInput{
		{EmployeeName: "", EmployeeNumber: "EMP001", Date: "2024-03-15"},
		{EmployeeName: "김철수", EmployeeNumber: "", Date: "2024-03-15"},
		{EmployeeName: "김철수", EmployeeNumber: "EMP001", Date: ""},
		{EmployeeName: "김철수", EmployeeNumber: "EMP001", Date: "2024/03/15"},
		{EmployeeName: "김철수", EmployeeNumber: "EMP001", Date: "24-03-15"},
		{EmployeeName: "김철수", EmployeeNumber: "EMP001", Date: "2024-03-15T00:00"},
	}
	for _, input := range cases {
		_, err := svc.RegisterUse(input)
		assert.ErrorIs(t, err, ErrInvalidLeaveInput)
		_, err = svc.CancelUse(input)
		assert.ErrorIs(t, err, ErrInvalidLeaveInput)
	}
}
