package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Durgaram26/hrms-sub000/internal/domain/report"
)

type fakeReportRepo struct {
	summaries []report.EmployeeSummary
	gotStart  time.Time
	gotEnd    time.Time
}

func (f *fakeReportRepo) Summarize(ctx context.Context, start, end time.Time, employeeID, departmentID *string) ([]report.EmployeeSummary, error) {
	f.gotStart = start
	f.gotEnd = end
	return f.summaries, nil
}

func TestGenerateComputesAverages(t *testing.T) {
	repo := &fakeReportRepo{summaries: []report.EmployeeSummary{
		{EmployeeID: "emp-1", EmployeeName: "Asha Rao", PresentDays: 3, TotalHours: 25.0},
		{EmployeeID: "emp-2", EmployeeName: "Vikram Iyer", AbsentDays: 2},
	}}
	svc := NewService(repo)

	result, err := svc.Generate(context.Background(), &report.GenerateRequest{
		StartDate: "2025-06-01",
		EndDate:   "2025-06-30",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalEmployees)
	assert.Equal(t, 8.33, result.Summaries[0].AverageHours)
	assert.Equal(t, 0.0, result.Summaries[1].AverageHours)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), repo.gotStart)
	assert.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), repo.gotEnd)
}

func TestGenerateRejectsBackwardsRange(t *testing.T) {
	svc := NewService(&fakeReportRepo{})

	_, err := svc.Generate(context.Background(), &report.GenerateRequest{
		StartDate: "2025-06-30",
		EndDate:   "2025-06-01",
	})
	assert.ErrorIs(t, err, report.ErrInvalidDateRange)
}

func TestGenerateRequiresDates(t *testing.T) {
	svc := NewService(&fakeReportRepo{})

	_, err := svc.Generate(context.Background(), &report.GenerateRequest{})
	require.Error(t, err)
}
