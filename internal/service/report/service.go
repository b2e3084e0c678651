package report

import (
	"context"
	"fmt"
	"time"

	"github.com/Durgaram26/hrms-sub000/internal/domain/report"
)

type Service struct {
	repo report.Repository
}

func NewService(repo report.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Generate(ctx context.Context, req *report.GenerateRequest) (*report.Report, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	if end.Before(start) {
		return nil, report.ErrInvalidDateRange
	}

	summaries, err := s.repo.Summarize(ctx, start, end, req.EmployeeID, req.DepartmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize attendance: %w", err)
	}

	for i := range summaries {
		if summaries[i].PresentDays > 0 {
			avg := summaries[i].TotalHours / float64(summaries[i].PresentDays)
			summaries[i].AverageHours = float64(int64(avg*100+0.5)) / 100
		}
	}

	return &report.Report{
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Summaries:      summaries,
		TotalEmployees: len(summaries),
	}, nil
}
