package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/Durgaram26/hrms-sub000/internal/domain/report"
	"github.com/Durgaram26/hrms-sub000/internal/pkg/database"
)

type reportRepository struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.Repository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Summarize(ctx context.Context, start, end time.Time, employeeID, departmentID *string) ([]report.EmployeeSummary, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "WHERE a.date >= $1 AND a.date <= $2"
	args := []interface{}{start, end}
	argIdx := 3

	if employeeID != nil && *employeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *employeeID)
		argIdx++
	}
	if departmentID != nil && *departmentID != "" {
		baseWhere += fmt.Sprintf(" AND e.department_id = $%d", argIdx)
		args = append(args, *departmentID)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT a.employee_id, e.full_name,
			   COUNT(*) FILTER (WHERE a.status = 'present') AS present_days,
			   COUNT(*) FILTER (WHERE a.status = 'absent') AS absent_days,
			   COUNT(*) FILTER (WHERE a.status = 'leave') AS leave_days,
			   COALESCE(SUM(a.work_hours), 0) AS total_hours,
			   COUNT(*) FILTER (WHERE a.regularization_status = 'pending') AS pending_regularizations
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		%s
		GROUP BY a.employee_id, e.full_name
		ORDER BY e.full_name
	`, baseWhere)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize attendance: %w", err)
	}
	defer rows.Close()

	var summaries []report.EmployeeSummary
	for rows.Next() {
		var s report.EmployeeSummary
		err := rows.Scan(
			&s.EmployeeID, &s.EmployeeName,
			&s.PresentDays, &s.AbsentDays, &s.LeaveDays,
			&s.TotalHours, &s.PendingRegularizations,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate summaries: %w", err)
	}

	return summaries, nil
}
