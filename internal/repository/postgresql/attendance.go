package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Durgaram26/hrms-sub000/internal/domain/attendance"
	"github.com/Durgaram26/hrms-sub000/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.date,
	a.clock_in, a.clock_out, a.clock_in_location, a.clock_out_location,
	a.clock_in_latitude, a.clock_in_longitude, a.clock_out_latitude, a.clock_out_longitude,
	a.is_in_geo_fence, a.status, a.work_hours,
	a.is_regularization_requested, a.regularization_reason, a.regularization_status,
	a.regularization_approved_by, a.regularization_date,
	a.created_at, a.updated_at`

func scanAttendance(row pgx.Row, att *attendance.Attendance) error {
	return row.Scan(
		&att.ID, &att.EmployeeID, &att.Date,
		&att.ClockIn, &att.ClockOut, &att.ClockInLocation, &att.ClockOutLocation,
		&att.ClockInLatitude, &att.ClockInLongitude, &att.ClockOutLatitude, &att.ClockOutLongitude,
		&att.IsInGeoFence, &att.Status, &att.WorkHours,
		&att.IsRegularizationRequested, &att.RegularizationReason, &att.RegularizationStatus,
		&att.RegularizationApprovedBy, &att.RegularizationDate,
		&att.CreatedAt, &att.UpdatedAt,
	)
}

// Create implements attendance.Repository. The unique index on
// (employee_id, date) is the authoritative duplicate guard; a violation
// surfaces as ErrAlreadyClockedIn.
func (a *attendanceRepository) Create(ctx context.Context, att *attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			id, employee_id, date,
			clock_in, clock_out, clock_in_location, clock_out_location,
			clock_in_latitude, clock_in_longitude, clock_out_latitude, clock_out_longitude,
			is_in_geo_fence, status, work_hours,
			is_regularization_requested, regularization_status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.ID,
		att.EmployeeID,
		att.Date,
		att.ClockIn,
		att.ClockOut,
		att.ClockInLocation,
		att.ClockOutLocation,
		att.ClockInLatitude,
		att.ClockInLongitude,
		att.ClockOutLatitude,
		att.ClockOutLongitude,
		att.IsInGeoFence,
		att.Status,
		att.WorkHours,
		att.IsRegularizationRequested,
		att.RegularizationStatus,
	).Scan(&att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.ErrAlreadyClockedIn
		}
		return fmt.Errorf("failed to create attendance: %w", err)
	}

	return nil
}

func (a *attendanceRepository) Update(ctx context.Context, att *attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET clock_in = $2, clock_out = $3,
			clock_in_location = $4, clock_out_location = $5,
			clock_in_latitude = $6, clock_in_longitude = $7,
			clock_out_latitude = $8, clock_out_longitude = $9,
			is_in_geo_fence = $10, status = $11, work_hours = $12,
			is_regularization_requested = $13, regularization_reason = $14,
			regularization_status = $15, regularization_approved_by = $16,
			regularization_date = $17,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		att.ID,
		att.ClockIn,
		att.ClockOut,
		att.ClockInLocation,
		att.ClockOutLocation,
		att.ClockInLatitude,
		att.ClockInLongitude,
		att.ClockOutLatitude,
		att.ClockOutLongitude,
		att.IsInGeoFence,
		att.Status,
		att.WorkHours,
		att.IsRegularizationRequested,
		att.RegularizationReason,
		att.RegularizationStatus,
		att.RegularizationApprovedBy,
		att.RegularizationDate,
	).Scan(&att.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to update attendance: %w", err)
	}

	return nil
}

func (a *attendanceRepository) GetByID(ctx context.Context, id string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances a WHERE a.id = $1`

	var att attendance.Attendance
	if err := scanAttendance(q.QueryRow(ctx, query, id), &att); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, attendance.ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}

	return &att, nil
}

func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances a WHERE a.employee_id = $1 AND a.date = $2`

	var att attendance.Attendance
	if err := scanAttendance(q.QueryRow(ctx, query, employeeID, date), &att); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, attendance.ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}

	return &att, nil
}

func (a *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, filter *attendance.HistoryFilter) ([]attendance.Attendance, int64, error) {
	f := attendance.Filter{
		EmployeeID: &employeeID,
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
		Status:     filter.Status,
		Page:       filter.Page,
		Limit:      filter.Limit,
		SortOrder:  filter.SortOrder,
	}
	return a.List(ctx, &f)
}

func (a *attendanceRepository) List(ctx context.Context, filter *attendance.Filter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.DepartmentID != nil && *filter.DepartmentID != "" {
		baseWhere += fmt.Sprintf(" AND e.department_id = $%d", argIdx)
		args = append(args, *filter.DepartmentID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
	` + baseWhere

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	sortOrder := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT %s, e.full_name
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		%s
		ORDER BY a.date %s, a.created_at %s
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, baseWhere, sortOrder, sortOrder, argIdx, argIdx+1)

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var result []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.EmployeeID, &att.Date,
			&att.ClockIn, &att.ClockOut, &att.ClockInLocation, &att.ClockOutLocation,
			&att.ClockInLatitude, &att.ClockInLongitude, &att.ClockOutLatitude, &att.ClockOutLongitude,
			&att.IsInGeoFence, &att.Status, &att.WorkHours,
			&att.IsRegularizationRequested, &att.RegularizationReason, &att.RegularizationStatus,
			&att.RegularizationApprovedBy, &att.RegularizationDate,
			&att.CreatedAt, &att.UpdatedAt,
			&att.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		result = append(result, att)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return result, total, nil
}

func (a *attendanceRepository) ListMissingForDate(ctx context.Context, employeeIDs []string, date time.Time) ([]string, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT e.id
		FROM employees e
		WHERE e.id = ANY($1)
		  AND NOT EXISTS (
			SELECT 1 FROM attendances a
			WHERE a.employee_id = e.id AND a.date = $2
		  )
	`

	rows, err := q.Query(ctx, query, employeeIDs, date)
	if err != nil {
		return nil, fmt.Errorf("failed to find missing attendance: %w", err)
	}
	defer rows.Close()

	var missing []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		missing = append(missing, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employee ids: %w", err)
	}

	return missing, nil
}
