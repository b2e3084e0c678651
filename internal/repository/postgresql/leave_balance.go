package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Durgaram26/hrms-sub000/internal/domain/leave"
	"github.com/Durgaram26/hrms-sub000/internal/pkg/database"
)

type leaveBalanceRepository struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepository{db: db}
}

func (r *leaveBalanceRepository) GetByEmployeeTypeYear(ctx context.Context, employeeID string, leaveType leave.LeaveType, year int) (*leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type, year,
			   total_allowed, used, remaining, carry_forward,
			   created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type = $2 AND year = $3
	`

	var b leave.Balance
	err := q.QueryRow(ctx, query, employeeID, leaveType, year).Scan(
		&b.ID, &b.EmployeeID, &b.LeaveType, &b.Year,
		&b.TotalAllowed, &b.Used, &b.Remaining, &b.CarryForward,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, leave.ErrBalanceNotFound
		}
		return nil, fmt.Errorf("failed to get leave balance: %w", err)
	}

	return &b, nil
}

func (r *leaveBalanceRepository) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type, year,
			   total_allowed, used, remaining, carry_forward,
			   created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND year = $2
		ORDER BY leave_type
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}
	defer rows.Close()

	var balances []leave.Balance
	for rows.Next() {
		var b leave.Balance
		err := rows.Scan(
			&b.ID, &b.EmployeeID, &b.LeaveType, &b.Year,
			&b.TotalAllowed, &b.Used, &b.Remaining, &b.CarryForward,
			&b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave balance: %w", err)
		}
		balances = append(balances, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave balances: %w", err)
	}

	return balances, nil
}

// Upsert keeps used days intact on conflict and recomputes remaining from
// the new allowance.
func (r *leaveBalanceRepository) Upsert(ctx context.Context, balance *leave.Balance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (
			id, employee_id, leave_type, year,
			total_allowed, used, remaining, carry_forward
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (employee_id, leave_type, year) DO UPDATE
		SET total_allowed = EXCLUDED.total_allowed,
			carry_forward = EXCLUDED.carry_forward,
			remaining = EXCLUDED.total_allowed + EXCLUDED.carry_forward - leave_balances.used,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		balance.ID,
		balance.EmployeeID,
		balance.LeaveType,
		balance.Year,
		balance.TotalAllowed,
		balance.Used,
		balance.Remaining,
		balance.CarryForward,
	).Scan(&balance.ID, &balance.CreatedAt, &balance.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert leave balance: %w", err)
	}

	return nil
}

// Debit implements leave.BalanceRepository. The remaining >= amount guard in
// the WHERE clause makes the debit atomic: of two concurrent approvals that
// together exceed the balance, exactly one matches a row.
func (r *leaveBalanceRepository) Debit(ctx context.Context, employeeID string, leaveType leave.LeaveType, year int, days decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET used = used + $4,
			remaining = remaining - $4,
			updated_at = NOW()
		WHERE employee_id = $1 AND leave_type = $2 AND year = $3
		  AND remaining >= $4
	`

	result, err := q.Exec(ctx, query, employeeID, leaveType, year, days)
	if err != nil {
		return fmt.Errorf("failed to debit leave balance: %w", err)
	}

	if result.RowsAffected() == 0 {
		if _, err := r.GetByEmployeeTypeYear(ctx, employeeID, leaveType, year); err != nil {
			return err
		}
		return leave.ErrInsufficientBalance
	}

	return nil
}

func (r *leaveBalanceRepository) Credit(ctx context.Context, employeeID string, leaveType leave.LeaveType, year int, days decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET used = used - $4,
			remaining = remaining + $4,
			updated_at = NOW()
		WHERE employee_id = $1 AND leave_type = $2 AND year = $3
	`

	result, err := q.Exec(ctx, query, employeeID, leaveType, year, days)
	if err != nil {
		return fmt.Errorf("failed to credit leave balance: %w", err)
	}

	if result.RowsAffected() == 0 {
		return leave.ErrBalanceNotFound
	}

	return nil
}
