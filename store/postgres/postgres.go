/*
Package postgres provides the PostgreSQL-backed engine.Storage implementation.

PURPOSE:
  Shared-database persistence for multi-instance deployments. Mirrors the
  store/sqlite schema in Postgres dialect: NUMERIC for day balances and
  money, DATE for calendar days, TIMESTAMPTZ for instants.

PRECISION:
  NUMERIC columns are selected with ::text casts and parsed with
  shopspring/decimal, so values round-trip without float conversion.
  Parameters are sent as strings and coerced by Postgres.

MIGRATION:
  Schema is auto-migrated on New(). For production, use a versioned
  migration tool instead.

SEE ALSO:
  - engine/storage.go: interface definition
  - store/sqlite: single-node implementation with the same semantics
*/
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/warp/hr-engine/engine"
)

// Store implements engine.TxStorage over a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to databaseURL and migrates the schema.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &Store{pool: pool}
	if err := store.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id BIGSERIAL PRIMARY KEY,
		employee_number TEXT NOT NULL UNIQUE,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL,
		department TEXT NOT NULL DEFAULT '',
		position TEXT NOT NULL DEFAULT '',
		start_date DATE NOT NULL,
		salary NUMERIC NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE IF NOT EXISTS leave_balances (
		id BIGSERIAL PRIMARY KEY,
		employee_id BIGINT NOT NULL REFERENCES employees(id),
		year INT NOT NULL,
		casual_leave_balance NUMERIC NOT NULL DEFAULT 0,
		vacation_leave_balance NUMERIC NOT NULL DEFAULT 0,
		last_accrual_date DATE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		UNIQUE(employee_id, year)
	);

	CREATE TABLE IF NOT EXISTS leave_accruals (
		id BIGSERIAL PRIMARY KEY,
		employee_id BIGINT NOT NULL REFERENCES employees(id),
		accrual_type TEXT NOT NULL,
		amount NUMERIC NOT NULL,
		accrual_date DATE NOT NULL,
		reason TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_leave_accruals_employee
		ON leave_accruals(employee_id);

	CREATE TABLE IF NOT EXISTS time_off_requests (
		id BIGSERIAL PRIMARY KEY,
		employee_id BIGINT NOT NULL REFERENCES employees(id),
		leave_type TEXT NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		days NUMERIC NOT NULL,
		reason TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		requires_approval BOOLEAN NOT NULL DEFAULT FALSE,
		is_with_pay BOOLEAN NOT NULL DEFAULT TRUE,
		approver_id BIGINT,
		response_date TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_requests_employee
		ON time_off_requests(employee_id);
	CREATE INDEX IF NOT EXISTS idx_requests_status
		ON time_off_requests(status);

	CREATE TABLE IF NOT EXISTS cost_centers (
		id BIGSERIAL PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		department TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE IF NOT EXISTS timesheet_entries (
		id BIGSERIAL PRIMARY KEY,
		employee_id BIGINT NOT NULL REFERENCES employees(id),
		cost_center_id BIGINT NOT NULL DEFAULT 0,
		work_date DATE NOT NULL,
		hours_worked NUMERIC NOT NULL DEFAULT 0,
		overtime_hours NUMERIC NOT NULL DEFAULT 0,
		break_hours NUMERIC NOT NULL DEFAULT 0,
		remarks TEXT NOT NULL DEFAULT '',
		upload_batch_id TEXT NOT NULL DEFAULT '',
		is_manual_entry BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_timesheet_entries_employee_date
		ON timesheet_entries(employee_id, work_date);
	CREATE INDEX IF NOT EXISTS idx_timesheet_entries_batch
		ON timesheet_entries(upload_batch_id);

	CREATE TABLE IF NOT EXISTS timesheet_uploads (
		id BIGSERIAL PRIMARY KEY,
		batch_id TEXT NOT NULL UNIQUE,
		filename TEXT NOT NULL,
		uploaded_by TEXT NOT NULL DEFAULT '',
		total_records INT NOT NULL DEFAULT 0,
		processed_records INT NOT NULL DEFAULT 0,
		error_records INT NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'processing',
		error_details TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE IF NOT EXISTS payroll_components (
		id BIGSERIAL PRIMARY KEY,
		employee_id BIGINT NOT NULL REFERENCES employees(id),
		cost_center_id BIGINT,
		basic_salary_per_day NUMERIC NOT NULL DEFAULT 0,
		transport_allowance_per_day NUMERIC NOT NULL DEFAULT 0,
		food_allowance_per_day NUMERIC NOT NULL DEFAULT 0,
		accommodation_allowance_per_day NUMERIC NOT NULL DEFAULT 0,
		effective_from DATE NOT NULL,
		effective_to DATE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_payroll_components_employee
		ON payroll_components(employee_id, effective_from DESC);

	CREATE TABLE IF NOT EXISTS payroll_calculations (
		id BIGSERIAL PRIMARY KEY,
		employee_id BIGINT NOT NULL REFERENCES employees(id),
		payroll_period TEXT NOT NULL,
		total_days_worked NUMERIC NOT NULL DEFAULT 0,
		total_hours_worked NUMERIC NOT NULL DEFAULT 0,
		overtime_hours NUMERIC NOT NULL DEFAULT 0,
		leave_days_taken NUMERIC NOT NULL DEFAULT 0,
		basic_salary NUMERIC NOT NULL DEFAULT 0,
		transport_allowance NUMERIC NOT NULL DEFAULT 0,
		food_allowance NUMERIC NOT NULL DEFAULT 0,
		accommodation_allowance NUMERIC NOT NULL DEFAULT 0,
		overtime_pay NUMERIC NOT NULL DEFAULT 0,
		gross_salary NUMERIC NOT NULL DEFAULT 0,
		deductions NUMERIC NOT NULL DEFAULT 0,
		net_salary NUMERIC NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'draft',
		calculated_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		UNIQUE(employee_id, payroll_period)
	);
	`
	_, err := s.pool.Exec(ctx, schema)
	return err
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx so every operation
// can run inside or outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

// =============================================================================
// EMPLOYEES
// =============================================================================

const employeeColumns = `id, employee_number, first_name, last_name, email,
	department, position, start_date::text, salary::text, status, created_at, updated_at`

func (s *Store) CreateEmployee(ctx context.Context, e *engine.Employee) (*engine.Employee, error) {
	return createEmployee(ctx, s.pool, e)
}

func createEmployee(ctx context.Context, q querier, e *engine.Employee) (*engine.Employee, error) {
	row := *e
	now := time.Now().UTC()
	row.CreatedAt = now
	row.UpdatedAt = now
	if row.Status == "" {
		row.Status = engine.EmployeeActive
	}

	err := q.QueryRow(ctx, `
		INSERT INTO employees
		(employee_number, first_name, last_name, email, department, position,
		 start_date, salary, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		row.EmployeeNumber, row.FirstName, row.LastName, row.Email,
		row.Department, row.Position, row.StartDate.String(),
		row.Salary.String(), row.Status, now, now,
	).Scan(&row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert employee: %w", err)
	}
	return &row, nil
}

func (s *Store) Employee(ctx context.Context, id int64) (*engine.Employee, error) {
	return getEmployee(ctx, s.pool, id)
}

func getEmployee(ctx context.Context, q querier, id int64) (*engine.Employee, error) {
	row := q.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	e, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("employee %d: %w", id, engine.ErrNotFound)
	}
	return e, err
}

func (s *Store) Employees(ctx context.Context) ([]*engine.Employee, error) {
	return listEmployees(ctx, s.pool)
}

func listEmployees(ctx context.Context, q querier) ([]*engine.Employee, error) {
	rows, err := q.Query(ctx,
		`SELECT `+employeeColumns+` FROM employees ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var out []*engine.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanEmployee(r rowScanner) (*engine.Employee, error) {
	var (
		e                 engine.Employee
		startDate, salary string
	)
	err := r.Scan(&e.ID, &e.EmployeeNumber, &e.FirstName, &e.LastName, &e.Email,
		&e.Department, &e.Position, &startDate, &salary, &e.Status,
		&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.StartDate, _ = engine.ParseDate(startDate)
	e.Salary = mustDecimal(salary)
	return &e, nil
}

// =============================================================================
// LEAVE BALANCES AND ACCRUALS
// =============================================================================

const balanceColumns = `id, employee_id, year, casual_leave_balance::text,
	vacation_leave_balance::text, last_accrual_date::text, created_at, updated_at`

func (s *Store) LeaveBalance(ctx context.Context, employeeID int64, year int) (*engine.LeaveBalance, error) {
	return getLeaveBalance(ctx, s.pool, employeeID, year)
}

func getLeaveBalance(ctx context.Context, q querier, employeeID int64, year int) (*engine.LeaveBalance, error) {
	row := q.QueryRow(ctx, `
		SELECT `+balanceColumns+` FROM leave_balances
		WHERE employee_id = $1 AND year = $2`,
		employeeID, year)

	b, err := scanLeaveBalance(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("leave balance for employee %d year %d: %w",
			employeeID, year, engine.ErrNotFound)
	}
	return b, err
}

func scanLeaveBalance(r rowScanner) (*engine.LeaveBalance, error) {
	var (
		b                engine.LeaveBalance
		casual, vacation string
		lastAccrual      *string
	)
	err := r.Scan(&b.ID, &b.EmployeeID, &b.Year, &casual, &vacation,
		&lastAccrual, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.CasualLeaveBalance = mustDecimal(casual)
	b.VacationLeaveBalance = mustDecimal(vacation)
	if lastAccrual != nil {
		b.LastAccrualDate, _ = engine.ParseDate(*lastAccrual)
	}
	return &b, nil
}

func (s *Store) CreateLeaveBalance(ctx context.Context, b *engine.LeaveBalance) (*engine.LeaveBalance, error) {
	return createLeaveBalance(ctx, s.pool, b)
}

func createLeaveBalance(ctx context.Context, q querier, b *engine.LeaveBalance) (*engine.LeaveBalance, error) {
	row := *b
	now := time.Now().UTC()
	row.CreatedAt = now
	row.UpdatedAt = now

	var lastAccrual *string
	if !row.LastAccrualDate.IsZero() {
		s := row.LastAccrualDate.String()
		lastAccrual = &s
	}

	err := q.QueryRow(ctx, `
		INSERT INTO leave_balances
		(employee_id, year, casual_leave_balance, vacation_leave_balance,
		 last_accrual_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		row.EmployeeID, row.Year,
		row.CasualLeaveBalance.String(), row.VacationLeaveBalance.String(),
		lastAccrual, now, now,
	).Scan(&row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert leave balance: %w", err)
	}
	return &row, nil
}

func (s *Store) UpdateLeaveBalance(ctx context.Context, id int64, patch engine.LeaveBalancePatch) (*engine.LeaveBalance, error) {
	return updateLeaveBalance(ctx, s.pool, id, patch)
}

func updateLeaveBalance(ctx context.Context, q querier, id int64, patch engine.LeaveBalancePatch) (*engine.LeaveBalance, error) {
	set := "updated_at = $1"
	args := []any{time.Now().UTC()}
	if patch.CasualLeaveBalance != nil {
		args = append(args, patch.CasualLeaveBalance.String())
		set += fmt.Sprintf(", casual_leave_balance = $%d", len(args))
	}
	if patch.VacationLeaveBalance != nil {
		args = append(args, patch.VacationLeaveBalance.String())
		set += fmt.Sprintf(", vacation_leave_balance = $%d", len(args))
	}
	if patch.LastAccrualDate != nil {
		args = append(args, patch.LastAccrualDate.String())
		set += fmt.Sprintf(", last_accrual_date = $%d", len(args))
	}
	args = append(args, id)

	tag, err := q.Exec(ctx,
		fmt.Sprintf("UPDATE leave_balances SET %s WHERE id = $%d", set, len(args)),
		args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update leave balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("leave balance %d: %w", id, engine.ErrNotFound)
	}

	row := q.QueryRow(ctx,
		`SELECT `+balanceColumns+` FROM leave_balances WHERE id = $1`, id)
	return scanLeaveBalance(row)
}

func (s *Store) AppendLeaveAccrual(ctx context.Context, a *engine.LeaveAccrual) (*engine.LeaveAccrual, error) {
	return appendLeaveAccrual(ctx, s.pool, a)
}

func appendLeaveAccrual(ctx context.Context, q querier, a *engine.LeaveAccrual) (*engine.LeaveAccrual, error) {
	row := *a
	row.CreatedAt = time.Now().UTC()

	err := q.QueryRow(ctx, `
		INSERT INTO leave_accruals
		(employee_id, accrual_type, amount, accrual_date, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		row.EmployeeID, row.AccrualType, row.Amount.String(),
		row.AccrualDate.String(), row.Reason, row.CreatedAt,
	).Scan(&row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert leave accrual: %w", err)
	}
	return &row, nil
}

func (s *Store) LeaveAccrualHistory(ctx context.Context, employeeID int64) ([]*engine.LeaveAccrual, error) {
	return leaveAccrualHistory(ctx, s.pool, employeeID)
}

func leaveAccrualHistory(ctx context.Context, q querier, employeeID int64) ([]*engine.LeaveAccrual, error) {
	rows, err := q.Query(ctx, `
		SELECT id, employee_id, accrual_type, amount::text, accrual_date::text,
		       reason, created_at
		FROM leave_accruals WHERE employee_id = $1 ORDER BY id`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave accruals: %w", err)
	}
	defer rows.Close()

	var out []*engine.LeaveAccrual
	for rows.Next() {
		var (
			a                   engine.LeaveAccrual
			amount, accrualDate string
		)
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.AccrualType, &amount,
			&accrualDate, &a.Reason, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Amount = mustDecimal(amount)
		a.AccrualDate, _ = engine.ParseDate(accrualDate)
		out = append(out, &a)
	}
	return out, rows.Err()
}

// =============================================================================
// TIME-OFF REQUESTS
// =============================================================================

const requestColumns = `id, employee_id, leave_type, start_date::text,
	end_date::text, days::text, reason, status, requires_approval, is_with_pay,
	approver_id, response_date, created_at`

func (s *Store) CreateTimeOffRequest(ctx context.Context, r *engine.TimeOffRequest) (*engine.TimeOffRequest, error) {
	return createTimeOffRequest(ctx, s.pool, r)
}

func createTimeOffRequest(ctx context.Context, q querier, r *engine.TimeOffRequest) (*engine.TimeOffRequest, error) {
	row := *r
	row.CreatedAt = time.Now().UTC()

	err := q.QueryRow(ctx, `
		INSERT INTO time_off_requests
		(employee_id, leave_type, start_date, end_date, days, reason, status,
		 requires_approval, is_with_pay, approver_id, response_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`,
		row.EmployeeID, row.LeaveType, row.StartDate.String(), row.EndDate.String(),
		row.Days.String(), row.Reason, row.Status, row.RequiresApproval,
		row.IsWithPay, row.ApproverID, row.ResponseDate, row.CreatedAt,
	).Scan(&row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert time-off request: %w", err)
	}
	return &row, nil
}

func (s *Store) TimeOffRequest(ctx context.Context, id int64) (*engine.TimeOffRequest, error) {
	return getTimeOffRequest(ctx, s.pool, id)
}

func getTimeOffRequest(ctx context.Context, q querier, id int64) (*engine.TimeOffRequest, error) {
	row := q.QueryRow(ctx,
		`SELECT `+requestColumns+` FROM time_off_requests WHERE id = $1`, id)
	r, err := scanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("time-off request %d: %w", id, engine.ErrNotFound)
	}
	return r, err
}

func scanRequest(r rowScanner) (*engine.TimeOffRequest, error) {
	var (
		req                      engine.TimeOffRequest
		startDate, endDate, days string
	)
	err := r.Scan(&req.ID, &req.EmployeeID, &req.LeaveType, &startDate, &endDate,
		&days, &req.Reason, &req.Status, &req.RequiresApproval, &req.IsWithPay,
		&req.ApproverID, &req.ResponseDate, &req.CreatedAt)
	if err != nil {
		return nil, err
	}
	req.StartDate, _ = engine.ParseDate(startDate)
	req.EndDate, _ = engine.ParseDate(endDate)
	req.Days = mustDecimal(days)
	return &req, nil
}

func (s *Store) UpdateTimeOffRequest(ctx context.Context, id int64, patch engine.TimeOffRequestPatch) (*engine.TimeOffRequest, error) {
	return updateTimeOffRequest(ctx, s.pool, id, patch)
}

func updateTimeOffRequest(ctx context.Context, q querier, id int64, patch engine.TimeOffRequestPatch) (*engine.TimeOffRequest, error) {
	set := ""
	var args []any
	appendSet := func(col string, v any) {
		args = append(args, v)
		if set != "" {
			set += ", "
		}
		set += fmt.Sprintf("%s = $%d", col, len(args))
	}
	if patch.Status != nil {
		appendSet("status", *patch.Status)
	}
	if patch.ApproverID != nil {
		appendSet("approver_id", *patch.ApproverID)
	}
	if patch.ResponseDate != nil {
		appendSet("response_date", *patch.ResponseDate)
	}
	if set == "" {
		return getTimeOffRequest(ctx, q, id)
	}
	args = append(args, id)

	tag, err := q.Exec(ctx,
		fmt.Sprintf("UPDATE time_off_requests SET %s WHERE id = $%d", set, len(args)),
		args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update time-off request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("time-off request %d: %w", id, engine.ErrNotFound)
	}
	return getTimeOffRequest(ctx, q, id)
}

func (s *Store) TimeOffRequestsByEmployee(ctx context.Context, employeeID int64) ([]*engine.TimeOffRequest, error) {
	return queryRequests(ctx, s.pool,
		`SELECT `+requestColumns+` FROM time_off_requests WHERE employee_id = $1 ORDER BY id`,
		employeeID)
}

func (s *Store) PendingTimeOffRequests(ctx context.Context) ([]*engine.TimeOffRequest, error) {
	return queryRequests(ctx, s.pool,
		`SELECT `+requestColumns+` FROM time_off_requests WHERE status = $1 ORDER BY id`,
		engine.StatusPending)
}

func (s *Store) ApprovedTimeOffRequestsInRange(ctx context.Context, employeeID int64, start, end engine.Date) ([]*engine.TimeOffRequest, error) {
	return approvedRequestsInRange(ctx, s.pool, employeeID, start, end)
}

func approvedRequestsInRange(ctx context.Context, q querier, employeeID int64, start, end engine.Date) ([]*engine.TimeOffRequest, error) {
	// Strict containment: both endpoints inside the range.
	return queryRequests(ctx, q, `
		SELECT `+requestColumns+` FROM time_off_requests
		WHERE employee_id = $1 AND status = $2
		  AND start_date >= $3 AND end_date <= $4
		ORDER BY id`,
		employeeID, engine.StatusApproved, start.String(), end.String())
}

func queryRequests(ctx context.Context, q querier, query string, args ...any) ([]*engine.TimeOffRequest, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query time-off requests: %w", err)
	}
	defer rows.Close()

	var out []*engine.TimeOffRequest
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// =============================================================================
// COST CENTERS
// =============================================================================

func (s *Store) CreateCostCenter(ctx context.Context, c *engine.CostCenter) (*engine.CostCenter, error) {
	return createCostCenter(ctx, s.pool, c)
}

func createCostCenter(ctx context.Context, q querier, c *engine.CostCenter) (*engine.CostCenter, error) {
	row := *c
	row.CreatedAt = time.Now().UTC()

	err := q.QueryRow(ctx, `
		INSERT INTO cost_centers (code, name, description, department, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		row.Code, row.Name, row.Description, row.Department, row.IsActive,
		row.CreatedAt,
	).Scan(&row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert cost center: %w", err)
	}
	return &row, nil
}

func (s *Store) CostCenters(ctx context.Context) ([]*engine.CostCenter, error) {
	return queryCostCenters(ctx, s.pool,
		`SELECT id, code, name, description, department, is_active, created_at
		 FROM cost_centers ORDER BY id`)
}

func (s *Store) CostCenterByCode(ctx context.Context, code string) (*engine.CostCenter, error) {
	return costCenterByCode(ctx, s.pool, code)
}

func costCenterByCode(ctx context.Context, q querier, code string) (*engine.CostCenter, error) {
	out, err := queryCostCenters(ctx, q,
		`SELECT id, code, name, description, department, is_active, created_at
		 FROM cost_centers WHERE code = $1`, code)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("cost center %q: %w", code, engine.ErrNotFound)
	}
	return out[0], nil
}

func queryCostCenters(ctx context.Context, q querier, query string, args ...any) ([]*engine.CostCenter, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cost centers: %w", err)
	}
	defer rows.Close()

	var out []*engine.CostCenter
	for rows.Next() {
		var c engine.CostCenter
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.Description,
			&c.Department, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// =============================================================================
// TIMESHEETS
// =============================================================================

func (s *Store) CreateTimesheetEntries(ctx context.Context, entries []*engine.TimesheetEntry) ([]*engine.TimesheetEntry, error) {
	return createTimesheetEntries(ctx, s.pool, entries)
}

func createTimesheetEntries(ctx context.Context, q querier, entries []*engine.TimesheetEntry) ([]*engine.TimesheetEntry, error) {
	out := make([]*engine.TimesheetEntry, 0, len(entries))
	for _, e := range entries {
		row := *e
		row.CreatedAt = time.Now().UTC()

		err := q.QueryRow(ctx, `
			INSERT INTO timesheet_entries
			(employee_id, cost_center_id, work_date, hours_worked, overtime_hours,
			 break_hours, remarks, upload_batch_id, is_manual_entry, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id`,
			row.EmployeeID, row.CostCenterID, row.WorkDate.String(),
			row.HoursWorked.String(), row.OvertimeHours.String(), row.BreakHours.String(),
			row.Remarks, row.UploadBatchID, row.IsManualEntry, row.CreatedAt,
		).Scan(&row.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to insert timesheet entry: %w", err)
		}
		out = append(out, &row)
	}
	return out, nil
}

func (s *Store) TimesheetEntriesInRange(ctx context.Context, employeeID int64, start, end engine.Date) ([]*engine.TimesheetEntry, error) {
	return timesheetEntriesInRange(ctx, s.pool, employeeID, start, end)
}

func timesheetEntriesInRange(ctx context.Context, q querier, employeeID int64, start, end engine.Date) ([]*engine.TimesheetEntry, error) {
	rows, err := q.Query(ctx, `
		SELECT id, employee_id, cost_center_id, work_date::text, hours_worked::text,
		       overtime_hours::text, break_hours::text, remarks, upload_batch_id,
		       is_manual_entry, created_at
		FROM timesheet_entries
		WHERE employee_id = $1 AND work_date >= $2 AND work_date <= $3
		ORDER BY work_date`,
		employeeID, start.String(), end.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query timesheet entries: %w", err)
	}
	defer rows.Close()

	var out []*engine.TimesheetEntry
	for rows.Next() {
		var (
			e                                   engine.TimesheetEntry
			workDate, hours, overtime, breakHrs string
		)
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.CostCenterID, &workDate,
			&hours, &overtime, &breakHrs, &e.Remarks, &e.UploadBatchID,
			&e.IsManualEntry, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.WorkDate, _ = engine.ParseDate(workDate)
		e.HoursWorked = mustDecimal(hours)
		e.OvertimeHours = mustDecimal(overtime)
		e.BreakHours = mustDecimal(breakHrs)
		out = append(out, &e)
	}
	return out, rows.Err()
}

const uploadColumns = `id, batch_id, filename, uploaded_by, total_records,
	processed_records, error_records, status, error_details, created_at`

func (s *Store) CreateTimesheetUpload(ctx context.Context, u *engine.TimesheetUpload) (*engine.TimesheetUpload, error) {
	return createTimesheetUpload(ctx, s.pool, u)
}

func createTimesheetUpload(ctx context.Context, q querier, u *engine.TimesheetUpload) (*engine.TimesheetUpload, error) {
	row := *u
	row.CreatedAt = time.Now().UTC()
	if row.Status == "" {
		row.Status = "processing"
	}

	err := q.QueryRow(ctx, `
		INSERT INTO timesheet_uploads
		(batch_id, filename, uploaded_by, total_records, processed_records,
		 error_records, status, error_details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		row.BatchID, row.Filename, row.UploadedBy, row.TotalRecords,
		row.ProcessedRecords, row.ErrorRecords, row.Status, row.ErrorDetails,
		row.CreatedAt,
	).Scan(&row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert timesheet upload: %w", err)
	}
	return &row, nil
}

func (s *Store) UpdateTimesheetUpload(ctx context.Context, id int64, patch engine.TimesheetUploadPatch) (*engine.TimesheetUpload, error) {
	return updateTimesheetUpload(ctx, s.pool, id, patch)
}

func updateTimesheetUpload(ctx context.Context, q querier, id int64, patch engine.TimesheetUploadPatch) (*engine.TimesheetUpload, error) {
	set := ""
	var args []any
	appendSet := func(col string, v any) {
		args = append(args, v)
		if set != "" {
			set += ", "
		}
		set += fmt.Sprintf("%s = $%d", col, len(args))
	}
	if patch.TotalRecords != nil {
		appendSet("total_records", *patch.TotalRecords)
	}
	if patch.ProcessedRecords != nil {
		appendSet("processed_records", *patch.ProcessedRecords)
	}
	if patch.ErrorRecords != nil {
		appendSet("error_records", *patch.ErrorRecords)
	}
	if patch.Status != nil {
		appendSet("status", *patch.Status)
	}
	if patch.ErrorDetails != nil {
		appendSet("error_details", *patch.ErrorDetails)
	}
	if set == "" {
		return getTimesheetUpload(ctx, q, id)
	}
	args = append(args, id)

	tag, err := q.Exec(ctx,
		fmt.Sprintf("UPDATE timesheet_uploads SET %s WHERE id = $%d", set, len(args)),
		args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update timesheet upload: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("timesheet upload %d: %w", id, engine.ErrNotFound)
	}
	return getTimesheetUpload(ctx, q, id)
}

func getTimesheetUpload(ctx context.Context, q querier, id int64) (*engine.TimesheetUpload, error) {
	row := q.QueryRow(ctx,
		`SELECT `+uploadColumns+` FROM timesheet_uploads WHERE id = $1`, id)
	u, err := scanUpload(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("timesheet upload %d: %w", id, engine.ErrNotFound)
	}
	return u, err
}

func (s *Store) TimesheetUploads(ctx context.Context) ([]*engine.TimesheetUpload, error) {
	return listTimesheetUploads(ctx, s.pool)
}

func listTimesheetUploads(ctx context.Context, q querier) ([]*engine.TimesheetUpload, error) {
	rows, err := q.Query(ctx,
		`SELECT `+uploadColumns+` FROM timesheet_uploads ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query timesheet uploads: %w", err)
	}
	defer rows.Close()

	var out []*engine.TimesheetUpload
	for rows.Next() {
		u, err := scanUpload(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func scanUpload(r rowScanner) (*engine.TimesheetUpload, error) {
	var u engine.TimesheetUpload
	err := r.Scan(&u.ID, &u.BatchID, &u.Filename, &u.UploadedBy, &u.TotalRecords,
		&u.ProcessedRecords, &u.ErrorRecords, &u.Status, &u.ErrorDetails,
		&u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// =============================================================================
// PAYROLL COMPONENTS
// =============================================================================

const componentColumns = `id, employee_id, cost_center_id, basic_salary_per_day::text,
	transport_allowance_per_day::text, food_allowance_per_day::text,
	accommodation_allowance_per_day::text, effective_from::text, effective_to::text,
	is_active, created_at, updated_at`

func (s *Store) CreatePayrollComponent(ctx context.Context, c *engine.PayrollComponent) (*engine.PayrollComponent, error) {
	return createPayrollComponent(ctx, s.pool, c)
}

func createPayrollComponent(ctx context.Context, q querier, c *engine.PayrollComponent) (*engine.PayrollComponent, error) {
	row := *c
	now := time.Now().UTC()
	row.CreatedAt = now
	row.UpdatedAt = now

	var effectiveTo *string
	if row.EffectiveTo != nil {
		s := row.EffectiveTo.String()
		effectiveTo = &s
	}

	err := q.QueryRow(ctx, `
		INSERT INTO payroll_components
		(employee_id, cost_center_id, basic_salary_per_day, transport_allowance_per_day,
		 food_allowance_per_day, accommodation_allowance_per_day, effective_from,
		 effective_to, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		row.EmployeeID, row.CostCenterID, row.BasicSalaryPerDay.String(),
		row.TransportAllowancePerDay.String(), row.FoodAllowancePerDay.String(),
		row.AccommodationAllowancePerDay.String(), row.EffectiveFrom.String(),
		effectiveTo, row.IsActive, now, now,
	).Scan(&row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert payroll component: %w", err)
	}
	return &row, nil
}

func (s *Store) PayrollComponentsByEmployee(ctx context.Context, employeeID int64) ([]*engine.PayrollComponent, error) {
	return queryComponents(ctx, s.pool, `
		SELECT `+componentColumns+` FROM payroll_components
		WHERE employee_id = $1 ORDER BY effective_from DESC`, employeeID)
}

func (s *Store) CurrentPayrollComponent(ctx context.Context, employeeID int64, asOf engine.Date) (*engine.PayrollComponent, error) {
	return currentPayrollComponent(ctx, s.pool, employeeID, asOf)
}

func currentPayrollComponent(ctx context.Context, q querier, employeeID int64, asOf engine.Date) (*engine.PayrollComponent, error) {
	out, err := queryComponents(ctx, q, `
		SELECT `+componentColumns+` FROM payroll_components
		WHERE employee_id = $1 AND is_active = TRUE
		  AND effective_from <= $2
		  AND (effective_to IS NULL OR effective_to >= $2)
		ORDER BY effective_from DESC
		LIMIT 1`,
		employeeID, asOf.String())
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("current payroll component for employee %d: %w",
			employeeID, engine.ErrNotFound)
	}
	return out[0], nil
}

func queryComponents(ctx context.Context, q querier, query string, args ...any) ([]*engine.PayrollComponent, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll components: %w", err)
	}
	defer rows.Close()

	var out []*engine.PayrollComponent
	for rows.Next() {
		var (
			c                             engine.PayrollComponent
			basic, transport, food, accom string
			effectiveFrom                 string
			effectiveTo                   *string
		)
		if err := rows.Scan(&c.ID, &c.EmployeeID, &c.CostCenterID, &basic,
			&transport, &food, &accom, &effectiveFrom, &effectiveTo,
			&c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		c.BasicSalaryPerDay = mustDecimal(basic)
		c.TransportAllowancePerDay = mustDecimal(transport)
		c.FoodAllowancePerDay = mustDecimal(food)
		c.AccommodationAllowancePerDay = mustDecimal(accom)
		c.EffectiveFrom, _ = engine.ParseDate(effectiveFrom)
		if effectiveTo != nil {
			d, _ := engine.ParseDate(*effectiveTo)
			c.EffectiveTo = &d
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// =============================================================================
// PAYROLL CALCULATIONS
// =============================================================================

const calculationColumns = `id, employee_id, payroll_period, total_days_worked::text,
	total_hours_worked::text, overtime_hours::text, leave_days_taken::text,
	basic_salary::text, transport_allowance::text, food_allowance::text,
	accommodation_allowance::text, overtime_pay::text, gross_salary::text,
	deductions::text, net_salary::text, status, calculated_at, created_at`

func (s *Store) CreatePayrollCalculation(ctx context.Context, c *engine.PayrollCalculation) (*engine.PayrollCalculation, error) {
	return createPayrollCalculation(ctx, s.pool, c)
}

func createPayrollCalculation(ctx context.Context, q querier, c *engine.PayrollCalculation) (*engine.PayrollCalculation, error) {
	row := *c
	row.CreatedAt = time.Now().UTC()
	if row.CalculatedAt.IsZero() {
		row.CalculatedAt = row.CreatedAt
	}

	err := q.QueryRow(ctx, `
		INSERT INTO payroll_calculations
		(employee_id, payroll_period, total_days_worked, total_hours_worked,
		 overtime_hours, leave_days_taken, basic_salary, transport_allowance,
		 food_allowance, accommodation_allowance, overtime_pay, gross_salary,
		 deductions, net_salary, status, calculated_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id`,
		row.EmployeeID, row.PayrollPeriod, row.TotalDaysWorked.String(),
		row.TotalHoursWorked.String(), row.OvertimeHours.String(),
		row.LeaveDaysTaken.String(), row.BasicSalary.String(),
		row.TransportAllowance.String(), row.FoodAllowance.String(),
		row.AccommodationAllowance.String(), row.OvertimePay.String(),
		row.GrossSalary.String(), row.Deductions.String(), row.NetSalary.String(),
		row.Status, row.CalculatedAt, row.CreatedAt,
	).Scan(&row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert payroll calculation: %w", err)
	}
	return &row, nil
}

func (s *Store) PayrollCalculation(ctx context.Context, id int64) (*engine.PayrollCalculation, error) {
	return getPayrollCalculation(ctx, s.pool, id)
}

func getPayrollCalculation(ctx context.Context, q querier, id int64) (*engine.PayrollCalculation, error) {
	row := q.QueryRow(ctx,
		`SELECT `+calculationColumns+` FROM payroll_calculations WHERE id = $1`, id)
	c, err := scanCalculation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("payroll calculation %d: %w", id, engine.ErrNotFound)
	}
	return c, err
}

func (s *Store) PayrollCalculationByPeriod(ctx context.Context, employeeID int64, period string) (*engine.PayrollCalculation, error) {
	return payrollCalculationByPeriod(ctx, s.pool, employeeID, period)
}

func payrollCalculationByPeriod(ctx context.Context, q querier, employeeID int64, period string) (*engine.PayrollCalculation, error) {
	row := q.QueryRow(ctx, `
		SELECT `+calculationColumns+` FROM payroll_calculations
		WHERE employee_id = $1 AND payroll_period = $2`,
		employeeID, period)
	c, err := scanCalculation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("payroll calculation for employee %d period %s: %w",
			employeeID, period, engine.ErrNotFound)
	}
	return c, err
}

func (s *Store) PayrollCalculationsByEmployee(ctx context.Context, employeeID int64) ([]*engine.PayrollCalculation, error) {
	return payrollCalculationsByEmployee(ctx, s.pool, employeeID)
}

func payrollCalculationsByEmployee(ctx context.Context, q querier, employeeID int64) ([]*engine.PayrollCalculation, error) {
	rows, err := q.Query(ctx, `
		SELECT `+calculationColumns+` FROM payroll_calculations
		WHERE employee_id = $1 ORDER BY payroll_period DESC`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll calculations: %w", err)
	}
	defer rows.Close()

	var out []*engine.PayrollCalculation
	for rows.Next() {
		c, err := scanCalculation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanCalculation(r rowScanner) (*engine.PayrollCalculation, error) {
	var (
		c                                    engine.PayrollCalculation
		daysWorked, hoursWorked, otHours     string
		leaveDays, basic, transport, food    string
		accom, otPay, gross, deductions, net string
	)
	err := r.Scan(&c.ID, &c.EmployeeID, &c.PayrollPeriod, &daysWorked,
		&hoursWorked, &otHours, &leaveDays, &basic, &transport, &food,
		&accom, &otPay, &gross, &deductions, &net, &c.Status,
		&c.CalculatedAt, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.TotalDaysWorked = mustDecimal(daysWorked)
	c.TotalHoursWorked = mustDecimal(hoursWorked)
	c.OvertimeHours = mustDecimal(otHours)
	c.LeaveDaysTaken = mustDecimal(leaveDays)
	c.BasicSalary = mustDecimal(basic)
	c.TransportAllowance = mustDecimal(transport)
	c.FoodAllowance = mustDecimal(food)
	c.AccommodationAllowance = mustDecimal(accom)
	c.OvertimePay = mustDecimal(otPay)
	c.GrossSalary = mustDecimal(gross)
	c.Deductions = mustDecimal(deductions)
	c.NetSalary = mustDecimal(net)
	return &c, nil
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

// WithTx executes fn within one database transaction. Returning an error
// rolls everything back.
func (s *Store) WithTx(ctx context.Context, fn func(engine.Storage) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&txStore{q: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// txStore routes every operation through the open pgx.Tx.
type txStore struct {
	q pgx.Tx
}

func (ts *txStore) CreateEmployee(ctx context.Context, e *engine.Employee) (*engine.Employee, error) {
	return createEmployee(ctx, ts.q, e)
}

func (ts *txStore) Employee(ctx context.Context, id int64) (*engine.Employee, error) {
	return getEmployee(ctx, ts.q, id)
}

func (ts *txStore) Employees(ctx context.Context) ([]*engine.Employee, error) {
	return listEmployees(ctx, ts.q)
}

func (ts *txStore) LeaveBalance(ctx context.Context, employeeID int64, year int) (*engine.LeaveBalance, error) {
	return getLeaveBalance(ctx, ts.q, employeeID, year)
}

func (ts *txStore) CreateLeaveBalance(ctx context.Context, b *engine.LeaveBalance) (*engine.LeaveBalance, error) {
	return createLeaveBalance(ctx, ts.q, b)
}

func (ts *txStore) UpdateLeaveBalance(ctx context.Context, id int64, patch engine.LeaveBalancePatch) (*engine.LeaveBalance, error) {
	return updateLeaveBalance(ctx, ts.q, id, patch)
}

func (ts *txStore) AppendLeaveAccrual(ctx context.Context, a *engine.LeaveAccrual) (*engine.LeaveAccrual, error) {
	return appendLeaveAccrual(ctx, ts.q, a)
}

func (ts *txStore) LeaveAccrualHistory(ctx context.Context, employeeID int64) ([]*engine.LeaveAccrual, error) {
	return leaveAccrualHistory(ctx, ts.q, employeeID)
}

func (ts *txStore) CreateTimeOffRequest(ctx context.Context, r *engine.TimeOffRequest) (*engine.TimeOffRequest, error) {
	return createTimeOffRequest(ctx, ts.q, r)
}

func (ts *txStore) TimeOffRequest(ctx context.Context, id int64) (*engine.TimeOffRequest, error) {
	return getTimeOffRequest(ctx, ts.q, id)
}

func (ts *txStore) UpdateTimeOffRequest(ctx context.Context, id int64, patch engine.TimeOffRequestPatch) (*engine.TimeOffRequest, error) {
	return updateTimeOffRequest(ctx, ts.q, id, patch)
}

func (ts *txStore) TimeOffRequestsByEmployee(ctx context.Context, employeeID int64) ([]*engine.TimeOffRequest, error) {
	return queryRequests(ctx, ts.q,
		`SELECT `+requestColumns+` FROM time_off_requests WHERE employee_id = $1 ORDER BY id`,
		employeeID)
}

func (ts *txStore) PendingTimeOffRequests(ctx context.Context) ([]*engine.TimeOffRequest, error) {
	return queryRequests(ctx, ts.q,
		`SELECT `+requestColumns+` FROM time_off_requests WHERE status = $1 ORDER BY id`,
		engine.StatusPending)
}

func (ts *txStore) ApprovedTimeOffRequestsInRange(ctx context.Context, employeeID int64, start, end engine.Date) ([]*engine.TimeOffRequest, error) {
	return approvedRequestsInRange(ctx, ts.q, employeeID, start, end)
}

func (ts *txStore) CreateCostCenter(ctx context.Context, c *engine.CostCenter) (*engine.CostCenter, error) {
	return createCostCenter(ctx, ts.q, c)
}

func (ts *txStore) CostCenters(ctx context.Context) ([]*engine.CostCenter, error) {
	return queryCostCenters(ctx, ts.q,
		`SELECT id, code, name, description, department, is_active, created_at
		 FROM cost_centers ORDER BY id`)
}

func (ts *txStore) CostCenterByCode(ctx context.Context, code string) (*engine.CostCenter, error) {
	return costCenterByCode(ctx, ts.q, code)
}

func (ts *txStore) CreateTimesheetEntries(ctx context.Context, entries []*engine.TimesheetEntry) ([]*engine.TimesheetEntry, error) {
	return createTimesheetEntries(ctx, ts.q, entries)
}

func (ts *txStore) TimesheetEntriesInRange(ctx context.Context, employeeID int64, start, end engine.Date) ([]*engine.TimesheetEntry, error) {
	return timesheetEntriesInRange(ctx, ts.q, employeeID, start, end)
}

func (ts *txStore) CreateTimesheetUpload(ctx context.Context, u *engine.TimesheetUpload) (*engine.TimesheetUpload, error) {
	return createTimesheetUpload(ctx, ts.q, u)
}

func (ts *txStore) UpdateTimesheetUpload(ctx context.Context, id int64, patch engine.TimesheetUploadPatch) (*engine.TimesheetUpload, error) {
	return updateTimesheetUpload(ctx, ts.q, id, patch)
}

func (ts *txStore) TimesheetUploads(ctx context.Context) ([]*engine.TimesheetUpload, error) {
	return listTimesheetUploads(ctx, ts.q)
}

func (ts *txStore) CreatePayrollComponent(ctx context.Context, c *engine.PayrollComponent) (*engine.PayrollComponent, error) {
	return createPayrollComponent(ctx, ts.q, c)
}

func (ts *txStore) PayrollComponentsByEmployee(ctx context.Context, employeeID int64) ([]*engine.PayrollComponent, error) {
	return queryComponents(ctx, ts.q, `
		SELECT `+componentColumns+` FROM payroll_components
		WHERE employee_id = $1 ORDER BY effective_from DESC`, employeeID)
}

func (ts *txStore) CurrentPayrollComponent(ctx context.Context, employeeID int64, asOf engine.Date) (*engine.PayrollComponent, error) {
	return currentPayrollComponent(ctx, ts.q, employeeID, asOf)
}

func (ts *txStore) CreatePayrollCalculation(ctx context.Context, c *engine.PayrollCalculation) (*engine.PayrollCalculation, error) {
	return createPayrollCalculation(ctx, ts.q, c)
}

func (ts *txStore) PayrollCalculation(ctx context.Context, id int64) (*engine.PayrollCalculation, error) {
	return getPayrollCalculation(ctx, ts.q, id)
}

func (ts *txStore) PayrollCalculationByPeriod(ctx context.Context, employeeID int64, period string) (*engine.PayrollCalculation, error) {
	return payrollCalculationByPeriod(ctx, ts.q, employeeID, period)
}

func (ts *txStore) PayrollCalculationsByEmployee(ctx context.Context, employeeID int64) ([]*engine.PayrollCalculation, error) {
	return payrollCalculationsByEmployee(ctx, ts.q, employeeID)
}

// =============================================================================
// HELPERS
// =============================================================================

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

var (
	_ engine.TxStorage = (*Store)(nil)
	_ engine.Storage   = (*txStore)(nil)
)
