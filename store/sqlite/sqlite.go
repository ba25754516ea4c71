/*
Package sqlite provides the SQLite-backed engine.Storage implementation.

PURPOSE:
  Durable single-node persistence for the leave and payroll engine. The same
  schema ships in Postgres dialect under store/postgres.

PRECISION:
  Day balances and money are stored as TEXT and parsed with
  shopspring/decimal. SQLite's REAL would silently round; TEXT keeps the
  exact digits the engine wrote.

DATES:
  Calendar days (start_date, work_date, effective_from, ...) are TEXT in
  YYYY-MM-DD form, which compares correctly as strings. Instants
  (created_at, response_date) are RFC3339 TEXT.

KEY TABLES:
  employees:            directory and tenure anchor (start_date)
  leave_balances:       one row per employee+year, UNIQUE enforced
  leave_accruals:       append-only reconciliation ledger
  time_off_requests:    request workflow state
  cost_centers:         timesheet attribution reference data
  timesheet_entries:    one row per worked day
  timesheet_uploads:    CSV batch bookkeeping
  payroll_components:   effective-dated per-day rates
  payroll_calculations: one row per employee+period, UNIQUE enforced

WAL MODE:
  Opened with WAL so readers don't block the single writer.

MIGRATION:
  Schema is auto-migrated on New(). For production, use a versioned
  migration tool instead.

SEE ALSO:
  - engine/storage.go: interface definition
  - store/memory: in-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/hr-engine/engine"
)

// Store implements engine.TxStorage over SQLite.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at path. Use ":memory:" for an
// in-memory database.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL&_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection sidesteps SQLITE_BUSY under concurrent writes.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		employee_number TEXT NOT NULL UNIQUE,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL,
		department TEXT NOT NULL DEFAULT '',
		position TEXT NOT NULL DEFAULT '',
		start_date TEXT NOT NULL,
		salary TEXT NOT NULL DEFAULT '0',
		status TEXT NOT NULL DEFAULT 'active',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS leave_balances (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		employee_id INTEGER NOT NULL REFERENCES employees(id),
		year INTEGER NOT NULL,
		casual_leave_balance TEXT NOT NULL DEFAULT '0',
		vacation_leave_balance TEXT NOT NULL DEFAULT '0',
		last_accrual_date TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE(employee_id, year)
	);

	-- Append-only: no UPDATE or DELETE statements touch this table.
	CREATE TABLE IF NOT EXISTS leave_accruals (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		employee_id INTEGER NOT NULL REFERENCES employees(id),
		accrual_type TEXT NOT NULL,
		amount TEXT NOT NULL,
		accrual_date TEXT NOT NULL,
		reason TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_leave_accruals_employee
		ON leave_accruals(employee_id);

	CREATE TABLE IF NOT EXISTS time_off_requests (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		employee_id INTEGER NOT NULL REFERENCES employees(id),
		leave_type TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		days TEXT NOT NULL,
		reason TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		requires_approval BOOLEAN NOT NULL DEFAULT FALSE,
		is_with_pay BOOLEAN NOT NULL DEFAULT TRUE,
		approver_id INTEGER,
		response_date TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_requests_employee
		ON time_off_requests(employee_id);
	CREATE INDEX IF NOT EXISTS idx_requests_status
		ON time_off_requests(status);

	CREATE TABLE IF NOT EXISTS cost_centers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		code TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		department TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS timesheet_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		employee_id INTEGER NOT NULL REFERENCES employees(id),
		cost_center_id INTEGER NOT NULL DEFAULT 0,
		work_date TEXT NOT NULL,
		hours_worked TEXT NOT NULL DEFAULT '0',
		overtime_hours TEXT NOT NULL DEFAULT '0',
		break_hours TEXT NOT NULL DEFAULT '0',
		remarks TEXT NOT NULL DEFAULT '',
		upload_batch_id TEXT NOT NULL DEFAULT '',
		is_manual_entry BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_timesheet_entries_employee_date
		ON timesheet_entries(employee_id, work_date);
	CREATE INDEX IF NOT EXISTS idx_timesheet_entries_batch
		ON timesheet_entries(upload_batch_id);

	CREATE TABLE IF NOT EXISTS timesheet_uploads (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		batch_id TEXT NOT NULL UNIQUE,
		filename TEXT NOT NULL,
		uploaded_by TEXT NOT NULL DEFAULT '',
		total_records INTEGER NOT NULL DEFAULT 0,
		processed_records INTEGER NOT NULL DEFAULT 0,
		error_records INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'processing',
		error_details TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS payroll_components (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		employee_id INTEGER NOT NULL REFERENCES employees(id),
		cost_center_id INTEGER,
		basic_salary_per_day TEXT NOT NULL DEFAULT '0',
		transport_allowance_per_day TEXT NOT NULL DEFAULT '0',
		food_allowance_per_day TEXT NOT NULL DEFAULT '0',
		accommodation_allowance_per_day TEXT NOT NULL DEFAULT '0',
		effective_from TEXT NOT NULL,
		effective_to TEXT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_payroll_components_employee
		ON payroll_components(employee_id, effective_from DESC);

	CREATE TABLE IF NOT EXISTS payroll_calculations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		employee_id INTEGER NOT NULL REFERENCES employees(id),
		payroll_period TEXT NOT NULL,
		total_days_worked TEXT NOT NULL DEFAULT '0',
		total_hours_worked TEXT NOT NULL DEFAULT '0',
		overtime_hours TEXT NOT NULL DEFAULT '0',
		leave_days_taken TEXT NOT NULL DEFAULT '0',
		basic_salary TEXT NOT NULL DEFAULT '0',
		transport_allowance TEXT NOT NULL DEFAULT '0',
		food_allowance TEXT NOT NULL DEFAULT '0',
		accommodation_allowance TEXT NOT NULL DEFAULT '0',
		overtime_pay TEXT NOT NULL DEFAULT '0',
		gross_salary TEXT NOT NULL DEFAULT '0',
		deductions TEXT NOT NULL DEFAULT '0',
		net_salary TEXT NOT NULL DEFAULT '0',
		status TEXT NOT NULL DEFAULT 'draft',
		calculated_at TEXT NOT NULL,
		created_at TEXT NOT NULL,
		UNIQUE(employee_id, payroll_period)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// querier is satisfied by both *sql.DB and *sql.Tx so every operation can
// run inside or outside a transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

// =============================================================================
// EMPLOYEES
// =============================================================================

const employeeColumns = `id, employee_number, first_name, last_name, email,
	department, position, start_date, salary, status, created_at, updated_at`

func (s *Store) CreateEmployee(ctx context.Context, e *engine.Employee) (*engine.Employee, error) {
	return createEmployee(ctx, s.db, e)
}

func createEmployee(ctx context.Context, q querier, e *engine.Employee) (*engine.Employee, error) {
	row := *e
	now := time.Now().UTC()
	row.CreatedAt = now
	row.UpdatedAt = now
	if row.Status == "" {
		row.Status = engine.EmployeeActive
	}

	res, err := q.ExecContext(ctx, `
		INSERT INTO employees
		(employee_number, first_name, last_name, email, department, position,
		 start_date, salary, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.EmployeeNumber, row.FirstName, row.LastName, row.Email,
		row.Department, row.Position, row.StartDate.String(),
		row.Salary.String(), row.Status,
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert employee: %w", err)
	}
	row.ID, _ = res.LastInsertId()
	return &row, nil
}

func (s *Store) Employee(ctx context.Context, id int64) (*engine.Employee, error) {
	return getEmployee(ctx, s.db, id)
}

func getEmployee(ctx context.Context, q querier, id int64) (*engine.Employee, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id)
	e, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("employee %d: %w", id, engine.ErrNotFound)
	}
	return e, err
}

func (s *Store) Employees(ctx context.Context) ([]*engine.Employee, error) {
	return listEmployees(ctx, s.db)
}

func listEmployees(ctx context.Context, q querier) ([]*engine.Employee, error) {
	rows, err := q.QueryContext(ctx,
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
		e                    engine.Employee
		startDate, salary    string
		createdAt, updatedAt string
	)
	err := r.Scan(&e.ID, &e.EmployeeNumber, &e.FirstName, &e.LastName, &e.Email,
		&e.Department, &e.Position, &startDate, &salary, &e.Status,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	e.StartDate, _ = engine.ParseDate(startDate)
	e.Salary = mustDecimal(salary)
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	e.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &e, nil
}

// =============================================================================
// LEAVE BALANCES AND ACCRUALS
// =============================================================================

func (s *Store) LeaveBalance(ctx context.Context, employeeID int64, year int) (*engine.LeaveBalance, error) {
	return getLeaveBalance(ctx, s.db, employeeID, year)
}

func getLeaveBalance(ctx context.Context, q querier, employeeID int64, year int) (*engine.LeaveBalance, error) {
	row := q.QueryRowContext(ctx, `
		SELECT id, employee_id, year, casual_leave_balance, vacation_leave_balance,
		       last_accrual_date, created_at, updated_at
		FROM leave_balances WHERE employee_id = ? AND year = ?`,
		employeeID, year)

	b, err := scanLeaveBalance(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("leave balance for employee %d year %d: %w",
			employeeID, year, engine.ErrNotFound)
	}
	return b, err
}

func scanLeaveBalance(r rowScanner) (*engine.LeaveBalance, error) {
	var (
		b                    engine.LeaveBalance
		casual, vacation     string
		lastAccrual          sql.NullString
		createdAt, updatedAt string
	)
	err := r.Scan(&b.ID, &b.EmployeeID, &b.Year, &casual, &vacation,
		&lastAccrual, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	b.CasualLeaveBalance = mustDecimal(casual)
	b.VacationLeaveBalance = mustDecimal(vacation)
	if lastAccrual.Valid {
		b.LastAccrualDate, _ = engine.ParseDate(lastAccrual.String)
	}
	b.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	b.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &b, nil
}

func (s *Store) CreateLeaveBalance(ctx context.Context, b *engine.LeaveBalance) (*engine.LeaveBalance, error) {
	return createLeaveBalance(ctx, s.db, b)
}

func createLeaveBalance(ctx context.Context, q querier, b *engine.LeaveBalance) (*engine.LeaveBalance, error) {
	row := *b
	now := time.Now().UTC()
	row.CreatedAt = now
	row.UpdatedAt = now

	var lastAccrual any
	if !row.LastAccrualDate.IsZero() {
		lastAccrual = row.LastAccrualDate.String()
	}

	res, err := q.ExecContext(ctx, `
		INSERT INTO leave_balances
		(employee_id, year, casual_leave_balance, vacation_leave_balance,
		 last_accrual_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		row.EmployeeID, row.Year,
		row.CasualLeaveBalance.String(), row.VacationLeaveBalance.String(),
		lastAccrual, now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert leave balance: %w", err)
	}
	row.ID, _ = res.LastInsertId()
	return &row, nil
}

func (s *Store) UpdateLeaveBalance(ctx context.Context, id int64, patch engine.LeaveBalancePatch) (*engine.LeaveBalance, error) {
	return updateLeaveBalance(ctx, s.db, id, patch)
}

func updateLeaveBalance(ctx context.Context, q querier, id int64, patch engine.LeaveBalancePatch) (*engine.LeaveBalance, error) {
	set := "updated_at = ?"
	args := []any{time.Now().UTC().Format(time.RFC3339)}
	if patch.CasualLeaveBalance != nil {
		set += ", casual_leave_balance = ?"
		args = append(args, patch.CasualLeaveBalance.String())
	}
	if patch.VacationLeaveBalance != nil {
		set += ", vacation_leave_balance = ?"
		args = append(args, patch.VacationLeaveBalance.String())
	}
	if patch.LastAccrualDate != nil {
		set += ", last_accrual_date = ?"
		args = append(args, patch.LastAccrualDate.String())
	}
	args = append(args, id)

	res, err := q.ExecContext(ctx, "UPDATE leave_balances SET "+set+" WHERE id = ?", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update leave balance: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("leave balance %d: %w", id, engine.ErrNotFound)
	}

	row := q.QueryRowContext(ctx, `
		SELECT id, employee_id, year, casual_leave_balance, vacation_leave_balance,
		       last_accrual_date, created_at, updated_at
		FROM leave_balances WHERE id = ?`, id)
	return scanLeaveBalance(row)
}

func (s *Store) AppendLeaveAccrual(ctx context.Context, a *engine.LeaveAccrual) (*engine.LeaveAccrual, error) {
	return appendLeaveAccrual(ctx, s.db, a)
}

func appendLeaveAccrual(ctx context.Context, q querier, a *engine.LeaveAccrual) (*engine.LeaveAccrual, error) {
	row := *a
	row.CreatedAt = time.Now().UTC()

	res, err := q.ExecContext(ctx, `
		INSERT INTO leave_accruals
		(employee_id, accrual_type, amount, accrual_date, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		row.EmployeeID, row.AccrualType, row.Amount.String(),
		row.AccrualDate.String(), row.Reason, row.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert leave accrual: %w", err)
	}
	row.ID, _ = res.LastInsertId()
	return &row, nil
}

func (s *Store) LeaveAccrualHistory(ctx context.Context, employeeID int64) ([]*engine.LeaveAccrual, error) {
	return leaveAccrualHistory(ctx, s.db, employeeID)
}

func leaveAccrualHistory(ctx context.Context, q querier, employeeID int64) ([]*engine.LeaveAccrual, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, employee_id, accrual_type, amount, accrual_date, reason, created_at
		FROM leave_accruals WHERE employee_id = ? ORDER BY id`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave accruals: %w", err)
	}
	defer rows.Close()

	var out []*engine.LeaveAccrual
	for rows.Next() {
		var (
			a                            engine.LeaveAccrual
			amount, accrualDate, created string
		)
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.AccrualType, &amount,
			&accrualDate, &a.Reason, &created); err != nil {
			return nil, err
		}
		a.Amount = mustDecimal(amount)
		a.AccrualDate, _ = engine.ParseDate(accrualDate)
		a.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, &a)
	}
	return out, rows.Err()
}

// =============================================================================
// TIME-OFF REQUESTS
// =============================================================================

const requestColumns = `id, employee_id, leave_type, start_date, end_date, days,
	reason, status, requires_approval, is_with_pay, approver_id, response_date, created_at`

func (s *Store) CreateTimeOffRequest(ctx context.Context, r *engine.TimeOffRequest) (*engine.TimeOffRequest, error) {
	return createTimeOffRequest(ctx, s.db, r)
}

func createTimeOffRequest(ctx context.Context, q querier, r *engine.TimeOffRequest) (*engine.TimeOffRequest, error) {
	row := *r
	row.CreatedAt = time.Now().UTC()

	res, err := q.ExecContext(ctx, `
		INSERT INTO time_off_requests
		(employee_id, leave_type, start_date, end_date, days, reason, status,
		 requires_approval, is_with_pay, approver_id, response_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.EmployeeID, row.LeaveType, row.StartDate.String(), row.EndDate.String(),
		row.Days.String(), row.Reason, row.Status, row.RequiresApproval,
		row.IsWithPay, row.ApproverID, nullTime(row.ResponseDate),
		row.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert time-off request: %w", err)
	}
	row.ID, _ = res.LastInsertId()
	return &row, nil
}

func (s *Store) TimeOffRequest(ctx context.Context, id int64) (*engine.TimeOffRequest, error) {
	return getTimeOffRequest(ctx, s.db, id)
}

func getTimeOffRequest(ctx context.Context, q querier, id int64) (*engine.TimeOffRequest, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM time_off_requests WHERE id = ?`, id)
	r, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("time-off request %d: %w", id, engine.ErrNotFound)
	}
	return r, err
}

func scanRequest(r rowScanner) (*engine.TimeOffRequest, error) {
	var (
		req                      engine.TimeOffRequest
		startDate, endDate, days string
		approverID               sql.NullInt64
		responseDate             sql.NullString
		createdAt                string
	)
	err := r.Scan(&req.ID, &req.EmployeeID, &req.LeaveType, &startDate, &endDate,
		&days, &req.Reason, &req.Status, &req.RequiresApproval, &req.IsWithPay,
		&approverID, &responseDate, &createdAt)
	if err != nil {
		return nil, err
	}
	req.StartDate, _ = engine.ParseDate(startDate)
	req.EndDate, _ = engine.ParseDate(endDate)
	req.Days = mustDecimal(days)
	if approverID.Valid {
		req.ApproverID = &approverID.Int64
	}
	if responseDate.Valid {
		t, _ := time.Parse(time.RFC3339, responseDate.String)
		req.ResponseDate = &t
	}
	req.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &req, nil
}

func (s *Store) UpdateTimeOffRequest(ctx context.Context, id int64, patch engine.TimeOffRequestPatch) (*engine.TimeOffRequest, error) {
	return updateTimeOffRequest(ctx, s.db, id, patch)
}

func updateTimeOffRequest(ctx context.Context, q querier, id int64, patch engine.TimeOffRequestPatch) (*engine.TimeOffRequest, error) {
	set := ""
	var args []any
	appendSet := func(col string, v any) {
		if set != "" {
			set += ", "
		}
		set += col + " = ?"
		args = append(args, v)
	}
	if patch.Status != nil {
		appendSet("status", *patch.Status)
	}
	if patch.ApproverID != nil {
		appendSet("approver_id", *patch.ApproverID)
	}
	if patch.ResponseDate != nil {
		appendSet("response_date", patch.ResponseDate.Format(time.RFC3339))
	}
	if set == "" {
		return getTimeOffRequest(ctx, q, id)
	}
	args = append(args, id)

	res, err := q.ExecContext(ctx, "UPDATE time_off_requests SET "+set+" WHERE id = ?", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update time-off request: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("time-off request %d: %w", id, engine.ErrNotFound)
	}
	return getTimeOffRequest(ctx, q, id)
}

func (s *Store) TimeOffRequestsByEmployee(ctx context.Context, employeeID int64) ([]*engine.TimeOffRequest, error) {
	return queryRequests(ctx, s.db,
		`SELECT `+requestColumns+` FROM time_off_requests WHERE employee_id = ? ORDER BY id`,
		employeeID)
}

func (s *Store) PendingTimeOffRequests(ctx context.Context) ([]*engine.TimeOffRequest, error) {
	return queryRequests(ctx, s.db,
		`SELECT `+requestColumns+` FROM time_off_requests WHERE status = ? ORDER BY id`,
		engine.StatusPending)
}

func (s *Store) ApprovedTimeOffRequestsInRange(ctx context.Context, employeeID int64, start, end engine.Date) ([]*engine.TimeOffRequest, error) {
	return approvedRequestsInRange(ctx, s.db, employeeID, start, end)
}

func approvedRequestsInRange(ctx context.Context, q querier, employeeID int64, start, end engine.Date) ([]*engine.TimeOffRequest, error) {
	// Strict containment: both endpoints inside the range. YYYY-MM-DD
	// strings compare correctly.
	return queryRequests(ctx, q, `
		SELECT `+requestColumns+` FROM time_off_requests
		WHERE employee_id = ? AND status = ?
		  AND start_date >= ? AND end_date <= ?
		ORDER BY id`,
		employeeID, engine.StatusApproved, start.String(), end.String())
}

func queryRequests(ctx context.Context, q querier, query string, args ...any) ([]*engine.TimeOffRequest, error) {
	rows, err := q.QueryContext(ctx, query, args...)
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
	return createCostCenter(ctx, s.db, c)
}

func createCostCenter(ctx context.Context, q querier, c *engine.CostCenter) (*engine.CostCenter, error) {
	row := *c
	row.CreatedAt = time.Now().UTC()

	res, err := q.ExecContext(ctx, `
		INSERT INTO cost_centers (code, name, description, department, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		row.Code, row.Name, row.Description, row.Department, row.IsActive,
		row.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert cost center: %w", err)
	}
	row.ID, _ = res.LastInsertId()
	return &row, nil
}

func (s *Store) CostCenters(ctx context.Context) ([]*engine.CostCenter, error) {
	return queryCostCenters(ctx, s.db,
		`SELECT id, code, name, description, department, is_active, created_at
		 FROM cost_centers ORDER BY id`)
}

func (s *Store) CostCenterByCode(ctx context.Context, code string) (*engine.CostCenter, error) {
	return costCenterByCode(ctx, s.db, code)
}

func costCenterByCode(ctx context.Context, q querier, code string) (*engine.CostCenter, error) {
	out, err := queryCostCenters(ctx, q,
		`SELECT id, code, name, description, department, is_active, created_at
		 FROM cost_centers WHERE code = ?`, code)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("cost center %q: %w", code, engine.ErrNotFound)
	}
	return out[0], nil
}

func queryCostCenters(ctx context.Context, q querier, query string, args ...any) ([]*engine.CostCenter, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cost centers: %w", err)
	}
	defer rows.Close()

	var out []*engine.CostCenter
	for rows.Next() {
		var (
			c         engine.CostCenter
			createdAt string
		)
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.Description,
			&c.Department, &c.IsActive, &createdAt); err != nil {
			return nil, err
		}
		c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, &c)
	}
	return out, rows.Err()
}

// =============================================================================
// TIMESHEETS
// =============================================================================

func (s *Store) CreateTimesheetEntries(ctx context.Context, entries []*engine.TimesheetEntry) ([]*engine.TimesheetEntry, error) {
	return createTimesheetEntries(ctx, s.db, entries)
}

func createTimesheetEntries(ctx context.Context, q querier, entries []*engine.TimesheetEntry) ([]*engine.TimesheetEntry, error) {
	out := make([]*engine.TimesheetEntry, 0, len(entries))
	for _, e := range entries {
		row := *e
		row.CreatedAt = time.Now().UTC()

		res, err := q.ExecContext(ctx, `
			INSERT INTO timesheet_entries
			(employee_id, cost_center_id, work_date, hours_worked, overtime_hours,
			 break_hours, remarks, upload_batch_id, is_manual_entry, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			row.EmployeeID, row.CostCenterID, row.WorkDate.String(),
			row.HoursWorked.String(), row.OvertimeHours.String(), row.BreakHours.String(),
			row.Remarks, row.UploadBatchID, row.IsManualEntry,
			row.CreatedAt.Format(time.RFC3339),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert timesheet entry: %w", err)
		}
		row.ID, _ = res.LastInsertId()
		out = append(out, &row)
	}
	return out, nil
}

func (s *Store) TimesheetEntriesInRange(ctx context.Context, employeeID int64, start, end engine.Date) ([]*engine.TimesheetEntry, error) {
	return timesheetEntriesInRange(ctx, s.db, employeeID, start, end)
}

func timesheetEntriesInRange(ctx context.Context, q querier, employeeID int64, start, end engine.Date) ([]*engine.TimesheetEntry, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, employee_id, cost_center_id, work_date, hours_worked,
		       overtime_hours, break_hours, remarks, upload_batch_id,
		       is_manual_entry, created_at
		FROM timesheet_entries
		WHERE employee_id = ? AND work_date >= ? AND work_date <= ?
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
			createdAt                           string
		)
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.CostCenterID, &workDate,
			&hours, &overtime, &breakHrs, &e.Remarks, &e.UploadBatchID,
			&e.IsManualEntry, &createdAt); err != nil {
			return nil, err
		}
		e.WorkDate, _ = engine.ParseDate(workDate)
		e.HoursWorked = mustDecimal(hours)
		e.OvertimeHours = mustDecimal(overtime)
		e.BreakHours = mustDecimal(breakHrs)
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, &e)
	}
	return out, rows.Err()
}

const uploadColumns = `id, batch_id, filename, uploaded_by, total_records,
	processed_records, error_records, status, error_details, created_at`

func (s *Store) CreateTimesheetUpload(ctx context.Context, u *engine.TimesheetUpload) (*engine.TimesheetUpload, error) {
	return createTimesheetUpload(ctx, s.db, u)
}

func createTimesheetUpload(ctx context.Context, q querier, u *engine.TimesheetUpload) (*engine.TimesheetUpload, error) {
	row := *u
	row.CreatedAt = time.Now().UTC()
	if row.Status == "" {
		row.Status = "processing"
	}

	res, err := q.ExecContext(ctx, `
		INSERT INTO timesheet_uploads
		(batch_id, filename, uploaded_by, total_records, processed_records,
		 error_records, status, error_details, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.BatchID, row.Filename, row.UploadedBy, row.TotalRecords,
		row.ProcessedRecords, row.ErrorRecords, row.Status, row.ErrorDetails,
		row.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert timesheet upload: %w", err)
	}
	row.ID, _ = res.LastInsertId()
	return &row, nil
}

func (s *Store) UpdateTimesheetUpload(ctx context.Context, id int64, patch engine.TimesheetUploadPatch) (*engine.TimesheetUpload, error) {
	return updateTimesheetUpload(ctx, s.db, id, patch)
}

func updateTimesheetUpload(ctx context.Context, q querier, id int64, patch engine.TimesheetUploadPatch) (*engine.TimesheetUpload, error) {
	set := ""
	var args []any
	appendSet := func(col string, v any) {
		if set != "" {
			set += ", "
		}
		set += col + " = ?"
		args = append(args, v)
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

	res, err := q.ExecContext(ctx, "UPDATE timesheet_uploads SET "+set+" WHERE id = ?", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update timesheet upload: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("timesheet upload %d: %w", id, engine.ErrNotFound)
	}
	return getTimesheetUpload(ctx, q, id)
}

func getTimesheetUpload(ctx context.Context, q querier, id int64) (*engine.TimesheetUpload, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+uploadColumns+` FROM timesheet_uploads WHERE id = ?`, id)
	u, err := scanUpload(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("timesheet upload %d: %w", id, engine.ErrNotFound)
	}
	return u, err
}

func (s *Store) TimesheetUploads(ctx context.Context) ([]*engine.TimesheetUpload, error) {
	return listTimesheetUploads(ctx, s.db)
}

func listTimesheetUploads(ctx context.Context, q querier) ([]*engine.TimesheetUpload, error) {
	rows, err := q.QueryContext(ctx,
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
	var (
		u         engine.TimesheetUpload
		createdAt string
	)
	err := r.Scan(&u.ID, &u.BatchID, &u.Filename, &u.UploadedBy, &u.TotalRecords,
		&u.ProcessedRecords, &u.ErrorRecords, &u.Status, &u.ErrorDetails, &createdAt)
	if err != nil {
		return nil, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &u, nil
}

// =============================================================================
// PAYROLL COMPONENTS
// =============================================================================

const componentColumns = `id, employee_id, cost_center_id, basic_salary_per_day,
	transport_allowance_per_day, food_allowance_per_day,
	accommodation_allowance_per_day, effective_from, effective_to, is_active,
	created_at, updated_at`

func (s *Store) CreatePayrollComponent(ctx context.Context, c *engine.PayrollComponent) (*engine.PayrollComponent, error) {
	return createPayrollComponent(ctx, s.db, c)
}

func createPayrollComponent(ctx context.Context, q querier, c *engine.PayrollComponent) (*engine.PayrollComponent, error) {
	row := *c
	now := time.Now().UTC()
	row.CreatedAt = now
	row.UpdatedAt = now

	var effectiveTo any
	if row.EffectiveTo != nil {
		effectiveTo = row.EffectiveTo.String()
	}

	res, err := q.ExecContext(ctx, `
		INSERT INTO payroll_components
		(employee_id, cost_center_id, basic_salary_per_day, transport_allowance_per_day,
		 food_allowance_per_day, accommodation_allowance_per_day, effective_from,
		 effective_to, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.EmployeeID, row.CostCenterID, row.BasicSalaryPerDay.String(),
		row.TransportAllowancePerDay.String(), row.FoodAllowancePerDay.String(),
		row.AccommodationAllowancePerDay.String(), row.EffectiveFrom.String(),
		effectiveTo, row.IsActive,
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert payroll component: %w", err)
	}
	row.ID, _ = res.LastInsertId()
	return &row, nil
}

func (s *Store) PayrollComponentsByEmployee(ctx context.Context, employeeID int64) ([]*engine.PayrollComponent, error) {
	return queryComponents(ctx, s.db, `
		SELECT `+componentColumns+` FROM payroll_components
		WHERE employee_id = ? ORDER BY effective_from DESC`, employeeID)
}

func (s *Store) CurrentPayrollComponent(ctx context.Context, employeeID int64, asOf engine.Date) (*engine.PayrollComponent, error) {
	return currentPayrollComponent(ctx, s.db, employeeID, asOf)
}

func currentPayrollComponent(ctx context.Context, q querier, employeeID int64, asOf engine.Date) (*engine.PayrollComponent, error) {
	out, err := queryComponents(ctx, q, `
		SELECT `+componentColumns+` FROM payroll_components
		WHERE employee_id = ? AND is_active = TRUE
		  AND effective_from <= ?
		  AND (effective_to IS NULL OR effective_to >= ?)
		ORDER BY effective_from DESC
		LIMIT 1`,
		employeeID, asOf.String(), asOf.String())
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
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll components: %w", err)
	}
	defer rows.Close()

	var out []*engine.PayrollComponent
	for rows.Next() {
		var (
			c                             engine.PayrollComponent
			costCenterID                  sql.NullInt64
			basic, transport, food, accom string
			effectiveFrom                 string
			effectiveTo                   sql.NullString
			createdAt, updatedAt          string
		)
		if err := rows.Scan(&c.ID, &c.EmployeeID, &costCenterID, &basic,
			&transport, &food, &accom, &effectiveFrom, &effectiveTo,
			&c.IsActive, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if costCenterID.Valid {
			c.CostCenterID = &costCenterID.Int64
		}
		c.BasicSalaryPerDay = mustDecimal(basic)
		c.TransportAllowancePerDay = mustDecimal(transport)
		c.FoodAllowancePerDay = mustDecimal(food)
		c.AccommodationAllowancePerDay = mustDecimal(accom)
		c.EffectiveFrom, _ = engine.ParseDate(effectiveFrom)
		if effectiveTo.Valid {
			d, _ := engine.ParseDate(effectiveTo.String)
			c.EffectiveTo = &d
		}
		c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		c.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		out = append(out, &c)
	}
	return out, rows.Err()
}

// =============================================================================
// PAYROLL CALCULATIONS
// =============================================================================

const calculationColumns = `id, employee_id, payroll_period, total_days_worked,
	total_hours_worked, overtime_hours, leave_days_taken, basic_salary,
	transport_allowance, food_allowance, accommodation_allowance, overtime_pay,
	gross_salary, deductions, net_salary, status, calculated_at, created_at`

func (s *Store) CreatePayrollCalculation(ctx context.Context, c *engine.PayrollCalculation) (*engine.PayrollCalculation, error) {
	return createPayrollCalculation(ctx, s.db, c)
}

func createPayrollCalculation(ctx context.Context, q querier, c *engine.PayrollCalculation) (*engine.PayrollCalculation, error) {
	row := *c
	row.CreatedAt = time.Now().UTC()
	if row.CalculatedAt.IsZero() {
		row.CalculatedAt = row.CreatedAt
	}

	res, err := q.ExecContext(ctx, `
		INSERT INTO payroll_calculations
		(employee_id, payroll_period, total_days_worked, total_hours_worked,
		 overtime_hours, leave_days_taken, basic_salary, transport_allowance,
		 food_allowance, accommodation_allowance, overtime_pay, gross_salary,
		 deductions, net_salary, status, calculated_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.EmployeeID, row.PayrollPeriod, row.TotalDaysWorked.String(),
		row.TotalHoursWorked.String(), row.OvertimeHours.String(),
		row.LeaveDaysTaken.String(), row.BasicSalary.String(),
		row.TransportAllowance.String(), row.FoodAllowance.String(),
		row.AccommodationAllowance.String(), row.OvertimePay.String(),
		row.GrossSalary.String(), row.Deductions.String(), row.NetSalary.String(),
		row.Status, row.CalculatedAt.Format(time.RFC3339),
		row.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert payroll calculation: %w", err)
	}
	row.ID, _ = res.LastInsertId()
	return &row, nil
}

func (s *Store) PayrollCalculation(ctx context.Context, id int64) (*engine.PayrollCalculation, error) {
	return getPayrollCalculation(ctx, s.db, id)
}

func getPayrollCalculation(ctx context.Context, q querier, id int64) (*engine.PayrollCalculation, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+calculationColumns+` FROM payroll_calculations WHERE id = ?`, id)
	c, err := scanCalculation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("payroll calculation %d: %w", id, engine.ErrNotFound)
	}
	return c, err
}

func (s *Store) PayrollCalculationByPeriod(ctx context.Context, employeeID int64, period string) (*engine.PayrollCalculation, error) {
	return payrollCalculationByPeriod(ctx, s.db, employeeID, period)
}

func payrollCalculationByPeriod(ctx context.Context, q querier, employeeID int64, period string) (*engine.PayrollCalculation, error) {
	row := q.QueryRowContext(ctx, `
		SELECT `+calculationColumns+` FROM payroll_calculations
		WHERE employee_id = ? AND payroll_period = ?`,
		employeeID, period)
	c, err := scanCalculation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("payroll calculation for employee %d period %s: %w",
			employeeID, period, engine.ErrNotFound)
	}
	return c, err
}

func (s *Store) PayrollCalculationsByEmployee(ctx context.Context, employeeID int64) ([]*engine.PayrollCalculation, error) {
	return payrollCalculationsByEmployee(ctx, s.db, employeeID)
}

func payrollCalculationsByEmployee(ctx context.Context, q querier, employeeID int64) ([]*engine.PayrollCalculation, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT `+calculationColumns+` FROM payroll_calculations
		WHERE employee_id = ? ORDER BY payroll_period DESC`, employeeID)
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
		calculatedAt, createdAt              string
	)
	err := r.Scan(&c.ID, &c.EmployeeID, &c.PayrollPeriod, &daysWorked,
		&hoursWorked, &otHours, &leaveDays, &basic, &transport, &food,
		&accom, &otPay, &gross, &deductions, &net, &c.Status,
		&calculatedAt, &createdAt)
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
	c.CalculatedAt, _ = time.Parse(time.RFC3339, calculatedAt)
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &c, nil
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

// WithTx executes fn within one database transaction. Returning an error
// rolls everything back.
func (s *Store) WithTx(ctx context.Context, fn func(engine.Storage) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&txStore{q: sqlTx}); err != nil {
		return err
	}
	return sqlTx.Commit()
}

// txStore routes every operation through the open *sql.Tx.
type txStore struct {
	q *sql.Tx
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
		`SELECT `+requestColumns+` FROM time_off_requests WHERE employee_id = ? ORDER BY id`,
		employeeID)
}

func (ts *txStore) PendingTimeOffRequests(ctx context.Context) ([]*engine.TimeOffRequest, error) {
	return queryRequests(ctx, ts.q,
		`SELECT `+requestColumns+` FROM time_off_requests WHERE status = ? ORDER BY id`,
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
		WHERE employee_id = ? ORDER BY effective_from DESC`, employeeID)
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

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}

var (
	_ engine.TxStorage = (*Store)(nil)
	_ engine.Storage   = (*txStore)(nil)
)
