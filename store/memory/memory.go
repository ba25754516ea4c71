/*
Package memory provides the in-memory Storage implementation.

PURPOSE:
  Backs engine tests and :memory: development runs. Entities live in maps
  of values keyed by id; every read hands back a copy so callers cannot
  mutate stored state behind the store's back.

TRANSACTIONS:
  WithTx snapshots the whole state up front and restores it when fn fails.
  The transactional view writes straight into the live state under the
  store's lock, so commit is a no-op.
*/
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/warp/hr-engine/engine"
)

// Memory is a mutex-guarded in-memory store.
type Memory struct {
	mu   sync.RWMutex
	data *state
}

func New() *Memory {
	return &Memory{data: newState()}
}

// state holds every table plus the shared id sequence. Methods on state do
// no locking; Memory and the transactional view own that.
type state struct {
	nextID int64

	employees    map[int64]engine.Employee
	balances     map[int64]engine.LeaveBalance
	accruals     []engine.LeaveAccrual
	requests     map[int64]engine.TimeOffRequest
	costCenters  map[int64]engine.CostCenter
	timesheets   map[int64]engine.TimesheetEntry
	uploads      map[int64]engine.TimesheetUpload
	components   map[int64]engine.PayrollComponent
	calculations map[int64]engine.PayrollCalculation
}

func newState() *state {
	return &state{
		employees:    make(map[int64]engine.Employee),
		balances:     make(map[int64]engine.LeaveBalance),
		requests:     make(map[int64]engine.TimeOffRequest),
		costCenters:  make(map[int64]engine.CostCenter),
		timesheets:   make(map[int64]engine.TimesheetEntry),
		uploads:      make(map[int64]engine.TimesheetUpload),
		components:   make(map[int64]engine.PayrollComponent),
		calculations: make(map[int64]engine.PayrollCalculation),
	}
}

func (s *state) id() int64 {
	s.nextID++
	return s.nextID
}

// clone deep-copies the state. Entities are values, so copying the maps
// copies the rows; slices get fresh backing arrays.
func (s *state) clone() *state {
	c := &state{
		nextID:       s.nextID,
		employees:    make(map[int64]engine.Employee, len(s.employees)),
		balances:     make(map[int64]engine.LeaveBalance, len(s.balances)),
		accruals:     append([]engine.LeaveAccrual{}, s.accruals...),
		requests:     make(map[int64]engine.TimeOffRequest, len(s.requests)),
		costCenters:  make(map[int64]engine.CostCenter, len(s.costCenters)),
		timesheets:   make(map[int64]engine.TimesheetEntry, len(s.timesheets)),
		uploads:      make(map[int64]engine.TimesheetUpload, len(s.uploads)),
		components:   make(map[int64]engine.PayrollComponent, len(s.components)),
		calculations: make(map[int64]engine.PayrollCalculation, len(s.calculations)),
	}
	for k, v := range s.employees {
		c.employees[k] = v
	}
	for k, v := range s.balances {
		c.balances[k] = v
	}
	for k, v := range s.requests {
		c.requests[k] = v
	}
	for k, v := range s.costCenters {
		c.costCenters[k] = v
	}
	for k, v := range s.timesheets {
		c.timesheets[k] = v
	}
	for k, v := range s.uploads {
		c.uploads[k] = v
	}
	for k, v := range s.components {
		c.components[k] = v
	}
	for k, v := range s.calculations {
		c.calculations[k] = v
	}
	return c
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func (s *state) createEmployee(e *engine.Employee) (*engine.Employee, error) {
	row := *e
	row.ID = s.id()
	now := time.Now()
	row.CreatedAt = now
	row.UpdatedAt = now
	if row.Status == "" {
		row.Status = engine.EmployeeActive
	}
	s.employees[row.ID] = row
	return &row, nil
}

func (s *state) employee(id int64) (*engine.Employee, error) {
	row, ok := s.employees[id]
	if !ok {
		return nil, fmt.Errorf("employee %d: %w", id, engine.ErrNotFound)
	}
	return &row, nil
}

func (s *state) listEmployees() ([]*engine.Employee, error) {
	out := make([]*engine.Employee, 0, len(s.employees))
	for _, row := range s.employees {
		row := row
		out = append(out, &row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// =============================================================================
// LEAVE BALANCES AND ACCRUALS
// =============================================================================

func (s *state) leaveBalance(employeeID int64, year int) (*engine.LeaveBalance, error) {
	for _, row := range s.balances {
		if row.EmployeeID == employeeID && row.Year == year {
			row := row
			return &row, nil
		}
	}
	return nil, fmt.Errorf("leave balance for employee %d year %d: %w", employeeID, year, engine.ErrNotFound)
}

func (s *state) createLeaveBalance(b *engine.LeaveBalance) (*engine.LeaveBalance, error) {
	row := *b
	row.ID = s.id()
	now := time.Now()
	row.CreatedAt = now
	row.UpdatedAt = now
	s.balances[row.ID] = row
	return &row, nil
}

func (s *state) updateLeaveBalance(id int64, patch engine.LeaveBalancePatch) (*engine.LeaveBalance, error) {
	row, ok := s.balances[id]
	if !ok {
		return nil, fmt.Errorf("leave balance %d: %w", id, engine.ErrNotFound)
	}
	if patch.CasualLeaveBalance != nil {
		row.CasualLeaveBalance = *patch.CasualLeaveBalance
	}
	if patch.VacationLeaveBalance != nil {
		row.VacationLeaveBalance = *patch.VacationLeaveBalance
	}
	if patch.LastAccrualDate != nil {
		row.LastAccrualDate = *patch.LastAccrualDate
	}
	row.UpdatedAt = time.Now()
	s.balances[id] = row
	return &row, nil
}

func (s *state) appendLeaveAccrual(a *engine.LeaveAccrual) (*engine.LeaveAccrual, error) {
	row := *a
	row.ID = s.id()
	row.CreatedAt = time.Now()
	s.accruals = append(s.accruals, row)
	return &row, nil
}

func (s *state) leaveAccrualHistory(employeeID int64) ([]*engine.LeaveAccrual, error) {
	var out []*engine.LeaveAccrual
	for _, row := range s.accruals {
		if row.EmployeeID == employeeID {
			row := row
			out = append(out, &row)
		}
	}
	return out, nil
}

// =============================================================================
// TIME-OFF REQUESTS
// =============================================================================

func (s *state) createTimeOffRequest(r *engine.TimeOffRequest) (*engine.TimeOffRequest, error) {
	row := *r
	row.ID = s.id()
	row.CreatedAt = time.Now()
	s.requests[row.ID] = row
	return &row, nil
}

func (s *state) timeOffRequest(id int64) (*engine.TimeOffRequest, error) {
	row, ok := s.requests[id]
	if !ok {
		return nil, fmt.Errorf("time-off request %d: %w", id, engine.ErrNotFound)
	}
	return &row, nil
}

func (s *state) updateTimeOffRequest(id int64, patch engine.TimeOffRequestPatch) (*engine.TimeOffRequest, error) {
	row, ok := s.requests[id]
	if !ok {
		return nil, fmt.Errorf("time-off request %d: %w", id, engine.ErrNotFound)
	}
	if patch.Status != nil {
		row.Status = *patch.Status
	}
	if patch.ApproverID != nil {
		v := *patch.ApproverID
		row.ApproverID = &v
	}
	if patch.ResponseDate != nil {
		v := *patch.ResponseDate
		row.ResponseDate = &v
	}
	s.requests[id] = row
	return &row, nil
}

func (s *state) timeOffRequestsByEmployee(employeeID int64) ([]*engine.TimeOffRequest, error) {
	var out []*engine.TimeOffRequest
	for _, row := range s.requests {
		if row.EmployeeID == employeeID {
			row := row
			out = append(out, &row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *state) pendingTimeOffRequests() ([]*engine.TimeOffRequest, error) {
	var out []*engine.TimeOffRequest
	for _, row := range s.requests {
		if row.Status == engine.StatusPending {
			row := row
			out = append(out, &row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *state) approvedTimeOffRequestsInRange(employeeID int64, start, end engine.Date) ([]*engine.TimeOffRequest, error) {
	var out []*engine.TimeOffRequest
	for _, row := range s.requests {
		if row.EmployeeID != employeeID || row.Status != engine.StatusApproved {
			continue
		}
		// Strict containment: both endpoints inside the range.
		if row.StartDate.AfterOrEqual(start) && row.EndDate.BeforeOrEqual(end) {
			row := row
			out = append(out, &row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// =============================================================================
// COST CENTERS
// =============================================================================

func (s *state) createCostCenter(c *engine.CostCenter) (*engine.CostCenter, error) {
	row := *c
	row.ID = s.id()
	row.CreatedAt = time.Now()
	s.costCenters[row.ID] = row
	return &row, nil
}

func (s *state) listCostCenters() ([]*engine.CostCenter, error) {
	out := make([]*engine.CostCenter, 0, len(s.costCenters))
	for _, row := range s.costCenters {
		row := row
		out = append(out, &row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *state) costCenterByCode(code string) (*engine.CostCenter, error) {
	for _, row := range s.costCenters {
		if row.Code == code {
			row := row
			return &row, nil
		}
	}
	return nil, fmt.Errorf("cost center %q: %w", code, engine.ErrNotFound)
}

// =============================================================================
// TIMESHEETS
// =============================================================================

func (s *state) createTimesheetEntries(entries []*engine.TimesheetEntry) ([]*engine.TimesheetEntry, error) {
	out := make([]*engine.TimesheetEntry, 0, len(entries))
	for _, e := range entries {
		row := *e
		row.ID = s.id()
		row.CreatedAt = time.Now()
		s.timesheets[row.ID] = row
		stored := row
		out = append(out, &stored)
	}
	return out, nil
}

func (s *state) timesheetEntriesInRange(employeeID int64, start, end engine.Date) ([]*engine.TimesheetEntry, error) {
	var out []*engine.TimesheetEntry
	for _, row := range s.timesheets {
		if row.EmployeeID != employeeID {
			continue
		}
		if row.WorkDate.AfterOrEqual(start) && row.WorkDate.BeforeOrEqual(end) {
			row := row
			out = append(out, &row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WorkDate.Before(out[j].WorkDate) })
	return out, nil
}

func (s *state) createTimesheetUpload(u *engine.TimesheetUpload) (*engine.TimesheetUpload, error) {
	row := *u
	row.ID = s.id()
	row.CreatedAt = time.Now()
	s.uploads[row.ID] = row
	return &row, nil
}

func (s *state) updateTimesheetUpload(id int64, patch engine.TimesheetUploadPatch) (*engine.TimesheetUpload, error) {
	row, ok := s.uploads[id]
	if !ok {
		return nil, fmt.Errorf("timesheet upload %d: %w", id, engine.ErrNotFound)
	}
	if patch.TotalRecords != nil {
		row.TotalRecords = *patch.TotalRecords
	}
	if patch.ProcessedRecords != nil {
		row.ProcessedRecords = *patch.ProcessedRecords
	}
	if patch.ErrorRecords != nil {
		row.ErrorRecords = *patch.ErrorRecords
	}
	if patch.Status != nil {
		row.Status = *patch.Status
	}
	if patch.ErrorDetails != nil {
		row.ErrorDetails = *patch.ErrorDetails
	}
	s.uploads[id] = row
	return &row, nil
}

func (s *state) listTimesheetUploads() ([]*engine.TimesheetUpload, error) {
	out := make([]*engine.TimesheetUpload, 0, len(s.uploads))
	for _, row := range s.uploads {
		row := row
		out = append(out, &row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// =============================================================================
// PAYROLL COMPONENTS AND CALCULATIONS
// =============================================================================

func (s *state) createPayrollComponent(c *engine.PayrollComponent) (*engine.PayrollComponent, error) {
	row := *c
	row.ID = s.id()
	now := time.Now()
	row.CreatedAt = now
	row.UpdatedAt = now
	s.components[row.ID] = row
	return &row, nil
}

func (s *state) payrollComponentsByEmployee(employeeID int64) ([]*engine.PayrollComponent, error) {
	var out []*engine.PayrollComponent
	for _, row := range s.components {
		if row.EmployeeID == employeeID {
			row := row
			out = append(out, &row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].EffectiveFrom.After(out[j].EffectiveFrom)
	})
	return out, nil
}

func (s *state) currentPayrollComponent(employeeID int64, asOf engine.Date) (*engine.PayrollComponent, error) {
	components, _ := s.payrollComponentsByEmployee(employeeID)
	// Sorted most-recent effectiveFrom first; take the first active row
	// whose range covers asOf.
	for _, c := range components {
		if c.IsActive && c.Covers(asOf) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("current payroll component for employee %d: %w", employeeID, engine.ErrNotFound)
}

func (s *state) createPayrollCalculation(c *engine.PayrollCalculation) (*engine.PayrollCalculation, error) {
	row := *c
	row.ID = s.id()
	row.CreatedAt = time.Now()
	s.calculations[row.ID] = row
	return &row, nil
}

func (s *state) payrollCalculation(id int64) (*engine.PayrollCalculation, error) {
	row, ok := s.calculations[id]
	if !ok {
		return nil, fmt.Errorf("payroll calculation %d: %w", id, engine.ErrNotFound)
	}
	return &row, nil
}

func (s *state) payrollCalculationByPeriod(employeeID int64, period string) (*engine.PayrollCalculation, error) {
	for _, row := range s.calculations {
		if row.EmployeeID == employeeID && row.PayrollPeriod == period {
			row := row
			return &row, nil
		}
	}
	return nil, fmt.Errorf("payroll calculation for employee %d period %s: %w", employeeID, period, engine.ErrNotFound)
}

func (s *state) payrollCalculationsByEmployee(employeeID int64) ([]*engine.PayrollCalculation, error) {
	var out []*engine.PayrollCalculation
	for _, row := range s.calculations {
		if row.EmployeeID == employeeID {
			row := row
			out = append(out, &row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PayrollPeriod > out[j].PayrollPeriod })
	return out, nil
}

// =============================================================================
// LOCKED WRAPPERS - engine.Storage
// =============================================================================

func (m *Memory) CreateEmployee(_ context.Context, e *engine.Employee) (*engine.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.createEmployee(e)
}

func (m *Memory) Employee(_ context.Context, id int64) (*engine.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.employee(id)
}

func (m *Memory) Employees(_ context.Context) ([]*engine.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.listEmployees()
}

func (m *Memory) LeaveBalance(_ context.Context, employeeID int64, year int) (*engine.LeaveBalance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.leaveBalance(employeeID, year)
}

func (m *Memory) CreateLeaveBalance(_ context.Context, b *engine.LeaveBalance) (*engine.LeaveBalance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.createLeaveBalance(b)
}

func (m *Memory) UpdateLeaveBalance(_ context.Context, id int64, patch engine.LeaveBalancePatch) (*engine.LeaveBalance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.updateLeaveBalance(id, patch)
}

func (m *Memory) AppendLeaveAccrual(_ context.Context, a *engine.LeaveAccrual) (*engine.LeaveAccrual, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.appendLeaveAccrual(a)
}

func (m *Memory) LeaveAccrualHistory(_ context.Context, employeeID int64) ([]*engine.LeaveAccrual, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.leaveAccrualHistory(employeeID)
}

func (m *Memory) CreateTimeOffRequest(_ context.Context, r *engine.TimeOffRequest) (*engine.TimeOffRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.createTimeOffRequest(r)
}

func (m *Memory) TimeOffRequest(_ context.Context, id int64) (*engine.TimeOffRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.timeOffRequest(id)
}

func (m *Memory) UpdateTimeOffRequest(_ context.Context, id int64, patch engine.TimeOffRequestPatch) (*engine.TimeOffRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.updateTimeOffRequest(id, patch)
}

func (m *Memory) TimeOffRequestsByEmployee(_ context.Context, employeeID int64) ([]*engine.TimeOffRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.timeOffRequestsByEmployee(employeeID)
}

func (m *Memory) PendingTimeOffRequests(_ context.Context) ([]*engine.TimeOffRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.pendingTimeOffRequests()
}

func (m *Memory) ApprovedTimeOffRequestsInRange(_ context.Context, employeeID int64, start, end engine.Date) ([]*engine.TimeOffRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.approvedTimeOffRequestsInRange(employeeID, start, end)
}

func (m *Memory) CreateCostCenter(_ context.Context, c *engine.CostCenter) (*engine.CostCenter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.createCostCenter(c)
}

func (m *Memory) CostCenters(_ context.Context) ([]*engine.CostCenter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.listCostCenters()
}

func (m *Memory) CostCenterByCode(_ context.Context, code string) (*engine.CostCenter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.costCenterByCode(code)
}

func (m *Memory) CreateTimesheetEntries(_ context.Context, entries []*engine.TimesheetEntry) ([]*engine.TimesheetEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.createTimesheetEntries(entries)
}

func (m *Memory) TimesheetEntriesInRange(_ context.Context, employeeID int64, start, end engine.Date) ([]*engine.TimesheetEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.timesheetEntriesInRange(employeeID, start, end)
}

func (m *Memory) CreateTimesheetUpload(_ context.Context, u *engine.TimesheetUpload) (*engine.TimesheetUpload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.createTimesheetUpload(u)
}

func (m *Memory) UpdateTimesheetUpload(_ context.Context, id int64, patch engine.TimesheetUploadPatch) (*engine.TimesheetUpload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.updateTimesheetUpload(id, patch)
}

func (m *Memory) TimesheetUploads(_ context.Context) ([]*engine.TimesheetUpload, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.listTimesheetUploads()
}

func (m *Memory) CreatePayrollComponent(_ context.Context, c *engine.PayrollComponent) (*engine.PayrollComponent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.createPayrollComponent(c)
}

func (m *Memory) PayrollComponentsByEmployee(_ context.Context, employeeID int64) ([]*engine.PayrollComponent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.payrollComponentsByEmployee(employeeID)
}

func (m *Memory) CurrentPayrollComponent(_ context.Context, employeeID int64, asOf engine.Date) (*engine.PayrollComponent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.currentPayrollComponent(employeeID, asOf)
}

func (m *Memory) CreatePayrollCalculation(_ context.Context, c *engine.PayrollCalculation) (*engine.PayrollCalculation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.createPayrollCalculation(c)
}

func (m *Memory) PayrollCalculation(_ context.Context, id int64) (*engine.PayrollCalculation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.payrollCalculation(id)
}

func (m *Memory) PayrollCalculationByPeriod(_ context.Context, employeeID int64, period string) (*engine.PayrollCalculation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.payrollCalculationByPeriod(employeeID, period)
}

func (m *Memory) PayrollCalculationsByEmployee(_ context.Context, employeeID int64) ([]*engine.PayrollCalculation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.payrollCalculationsByEmployee(employeeID)
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

// WithTx executes fn against a view of the live state, holding the write
// lock for the duration. On error the pre-transaction snapshot is restored.
func (m *Memory) WithTx(_ context.Context, fn func(engine.Storage) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.data.clone()
	if err := fn(&txView{data: m.data}); err != nil {
		m.data = snapshot
		return err
	}
	return nil
}

// txView is the Storage handed to WithTx callbacks. It reaches the state
// directly; the parent already holds the lock.
type txView struct {
	data *state
}

func (v *txView) CreateEmployee(_ context.Context, e *engine.Employee) (*engine.Employee, error) {
	return v.data.createEmployee(e)
}

func (v *txView) Employee(_ context.Context, id int64) (*engine.Employee, error) {
	return v.data.employee(id)
}

func (v *txView) Employees(_ context.Context) ([]*engine.Employee, error) {
	return v.data.listEmployees()
}

func (v *txView) LeaveBalance(_ context.Context, employeeID int64, year int) (*engine.LeaveBalance, error) {
	return v.data.leaveBalance(employeeID, year)
}

func (v *txView) CreateLeaveBalance(_ context.Context, b *engine.LeaveBalance) (*engine.LeaveBalance, error) {
	return v.data.createLeaveBalance(b)
}

func (v *txView) UpdateLeaveBalance(_ context.Context, id int64, patch engine.LeaveBalancePatch) (*engine.LeaveBalance, error) {
	return v.data.updateLeaveBalance(id, patch)
}

func (v *txView) AppendLeaveAccrual(_ context.Context, a *engine.LeaveAccrual) (*engine.LeaveAccrual, error) {
	return v.data.appendLeaveAccrual(a)
}

func (v *txView) LeaveAccrualHistory(_ context.Context, employeeID int64) ([]*engine.LeaveAccrual, error) {
	return v.data.leaveAccrualHistory(employeeID)
}

func (v *txView) CreateTimeOffRequest(_ context.Context, r *engine.TimeOffRequest) (*engine.TimeOffRequest, error) {
	return v.data.createTimeOffRequest(r)
}

func (v *txView) TimeOffRequest(_ context.Context, id int64) (*engine.TimeOffRequest, error) {
	return v.data.timeOffRequest(id)
}

func (v *txView) UpdateTimeOffRequest(_ context.Context, id int64, patch engine.TimeOffRequestPatch) (*engine.TimeOffRequest, error) {
	return v.data.updateTimeOffRequest(id, patch)
}

func (v *txView) TimeOffRequestsByEmployee(_ context.Context, employeeID int64) ([]*engine.TimeOffRequest, error) {
	return v.data.timeOffRequestsByEmployee(employeeID)
}

func (v *txView) PendingTimeOffRequests(_ context.Context) ([]*engine.TimeOffRequest, error) {
	return v.data.pendingTimeOffRequests()
}

func (v *txView) ApprovedTimeOffRequestsInRange(_ context.Context, employeeID int64, start, end engine.Date) ([]*engine.TimeOffRequest, error) {
	return v.data.approvedTimeOffRequestsInRange(employeeID, start, end)
}

func (v *txView) CreateCostCenter(_ context.Context, c *engine.CostCenter) (*engine.CostCenter, error) {
	return v.data.createCostCenter(c)
}

func (v *txView) CostCenters(_ context.Context) ([]*engine.CostCenter, error) {
	return v.data.listCostCenters()
}

func (v *txView) CostCenterByCode(_ context.Context, code string) (*engine.CostCenter, error) {
	return v.data.costCenterByCode(code)
}

func (v *txView) CreateTimesheetEntries(_ context.Context, entries []*engine.TimesheetEntry) ([]*engine.TimesheetEntry, error) {
	return v.data.createTimesheetEntries(entries)
}

func (v *txView) TimesheetEntriesInRange(_ context.Context, employeeID int64, start, end engine.Date) ([]*engine.TimesheetEntry, error) {
	return v.data.timesheetEntriesInRange(employeeID, start, end)
}

func (v *txView) CreateTimesheetUpload(_ context.Context, u *engine.TimesheetUpload) (*engine.TimesheetUpload, error) {
	return v.data.createTimesheetUpload(u)
}

func (v *txView) UpdateTimesheetUpload(_ context.Context, id int64, patch engine.TimesheetUploadPatch) (*engine.TimesheetUpload, error) {
	return v.data.updateTimesheetUpload(id, patch)
}

func (v *txView) TimesheetUploads(_ context.Context) ([]*engine.TimesheetUpload, error) {
	return v.data.listTimesheetUploads()
}

func (v *txView) CreatePayrollComponent(_ context.Context, c *engine.PayrollComponent) (*engine.PayrollComponent, error) {
	return v.data.createPayrollComponent(c)
}

func (v *txView) PayrollComponentsByEmployee(_ context.Context, employeeID int64) ([]*engine.PayrollComponent, error) {
	return v.data.payrollComponentsByEmployee(employeeID)
}

func (v *txView) CurrentPayrollComponent(_ context.Context, employeeID int64, asOf engine.Date) (*engine.PayrollComponent, error) {
	return v.data.currentPayrollComponent(employeeID, asOf)
}

func (v *txView) CreatePayrollCalculation(_ context.Context, c *engine.PayrollCalculation) (*engine.PayrollCalculation, error) {
	return v.data.createPayrollCalculation(c)
}

func (v *txView) PayrollCalculation(_ context.Context, id int64) (*engine.PayrollCalculation, error) {
	return v.data.payrollCalculation(id)
}

func (v *txView) PayrollCalculationByPeriod(_ context.Context, employeeID int64, period string) (*engine.PayrollCalculation, error) {
	return v.data.payrollCalculationByPeriod(employeeID, period)
}

func (v *txView) PayrollCalculationsByEmployee(_ context.Context, employeeID int64) ([]*engine.PayrollCalculation, error) {
	return v.data.payrollCalculationsByEmployee(employeeID)
}

var (
	_ engine.TxStorage = (*Memory)(nil)
	_ engine.Storage   = (*txView)(nil)
)
