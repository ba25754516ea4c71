/*
Package timesheet ingests worked-day records from CSV batches.

PURPOSE:
  Turns an uploaded CSV into timesheet_entries rows the payroll calculator
  aggregates. Row-level problems (unknown employee, bad cost center code,
  malformed values) are accumulated and reported per row; they never abort
  the batch.

CSV FORMAT:
  Header row with named columns. Required: employeeId, workDate,
  hoursWorked. Optional: costCenterCode, overtimeHours, breakHours, remarks.

BOOKKEEPING:
  Every import records a TimesheetUpload row keyed by a generated batch ID.
  Entries carry the batch ID so a bad upload can be traced. Final status is
  completed or completed_with_errors; row errors are stored as JSON in
  error_details.
*/
package timesheet

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warp/hr-engine/engine"
)

// RowError describes why one CSV row was rejected.
type RowError struct {
	Row     int    `json:"row"` // 1-based data row number
	Message string `json:"error"`
}

// Result summarizes one import batch.
type Result struct {
	Upload    *engine.TimesheetUpload
	Processed int
	Errors    []RowError
}

// Importer parses timesheet CSVs into the store.
type Importer struct {
	Store      engine.Storage
	NewBatchID func() string // injectable for tests; defaults to uuid
}

func NewImporter(store engine.Storage) *Importer {
	return &Importer{
		Store:      store,
		NewBatchID: uuid.NewString,
	}
}

func (im *Importer) batchID() string {
	if im.NewBatchID != nil {
		return im.NewBatchID()
	}
	return uuid.NewString()
}

// ImportCSV reads the whole CSV from r and ingests it as one batch.
// Returns an error only for batch-level failures (unreadable header, missing
// required columns, storage errors); bad rows land in Result.Errors.
func (im *Importer) ImportCSV(ctx context.Context, r io.Reader, filename, actor string) (*Result, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	cols := map[string]int{}
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"employeeId", "workDate", "hoursWorked"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("CSV header is missing required column %q", required)
		}
	}

	upload, err := im.Store.CreateTimesheetUpload(ctx, &engine.TimesheetUpload{
		BatchID:    im.batchID(),
		Filename:   filename,
		UploadedBy: actor,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record upload: %w", err)
	}

	var (
		entries   []*engine.TimesheetEntry
		rowErrors []RowError
		rowNum    int
	)
	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			rowErrors = append(rowErrors, RowError{Row: rowNum, Message: err.Error()})
			continue
		}

		entry, rowErr := im.parseRow(ctx, record, field, upload.BatchID)
		if rowErr != "" {
			rowErrors = append(rowErrors, RowError{Row: rowNum, Message: rowErr})
			continue
		}
		entries = append(entries, entry)
	}

	if len(entries) > 0 {
		if _, err := im.Store.CreateTimesheetEntries(ctx, entries); err != nil {
			return nil, fmt.Errorf("failed to insert timesheet entries: %w", err)
		}
	}

	status := "completed"
	if len(rowErrors) > 0 {
		status = "completed_with_errors"
	}
	details := ""
	if len(rowErrors) > 0 {
		raw, err := json.Marshal(rowErrors)
		if err != nil {
			return nil, fmt.Errorf("failed to encode row errors: %w", err)
		}
		details = string(raw)
	}

	processed := len(entries)
	errorCount := len(rowErrors)
	upload, err = im.Store.UpdateTimesheetUpload(ctx, upload.ID, engine.TimesheetUploadPatch{
		TotalRecords:     &rowNum,
		ProcessedRecords: &processed,
		ErrorRecords:     &errorCount,
		Status:           &status,
		ErrorDetails:     &details,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to finalize upload: %w", err)
	}

	return &Result{Upload: upload, Processed: processed, Errors: rowErrors}, nil
}

// parseRow resolves and validates one data row. Returns a non-empty message
// when the row must be rejected.
func (im *Importer) parseRow(ctx context.Context, record []string, field func([]string, string) string, batchID string) (*engine.TimesheetEntry, string) {
	employeeRaw := field(record, "employeeId")
	workDateRaw := field(record, "workDate")
	hoursRaw := field(record, "hoursWorked")
	if employeeRaw == "" || workDateRaw == "" || hoursRaw == "" {
		return nil, "Missing required fields: employeeId, workDate, hoursWorked"
	}

	employeeID, err := strconv.ParseInt(employeeRaw, 10, 64)
	if err != nil {
		return nil, fmt.Sprintf("Invalid employee id: %s", employeeRaw)
	}
	employee, err := im.Store.Employee(ctx, employeeID)
	if err != nil {
		if engine.IsNotFound(err) {
			return nil, fmt.Sprintf("Employee not found: %s", employeeRaw)
		}
		return nil, err.Error()
	}

	var costCenterID int64
	if code := field(record, "costCenterCode"); code != "" {
		costCenter, err := im.Store.CostCenterByCode(ctx, code)
		if err != nil {
			if engine.IsNotFound(err) {
				return nil, fmt.Sprintf("Cost center not found: %s", code)
			}
			return nil, err.Error()
		}
		costCenterID = costCenter.ID
	}

	workDate, err := engine.ParseDate(workDateRaw)
	if err != nil {
		return nil, fmt.Sprintf("Invalid work date: %s", workDateRaw)
	}
	hours, err := decimal.NewFromString(hoursRaw)
	if err != nil {
		return nil, fmt.Sprintf("Invalid hours worked: %s", hoursRaw)
	}
	overtime, err := optionalDecimal(field(record, "overtimeHours"))
	if err != nil {
		return nil, fmt.Sprintf("Invalid overtime hours: %s", field(record, "overtimeHours"))
	}
	breakHours, err := optionalDecimal(field(record, "breakHours"))
	if err != nil {
		return nil, fmt.Sprintf("Invalid break hours: %s", field(record, "breakHours"))
	}

	return &engine.TimesheetEntry{
		EmployeeID:    employee.ID,
		CostCenterID:  costCenterID,
		WorkDate:      workDate,
		HoursWorked:   hours,
		OvertimeHours: overtime,
		BreakHours:    breakHours,
		Remarks:       field(record, "remarks"),
		UploadBatchID: batchID,
		IsManualEntry: false,
	}, ""
}

func optionalDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
