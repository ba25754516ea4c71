/*
leave.go - Leave request validation and approval workflow

PURPOSE:
  LeaveService mediates everything between an employee asking for days off
  and a balance going down:
    - Validate: accrue-then-check, reporting a human-readable verdict
    - CreateRequest: route by leave type (vacation waits for approval,
      everything else auto-approves and deducts immediately)
    - Approve/Deny: terminal decisions on pending requests

INVARIANTS:
  - DeductBalance is the only operation that lowers a balance, and it never
    drives one below zero
  - A request causes at most one deduction over its lifetime
  - Accruals are reconciled before any balance check, so a valid request is
    judged against the freshest entitlement
*/
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ValidationResult is the outcome of checking a prospective request against
// the employee's balance.
type ValidationResult struct {
	Valid   bool
	Message string
}

// CreateRequestInput carries the fields a caller supplies for a new request.
// IsWithPay defaults to true when nil.
type CreateRequestInput struct {
	EmployeeID int64
	LeaveType  string
	StartDate  Date
	EndDate    Date
	Days       decimal.Decimal
	Reason     string
	IsWithPay  *bool
}

// LeaveService implements the request workflow over Storage.
type LeaveService struct {
	Store    Storage
	Accruals *AccrualCalculator
	Now      func() time.Time
}

func NewLeaveService(store Storage) *LeaveService {
	return &LeaveService{
		Store:    store,
		Accruals: NewAccrualCalculator(store),
		Now:      time.Now,
	}
}

func (s *LeaveService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// =============================================================================
// VALIDATION AND DEDUCTION
// =============================================================================

// checkBalance reconciles accruals, then verifies the balance covers the
// requested days. Returns the typed error describing the failure, or nil.
func (s *LeaveService) checkBalance(ctx context.Context, store Storage, employeeID int64, leaveType string, days decimal.Decimal) error {
	balance, err := s.Accruals.process(ctx, store, employeeID)
	if err != nil {
		if IsNotFound(err) {
			return ErrBalanceNotFound
		}
		return err
	}

	available := balance.Balance(leaveType)
	if days.GreaterThan(available) {
		return &InsufficientBalanceError{
			EmployeeID: employeeID,
			LeaveType:  leaveType,
			Available:  available,
			Requested:  days,
		}
	}
	return nil
}

// Validate reports whether a request for the given days would succeed.
// Business-rule failures arrive in the result, not the error.
func (s *LeaveService) Validate(ctx context.Context, employeeID int64, leaveType string, days decimal.Decimal) (ValidationResult, error) {
	var result ValidationResult
	err := withTx(ctx, s.Store, func(store Storage) error {
		switch err := s.checkBalance(ctx, store, employeeID, leaveType, days); {
		case err == nil:
			result = ValidationResult{Valid: true, Message: "Leave request is valid"}
		case IsClientError(err) || IsNotFound(err):
			result = ValidationResult{Valid: false, Message: verdict(err)}
		default:
			return err
		}
		return nil
	})
	return result, err
}

func verdict(err error) string {
	if IsNotFound(err) || errors.Is(err, ErrBalanceNotFound) {
		return "Leave balance not found"
	}
	return err.Error()
}

// DeductBalance lowers the employee's current-year balance by the given
// days. Returns false when the balance cannot cover the deduction; the
// balance is left untouched in that case.
func (s *LeaveService) DeductBalance(ctx context.Context, employeeID int64, leaveType string, days decimal.Decimal) (bool, error) {
	var ok bool
	err := withTx(ctx, s.Store, func(store Storage) error {
		var err error
		ok, err = s.deduct(ctx, store, employeeID, leaveType, days)
		return err
	})
	return ok, err
}

func (s *LeaveService) deduct(ctx context.Context, store Storage, employeeID int64, leaveType string, days decimal.Decimal) (bool, error) {
	year := DateOf(s.now()).Year()
	balance, err := store.LeaveBalance(ctx, employeeID, year)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("deduct balance: %w", err)
	}

	available := balance.Balance(leaveType)
	if days.GreaterThan(available) {
		return false, nil
	}

	remaining := available.Sub(days)
	patch := LeaveBalancePatch{}
	if leaveType == LeaveCasual {
		patch.CasualLeaveBalance = &remaining
	} else {
		patch.VacationLeaveBalance = &remaining
	}
	if _, err := store.UpdateLeaveBalance(ctx, balance.ID, patch); err != nil {
		return false, fmt.Errorf("deduct balance: %w", err)
	}
	return true, nil
}

// =============================================================================
// REQUEST LIFECYCLE
// =============================================================================

// CreateRequest validates and records a new leave request. Vacation requests
// are created pending and wait for an approver; all other types are
// auto-approved with the balance deducted in the same transaction.
func (s *LeaveService) CreateRequest(ctx context.Context, in CreateRequestInput) (*TimeOffRequest, error) {
	var created *TimeOffRequest
	err := withTx(ctx, s.Store, func(store Storage) error {
		if err := s.checkBalance(ctx, store, in.EmployeeID, in.LeaveType, in.Days); err != nil {
			return err
		}

		requiresApproval := in.LeaveType == LeaveVacation
		status := StatusApproved
		if requiresApproval {
			status = StatusPending
		}

		withPay := true
		if in.IsWithPay != nil {
			withPay = *in.IsWithPay
		}

		request, err := store.CreateTimeOffRequest(ctx, &TimeOffRequest{
			EmployeeID:       in.EmployeeID,
			LeaveType:        in.LeaveType,
			StartDate:        in.StartDate,
			EndDate:          in.EndDate,
			Days:             in.Days,
			Reason:           in.Reason,
			Status:           status,
			RequiresApproval: requiresApproval,
			IsWithPay:        withPay,
		})
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		if !requiresApproval {
			ok, err := s.deduct(ctx, store, in.EmployeeID, in.LeaveType, in.Days)
			if err != nil {
				return err
			}
			if !ok {
				return &InsufficientBalanceError{
					EmployeeID: in.EmployeeID,
					LeaveType:  in.LeaveType,
					Requested:  in.Days,
				}
			}
		}

		created = request
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Approve transitions a pending request to approved, deducting the balance
// exactly once. Re-validates against the current balance first; a request
// that can no longer be covered fails with InsufficientBalanceError and the
// request stays pending.
func (s *LeaveService) Approve(ctx context.Context, requestID, approverID int64) (*TimeOffRequest, error) {
	return s.decide(ctx, requestID, approverID, StatusApproved)
}

// Deny transitions a pending request to denied. No balance mutation.
func (s *LeaveService) Deny(ctx context.Context, requestID, approverID int64) (*TimeOffRequest, error) {
	return s.decide(ctx, requestID, approverID, StatusDenied)
}

func (s *LeaveService) decide(ctx context.Context, requestID, approverID int64, status string) (*TimeOffRequest, error) {
	var updated *TimeOffRequest
	err := withTx(ctx, s.Store, func(store Storage) error {
		request, err := store.TimeOffRequest(ctx, requestID)
		if err != nil {
			return fmt.Errorf("decide request: %w", err)
		}
		if request.Status != StatusPending {
			return fmt.Errorf("request %d is already %s: %w", requestID, request.Status, ErrInvalidState)
		}

		if status == StatusApproved {
			if err := s.checkBalance(ctx, store, request.EmployeeID, request.LeaveType, request.Days); err != nil {
				return err
			}
			ok, err := s.deduct(ctx, store, request.EmployeeID, request.LeaveType, request.Days)
			if err != nil {
				return err
			}
			if !ok {
				return &InsufficientBalanceError{
					EmployeeID: request.EmployeeID,
					LeaveType:  request.LeaveType,
					Requested:  request.Days,
				}
			}
		}

		responseDate := s.now()
		updated, err = store.UpdateTimeOffRequest(ctx, requestID, TimeOffRequestPatch{
			Status:       &status,
			ApproverID:   &approverID,
			ResponseDate: &responseDate,
		})
		if err != nil {
			return fmt.Errorf("decide request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
