package lifecycle

import (
	"strings"
	"time"

	"transporte_xpto/internal/domain/availability"
	"transporte_xpto/internal/domain/entities"
	"transporte_xpto/pkg"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

var (
	ErrNotPending        = pkg.Validation("REQUEST_NOT_PENDING", "request is not pending approval")
	ErrNotAccepted       = pkg.Validation("REQUEST_NOT_ACCEPTED", "request has not been accepted")
	ErrAlreadyStarted    = pkg.Validation("REQUEST_ALREADY_STARTED", "request has already been started")
	ErrNotStarted        = pkg.Validation("REQUEST_NOT_STARTED", "request has not been started")
	ErrAlreadyFinished   = pkg.Validation("REQUEST_ALREADY_FINISHED", "request has already been finished")
	ErrNoVehicleAssigned = pkg.Validation("NO_VEHICLE_ASSIGNED", "request has no vehicle assigned")
	ErrInvalidFinalTime  = pkg.Validation("INVALID_FINAL_TIME", "final date and time must be after the start")
	ErrInvalidDate       = pkg.Validation("INVALID_DATE", "invalid date, expected YYYY-MM-DD")
	ErrInvalidTime       = pkg.Validation("INVALID_TIME", "invalid time of day, expected HH:MM")
	ErrRejectionReason   = pkg.Validation("REJECTION_REASON_REQUIRED", "a rejection reason is required")
	ErrNotAllowed        = pkg.Forbidden("ROLE_NOT_ALLOWED", "role not allowed for this operation")
)

// Role groups allowed to drive each transition.
var (
	CoordinatorRoles = []entities.Role{entities.RoleOperationsCoordinator, entities.RoleAdmin, entities.RoleSuperAdmin}
	FinancialRoles   = []entities.Role{entities.RoleSales, entities.RoleOperationsCoordinator, entities.RoleAdmin, entities.RoleSuperAdmin}
)

// Require fails with ErrNotAllowed unless actor holds one of roles.
func Require(actor entities.Actor, roles ...entities.Role) error {
	if !actor.HasRole(roles...) {
		return ErrNotAllowed.WithMessage("role %q not allowed for this operation", actor.Role)
	}
	return nil
}

// ValidateSchedule checks the date and start time of a request.
func ValidateSchedule(date, start string) error {
	if _, err := time.Parse(DateLayout, strings.TrimSpace(date)); err != nil {
		return ErrInvalidDate
	}
	if _, err := availability.ParseClock(start); err != nil {
		return ErrInvalidTime
	}
	return nil
}

// AssignVehicles replaces the vehicle list. The primary vehicle and driver
// fields mirror the first assignment.
func AssignVehicles(req *entities.ServiceRequest, assignments []entities.VehicleAssignment) {
	req.VehicleAssignments = assignments
	if len(assignments) == 0 {
		req.VehicleID, req.DriverID = "", ""
		return
	}
	req.VehicleID = assignments[0].VehicleID
	req.DriverID = assignments[0].DriverID
	if req.ExecutionStatus == entities.ExecutionUnassigned || req.ExecutionStatus == "" {
		req.ExecutionStatus = entities.ExecutionNotStarted
	}
}

// Accept moves a pending request to accepted.
func Accept(req *entities.ServiceRequest, actor entities.Actor, now time.Time) error {
	if err := Require(actor, CoordinatorRoles...); err != nil {
		return err
	}
	if req.ApprovalStatus != entities.ApprovalPending {
		return ErrNotPending
	}
	if len(req.AssignedVehicleIDs()) == 0 {
		return ErrNoVehicleAssigned
	}
	req.ApprovalStatus = entities.ApprovalAccepted
	req.AcceptedBy = actor.ID
	req.AcceptedAt = &now
	req.UpdatedAt = now
	return nil
}

// Reject closes a pending request. Rejection is terminal for approval.
func Reject(req *entities.ServiceRequest, actor entities.Actor, reason string, now time.Time) error {
	if err := Require(actor, CoordinatorRoles...); err != nil {
		return err
	}
	if req.ApprovalStatus != entities.ApprovalPending {
		return ErrNotPending
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrRejectionReason
	}
	req.ApprovalStatus = entities.ApprovalRejected
	req.RejectedBy = actor.ID
	req.RejectedAt = &now
	req.RejectionReason = reason
	req.UpdatedAt = now
	return nil
}

// Start moves an accepted, not started request to started. Starting twice
// is an error.
func Start(req *entities.ServiceRequest, actor entities.Actor, now time.Time) error {
	if err := Require(actor, CoordinatorRoles...); err != nil {
		return err
	}
	if req.ApprovalStatus != entities.ApprovalAccepted {
		return ErrNotAccepted
	}
	switch req.ExecutionStatus {
	case entities.ExecutionStarted:
		return ErrAlreadyStarted
	case entities.ExecutionFinished:
		return ErrAlreadyFinished
	case entities.ExecutionUnassigned:
		return ErrNoVehicleAssigned
	}
	req.ExecutionStatus = entities.ExecutionStarted
	req.StartedBy = actor.ID
	req.StartedAt = &now
	req.UpdatedAt = now
	return nil
}

// Finish moves a started request to finished and records the elapsed hours.
// An empty finalDate means the scheduled date.
func Finish(req *entities.ServiceRequest, actor entities.Actor, finalDate, finalTime string, now time.Time) error {
	if err := Require(actor, CoordinatorRoles...); err != nil {
		return err
	}
	switch req.ExecutionStatus {
	case entities.ExecutionFinished:
		return ErrAlreadyFinished
	case entities.ExecutionStarted:
	default:
		return ErrNotStarted
	}

	finalDate = strings.TrimSpace(finalDate)
	if finalDate == "" {
		finalDate = req.ScheduledDate
	}
	hours, err := ElapsedHours(req.ScheduledDate, req.StartTime, finalDate, finalTime)
	if err != nil {
		return err
	}

	req.FinalDate = finalDate
	req.FinalTime = strings.TrimSpace(finalTime)
	req.TotalHours = decimal.NewNullDecimal(hours)
	req.ExecutionStatus = entities.ExecutionFinished
	req.FinishedBy = actor.ID
	req.FinishedAt = &now
	req.UpdatedAt = now
	return nil
}

// ElapsedHours returns the hours between two local date/time pairs rounded
// to two decimals.
func ElapsedHours(startDate, startTime, endDate, endTime string) (decimal.Decimal, error) {
	start, err := at(startDate, startTime)
	if err != nil {
		return decimal.Zero, err
	}
	end, err := at(endDate, endTime)
	if err != nil {
		return decimal.Zero, err
	}
	if !end.After(start) {
		return decimal.Zero, ErrInvalidFinalTime
	}
	minutes := decimal.NewFromInt(int64(end.Sub(start) / time.Minute))
	return minutes.Div(decimal.NewFromInt(60)).Round(2), nil
}

func at(date, clock string) (time.Time, error) {
	day, err := time.Parse(DateLayout, strings.TrimSpace(date))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	m, err := availability.ParseClock(clock)
	if err != nil {
		return time.Time{}, ErrInvalidTime
	}
	return day.Add(time.Duration(m) * time.Minute), nil
}

// AdvanceAccounting moves the accounting status forward as far as the
// current data allows:
//   - not_started -> pending_expenses once amount_to_bill and amount_paid
//     are both positive
//   - pending_expenses -> expenses_complete once every assigned vehicle has
//     at least one expense
//
// Later states belong to the pre-invoice workflow. The status never moves
// backward here.
func AdvanceAccounting(req *entities.ServiceRequest, vehiclesWithoutExpenses int) bool {
	changed := false
	for {
		switch req.AccountingStatus {
		case entities.AccountingNotStarted, "":
			if !positive(req.AmountToBill) || !positive(req.AmountPaid) {
				return changed
			}
			req.AccountingStatus = entities.AccountingPendingExpenses
		case entities.AccountingPendingExpenses:
			if len(req.AssignedVehicleIDs()) == 0 || vehiclesWithoutExpenses > 0 {
				return changed
			}
			req.AccountingStatus = entities.AccountingExpensesComplete
		default:
			return changed
		}
		changed = true
	}
}

func positive(v decimal.NullDecimal) bool {
	return v.Valid && v.Decimal.IsPositive()
}
