package allocation

import (
	"strings"

	"transporte_xpto/internal/domain/entities"
	"transporte_xpto/pkg"

	"github.com/shopspring/decimal"
)

var (
	ErrNoAssignments       = pkg.Validation("NO_ASSIGNMENTS", "at least one vehicle assignment is required")
	ErrUnknownVehicle      = pkg.NotFound("VEHICLE_NOT_FOUND", "vehicle not found")
	ErrDuplicateVehicle    = pkg.Validation("DUPLICATE_VEHICLE", "vehicle assigned more than once")
	ErrDriverNotAllowed    = pkg.Validation("DRIVER_NOT_ALLOWED", "driver is not allowed to drive this vehicle")
	ErrSeatsExceeded       = pkg.Validation("SEATS_EXCEEDED", "assigned passengers exceed vehicle seats")
	ErrInvalidAssignment   = pkg.Validation("INVALID_ASSIGNMENT", "assigned passengers must be greater than zero")
	ErrPassengerMismatch   = pkg.Validation("PASSENGER_MISMATCH", "assigned passengers must equal requested passengers")
	ErrInsufficientSeats   = pkg.Validation("INSUFFICIENT_COVERAGE", "assigned passengers do not cover requested passengers")
	ErrVehicleNotInCompany = pkg.Forbidden("VEHICLE_NOT_IN_COMPANY", "vehicle does not belong to the company")
)

// Mode is the strictness of the passenger total check.
type Mode int

const (
	// ModeExact is used on create and accept: the sum must equal the
	// requested passengers.
	ModeExact Mode = iota
	// ModeCovering is used when vehicles are assigned to an existing
	// request: the sum must cover the requested passengers. Vehicle
	// ownership is re-checked.
	ModeCovering
)

// AssignmentInput is one requested vehicle assignment.
type AssignmentInput struct {
	VehicleID          string              `json:"vehicle_id"`
	DriverID           string              `json:"driver_id"`
	AssignedPassengers int                 `json:"assigned_passengers"`
	ContractID         string              `json:"contract_id,omitempty"`
	ChargeMode         entities.ChargeMode `json:"charge_mode,omitempty"`
	ChargeAmount       decimal.Decimal     `json:"charge_amount"`
}

// Directory is the fleet data needed to confirm assignments.
type Directory struct {
	Vehicles map[string]entities.Vehicle
	Drivers  map[string]entities.Driver
}

// Confirm validates inputs against the fleet and builds the assignments.
// An empty driver defaults to the vehicle's primary driver.
func Confirm(mode Mode, companyID string, requested int, inputs []AssignmentInput, dir Directory) ([]entities.VehicleAssignment, error) {
	if requested <= 0 {
		return nil, ErrInvalidPassengers
	}
	if len(inputs) == 0 {
		return nil, ErrNoAssignments
	}

	out := make([]entities.VehicleAssignment, 0, len(inputs))
	seen := map[string]bool{}
	total := 0
	for _, in := range inputs {
		vehicleID := strings.TrimSpace(in.VehicleID)
		v, ok := dir.Vehicles[vehicleID]
		if vehicleID == "" || !ok {
			return nil, ErrUnknownVehicle.WithMessage("vehicle not found: %s", vehicleID)
		}
		if seen[vehicleID] {
			return nil, ErrDuplicateVehicle.WithMessage("vehicle assigned more than once: %s", v.Plate)
		}
		seen[vehicleID] = true

		if mode == ModeCovering && v.CompanyID != companyID {
			return nil, ErrVehicleNotInCompany.WithMessage("vehicle %s does not belong to the company", v.Plate)
		}

		driverID := strings.TrimSpace(in.DriverID)
		if driverID == "" {
			driverID = v.PrimaryDriverID
		}
		if driverID == "" || !v.CanBeDrivenBy(driverID) {
			return nil, ErrDriverNotAllowed.WithMessage("driver %s is not allowed to drive %s", driverID, v.Plate)
		}

		if in.AssignedPassengers <= 0 {
			return nil, ErrInvalidAssignment
		}
		if in.AssignedPassengers > v.Seats {
			return nil, ErrSeatsExceeded.WithMessage("%s has %d seats, %d assigned", v.Plate, v.Seats, in.AssignedPassengers)
		}
		total += in.AssignedPassengers

		d := dir.Drivers[driverID]
		out = append(out, entities.VehicleAssignment{
			VehicleID:          v.ID,
			Plate:              v.Plate,
			Seats:              v.Seats,
			Category:           v.Category,
			OwnerName:          v.OwnerName,
			DriverID:           driverID,
			DriverName:         d.Name,
			DriverPhone:        d.Phone,
			AssignedPassengers: in.AssignedPassengers,
			ContractID:         strings.TrimSpace(in.ContractID),
			ChargeMode:         in.ChargeMode,
			ChargeAmount:       in.ChargeAmount,
		})
	}

	switch mode {
	case ModeExact:
		if total != requested {
			return nil, ErrPassengerMismatch.WithMessage("assigned %d passengers, requested %d", total, requested)
		}
	case ModeCovering:
		if total < requested {
			return nil, ErrInsufficientSeats.WithMessage("assigned %d passengers, requested %d", total, requested)
		}
	}
	return out, nil
}

// ChargeDefaults is the request level charge of an acceptance.
type ChargeDefaults struct {
	ContractID   string
	ChargeMode   entities.ChargeMode
	ChargeAmount decimal.Decimal
}

// ApplyChargeDefaults gives every assignment without a contract the default
// contract, and every assignment without a charge mode the default mode and
// amount. Values set on the assignment are kept.
func ApplyChargeDefaults(assignments []entities.VehicleAssignment, def ChargeDefaults) {
	for i := range assignments {
		a := &assignments[i]
		if a.ContractID == "" {
			a.ContractID = def.ContractID
		}
		if a.ChargeMode == "" {
			a.ChargeMode = def.ChargeMode
			a.ChargeAmount = def.ChargeAmount
		}
	}
}
