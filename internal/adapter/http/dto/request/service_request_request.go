package request

import (
	"transporte_xpto/internal/domain/allocation"
	"transporte_xpto/internal/domain/entities"
	"transporte_xpto/internal/usecase"

	"github.com/shopspring/decimal"
)

// CreateServiceRequestRequest is sent by clients and coordinators. ClientID
// is ignored for client callers.
type CreateServiceRequestRequest struct {
	ClientID            string `json:"client_id"`
	Origin              string `json:"origin" binding:"required"`
	Destination         string `json:"destination" binding:"required"`
	ScheduledDate       string `json:"scheduled_date" binding:"required"`
	StartTime           string `json:"start_time" binding:"required"`
	RequestedPassengers int    `json:"requested_passengers" binding:"required"`
	VehicleType         string `json:"vehicle_type"`
	Notes               string `json:"notes"`
}

func (r CreateServiceRequestRequest) ToInput() usecase.CreateServiceRequestInput {
	return usecase.CreateServiceRequestInput{
		ClientID:            r.ClientID,
		Origin:              r.Origin,
		Destination:         r.Destination,
		ScheduledDate:       r.ScheduledDate,
		StartTime:           r.StartTime,
		RequestedPassengers: r.RequestedPassengers,
		VehicleType:         r.VehicleType,
		Notes:               r.Notes,
	}
}

type AssignmentRequest struct {
	VehicleID          string          `json:"vehicle_id" binding:"required"`
	DriverID           string          `json:"driver_id"`
	AssignedPassengers int             `json:"assigned_passengers" binding:"required"`
	ContractID         string          `json:"contract_id"`
	ChargeMode         string          `json:"charge_mode"`
	ChargeAmount       decimal.Decimal `json:"charge_amount"`
}

func toAssignmentInputs(in []AssignmentRequest) []allocation.AssignmentInput {
	out := make([]allocation.AssignmentInput, 0, len(in))
	for _, a := range in {
		out = append(out, allocation.AssignmentInput{
			VehicleID:          a.VehicleID,
			DriverID:           a.DriverID,
			AssignedPassengers: a.AssignedPassengers,
			ContractID:         a.ContractID,
			ChargeMode:         entities.ChargeMode(a.ChargeMode),
			ChargeAmount:       a.ChargeAmount,
		})
	}
	return out
}

// AcceptRequest either names one vehicle or lists assignments.
type AcceptRequest struct {
	VehicleID      string              `json:"vehicle_id"`
	DriverID       string              `json:"driver_id"`
	Assignments    []AssignmentRequest `json:"vehicle_assignments"`
	Origin         string              `json:"origin"`
	Destination    string              `json:"destination"`
	ContractID     string              `json:"contract_id"`
	ChargeMode     string              `json:"charge_mode"`
	ChargeAmount   decimal.Decimal     `json:"charge_amount"`
	PricingMode    string              `json:"pricing_mode"`
	EstimatedHours decimal.NullDecimal `json:"estimated_hours"`
	EstimatedKm    decimal.NullDecimal `json:"estimated_km"`
}

func (r AcceptRequest) ToInput() usecase.AcceptInput {
	in := usecase.AcceptInput{
		VehicleID:      r.VehicleID,
		DriverID:       r.DriverID,
		Origin:         r.Origin,
		Destination:    r.Destination,
		ContractID:     r.ContractID,
		ChargeMode:     entities.ChargeMode(r.ChargeMode),
		ChargeAmount:   r.ChargeAmount,
		PricingMode:    entities.PricingMode(r.PricingMode),
		EstimatedHours: r.EstimatedHours,
		EstimatedKm:    r.EstimatedKm,
	}
	if len(r.Assignments) > 0 {
		in.Assignments = toAssignmentInputs(r.Assignments)
	}
	return in
}

// CoordinatorCreateRequest creates an already accepted request.
type CoordinatorCreateRequest struct {
	CreateServiceRequestRequest
	Acceptance AcceptRequest `json:"acceptance"`
}

func (r CoordinatorCreateRequest) ToInput() usecase.CoordinatorCreateInput {
	return usecase.CoordinatorCreateInput{
		Request:    r.CreateServiceRequestRequest.ToInput(),
		Acceptance: r.Acceptance.ToInput(),
	}
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

type AssignVehiclesRequest struct {
	Assignments []AssignmentRequest `json:"vehicle_assignments" binding:"required"`
}

func (r AssignVehiclesRequest) ToInput() []allocation.AssignmentInput {
	return toAssignmentInputs(r.Assignments)
}

type FinishRequest struct {
	FinalDate string `json:"final_date"`
	FinalTime string `json:"final_time" binding:"required"`
}

func (r FinishRequest) ToInput() usecase.FinishInput {
	return usecase.FinishInput{FinalDate: r.FinalDate, FinalTime: r.FinalTime}
}

// FinancialsRequest leaves absent or null amounts untouched.
type FinancialsRequest struct {
	AmountToBill decimal.NullDecimal `json:"amount_to_bill"`
	AmountPaid   decimal.NullDecimal `json:"amount_paid"`
}

func (r FinancialsRequest) ToInput() usecase.FinancialsInput {
	return usecase.FinancialsInput{AmountToBill: r.AmountToBill, AmountPaid: r.AmountPaid}
}

type DocumentRequest struct {
	Number string          `json:"number"`
	Amount decimal.Decimal `json:"amount"`
}

type VehicleAccountingRequest struct {
	PreInvoice    *DocumentRequest `json:"pre_invoice"`
	PreSettlement *DocumentRequest `json:"pre_settlement"`
	InvoiceNumber string           `json:"invoice_number"`
}

func (r VehicleAccountingRequest) ToInput() usecase.VehicleAccountingInput {
	in := usecase.VehicleAccountingInput{InvoiceNumber: r.InvoiceNumber}
	if r.PreInvoice != nil {
		in.PreInvoice = &usecase.DocumentInput{Number: r.PreInvoice.Number, Amount: r.PreInvoice.Amount}
	}
	if r.PreSettlement != nil {
		in.PreSettlement = &usecase.DocumentInput{Number: r.PreSettlement.Number, Amount: r.PreSettlement.Amount}
	}
	return in
}
