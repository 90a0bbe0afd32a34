package response

import (
	"time"

	"transporte_xpto/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// ServiceRequestResponse is the internal view of a request. The payment
// section is only filled for roles that settle vehicle owners.
type ServiceRequestResponse struct {
	entities.ServiceRequest
	PaymentSection *entities.PaymentSection `json:"payment_section,omitempty"`
}

// ClientAssignmentResponse is what a client sees of an assigned vehicle.
type ClientAssignmentResponse struct {
	VehicleID          string `json:"vehicle_id"`
	Plate              string `json:"plate"`
	Seats              int    `json:"seats"`
	DriverName         string `json:"driver_name"`
	DriverPhone        string `json:"driver_phone"`
	AssignedPassengers int    `json:"assigned_passengers"`
}

// ClientPrefacturaResponse is only present once the pre-invoice was sent.
type ClientPrefacturaResponse struct {
	Number           string                   `json:"number"`
	State            entities.PrefacturaState `json:"state"`
	LastSentAt       *time.Time               `json:"last_sent_at,omitempty"`
	ClientApprovedAt *time.Time               `json:"client_approved_at,omitempty"`
	ClientNote       string                   `json:"client_note,omitempty"`
}

// ClientServiceRequestResponse hides costs, margins, contract internals and
// per-vehicle accounting.
type ClientServiceRequestResponse struct {
	ID                  string                     `json:"id"`
	SequenceNumber      string                     `json:"sequence_number"`
	ClientName          string                     `json:"client_name"`
	Origin              string                     `json:"origin"`
	Destination         string                     `json:"destination"`
	ScheduledDate       string                     `json:"scheduled_date"`
	StartTime           string                     `json:"start_time"`
	FinalDate           string                     `json:"final_date,omitempty"`
	FinalTime           string                     `json:"final_time,omitempty"`
	RequestedPassengers int                        `json:"requested_passengers"`
	VehicleType         string                     `json:"vehicle_type,omitempty"`
	Notes               string                     `json:"notes,omitempty"`
	ApprovalStatus      entities.ApprovalStatus    `json:"approval_status"`
	ExecutionStatus     entities.ExecutionStatus   `json:"execution_status"`
	AccountingStatus    entities.AccountingStatus  `json:"accounting_status"`
	RejectionReason     string                     `json:"rejection_reason,omitempty"`
	Vehicles            []ClientAssignmentResponse `json:"vehicles"`
	AmountToBill        decimal.NullDecimal        `json:"amount_to_bill"`
	Prefactura          *ClientPrefacturaResponse  `json:"prefactura,omitempty"`
	InvoiceNumber       string                     `json:"invoice_number,omitempty"`
	CheckoutURL         string                     `json:"checkout_url,omitempty"`
	CreatedAt           time.Time                  `json:"created_at"`
	UpdatedAt           time.Time                  `json:"updated_at"`
}

// ServiceRequestForRole projects a request for the caller role.
func ServiceRequestForRole(role entities.Role, req entities.ServiceRequest, section *entities.PaymentSection) any {
	switch role {
	case entities.RoleClient:
		return FromServiceRequestForClient(req)
	case entities.RoleSales:
		return ServiceRequestResponse{ServiceRequest: req}
	default:
		return ServiceRequestResponse{ServiceRequest: req, PaymentSection: section}
	}
}

// ServiceRequestsForRole projects a list without payment sections.
func ServiceRequestsForRole(role entities.Role, reqs []entities.ServiceRequest) []any {
	out := make([]any, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, ServiceRequestForRole(role, r, nil))
	}
	return out
}

func FromServiceRequestForClient(r entities.ServiceRequest) ClientServiceRequestResponse {
	res := ClientServiceRequestResponse{
		ID:                  r.ID,
		SequenceNumber:      r.SequenceNumber,
		ClientName:          r.ClientName,
		Origin:              r.Origin,
		Destination:         r.Destination,
		ScheduledDate:       r.ScheduledDate,
		StartTime:           r.StartTime,
		FinalDate:           r.FinalDate,
		FinalTime:           r.FinalTime,
		RequestedPassengers: r.RequestedPassengers,
		VehicleType:         r.VehicleType,
		Notes:               r.Notes,
		ApprovalStatus:      r.ApprovalStatus,
		ExecutionStatus:     r.ExecutionStatus,
		AccountingStatus:    r.AccountingStatus,
		RejectionReason:     r.RejectionReason,
		Vehicles:            make([]ClientAssignmentResponse, 0, len(r.VehicleAssignments)),
		AmountToBill:        r.AmountToBill,
		InvoiceNumber:       r.InvoiceNumber,
		CheckoutURL:         r.CheckoutURL,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
	for _, a := range r.VehicleAssignments {
		res.Vehicles = append(res.Vehicles, ClientAssignmentResponse{
			VehicleID:          a.VehicleID,
			Plate:              a.Plate,
			Seats:              a.Seats,
			DriverName:         a.DriverName,
			DriverPhone:        a.DriverPhone,
			AssignedPassengers: a.AssignedPassengers,
		})
	}
	if p := r.Prefactura; p != nil && p.SentToClient {
		res.Prefactura = &ClientPrefacturaResponse{
			Number:           p.Number,
			State:            p.State,
			LastSentAt:       p.LastSentAt,
			ClientApprovedAt: p.ClientApprovedAt,
			ClientNote:       p.ClientNote,
		}
	}
	return res
}
