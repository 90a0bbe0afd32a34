package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApprovalStatus is the commercial decision on a request.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalAccepted ApprovalStatus = "accepted"
	ApprovalRejected ApprovalStatus = "rejected"
)

// ExecutionStatus is the operational progress of a request.
type ExecutionStatus string

const (
	ExecutionUnassigned ExecutionStatus = "unassigned"
	ExecutionNotStarted ExecutionStatus = "not_started"
	ExecutionStarted    ExecutionStatus = "started"
	ExecutionFinished   ExecutionStatus = "finished"
)

// AccountingStatus is the settlement progress of a request. The order of the
// constants is the forward order of the workflow.
type AccountingStatus string

const (
	AccountingNotStarted        AccountingStatus = "not_started"
	AccountingPendingExpenses   AccountingStatus = "pending_expenses"
	AccountingExpensesComplete  AccountingStatus = "expenses_complete"
	AccountingPreInvoicePending AccountingStatus = "pre_invoice_pending"
	AccountingReadyToInvoice    AccountingStatus = "ready_to_invoice"
	AccountingInvoiced          AccountingStatus = "invoiced"
)

var accountingOrder = map[AccountingStatus]int{
	AccountingNotStarted:        0,
	AccountingPendingExpenses:   1,
	AccountingExpensesComplete:  2,
	AccountingPreInvoicePending: 3,
	AccountingReadyToInvoice:    4,
	AccountingInvoiced:          5,
}

// Rank returns the position of s in the accounting workflow.
func (s AccountingStatus) Rank() int {
	return accountingOrder[s]
}

// ChargeMode says whether a service is paid from a contract budget.
type ChargeMode string

const (
	ChargeWithinContract  ChargeMode = "within_contract"
	ChargeOutsideContract ChargeMode = "outside_contract"
)

// PricingMode is the tariff applied to a contract rate.
type PricingMode string

const (
	PricingPerHour PricingMode = "per_hour"
	PricingPerKm   PricingMode = "per_km"
	PricingPerTrip PricingMode = "per_trip"
	PricingPerLeg  PricingMode = "per_leg"
	PricingFixed   PricingMode = "fixed"
)

// DocumentRef is a per-vehicle accounting sub-block (pre-invoice or
// pre-settlement) registered by accounting.
type DocumentRef struct {
	Number     string          `json:"number"`
	Amount     decimal.Decimal `json:"amount"`
	RecordedBy string          `json:"recorded_by"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// VehicleAccounting holds the per-vehicle settlement documents.
type VehicleAccounting struct {
	PreInvoice    *DocumentRef `json:"pre_invoice,omitempty"`
	PreSettlement *DocumentRef `json:"pre_settlement,omitempty"`
	InvoiceNumber string       `json:"invoice_number,omitempty"`
	InvoicedAt    *time.Time   `json:"invoiced_at,omitempty"`
}

// VehicleAssignment is one vehicle serving part of a request.
type VehicleAssignment struct {
	VehicleID          string            `json:"vehicle_id"`
	Plate              string            `json:"plate"`
	Seats              int               `json:"seats"`
	Category           FleetCategory     `json:"category"`
	OwnerName          string            `json:"owner_name"`
	DriverID           string            `json:"driver_id"`
	DriverName         string            `json:"driver_name"`
	DriverPhone        string            `json:"driver_phone"`
	AssignedPassengers int               `json:"assigned_passengers"`
	ContractID         string            `json:"contract_id,omitempty"`
	ChargeMode         ChargeMode        `json:"charge_mode,omitempty"`
	ChargeAmount       decimal.Decimal   `json:"charge_amount"`
	Accounting         VehicleAccounting `json:"accounting"`
}

// ServiceRequest is the aggregate root of a transport service.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (company_id-scheduled_date-index): company_id + scheduled_date
//
// Monetary representation:
//   - AmountToBill / AmountPaid are unset until sales or operations fill them.
//   - Profit and ProfitPercent are always derived, never written directly.
//
// VehicleID / DriverID mirror the first assignment so that single-vehicle
// readers keep working.
type ServiceRequest struct {
	ID             string `json:"id"`
	CompanyID      string `json:"company_id"`
	SequenceNumber string `json:"sequence_number"`

	ClientID   string `json:"client_id"`
	ClientName string `json:"client_name"`

	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	OriginID      string `json:"origin_id,omitempty"`
	DestinationID string `json:"destination_id,omitempty"`

	ScheduledDate       string `json:"scheduled_date"`
	StartTime           string `json:"start_time"`
	FinalDate           string `json:"final_date,omitempty"`
	FinalTime           string `json:"final_time,omitempty"`
	RequestedPassengers int    `json:"requested_passengers"`
	VehicleType         string `json:"vehicle_type,omitempty"`
	Notes               string `json:"notes,omitempty"`

	ApprovalStatus   ApprovalStatus   `json:"approval_status"`
	ExecutionStatus  ExecutionStatus  `json:"execution_status"`
	AccountingStatus AccountingStatus `json:"accounting_status"`

	VehicleID          string              `json:"vehicle_id,omitempty"`
	DriverID           string              `json:"driver_id,omitempty"`
	VehicleAssignments []VehicleAssignment `json:"vehicle_assignments"`

	ContractID     string              `json:"contract_id,omitempty"`
	ChargeMode     ChargeMode          `json:"charge_mode,omitempty"`
	ChargeAmount   decimal.Decimal     `json:"charge_amount"`
	PricingMode    PricingMode         `json:"pricing_mode,omitempty"`
	EstimatedPrice decimal.NullDecimal `json:"estimated_price"`

	AmountToBill             decimal.NullDecimal `json:"amount_to_bill"`
	AmountPaid               decimal.NullDecimal `json:"amount_paid"`
	TotalOperationalExpenses decimal.Decimal     `json:"total_operational_expenses"`
	Profit                   decimal.Decimal     `json:"profit"`
	ProfitPercent            decimal.Decimal     `json:"profit_percent"`
	TotalHours               decimal.NullDecimal `json:"total_hours"`

	Prefactura    *Prefactura `json:"prefactura,omitempty"`
	InvoiceNumber string      `json:"invoice_number,omitempty"`
	CheckoutURL   string      `json:"checkout_url,omitempty"`

	CreatedBy       string     `json:"created_by"`
	AcceptedBy      string     `json:"accepted_by,omitempty"`
	AcceptedAt      *time.Time `json:"accepted_at,omitempty"`
	RejectedBy      string     `json:"rejected_by,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	StartedBy       string     `json:"started_by,omitempty"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	FinishedBy      string     `json:"finished_by,omitempty"`
	FinishedAt      *time.Time `json:"finished_at,omitempty"`

	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AssignedVehicleIDs lists every vehicle serving the request, the primary
// field included, without duplicates.
func (r ServiceRequest) AssignedVehicleIDs() []string {
	seen := map[string]bool{}
	var out []string
	add := func(id string) {
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		out = append(out, id)
	}
	add(r.VehicleID)
	for _, a := range r.VehicleAssignments {
		add(a.VehicleID)
	}
	return out
}

// Assignment returns the assignment for vehicleID.
func (r *ServiceRequest) Assignment(vehicleID string) (*VehicleAssignment, bool) {
	for i := range r.VehicleAssignments {
		if r.VehicleAssignments[i].VehicleID == vehicleID {
			return &r.VehicleAssignments[i], true
		}
	}
	return nil, false
}

// IsOwnedBy reports whether clientID is the request's client.
func (r ServiceRequest) IsOwnedBy(clientID string) bool {
	return clientID != "" && r.ClientID == clientID
}
