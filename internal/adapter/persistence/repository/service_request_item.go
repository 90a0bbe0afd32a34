package repository

import (
	"transporte_xpto/internal/domain/entities"
)

type documentRefItem struct {
	Number     string `dynamodbav:"number"`
	Amount     string `dynamodbav:"amount"`
	RecordedBy string `dynamodbav:"recorded_by"`
	RecordedAt string `dynamodbav:"recorded_at"`
}

type assignmentItem struct {
	VehicleID          string           `dynamodbav:"vehicle_id"`
	Plate              string           `dynamodbav:"plate"`
	Seats              int              `dynamodbav:"seats"`
	Category           string           `dynamodbav:"category"`
	OwnerName          string           `dynamodbav:"owner_name,omitempty"`
	DriverID           string           `dynamodbav:"driver_id"`
	DriverName         string           `dynamodbav:"driver_name,omitempty"`
	DriverPhone        string           `dynamodbav:"driver_phone,omitempty"`
	AssignedPassengers int              `dynamodbav:"assigned_passengers"`
	ContractID         string           `dynamodbav:"contract_id,omitempty"`
	ChargeMode         string           `dynamodbav:"charge_mode,omitempty"`
	ChargeAmount       string           `dynamodbav:"charge_amount"`
	PreInvoice         *documentRefItem `dynamodbav:"pre_invoice,omitempty"`
	PreSettlement      *documentRefItem `dynamodbav:"pre_settlement,omitempty"`
	InvoiceNumber      string           `dynamodbav:"invoice_number,omitempty"`
	InvoicedAt         string           `dynamodbav:"invoiced_at,omitempty"`
}

type prefacturaItem struct {
	Number           string   `dynamodbav:"number"`
	RequestIDs       []string `dynamodbav:"request_ids"`
	State            string   `dynamodbav:"state"`
	GeneratedBy      string   `dynamodbav:"generated_by"`
	GeneratedAt      string   `dynamodbav:"generated_at"`
	Approved         bool     `dynamodbav:"approved"`
	ApprovedBy       string   `dynamodbav:"approved_by,omitempty"`
	ApprovedAt       string   `dynamodbav:"approved_at,omitempty"`
	RejectedBy       string   `dynamodbav:"rejected_by,omitempty"`
	RejectedAt       string   `dynamodbav:"rejected_at,omitempty"`
	RejectionReason  string   `dynamodbav:"rejection_reason,omitempty"`
	SentToClient     bool     `dynamodbav:"sent_to_client"`
	SentCount        int      `dynamodbav:"sent_count"`
	LastSentAt       string   `dynamodbav:"last_sent_at,omitempty"`
	ClientApprovedBy string   `dynamodbav:"client_approved_by,omitempty"`
	ClientApprovedAt string   `dynamodbav:"client_approved_at,omitempty"`
	ClientNote       string   `dynamodbav:"client_note,omitempty"`
}

// serviceRequestItem is the stored form of the aggregate. company_id and
// scheduled_date feed the by-date index.
type serviceRequestItem struct {
	ID                  string `dynamodbav:"id"`
	CompanyID           string `dynamodbav:"company_id"`
	SequenceNumber      string `dynamodbav:"sequence_number"`
	ClientID            string `dynamodbav:"client_id"`
	ClientName          string `dynamodbav:"client_name"`
	Origin              string `dynamodbav:"origin"`
	Destination         string `dynamodbav:"destination"`
	OriginID            string `dynamodbav:"origin_id,omitempty"`
	DestinationID       string `dynamodbav:"destination_id,omitempty"`
	ScheduledDate       string `dynamodbav:"scheduled_date"`
	StartTime           string `dynamodbav:"start_time"`
	FinalDate           string `dynamodbav:"final_date,omitempty"`
	FinalTime           string `dynamodbav:"final_time,omitempty"`
	RequestedPassengers int    `dynamodbav:"requested_passengers"`
	VehicleType         string `dynamodbav:"vehicle_type,omitempty"`
	Notes               string `dynamodbav:"notes,omitempty"`

	ApprovalStatus   string `dynamodbav:"approval_status"`
	ExecutionStatus  string `dynamodbav:"execution_status"`
	AccountingStatus string `dynamodbav:"accounting_status"`

	VehicleID          string           `dynamodbav:"vehicle_id,omitempty"`
	DriverID           string           `dynamodbav:"driver_id,omitempty"`
	VehicleAssignments []assignmentItem `dynamodbav:"vehicle_assignments"`

	ContractID     string `dynamodbav:"contract_id,omitempty"`
	ChargeMode     string `dynamodbav:"charge_mode,omitempty"`
	ChargeAmount   string `dynamodbav:"charge_amount"`
	PricingMode    string `dynamodbav:"pricing_mode,omitempty"`
	EstimatedPrice string `dynamodbav:"estimated_price,omitempty"`

	AmountToBill             string `dynamodbav:"amount_to_bill,omitempty"`
	AmountPaid               string `dynamodbav:"amount_paid,omitempty"`
	TotalOperationalExpenses string `dynamodbav:"total_operational_expenses"`
	Profit                   string `dynamodbav:"profit"`
	ProfitPercent            string `dynamodbav:"profit_percent"`
	TotalHours               string `dynamodbav:"total_hours,omitempty"`

	Prefactura    *prefacturaItem `dynamodbav:"prefactura,omitempty"`
	InvoiceNumber string          `dynamodbav:"invoice_number,omitempty"`
	CheckoutURL   string          `dynamodbav:"checkout_url,omitempty"`

	CreatedBy       string `dynamodbav:"created_by"`
	AcceptedBy      string `dynamodbav:"accepted_by,omitempty"`
	AcceptedAt      string `dynamodbav:"accepted_at,omitempty"`
	RejectedBy      string `dynamodbav:"rejected_by,omitempty"`
	RejectedAt      string `dynamodbav:"rejected_at,omitempty"`
	RejectionReason string `dynamodbav:"rejection_reason,omitempty"`
	StartedBy       string `dynamodbav:"started_by,omitempty"`
	StartedAt       string `dynamodbav:"started_at,omitempty"`
	FinishedBy      string `dynamodbav:"finished_by,omitempty"`
	FinishedAt      string `dynamodbav:"finished_at,omitempty"`

	Version   int64  `dynamodbav:"version"`
	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

func toServiceRequestItem(r entities.ServiceRequest) serviceRequestItem {
	it := serviceRequestItem{
		ID:                       r.ID,
		CompanyID:                r.CompanyID,
		SequenceNumber:           r.SequenceNumber,
		ClientID:                 r.ClientID,
		ClientName:               r.ClientName,
		Origin:                   r.Origin,
		Destination:              r.Destination,
		OriginID:                 r.OriginID,
		DestinationID:            r.DestinationID,
		ScheduledDate:            r.ScheduledDate,
		StartTime:                r.StartTime,
		FinalDate:                r.FinalDate,
		FinalTime:                r.FinalTime,
		RequestedPassengers:      r.RequestedPassengers,
		VehicleType:              r.VehicleType,
		Notes:                    r.Notes,
		ApprovalStatus:           string(r.ApprovalStatus),
		ExecutionStatus:          string(r.ExecutionStatus),
		AccountingStatus:         string(r.AccountingStatus),
		VehicleID:                r.VehicleID,
		DriverID:                 r.DriverID,
		VehicleAssignments:       make([]assignmentItem, 0, len(r.VehicleAssignments)),
		ContractID:               r.ContractID,
		ChargeMode:               string(r.ChargeMode),
		ChargeAmount:             formatDecimal(r.ChargeAmount),
		PricingMode:              string(r.PricingMode),
		EstimatedPrice:           formatNullDecimal(r.EstimatedPrice),
		AmountToBill:             formatNullDecimal(r.AmountToBill),
		AmountPaid:               formatNullDecimal(r.AmountPaid),
		TotalOperationalExpenses: formatDecimal(r.TotalOperationalExpenses),
		Profit:                   formatDecimal(r.Profit),
		ProfitPercent:            formatDecimal(r.ProfitPercent),
		TotalHours:               formatNullDecimal(r.TotalHours),
		InvoiceNumber:            r.InvoiceNumber,
		CheckoutURL:              r.CheckoutURL,
		CreatedBy:                r.CreatedBy,
		AcceptedBy:               r.AcceptedBy,
		AcceptedAt:               formatTimePtr(r.AcceptedAt),
		RejectedBy:               r.RejectedBy,
		RejectedAt:               formatTimePtr(r.RejectedAt),
		RejectionReason:          r.RejectionReason,
		StartedBy:                r.StartedBy,
		StartedAt:                formatTimePtr(r.StartedAt),
		FinishedBy:               r.FinishedBy,
		FinishedAt:               formatTimePtr(r.FinishedAt),
		Version:                  r.Version,
		CreatedAt:                formatTime(r.CreatedAt),
		UpdatedAt:                formatTime(r.UpdatedAt),
	}
	for _, a := range r.VehicleAssignments {
		it.VehicleAssignments = append(it.VehicleAssignments, toAssignmentItem(a))
	}
	if p := r.Prefactura; p != nil {
		it.Prefactura = &prefacturaItem{
			Number:           p.Number,
			RequestIDs:       p.RequestIDs,
			State:            string(p.State),
			GeneratedBy:      p.GeneratedBy,
			GeneratedAt:      formatTime(p.GeneratedAt),
			Approved:         p.Approved,
			ApprovedBy:       p.ApprovedBy,
			ApprovedAt:       formatTimePtr(p.ApprovedAt),
			RejectedBy:       p.RejectedBy,
			RejectedAt:       formatTimePtr(p.RejectedAt),
			RejectionReason:  p.RejectionReason,
			SentToClient:     p.SentToClient,
			SentCount:        p.SentCount,
			LastSentAt:       formatTimePtr(p.LastSentAt),
			ClientApprovedBy: p.ClientApprovedBy,
			ClientApprovedAt: formatTimePtr(p.ClientApprovedAt),
			ClientNote:       p.ClientNote,
		}
	}
	return it
}

func fromServiceRequestItem(it serviceRequestItem) entities.ServiceRequest {
	r := entities.ServiceRequest{
		ID:                       it.ID,
		CompanyID:                it.CompanyID,
		SequenceNumber:           it.SequenceNumber,
		ClientID:                 it.ClientID,
		ClientName:               it.ClientName,
		Origin:                   it.Origin,
		Destination:              it.Destination,
		OriginID:                 it.OriginID,
		DestinationID:            it.DestinationID,
		ScheduledDate:            it.ScheduledDate,
		StartTime:                it.StartTime,
		FinalDate:                it.FinalDate,
		FinalTime:                it.FinalTime,
		RequestedPassengers:      it.RequestedPassengers,
		VehicleType:              it.VehicleType,
		Notes:                    it.Notes,
		ApprovalStatus:           entities.ApprovalStatus(it.ApprovalStatus),
		ExecutionStatus:          entities.ExecutionStatus(it.ExecutionStatus),
		AccountingStatus:         entities.AccountingStatus(it.AccountingStatus),
		VehicleID:                it.VehicleID,
		DriverID:                 it.DriverID,
		VehicleAssignments:       make([]entities.VehicleAssignment, 0, len(it.VehicleAssignments)),
		ContractID:               it.ContractID,
		ChargeMode:               entities.ChargeMode(it.ChargeMode),
		ChargeAmount:             parseDecimal(it.ChargeAmount),
		PricingMode:              entities.PricingMode(it.PricingMode),
		EstimatedPrice:           parseNullDecimal(it.EstimatedPrice),
		AmountToBill:             parseNullDecimal(it.AmountToBill),
		AmountPaid:               parseNullDecimal(it.AmountPaid),
		TotalOperationalExpenses: parseDecimal(it.TotalOperationalExpenses),
		Profit:                   parseDecimal(it.Profit),
		ProfitPercent:            parseDecimal(it.ProfitPercent),
		TotalHours:               parseNullDecimal(it.TotalHours),
		InvoiceNumber:            it.InvoiceNumber,
		CheckoutURL:              it.CheckoutURL,
		CreatedBy:                it.CreatedBy,
		AcceptedBy:               it.AcceptedBy,
		AcceptedAt:               parseTimePtr(it.AcceptedAt),
		RejectedBy:               it.RejectedBy,
		RejectedAt:               parseTimePtr(it.RejectedAt),
		RejectionReason:          it.RejectionReason,
		StartedBy:                it.StartedBy,
		StartedAt:                parseTimePtr(it.StartedAt),
		FinishedBy:               it.FinishedBy,
		FinishedAt:               parseTimePtr(it.FinishedAt),
		Version:                  it.Version,
		CreatedAt:                parseTime(it.CreatedAt),
		UpdatedAt:                parseTime(it.UpdatedAt),
	}
	for _, a := range it.VehicleAssignments {
		r.VehicleAssignments = append(r.VehicleAssignments, fromAssignmentItem(a))
	}
	if p := it.Prefactura; p != nil {
		r.Prefactura = &entities.Prefactura{
			Number:           p.Number,
			RequestIDs:       p.RequestIDs,
			State:            entities.PrefacturaState(p.State),
			GeneratedBy:      p.GeneratedBy,
			GeneratedAt:      parseTime(p.GeneratedAt),
			Approved:         p.Approved,
			ApprovedBy:       p.ApprovedBy,
			ApprovedAt:       parseTimePtr(p.ApprovedAt),
			RejectedBy:       p.RejectedBy,
			RejectedAt:       parseTimePtr(p.RejectedAt),
			RejectionReason:  p.RejectionReason,
			SentToClient:     p.SentToClient,
			SentCount:        p.SentCount,
			LastSentAt:       parseTimePtr(p.LastSentAt),
			ClientApprovedBy: p.ClientApprovedBy,
			ClientApprovedAt: parseTimePtr(p.ClientApprovedAt),
			ClientNote:       p.ClientNote,
		}
	}
	return r
}

func toAssignmentItem(a entities.VehicleAssignment) assignmentItem {
	return assignmentItem{
		VehicleID:          a.VehicleID,
		Plate:              a.Plate,
		Seats:              a.Seats,
		Category:           string(a.Category),
		OwnerName:          a.OwnerName,
		DriverID:           a.DriverID,
		DriverName:         a.DriverName,
		DriverPhone:        a.DriverPhone,
		AssignedPassengers: a.AssignedPassengers,
		ContractID:         a.ContractID,
		ChargeMode:         string(a.ChargeMode),
		ChargeAmount:       formatDecimal(a.ChargeAmount),
		PreInvoice:         toDocumentRefItem(a.Accounting.PreInvoice),
		PreSettlement:      toDocumentRefItem(a.Accounting.PreSettlement),
		InvoiceNumber:      a.Accounting.InvoiceNumber,
		InvoicedAt:         formatTimePtr(a.Accounting.InvoicedAt),
	}
}

func fromAssignmentItem(it assignmentItem) entities.VehicleAssignment {
	return entities.VehicleAssignment{
		VehicleID:          it.VehicleID,
		Plate:              it.Plate,
		Seats:              it.Seats,
		Category:           entities.FleetCategory(it.Category),
		OwnerName:          it.OwnerName,
		DriverID:           it.DriverID,
		DriverName:         it.DriverName,
		DriverPhone:        it.DriverPhone,
		AssignedPassengers: it.AssignedPassengers,
		ContractID:         it.ContractID,
		ChargeMode:         entities.ChargeMode(it.ChargeMode),
		ChargeAmount:       parseDecimal(it.ChargeAmount),
		Accounting: entities.VehicleAccounting{
			PreInvoice:    fromDocumentRefItem(it.PreInvoice),
			PreSettlement: fromDocumentRefItem(it.PreSettlement),
			InvoiceNumber: it.InvoiceNumber,
			InvoicedAt:    parseTimePtr(it.InvoicedAt),
		},
	}
}

func toDocumentRefItem(d *entities.DocumentRef) *documentRefItem {
	if d == nil {
		return nil
	}
	return &documentRefItem{
		Number:     d.Number,
		Amount:     formatDecimal(d.Amount),
		RecordedBy: d.RecordedBy,
		RecordedAt: formatTime(d.RecordedAt),
	}
}

func fromDocumentRefItem(it *documentRefItem) *entities.DocumentRef {
	if it == nil {
		return nil
	}
	return &entities.DocumentRef{
		Number:     it.Number,
		Amount:     parseDecimal(it.Amount),
		RecordedBy: it.RecordedBy,
		RecordedAt: parseTime(it.RecordedAt),
	}
}
