package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"transporte_xpto/internal/domain/allocation"
	"transporte_xpto/internal/domain/contracts"
	"transporte_xpto/internal/domain/entities"
	"transporte_xpto/internal/domain/lifecycle"
	"transporte_xpto/internal/domain/prefactura"
	"transporte_xpto/internal/domain/settlement"
	"transporte_xpto/internal/usecase/interfaces"
	"transporte_xpto/pkg"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrInvalidRoute       = pkg.Validation("INVALID_ROUTE", "origin and destination are required")
	ErrContractRequired   = pkg.Validation("CONTRACT_REQUIRED", "within_contract charges need a contract")
	ErrInvalidChargeMode  = pkg.Validation("INVALID_CHARGE_MODE", "charge mode must be within_contract or outside_contract")
	ErrNegativeAmount     = pkg.Validation("NEGATIVE_AMOUNT", "amounts cannot be negative")
	ErrFinancialsLocked   = pkg.Validation("FINANCIALS_LOCKED", "amounts cannot change once a pre-invoice exists")
	ErrRequestClosed      = pkg.Validation("REQUEST_CLOSED", "request is rejected or already finished")
	ErrAssignmentNotFound = pkg.NotFound("ASSIGNMENT_NOT_FOUND", "vehicle is not assigned to the request")
	ErrInvalidDocument    = pkg.Validation("INVALID_DOCUMENT", "document number is required and its amount cannot be negative")
)

// InvoicingRoles register per-vehicle accounting documents.
var InvoicingRoles = []entities.Role{entities.RoleAccounting, entities.RoleAdmin, entities.RoleSuperAdmin}

const defaultSequencePrefix = "HE"

type CreateServiceRequestInput struct {
	ClientID            string
	Origin              string
	Destination         string
	ScheduledDate       string
	StartTime           string
	RequestedPassengers int
	VehicleType         string
	Notes               string
}

// AcceptInput carries the acceptance decision. Either VehicleID (one
// vehicle carrying everybody) or Assignments must be set. Origin and
// Destination, when given, replace the requested ones.
type AcceptInput struct {
	VehicleID      string
	DriverID       string
	Assignments    []allocation.AssignmentInput
	Origin         string
	Destination    string
	ContractID     string
	ChargeMode     entities.ChargeMode
	ChargeAmount   decimal.Decimal
	PricingMode    entities.PricingMode
	EstimatedHours decimal.NullDecimal
	EstimatedKm    decimal.NullDecimal
}

type CoordinatorCreateInput struct {
	Request    CreateServiceRequestInput
	Acceptance AcceptInput
}

type FinishInput struct {
	FinalDate string
	FinalTime string
}

// FinancialsInput leaves a field untouched when it is not Valid.
type FinancialsInput struct {
	AmountToBill decimal.NullDecimal
	AmountPaid   decimal.NullDecimal
}

type DocumentInput struct {
	Number string
	Amount decimal.Decimal
}

type VehicleAccountingInput struct {
	PreInvoice    *DocumentInput
	PreSettlement *DocumentInput
	InvoiceNumber string
}

type ServiceRequestDetails struct {
	Request        entities.ServiceRequest
	PaymentSection *entities.PaymentSection
}

// IServiceRequestUseCase drives a service request through approval,
// execution and accounting.
type IServiceRequestUseCase interface {
	CreateByClient(ctx context.Context, actor entities.Actor, in CreateServiceRequestInput) (entities.ServiceRequest, error)
	CreateByCoordinator(ctx context.Context, actor entities.Actor, in CoordinatorCreateInput) (entities.ServiceRequest, error)
	Accept(ctx context.Context, actor entities.Actor, id string, in AcceptInput) (entities.ServiceRequest, error)
	Reject(ctx context.Context, actor entities.Actor, id, reason string) (entities.ServiceRequest, error)
	AssignVehicles(ctx context.Context, actor entities.Actor, id string, in []allocation.AssignmentInput) (entities.ServiceRequest, error)
	Start(ctx context.Context, actor entities.Actor, id string) (entities.ServiceRequest, error)
	Finish(ctx context.Context, actor entities.Actor, id string, in FinishInput) (entities.ServiceRequest, error)
	UpdateFinancials(ctx context.Context, actor entities.Actor, id string, in FinancialsInput) (entities.ServiceRequest, error)
	RecomputeSettlement(ctx context.Context, id string) (ServiceRequestDetails, error)
	UpdateVehicleAccounting(ctx context.Context, actor entities.Actor, id, vehicleID string, in VehicleAccountingInput) (entities.ServiceRequest, error)
	Get(ctx context.Context, actor entities.Actor, id string) (ServiceRequestDetails, error)
}

// ServiceRequestDeps lists the collaborators of ServiceRequestUseCase.
// Locations, Expenses, Notifier and Checkout are optional.
type ServiceRequestDeps struct {
	Requests       interfaces.IServiceRequestRepository
	Sections       interfaces.IPaymentSectionRepository
	Contracts      interfaces.IContractRepository
	Fleet          interfaces.IFleetDirectory
	Clients        interfaces.IClientDirectory
	Locations      interfaces.ILocationRepository
	Sequences      interfaces.ISequenceGenerator
	Expenses       interfaces.IExpenseLedger
	Notifier       interfaces.INotifier
	Checkout       interfaces.ICheckoutGateway
	SequencePrefix string
}

type ServiceRequestUseCase struct {
	deps    ServiceRequestDeps
	checker availabilityChecker
	notify  notifier
	logger  *zap.Logger
}

var _ IServiceRequestUseCase = (*ServiceRequestUseCase)(nil)

func NewServiceRequestUseCase(deps ServiceRequestDeps, logger *zap.Logger) *ServiceRequestUseCase {
	logger = orNop(logger).Named("servicerequest.usecase")
	if strings.TrimSpace(deps.SequencePrefix) == "" {
		deps.SequencePrefix = defaultSequencePrefix
	}
	return &ServiceRequestUseCase{
		deps:    deps,
		checker: availabilityChecker{requests: deps.Requests, fleet: deps.Fleet},
		notify:  notifier{target: deps.Notifier, logger: logger},
		logger:  logger,
	}
}

func (u *ServiceRequestUseCase) CreateByClient(ctx context.Context, actor entities.Actor, in CreateServiceRequestInput) (entities.ServiceRequest, error) {
	if actor.Role == entities.RoleClient {
		in.ClientID = actor.ClientID
	} else if err := requireInternal(actor); err != nil {
		return entities.ServiceRequest{}, err
	}
	req, err := u.newRequest(ctx, actor, in)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	saved, err := u.deps.Requests.Save(ctx, interfaces.RequestWrite{Request: req, Create: true})
	if err != nil {
		return entities.ServiceRequest{}, persistErr("failed to create service request", err)
	}
	u.logger.Info("service request created",
		zap.String("request_id", saved.ID),
		zap.String("sequence", saved.SequenceNumber),
		zap.String("client_id", saved.ClientID))
	u.notify.send(ctx, entities.EventRequestCreated, saved, map[string]string{"sequence_number": saved.SequenceNumber}, lifecycle.CoordinatorRoles...)
	return saved, nil
}

func (u *ServiceRequestUseCase) CreateByCoordinator(ctx context.Context, actor entities.Actor, in CoordinatorCreateInput) (entities.ServiceRequest, error) {
	if err := lifecycle.Require(actor, lifecycle.CoordinatorRoles...); err != nil {
		return entities.ServiceRequest{}, err
	}
	req, err := u.newRequest(ctx, actor, in.Request)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	w, err := u.resolveAcceptance(ctx, actor, &req, in.Acceptance)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	w.Create = true
	saved, err := u.deps.Requests.Save(ctx, w)
	if err != nil {
		return entities.ServiceRequest{}, persistErr("failed to create service request", err)
	}
	u.logger.Info("service request created accepted",
		zap.String("request_id", saved.ID),
		zap.String("sequence", saved.SequenceNumber),
		zap.Int("vehicles", len(saved.VehicleAssignments)))
	u.notify.send(ctx, entities.EventRequestAccepted, saved, map[string]string{"sequence_number": saved.SequenceNumber}, lifecycle.CoordinatorRoles...)
	return saved, nil
}

func (u *ServiceRequestUseCase) Accept(ctx context.Context, actor entities.Actor, id string, in AcceptInput) (entities.ServiceRequest, error) {
	if err := lifecycle.Require(actor, lifecycle.CoordinatorRoles...); err != nil {
		return entities.ServiceRequest{}, err
	}
	req, err := loadRequest(ctx, u.deps.Requests, actor, id)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	if req.ApprovalStatus != entities.ApprovalPending {
		return entities.ServiceRequest{}, lifecycle.ErrNotPending
	}
	w, err := u.resolveAcceptance(ctx, actor, &req, in)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	saved, err := u.deps.Requests.Save(ctx, w)
	if err != nil {
		return entities.ServiceRequest{}, persistErr("failed to accept service request", err)
	}
	u.logger.Info("service request accepted",
		zap.String("request_id", saved.ID),
		zap.Int("vehicles", len(saved.VehicleAssignments)),
		zap.Int("contracts_charged", len(w.Contracts)))
	u.notify.send(ctx, entities.EventRequestAccepted, saved, map[string]string{"sequence_number": saved.SequenceNumber}, lifecycle.CoordinatorRoles...)
	return saved, nil
}

func (u *ServiceRequestUseCase) Reject(ctx context.Context, actor entities.Actor, id, reason string) (entities.ServiceRequest, error) {
	if err := lifecycle.Require(actor, lifecycle.CoordinatorRoles...); err != nil {
		return entities.ServiceRequest{}, err
	}
	req, err := loadRequest(ctx, u.deps.Requests, actor, id)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	if err := lifecycle.Reject(&req, actor, reason, clock()); err != nil {
		return entities.ServiceRequest{}, err
	}
	saved, err := u.deps.Requests.Save(ctx, interfaces.RequestWrite{Request: req})
	if err != nil {
		return entities.ServiceRequest{}, persistErr("failed to reject service request", err)
	}
	u.notify.send(ctx, entities.EventRequestRejected, saved, map[string]string{"reason": saved.RejectionReason})
	return saved, nil
}

func (u *ServiceRequestUseCase) AssignVehicles(ctx context.Context, actor entities.Actor, id string, in []allocation.AssignmentInput) (entities.ServiceRequest, error) {
	if err := lifecycle.Require(actor, lifecycle.CoordinatorRoles...); err != nil {
		return entities.ServiceRequest{}, err
	}
	req, err := loadRequest(ctx, u.deps.Requests, actor, id)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	if req.ApprovalStatus == entities.ApprovalRejected || req.ExecutionStatus == entities.ExecutionFinished {
		return entities.ServiceRequest{}, ErrRequestClosed
	}

	dir, err := u.checker.directory(ctx, req.CompanyID, in)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	assignments, err := allocation.Confirm(allocation.ModeCovering, req.CompanyID, req.RequestedPassengers, in, dir)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	if err := u.checker.ensureFree(ctx, req, candidatesFor(assignments, dir.Vehicles)); err != nil {
		return entities.ServiceRequest{}, err
	}

	// Accounting documents follow the vehicle when it stays assigned.
	for i := range assignments {
		if prev, ok := req.Assignment(assignments[i].VehicleID); ok {
			assignments[i].Accounting = prev.Accounting
		}
	}
	lifecycle.AssignVehicles(&req, assignments)
	req.UpdatedAt = clock()

	section, err := u.refreshSettlement(ctx, &req)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	saved, err := u.deps.Requests.Save(ctx, interfaces.RequestWrite{Request: req, Section: section})
	if err != nil {
		return entities.ServiceRequest{}, persistErr("failed to assign vehicles", err)
	}
	u.notify.send(ctx, entities.EventVehiclesAssigned, saved, map[string]string{"vehicles": fmt.Sprint(len(assignments))}, lifecycle.CoordinatorRoles...)
	return saved, nil
}

func (u *ServiceRequestUseCase) Start(ctx context.Context, actor entities.Actor, id string) (entities.ServiceRequest, error) {
	req, err := loadRequest(ctx, u.deps.Requests, actor, id)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	if err := lifecycle.Start(&req, actor, clock()); err != nil {
		return entities.ServiceRequest{}, err
	}

	inputs := make([]allocation.AssignmentInput, 0, len(req.VehicleAssignments))
	for _, a := range req.VehicleAssignments {
		inputs = append(inputs, allocation.AssignmentInput{VehicleID: a.VehicleID, DriverID: a.DriverID})
	}
	dir, err := u.checker.directory(ctx, req.CompanyID, inputs)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	if err := u.checker.ensureFree(ctx, req, candidatesFor(req.VehicleAssignments, dir.Vehicles)); err != nil {
		return entities.ServiceRequest{}, err
	}

	saved, err := u.deps.Requests.Save(ctx, interfaces.RequestWrite{Request: req})
	if err != nil {
		return entities.ServiceRequest{}, persistErr("failed to start service request", err)
	}
	u.logger.Info("service request started", zap.String("request_id", saved.ID), zap.String("actor_id", actor.ID))
	u.notify.send(ctx, entities.EventRequestStarted, saved, nil)
	return saved, nil
}

func (u *ServiceRequestUseCase) Finish(ctx context.Context, actor entities.Actor, id string, in FinishInput) (entities.ServiceRequest, error) {
	req, err := loadRequest(ctx, u.deps.Requests, actor, id)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	if err := lifecycle.Finish(&req, actor, in.FinalDate, in.FinalTime, clock()); err != nil {
		return entities.ServiceRequest{}, err
	}
	section, err := u.refreshSettlement(ctx, &req)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	saved, err := u.deps.Requests.Save(ctx, interfaces.RequestWrite{Request: req, Section: section})
	if err != nil {
		return entities.ServiceRequest{}, persistErr("failed to finish service request", err)
	}
	u.logger.Info("service request finished",
		zap.String("request_id", saved.ID),
		zap.String("total_hours", saved.TotalHours.Decimal.String()))
	u.notify.send(ctx, entities.EventRequestFinished, saved, map[string]string{"total_hours": saved.TotalHours.Decimal.String()}, entities.RoleAccounting)
	return saved, nil
}

func (u *ServiceRequestUseCase) UpdateFinancials(ctx context.Context, actor entities.Actor, id string, in FinancialsInput) (entities.ServiceRequest, error) {
	if err := lifecycle.Require(actor, lifecycle.FinancialRoles...); err != nil {
		return entities.ServiceRequest{}, err
	}
	if negative(in.AmountToBill) || negative(in.AmountPaid) {
		return entities.ServiceRequest{}, ErrNegativeAmount
	}
	req, err := loadRequest(ctx, u.deps.Requests, actor, id)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	if req.AccountingStatus.Rank() >= entities.AccountingPreInvoicePending.Rank() {
		return entities.ServiceRequest{}, ErrFinancialsLocked
	}
	if in.AmountToBill.Valid {
		req.AmountToBill = in.AmountToBill
	}
	if in.AmountPaid.Valid {
		req.AmountPaid = in.AmountPaid
	}
	req.UpdatedAt = clock()

	section, err := u.refreshSettlement(ctx, &req)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	saved, err := u.deps.Requests.Save(ctx, interfaces.RequestWrite{Request: req, Section: section})
	if err != nil {
		return entities.ServiceRequest{}, persistErr("failed to update financials", err)
	}
	return saved, nil
}

// RecomputeSettlement re-derives profit, payment section and accounting
// status from the expense ledger. Running it twice changes nothing.
func (u *ServiceRequestUseCase) RecomputeSettlement(ctx context.Context, id string) (ServiceRequestDetails, error) {
	req, err := loadRequest(ctx, u.deps.Requests, entities.Actor{}, id)
	if err != nil {
		return ServiceRequestDetails{}, err
	}
	before := req.AccountingStatus
	section, err := u.refreshSettlement(ctx, &req)
	if err != nil {
		return ServiceRequestDetails{}, err
	}
	saved, err := u.deps.Requests.Save(ctx, interfaces.RequestWrite{Request: req, Section: section})
	if err != nil {
		return ServiceRequestDetails{}, persistErr("failed to recompute settlement", err)
	}
	if saved.AccountingStatus != before {
		u.logger.Info("accounting status advanced",
			zap.String("request_id", saved.ID),
			zap.String("from", string(before)),
			zap.String("to", string(saved.AccountingStatus)))
	}
	return ServiceRequestDetails{Request: saved, PaymentSection: section}, nil
}

func (u *ServiceRequestUseCase) UpdateVehicleAccounting(ctx context.Context, actor entities.Actor, id, vehicleID string, in VehicleAccountingInput) (entities.ServiceRequest, error) {
	if err := lifecycle.Require(actor, InvoicingRoles...); err != nil {
		return entities.ServiceRequest{}, err
	}
	req, err := loadRequest(ctx, u.deps.Requests, actor, id)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	if req.AccountingStatus == entities.AccountingInvoiced {
		return entities.ServiceRequest{}, prefactura.ErrAlreadyInvoiced
	}
	a, ok := req.Assignment(strings.TrimSpace(vehicleID))
	if !ok {
		return entities.ServiceRequest{}, ErrAssignmentNotFound
	}

	now := clock()
	if in.PreInvoice != nil {
		ref, err := documentRef(*in.PreInvoice, actor, now)
		if err != nil {
			return entities.ServiceRequest{}, err
		}
		a.Accounting.PreInvoice = ref
	}
	if in.PreSettlement != nil {
		ref, err := documentRef(*in.PreSettlement, actor, now)
		if err != nil {
			return entities.ServiceRequest{}, err
		}
		a.Accounting.PreSettlement = ref
	}
	if number := strings.TrimSpace(in.InvoiceNumber); number != "" {
		if err := prefactura.CheckInvoiceable(req, *a); err != nil {
			return entities.ServiceRequest{}, err
		}
		a.Accounting.InvoiceNumber = number
		a.Accounting.InvoicedAt = &now
	}
	req.UpdatedAt = now

	invoiced := prefactura.FullyInvoiced(req)
	if invoiced {
		req.AccountingStatus = entities.AccountingInvoiced
		req.InvoiceNumber = invoiceNumbers(req)
	}

	saved, err := u.deps.Requests.Save(ctx, interfaces.RequestWrite{Request: req})
	if err != nil {
		return entities.ServiceRequest{}, persistErr("failed to update vehicle accounting", err)
	}
	if !invoiced {
		return saved, nil
	}

	u.logger.Info("service request invoiced", zap.String("request_id", saved.ID), zap.String("invoice", saved.InvoiceNumber))
	saved = u.attachCheckoutLink(ctx, saved)
	u.notify.send(ctx, entities.EventRequestInvoiced, saved, map[string]string{"invoice_number": saved.InvoiceNumber})
	return saved, nil
}

func (u *ServiceRequestUseCase) Get(ctx context.Context, actor entities.Actor, id string) (ServiceRequestDetails, error) {
	req, err := loadRequest(ctx, u.deps.Requests, actor, id)
	if err != nil {
		return ServiceRequestDetails{}, err
	}
	details := ServiceRequestDetails{Request: req}
	if u.deps.Sections == nil {
		return details, nil
	}
	section, err := u.deps.Sections.GetByRequestID(ctx, req.ID)
	if err != nil {
		return ServiceRequestDetails{}, pkg.Wrap("failed to load payment section", err)
	}
	if section.RequestID != "" {
		details.PaymentSection = &section
	}
	return details, nil
}

func (u *ServiceRequestUseCase) newRequest(ctx context.Context, actor entities.Actor, in CreateServiceRequestInput) (entities.ServiceRequest, error) {
	clientID, err := requireID(in.ClientID)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	origin, destination := strings.TrimSpace(in.Origin), strings.TrimSpace(in.Destination)
	if origin == "" || destination == "" {
		return entities.ServiceRequest{}, ErrInvalidRoute
	}
	if err := lifecycle.ValidateSchedule(in.ScheduledDate, in.StartTime); err != nil {
		return entities.ServiceRequest{}, err
	}
	if in.RequestedPassengers <= 0 {
		return entities.ServiceRequest{}, allocation.ErrInvalidPassengers
	}

	client, err := u.deps.Clients.GetClient(ctx, clientID)
	if err != nil {
		return entities.ServiceRequest{}, pkg.Wrap("failed to load client", err)
	}
	if client.ID == "" || client.CompanyID != actor.CompanyID {
		return entities.ServiceRequest{}, ErrClientNotFound
	}

	n, err := u.deps.Sequences.Next(ctx, actor.CompanyID, u.deps.SequencePrefix)
	if err != nil {
		return entities.ServiceRequest{}, pkg.Wrap("failed to allocate sequence number", err)
	}

	now := clock()
	return entities.ServiceRequest{
		ID:                  uuid.NewString(),
		CompanyID:           actor.CompanyID,
		SequenceNumber:      fmt.Sprintf("%s%06d", u.deps.SequencePrefix, n),
		ClientID:            client.ID,
		ClientName:          client.Name,
		Origin:              origin,
		Destination:         destination,
		ScheduledDate:       strings.TrimSpace(in.ScheduledDate),
		StartTime:           strings.TrimSpace(in.StartTime),
		RequestedPassengers: in.RequestedPassengers,
		VehicleType:         strings.TrimSpace(in.VehicleType),
		Notes:               strings.TrimSpace(in.Notes),
		ApprovalStatus:      entities.ApprovalPending,
		ExecutionStatus:     entities.ExecutionUnassigned,
		AccountingStatus:    entities.AccountingNotStarted,
		VehicleAssignments:  []entities.VehicleAssignment{},
		ChargeAmount:        decimal.Zero,
		CreatedBy:           actor.ID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}, nil
}

// resolveAcceptance validates the acceptance of req, mutates it and returns
// everything that must be written with it: contract charges and the payment
// section.
func (u *ServiceRequestUseCase) resolveAcceptance(ctx context.Context, actor entities.Actor, req *entities.ServiceRequest, in AcceptInput) (interfaces.RequestWrite, error) {
	inputs := in.Assignments
	if len(inputs) == 0 && strings.TrimSpace(in.VehicleID) != "" {
		inputs = []allocation.AssignmentInput{{
			VehicleID:          in.VehicleID,
			DriverID:           in.DriverID,
			AssignedPassengers: req.RequestedPassengers,
		}}
	}
	if len(inputs) == 0 {
		return interfaces.RequestWrite{}, allocation.ErrNoAssignments
	}
	if in.ChargeAmount.IsNegative() {
		return interfaces.RequestWrite{}, ErrNegativeAmount
	}
	for _, a := range inputs {
		if a.ChargeAmount.IsNegative() {
			return interfaces.RequestWrite{}, ErrNegativeAmount
		}
		if !validChargeMode(a.ChargeMode) {
			return interfaces.RequestWrite{}, ErrInvalidChargeMode
		}
	}
	if !validChargeMode(in.ChargeMode) {
		return interfaces.RequestWrite{}, ErrInvalidChargeMode
	}

	dir, err := u.checker.directory(ctx, req.CompanyID, inputs)
	if err != nil {
		return interfaces.RequestWrite{}, err
	}
	assignments, err := allocation.Confirm(allocation.ModeExact, req.CompanyID, req.RequestedPassengers, inputs, dir)
	if err != nil {
		return interfaces.RequestWrite{}, err
	}
	if err := u.checker.ensureFree(ctx, *req, candidatesFor(assignments, dir.Vehicles)); err != nil {
		return interfaces.RequestWrite{}, err
	}

	if o := strings.TrimSpace(in.Origin); o != "" {
		req.Origin = o
	}
	if d := strings.TrimSpace(in.Destination); d != "" {
		req.Destination = d
	}
	if err := u.resolveLocations(ctx, req); err != nil {
		return interfaces.RequestWrite{}, err
	}

	loaded := map[string]entities.Contract{}
	req.ContractID = strings.TrimSpace(in.ContractID)
	req.ChargeMode = in.ChargeMode
	req.ChargeAmount = in.ChargeAmount
	req.PricingMode = in.PricingMode
	if req.ContractID != "" {
		c, err := u.loadContract(ctx, *req, req.ContractID, loaded)
		if err != nil {
			return interfaces.RequestWrite{}, err
		}
		if in.PricingMode != "" {
			// Without a usable rate or quantity the request has no estimate.
			price, err := contracts.EstimatePrice(in.PricingMode, c.Rates[in.PricingMode], in.EstimatedHours, in.EstimatedKm)
			switch {
			case err == nil:
				req.EstimatedPrice = decimal.NewNullDecimal(price)
			case errors.Is(err, contracts.ErrMissingQuantity), errors.Is(err, contracts.ErrInvalidRate):
				req.EstimatedPrice = decimal.NullDecimal{}
			default:
				return interfaces.RequestWrite{}, err
			}
		}
	}

	allocation.ApplyChargeDefaults(assignments, allocation.ChargeDefaults{
		ContractID:   req.ContractID,
		ChargeMode:   req.ChargeMode,
		ChargeAmount: req.ChargeAmount,
	})
	now := clock()
	lifecycle.AssignVehicles(req, assignments)
	if err := lifecycle.Accept(req, actor, now); err != nil {
		return interfaces.RequestWrite{}, err
	}

	writes, err := u.charges(ctx, actor, *req, loaded, now)
	if err != nil {
		return interfaces.RequestWrite{}, err
	}
	section, err := u.refreshSettlement(ctx, req)
	if err != nil {
		return interfaces.RequestWrite{}, err
	}
	return interfaces.RequestWrite{Request: *req, Section: section, Contracts: writes}, nil
}

// charges applies the within_contract charge of every assignment of req.
// Request level defaults are already on the assignments. Charges to the
// same contract are folded into one write.
func (u *ServiceRequestUseCase) charges(ctx context.Context, actor entities.Actor, req entities.ServiceRequest, loaded map[string]entities.Contract, now time.Time) ([]interfaces.ContractWrite, error) {
	type charge struct {
		contractID string
		amount     decimal.Decimal
	}
	var pending []charge
	for _, a := range req.VehicleAssignments {
		if a.ChargeMode != entities.ChargeWithinContract {
			continue
		}
		if a.ContractID == "" {
			return nil, ErrContractRequired.WithMessage("vehicle %s is charged within contract without a contract", a.Plate)
		}
		pending = append(pending, charge{contractID: a.ContractID, amount: a.ChargeAmount})
	}

	var order []string
	writes := map[string]*interfaces.ContractWrite{}
	for _, ch := range pending {
		w, ok := writes[ch.contractID]
		if !ok {
			c, err := u.loadContract(ctx, req, ch.contractID, loaded)
			if err != nil {
				return nil, err
			}
			w = &interfaces.ContractWrite{Contract: c}
			writes[ch.contractID] = w
			order = append(order, ch.contractID)
		}
		cmd := contracts.ChargeCommand{Amount: ch.amount, RequestID: req.ID, ActorID: actor.ID, Note: req.SequenceNumber}
		var (
			next  entities.Contract
			entry entities.ContractHistoryEntry
			err   error
		)
		if ch.amount.IsZero() {
			next, entry, err = contracts.ZeroCharge(w.Contract, cmd, now)
		} else {
			next, entry, err = contracts.Charge(w.Contract, cmd, now)
		}
		if err != nil {
			return nil, err
		}
		w.Contract = next
		w.Entries = append(w.Entries, entry)
	}

	out := make([]interfaces.ContractWrite, 0, len(order))
	for _, id := range order {
		out = append(out, *writes[id])
	}
	return out, nil
}

func (u *ServiceRequestUseCase) loadContract(ctx context.Context, req entities.ServiceRequest, id string, loaded map[string]entities.Contract) (entities.Contract, error) {
	if c, ok := loaded[id]; ok {
		return c, nil
	}
	c, err := u.deps.Contracts.GetByID(ctx, id)
	if err != nil {
		return entities.Contract{}, pkg.Wrap("failed to load contract", err)
	}
	if c.ID == "" || c.CompanyID != req.CompanyID {
		return entities.Contract{}, ErrContractNotFound.WithMessage("contract not found: %s", id)
	}
	if c.ClientID != req.ClientID {
		return entities.Contract{}, ErrContractClient
	}
	loaded[id] = c
	return c, nil
}

func (u *ServiceRequestUseCase) resolveLocations(ctx context.Context, req *entities.ServiceRequest) error {
	if u.deps.Locations == nil {
		return nil
	}
	origin, err := u.deps.Locations.FindOrCreate(ctx, req.CompanyID, req.Origin)
	if err != nil {
		return pkg.Wrap("failed to resolve origin", err)
	}
	destination, err := u.deps.Locations.FindOrCreate(ctx, req.CompanyID, req.Destination)
	if err != nil {
		return pkg.Wrap("failed to resolve destination", err)
	}
	req.OriginID, req.DestinationID = origin.ID, destination.ID
	return nil
}

// refreshSettlement recomputes profit and the payment section of req from
// the expense ledger and advances accounting as far as the data allows.
func (u *ServiceRequestUseCase) refreshSettlement(ctx context.Context, req *entities.ServiceRequest) (*entities.PaymentSection, error) {
	var expenses []entities.Expense
	if u.deps.Expenses != nil {
		var err error
		expenses, err = u.deps.Expenses.ListByRequestID(ctx, req.ID)
		if err != nil {
			return nil, pkg.Wrap("failed to load expenses", err)
		}
	}
	settlement.Recompute(req, expenses)
	lifecycle.AdvanceAccounting(req, len(settlement.VehiclesWithoutExpenses(*req, expenses)))
	section := settlement.BuildPaymentSection(*req, expenses, clock())
	return &section, nil
}

func (u *ServiceRequestUseCase) attachCheckoutLink(ctx context.Context, req entities.ServiceRequest) entities.ServiceRequest {
	if u.deps.Checkout == nil || !req.AmountToBill.Valid || !req.AmountToBill.Decimal.IsPositive() {
		return req
	}
	url, err := u.deps.Checkout.CreateCheckoutLink(ctx, req.ID, "Servicio "+req.SequenceNumber, req.AmountToBill.Decimal)
	if err != nil {
		u.logger.Warn("checkout link not created", zap.String("request_id", req.ID), zap.Error(err))
		return req
	}
	req.CheckoutURL = url
	saved, err := u.deps.Requests.Save(ctx, interfaces.RequestWrite{Request: req})
	if err != nil {
		u.logger.Warn("checkout link not stored", zap.String("request_id", req.ID), zap.Error(err))
		return req
	}
	return saved
}

func documentRef(in DocumentInput, actor entities.Actor, now time.Time) (*entities.DocumentRef, error) {
	number := strings.TrimSpace(in.Number)
	if number == "" || in.Amount.IsNegative() {
		return nil, ErrInvalidDocument
	}
	return &entities.DocumentRef{Number: number, Amount: in.Amount, RecordedBy: actor.ID, RecordedAt: now}, nil
}

func invoiceNumbers(req entities.ServiceRequest) string {
	seen := map[string]bool{}
	var numbers []string
	for _, a := range req.VehicleAssignments {
		n := a.Accounting.InvoiceNumber
		if n != "" && !seen[n] {
			seen[n] = true
			numbers = append(numbers, n)
		}
	}
	return strings.Join(numbers, ",")
}

func validChargeMode(m entities.ChargeMode) bool {
	return m == "" || m == entities.ChargeWithinContract || m == entities.ChargeOutsideContract
}

func negative(v decimal.NullDecimal) bool {
	return v.Valid && v.Decimal.IsNegative()
}
