package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

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

// GenerateRoles may generate and send pre-invoices.
var GenerateRoles = []entities.Role{entities.RoleAccounting, entities.RoleOperationsCoordinator, entities.RoleAdmin, entities.RoleSuperAdmin}

type GenerateInput struct {
	RequestIDs []string
}

// ApproveInput with Resend accepts an already approved pre-invoice again.
type ApproveInput struct {
	Resend bool
}

type RejectInput struct {
	Reason string
}

type SendInput struct {
	Note string
}

// ClientApproveInput with Resend accepts an already approved pre-invoice
// again, as ApproveInput does.
type ClientApproveInput struct {
	Note   string
	Resend bool
}

// IPrefacturaUseCase runs the pre-invoice workflow. Operations addressed by
// request id act on the whole group sharing the pre-invoice and return every
// request of the group.
type IPrefacturaUseCase interface {
	Generate(ctx context.Context, actor entities.Actor, in GenerateInput) ([]entities.ServiceRequest, error)
	Approve(ctx context.Context, actor entities.Actor, id string, in ApproveInput) ([]entities.ServiceRequest, error)
	Reject(ctx context.Context, actor entities.Actor, id string, in RejectInput) ([]entities.ServiceRequest, error)
	SendToClient(ctx context.Context, actor entities.Actor, id string, in SendInput) ([]entities.ServiceRequest, error)
	ClientApprove(ctx context.Context, actor entities.Actor, id string, in ClientApproveInput) ([]entities.ServiceRequest, error)
	ClientReject(ctx context.Context, actor entities.Actor, id, reason string) ([]entities.ServiceRequest, error)
	Deliveries(ctx context.Context, actor entities.Actor, id string) ([]entities.PrefacturaDelivery, error)
}

// PrefacturaDeps lists the collaborators of PrefacturaUseCase. Expenses,
// Sink and Notifier are optional.
type PrefacturaDeps struct {
	Requests   interfaces.IServiceRequestRepository
	Deliveries interfaces.IPrefacturaDeliveryRepository
	Expenses   interfaces.IExpenseLedger
	Sink       interfaces.IDocumentSink
	Notifier   interfaces.INotifier
}

type PrefacturaUseCase struct {
	deps   PrefacturaDeps
	notify notifier
	logger *zap.Logger
}

var _ IPrefacturaUseCase = (*PrefacturaUseCase)(nil)

func NewPrefacturaUseCase(deps PrefacturaDeps, logger *zap.Logger) *PrefacturaUseCase {
	logger = orNop(logger).Named("prefactura.usecase")
	return &PrefacturaUseCase{deps: deps, notify: notifier{target: deps.Notifier, logger: logger}, logger: logger}
}

func (u *PrefacturaUseCase) Generate(ctx context.Context, actor entities.Actor, in GenerateInput) ([]entities.ServiceRequest, error) {
	if err := lifecycle.Require(actor, GenerateRoles...); err != nil {
		return nil, err
	}
	ids := uniqueIDs(in.RequestIDs)
	if len(ids) == 0 {
		return nil, prefactura.ErrNoRequests
	}

	reqs := make([]entities.ServiceRequest, 0, len(ids))
	for _, id := range ids {
		req, err := loadRequest(ctx, u.deps.Requests, actor, id)
		if err != nil {
			return nil, err
		}
		missing, err := u.vehiclesWithoutExpenses(ctx, req)
		if err != nil {
			return nil, err
		}
		if err := prefactura.CheckGenerable(req, missing); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}

	ptrs := make([]*entities.ServiceRequest, len(reqs))
	for i := range reqs {
		ptrs[i] = &reqs[i]
	}
	now := clock()
	number, err := prefactura.Generate(ptrs, actor, now)
	if err != nil {
		return nil, err
	}

	saved, err := u.deps.Requests.SaveAll(ctx, reqs, nil)
	if err != nil {
		return nil, persistErr("failed to generate pre-invoice", err)
	}
	u.logger.Info("pre-invoice generated", zap.String("number", number), zap.Int("requests", len(saved)))
	u.publishSnapshot(ctx, number, saved, now)
	u.notifyGroup(ctx, entities.EventPrefacturaGenerated, saved, entities.RoleAccounting)
	return saved, nil
}

func (u *PrefacturaUseCase) Approve(ctx context.Context, actor entities.Actor, id string, in ApproveInput) ([]entities.ServiceRequest, error) {
	if err := lifecycle.Require(actor, InvoicingRoles...); err != nil {
		return nil, err
	}
	group, err := u.loadGroup(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	now := clock()
	changed := false
	for i := range group {
		c, err := prefactura.Approve(&group[i], actor, in.Resend, now)
		if err != nil {
			return nil, err
		}
		changed = changed || c
	}
	if !changed {
		return group, nil
	}
	saved, err := u.deps.Requests.SaveAll(ctx, group, nil)
	if err != nil {
		return nil, persistErr("failed to approve pre-invoice", err)
	}
	u.notifyGroup(ctx, entities.EventPrefacturaApproved, saved, entities.RoleAccounting)
	return saved, nil
}

func (u *PrefacturaUseCase) Reject(ctx context.Context, actor entities.Actor, id string, in RejectInput) ([]entities.ServiceRequest, error) {
	if err := lifecycle.Require(actor, InvoicingRoles...); err != nil {
		return nil, err
	}
	group, err := u.loadGroup(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	now := clock()
	for i := range group {
		if err := prefactura.Reject(&group[i], actor, in.Reason, now); err != nil {
			return nil, err
		}
	}
	saved, err := u.deps.Requests.SaveAll(ctx, group, nil)
	if err != nil {
		return nil, persistErr("failed to reject pre-invoice", err)
	}
	u.notifyGroup(ctx, entities.EventPrefacturaRejected, saved, entities.RoleAccounting)
	return saved, nil
}

func (u *PrefacturaUseCase) SendToClient(ctx context.Context, actor entities.Actor, id string, in SendInput) ([]entities.ServiceRequest, error) {
	if err := lifecycle.Require(actor, GenerateRoles...); err != nil {
		return nil, err
	}
	group, err := u.loadGroup(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	now := clock()
	for i := range group {
		if err := prefactura.Send(&group[i], now); err != nil {
			return nil, err
		}
	}
	saved, err := u.deps.Requests.SaveAll(ctx, group, deliveries(group, entities.DeliverySent, actor, in.Note, now))
	if err != nil {
		return nil, persistErr("failed to send pre-invoice", err)
	}
	u.logger.Info("pre-invoice sent", zap.String("number", saved[0].Prefactura.Number), zap.Int("sent_count", saved[0].Prefactura.SentCount))
	u.notifyGroup(ctx, entities.EventPrefacturaSent, saved)
	return saved, nil
}

func (u *PrefacturaUseCase) ClientApprove(ctx context.Context, actor entities.Actor, id string, in ClientApproveInput) ([]entities.ServiceRequest, error) {
	group, err := u.loadGroup(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	now := clock()
	changed := false
	for i := range group {
		c, err := prefactura.ClientApprove(&group[i], actor, in.Note, in.Resend, now)
		if err != nil {
			return nil, err
		}
		changed = changed || c
	}
	if !changed {
		return group, nil
	}
	saved, err := u.deps.Requests.SaveAll(ctx, group, deliveries(group, entities.DeliveryClientApproved, actor, in.Note, now))
	if err != nil {
		return nil, persistErr("failed to approve pre-invoice", err)
	}
	u.notifyGroup(ctx, entities.EventPrefacturaClientOK, saved, entities.RoleAccounting)
	return saved, nil
}

func (u *PrefacturaUseCase) ClientReject(ctx context.Context, actor entities.Actor, id, reason string) ([]entities.ServiceRequest, error) {
	group, err := u.loadGroup(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	now := clock()
	for i := range group {
		if err := prefactura.ClientReject(&group[i], actor, reason, now); err != nil {
			return nil, err
		}
	}
	saved, err := u.deps.Requests.SaveAll(ctx, group, deliveries(group, entities.DeliveryClientRejected, actor, reason, now))
	if err != nil {
		return nil, persistErr("failed to reject pre-invoice", err)
	}
	u.notifyGroup(ctx, entities.EventPrefacturaClientDeny, saved, entities.RoleAccounting)
	return saved, nil
}

func (u *PrefacturaUseCase) Deliveries(ctx context.Context, actor entities.Actor, id string) ([]entities.PrefacturaDelivery, error) {
	req, err := loadRequest(ctx, u.deps.Requests, actor, id)
	if err != nil {
		return nil, err
	}
	out, err := u.deps.Deliveries.ListByRequestID(ctx, req.ID)
	if err != nil {
		return nil, pkg.Wrap("failed to load pre-invoice deliveries", err)
	}
	return out, nil
}

// loadGroup returns the request id and every other request sharing its
// pre-invoice, id first.
func (u *PrefacturaUseCase) loadGroup(ctx context.Context, actor entities.Actor, id string) ([]entities.ServiceRequest, error) {
	req, err := loadRequest(ctx, u.deps.Requests, actor, id)
	if err != nil {
		return nil, err
	}
	if req.Prefactura == nil {
		return nil, prefactura.ErrNotGenerated
	}
	group := []entities.ServiceRequest{req}
	for _, other := range req.Prefactura.RequestIDs {
		if other == req.ID {
			continue
		}
		r, err := loadRequest(ctx, u.deps.Requests, actor, other)
		if err != nil {
			return nil, err
		}
		// A member that was regenerated on its own no longer shares the
		// document.
		if r.Prefactura == nil || r.Prefactura.Number != req.Prefactura.Number {
			continue
		}
		group = append(group, r)
	}
	return group, nil
}

func (u *PrefacturaUseCase) vehiclesWithoutExpenses(ctx context.Context, req entities.ServiceRequest) ([]string, error) {
	if u.deps.Expenses == nil {
		return settlement.VehiclesWithoutExpenses(req, nil), nil
	}
	expenses, err := u.deps.Expenses.ListByRequestID(ctx, req.ID)
	if err != nil {
		return nil, pkg.Wrap("failed to load expenses", err)
	}
	return settlement.VehiclesWithoutExpenses(req, expenses), nil
}

type snapshotVehicle struct {
	Plate              string `json:"plate"`
	OwnerName          string `json:"owner_name"`
	DriverName         string `json:"driver_name"`
	AssignedPassengers int    `json:"assigned_passengers"`
}

type snapshotRequest struct {
	ID             string              `json:"id"`
	SequenceNumber string              `json:"sequence_number"`
	Origin         string              `json:"origin"`
	Destination    string              `json:"destination"`
	ScheduledDate  string              `json:"scheduled_date"`
	AmountToBill   decimal.NullDecimal `json:"amount_to_bill"`
	AmountPaid     decimal.NullDecimal `json:"amount_paid"`
	TotalExpenses  decimal.Decimal     `json:"total_operational_expenses"`
	Profit         decimal.Decimal     `json:"profit"`
	Vehicles       []snapshotVehicle   `json:"vehicles"`
}

type snapshot struct {
	Number      string            `json:"number"`
	ClientID    string            `json:"client_id"`
	ClientName  string            `json:"client_name"`
	GeneratedAt time.Time         `json:"generated_at"`
	Requests    []snapshotRequest `json:"requests"`
}

// publishSnapshot hands the pre-invoice data to the external renderer.
// Failures are logged only.
func (u *PrefacturaUseCase) publishSnapshot(ctx context.Context, number string, reqs []entities.ServiceRequest, now time.Time) {
	if u.deps.Sink == nil || len(reqs) == 0 {
		return
	}
	doc := snapshot{Number: number, ClientID: reqs[0].ClientID, ClientName: reqs[0].ClientName, GeneratedAt: now}
	for _, r := range reqs {
		sr := snapshotRequest{
			ID:             r.ID,
			SequenceNumber: r.SequenceNumber,
			Origin:         r.Origin,
			Destination:    r.Destination,
			ScheduledDate:  r.ScheduledDate,
			AmountToBill:   r.AmountToBill,
			AmountPaid:     r.AmountPaid,
			TotalExpenses:  r.TotalOperationalExpenses,
			Profit:         r.Profit,
			Vehicles:       []snapshotVehicle{},
		}
		for _, a := range r.VehicleAssignments {
			sr.Vehicles = append(sr.Vehicles, snapshotVehicle{Plate: a.Plate, OwnerName: a.OwnerName, DriverName: a.DriverName, AssignedPassengers: a.AssignedPassengers})
		}
		doc.Requests = append(doc.Requests, sr)
	}
	body, err := json.Marshal(doc)
	if err != nil {
		u.logger.Warn("pre-invoice snapshot not encoded", zap.String("number", number), zap.Error(err))
		return
	}
	if err := u.deps.Sink.Publish(ctx, number+".json", body, "application/json"); err != nil {
		u.logger.Warn("pre-invoice snapshot not published", zap.String("number", number), zap.Error(err))
	}
}

func (u *PrefacturaUseCase) notifyGroup(ctx context.Context, event entities.NotificationEvent, reqs []entities.ServiceRequest, roles ...entities.Role) {
	for _, r := range reqs {
		data := map[string]string{"sequence_number": r.SequenceNumber}
		if r.Prefactura != nil {
			data["prefactura_number"] = r.Prefactura.Number
		}
		u.notify.send(ctx, event, r, data, roles...)
	}
}

func deliveries(group []entities.ServiceRequest, event entities.DeliveryEvent, actor entities.Actor, note string, now time.Time) []entities.PrefacturaDelivery {
	out := make([]entities.PrefacturaDelivery, 0, len(group))
	for _, r := range group {
		out = append(out, entities.PrefacturaDelivery{
			ID:               uuid.NewString(),
			RequestID:        r.ID,
			PrefacturaNumber: r.Prefactura.Number,
			Event:            event,
			State:            r.Prefactura.State,
			ActorID:          actor.ID,
			Note:             strings.TrimSpace(note),
			CreatedAt:        now,
		})
	}
	return out
}

func uniqueIDs(ids []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
