package usecase

import (
	"context"
	"errors"
	"testing"

	"transporte_xpto/internal/domain/allocation"
	"transporte_xpto/internal/domain/contracts"
	"transporte_xpto/internal/domain/entities"
	"transporte_xpto/internal/domain/lifecycle"
	"transporte_xpto/internal/domain/prefactura"
	"transporte_xpto/internal/usecase/interfaces"
	mock_interfaces "transporte_xpto/internal/usecase/interfaces/mocks"
	"transporte_xpto/pkg"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

var (
	coordinator = entities.Actor{ID: "u-coord", Role: entities.RoleOperationsCoordinator, CompanyID: "co1"}
	salesActor  = entities.Actor{ID: "u-sales", Role: entities.RoleSales, CompanyID: "co1"}
	accountant  = entities.Actor{ID: "u-acc", Role: entities.RoleAccounting, CompanyID: "co1"}
	clientActor = entities.Actor{ID: "u-client", Role: entities.RoleClient, ClientID: "cl1", CompanyID: "co1"}

	fleetV1 = entities.Vehicle{ID: "v1", CompanyID: "co1", Plate: "AAA111", Type: "bus", Seats: 20, Category: entities.FleetPropio, PrimaryDriverID: "d1", Active: true}
	fleetV2 = entities.Vehicle{ID: "v2", CompanyID: "co1", Plate: "BBB222", Type: "van", Seats: 10, Category: entities.FleetAfiliado, OwnerName: "Ana", PrimaryDriverID: "d2", SecondaryDriverIDs: []string{"d3"}, Active: true}
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func nullDec(v int64) decimal.NullDecimal { return decimal.NewNullDecimal(decimal.NewFromInt(v)) }

type srFixture struct {
	requests  *mock_interfaces.MockIServiceRequestRepository
	sections  *mock_interfaces.MockIPaymentSectionRepository
	contracts *mock_interfaces.MockIContractRepository
	fleet     *mock_interfaces.MockIFleetDirectory
	clients   *mock_interfaces.MockIClientDirectory
	locations *mock_interfaces.MockILocationRepository
	sequences *mock_interfaces.MockISequenceGenerator
	expenses  *mock_interfaces.MockIExpenseLedger
	notifier  *mock_interfaces.MockINotifier
	checkout  *mock_interfaces.MockICheckoutGateway
	uc        *ServiceRequestUseCase
}

func newSRFixture(t *testing.T) *srFixture {
	ctrl := gomock.NewController(t)
	f := &srFixture{
		requests:  mock_interfaces.NewMockIServiceRequestRepository(ctrl),
		sections:  mock_interfaces.NewMockIPaymentSectionRepository(ctrl),
		contracts: mock_interfaces.NewMockIContractRepository(ctrl),
		fleet:     mock_interfaces.NewMockIFleetDirectory(ctrl),
		clients:   mock_interfaces.NewMockIClientDirectory(ctrl),
		locations: mock_interfaces.NewMockILocationRepository(ctrl),
		sequences: mock_interfaces.NewMockISequenceGenerator(ctrl),
		expenses:  mock_interfaces.NewMockIExpenseLedger(ctrl),
		notifier:  mock_interfaces.NewMockINotifier(ctrl),
		checkout:  mock_interfaces.NewMockICheckoutGateway(ctrl),
	}
	f.uc = NewServiceRequestUseCase(ServiceRequestDeps{
		Requests:  f.requests,
		Sections:  f.sections,
		Contracts: f.contracts,
		Fleet:     f.fleet,
		Clients:   f.clients,
		Locations: f.locations,
		Sequences: f.sequences,
		Expenses:  f.expenses,
		Notifier:  f.notifier,
		Checkout:  f.checkout,
	}, nil)
	f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	return f
}

// withFleet makes v1 and v2 and their drivers resolvable.
func (f *srFixture) withFleet() {
	f.fleet.EXPECT().ListVehicles(gomock.Any(), "co1").Return([]entities.Vehicle{fleetV1, fleetV2}, nil).AnyTimes()
	f.fleet.EXPECT().GetDriver(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, id string) (entities.Driver, error) {
		return entities.Driver{ID: id, CompanyID: "co1", Name: "Driver " + id}, nil
	}).AnyTimes()
}

func (f *srFixture) withBookings(reqs ...entities.ServiceRequest) {
	f.requests.EXPECT().ListByCompanyAndDate(gomock.Any(), "co1", "2025-03-10").Return(reqs, nil).AnyTimes()
}

// captureSave records every write and returns it with the version bumped.
func (f *srFixture) captureSave(writes *[]interfaces.RequestWrite) {
	f.requests.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, w interfaces.RequestWrite) (entities.ServiceRequest, error) {
		*writes = append(*writes, w)
		r := w.Request
		r.Version++
		return r, nil
	}).AnyTimes()
}

func pendingRequest() entities.ServiceRequest {
	return entities.ServiceRequest{
		ID:                  "r1",
		CompanyID:           "co1",
		SequenceNumber:      "HE000001",
		ClientID:            "cl1",
		ClientName:          "Acme",
		Origin:              "Bogota",
		Destination:         "Medellin",
		ScheduledDate:       "2025-03-10",
		StartTime:           "08:00",
		RequestedPassengers: 25,
		ApprovalStatus:      entities.ApprovalPending,
		ExecutionStatus:     entities.ExecutionUnassigned,
		AccountingStatus:    entities.AccountingNotStarted,
		Version:             3,
	}
}

func TestServiceRequestUseCase_CreateByClient(t *testing.T) {
	in := CreateServiceRequestInput{
		ClientID:            "ignored",
		Origin:              " Bogota ",
		Destination:         "Medellin",
		ScheduledDate:       "2025-03-10",
		StartTime:           "08:00",
		RequestedPassengers: 12,
	}

	t.Run("client creates for itself with padded sequence", func(t *testing.T) {
		f := newSRFixture(t)
		f.clients.EXPECT().GetClient(gomock.Any(), "cl1").Return(entities.Client{ID: "cl1", CompanyID: "co1", Name: "Acme"}, nil)
		f.sequences.EXPECT().Next(gomock.Any(), "co1", "HE").Return(int64(42), nil)
		var writes []interfaces.RequestWrite
		f.captureSave(&writes)

		got, err := f.uc.CreateByClient(context.Background(), clientActor, in)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if got.SequenceNumber != "HE000042" || got.ClientID != "cl1" || got.Origin != "Bogota" {
			t.Fatalf("unexpected request: %+v", got)
		}
		if !writes[0].Create || writes[0].Request.ApprovalStatus != entities.ApprovalPending ||
			writes[0].Request.ExecutionStatus != entities.ExecutionUnassigned ||
			writes[0].Request.AccountingStatus != entities.AccountingNotStarted {
			t.Fatalf("unexpected write: %+v", writes[0])
		}
	})

	t.Run("missing destination", func(t *testing.T) {
		f := newSRFixture(t)
		bad := in
		bad.Destination = "  "
		_, err := f.uc.CreateByClient(context.Background(), clientActor, bad)
		if !errors.Is(err, ErrInvalidRoute) {
			t.Fatalf("expected ErrInvalidRoute, got %v", err)
		}
	})

	t.Run("invalid schedule", func(t *testing.T) {
		f := newSRFixture(t)
		bad := in
		bad.StartTime = "25:00"
		_, err := f.uc.CreateByClient(context.Background(), clientActor, bad)
		if !errors.Is(err, lifecycle.ErrInvalidTime) {
			t.Fatalf("expected ErrInvalidTime, got %v", err)
		}
	})

	t.Run("client of another company", func(t *testing.T) {
		f := newSRFixture(t)
		f.clients.EXPECT().GetClient(gomock.Any(), "cl1").Return(entities.Client{ID: "cl1", CompanyID: "other"}, nil)
		_, err := f.uc.CreateByClient(context.Background(), clientActor, in)
		if !errors.Is(err, ErrClientNotFound) {
			t.Fatalf("expected ErrClientNotFound, got %v", err)
		}
	})
}

func TestServiceRequestUseCase_Accept(t *testing.T) {
	multi := AcceptInput{
		ContractID: "k1",
		Assignments: []allocation.AssignmentInput{
			{VehicleID: "v1", AssignedPassengers: 18, ChargeMode: entities.ChargeWithinContract, ChargeAmount: dec(100)},
			{VehicleID: "v2", DriverID: "d3", AssignedPassengers: 7, ChargeMode: entities.ChargeWithinContract, ChargeAmount: dec(50)},
		},
	}
	contract := entities.Contract{
		ID: "k1", CompanyID: "co1", ClientID: "cl1", Active: true,
		BudgetAmount: nullDec(1000), ConsumedAmount: dec(200), Version: 5,
	}
	later := entities.ServiceRequest{
		ID: "r9", SequenceNumber: "HE000009", ScheduledDate: "2025-03-10", StartTime: "12:00", FinalTime: "14:00",
		ApprovalStatus: entities.ApprovalAccepted, VehicleID: "v1", DriverID: "d1",
	}
	driverBusyElsewhere := entities.ServiceRequest{
		ID: "r8", SequenceNumber: "HE000008", ScheduledDate: "2025-03-10", StartTime: "08:30",
		ApprovalStatus: entities.ApprovalAccepted, VehicleID: "v7", DriverID: "d2",
	}

	t.Run("multi vehicle within contract", func(t *testing.T) {
		f := newSRFixture(t)
		f.withFleet()
		f.withBookings(later, driverBusyElsewhere)
		f.requests.EXPECT().GetByID(gomock.Any(), "r1").Return(pendingRequest(), nil)
		f.locations.EXPECT().FindOrCreate(gomock.Any(), "co1", "Bogota").Return(entities.Location{ID: "loc1"}, nil)
		f.locations.EXPECT().FindOrCreate(gomock.Any(), "co1", "Medellin").Return(entities.Location{ID: "loc2"}, nil)
		f.contracts.EXPECT().GetByID(gomock.Any(), "k1").Return(contract, nil)
		f.expenses.EXPECT().ListByRequestID(gomock.Any(), "r1").Return(nil, nil)
		var writes []interfaces.RequestWrite
		f.captureSave(&writes)

		got, err := f.uc.Accept(context.Background(), coordinator, "r1", multi)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if got.ApprovalStatus != entities.ApprovalAccepted || got.ExecutionStatus != entities.ExecutionNotStarted {
			t.Fatalf("unexpected statuses: %s/%s", got.ApprovalStatus, got.ExecutionStatus)
		}
		if got.VehicleID != "v1" || got.DriverID != "d1" || got.OriginID != "loc1" || got.DestinationID != "loc2" {
			t.Fatalf("unexpected request: %+v", got)
		}
		if got.VehicleAssignments[1].DriverID != "d3" {
			t.Fatalf("expected pinned secondary driver, got %s", got.VehicleAssignments[1].DriverID)
		}

		w := writes[0]
		if len(w.Contracts) != 1 || len(w.Contracts[0].Entries) != 2 {
			t.Fatalf("expected one contract write with two entries, got %+v", w.Contracts)
		}
		if !w.Contracts[0].Contract.ConsumedAmount.Equal(dec(350)) || w.Contracts[0].Contract.Version != 5 {
			t.Fatalf("unexpected contract: %+v", w.Contracts[0].Contract)
		}
		if w.Section == nil || len(w.Section.Rows) != 2 || w.Section.Rows[0].State != entities.PaymentRowPending {
			t.Fatalf("unexpected section: %+v", w.Section)
		}
	})

	t.Run("single vehicle shortcut outside contract", func(t *testing.T) {
		f := newSRFixture(t)
		f.withFleet()
		f.withBookings()
		req := pendingRequest()
		req.RequestedPassengers = 15
		f.requests.EXPECT().GetByID(gomock.Any(), "r1").Return(req, nil)
		f.locations.EXPECT().FindOrCreate(gomock.Any(), "co1", gomock.Any()).Return(entities.Location{ID: "loc"}, nil).Times(2)
		f.expenses.EXPECT().ListByRequestID(gomock.Any(), "r1").Return(nil, nil)
		var writes []interfaces.RequestWrite
		f.captureSave(&writes)

		got, err := f.uc.Accept(context.Background(), coordinator, "r1", AcceptInput{VehicleID: "v1", ChargeMode: entities.ChargeOutsideContract})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if len(got.VehicleAssignments) != 1 || got.VehicleAssignments[0].AssignedPassengers != 15 {
			t.Fatalf("unexpected assignments: %+v", got.VehicleAssignments)
		}
		if len(writes[0].Contracts) != 0 {
			t.Fatalf("outside contract must not charge")
		}
	})

	t.Run("zero within contract records zero charge", func(t *testing.T) {
		f := newSRFixture(t)
		f.withFleet()
		f.withBookings()
		req := pendingRequest()
		req.RequestedPassengers = 10
		f.requests.EXPECT().GetByID(gomock.Any(), "r1").Return(req, nil)
		f.locations.EXPECT().FindOrCreate(gomock.Any(), "co1", gomock.Any()).Return(entities.Location{ID: "loc"}, nil).Times(2)
		f.contracts.EXPECT().GetByID(gomock.Any(), "k1").Return(contract, nil)
		f.expenses.EXPECT().ListByRequestID(gomock.Any(), "r1").Return(nil, nil)
		var writes []interfaces.RequestWrite
		f.captureSave(&writes)

		_, err := f.uc.Accept(context.Background(), coordinator, "r1", AcceptInput{
			VehicleID: "v2", ContractID: "k1", ChargeMode: entities.ChargeWithinContract, ChargeAmount: decimal.Zero,
		})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		entries := writes[0].Contracts[0].Entries
		if len(entries) != 1 || entries[0].Type != entities.ContractEntryZeroCharge {
			t.Fatalf("expected zero_charge entry, got %+v", entries)
		}
		if !writes[0].Contracts[0].Contract.ConsumedAmount.Equal(dec(200)) {
			t.Fatalf("zero charge must not move consumed amount")
		}
	})

	t.Run("request level charge is the default of every vehicle", func(t *testing.T) {
		f := newSRFixture(t)
		f.withFleet()
		f.withBookings()
		f.requests.EXPECT().GetByID(gomock.Any(), "r1").Return(pendingRequest(), nil)
		f.locations.EXPECT().FindOrCreate(gomock.Any(), "co1", gomock.Any()).Return(entities.Location{ID: "loc"}, nil).Times(2)
		f.contracts.EXPECT().GetByID(gomock.Any(), "k1").Return(contract, nil)
		f.expenses.EXPECT().ListByRequestID(gomock.Any(), "r1").Return(nil, nil)
		var writes []interfaces.RequestWrite
		f.captureSave(&writes)

		got, err := f.uc.Accept(context.Background(), coordinator, "r1", AcceptInput{
			ContractID:   "k1",
			ChargeMode:   entities.ChargeWithinContract,
			ChargeAmount: dec(300),
			Assignments: []allocation.AssignmentInput{
				{VehicleID: "v1", AssignedPassengers: 18},
				{VehicleID: "v2", AssignedPassengers: 7, ChargeMode: entities.ChargeOutsideContract},
			},
		})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		first, second := got.VehicleAssignments[0], got.VehicleAssignments[1]
		if first.ContractID != "k1" || first.ChargeMode != entities.ChargeWithinContract || !first.ChargeAmount.Equal(dec(300)) {
			t.Fatalf("default not attached to v1: %+v", first)
		}
		if second.ContractID != "k1" || second.ChargeMode != entities.ChargeOutsideContract || !second.ChargeAmount.IsZero() {
			t.Fatalf("override of v2 not kept: %+v", second)
		}
		w := writes[0]
		if len(w.Contracts) != 1 || len(w.Contracts[0].Entries) != 1 || !w.Contracts[0].Contract.ConsumedAmount.Equal(dec(500)) {
			t.Fatalf("expected one charge of 300, got %+v", w.Contracts)
		}
	})

	t.Run("estimate without hours is left empty", func(t *testing.T) {
		f := newSRFixture(t)
		f.withFleet()
		f.withBookings()
		req := pendingRequest()
		req.RequestedPassengers = 15
		f.requests.EXPECT().GetByID(gomock.Any(), "r1").Return(req, nil)
		f.locations.EXPECT().FindOrCreate(gomock.Any(), "co1", gomock.Any()).Return(entities.Location{ID: "loc"}, nil).Times(2)
		hourly := contract
		hourly.Rates = map[entities.PricingMode]decimal.Decimal{entities.PricingPerHour: dec(80)}
		f.contracts.EXPECT().GetByID(gomock.Any(), "k1").Return(hourly, nil)
		f.expenses.EXPECT().ListByRequestID(gomock.Any(), "r1").Return(nil, nil)
		var writes []interfaces.RequestWrite
		f.captureSave(&writes)

		got, err := f.uc.Accept(context.Background(), coordinator, "r1", AcceptInput{
			VehicleID:   "v1",
			ContractID:  "k1",
			ChargeMode:  entities.ChargeOutsideContract,
			PricingMode: entities.PricingPerHour,
		})
		if err != nil {
			t.Fatalf("missing hours must not fail acceptance: %v", err)
		}
		if got.EstimatedPrice.Valid || len(writes) != 1 {
			t.Fatalf("expected one save without estimate, got %v and %d saves", got.EstimatedPrice, len(writes))
		}
	})

	t.Run("estimate with hours", func(t *testing.T) {
		f := newSRFixture(t)
		f.withFleet()
		f.withBookings()
		req := pendingRequest()
		req.RequestedPassengers = 15
		f.requests.EXPECT().GetByID(gomock.Any(), "r1").Return(req, nil)
		f.locations.EXPECT().FindOrCreate(gomock.Any(), "co1", gomock.Any()).Return(entities.Location{ID: "loc"}, nil).Times(2)
		hourly := contract
		hourly.Rates = map[entities.PricingMode]decimal.Decimal{entities.PricingPerHour: dec(80)}
		f.contracts.EXPECT().GetByID(gomock.Any(), "k1").Return(hourly, nil)
		f.expenses.EXPECT().ListByRequestID(gomock.Any(), "r1").Return(nil, nil)
		var writes []interfaces.RequestWrite
		f.captureSave(&writes)

		got, err := f.uc.Accept(context.Background(), coordinator, "r1", AcceptInput{
			VehicleID:      "v1",
			ContractID:     "k1",
			ChargeMode:     entities.ChargeOutsideContract,
			PricingMode:    entities.PricingPerHour,
			EstimatedHours: decimal.NewNullDecimal(decimal.RequireFromString("2.5")),
		})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if !got.EstimatedPrice.Valid || !got.EstimatedPrice.Decimal.Equal(dec(200)) {
			t.Fatalf("expected estimate 200, got %v", got.EstimatedPrice)
		}
	})

	t.Run("passenger mismatch", func(t *testing.T) {
		f := newSRFixture(t)
		f.withFleet()
		f.requests.EXPECT().GetByID(gomock.Any(), "r1").Return(pendingRequest(), nil)
		in := multi
		in.Assignments = []allocation.AssignmentInput{{VehicleID: "v1", AssignedPassengers: 20}}
		_, err := f.uc.Accept(context.Background(), coordinator, "r1", in)
		if !errors.Is(err, allocation.ErrPassengerMismatch) {
			t.Fatalf("expected ErrPassengerMismatch, got %v", err)
		}
	})

	t.Run("vehicle busy until end of day", func(t *testing.T) {
		f := newSRFixture(t)
		f.withFleet()
		f.withBookings(entities.ServiceRequest{
			ID: "r7", SequenceNumber: "HE000007", ScheduledDate: "2025-03-10", StartTime: "07:30",
			ApprovalStatus: entities.ApprovalAccepted, VehicleID: "v1", DriverID: "d1",
		})
		f.requests.EXPECT().GetByID(gomock.Any(), "r1").Return(pendingRequest(), nil)
		_, err := f.uc.Accept(context.Background(), coordinator, "r1", multi)
		if !errors.Is(err, ErrVehicleUnavailable) {
			t.Fatalf("expected ErrVehicleUnavailable, got %v", err)
		}
	})

	t.Run("budget exceeded saves nothing", func(t *testing.T) {
		f := newSRFixture(t)
		f.withFleet()
		f.withBookings()
		f.requests.EXPECT().GetByID(gomock.Any(), "r1").Return(pendingRequest(), nil)
		f.locations.EXPECT().FindOrCreate(gomock.Any(), "co1", gomock.Any()).Return(entities.Location{ID: "loc"}, nil).Times(2)
		tight := contract
		tight.BudgetAmount = nullDec(300)
		f.contracts.EXPECT().GetByID(gomock.Any(), "k1").Return(tight, nil)

		_, err := f.uc.Accept(context.Background(), coordinator, "r1", multi)
		if !errors.Is(err, contracts.ErrBudgetExceeded) {
			t.Fatalf("expected ErrBudgetExceeded, got %v", err)
		}
	})

	t.Run("contract of another client", func(t *testing.T) {
		f := newSRFixture(t)
		f.withFleet()
		f.withBookings()
		f.requests.EXPECT().GetByID(gomock.Any(), "r1").Return(pendingRequest(), nil)
		f.locations.EXPECT().FindOrCreate(gomock.Any(), "co1", gomock.Any()).Return(entities.Location{ID: "loc"}, nil).Times(2)
		foreign := contract
		foreign.ClientID = "cl2"
		f.contracts.EXPECT().GetByID(gomock.Any(), "k1").Return(foreign, nil)

		_, err := f.uc.Accept(context.Background(), coordinator, "r1", multi)
		if !errors.Is(err, ErrContractClient) {
			t.Fatalf("expected ErrContractClient, got %v", err)
		}
	})

	t.Run("lost race is a conflict", func(t *testing.T) {
		f := newSRFixture(t)
		f.withFleet()
		f.withBookings()
		f.requests.EXPECT().GetByID(gomock.Any(), "r1").Return(pendingRequest(), nil)
		f.locations.EXPECT().FindOrCreate(gomock.Any(), "co1", gomock.Any()).Return(entities.Location{ID: "loc"}, nil).Times(2)
		f.contracts.EXPECT().GetByID(gomock.Any(), "k1").Return(contract, nil)
		f.expenses.EXPECT().ListByRequestID(gomock.Any(), "r1").Return(nil, nil)
		f.requests.EXPECT().Save(gomock.Any(), gomock.Any()).Return(entities.ServiceRequest{}, interfaces.ErrConcurrentUpdate)

		_, err := f.uc.Accept(context.Background(), coordinator, "r1", multi)
		if !errors.Is(err, ErrConcurrentModification) {
			t.Fatalf("expected ErrConcurrentModification, got %v", err)
		}
	})

	t.Run("sales cannot accept", func(t *testing.T) {
		f := newSRFixture(t)
		_, err := f.uc.Accept(context.Background(), salesActor, "r1", multi)
		if !errors.Is(err, lifecycle.ErrNotAllowed) {
			t.Fatalf("expected ErrNotAllowed, got %v", err)
		}
	})

	t.Run("already accepted", func(t *testing.T) {
		f := newSRFixture(t)
		req := pendingRequest()
		req.ApprovalStatus = entities.ApprovalAccepted
		f.requests.EXPECT().GetByID(gomock.Any(), "r1").Return(req, nil)
		_, err := f.uc.Accept(context.Background(), coordinator, "r1", multi)
		if !errors.Is(err, lifecycle.ErrNotPending) {
			t.Fatalf("expected ErrNotPending, got %v", err)
		}
	})
}

func TestServiceRequestUseCase_Reject(t *testing.T) {
	t.Run("reason required", func(t *testing.T) {
		f := newSRFixture(t)
		f.requests.EXPECT().GetByID(gomock.Any(), "r1").Return(pendingRequest(), nil)
		_, err := f.uc.Reject(context.Background(), coordinator, "r1", " ")
		if !errors.Is(err, lifecycle.ErrRejectionReason) {
			t.Fatalf("expected ErrRejectionReason, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		f := newSRFixture(t)
		f.requests.EXPECT().GetByID(gomock.Any(), "r1").Return(pendingRequest(), nil)
		var writes []interfaces.RequestWrite
		f.captureSave(&writes)
		got, err := f.uc.Reject(context.Background(), coordinator, "r1", "no fleet")
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if got.ApprovalStatus != entities.ApprovalRejected || got.RejectionReason != "no fleet" {
			t.Fatalf("unexpected request: %+v", got)
		}
	})
}

func TestServiceRequestUseCase_AssignVehicles(t *testing.T) {
	t.Run("covering allows more seats and keeps documents", func(t *testing.T) {
		f := newSRFixture(t)
		f.withFleet()
		f.withBookings()
		req := pendingRequest()
		req.ApprovalStatus = entities.ApprovalAccepted
		req.ExecutionStatus = entities.ExecutionNotStarted
		req.VehicleAssignments = []entities.VehicleAssignment{{
			VehicleID: "v1", Plate: "AAA111", DriverID: "d1", AssignedPassengers: 20,
			Accounting: entities.VehicleAccounting{PreInvoice: &entities.DocumentRef{Number: "PF-1"}},
		}}
		f.requests.EXPECT().GetByID(gomock.Any(), "r1").Return(req, nil)
		f.expenses.EXPECT().ListByRequestID(gomock.Any(), "r1").Return(nil, nil)
		var writes []interfaces.RequestWrite
		f.captureSave(&writes)

		got, err := f.uc.AssignVehicles(context.Background(), coordinator, "r1", []allocation.AssignmentInput{
			{VehicleID: "v1", AssignedPassengers: 20},
			{VehicleID: "v2", AssignedPassengers: 10},
		})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if len(got.VehicleAssignments) != 2 || got.VehicleAssignments[0].Accounting.PreInvoice == nil {
			t.Fatalf("unexpected assignments: %+v", got.VehicleAssignments)
		}
		if len(writes[0].Contracts) != 0 {
			t.Fatalf("assigning vehicles must not charge contracts")
		}
	})

	t.Run("vehicle of another company", func(t *testing.T) {
		f := newSRFixture(t)
		f.withFleet()
		req := pendingRequest()
		f.requests.EXPECT().GetByID(gomock.Any(), "r1").Return(req, nil)
		f.fleet.EXPECT().GetVehicle(gomock.Any(), "vx").Return(entities.Vehicle{ID: "vx", CompanyID: "co2", Plate: "XXX999", Seats: 40, PrimaryDriverID: "dx", Active: true}, nil)

		_, err := f.uc.AssignVehicles(context.Background(), coordinator, "r1", []allocation.AssignmentInput{{VehicleID: "vx", AssignedPassengers: 25}})
		if !errors.Is(err, allocation.ErrVehicleNotInCompany) {
			t.Fatalf("expected ErrVehicleNotInCompany, got %v", err)
		}
	})

	t.Run("rejected request is closed", func(t *testing.T) {
		f := newSRFixture(t)
		req := pendingRequest()
		req.ApprovalStatus = entities.ApprovalRejected
		f.requests.EXPECT().GetByID(gomock.Any(), "r1").Return(req, nil)
		_, err := f.uc.AssignVehicles(context.Background(), coordinator, "r1", nil)
		if !errors.Is(err, ErrRequestClosed) {
			t.Fatalf("expected ErrRequestClosed, got %v", err)
		}
	})
}

func acceptedRequest() entities.ServiceRequest {
	req := pendingRequest()
	req.ApprovalStatus = entities.ApprovalAccepted
	req.ExecutionStatus = entities.ExecutionNotStarted
	req.VehicleID, req.DriverID = "v1", "d1"
	req.VehicleAssignments = []entities.VehicleAssignment{
		{VehicleID: "v1", Plate: "AAA111", DriverID: "d1", AssignedPassengers: 18},
		{VehicleID: "v2", Plate: "BBB222", DriverID: "d3", AssignedPassengers: 7},
	}
	return req
}

func TestServiceRequestUseCase_Start(t *testing.T) {
	t.Run("starts when still free", func(t *testing.T) {
		f := newSRFixture(t)
		f.withFleet()
		f.withBookings()
		f.requests.EXPECT().GetByID(gomock.Any(), "r1").Return(acceptedRequest(), nil)
		var writes []interfaces.RequestWrite
		f.captureSave(&writes)

		got, err := f.uc.Start(context.Background(), coordinator, "r1")
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if got.ExecutionStatus != entities.ExecutionStarted || got.StartedBy != "u-coord" {
			t.Fatalf("unexpected request: %+v", got)
		}
	})

	t.Run("overlapping request already holds the vehicle", func(t *testing.T) {
		f := newSRFixture(t)
		f.withFleet()
		f.withBookings(entities.ServiceRequest{
			ID: "r2", SequenceNumber: "HE000002", ScheduledDate: "2025-03-10", StartTime: "08:30", FinalTime: "10:00",
			ApprovalStatus: entities.ApprovalAccepted, ExecutionStatus: entities.ExecutionStarted, VehicleID: "v2", DriverID: "d2",
		})
		f.requests.EXPECT().GetByID(gomock.Any(), "r1").Return(acceptedRequest(), nil)

		_, err := f.uc.Start(context.Background(), coordinator, "r1")
		if !errors.Is(err, ErrVehicleUnavailable) {
			t.Fatalf("expected ErrVehicleUnavailable, got %v", err)
		}
	})

	t.Run("twice", func(t *testing.T) {
		f := newSRFixture(t)
		req := acceptedRequest()
		req.ExecutionStatus = entities.ExecutionStarted
		f.requests.EXPECT().GetByID(gomock.Any(), "r1").Return(req, nil)
		_, err := f.uc.Start(context.Background(), coordinator, "r1")
		if !errors.Is(err, lifecycle.ErrAlreadyStarted) {
			t.Fatalf("expected ErrAlreadyStarted, got %v", err)
		}
	})
}

func TestServiceRequestUseCase_Finish(t *testing.T) {
	started := func() entities.ServiceRequest {
		req := acceptedRequest()
		req.ExecutionStatus = entities.ExecutionStarted
		req.AmountToBill = nullDec(1000)
		req.AmountPaid = nullDec(600)
		req.AccountingStatus = entities.AccountingPendingExpenses
		return req
	}

	t.Run("records hours and settles in one write", func(t *testing.T) {
		f := newSRFixture(t)
		f.requests.EXPECT().GetByID(gomock.Any(), "r1").Return(started(), nil)
		f.expenses.EXPECT().ListByRequestID(gomock.Any(), "r1").Return([]entities.Expense{
			{VehicleID: "v1", Kind: entities.ExpenseOperational, Amount: dec(50)},
			{VehicleID: "v2", Kind: entities.ExpensePreoperational, Amount: dec(20)},
		}, nil)
		var writes []interfaces.RequestWrite
		f.captureSave(&writes)

		got, err := f.uc.Finish(context.Background(), coordinator, "r1", FinishInput{FinalTime: "10:30"})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if !got.TotalHours.Decimal.Equal(decimal.RequireFromString("2.5")) {
			t.Fatalf("expected 2.5 hours, got %s", got.TotalHours.Decimal)
		}
		if got.AccountingStatus != entities.AccountingExpensesComplete || !got.Profit.Equal(dec(330)) {
			t.Fatalf("unexpected accounting: %s profit=%s", got.AccountingStatus, got.Profit)
		}
		if len(writes) != 1 || writes[0].Section == nil {
			t.Fatalf("expected a single write with the payment section")
		}
		rows := writes[0].Section.Rows
		if !rows[0].FinalAmount.Equal(dec(250)) || !rows[1].FinalAmount.Equal(dec(280)) || rows[1].State != entities.PaymentRowReady {
			t.Fatalf("unexpected rows: %+v", rows)
		}
	})

	t.Run("eight to half past eleven is three and a half hours", func(t *testing.T) {
		f := newSRFixture(t)
		req := started()
		req.ScheduledDate = "2024-01-01"
		f.requests.EXPECT().GetByID(gomock.Any(), "r1").Return(req, nil)
		f.expenses.EXPECT().ListByRequestID(gomock.Any(), "r1").Return(nil, nil)
		var writes []interfaces.RequestWrite
		f.captureSave(&writes)

		got, err := f.uc.Finish(context.Background(), coordinator, "r1", FinishInput{FinalDate: "2024-01-01", FinalTime: "11:30"})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if !got.TotalHours.Valid || !got.TotalHours.Decimal.Equal(decimal.RequireFromString("3.5")) {
			t.Fatalf("expected 3.5 hours, got %s", got.TotalHours.Decimal)
		}
	})

	t.Run("expense ledger failure fails the finish", func(t *testing.T) {
		f := newSRFixture(t)
		f.requests.EXPECT().GetByID(gomock.Any(), "r1").Return(started(), nil)
		f.expenses.EXPECT().ListByRequestID(gomock.Any(), "r1").Return(nil, errors.New("pg down"))

		_, err := f.uc.Finish(context.Background(), coordinator, "r1", FinishInput{FinalTime: "10:30"})
		var appErr *pkg.AppError
		if !errors.As(err, &appErr) || appErr.Kind != pkg.KindInternal {
			t.Fatalf("expected internal error, got %v", err)
		}
	})

	t.Run("final before start", func(t *testing.T) {
		f := newSRFixture(t)
		f.requests.EXPECT().GetByID(gomock.Any(), "r1").Return(started(), nil)
		_, err := f.uc.Finish(context.Background(), coordinator, "r1", FinishInput{FinalTime: "07:00"})
		if !errors.Is(err, lifecycle.ErrInvalidFinalTime) {
			t.Fatalf("expected ErrInvalidFinalTime, got %v", err)
		}
	})
}

func TestServiceRequestUseCase_UpdateFinancials(t *testing.T) {
	t.Run("negative amount", func(t *testing.T) {
		f := newSRFixture(t)
		_, err := f.uc.UpdateFinancials(context.Background(), salesActor, "r1", FinancialsInput{AmountPaid: nullDec(-1)})
		if !errors.Is(err, ErrNegativeAmount) {
			t.Fatalf("expected ErrNegativeAmount, got %v", err)
		}
	})

	t.Run("advances to pending expenses", func(t *testing.T) {
		f := newSRFixture(t)
		f.requests.EXPECT().GetByID(gomock.Any(), "r1").Return(acceptedRequest(), nil)
		f.expenses.EXPECT().ListByRequestID(gomock.Any(), "r1").Return(nil, nil)
		var writes []interfaces.RequestWrite
		f.captureSave(&writes)

		got, err := f.uc.UpdateFinancials(context.Background(), salesActor, "r1", FinancialsInput{AmountToBill: nullDec(900), AmountPaid: nullDec(500)})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if got.AccountingStatus != entities.AccountingPendingExpenses || !got.ProfitPercent.Equal(decimal.RequireFromString("44.44")) {
			t.Fatalf("unexpected request: %s %s", got.AccountingStatus, got.ProfitPercent)
		}
	})

	t.Run("locked after pre-invoice", func(t *testing.T) {
		f := newSRFixture(t)
		req := acceptedRequest()
		req.AccountingStatus = entities.AccountingPreInvoicePending
		f.requests.EXPECT().GetByID(gomock.Any(), "r1").Return(req, nil)
		_, err := f.uc.UpdateFinancials(context.Background(), salesActor, "r1", FinancialsInput{AmountPaid: nullDec(1)})
		if !errors.Is(err, ErrFinancialsLocked) {
			t.Fatalf("expected ErrFinancialsLocked, got %v", err)
		}
	})
}

func TestServiceRequestUseCase_RecomputeSettlement(t *testing.T) {
	f := newSRFixture(t)
	req := acceptedRequest()
	req.AmountToBill = nullDec(1000)
	req.AmountPaid = nullDec(600)
	req.AccountingStatus = entities.AccountingPendingExpenses
	f.requests.EXPECT().GetByID(gomock.Any(), "r1").Return(req, nil)
	f.expenses.EXPECT().ListByRequestID(gomock.Any(), "r1").Return([]entities.Expense{
		{VehicleID: "v1", Kind: entities.ExpenseOperational, Amount: dec(10)},
	}, nil)
	var writes []interfaces.RequestWrite
	f.captureSave(&writes)

	got, err := f.uc.RecomputeSettlement(context.Background(), "r1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Request.AccountingStatus != entities.AccountingPendingExpenses {
		t.Fatalf("v2 has no expenses, status must stay pending_expenses, got %s", got.Request.AccountingStatus)
	}
	if got.PaymentSection.Rows[1].State != entities.PaymentRowPending || !got.PaymentSection.TotalBase.Equal(dec(600)) {
		t.Fatalf("unexpected section: %+v", got.PaymentSection)
	}
}

func TestServiceRequestUseCase_UpdateVehicleAccounting(t *testing.T) {
	ready := func() entities.ServiceRequest {
		req := acceptedRequest()
		req.VehicleAssignments = req.VehicleAssignments[:1]
		req.AccountingStatus = entities.AccountingReadyToInvoice
		req.AmountToBill = nullDec(1000)
		req.VehicleAssignments[0].Accounting.PreInvoice = &entities.DocumentRef{Number: "PF-1"}
		return req
	}

	t.Run("invoice needs pre-settlement", func(t *testing.T) {
		f := newSRFixture(t)
		f.requests.EXPECT().GetByID(gomock.Any(), "r1").Return(ready(), nil)
		_, err := f.uc.UpdateVehicleAccounting(context.Background(), accountant, "r1", "v1", VehicleAccountingInput{InvoiceNumber: "FV-1"})
		if !errors.Is(err, prefactura.ErrMissingSubDocument) {
			t.Fatalf("expected ErrMissingSubDocument, got %v", err)
		}
	})

	t.Run("last vehicle invoiced closes the request", func(t *testing.T) {
		f := newSRFixture(t)
		f.requests.EXPECT().GetByID(gomock.Any(), "r1").Return(ready(), nil)
		f.checkout.EXPECT().CreateCheckoutLink(gomock.Any(), "r1", "Servicio HE000001", gomock.Any()).Return("https://pay.test/r1", nil)
		var writes []interfaces.RequestWrite
		f.captureSave(&writes)

		got, err := f.uc.UpdateVehicleAccounting(context.Background(), accountant, "r1", "v1", VehicleAccountingInput{
			PreSettlement: &DocumentInput{Number: "PL-1", Amount: dec(300)},
			InvoiceNumber: "FV-1",
		})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if got.AccountingStatus != entities.AccountingInvoiced || got.InvoiceNumber != "FV-1" || got.CheckoutURL != "https://pay.test/r1" {
			t.Fatalf("unexpected request: %+v", got)
		}
		if len(writes) != 2 {
			t.Fatalf("expected invoicing write plus checkout link write, got %d", len(writes))
		}
	})

	t.Run("checkout failure does not fail invoicing", func(t *testing.T) {
		f := newSRFixture(t)
		req := ready()
		req.VehicleAssignments[0].Accounting.PreSettlement = &entities.DocumentRef{Number: "PL-1"}
		f.requests.EXPECT().GetByID(gomock.Any(), "r1").Return(req, nil)
		f.checkout.EXPECT().CreateCheckoutLink(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("mp down"))
		var writes []interfaces.RequestWrite
		f.captureSave(&writes)

		got, err := f.uc.UpdateVehicleAccounting(context.Background(), accountant, "r1", "v1", VehicleAccountingInput{InvoiceNumber: "FV-1"})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if got.AccountingStatus != entities.AccountingInvoiced || got.CheckoutURL != "" || len(writes) != 1 {
			t.Fatalf("unexpected result: %+v writes=%d", got, len(writes))
		}
	})

	t.Run("unknown vehicle", func(t *testing.T) {
		f := newSRFixture(t)
		f.requests.EXPECT().GetByID(gomock.Any(), "r1").Return(ready(), nil)
		_, err := f.uc.UpdateVehicleAccounting(context.Background(), accountant, "r1", "v9", VehicleAccountingInput{})
		if !errors.Is(err, ErrAssignmentNotFound) {
			t.Fatalf("expected ErrAssignmentNotFound, got %v", err)
		}
	})
}

func TestServiceRequestUseCase_Get(t *testing.T) {
	t.Run("other client cannot read", func(t *testing.T) {
		f := newSRFixture(t)
		req := pendingRequest()
		req.ClientID = "cl2"
		f.requests.EXPECT().GetByID(gomock.Any(), "r1").Return(req, nil)
		_, err := f.uc.Get(context.Background(), clientActor, "r1")
		if !errors.Is(err, ErrRequestNotVisible) {
			t.Fatalf("expected ErrRequestNotVisible, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		f := newSRFixture(t)
		f.requests.EXPECT().GetByID(gomock.Any(), "r1").Return(entities.ServiceRequest{}, nil)
		_, err := f.uc.Get(context.Background(), coordinator, "r1")
		if !errors.Is(err, ErrServiceRequestNotFound) {
			t.Fatalf("expected ErrServiceRequestNotFound, got %v", err)
		}
	})

	t.Run("with payment section", func(t *testing.T) {
		f := newSRFixture(t)
		f.requests.EXPECT().GetByID(gomock.Any(), "r1").Return(pendingRequest(), nil)
		f.sections.EXPECT().GetByRequestID(gomock.Any(), "r1").Return(entities.PaymentSection{RequestID: "r1"}, nil)
		got, err := f.uc.Get(context.Background(), clientActor, "r1")
		if err != nil || got.PaymentSection == nil {
			t.Fatalf("unexpected result: %+v %v", got, err)
		}
	})
}
