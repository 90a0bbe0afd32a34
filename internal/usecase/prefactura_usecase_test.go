package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"transporte_xpto/internal/domain/entities"
	"transporte_xpto/internal/domain/lifecycle"
	"transporte_xpto/internal/domain/prefactura"
	"transporte_xpto/internal/usecase/interfaces"
	mock_interfaces "transporte_xpto/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

type pfFixture struct {
	requests   *mock_interfaces.MockIServiceRequestRepository
	deliveries *mock_interfaces.MockIPrefacturaDeliveryRepository
	expenses   *mock_interfaces.MockIExpenseLedger
	sink       *mock_interfaces.MockIDocumentSink
	uc         *PrefacturaUseCase

	store           map[string]entities.ServiceRequest
	savedDeliveries []entities.PrefacturaDelivery
	saves           int
}

func newPFFixture(t *testing.T) *pfFixture {
	ctrl := gomock.NewController(t)
	f := &pfFixture{
		requests:   mock_interfaces.NewMockIServiceRequestRepository(ctrl),
		deliveries: mock_interfaces.NewMockIPrefacturaDeliveryRepository(ctrl),
		expenses:   mock_interfaces.NewMockIExpenseLedger(ctrl),
		sink:       mock_interfaces.NewMockIDocumentSink(ctrl),
		store:      map[string]entities.ServiceRequest{},
	}
	notify := mock_interfaces.NewMockINotifier(ctrl)
	notify.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.uc = NewPrefacturaUseCase(PrefacturaDeps{
		Requests:   f.requests,
		Deliveries: f.deliveries,
		Expenses:   f.expenses,
		Sink:       f.sink,
		Notifier:   notify,
	}, nil)
	f.requests.EXPECT().GetByID(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id string) (entities.ServiceRequest, error) {
			return f.load(id), nil
		}).AnyTimes()
	f.requests.EXPECT().SaveAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, reqs []entities.ServiceRequest, dels []entities.PrefacturaDelivery) ([]entities.ServiceRequest, error) {
			f.saves++
			f.savedDeliveries = append(f.savedDeliveries, dels...)
			f.stored(reqs...)
			return reqs, nil
		}).AnyTimes()
	return f
}

// stored puts reqs into the repository.
func (f *pfFixture) stored(reqs ...entities.ServiceRequest) {
	for _, r := range reqs {
		f.store[r.ID] = r
	}
}

// load returns a copy of the stored request that shares no pre-invoice
// with the store.
func (f *pfFixture) load(id string) entities.ServiceRequest {
	r := f.store[id]
	if r.Prefactura != nil {
		p := *r.Prefactura
		r.Prefactura = &p
	}
	return r
}

func completeRequest(id, seq string) entities.ServiceRequest {
	req := acceptedRequest()
	req.ID, req.SequenceNumber = id, seq
	req.ClientName = "Acme Corp."
	req.ExecutionStatus = entities.ExecutionFinished
	req.AccountingStatus = entities.AccountingExpensesComplete
	req.AmountToBill = nullDec(1000)
	req.AmountPaid = nullDec(600)
	return req
}

func bothVehiclesSpent(id string) []entities.Expense {
	return []entities.Expense{
		{RequestID: id, VehicleID: "v1", Kind: entities.ExpenseOperational, Amount: dec(10)},
		{RequestID: id, VehicleID: "v2", Kind: entities.ExpenseOperational, Amount: dec(10)},
	}
}

// withPrefactura returns req already carrying the pre-invoice number of group.
func withPrefactura(req entities.ServiceRequest, number string, state entities.PrefacturaState, sent bool, group ...string) entities.ServiceRequest {
	req.AccountingStatus = entities.AccountingPreInvoicePending
	req.Prefactura = &entities.Prefactura{
		Number:       number,
		RequestIDs:   group,
		State:        state,
		GeneratedBy:  "u-acc",
		GeneratedAt:  time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC),
		SentToClient: sent,
	}
	if sent {
		req.Prefactura.SentCount = 1
	}
	return req
}

func TestPrefacturaUseCase_Generate(t *testing.T) {
	t.Run("single request publishes snapshot", func(t *testing.T) {
		f := newPFFixture(t)
		f.stored(completeRequest("r1", "HE000017"))
		f.expenses.EXPECT().ListByRequestID(gomock.Any(), "r1").Return(bothVehiclesSpent("r1"), nil)
		f.sink.EXPECT().Publish(gomock.Any(), "PREF_HE000017_ACME_CORP.json", gomock.Any(), "application/json").DoAndReturn(
			func(_ context.Context, _ string, body []byte, _ string) error {
				var doc map[string]any
				if err := json.Unmarshal(body, &doc); err != nil {
					t.Fatalf("snapshot is not json: %v", err)
				}
				if doc["number"] != "PREF_HE000017_ACME_CORP" {
					t.Fatalf("unexpected snapshot: %v", doc)
				}
				return nil
			})

		got, err := f.uc.Generate(context.Background(), accountant, GenerateInput{RequestIDs: []string{"r1", " r1 "}})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if len(got) != 1 || got[0].Prefactura.Number != "PREF_HE000017_ACME_CORP" || got[0].AccountingStatus != entities.AccountingPreInvoicePending {
			t.Fatalf("unexpected result: %+v", got)
		}
	})

	t.Run("group gets one multi number", func(t *testing.T) {
		f := newPFFixture(t)
		f.stored(completeRequest("r1", "HE000012"), completeRequest("r2", "HE000009"))
		f.expenses.EXPECT().ListByRequestID(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, id string) ([]entities.Expense, error) {
			return bothVehiclesSpent(id), nil
		}).Times(2)
		f.sink.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("bucket missing"))

		got, err := f.uc.Generate(context.Background(), accountant, GenerateInput{RequestIDs: []string{"r1", "r2"}})
		if err != nil {
			t.Fatalf("publish failure must not fail generation: %v", err)
		}
		for _, r := range got {
			if r.Prefactura.Number != "PREF_MULTI_HE000009-HE000012_ACME_CORP" || len(r.Prefactura.RequestIDs) != 2 {
				t.Fatalf("unexpected pre-invoice: %+v", r.Prefactura)
			}
		}
	})

	t.Run("vehicle without expenses is named", func(t *testing.T) {
		f := newPFFixture(t)
		req := completeRequest("r1", "HE000017")
		req.AccountingStatus = entities.AccountingPendingExpenses
		f.stored(req)
		f.expenses.EXPECT().ListByRequestID(gomock.Any(), "r1").Return(bothVehiclesSpent("r1")[:1], nil)

		_, err := f.uc.Generate(context.Background(), accountant, GenerateInput{RequestIDs: []string{"r1"}})
		if !errors.Is(err, prefactura.ErrMissingExpenses) {
			t.Fatalf("expected ErrMissingExpenses, got %v", err)
		}
		if !strings.Contains(err.Error(), "BBB222") || strings.Contains(err.Error(), "AAA111") {
			t.Fatalf("expected only BBB222 to be named, got %v", err)
		}
		if f.saves != 0 {
			t.Fatalf("nothing must be saved")
		}
	})

	t.Run("reject then regenerate", func(t *testing.T) {
		f := newPFFixture(t)
		f.stored(completeRequest("r1", "HE000017"))
		f.expenses.EXPECT().ListByRequestID(gomock.Any(), "r1").Return(bothVehiclesSpent("r1"), nil).Times(3)
		f.sink.EXPECT().Publish(gomock.Any(), "PREF_HE000017_ACME_CORP.json", gomock.Any(), gomock.Any()).Return(nil).Times(2)

		first, err := f.uc.Generate(context.Background(), accountant, GenerateInput{RequestIDs: []string{"r1"}})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if _, err := f.uc.Generate(context.Background(), accountant, GenerateInput{RequestIDs: []string{"r1"}}); !errors.Is(err, prefactura.ErrAlreadyGenerated) {
			t.Fatalf("expected ErrAlreadyGenerated, got %v", err)
		}
		rejected, err := f.uc.Reject(context.Background(), accountant, "r1", RejectInput{Reason: "wrong amounts"})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if rejected[0].AccountingStatus != entities.AccountingExpensesComplete {
			t.Fatalf("expected expenses_complete after reject, got %s", rejected[0].AccountingStatus)
		}

		again, err := f.uc.Generate(context.Background(), accountant, GenerateInput{RequestIDs: []string{"r1"}})
		if err != nil {
			t.Fatalf("regeneration after reject failed: %v", err)
		}
		p := again[0].Prefactura
		if p.Number != first[0].Prefactura.Number || p.State != entities.PrefacturaPending || p.RejectionReason != "" {
			t.Fatalf("unexpected regenerated pre-invoice: %+v", p)
		}
		if again[0].AccountingStatus != entities.AccountingPreInvoicePending {
			t.Fatalf("unexpected status %s", again[0].AccountingStatus)
		}
	})

	t.Run("mixed clients", func(t *testing.T) {
		f := newPFFixture(t)
		other := completeRequest("r2", "HE000018")
		other.ClientID = "cl2"
		f.stored(completeRequest("r1", "HE000017"), other)
		f.expenses.EXPECT().ListByRequestID(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, id string) ([]entities.Expense, error) {
			return bothVehiclesSpent(id), nil
		}).Times(2)

		_, err := f.uc.Generate(context.Background(), accountant, GenerateInput{RequestIDs: []string{"r1", "r2"}})
		if !errors.Is(err, prefactura.ErrMixedClients) {
			t.Fatalf("expected ErrMixedClients, got %v", err)
		}
	})

	t.Run("empty list", func(t *testing.T) {
		f := newPFFixture(t)
		_, err := f.uc.Generate(context.Background(), accountant, GenerateInput{RequestIDs: []string{" "}})
		if !errors.Is(err, prefactura.ErrNoRequests) {
			t.Fatalf("expected ErrNoRequests, got %v", err)
		}
	})

	t.Run("sales cannot generate", func(t *testing.T) {
		f := newPFFixture(t)
		_, err := f.uc.Generate(context.Background(), salesActor, GenerateInput{RequestIDs: []string{"r1"}})
		if !errors.Is(err, lifecycle.ErrNotAllowed) {
			t.Fatalf("expected ErrNotAllowed, got %v", err)
		}
	})
}

func TestPrefacturaUseCase_ApproveReject(t *testing.T) {
	number := "PREF_MULTI_HE1-HE2_ACME_CORP"

	t.Run("approve moves the whole group", func(t *testing.T) {
		f := newPFFixture(t)
		f.stored(
			withPrefactura(completeRequest("r1", "HE1"), number, entities.PrefacturaPending, false, "r1", "r2"),
			withPrefactura(completeRequest("r2", "HE2"), number, entities.PrefacturaPending, false, "r1", "r2"),
		)
		got, err := f.uc.Approve(context.Background(), accountant, "r2", ApproveInput{})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if len(got) != 2 || got[0].ID != "r2" {
			t.Fatalf("expected r2 first then r1, got %d", len(got))
		}
		for _, r := range got {
			if r.AccountingStatus != entities.AccountingReadyToInvoice || !r.Prefactura.Approved {
				t.Fatalf("unexpected request %s: %s", r.ID, r.AccountingStatus)
			}
		}
	})

	t.Run("resend of approved writes nothing", func(t *testing.T) {
		f := newPFFixture(t)
		req := withPrefactura(completeRequest("r1", "HE1"), "PREF_HE1_ACME_CORP", entities.PrefacturaAccepted, false, "r1")
		req.Prefactura.Approved = true
		f.stored(req)

		if _, err := f.uc.Approve(context.Background(), accountant, "r1", ApproveInput{}); !errors.Is(err, prefactura.ErrAlreadyApproved) {
			t.Fatalf("expected ErrAlreadyApproved, got %v", err)
		}
		if _, err := f.uc.Approve(context.Background(), accountant, "r1", ApproveInput{Resend: true}); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if f.saves != 0 {
			t.Fatalf("resend must not write, got %d saves", f.saves)
		}
	})

	t.Run("member regenerated alone leaves the group", func(t *testing.T) {
		f := newPFFixture(t)
		f.stored(
			withPrefactura(completeRequest("r1", "HE1"), number, entities.PrefacturaPending, false, "r1", "r2"),
			withPrefactura(completeRequest("r2", "HE2"), "PREF_HE2_ACME_CORP", entities.PrefacturaPending, false, "r2"),
		)
		got, err := f.uc.Reject(context.Background(), accountant, "r1", RejectInput{Reason: "wrong amounts"})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if len(got) != 1 || got[0].AccountingStatus != entities.AccountingExpensesComplete || got[0].Prefactura.State != entities.PrefacturaRejected {
			t.Fatalf("unexpected result: %+v", got)
		}
	})

	t.Run("reject needs a reason", func(t *testing.T) {
		f := newPFFixture(t)
		f.stored(withPrefactura(completeRequest("r1", "HE1"), "PREF_HE1_ACME_CORP", entities.PrefacturaPending, false, "r1"))
		_, err := f.uc.Reject(context.Background(), accountant, "r1", RejectInput{})
		if !errors.Is(err, prefactura.ErrReasonRequired) {
			t.Fatalf("expected ErrReasonRequired, got %v", err)
		}
	})

	t.Run("no pre-invoice", func(t *testing.T) {
		f := newPFFixture(t)
		f.stored(completeRequest("r1", "HE1"))
		_, err := f.uc.Approve(context.Background(), accountant, "r1", ApproveInput{})
		if !errors.Is(err, prefactura.ErrNotGenerated) {
			t.Fatalf("expected ErrNotGenerated, got %v", err)
		}
	})
}

func TestPrefacturaUseCase_ClientFlow(t *testing.T) {
	t.Run("send records a delivery per request", func(t *testing.T) {
		f := newPFFixture(t)
		f.stored(withPrefactura(completeRequest("r1", "HE1"), "PREF_HE1_ACME_CORP", entities.PrefacturaPending, false, "r1"))
		got, err := f.uc.SendToClient(context.Background(), accountant, "r1", SendInput{Note: " first "})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if !got[0].Prefactura.SentToClient || got[0].Prefactura.SentCount != 1 {
			t.Fatalf("unexpected pre-invoice: %+v", got[0].Prefactura)
		}
		if len(f.savedDeliveries) != 1 || f.savedDeliveries[0].Event != entities.DeliverySent || f.savedDeliveries[0].Note != "first" {
			t.Fatalf("unexpected deliveries: %+v", f.savedDeliveries)
		}
	})

	t.Run("client approves", func(t *testing.T) {
		f := newPFFixture(t)
		f.stored(withPrefactura(completeRequest("r1", "HE1"), "PREF_HE1_ACME_CORP", entities.PrefacturaPending, true, "r1"))
		got, err := f.uc.ClientApprove(context.Background(), clientActor, "r1", ClientApproveInput{Note: "ok"})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if got[0].AccountingStatus != entities.AccountingReadyToInvoice {
			t.Fatalf("unexpected status %s", got[0].AccountingStatus)
		}
		d := f.savedDeliveries[0]
		if d.Event != entities.DeliveryClientApproved || d.State != entities.PrefacturaAccepted || d.ActorID != "u-client" {
			t.Fatalf("unexpected delivery: %+v", d)
		}
	})

	t.Run("internal approve after the client is a no-op", func(t *testing.T) {
		f := newPFFixture(t)
		f.stored(withPrefactura(completeRequest("r1", "HE1"), "PREF_HE1_ACME_CORP", entities.PrefacturaPending, true, "r1"))
		if _, err := f.uc.ClientApprove(context.Background(), clientActor, "r1", ClientApproveInput{Note: "ok"}); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		stamped := *f.store["r1"].Prefactura.ApprovedAt

		if _, err := f.uc.Approve(context.Background(), accountant, "r1", ApproveInput{}); !errors.Is(err, prefactura.ErrAlreadyApproved) {
			t.Fatalf("expected ErrAlreadyApproved, got %v", err)
		}
		if _, err := f.uc.Approve(context.Background(), accountant, "r1", ApproveInput{Resend: true}); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		p := f.store["r1"].Prefactura
		if f.saves != 1 || p.ApprovedBy != "u-client" || !p.ApprovedAt.Equal(stamped) {
			t.Fatalf("approval re-stamped: saves=%d %+v", f.saves, p)
		}
	})

	t.Run("client rejects", func(t *testing.T) {
		f := newPFFixture(t)
		f.stored(withPrefactura(completeRequest("r1", "HE1"), "PREF_HE1_ACME_CORP", entities.PrefacturaPending, true, "r1"))
		got, err := f.uc.ClientReject(context.Background(), clientActor, "r1", "too expensive")
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if got[0].AccountingStatus != entities.AccountingExpensesComplete || f.savedDeliveries[0].State != entities.PrefacturaRejected {
			t.Fatalf("unexpected result: %+v", got[0])
		}
	})

	t.Run("not sent yet", func(t *testing.T) {
		f := newPFFixture(t)
		f.stored(withPrefactura(completeRequest("r1", "HE1"), "PREF_HE1_ACME_CORP", entities.PrefacturaPending, false, "r1"))
		_, err := f.uc.ClientApprove(context.Background(), clientActor, "r1", ClientApproveInput{})
		if !errors.Is(err, prefactura.ErrNotSent) {
			t.Fatalf("expected ErrNotSent, got %v", err)
		}
	})

	t.Run("other client", func(t *testing.T) {
		f := newPFFixture(t)
		req := withPrefactura(completeRequest("r1", "HE1"), "PREF_HE1_ACME_CORP", entities.PrefacturaPending, true, "r1")
		req.ClientID = "cl2"
		f.stored(req)
		_, err := f.uc.ClientApprove(context.Background(), clientActor, "r1", ClientApproveInput{})
		if !errors.Is(err, ErrRequestNotVisible) {
			t.Fatalf("expected ErrRequestNotVisible, got %v", err)
		}
	})
}

func TestPrefacturaUseCase_GenerateWithZeroAmountPaid(t *testing.T) {
	pf := newPFFixture(t)
	sr := newSRFixture(t)
	req := completeRequest("r1", "HE000017")
	req.ExecutionStatus = entities.ExecutionFinished
	req.AccountingStatus = entities.AccountingNotStarted
	req.AmountToBill, req.AmountPaid = decimal.NullDecimal{}, decimal.NullDecimal{}
	pf.stored(req)

	sr.requests.EXPECT().GetByID(gomock.Any(), "r1").DoAndReturn(func(_ context.Context, id string) (entities.ServiceRequest, error) {
		return pf.load(id), nil
	}).Times(2)
	sr.requests.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, w interfaces.RequestWrite) (entities.ServiceRequest, error) {
		pf.stored(w.Request)
		return w.Request, nil
	}).Times(2)
	sr.expenses.EXPECT().ListByRequestID(gomock.Any(), "r1").Return(bothVehiclesSpent("r1"), nil).Times(2)
	pf.expenses.EXPECT().ListByRequestID(gomock.Any(), "r1").Return(bothVehiclesSpent("r1"), nil)
	pf.sink.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	_, err := sr.uc.UpdateFinancials(context.Background(), salesActor, "r1", FinancialsInput{
		AmountToBill: nullDec(1000),
		AmountPaid:   nullDec(0),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := sr.uc.RecomputeSettlement(context.Background(), "r1"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	got, err := pf.uc.Generate(context.Background(), accountant, GenerateInput{RequestIDs: []string{"r1"}})
	if err != nil {
		t.Fatalf("zero amount paid must not block generation: %v", err)
	}
	if got[0].Prefactura.Number != "PREF_HE000017_ACME_CORP" || got[0].AccountingStatus != entities.AccountingPreInvoicePending {
		t.Fatalf("unexpected result: %+v", got[0])
	}
}

func TestPrefacturaUseCase_Deliveries(t *testing.T) {
	f := newPFFixture(t)
	f.stored(completeRequest("r1", "HE1"))
	f.deliveries.EXPECT().ListByRequestID(gomock.Any(), "r1").Return([]entities.PrefacturaDelivery{{ID: "d1"}}, nil)

	got, err := f.uc.Deliveries(context.Background(), accountant, "r1")
	if err != nil || len(got) != 1 {
		t.Fatalf("unexpected result: %+v %v", got, err)
	}
}
