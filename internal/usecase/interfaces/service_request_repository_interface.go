package interfaces

import (
	"context"
	"errors"

	"transporte_xpto/internal/domain/entities"
)

// ErrConcurrentUpdate is returned by repositories when the stored version
// changed since the aggregate was read.
var ErrConcurrentUpdate = errors.New("concurrent update")

// ContractWrite is the new state of one contract plus the ledger entries
// that explain it.
type ContractWrite struct {
	Contract entities.Contract
	Entries  []entities.ContractHistoryEntry
}

// RequestWrite groups everything one operation persists. It is written in a
// single transaction; Request.Version is the version that was read.
type RequestWrite struct {
	Request   entities.ServiceRequest
	Create    bool
	Section   *entities.PaymentSection
	Contracts []ContractWrite
}

// IServiceRequestRepository abstracts DynamoDB persistence for ServiceRequest
// and its PaymentSection.
//
// SaveAll writes several requests, and the pre-invoice delivery entries
// they produced, in one transaction.
//
// Reads return a zero ServiceRequest (empty ID) when nothing is found.
type IServiceRequestRepository interface {
	Save(ctx context.Context, w RequestWrite) (entities.ServiceRequest, error)
	SaveAll(ctx context.Context, reqs []entities.ServiceRequest, deliveries []entities.PrefacturaDelivery) ([]entities.ServiceRequest, error)
	GetByID(ctx context.Context, id string) (entities.ServiceRequest, error)
	ListByCompanyAndDate(ctx context.Context, companyID, date string) ([]entities.ServiceRequest, error)
}

// IPaymentSectionRepository reads the per-vehicle settlement of a request.
type IPaymentSectionRepository interface {
	GetByRequestID(ctx context.Context, requestID string) (entities.PaymentSection, error)
}
