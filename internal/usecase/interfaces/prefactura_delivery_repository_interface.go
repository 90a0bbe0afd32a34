package interfaces

import (
	"context"

	"transporte_xpto/internal/domain/entities"
)

// IPrefacturaDeliveryRepository reads the insert-only delivery history of
// pre-invoices, keyed by request id. Entries are written by
// IServiceRequestRepository.SaveAll.
type IPrefacturaDeliveryRepository interface {
	ListByRequestID(ctx context.Context, requestID string) ([]entities.PrefacturaDelivery, error)
}
