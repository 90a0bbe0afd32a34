package interfaces

import (
	"context"

	"transporte_xpto/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// INotifier pushes lifecycle events. Callers ignore delivery failures.
type INotifier interface {
	Notify(ctx context.Context, n entities.Notification) error
}

// IDocumentSink stores documents for the external renderer.
type IDocumentSink interface {
	Publish(ctx context.Context, key string, body []byte, contentType string) error
}

// ICheckoutGateway abstracts external payment providers (e.g. Mercado Pago).
//
// It creates a hosted checkout for an invoiced request and returns its URL.
type ICheckoutGateway interface {
	CreateCheckoutLink(ctx context.Context, reference, title string, amount decimal.Decimal) (string, error)
}
