package interfaces

import (
	"context"

	"transporte_xpto/internal/domain/entities"
)

// IFleetDirectory reads vehicles and drivers. Missing items come back with
// an empty ID.
type IFleetDirectory interface {
	ListVehicles(ctx context.Context, companyID string) ([]entities.Vehicle, error)
	GetVehicle(ctx context.Context, id string) (entities.Vehicle, error)
	GetDriver(ctx context.Context, id string) (entities.Driver, error)
}

// IClientDirectory reads clients.
type IClientDirectory interface {
	GetClient(ctx context.Context, id string) (entities.Client, error)
}

// ILocationRepository resolves a place name to a stored location, creating
// it on first use.
type ILocationRepository interface {
	FindOrCreate(ctx context.Context, companyID, name string) (entities.Location, error)
}

// ISequenceGenerator hands out increasing numbers per company and prefix.
type ISequenceGenerator interface {
	Next(ctx context.Context, companyID, prefix string) (int64, error)
}

// IExpenseLedger reads the expense lines recorded against a request.
type IExpenseLedger interface {
	ListByRequestID(ctx context.Context, requestID string) ([]entities.Expense, error)
}
