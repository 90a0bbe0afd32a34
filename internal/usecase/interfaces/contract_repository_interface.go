package interfaces

import (
	"context"

	"transporte_xpto/internal/domain/entities"
)

// IContractRepository abstracts DynamoDB persistence for Contract and its
// insert-only history.
//
// Save writes the contract only if its stored version still equals
// w.Contract.Version, together with every history entry.
type IContractRepository interface {
	Create(ctx context.Context, c entities.Contract) (entities.Contract, error)
	GetByID(ctx context.Context, id string) (entities.Contract, error)
	Save(ctx context.Context, w ContractWrite) (entities.Contract, error)
	ListHistory(ctx context.Context, contractID string) ([]entities.ContractHistoryEntry, error)
}
