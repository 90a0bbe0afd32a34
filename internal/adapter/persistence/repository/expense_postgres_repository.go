package repository

import (
	"context"
	"fmt"
	"time"

	"transporte_xpto/internal/domain/entities"
	"transporte_xpto/internal/usecase/interfaces"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const listExpensesByRequestSQL = `
SELECT id, request_id, vehicle_id, kind, description, amount::text, created_at
FROM service_expenses
WHERE request_id = $1
ORDER BY created_at, id`

// ExpensePostgresRepository reads the expense ledger kept by the operations
// team in Postgres. Amounts are read as text to keep their exact scale.
type ExpensePostgresRepository struct {
	pool *pgxpool.Pool
}

var _ interfaces.IExpenseLedger = (*ExpensePostgresRepository)(nil)

func NewExpensePostgresRepository(pool *pgxpool.Pool) *ExpensePostgresRepository {
	return &ExpensePostgresRepository{pool: pool}
}

type expenseRow struct {
	ID          string
	RequestID   string
	VehicleID   string
	Kind        string
	Description string
	Amount      string
	CreatedAt   time.Time
}

func (r *ExpensePostgresRepository) ListByRequestID(ctx context.Context, requestID string) ([]entities.Expense, error) {
	rows, err := r.pool.Query(ctx, listExpensesByRequestSQL, requestID)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByPos[expenseRow])
	if err != nil {
		return nil, fmt.Errorf("scan expenses: %w", err)
	}

	out := make([]entities.Expense, 0, len(collected))
	for _, row := range collected {
		out = append(out, fromExpenseRow(row))
	}
	return out, nil
}

func fromExpenseRow(row expenseRow) entities.Expense {
	return entities.Expense{
		ID:          row.ID,
		RequestID:   row.RequestID,
		VehicleID:   row.VehicleID,
		Kind:        entities.ExpenseKind(row.Kind),
		Description: row.Description,
		Amount:      parseDecimal(row.Amount),
		CreatedAt:   row.CreatedAt.UTC(),
	}
}
