package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contract is a client agreement that funds services from a budget.
//
// Storage model (DynamoDB):
//   - PK: id
//   - Version guards every write (optimistic concurrency).
//
// BudgetAmount unset means the contract is uncapped.
type Contract struct {
	ID             string                          `json:"id"`
	CompanyID      string                          `json:"company_id"`
	ClientID       string                          `json:"client_id"`
	Name           string                          `json:"name"`
	Active         bool                            `json:"active"`
	BudgetAmount   decimal.NullDecimal             `json:"budget_amount"`
	BudgetPeriod   string                          `json:"budget_period,omitempty"`
	BudgetType     string                          `json:"budget_type,omitempty"`
	ConsumedAmount decimal.Decimal                 `json:"consumed_amount"`
	Rates          map[PricingMode]decimal.Decimal `json:"rates,omitempty"`
	Version        int64                           `json:"version"`
	CreatedAt      time.Time                       `json:"created_at"`
	UpdatedAt      time.Time                       `json:"updated_at"`
}

// Remaining is the budget left, zero-valued and false when uncapped.
func (c Contract) Remaining() (decimal.Decimal, bool) {
	if !c.BudgetAmount.Valid {
		return decimal.Zero, false
	}
	return c.BudgetAmount.Decimal.Sub(c.ConsumedAmount), true
}

type ContractEntryType string

const (
	ContractEntryCharge     ContractEntryType = "charge"
	ContractEntryZeroCharge ContractEntryType = "zero_charge"
	ContractEntryBudgetSet  ContractEntryType = "budget_set"
)

// ContractHistoryEntry is an insert-only ledger line keyed by contract id.
type ContractHistoryEntry struct {
	ID           string              `json:"id"`
	ContractID   string              `json:"contract_id"`
	Type         ContractEntryType   `json:"type"`
	Amount       decimal.Decimal     `json:"amount"`
	RequestID    string              `json:"request_id,omitempty"`
	PrevConsumed decimal.Decimal     `json:"prev_consumed"`
	NewConsumed  decimal.Decimal     `json:"new_consumed"`
	PrevBudget   decimal.NullDecimal `json:"prev_budget"`
	NewBudget    decimal.NullDecimal `json:"new_budget"`
	BudgetPeriod string              `json:"budget_period,omitempty"`
	BudgetType   string              `json:"budget_type,omitempty"`
	ActorID      string              `json:"actor_id"`
	Note         string              `json:"note,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}
