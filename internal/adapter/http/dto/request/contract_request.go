package request

import (
	"transporte_xpto/internal/domain/entities"
	"transporte_xpto/internal/usecase"

	"github.com/shopspring/decimal"
)

type CreateContractRequest struct {
	ClientID     string                     `json:"client_id" binding:"required"`
	Name         string                     `json:"name" binding:"required"`
	BudgetAmount decimal.NullDecimal        `json:"budget_amount"`
	BudgetPeriod string                     `json:"budget_period"`
	BudgetType   string                     `json:"budget_type"`
	Rates        map[string]decimal.Decimal `json:"rates"`
}

func (r CreateContractRequest) ToInput() usecase.CreateContractInput {
	return usecase.CreateContractInput{
		ClientID:     r.ClientID,
		Name:         r.Name,
		BudgetAmount: r.BudgetAmount,
		BudgetPeriod: r.BudgetPeriod,
		BudgetType:   r.BudgetType,
		Rates:        toRates(r.Rates),
	}
}

// UpdateContractRequest only changes the fields present in the body. A
// present null budget_amount removes the cap.
type UpdateContractRequest struct {
	Name         *string                    `json:"name"`
	Active       *bool                      `json:"active"`
	BudgetAmount *decimal.NullDecimal       `json:"budget_amount"`
	BudgetPeriod *string                    `json:"budget_period"`
	BudgetType   *string                    `json:"budget_type"`
	Rates        map[string]decimal.Decimal `json:"rates"`
}

func (r UpdateContractRequest) ToInput() usecase.UpdateContractInput {
	return usecase.UpdateContractInput{
		Name:         r.Name,
		Active:       r.Active,
		BudgetAmount: r.BudgetAmount,
		BudgetPeriod: r.BudgetPeriod,
		BudgetType:   r.BudgetType,
		Rates:        toRates(r.Rates),
	}
}

type ChargeRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	RequestID string          `json:"request_id"`
	Note      string          `json:"note"`
}

func (r ChargeRequest) ToInput(contractID string) usecase.ChargeInput {
	return usecase.ChargeInput{ContractID: contractID, Amount: r.Amount, RequestID: r.RequestID, Note: r.Note}
}

type EstimatePriceRequest struct {
	Mode       string              `json:"mode" binding:"required"`
	Rate       decimal.Decimal     `json:"rate"`
	ContractID string              `json:"contract_id"`
	Hours      decimal.NullDecimal `json:"hours"`
	Km         decimal.NullDecimal `json:"km"`
}

func (r EstimatePriceRequest) ToInput() usecase.EstimateInput {
	return usecase.EstimateInput{
		Mode:       entities.PricingMode(r.Mode),
		Rate:       r.Rate,
		ContractID: r.ContractID,
		Hours:      r.Hours,
		Km:         r.Km,
	}
}

func toRates(in map[string]decimal.Decimal) map[entities.PricingMode]decimal.Decimal {
	if len(in) == 0 {
		return nil
	}
	out := make(map[entities.PricingMode]decimal.Decimal, len(in))
	for mode, rate := range in {
		out[entities.PricingMode(mode)] = rate
	}
	return out
}
