package response

import (
	"transporte_xpto/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type ContractResponse struct {
	entities.Contract
	Remaining decimal.NullDecimal `json:"remaining"`
}

func FromContract(c entities.Contract) ContractResponse {
	res := ContractResponse{Contract: c}
	if left, capped := c.Remaining(); capped {
		res.Remaining = decimal.NewNullDecimal(left)
	}
	return res
}

type EstimateResponse struct {
	Mode  entities.PricingMode `json:"mode"`
	Price decimal.Decimal      `json:"price"`
}
