package contracts

import (
	"strings"
	"time"

	"transporte_xpto/internal/domain/entities"
	"transporte_xpto/pkg"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrContractInactive   = pkg.Validation("CONTRACT_INACTIVE", "contract is not active")
	ErrBudgetExceeded     = pkg.Validation("CONTRACT_BUDGET_EXCEEDED", "charge exceeds the contract budget")
	ErrInvalidAmount      = pkg.Validation("INVALID_CHARGE_AMOUNT", "charge amount must be greater than zero")
	ErrBudgetBelowUsage   = pkg.Validation("BUDGET_BELOW_CONSUMED", "budget cannot be lower than the consumed amount")
	ErrInvalidBudget      = pkg.Validation("INVALID_BUDGET", "budget amount cannot be negative")
	ErrInvalidRate        = pkg.Validation("INVALID_RATE", "rate must be greater than zero")
	ErrMissingQuantity    = pkg.Validation("MISSING_QUANTITY", "pricing mode requires a positive quantity")
	ErrUnknownPricingMode = pkg.Validation("UNKNOWN_PRICING_MODE", "unknown pricing mode")
)

// ChargeCommand describes one charge against a contract.
type ChargeCommand struct {
	Amount    decimal.Decimal
	RequestID string
	ActorID   string
	Note      string
}

// Charge applies cmd to c and returns the updated contract with the ledger
// entry to persist. The caller must persist both atomically and only if c is
// still the stored version.
func Charge(c entities.Contract, cmd ChargeCommand, now time.Time) (entities.Contract, entities.ContractHistoryEntry, error) {
	if !c.Active {
		return entities.Contract{}, entities.ContractHistoryEntry{}, ErrContractInactive
	}
	if !cmd.Amount.IsPositive() {
		return entities.Contract{}, entities.ContractHistoryEntry{}, ErrInvalidAmount
	}

	next := c.ConsumedAmount.Add(cmd.Amount)
	if c.BudgetAmount.Valid && next.GreaterThan(c.BudgetAmount.Decimal) {
		remaining, _ := c.Remaining()
		return entities.Contract{}, entities.ContractHistoryEntry{}, ErrBudgetExceeded.WithMessage(
			"charge of %s exceeds the remaining budget of %s", cmd.Amount.StringFixed(2), remaining.StringFixed(2))
	}

	entry := entities.ContractHistoryEntry{
		ID:           uuid.NewString(),
		ContractID:   c.ID,
		Type:         entities.ContractEntryCharge,
		Amount:       cmd.Amount,
		RequestID:    cmd.RequestID,
		PrevConsumed: c.ConsumedAmount,
		NewConsumed:  next,
		PrevBudget:   c.BudgetAmount,
		NewBudget:    c.BudgetAmount,
		ActorID:      cmd.ActorID,
		Note:         cmd.Note,
		CreatedAt:    now,
	}

	c.ConsumedAmount = next
	c.UpdatedAt = now
	return c, entry, nil
}

// ZeroCharge records that a contract funded a service at no cost. The
// consumed amount does not move.
func ZeroCharge(c entities.Contract, cmd ChargeCommand, now time.Time) (entities.Contract, entities.ContractHistoryEntry, error) {
	if !c.Active {
		return entities.Contract{}, entities.ContractHistoryEntry{}, ErrContractInactive
	}
	entry := entities.ContractHistoryEntry{
		ID:           uuid.NewString(),
		ContractID:   c.ID,
		Type:         entities.ContractEntryZeroCharge,
		Amount:       decimal.Zero,
		RequestID:    cmd.RequestID,
		PrevConsumed: c.ConsumedAmount,
		NewConsumed:  c.ConsumedAmount,
		PrevBudget:   c.BudgetAmount,
		NewBudget:    c.BudgetAmount,
		ActorID:      cmd.ActorID,
		Note:         cmd.Note,
		CreatedAt:    now,
	}
	c.UpdatedAt = now
	return c, entry, nil
}

// Changes lists the fields an update may touch. Nil means unchanged.
type Changes struct {
	Name         *string
	Active       *bool
	BudgetAmount *decimal.NullDecimal
	BudgetPeriod *string
	BudgetType   *string
	Rates        map[entities.PricingMode]decimal.Decimal
}

func (ch Changes) touchesBudget() bool {
	return ch.BudgetAmount != nil || ch.BudgetPeriod != nil || ch.BudgetType != nil
}

// Update applies ch to c. When budget fields change a budget_set entry is
// returned.
func Update(c entities.Contract, ch Changes, actorID string, now time.Time) (entities.Contract, *entities.ContractHistoryEntry, error) {
	prevBudget := c.BudgetAmount

	if ch.Name != nil {
		c.Name = strings.TrimSpace(*ch.Name)
	}
	if ch.Active != nil {
		c.Active = *ch.Active
	}
	if ch.BudgetAmount != nil {
		b := *ch.BudgetAmount
		if b.Valid && b.Decimal.IsNegative() {
			return entities.Contract{}, nil, ErrInvalidBudget
		}
		if b.Valid && b.Decimal.LessThan(c.ConsumedAmount) {
			return entities.Contract{}, nil, ErrBudgetBelowUsage.WithMessage(
				"budget %s is lower than the consumed amount %s", b.Decimal.StringFixed(2), c.ConsumedAmount.StringFixed(2))
		}
		c.BudgetAmount = b
	}
	if ch.BudgetPeriod != nil {
		c.BudgetPeriod = strings.TrimSpace(*ch.BudgetPeriod)
	}
	if ch.BudgetType != nil {
		c.BudgetType = strings.TrimSpace(*ch.BudgetType)
	}
	if ch.Rates != nil {
		rates := make(map[entities.PricingMode]decimal.Decimal, len(ch.Rates))
		for mode, rate := range ch.Rates {
			if !knownMode(mode) {
				return entities.Contract{}, nil, ErrUnknownPricingMode.WithMessage("unknown pricing mode: %s", mode)
			}
			if !rate.IsPositive() {
				return entities.Contract{}, nil, ErrInvalidRate
			}
			rates[mode] = rate
		}
		c.Rates = rates
	}
	c.UpdatedAt = now

	if !ch.touchesBudget() {
		return c, nil, nil
	}
	return c, &entities.ContractHistoryEntry{
		ID:           uuid.NewString(),
		ContractID:   c.ID,
		Type:         entities.ContractEntryBudgetSet,
		PrevConsumed: c.ConsumedAmount,
		NewConsumed:  c.ConsumedAmount,
		PrevBudget:   prevBudget,
		NewBudget:    c.BudgetAmount,
		BudgetPeriod: c.BudgetPeriod,
		BudgetType:   c.BudgetType,
		ActorID:      actorID,
		CreatedAt:    now,
	}, nil
}

// EstimatePrice prices a service from a contract rate. Hourly and per-km
// modes need a positive quantity, the others return the rate itself.
func EstimatePrice(mode entities.PricingMode, rate decimal.Decimal, hours, km decimal.NullDecimal) (decimal.Decimal, error) {
	if !knownMode(mode) {
		return decimal.Zero, ErrUnknownPricingMode.WithMessage("unknown pricing mode: %s", mode)
	}
	if !rate.IsPositive() {
		return decimal.Zero, ErrInvalidRate
	}
	switch mode {
	case entities.PricingPerHour:
		if !hours.Valid || !hours.Decimal.IsPositive() {
			return decimal.Zero, ErrMissingQuantity.WithMessage("per_hour pricing requires hours greater than zero")
		}
		return rate.Mul(hours.Decimal).Round(2), nil
	case entities.PricingPerKm:
		if !km.Valid || !km.Decimal.IsPositive() {
			return decimal.Zero, ErrMissingQuantity.WithMessage("per_km pricing requires kilometers greater than zero")
		}
		return rate.Mul(km.Decimal).Round(2), nil
	default:
		return rate, nil
	}
}

func knownMode(m entities.PricingMode) bool {
	switch m {
	case entities.PricingPerHour, entities.PricingPerKm, entities.PricingPerTrip, entities.PricingPerLeg, entities.PricingFixed:
		return true
	}
	return false
}
