package usecase

import (
	"context"
	"strings"

	"transporte_xpto/internal/domain/contracts"
	"transporte_xpto/internal/domain/entities"
	"transporte_xpto/internal/domain/lifecycle"
	"transporte_xpto/internal/usecase/interfaces"
	"transporte_xpto/pkg"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrInvalidContractName = pkg.Validation("INVALID_CONTRACT_NAME", "contract name is required")
	ErrContractClient      = pkg.Validation("CONTRACT_CLIENT_MISMATCH", "contract belongs to another client")
	ErrRateNotConfigured   = pkg.Validation("RATE_NOT_CONFIGURED", "contract has no rate for this pricing mode")
)

// ContractAdminRoles may create contracts and change budgets and rates.
var ContractAdminRoles = []entities.Role{entities.RoleSales, entities.RoleAdmin, entities.RoleSuperAdmin}

// LedgerRoles may post manual charges.
var LedgerRoles = []entities.Role{entities.RoleAccounting, entities.RoleAdmin, entities.RoleSuperAdmin}

type CreateContractInput struct {
	ClientID     string
	Name         string
	BudgetAmount decimal.NullDecimal
	BudgetPeriod string
	BudgetType   string
	Rates        map[entities.PricingMode]decimal.Decimal
}

type ChargeInput struct {
	ContractID string
	Amount     decimal.Decimal
	RequestID  string
	Note       string
}

// UpdateContractInput mirrors contracts.Changes: nil fields stay unchanged.
type UpdateContractInput struct {
	Name         *string
	Active       *bool
	BudgetAmount *decimal.NullDecimal
	BudgetPeriod *string
	BudgetType   *string
	Rates        map[entities.PricingMode]decimal.Decimal
}

// EstimateInput prices a service. When Rate is zero the rate configured on
// ContractID for Mode is used.
type EstimateInput struct {
	Mode       entities.PricingMode
	Rate       decimal.Decimal
	ContractID string
	Hours      decimal.NullDecimal
	Km         decimal.NullDecimal
}

type IContractLedgerUseCase interface {
	CreateContract(ctx context.Context, actor entities.Actor, in CreateContractInput) (entities.Contract, error)
	GetContract(ctx context.Context, actor entities.Actor, id string) (entities.Contract, error)
	Charge(ctx context.Context, actor entities.Actor, in ChargeInput) (entities.Contract, error)
	UpdateContract(ctx context.Context, actor entities.Actor, id string, in UpdateContractInput) (entities.Contract, error)
	EstimatePrice(ctx context.Context, actor entities.Actor, in EstimateInput) (decimal.Decimal, error)
	History(ctx context.Context, actor entities.Actor, id string) ([]entities.ContractHistoryEntry, error)
}

type ContractLedgerUseCase struct {
	repo    interfaces.IContractRepository
	clients interfaces.IClientDirectory
	logger  *zap.Logger
}

var _ IContractLedgerUseCase = (*ContractLedgerUseCase)(nil)

func NewContractLedgerUseCase(repo interfaces.IContractRepository, clients interfaces.IClientDirectory, logger *zap.Logger) *ContractLedgerUseCase {
	return &ContractLedgerUseCase{repo: repo, clients: clients, logger: orNop(logger).Named("contracts.usecase")}
}

func (u *ContractLedgerUseCase) CreateContract(ctx context.Context, actor entities.Actor, in CreateContractInput) (entities.Contract, error) {
	if err := lifecycle.Require(actor, ContractAdminRoles...); err != nil {
		return entities.Contract{}, err
	}
	clientID, err := requireID(in.ClientID)
	if err != nil {
		return entities.Contract{}, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return entities.Contract{}, ErrInvalidContractName
	}

	client, err := u.clients.GetClient(ctx, clientID)
	if err != nil {
		return entities.Contract{}, pkg.Wrap("failed to load client", err)
	}
	if client.ID == "" || client.CompanyID != actor.CompanyID {
		return entities.Contract{}, ErrClientNotFound
	}

	now := clock()
	base := entities.Contract{
		ID:             uuid.NewString(),
		CompanyID:      actor.CompanyID,
		ClientID:       clientID,
		Name:           name,
		Active:         true,
		ConsumedAmount: decimal.Zero,
		CreatedAt:      now,
	}
	// Budget and rates go through the same validation as an update.
	c, _, err := contracts.Update(base, contracts.Changes{
		BudgetAmount: &in.BudgetAmount,
		BudgetPeriod: &in.BudgetPeriod,
		BudgetType:   &in.BudgetType,
		Rates:        in.Rates,
	}, actor.ID, now)
	if err != nil {
		return entities.Contract{}, err
	}

	created, err := u.repo.Create(ctx, c)
	if err != nil {
		return entities.Contract{}, persistErr("failed to create contract", err)
	}
	u.logger.Info("contract created", zap.String("contract_id", created.ID), zap.String("client_id", clientID))
	return created, nil
}

func (u *ContractLedgerUseCase) GetContract(ctx context.Context, actor entities.Actor, id string) (entities.Contract, error) {
	c, err := u.load(ctx, actor, id)
	if err != nil {
		return entities.Contract{}, err
	}
	if actor.Role == entities.RoleClient && c.ClientID != actor.ClientID {
		return entities.Contract{}, ErrContractNotFound
	}
	return c, nil
}

func (u *ContractLedgerUseCase) Charge(ctx context.Context, actor entities.Actor, in ChargeInput) (entities.Contract, error) {
	if err := lifecycle.Require(actor, LedgerRoles...); err != nil {
		return entities.Contract{}, err
	}
	c, err := u.load(ctx, actor, in.ContractID)
	if err != nil {
		return entities.Contract{}, err
	}
	next, entry, err := contracts.Charge(c, contracts.ChargeCommand{
		Amount:    in.Amount,
		RequestID: strings.TrimSpace(in.RequestID),
		ActorID:   actor.ID,
		Note:      strings.TrimSpace(in.Note),
	}, clock())
	if err != nil {
		return entities.Contract{}, err
	}
	saved, err := u.repo.Save(ctx, interfaces.ContractWrite{Contract: next, Entries: []entities.ContractHistoryEntry{entry}})
	if err != nil {
		return entities.Contract{}, persistErr("failed to charge contract", err)
	}
	u.logger.Info("contract charged",
		zap.String("contract_id", saved.ID),
		zap.String("amount", in.Amount.StringFixed(2)),
		zap.String("consumed", saved.ConsumedAmount.StringFixed(2)))
	return saved, nil
}

func (u *ContractLedgerUseCase) UpdateContract(ctx context.Context, actor entities.Actor, id string, in UpdateContractInput) (entities.Contract, error) {
	if err := lifecycle.Require(actor, ContractAdminRoles...); err != nil {
		return entities.Contract{}, err
	}
	c, err := u.load(ctx, actor, id)
	if err != nil {
		return entities.Contract{}, err
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return entities.Contract{}, ErrInvalidContractName
	}
	next, entry, err := contracts.Update(c, contracts.Changes(in), actor.ID, clock())
	if err != nil {
		return entities.Contract{}, err
	}
	w := interfaces.ContractWrite{Contract: next}
	if entry != nil {
		w.Entries = append(w.Entries, *entry)
	}
	saved, err := u.repo.Save(ctx, w)
	if err != nil {
		return entities.Contract{}, persistErr("failed to update contract", err)
	}
	return saved, nil
}

func (u *ContractLedgerUseCase) EstimatePrice(ctx context.Context, actor entities.Actor, in EstimateInput) (decimal.Decimal, error) {
	rate := in.Rate
	if rate.IsZero() && strings.TrimSpace(in.ContractID) != "" {
		c, err := u.GetContract(ctx, actor, in.ContractID)
		if err != nil {
			return decimal.Zero, err
		}
		r, ok := c.Rates[in.Mode]
		if !ok {
			return decimal.Zero, ErrRateNotConfigured.WithMessage("contract %s has no %s rate", c.Name, in.Mode)
		}
		rate = r
	}
	return contracts.EstimatePrice(in.Mode, rate, in.Hours, in.Km)
}

func (u *ContractLedgerUseCase) History(ctx context.Context, actor entities.Actor, id string) ([]entities.ContractHistoryEntry, error) {
	if err := requireInternal(actor); err != nil {
		return nil, err
	}
	c, err := u.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	entries, err := u.repo.ListHistory(ctx, c.ID)
	if err != nil {
		return nil, pkg.Wrap("failed to load contract history", err)
	}
	return entries, nil
}

func (u *ContractLedgerUseCase) load(ctx context.Context, actor entities.Actor, id string) (entities.Contract, error) {
	id, err := requireID(id)
	if err != nil {
		return entities.Contract{}, err
	}
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Contract{}, pkg.Wrap("failed to load contract", err)
	}
	if c.ID == "" || c.CompanyID != actor.CompanyID {
		return entities.Contract{}, ErrContractNotFound
	}
	return c, nil
}
