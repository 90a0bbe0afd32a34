package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"transporte_xpto/internal/config"
	"transporte_xpto/internal/domain/entities"
	"transporte_xpto/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

type contractItem struct {
	ID             string            `dynamodbav:"id"`
	CompanyID      string            `dynamodbav:"company_id"`
	ClientID       string            `dynamodbav:"client_id"`
	Name           string            `dynamodbav:"name"`
	Active         bool              `dynamodbav:"active"`
	BudgetAmount   string            `dynamodbav:"budget_amount,omitempty"`
	BudgetPeriod   string            `dynamodbav:"budget_period,omitempty"`
	BudgetType     string            `dynamodbav:"budget_type,omitempty"`
	ConsumedAmount string            `dynamodbav:"consumed_amount"`
	Rates          map[string]string `dynamodbav:"rates,omitempty"`
	Version        int64             `dynamodbav:"version"`
	CreatedAt      string            `dynamodbav:"created_at"`
	UpdatedAt      string            `dynamodbav:"updated_at"`
}

type contractHistoryItem struct {
	ID           string `dynamodbav:"id"`
	ContractID   string `dynamodbav:"contract_id"`
	Type         string `dynamodbav:"type"`
	Amount       string `dynamodbav:"amount"`
	RequestID    string `dynamodbav:"request_id,omitempty"`
	PrevConsumed string `dynamodbav:"prev_consumed"`
	NewConsumed  string `dynamodbav:"new_consumed"`
	PrevBudget   string `dynamodbav:"prev_budget,omitempty"`
	NewBudget    string `dynamodbav:"new_budget,omitempty"`
	BudgetPeriod string `dynamodbav:"budget_period,omitempty"`
	BudgetType   string `dynamodbav:"budget_type,omitempty"`
	ActorID      string `dynamodbav:"actor_id"`
	Note         string `dynamodbav:"note,omitempty"`
	CreatedAt    string `dynamodbav:"created_at"`
}

// ContractDynamoRepository persists contracts and their ledger.
//
// Table requirements:
//   - contracts: PK id (string)
//   - contract history: PK id (string), GSI contract_id + created_at
type ContractDynamoRepository struct {
	ddb    *dynamodb.Client
	tables config.TablesConfig
}

var _ interfaces.IContractRepository = (*ContractDynamoRepository)(nil)

func NewContractDynamoRepository(ddb *dynamodb.Client, tables config.TablesConfig) *ContractDynamoRepository {
	return &ContractDynamoRepository{ddb: ddb, tables: tables}
}

func (r *ContractDynamoRepository) Create(ctx context.Context, c entities.Contract) (entities.Contract, error) {
	c.Version = 1
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	av, err := attributevalue.MarshalMap(toContractItem(c))
	if err != nil {
		return entities.Contract{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tables.Contracts),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		if conditionFailed(err) {
			return entities.Contract{}, interfaces.ErrConcurrentUpdate
		}
		return entities.Contract{}, err
	}
	return c, nil
}

func (r *ContractDynamoRepository) GetByID(ctx context.Context, id string) (entities.Contract, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tables.Contracts),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Contract{}, err
	}
	if len(out.Item) == 0 {
		return entities.Contract{}, nil
	}

	var it contractItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Contract{}, err
	}
	return fromContractItem(it), nil
}

func (r *ContractDynamoRepository) Save(ctx context.Context, w interfaces.ContractWrite) (entities.Contract, error) {
	items, stored, err := contractWriteItems(r.tables, w)
	if err != nil {
		return entities.Contract{}, err
	}
	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		if conditionFailed(err) {
			return entities.Contract{}, interfaces.ErrConcurrentUpdate
		}
		return entities.Contract{}, fmt.Errorf("save contract: %w", err)
	}
	return stored, nil
}

// ListHistory returns the ledger of a contract, oldest first.
func (r *ContractDynamoRepository) ListHistory(ctx context.Context, contractID string) ([]entities.ContractHistoryEntry, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tables.ContractHistory),
		IndexName:              aws.String(r.tables.HistoryByContract),
		KeyConditionExpression: aws.String("#contract_id = :contract_id"),
		ExpressionAttributeNames: map[string]string{
			"#contract_id": "contract_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":contract_id": &types.AttributeValueMemberS{Value: contractID},
		},
		ScanIndexForward: aws.Bool(true),
	})

	var out []entities.ContractHistoryEntry
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var items []contractHistoryItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, err
		}
		for _, it := range items {
			out = append(out, fromContractHistoryItem(it))
		}
	}
	return out, nil
}

// contractWriteItems builds the version-checked contract Put followed by one
// insert-only Put per ledger entry. It is shared with the service request
// repository so that charges commit together with the request.
func contractWriteItems(tables config.TablesConfig, w interfaces.ContractWrite) ([]types.TransactWriteItem, entities.Contract, error) {
	stored := w.Contract
	stored.Version = w.Contract.Version + 1
	stored.UpdatedAt = time.Now().UTC()

	av, err := attributevalue.MarshalMap(toContractItem(stored))
	if err != nil {
		return nil, entities.Contract{}, err
	}
	items := make([]types.TransactWriteItem, 0, 1+len(w.Entries))
	items = append(items, types.TransactWriteItem{Put: &types.Put{
		TableName:           aws.String(tables.Contracts),
		Item:                av,
		ConditionExpression: aws.String("#version = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#version": "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: strconv.FormatInt(w.Contract.Version, 10)},
		},
	}})

	for _, e := range w.Entries {
		av, err := attributevalue.MarshalMap(toContractHistoryItem(e))
		if err != nil {
			return nil, entities.Contract{}, err
		}
		items = append(items, types.TransactWriteItem{Put: &types.Put{
			TableName:           aws.String(tables.ContractHistory),
			Item:                av,
			ConditionExpression: aws.String("attribute_not_exists(#id)"),
			ExpressionAttributeNames: map[string]string{
				"#id": "id",
			},
		}})
	}
	return items, stored, nil
}

func toContractItem(c entities.Contract) contractItem {
	it := contractItem{
		ID:             c.ID,
		CompanyID:      c.CompanyID,
		ClientID:       c.ClientID,
		Name:           c.Name,
		Active:         c.Active,
		BudgetAmount:   formatNullDecimal(c.BudgetAmount),
		BudgetPeriod:   c.BudgetPeriod,
		BudgetType:     c.BudgetType,
		ConsumedAmount: formatDecimal(c.ConsumedAmount),
		Version:        c.Version,
		CreatedAt:      formatTime(c.CreatedAt),
		UpdatedAt:      formatTime(c.UpdatedAt),
	}
	if len(c.Rates) > 0 {
		it.Rates = make(map[string]string, len(c.Rates))
		for mode, rate := range c.Rates {
			it.Rates[string(mode)] = formatDecimal(rate)
		}
	}
	return it
}

func fromContractItem(it contractItem) entities.Contract {
	c := entities.Contract{
		ID:             it.ID,
		CompanyID:      it.CompanyID,
		ClientID:       it.ClientID,
		Name:           it.Name,
		Active:         it.Active,
		BudgetAmount:   parseNullDecimal(it.BudgetAmount),
		BudgetPeriod:   it.BudgetPeriod,
		BudgetType:     it.BudgetType,
		ConsumedAmount: parseDecimal(it.ConsumedAmount),
		Version:        it.Version,
		CreatedAt:      parseTime(it.CreatedAt),
		UpdatedAt:      parseTime(it.UpdatedAt),
	}
	if len(it.Rates) > 0 {
		c.Rates = make(map[entities.PricingMode]decimal.Decimal, len(it.Rates))
		for mode, rate := range it.Rates {
			c.Rates[entities.PricingMode(mode)] = parseDecimal(rate)
		}
	}
	return c
}

func toContractHistoryItem(e entities.ContractHistoryEntry) contractHistoryItem {
	return contractHistoryItem{
		ID:           e.ID,
		ContractID:   e.ContractID,
		Type:         string(e.Type),
		Amount:       formatDecimal(e.Amount),
		RequestID:    e.RequestID,
		PrevConsumed: formatDecimal(e.PrevConsumed),
		NewConsumed:  formatDecimal(e.NewConsumed),
		PrevBudget:   formatNullDecimal(e.PrevBudget),
		NewBudget:    formatNullDecimal(e.NewBudget),
		BudgetPeriod: e.BudgetPeriod,
		BudgetType:   e.BudgetType,
		ActorID:      e.ActorID,
		Note:         e.Note,
		CreatedAt:    formatTime(e.CreatedAt),
	}
}

func fromContractHistoryItem(it contractHistoryItem) entities.ContractHistoryEntry {
	return entities.ContractHistoryEntry{
		ID:           it.ID,
		ContractID:   it.ContractID,
		Type:         entities.ContractEntryType(it.Type),
		Amount:       parseDecimal(it.Amount),
		RequestID:    it.RequestID,
		PrevConsumed: parseDecimal(it.PrevConsumed),
		NewConsumed:  parseDecimal(it.NewConsumed),
		PrevBudget:   parseNullDecimal(it.PrevBudget),
		NewBudget:    parseNullDecimal(it.NewBudget),
		BudgetPeriod: it.BudgetPeriod,
		BudgetType:   it.BudgetType,
		ActorID:      it.ActorID,
		Note:         it.Note,
		CreatedAt:    parseTime(it.CreatedAt),
	}
}
