package repository

import (
	"context"
	"strings"

	"transporte_xpto/internal/config"
	"transporte_xpto/internal/domain/entities"
	"transporte_xpto/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

type locationItem struct {
	CompanyID string `dynamodbav:"company_id"`
	Key       string `dynamodbav:"key"`
	ID        string `dynamodbav:"id"`
	Name      string `dynamodbav:"name"`
}

// LocationDynamoRepository stores the places used as origin and destination.
//
// Table requirements:
//   - PK: company_id (string), SK: key (string, normalized name)
type LocationDynamoRepository struct {
	ddb    *dynamodb.Client
	tables config.TablesConfig
}

var _ interfaces.ILocationRepository = (*LocationDynamoRepository)(nil)

func NewLocationDynamoRepository(ddb *dynamodb.Client, tables config.TablesConfig) *LocationDynamoRepository {
	return &LocationDynamoRepository{ddb: ddb, tables: tables}
}

// LocationKey normalizes a place name: trimmed, lower-cased and with inner
// whitespace collapsed.
func LocationKey(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

func (r *LocationDynamoRepository) FindOrCreate(ctx context.Context, companyID, name string) (entities.Location, error) {
	key := LocationKey(name)
	loc, found, err := r.get(ctx, companyID, key)
	if err != nil || found {
		return loc, err
	}

	it := locationItem{
		CompanyID: companyID,
		Key:       key,
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Location{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tables.Locations),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#key)"),
		ExpressionAttributeNames: map[string]string{
			"#key": "key",
		},
	})
	if err != nil {
		if conditionFailed(err) {
			// Created concurrently by another request.
			loc, _, err = r.get(ctx, companyID, key)
			return loc, err
		}
		return entities.Location{}, err
	}
	return fromLocationItem(it), nil
}

func (r *LocationDynamoRepository) get(ctx context.Context, companyID, key string) (entities.Location, bool, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tables.Locations),
		Key: map[string]types.AttributeValue{
			"company_id": &types.AttributeValueMemberS{Value: companyID},
			"key":        &types.AttributeValueMemberS{Value: key},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Location{}, false, err
	}
	if len(out.Item) == 0 {
		return entities.Location{}, false, nil
	}
	var it locationItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Location{}, false, err
	}
	return fromLocationItem(it), true, nil
}

func fromLocationItem(it locationItem) entities.Location {
	return entities.Location{
		ID:        it.ID,
		CompanyID: it.CompanyID,
		Name:      it.Name,
		Key:       it.Key,
	}
}
