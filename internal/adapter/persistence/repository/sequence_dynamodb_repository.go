package repository

import (
	"context"
	"fmt"
	"strconv"

	"transporte_xpto/internal/config"
	"transporte_xpto/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// SequenceDynamoRepository hands out request numbers from an atomic counter.
//
// Table requirements:
//   - PK: id (string), "<company_id>#<prefix>"
type SequenceDynamoRepository struct {
	ddb    *dynamodb.Client
	tables config.TablesConfig
}

var _ interfaces.ISequenceGenerator = (*SequenceDynamoRepository)(nil)

func NewSequenceDynamoRepository(ddb *dynamodb.Client, tables config.TablesConfig) *SequenceDynamoRepository {
	return &SequenceDynamoRepository{ddb: ddb, tables: tables}
}

func sequenceKey(companyID, prefix string) string {
	return companyID + "#" + prefix
}

func (r *SequenceDynamoRepository) Next(ctx context.Context, companyID, prefix string) (int64, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tables.Sequences),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: sequenceKey(companyID, prefix)},
		},
		UpdateExpression: aws.String("ADD #value :one"),
		ExpressionAttributeNames: map[string]string{
			"#value": "value",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, err
	}
	n, ok := out.Attributes["value"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("sequence %s: missing counter value", sequenceKey(companyID, prefix))
	}
	return strconv.ParseInt(n.Value, 10, 64)
}
