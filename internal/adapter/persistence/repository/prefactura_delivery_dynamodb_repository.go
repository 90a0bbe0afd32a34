package repository

import (
	"context"

	"transporte_xpto/internal/config"
	"transporte_xpto/internal/domain/entities"
	"transporte_xpto/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type deliveryItem struct {
	ID               string `dynamodbav:"id"`
	RequestID        string `dynamodbav:"request_id"`
	PrefacturaNumber string `dynamodbav:"prefactura_number"`
	Event            string `dynamodbav:"event"`
	State            string `dynamodbav:"state"`
	ActorID          string `dynamodbav:"actor_id"`
	Note             string `dynamodbav:"note,omitempty"`
	CreatedAt        string `dynamodbav:"created_at"`
}

// PrefacturaDeliveryDynamoRepository reads the delivery history written by
// ServiceRequestDynamoRepository.SaveAll.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: request_id + created_at
type PrefacturaDeliveryDynamoRepository struct {
	ddb    *dynamodb.Client
	tables config.TablesConfig
}

var _ interfaces.IPrefacturaDeliveryRepository = (*PrefacturaDeliveryDynamoRepository)(nil)

func NewPrefacturaDeliveryDynamoRepository(ddb *dynamodb.Client, tables config.TablesConfig) *PrefacturaDeliveryDynamoRepository {
	return &PrefacturaDeliveryDynamoRepository{ddb: ddb, tables: tables}
}

func (r *PrefacturaDeliveryDynamoRepository) ListByRequestID(ctx context.Context, requestID string) ([]entities.PrefacturaDelivery, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tables.PrefacturaDelivery),
		IndexName:              aws.String(r.tables.DeliveryByRequest),
		KeyConditionExpression: aws.String("#request_id = :request_id"),
		ExpressionAttributeNames: map[string]string{
			"#request_id": "request_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":request_id": &types.AttributeValueMemberS{Value: requestID},
		},
		ScanIndexForward: aws.Bool(true),
	})

	var out []entities.PrefacturaDelivery
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var items []deliveryItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, err
		}
		for _, it := range items {
			out = append(out, fromDeliveryItem(it))
		}
	}
	return out, nil
}

func toDeliveryItem(d entities.PrefacturaDelivery) deliveryItem {
	return deliveryItem{
		ID:               d.ID,
		RequestID:        d.RequestID,
		PrefacturaNumber: d.PrefacturaNumber,
		Event:            string(d.Event),
		State:            string(d.State),
		ActorID:          d.ActorID,
		Note:             d.Note,
		CreatedAt:        formatTime(d.CreatedAt),
	}
}

func fromDeliveryItem(it deliveryItem) entities.PrefacturaDelivery {
	return entities.PrefacturaDelivery{
		ID:               it.ID,
		RequestID:        it.RequestID,
		PrefacturaNumber: it.PrefacturaNumber,
		Event:            entities.DeliveryEvent(it.Event),
		State:            entities.PrefacturaState(it.State),
		ActorID:          it.ActorID,
		Note:             it.Note,
		CreatedAt:        parseTime(it.CreatedAt),
	}
}
