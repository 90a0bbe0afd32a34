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
)

// ServiceRequestDynamoRepository persists ServiceRequest aggregates, their
// payment sections and, inside the same transaction, the contracts an
// operation charged.
//
// Table requirements:
//   - service requests: PK id (string), GSI company_id + scheduled_date
//   - payment sections: PK request_id (string)
//
// Every write of an existing request is conditioned on the version that was
// read. A lost race surfaces as interfaces.ErrConcurrentUpdate.
type ServiceRequestDynamoRepository struct {
	ddb    *dynamodb.Client
	tables config.TablesConfig
	now    func() time.Time
}

var (
	_ interfaces.IServiceRequestRepository = (*ServiceRequestDynamoRepository)(nil)
	_ interfaces.IPaymentSectionRepository = (*ServiceRequestDynamoRepository)(nil)
)

func NewServiceRequestDynamoRepository(ddb *dynamodb.Client, tables config.TablesConfig) *ServiceRequestDynamoRepository {
	return &ServiceRequestDynamoRepository{ddb: ddb, tables: tables, now: time.Now}
}

func (r *ServiceRequestDynamoRepository) Save(ctx context.Context, w interfaces.RequestWrite) (entities.ServiceRequest, error) {
	stored, put, err := r.requestPut(w.Request, w.Create)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	items := []types.TransactWriteItem{put}

	if w.Section != nil {
		av, err := attributevalue.MarshalMap(toPaymentSectionItem(*w.Section))
		if err != nil {
			return entities.ServiceRequest{}, err
		}
		items = append(items, types.TransactWriteItem{Put: &types.Put{
			TableName: aws.String(r.tables.PaymentSections),
			Item:      av,
		}})
	}

	for _, cw := range w.Contracts {
		contractItems, _, err := contractWriteItems(r.tables, cw)
		if err != nil {
			return entities.ServiceRequest{}, err
		}
		items = append(items, contractItems...)
	}

	if err := r.transact(ctx, items); err != nil {
		return entities.ServiceRequest{}, err
	}
	return stored, nil
}

func (r *ServiceRequestDynamoRepository) SaveAll(ctx context.Context, reqs []entities.ServiceRequest, deliveries []entities.PrefacturaDelivery) ([]entities.ServiceRequest, error) {
	items := make([]types.TransactWriteItem, 0, len(reqs)+len(deliveries))
	out := make([]entities.ServiceRequest, 0, len(reqs))
	for _, req := range reqs {
		stored, put, err := r.requestPut(req, false)
		if err != nil {
			return nil, err
		}
		items = append(items, put)
		out = append(out, stored)
	}
	for _, d := range deliveries {
		av, err := attributevalue.MarshalMap(toDeliveryItem(d))
		if err != nil {
			return nil, err
		}
		items = append(items, types.TransactWriteItem{Put: &types.Put{
			TableName:                aws.String(r.tables.PrefacturaDelivery),
			Item:                     av,
			ConditionExpression:      aws.String("attribute_not_exists(#id)"),
			ExpressionAttributeNames: map[string]string{"#id": "id"},
		}})
	}
	if len(items) == 0 {
		return out, nil
	}
	if err := r.transact(ctx, items); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ServiceRequestDynamoRepository) GetByID(ctx context.Context, id string) (entities.ServiceRequest, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tables.ServiceRequests),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	if len(out.Item) == 0 {
		return entities.ServiceRequest{}, nil
	}

	var it serviceRequestItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.ServiceRequest{}, err
	}
	return fromServiceRequestItem(it), nil
}

func (r *ServiceRequestDynamoRepository) ListByCompanyAndDate(ctx context.Context, companyID, date string) ([]entities.ServiceRequest, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tables.ServiceRequests),
		IndexName:              aws.String(r.tables.RequestsByDateIndex),
		KeyConditionExpression: aws.String("#company_id = :company_id AND #scheduled_date = :scheduled_date"),
		ExpressionAttributeNames: map[string]string{
			"#company_id":     "company_id",
			"#scheduled_date": "scheduled_date",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":company_id":     &types.AttributeValueMemberS{Value: companyID},
			":scheduled_date": &types.AttributeValueMemberS{Value: date},
		},
	})

	var out []entities.ServiceRequest
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var items []serviceRequestItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, err
		}
		for _, it := range items {
			out = append(out, fromServiceRequestItem(it))
		}
	}
	return out, nil
}

func (r *ServiceRequestDynamoRepository) GetByRequestID(ctx context.Context, requestID string) (entities.PaymentSection, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tables.PaymentSections),
		Key: map[string]types.AttributeValue{
			"request_id": &types.AttributeValueMemberS{Value: requestID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.PaymentSection{}, err
	}
	if len(out.Item) == 0 {
		return entities.PaymentSection{}, nil
	}

	var it paymentSectionItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.PaymentSection{}, err
	}
	return fromPaymentSectionItem(it), nil
}

// requestPut builds the conditioned Put for req and returns the request as
// it will be stored.
func (r *ServiceRequestDynamoRepository) requestPut(req entities.ServiceRequest, create bool) (entities.ServiceRequest, types.TransactWriteItem, error) {
	stored := req
	stored.UpdatedAt = r.now().UTC()
	names := map[string]string{"#id": "id"}
	var (
		cond   string
		values map[string]types.AttributeValue
	)
	if create {
		stored.Version = 1
		if stored.CreatedAt.IsZero() {
			stored.CreatedAt = stored.UpdatedAt
		}
		cond = "attribute_not_exists(#id)"
	} else {
		stored.Version = req.Version + 1
		cond = "#version = :expected"
		names = map[string]string{"#version": "version"}
		values = map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: strconv.FormatInt(req.Version, 10)},
		}
	}

	av, err := attributevalue.MarshalMap(toServiceRequestItem(stored))
	if err != nil {
		return entities.ServiceRequest{}, types.TransactWriteItem{}, err
	}
	return stored, types.TransactWriteItem{Put: &types.Put{
		TableName:                 aws.String(r.tables.ServiceRequests),
		Item:                      av,
		ConditionExpression:       aws.String(cond),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	}}, nil
}

func (r *ServiceRequestDynamoRepository) transact(ctx context.Context, items []types.TransactWriteItem) error {
	_, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		if conditionFailed(err) {
			return interfaces.ErrConcurrentUpdate
		}
		return fmt.Errorf("transact write: %w", err)
	}
	return nil
}

type paymentRowItem struct {
	VehicleID              string `dynamodbav:"vehicle_id"`
	Plate                  string `dynamodbav:"plate"`
	OwnerName              string `dynamodbav:"owner_name,omitempty"`
	Category               string `dynamodbav:"category"`
	DriverID               string `dynamodbav:"driver_id"`
	DriverName             string `dynamodbav:"driver_name,omitempty"`
	BaseAmount             string `dynamodbav:"base_amount"`
	OperationalExpenses    string `dynamodbav:"operational_expenses"`
	PreoperationalExpenses string `dynamodbav:"preoperational_expenses"`
	FinalAmount            string `dynamodbav:"final_amount"`
	State                  string `dynamodbav:"state"`
}

type paymentSectionItem struct {
	RequestID        string           `dynamodbav:"request_id"`
	Rows             []paymentRowItem `dynamodbav:"rows"`
	TotalBase        string           `dynamodbav:"total_base"`
	TotalExpenses    string           `dynamodbav:"total_expenses"`
	TotalFinalAmount string           `dynamodbav:"total_final_amount"`
	UpdatedAt        string           `dynamodbav:"updated_at"`
}

func toPaymentSectionItem(s entities.PaymentSection) paymentSectionItem {
	it := paymentSectionItem{
		RequestID:        s.RequestID,
		Rows:             make([]paymentRowItem, 0, len(s.Rows)),
		TotalBase:        formatDecimal(s.TotalBase),
		TotalExpenses:    formatDecimal(s.TotalExpenses),
		TotalFinalAmount: formatDecimal(s.TotalFinalAmount),
		UpdatedAt:        formatTime(s.UpdatedAt),
	}
	for _, row := range s.Rows {
		it.Rows = append(it.Rows, paymentRowItem{
			VehicleID:              row.VehicleID,
			Plate:                  row.Plate,
			OwnerName:              row.OwnerName,
			Category:               string(row.Category),
			DriverID:               row.DriverID,
			DriverName:             row.DriverName,
			BaseAmount:             formatDecimal(row.BaseAmount),
			OperationalExpenses:    formatDecimal(row.OperationalExpenses),
			PreoperationalExpenses: formatDecimal(row.PreoperationalExpenses),
			FinalAmount:            formatDecimal(row.FinalAmount),
			State:                  string(row.State),
		})
	}
	return it
}

func fromPaymentSectionItem(it paymentSectionItem) entities.PaymentSection {
	s := entities.PaymentSection{
		RequestID:        it.RequestID,
		Rows:             make([]entities.PaymentRow, 0, len(it.Rows)),
		TotalBase:        parseDecimal(it.TotalBase),
		TotalExpenses:    parseDecimal(it.TotalExpenses),
		TotalFinalAmount: parseDecimal(it.TotalFinalAmount),
		UpdatedAt:        parseTime(it.UpdatedAt),
	}
	for _, row := range it.Rows {
		s.Rows = append(s.Rows, entities.PaymentRow{
			VehicleID:              row.VehicleID,
			Plate:                  row.Plate,
			OwnerName:              row.OwnerName,
			Category:               entities.FleetCategory(row.Category),
			DriverID:               row.DriverID,
			DriverName:             row.DriverName,
			BaseAmount:             parseDecimal(row.BaseAmount),
			OperationalExpenses:    parseDecimal(row.OperationalExpenses),
			PreoperationalExpenses: parseDecimal(row.PreoperationalExpenses),
			FinalAmount:            parseDecimal(row.FinalAmount),
			State:                  entities.PaymentRowState(row.State),
		})
	}
	return s
}
