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

type vehicleItem struct {
	ID                 string   `dynamodbav:"id"`
	CompanyID          string   `dynamodbav:"company_id"`
	Plate              string   `dynamodbav:"plate"`
	Type               string   `dynamodbav:"type"`
	Seats              int      `dynamodbav:"seats"`
	Category           string   `dynamodbav:"category"`
	OwnerName          string   `dynamodbav:"owner_name,omitempty"`
	PrimaryDriverID    string   `dynamodbav:"primary_driver_id,omitempty"`
	SecondaryDriverIDs []string `dynamodbav:"secondary_driver_ids,omitempty"`
	Active             bool     `dynamodbav:"active"`
}

type driverItem struct {
	ID        string `dynamodbav:"id"`
	CompanyID string `dynamodbav:"company_id"`
	Name      string `dynamodbav:"name"`
	Phone     string `dynamodbav:"phone,omitempty"`
	Document  string `dynamodbav:"document,omitempty"`
}

type clientContactItem struct {
	Name  string `dynamodbav:"name"`
	Email string `dynamodbav:"email,omitempty"`
	Phone string `dynamodbav:"phone,omitempty"`
}

type clientItem struct {
	ID        string              `dynamodbav:"id"`
	CompanyID string              `dynamodbav:"company_id"`
	Name      string              `dynamodbav:"name"`
	Contacts  []clientContactItem `dynamodbav:"contacts,omitempty"`
}

// DirectoryDynamoRepository reads the fleet and client tables owned by the
// fleet management service. It never writes them.
//
// Table requirements:
//   - vehicles: PK id (string), GSI company_id
//   - drivers, clients: PK id (string)
type DirectoryDynamoRepository struct {
	ddb    *dynamodb.Client
	tables config.TablesConfig
}

var (
	_ interfaces.IFleetDirectory  = (*DirectoryDynamoRepository)(nil)
	_ interfaces.IClientDirectory = (*DirectoryDynamoRepository)(nil)
)

func NewDirectoryDynamoRepository(ddb *dynamodb.Client, tables config.TablesConfig) *DirectoryDynamoRepository {
	return &DirectoryDynamoRepository{ddb: ddb, tables: tables}
}

func (r *DirectoryDynamoRepository) ListVehicles(ctx context.Context, companyID string) ([]entities.Vehicle, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tables.Vehicles),
		IndexName:              aws.String(r.tables.VehiclesByCompany),
		KeyConditionExpression: aws.String("#company_id = :company_id"),
		ExpressionAttributeNames: map[string]string{
			"#company_id": "company_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":company_id": &types.AttributeValueMemberS{Value: companyID},
		},
	})

	var out []entities.Vehicle
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var items []vehicleItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, err
		}
		for _, it := range items {
			out = append(out, fromVehicleItem(it))
		}
	}
	return out, nil
}

func (r *DirectoryDynamoRepository) GetVehicle(ctx context.Context, id string) (entities.Vehicle, error) {
	var it vehicleItem
	found, err := r.getByID(ctx, r.tables.Vehicles, id, &it)
	if err != nil || !found {
		return entities.Vehicle{}, err
	}
	return fromVehicleItem(it), nil
}

func (r *DirectoryDynamoRepository) GetDriver(ctx context.Context, id string) (entities.Driver, error) {
	var it driverItem
	found, err := r.getByID(ctx, r.tables.Drivers, id, &it)
	if err != nil || !found {
		return entities.Driver{}, err
	}
	return entities.Driver{
		ID:        it.ID,
		CompanyID: it.CompanyID,
		Name:      it.Name,
		Phone:     it.Phone,
		Document:  it.Document,
	}, nil
}

func (r *DirectoryDynamoRepository) GetClient(ctx context.Context, id string) (entities.Client, error) {
	var it clientItem
	found, err := r.getByID(ctx, r.tables.Clients, id, &it)
	if err != nil || !found {
		return entities.Client{}, err
	}
	c := entities.Client{ID: it.ID, CompanyID: it.CompanyID, Name: it.Name}
	for _, ct := range it.Contacts {
		c.Contacts = append(c.Contacts, entities.ClientContact{Name: ct.Name, Email: ct.Email, Phone: ct.Phone})
	}
	return c, nil
}

func (r *DirectoryDynamoRepository) getByID(ctx context.Context, table, id string, dst any) (bool, error) {
	if id == "" {
		return false, nil
	}
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return false, err
	}
	if len(out.Item) == 0 {
		return false, nil
	}
	if err := attributevalue.UnmarshalMap(out.Item, dst); err != nil {
		return false, err
	}
	return true, nil
}

func fromVehicleItem(it vehicleItem) entities.Vehicle {
	return entities.Vehicle{
		ID:                 it.ID,
		CompanyID:          it.CompanyID,
		Plate:              it.Plate,
		Type:               it.Type,
		Seats:              it.Seats,
		Category:           entities.FleetCategory(it.Category),
		OwnerName:          it.OwnerName,
		PrimaryDriverID:    it.PrimaryDriverID,
		SecondaryDriverIDs: it.SecondaryDriverIDs,
		Active:             it.Active,
	}
}
