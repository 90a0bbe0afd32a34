package repository

import (
	"errors"
	"testing"
	"time"

	"transporte_xpto/internal/config"
	"transporte_xpto/internal/domain/entities"
	"transporte_xpto/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTables = config.TablesConfig{
	ServiceRequests:    "service_requests",
	PaymentSections:    "payment_sections",
	Contracts:          "contracts",
	ContractHistory:    "contract_history",
	PrefacturaDelivery: "prefactura_deliveries",
}

func sampleRequest() entities.ServiceRequest {
	accepted := time.Date(2025, 3, 9, 15, 4, 5, 0, time.UTC)
	return entities.ServiceRequest{
		ID:                  "r1",
		CompanyID:           "co1",
		SequenceNumber:      "HE000017",
		ClientID:            "cl1",
		ClientName:          "Acme",
		Origin:              "Bogota",
		Destination:         "Chia",
		ScheduledDate:       "2025-03-10",
		StartTime:           "08:00",
		RequestedPassengers: 25,
		ApprovalStatus:      entities.ApprovalAccepted,
		ExecutionStatus:     entities.ExecutionNotStarted,
		AccountingStatus:    entities.AccountingNotStarted,
		VehicleID:           "v1",
		DriverID:            "d1",
		VehicleAssignments: []entities.VehicleAssignment{{
			VehicleID:          "v1",
			Plate:              "AAA111",
			Seats:              20,
			Category:           entities.FleetPropio,
			DriverID:           "d1",
			AssignedPassengers: 20,
			ChargeMode:         entities.ChargeWithinContract,
			ChargeAmount:       decimal.RequireFromString("150.50"),
			Accounting: entities.VehicleAccounting{
				PreInvoice: &entities.DocumentRef{Number: "PF-1", Amount: decimal.RequireFromString("150.50"), RecordedBy: "u-acc", RecordedAt: accepted},
			},
		}},
		ChargeAmount:  decimal.RequireFromString("150.50"),
		AmountToBill:  decimal.NewNullDecimal(decimal.RequireFromString("1000.00")),
		ProfitPercent: decimal.RequireFromString("44.44"),
		Prefactura: &entities.Prefactura{
			Number:      "PREF_HE000017_ACME",
			RequestIDs:  []string{"r1"},
			State:       entities.PrefacturaPending,
			GeneratedBy: "u-acc",
			GeneratedAt: accepted,
		},
		AcceptedBy: "u-coord",
		AcceptedAt: &accepted,
		Version:    3,
		CreatedAt:  accepted,
		UpdatedAt:  accepted,
	}
}

func TestServiceRequestItem_RoundTrip(t *testing.T) {
	in := sampleRequest()

	av, err := attributevalue.MarshalMap(toServiceRequestItem(in))
	require.NoError(t, err)

	var it serviceRequestItem
	require.NoError(t, attributevalue.UnmarshalMap(av, &it))
	out := fromServiceRequestItem(it)

	assert.Equal(t, in.SequenceNumber, out.SequenceNumber)
	assert.True(t, in.ChargeAmount.Equal(out.ChargeAmount))
	assert.True(t, out.AmountToBill.Valid)
	assert.Equal(t, "1000", out.AmountToBill.Decimal.String())
	assert.False(t, out.AmountPaid.Valid, "unset amounts stay unset")
	assert.False(t, out.TotalHours.Valid)
	require.Len(t, out.VehicleAssignments, 1)
	require.NotNil(t, out.VehicleAssignments[0].Accounting.PreInvoice)
	assert.Equal(t, "PF-1", out.VehicleAssignments[0].Accounting.PreInvoice.Number)
	assert.Nil(t, out.VehicleAssignments[0].Accounting.PreSettlement)
	require.NotNil(t, out.Prefactura)
	assert.Equal(t, []string{"r1"}, out.Prefactura.RequestIDs)
	require.NotNil(t, out.AcceptedAt)
	assert.True(t, in.AcceptedAt.Equal(*out.AcceptedAt))
	assert.Nil(t, out.StartedAt)
}

func TestServiceRequestItem_KeepsIndexAttributes(t *testing.T) {
	av, err := attributevalue.MarshalMap(toServiceRequestItem(sampleRequest()))
	require.NoError(t, err)

	assert.Equal(t, &types.AttributeValueMemberS{Value: "co1"}, av["company_id"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "2025-03-10"}, av["scheduled_date"])
	_, hasPaid := av["amount_paid"]
	assert.False(t, hasPaid)
}

func TestRequestPut_VersionConditions(t *testing.T) {
	fixed := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &ServiceRequestDynamoRepository{tables: testTables, now: func() time.Time { return fixed }}

	t.Run("create", func(t *testing.T) {
		req := sampleRequest()
		req.Version = 0
		req.CreatedAt = time.Time{}

		stored, item, err := repo.requestPut(req, true)
		require.NoError(t, err)
		assert.Equal(t, int64(1), stored.Version)
		assert.Equal(t, fixed, stored.CreatedAt)
		assert.Equal(t, "attribute_not_exists(#id)", aws.ToString(item.Put.ConditionExpression))
	})

	t.Run("update", func(t *testing.T) {
		stored, item, err := repo.requestPut(sampleRequest(), false)
		require.NoError(t, err)
		assert.Equal(t, int64(4), stored.Version)
		assert.Equal(t, fixed, stored.UpdatedAt)
		assert.Equal(t, "#version = :expected", aws.ToString(item.Put.ConditionExpression))
		assert.Equal(t, &types.AttributeValueMemberN{Value: "3"}, item.Put.ExpressionAttributeValues[":expected"])
		assert.Equal(t, &types.AttributeValueMemberN{Value: "4"}, item.Put.Item["version"])
	})
}

func TestContractWriteItems(t *testing.T) {
	w := interfaces.ContractWrite{
		Contract: entities.Contract{
			ID:             "k1",
			BudgetAmount:   decimal.NewNullDecimal(decimal.NewFromInt(1000)),
			ConsumedAmount: decimal.NewFromInt(950),
			Rates:          map[entities.PricingMode]decimal.Decimal{entities.PricingPerHour: decimal.NewFromInt(80)},
			Version:        2,
		},
		Entries: []entities.ContractHistoryEntry{
			{ID: "h1", ContractID: "k1", Type: entities.ContractEntryCharge, Amount: decimal.NewFromInt(50)},
		},
	}

	items, stored, err := contractWriteItems(testTables, w)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(3), stored.Version)
	assert.Equal(t, "contracts", aws.ToString(items[0].Put.TableName))
	assert.Equal(t, &types.AttributeValueMemberN{Value: "2"}, items[0].Put.ExpressionAttributeValues[":expected"])
	assert.Equal(t, "contract_history", aws.ToString(items[1].Put.TableName))
	assert.Equal(t, "attribute_not_exists(#id)", aws.ToString(items[1].Put.ConditionExpression))
}

func TestContractItem_Rates(t *testing.T) {
	in := entities.Contract{
		ID:             "k1",
		ConsumedAmount: decimal.RequireFromString("12.30"),
		Rates: map[entities.PricingMode]decimal.Decimal{
			entities.PricingPerKm:  decimal.RequireFromString("2.5"),
			entities.PricingPerLeg: decimal.NewFromInt(300),
		},
	}

	out := fromContractItem(toContractItem(in))

	assert.False(t, out.BudgetAmount.Valid, "uncapped contract stays uncapped")
	assert.True(t, out.ConsumedAmount.Equal(decimal.RequireFromString("12.3")))
	require.Len(t, out.Rates, 2)
	assert.True(t, out.Rates[entities.PricingPerKm].Equal(decimal.RequireFromString("2.5")))
}

func TestPaymentSectionItem_RoundTrip(t *testing.T) {
	in := entities.PaymentSection{
		RequestID: "r1",
		Rows: []entities.PaymentRow{{
			VehicleID:   "v1",
			Category:    entities.FleetAfiliado,
			BaseAmount:  decimal.NewFromInt(300),
			FinalAmount: decimal.NewFromInt(250),
			State:       entities.PaymentRowReady,
		}},
		TotalBase:        decimal.NewFromInt(300),
		TotalFinalAmount: decimal.NewFromInt(250),
	}

	out := fromPaymentSectionItem(toPaymentSectionItem(in))

	require.Len(t, out.Rows, 1)
	assert.Equal(t, entities.PaymentRowReady, out.Rows[0].State)
	assert.Equal(t, entities.FleetAfiliado, out.Rows[0].Category)
	assert.True(t, out.TotalFinalAmount.Equal(decimal.NewFromInt(250)))
	assert.True(t, out.UpdatedAt.IsZero())
}

func TestLocationKey(t *testing.T) {
	assert.Equal(t, "terminal del norte", LocationKey("  Terminal   DEL Norte "))
	assert.Equal(t, "", LocationKey("   "))
}

func TestConditionFailed(t *testing.T) {
	code := "ConditionalCheckFailed"
	none := "None"

	assert.True(t, conditionFailed(&types.ConditionalCheckFailedException{}))
	assert.True(t, conditionFailed(&types.TransactionCanceledException{
		CancellationReasons: []types.CancellationReason{{Code: &none}, {Code: &code}},
	}))
	assert.False(t, conditionFailed(&types.TransactionCanceledException{
		CancellationReasons: []types.CancellationReason{{Code: &none}},
	}))
	assert.False(t, conditionFailed(errors.New("throttled")))
}

func TestFormatTime_SortsLikeTime(t *testing.T) {
	whole := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	tenth := whole.Add(100 * time.Millisecond)

	a, b := formatTime(whole), formatTime(tenth)
	assert.Equal(t, "2025-03-10T12:00:00.000000000Z", a)
	assert.Less(t, a, b)
	assert.True(t, parseTime(b).Equal(tenth))
	assert.True(t, parseTime("2025-03-10T12:00:00.1Z").Equal(tenth), "older values still parse")
}

func TestParseHelpers(t *testing.T) {
	assert.True(t, parseDecimal("garbage").IsZero())
	assert.False(t, parseNullDecimal("").Valid)
	assert.Nil(t, parseTimePtr(""))
	assert.Equal(t, "", formatTime(time.Time{}))
}
