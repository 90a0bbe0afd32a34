package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentRowState string

const (
	PaymentRowPending PaymentRowState = "pending"
	PaymentRowReady   PaymentRowState = "ready"
)

// PaymentRow is the settlement (cuenta de cobro) of one assigned vehicle.
type PaymentRow struct {
	VehicleID              string          `json:"vehicle_id"`
	Plate                  string          `json:"plate"`
	OwnerName              string          `json:"owner_name"`
	Category               FleetCategory   `json:"category"`
	DriverID               string          `json:"driver_id"`
	DriverName             string          `json:"driver_name"`
	BaseAmount             decimal.Decimal `json:"base_amount"`
	OperationalExpenses    decimal.Decimal `json:"operational_expenses"`
	PreoperationalExpenses decimal.Decimal `json:"preoperational_expenses"`
	FinalAmount            decimal.Decimal `json:"final_amount"`
	State                  PaymentRowState `json:"state"`
}

// PaymentSection holds one row per assigned vehicle.
//
// Storage model (DynamoDB):
//   - PK: request_id
type PaymentSection struct {
	RequestID        string          `json:"request_id"`
	Rows             []PaymentRow    `json:"rows"`
	TotalBase        decimal.Decimal `json:"total_base"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	TotalFinalAmount decimal.Decimal `json:"total_final_amount"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type ExpenseKind string

const (
	ExpenseOperational    ExpenseKind = "operational"
	ExpensePreoperational ExpenseKind = "preoperational"
)

// Expense is a line read from the external expense ledger.
type Expense struct {
	ID          string          `json:"id"`
	RequestID   string          `json:"request_id"`
	VehicleID   string          `json:"vehicle_id"`
	Kind        ExpenseKind     `json:"kind"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"created_at"`
}
