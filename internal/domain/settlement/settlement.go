package settlement

import (
	"time"

	"transporte_xpto/internal/domain/entities"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	cent    = decimal.New(1, -2)
)

// Recompute derives the request's expense total and profit from the
// expense lines. Unset revenue or cost counts as zero.
//
//	profit         = amount_to_bill - amount_paid - total_operational_expenses
//	profit_percent = profit / amount_to_bill * 100 (0 when nothing is billed)
func Recompute(req *entities.ServiceRequest, expenses []entities.Expense) {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	bill := valueOrZero(req.AmountToBill)
	paid := valueOrZero(req.AmountPaid)

	req.TotalOperationalExpenses = total
	req.Profit = bill.Sub(paid).Sub(total)
	if bill.IsPositive() {
		req.ProfitPercent = req.Profit.Div(bill).Mul(hundred).Round(2)
	} else {
		req.ProfitPercent = decimal.Zero
	}
}

// VehiclesWithoutExpenses returns the plates of assigned vehicles that have
// no linked expense line.
func VehiclesWithoutExpenses(req entities.ServiceRequest, expenses []entities.Expense) []string {
	linked := map[string]bool{}
	for _, e := range expenses {
		linked[e.VehicleID] = true
	}
	var missing []string
	for _, a := range assignments(req) {
		if !linked[a.VehicleID] {
			missing = append(missing, a.Plate)
		}
	}
	return missing
}

// BuildPaymentSection rebuilds the per-vehicle settlement from scratch.
// amount_paid is split evenly across vehicles; leftover cents go to the
// first rows so that the rows add up to amount_paid.
func BuildPaymentSection(req entities.ServiceRequest, expenses []entities.Expense, now time.Time) entities.PaymentSection {
	section := entities.PaymentSection{
		RequestID:        req.ID,
		Rows:             []entities.PaymentRow{},
		TotalBase:        decimal.Zero,
		TotalExpenses:    decimal.Zero,
		TotalFinalAmount: decimal.Zero,
		UpdatedAt:        now,
	}
	vehicles := assignments(req)
	if len(vehicles) == 0 {
		return section
	}

	bases := splitEvenly(valueOrZero(req.AmountPaid), len(vehicles))

	type sums struct {
		operational, preoperational decimal.Decimal
		count                       int
	}
	byVehicle := map[string]*sums{}
	for _, e := range expenses {
		s, ok := byVehicle[e.VehicleID]
		if !ok {
			s = &sums{operational: decimal.Zero, preoperational: decimal.Zero}
			byVehicle[e.VehicleID] = s
		}
		if e.Kind == entities.ExpensePreoperational {
			s.preoperational = s.preoperational.Add(e.Amount)
		} else {
			s.operational = s.operational.Add(e.Amount)
		}
		s.count++
	}

	for i, a := range vehicles {
		row := entities.PaymentRow{
			VehicleID:              a.VehicleID,
			Plate:                  a.Plate,
			OwnerName:              a.OwnerName,
			Category:               a.Category,
			DriverID:               a.DriverID,
			DriverName:             a.DriverName,
			BaseAmount:             bases[i],
			OperationalExpenses:    decimal.Zero,
			PreoperationalExpenses: decimal.Zero,
			State:                  entities.PaymentRowPending,
		}
		if s, ok := byVehicle[a.VehicleID]; ok && s.count > 0 {
			row.OperationalExpenses = s.operational
			row.PreoperationalExpenses = s.preoperational
			row.State = entities.PaymentRowReady
		}
		row.FinalAmount = decimal.Max(decimal.Zero, row.BaseAmount.Sub(row.OperationalExpenses).Sub(row.PreoperationalExpenses))

		section.Rows = append(section.Rows, row)
		section.TotalBase = section.TotalBase.Add(row.BaseAmount)
		section.TotalExpenses = section.TotalExpenses.Add(row.OperationalExpenses).Add(row.PreoperationalExpenses)
		section.TotalFinalAmount = section.TotalFinalAmount.Add(row.FinalAmount)
	}
	return section
}

// assignments returns the vehicles of req, falling back to the primary
// vehicle field for single-vehicle requests without assignment list.
func assignments(req entities.ServiceRequest) []entities.VehicleAssignment {
	if len(req.VehicleAssignments) > 0 {
		return req.VehicleAssignments
	}
	if req.VehicleID == "" {
		return nil
	}
	return []entities.VehicleAssignment{{VehicleID: req.VehicleID, Plate: req.VehicleID, DriverID: req.DriverID}}
}

func splitEvenly(total decimal.Decimal, n int) []decimal.Decimal {
	out := make([]decimal.Decimal, n)
	share := total.Div(decimal.NewFromInt(int64(n))).RoundDown(2)
	rest := total.Sub(share.Mul(decimal.NewFromInt(int64(n))))
	for i := range out {
		out[i] = share
	}
	for i := 0; rest.GreaterThanOrEqual(cent); i = (i + 1) % n {
		out[i] = out[i].Add(cent)
		rest = rest.Sub(cent)
	}
	if !rest.IsZero() {
		out[0] = out[0].Add(rest)
	}
	return out
}

func valueOrZero(v decimal.NullDecimal) decimal.Decimal {
	if !v.Valid {
		return decimal.Zero
	}
	return v.Decimal
}
