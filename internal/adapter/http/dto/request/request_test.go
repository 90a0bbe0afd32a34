package request

import (
	"encoding/json"
	"testing"

	"transporte_xpto/internal/domain/entities"
)

func TestAvailabilityRequest_ToQuery(t *testing.T) {
	q := AvailabilityRequest{
		Date:      "2025-03-10",
		StartTime: "08:00",
		Vehicles:  " v1, ,v2 ",
		Drivers:   "v1:d1,bad,v2:",
	}.ToQuery()

	if len(q.VehicleIDs) != 2 || q.VehicleIDs[0] != "v1" || q.VehicleIDs[1] != "v2" {
		t.Fatalf("unexpected vehicles: %v", q.VehicleIDs)
	}
	if len(q.DriverByVehicle) != 1 || q.DriverByVehicle["v1"] != "d1" {
		t.Fatalf("unexpected drivers: %v", q.DriverByVehicle)
	}
}

func TestAcceptRequest_ToInput(t *testing.T) {
	var r AcceptRequest
	body := `{"vehicle_assignments":[{"vehicle_id":"v1","assigned_passengers":18,"charge_mode":"within_contract","contract_id":"k1","charge_amount":"150.5"}],"estimated_hours":2.5}`
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	in := r.ToInput()
	if len(in.Assignments) != 1 || in.Assignments[0].ChargeMode != entities.ChargeWithinContract {
		t.Fatalf("unexpected assignments: %+v", in.Assignments)
	}
	if in.Assignments[0].ChargeAmount.String() != "150.5" {
		t.Fatalf("unexpected amount: %s", in.Assignments[0].ChargeAmount)
	}
	if !in.EstimatedHours.Valid || in.EstimatedHours.Decimal.String() != "2.5" {
		t.Fatalf("unexpected hours: %+v", in.EstimatedHours)
	}
	if in.EstimatedKm.Valid {
		t.Fatalf("km should stay unset")
	}
}

func TestUpdateContractRequest_NullBudget(t *testing.T) {
	var r UpdateContractRequest
	if err := json.Unmarshal([]byte(`{"budget_amount":null,"rates":{"per_km":"2"}}`), &r); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	in := r.ToInput()
	if in.Name != nil {
		t.Fatalf("name should stay nil")
	}
	if in.Rates[entities.PricingPerKm].String() != "2" {
		t.Fatalf("unexpected rates: %v", in.Rates)
	}
}

func TestFinancialsRequest_PartialUpdate(t *testing.T) {
	var r FinancialsRequest
	if err := json.Unmarshal([]byte(`{"amount_paid":600}`), &r); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	in := r.ToInput()
	if in.AmountToBill.Valid || !in.AmountPaid.Valid {
		t.Fatalf("unexpected input: %+v", in)
	}
}
