package allocation

import (
	"sort"

	"transporte_xpto/internal/domain/availability"
	"transporte_xpto/internal/domain/entities"
	"transporte_xpto/pkg"
)

var (
	ErrInvalidPassengers = pkg.Validation("INVALID_PASSENGERS", "requested passengers must be greater than zero")
	ErrNoVehicles        = pkg.Validation("NO_VEHICLES", "no vehicles match the request")
)

// PlannedVehicle is one line of a proposed allocation.
type PlannedVehicle struct {
	VehicleID          string                 `json:"vehicle_id"`
	Plate              string                 `json:"plate"`
	Seats              int                    `json:"seats"`
	Category           entities.FleetCategory `json:"category"`
	Priority           int                    `json:"priority"`
	DriverID           string                 `json:"driver_id,omitempty"`
	AssignedPassengers int                    `json:"assigned_passengers"`
}

// Plan is a proposed split of passengers across vehicles.
type Plan struct {
	RequestedPassengers int              `json:"requested_passengers"`
	CoveredPassengers   int              `json:"covered_passengers"`
	Remaining           int              `json:"remaining"`
	CanFulfill          bool             `json:"can_fulfill"`
	Vehicles            []PlannedVehicle `json:"vehicles"`
}

// InService is a vehicle left out of a plan because it is busy.
type InService struct {
	VehicleID string                 `json:"vehicle_id"`
	Plate     string                 `json:"plate"`
	Seats     int                    `json:"seats"`
	Reason    string                 `json:"reason"`
	Conflict  *availability.Conflict `json:"conflict,omitempty"`
}

type AvailablePlan struct {
	Plan
	InService []InService `json:"in_service"`
}

// Suggest greedily covers passengers from the largest vehicle down. It does
// not look at availability. preferredSeats > 0 keeps only vehicles with that
// seat count.
func Suggest(passengers int, vehicles []entities.Vehicle, preferredSeats int) (Plan, error) {
	if passengers <= 0 {
		return Plan{}, ErrInvalidPassengers
	}

	eligible := make([]entities.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if !v.Active || v.Seats <= 0 {
			continue
		}
		if preferredSeats > 0 && v.Seats != preferredSeats {
			continue
		}
		eligible = append(eligible, v)
	}
	if len(eligible) == 0 {
		return Plan{}, ErrNoVehicles
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].Seats != eligible[j].Seats {
			return eligible[i].Seats > eligible[j].Seats
		}
		return eligible[i].Plate < eligible[j].Plate
	})

	plan := Plan{RequestedPassengers: passengers, Vehicles: []PlannedVehicle{}}
	remaining := passengers
	for _, v := range eligible {
		if remaining == 0 {
			break
		}
		take := min(v.Seats, remaining)
		plan.Vehicles = append(plan.Vehicles, planned(v, "", take))
		remaining -= take
	}
	return finish(plan, remaining), nil
}

// FindAvailable builds a plan from availability results. Free vehicles are
// ranked by fleet priority then capacity. Whenever a single free vehicle can
// carry everyone left it takes exactly that remainder, otherwise the largest
// free vehicle is filled and the search repeats.
func FindAvailable(passengers int, results []availability.Result) (AvailablePlan, error) {
	if passengers <= 0 {
		return AvailablePlan{}, ErrInvalidPassengers
	}

	ranked := make([]availability.Result, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Available != b.Available {
			return a.Available
		}
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if a.Vehicle.Seats != b.Vehicle.Seats {
			return a.Vehicle.Seats > b.Vehicle.Seats
		}
		return a.Vehicle.Plate < b.Vehicle.Plate
	})

	out := AvailablePlan{
		Plan:      Plan{RequestedPassengers: passengers, Vehicles: []PlannedVehicle{}},
		InService: []InService{},
	}
	var free []availability.Result
	for _, r := range ranked {
		if r.Available && r.Vehicle.Seats > 0 {
			free = append(free, r)
			continue
		}
		if r.Available {
			continue
		}
		reason := "unavailable"
		if r.Conflict != nil {
			reason = r.Conflict.Describe()
		}
		out.InService = append(out.InService, InService{
			VehicleID: r.Vehicle.ID,
			Plate:     r.Vehicle.Plate,
			Seats:     r.Vehicle.Seats,
			Reason:    reason,
			Conflict:  r.Conflict,
		})
	}

	used := make([]bool, len(free))
	remaining := passengers
	for remaining > 0 {
		idx := -1
		for i, r := range free {
			if !used[i] && r.Vehicle.Seats >= remaining {
				idx = i
				break
			}
		}
		if idx >= 0 {
			used[idx] = true
			out.Vehicles = append(out.Vehicles, planned(free[idx].Vehicle, free[idx].SelectedDriverID, remaining))
			remaining = 0
			break
		}

		for i, r := range free {
			if used[i] {
				continue
			}
			if idx < 0 || r.Vehicle.Seats > free[idx].Vehicle.Seats {
				idx = i
			}
		}
		if idx < 0 {
			break
		}
		used[idx] = true
		out.Vehicles = append(out.Vehicles, planned(free[idx].Vehicle, free[idx].SelectedDriverID, free[idx].Vehicle.Seats))
		remaining -= free[idx].Vehicle.Seats
	}

	out.Plan = finish(out.Plan, remaining)
	return out, nil
}

func planned(v entities.Vehicle, driverID string, passengers int) PlannedVehicle {
	if driverID == "" {
		driverID = v.PrimaryDriverID
	}
	return PlannedVehicle{
		VehicleID:          v.ID,
		Plate:              v.Plate,
		Seats:              v.Seats,
		Category:           v.Category,
		Priority:           v.Category.Priority(),
		DriverID:           driverID,
		AssignedPassengers: passengers,
	}
}

func finish(p Plan, remaining int) Plan {
	p.Remaining = remaining
	p.CoveredPassengers = p.RequestedPassengers - remaining
	p.CanFulfill = remaining == 0
	return p
}
