package usecase

import (
	"context"
	"strings"
	"sync"

	"transporte_xpto/internal/domain/allocation"
	"transporte_xpto/internal/domain/availability"
	"transporte_xpto/internal/domain/entities"
	"transporte_xpto/internal/domain/lifecycle"
	"transporte_xpto/internal/usecase/interfaces"
	"transporte_xpto/pkg"

	"golang.org/x/sync/errgroup"
)

var ErrVehicleUnavailable = pkg.Conflict("VEHICLE_UNAVAILABLE", "vehicle is not available for the requested window")

// availabilityChecker loads the bookings of a day and evaluates vehicles
// against them. It is shared by the allocation and lifecycle use cases.
type availabilityChecker struct {
	requests interfaces.IServiceRequestRepository
	fleet    interfaces.IFleetDirectory
}

// snapshot loads the company fleet and the bookings of date concurrently.
func (c availabilityChecker) snapshot(ctx context.Context, companyID, date, excludeID string) ([]entities.Vehicle, *availability.Matcher, error) {
	var (
		vehicles []entities.Vehicle
		requests []entities.ServiceRequest
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		vehicles, err = c.fleet.ListVehicles(gctx, companyID)
		return err
	})
	g.Go(func() error {
		var err error
		requests, err = c.requests.ListByCompanyAndDate(gctx, companyID, date)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, pkg.Wrap("failed to load availability data", err)
	}
	return vehicles, availability.NewMatcher(availability.BookingsFor(requests, date, excludeID)), nil
}

// ensureFree fails with ErrVehicleUnavailable when any candidate is busy
// at the start of req.
func (c availabilityChecker) ensureFree(ctx context.Context, req entities.ServiceRequest, candidates []availability.Candidate) error {
	window, err := availability.NewRequestWindow(req.StartTime, "")
	if err != nil {
		return lifecycle.ErrInvalidTime
	}
	requests, err := c.requests.ListByCompanyAndDate(ctx, req.CompanyID, req.ScheduledDate)
	if err != nil {
		return pkg.Wrap("failed to load availability data", err)
	}
	m := availability.NewMatcher(availability.BookingsFor(requests, req.ScheduledDate, req.ID))
	for _, cand := range candidates {
		res := m.Evaluate(window, cand)
		if res.Available {
			continue
		}
		reason := "unavailable"
		if res.Conflict != nil {
			reason = res.Conflict.Describe()
		}
		return ErrVehicleUnavailable.WithMessage("vehicle %s is not available: %s", cand.Vehicle.Plate, reason)
	}
	return nil
}

// directory loads the vehicles and drivers referenced by inputs. Driver
// lookups run concurrently.
func (c availabilityChecker) directory(ctx context.Context, companyID string, inputs []allocation.AssignmentInput) (allocation.Directory, error) {
	dir := allocation.Directory{Vehicles: map[string]entities.Vehicle{}, Drivers: map[string]entities.Driver{}}
	vehicles, err := c.fleet.ListVehicles(ctx, companyID)
	if err != nil {
		return dir, pkg.Wrap("failed to load fleet", err)
	}
	wanted := map[string]bool{}
	for _, in := range inputs {
		wanted[strings.TrimSpace(in.VehicleID)] = true
	}
	for _, v := range vehicles {
		if wanted[v.ID] {
			dir.Vehicles[v.ID] = v
		}
	}
	// Vehicles outside the company listing are still looked up so that the
	// covering path can report them as foreign instead of unknown.
	for id := range wanted {
		if _, ok := dir.Vehicles[id]; ok || id == "" {
			continue
		}
		v, err := c.fleet.GetVehicle(ctx, id)
		if err != nil {
			return dir, pkg.Wrap("failed to load fleet", err)
		}
		if v.ID != "" {
			dir.Vehicles[v.ID] = v
		}
	}

	driverIDs := map[string]bool{}
	for _, v := range dir.Vehicles {
		for _, id := range v.AllowedDriverIDs() {
			driverIDs[id] = true
		}
	}
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for id := range driverIDs {
		g.Go(func() error {
			d, err := c.fleet.GetDriver(gctx, id)
			if err != nil {
				return err
			}
			if d.ID == "" {
				return nil
			}
			mu.Lock()
			dir.Drivers[d.ID] = d
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return dir, pkg.Wrap("failed to load drivers", err)
	}
	return dir, nil
}

func candidatesFor(assignments []entities.VehicleAssignment, vehicles map[string]entities.Vehicle) []availability.Candidate {
	out := make([]availability.Candidate, 0, len(assignments))
	for _, a := range assignments {
		v, ok := vehicles[a.VehicleID]
		if !ok {
			v = entities.Vehicle{ID: a.VehicleID, Plate: a.Plate, Seats: a.Seats, Category: a.Category, PrimaryDriverID: a.DriverID, Active: true}
		}
		out = append(out, availability.Candidate{Vehicle: v, RequestedDriverID: a.DriverID})
	}
	return out
}
