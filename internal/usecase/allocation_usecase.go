package usecase

import (
	"context"
	"strings"

	"transporte_xpto/internal/domain/allocation"
	"transporte_xpto/internal/domain/availability"
	"transporte_xpto/internal/domain/entities"
	"transporte_xpto/internal/domain/lifecycle"
	"transporte_xpto/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// AvailabilityQuery selects the vehicles to evaluate for a window on Date.
// Empty VehicleIDs means the whole company fleet. DriverByVehicle pins a
// driver per vehicle.
type AvailabilityQuery struct {
	Date             string
	StartTime        string
	EndTime          string
	VehicleType      string
	VehicleIDs       []string
	DriverByVehicle  map[string]string
	ExcludeRequestID string
}

type SuggestQuery struct {
	Passengers     int
	PreferredSeats int
	VehicleType    string
}

type FindAvailableQuery struct {
	AvailabilityQuery
	Passengers int
}

// IAllocationUseCase answers availability and allocation questions for
// coordinators. Nothing here writes.
type IAllocationUseCase interface {
	CheckAvailability(ctx context.Context, actor entities.Actor, q AvailabilityQuery) ([]availability.Result, error)
	Suggest(ctx context.Context, actor entities.Actor, q SuggestQuery) (allocation.Plan, error)
	FindAvailable(ctx context.Context, actor entities.Actor, q FindAvailableQuery) (allocation.AvailablePlan, error)
}

type AllocationUseCase struct {
	checker availabilityChecker
	fleet   interfaces.IFleetDirectory
	logger  *zap.Logger
}

var _ IAllocationUseCase = (*AllocationUseCase)(nil)

func NewAllocationUseCase(requests interfaces.IServiceRequestRepository, fleet interfaces.IFleetDirectory, logger *zap.Logger) *AllocationUseCase {
	return &AllocationUseCase{
		checker: availabilityChecker{requests: requests, fleet: fleet},
		fleet:   fleet,
		logger:  orNop(logger).Named("allocation.usecase"),
	}
}

func (u *AllocationUseCase) CheckAvailability(ctx context.Context, actor entities.Actor, q AvailabilityQuery) ([]availability.Result, error) {
	if err := requireInternal(actor); err != nil {
		return nil, err
	}
	if err := lifecycle.ValidateSchedule(q.Date, q.StartTime); err != nil {
		return nil, err
	}
	window, err := availability.NewRequestWindow(q.StartTime, q.EndTime)
	if err != nil {
		return nil, lifecycle.ErrInvalidTime
	}

	vehicles, matcher, err := u.checker.snapshot(ctx, actor.CompanyID, strings.TrimSpace(q.Date), strings.TrimSpace(q.ExcludeRequestID))
	if err != nil {
		return nil, err
	}
	results := matcher.EvaluateAll(window, selectCandidates(vehicles, q))
	u.logger.Debug("availability evaluated",
		zap.String("date", q.Date),
		zap.String("window", window.String()),
		zap.Int("candidates", len(results)))
	return results, nil
}

func (u *AllocationUseCase) Suggest(ctx context.Context, actor entities.Actor, q SuggestQuery) (allocation.Plan, error) {
	if err := requireInternal(actor); err != nil {
		return allocation.Plan{}, err
	}
	if q.Passengers <= 0 {
		return allocation.Plan{}, allocation.ErrInvalidPassengers
	}
	vehicles, err := u.fleet.ListVehicles(ctx, actor.CompanyID)
	if err != nil {
		return allocation.Plan{}, persistErr("failed to load fleet", err)
	}
	return allocation.Suggest(q.Passengers, filterType(vehicles, q.VehicleType), q.PreferredSeats)
}

func (u *AllocationUseCase) FindAvailable(ctx context.Context, actor entities.Actor, q FindAvailableQuery) (allocation.AvailablePlan, error) {
	if q.Passengers <= 0 {
		return allocation.AvailablePlan{}, allocation.ErrInvalidPassengers
	}
	results, err := u.CheckAvailability(ctx, actor, q.AvailabilityQuery)
	if err != nil {
		return allocation.AvailablePlan{}, err
	}
	plan, err := allocation.FindAvailable(q.Passengers, results)
	if err != nil {
		return allocation.AvailablePlan{}, err
	}
	if !plan.CanFulfill {
		u.logger.Info("fleet cannot cover passengers",
			zap.String("date", q.Date),
			zap.Int("requested", q.Passengers),
			zap.Int("covered", plan.CoveredPassengers))
	}
	return plan, nil
}

func selectCandidates(vehicles []entities.Vehicle, q AvailabilityQuery) []availability.Candidate {
	var wanted map[string]bool
	if len(q.VehicleIDs) > 0 {
		wanted = make(map[string]bool, len(q.VehicleIDs))
		for _, id := range q.VehicleIDs {
			wanted[strings.TrimSpace(id)] = true
		}
	}
	out := make([]availability.Candidate, 0, len(vehicles))
	for _, v := range filterType(vehicles, q.VehicleType) {
		if wanted != nil && !wanted[v.ID] {
			continue
		}
		out = append(out, availability.Candidate{Vehicle: v, RequestedDriverID: strings.TrimSpace(q.DriverByVehicle[v.ID])})
	}
	return out
}

func filterType(vehicles []entities.Vehicle, vehicleType string) []entities.Vehicle {
	vehicleType = strings.TrimSpace(vehicleType)
	if vehicleType == "" {
		return vehicles
	}
	out := make([]entities.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if strings.EqualFold(v.Type, vehicleType) {
			out = append(out, v)
		}
	}
	return out
}
