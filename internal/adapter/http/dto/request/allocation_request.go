package request

import (
	"strings"

	"transporte_xpto/internal/usecase"
)

// AvailabilityRequest is bound from the query string. Vehicles is a comma
// separated list of vehicle ids and drivers a list of vehicle:driver pairs.
type AvailabilityRequest struct {
	Date             string `form:"date" binding:"required"`
	StartTime        string `form:"start_time" binding:"required"`
	EndTime          string `form:"end_time"`
	VehicleType      string `form:"vehicle_type"`
	Vehicles         string `form:"vehicles"`
	Drivers          string `form:"drivers"`
	ExcludeRequestID string `form:"exclude_request_id"`
}

func (r AvailabilityRequest) ToQuery() usecase.AvailabilityQuery {
	q := usecase.AvailabilityQuery{
		Date:             r.Date,
		StartTime:        r.StartTime,
		EndTime:          r.EndTime,
		VehicleType:      r.VehicleType,
		VehicleIDs:       splitCSV(r.Vehicles),
		ExcludeRequestID: r.ExcludeRequestID,
	}
	for _, pair := range splitCSV(r.Drivers) {
		vehicleID, driverID, ok := strings.Cut(pair, ":")
		if !ok || vehicleID == "" || driverID == "" {
			continue
		}
		if q.DriverByVehicle == nil {
			q.DriverByVehicle = map[string]string{}
		}
		q.DriverByVehicle[vehicleID] = driverID
	}
	return q
}

type SuggestRequest struct {
	Passengers     int    `form:"passengers" binding:"required"`
	PreferredSeats int    `form:"preferred_seats"`
	VehicleType    string `form:"vehicle_type"`
}

func (r SuggestRequest) ToQuery() usecase.SuggestQuery {
	return usecase.SuggestQuery{Passengers: r.Passengers, PreferredSeats: r.PreferredSeats, VehicleType: r.VehicleType}
}

type FindAvailableRequest struct {
	AvailabilityRequest
	Passengers int `form:"passengers" binding:"required"`
}

func (r FindAvailableRequest) ToQuery() usecase.FindAvailableQuery {
	return usecase.FindAvailableQuery{AvailabilityQuery: r.AvailabilityRequest.ToQuery(), Passengers: r.Passengers}
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
