package response

import "transporte_xpto/internal/domain/availability"

// AvailabilityResponse adds a readable reason to each unavailable vehicle.
type AvailabilityResponse struct {
	availability.Result
	Reason string `json:"reason,omitempty"`
}

func FromAvailability(results []availability.Result) []AvailabilityResponse {
	out := make([]AvailabilityResponse, 0, len(results))
	for _, r := range results {
		res := AvailabilityResponse{Result: r}
		if r.Conflict != nil {
			res.Reason = r.Conflict.Describe()
		}
		out = append(out, res)
	}
	return out
}
