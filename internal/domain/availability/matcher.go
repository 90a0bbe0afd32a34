package availability

import (
	"fmt"
	"sort"

	"transporte_xpto/internal/domain/entities"
)

// Booking is the occupation of one vehicle and driver by one request.
type Booking struct {
	RequestID      string `json:"request_id"`
	SequenceNumber string `json:"sequence_number"`
	VehicleID      string `json:"vehicle_id"`
	DriverID       string `json:"driver_id"`
	Window         Window `json:"window"`
}

// BookingWindow returns the time a request occupies on date. A request
// without a final time on that date stays busy until the end of the day.
func BookingWindow(r entities.ServiceRequest, date string) Window {
	start, err := ParseClock(r.StartTime)
	if err != nil {
		return Window{Start: 0, End: MinutesPerDay}
	}
	w := Window{Start: start, End: MinutesPerDay}
	if r.FinalTime == "" {
		return w
	}
	if r.FinalDate != "" && r.FinalDate != date {
		return w
	}
	end, err := ParseClock(r.FinalTime)
	if err != nil || end <= start {
		return w
	}
	w.End = end
	return w
}

// BookingsFor extracts the bookings of every live request scheduled on date,
// skipping excludeID. The primary vehicle field and every multi-vehicle
// assignment count; a vehicle booked twice by one request counts once.
func BookingsFor(requests []entities.ServiceRequest, date, excludeID string) []Booking {
	var out []Booking
	for _, r := range requests {
		if r.ID == excludeID || r.ScheduledDate != date || r.ApprovalStatus == entities.ApprovalRejected {
			continue
		}
		w := BookingWindow(r, date)
		seen := map[string]bool{}
		add := func(vehicleID, driverID string) {
			key := vehicleID + "|" + driverID
			if (vehicleID == "" && driverID == "") || seen[key] {
				return
			}
			seen[key] = true
			out = append(out, Booking{
				RequestID:      r.ID,
				SequenceNumber: r.SequenceNumber,
				VehicleID:      vehicleID,
				DriverID:       driverID,
				Window:         w,
			})
		}
		add(r.VehicleID, r.DriverID)
		for _, a := range r.VehicleAssignments {
			add(a.VehicleID, a.DriverID)
		}
	}
	return out
}

type ConflictReason string

const (
	ReasonVehicleBusy ConflictReason = "vehicle_busy"
	ReasonDriverBusy  ConflictReason = "driver_busy"
	ReasonNoDriver    ConflictReason = "no_driver"
	ReasonNotAllowed  ConflictReason = "driver_not_allowed"
	ReasonInactive    ConflictReason = "inactive"
)

// Conflict explains why a vehicle cannot take the window.
type Conflict struct {
	Reason         ConflictReason `json:"reason"`
	RequestID      string         `json:"request_id,omitempty"`
	SequenceNumber string         `json:"sequence_number,omitempty"`
	DriverID       string         `json:"driver_id,omitempty"`
	Window         Window         `json:"window"`
}

func (c Conflict) Describe() string {
	switch c.Reason {
	case ReasonVehicleBusy:
		return fmt.Sprintf("in service from %s to %s (request %s)", FormatClock(c.Window.Start), FormatClock(c.Window.End), c.SequenceNumber)
	case ReasonDriverBusy:
		return fmt.Sprintf("driver %s in service from %s to %s (request %s)", c.DriverID, FormatClock(c.Window.Start), FormatClock(c.Window.End), c.SequenceNumber)
	case ReasonInactive:
		return "vehicle inactive"
	case ReasonNotAllowed:
		return fmt.Sprintf("driver %s is not allowed to drive this vehicle", c.DriverID)
	default:
		return "no available driver"
	}
}

// Candidate is a vehicle to evaluate. RequestedDriverID pins the driver,
// otherwise the first free allowed driver is selected.
type Candidate struct {
	Vehicle           entities.Vehicle
	RequestedDriverID string
}

// Result is the verdict for one candidate.
type Result struct {
	Vehicle          entities.Vehicle `json:"vehicle"`
	Available        bool             `json:"available"`
	Priority         int              `json:"priority"`
	SelectedDriverID string           `json:"selected_driver_id,omitempty"`
	FreeDriverIDs    []string         `json:"free_driver_ids"`
	Conflict         *Conflict        `json:"conflict,omitempty"`
}

// Matcher answers busy/free questions against a fixed set of bookings.
// It is read-only after construction and safe for concurrent use.
type Matcher struct {
	byVehicle map[string][]Booking
	byDriver  map[string][]Booking
}

func NewMatcher(bookings []Booking) *Matcher {
	m := &Matcher{byVehicle: map[string][]Booking{}, byDriver: map[string][]Booking{}}
	for _, b := range bookings {
		if b.VehicleID != "" && !containsRequest(m.byVehicle[b.VehicleID], b.RequestID) {
			m.byVehicle[b.VehicleID] = append(m.byVehicle[b.VehicleID], b)
		}
		if b.DriverID != "" && !containsRequest(m.byDriver[b.DriverID], b.RequestID) {
			m.byDriver[b.DriverID] = append(m.byDriver[b.DriverID], b)
		}
	}
	for _, list := range []map[string][]Booking{m.byVehicle, m.byDriver} {
		for k := range list {
			sort.SliceStable(list[k], func(i, j int) bool { return list[k][i].Window.Start < list[k][j].Window.Start })
		}
	}
	return m
}

// VehicleConflict returns the first booking of vehicleID overlapping w.
func (m *Matcher) VehicleConflict(vehicleID string, w Window) (Booking, bool) {
	return firstOverlap(m.byVehicle[vehicleID], w)
}

// DriverConflict returns the first booking of driverID, on any vehicle,
// overlapping w.
func (m *Matcher) DriverConflict(driverID string, w Window) (Booking, bool) {
	return firstOverlap(m.byDriver[driverID], w)
}

// Evaluate decides whether c can serve window w.
func (m *Matcher) Evaluate(w Window, c Candidate) Result {
	res := Result{
		Vehicle:       c.Vehicle,
		Priority:      c.Vehicle.Category.Priority(),
		FreeDriverIDs: []string{},
	}

	var driverBusy *Booking
	for _, id := range c.Vehicle.AllowedDriverIDs() {
		if b, busy := m.DriverConflict(id, w); busy {
			if driverBusy == nil {
				driverBusy = &b
			}
			continue
		}
		res.FreeDriverIDs = append(res.FreeDriverIDs, id)
	}

	if !c.Vehicle.Active {
		res.Conflict = &Conflict{Reason: ReasonInactive}
		return res
	}
	if b, busy := m.VehicleConflict(c.Vehicle.ID, w); busy {
		res.Conflict = bookingConflict(ReasonVehicleBusy, b)
		return res
	}

	if c.RequestedDriverID != "" {
		if !c.Vehicle.CanBeDrivenBy(c.RequestedDriverID) {
			res.Conflict = &Conflict{Reason: ReasonNotAllowed, DriverID: c.RequestedDriverID}
			return res
		}
		if b, busy := m.DriverConflict(c.RequestedDriverID, w); busy {
			res.Conflict = bookingConflict(ReasonDriverBusy, b)
			return res
		}
		res.SelectedDriverID = c.RequestedDriverID
		res.Available = true
		return res
	}

	if len(res.FreeDriverIDs) == 0 {
		if driverBusy != nil {
			res.Conflict = bookingConflict(ReasonDriverBusy, *driverBusy)
		} else {
			res.Conflict = &Conflict{Reason: ReasonNoDriver}
		}
		return res
	}
	res.SelectedDriverID = res.FreeDriverIDs[0]
	res.Available = true
	return res
}

// EvaluateAll evaluates every candidate in input order.
func (m *Matcher) EvaluateAll(w Window, candidates []Candidate) []Result {
	out := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, m.Evaluate(w, c))
	}
	return out
}

func bookingConflict(reason ConflictReason, b Booking) *Conflict {
	return &Conflict{
		Reason:         reason,
		RequestID:      b.RequestID,
		SequenceNumber: b.SequenceNumber,
		DriverID:       b.DriverID,
		Window:         b.Window,
	}
}

func firstOverlap(bookings []Booking, w Window) (Booking, bool) {
	for _, b := range bookings {
		if Overlaps(w, b.Window) {
			return b, true
		}
	}
	return Booking{}, false
}

func containsRequest(bookings []Booking, requestID string) bool {
	for _, b := range bookings {
		if b.RequestID == requestID {
			return true
		}
	}
	return false
}
