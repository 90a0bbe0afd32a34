package entities

// FleetCategory tells who owns a vehicle.
type FleetCategory string

const (
	FleetPropio   FleetCategory = "propio"
	FleetAfiliado FleetCategory = "afiliado"
	FleetExterno  FleetCategory = "externo"
)

// Priority ranks categories for allocation: own fleet first.
func (c FleetCategory) Priority() int {
	switch c {
	case FleetPropio:
		return 3
	case FleetAfiliado:
		return 2
	case FleetExterno:
		return 1
	default:
		return 0
	}
}

// Vehicle is read from the fleet directory. It is never written by this
// service.
type Vehicle struct {
	ID                 string        `json:"id"`
	CompanyID          string        `json:"company_id"`
	Plate              string        `json:"plate"`
	Type               string        `json:"type"`
	Seats              int           `json:"seats"`
	Category           FleetCategory `json:"category"`
	OwnerName          string        `json:"owner_name"`
	PrimaryDriverID    string        `json:"primary_driver_id"`
	SecondaryDriverIDs []string      `json:"secondary_driver_ids"`
	Active             bool          `json:"active"`
}

// AllowedDriverIDs returns the primary driver followed by the secondaries,
// without blanks or duplicates.
func (v Vehicle) AllowedDriverIDs() []string {
	out := make([]string, 0, 1+len(v.SecondaryDriverIDs))
	seen := map[string]bool{}
	for _, id := range append([]string{v.PrimaryDriverID}, v.SecondaryDriverIDs...) {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// CanBeDrivenBy reports whether driverID is the primary or an allowed
// secondary driver of the vehicle.
func (v Vehicle) CanBeDrivenBy(driverID string) bool {
	for _, id := range v.AllowedDriverIDs() {
		if id == driverID {
			return true
		}
	}
	return false
}

type Driver struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Document  string `json:"document"`
}

// Client is read from the client directory.
type Client struct {
	ID        string          `json:"id"`
	CompanyID string          `json:"company_id"`
	Name      string          `json:"name"`
	Contacts  []ClientContact `json:"contacts"`
}

type ClientContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Location is a named place resolved or created on acceptance.
type Location struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	Key       string `json:"key"`
}
