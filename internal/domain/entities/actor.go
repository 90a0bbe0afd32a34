package entities

// Role is the caller role resolved by the authentication collaborator.
type Role string

const (
	RoleClient                Role = "client"
	RoleSales                 Role = "sales"
	RoleOperationsCoordinator Role = "operations_coordinator"
	RoleAccounting            Role = "accounting"
	RoleAdmin                 Role = "admin"
	RoleSuperAdmin            Role = "superadmin"
)

// Actor is the authenticated caller of an operation.
//
// ClientID is only set for RoleClient and identifies the client the caller
// acts for. CompanyID scopes every operation to one transport company.
type Actor struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	ClientID  string `json:"client_id,omitempty"`
	CompanyID string `json:"company_id"`
}

// HasRole reports whether the actor holds any of roles.
func (a Actor) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}

// IsInternal reports whether the actor belongs to the transport company.
func (a Actor) IsInternal() bool {
	return a.Role != RoleClient && a.Role != ""
}
