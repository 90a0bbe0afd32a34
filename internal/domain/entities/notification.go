package entities

import "time"

// NotificationEvent names a lifecycle event pushed to connected users.
type NotificationEvent string

const (
	EventRequestCreated       NotificationEvent = "request.created"
	EventRequestAccepted      NotificationEvent = "request.accepted"
	EventRequestRejected      NotificationEvent = "request.rejected"
	EventRequestStarted       NotificationEvent = "request.started"
	EventRequestFinished      NotificationEvent = "request.finished"
	EventVehiclesAssigned     NotificationEvent = "request.vehicles_assigned"
	EventRequestInvoiced      NotificationEvent = "request.invoiced"
	EventPrefacturaGenerated  NotificationEvent = "prefactura.generated"
	EventPrefacturaApproved   NotificationEvent = "prefactura.approved"
	EventPrefacturaRejected   NotificationEvent = "prefactura.rejected"
	EventPrefacturaSent       NotificationEvent = "prefactura.sent"
	EventPrefacturaClientOK   NotificationEvent = "prefactura.client_approved"
	EventPrefacturaClientDeny NotificationEvent = "prefactura.client_rejected"
)

// Audience keys understood by the notifier.
func ClientAudience(clientID string) string { return "client:" + clientID }
func RoleAudience(role Role) string { return "role:" + string(role) }

// Notification is a best-effort message about a request. Delivery is never
// guaranteed.
type Notification struct {
	Event     NotificationEvent `json:"event"`
	CompanyID string            `json:"company_id"`
	RequestID string            `json:"request_id"`
	Audience  []string          `json:"-"`
	Data      map[string]string `json:"data,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
