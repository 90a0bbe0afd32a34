package entities

import "time"

type PrefacturaState string

const (
	PrefacturaPending  PrefacturaState = "pending"
	PrefacturaAccepted PrefacturaState = "accepted"
	PrefacturaRejected PrefacturaState = "rejected"
)

// Prefactura is the pre-invoice attached to one or more requests. A
// multi-request pre-invoice is copied into every grouped request with the
// same Number and RequestIDs.
type Prefactura struct {
	Number      string          `json:"number"`
	RequestIDs  []string        `json:"request_ids"`
	State       PrefacturaState `json:"state"`
	GeneratedBy string          `json:"generated_by"`
	GeneratedAt time.Time       `json:"generated_at"`

	Approved   bool       `json:"approved"`
	ApprovedBy string     `json:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`

	RejectedBy      string     `json:"rejected_by,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`

	SentToClient bool       `json:"sent_to_client"`
	SentCount    int        `json:"sent_count"`
	LastSentAt   *time.Time `json:"last_sent_at,omitempty"`

	ClientApprovedBy string     `json:"client_approved_by,omitempty"`
	ClientApprovedAt *time.Time `json:"client_approved_at,omitempty"`
	ClientNote       string     `json:"client_note,omitempty"`
}

// DeliveryEvent names an entry of the pre-invoice delivery history.
type DeliveryEvent string

const (
	DeliverySent           DeliveryEvent = "sent_to_client"
	DeliveryClientApproved DeliveryEvent = "client_approved"
	DeliveryClientRejected DeliveryEvent = "client_rejected"
)

// PrefacturaDelivery is an insert-only history entry keyed by request id.
// State is the pre-invoice state after the event.
type PrefacturaDelivery struct {
	ID               string          `json:"id"`
	RequestID        string          `json:"request_id"`
	PrefacturaNumber string          `json:"prefactura_number"`
	Event            DeliveryEvent   `json:"event"`
	State            PrefacturaState `json:"state"`
	ActorID          string          `json:"actor_id"`
	Note             string          `json:"note,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}
