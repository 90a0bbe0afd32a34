package prefactura

import (
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"transporte_xpto/internal/domain/entities"
	"transporte_xpto/pkg"
)

var (
	ErrNotReady           = pkg.Validation("PREFACTURA_NOT_READY", "request is already past pre-invoice generation")
	ErrAmountsUndefined   = pkg.Validation("PREFACTURA_AMOUNTS_UNDEFINED", "amount to bill and amount paid must be defined")
	ErrMissingExpenses    = pkg.Validation("PREFACTURA_MISSING_EXPENSES", "some vehicles have no expenses")
	ErrAlreadyGenerated   = pkg.Validation("PREFACTURA_ALREADY_GENERATED", "request already has a pre-invoice")
	ErrNotGenerated       = pkg.Validation("PREFACTURA_NOT_GENERATED", "request has no pre-invoice")
	ErrAlreadyApproved    = pkg.Validation("PREFACTURA_ALREADY_APPROVED", "pre-invoice already approved")
	ErrRejected           = pkg.Validation("PREFACTURA_REJECTED", "pre-invoice has been rejected")
	ErrNotSent            = pkg.Validation("PREFACTURA_NOT_SENT", "pre-invoice has not been sent to the client")
	ErrAlreadyInvoiced    = pkg.Validation("REQUEST_ALREADY_INVOICED", "request has already been invoiced")
	ErrMixedClients       = pkg.Validation("PREFACTURA_MIXED_CLIENTS", "grouped requests must share one client")
	ErrNoRequests         = pkg.Validation("PREFACTURA_NO_REQUESTS", "at least one request is required")
	ErrNotOwner           = pkg.Forbidden("PREFACTURA_NOT_OWNER", "only the owning client can answer this pre-invoice")
	ErrReasonRequired     = pkg.Validation("REJECTION_REASON_REQUIRED", "a rejection reason is required")
	ErrNotReadyToInvoice  = pkg.Validation("REQUEST_NOT_READY_TO_INVOICE", "request is not ready to invoice")
	ErrMissingSubDocument = pkg.Validation("VEHICLE_DOCUMENTS_MISSING", "vehicle needs both pre-invoice and pre-settlement before invoicing")
)

// CleanClientName uppercases name, joins its words with single underscores
// and keeps only A-Z, 0-9 and underscores, without leading or trailing
// underscores.
func CleanClientName(name string) string {
	var b strings.Builder
	for _, r := range strings.Join(strings.Fields(strings.ToUpper(name)), "_") {
		if r == '_' || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "_")
}

// Number returns the document number for one request.
func Number(sequence, clientName string) string {
	return "PREF_" + sequence + "_" + CleanClientName(clientName)
}

// MultiNumber returns the document number for grouped requests, spanning
// the lowest to the highest sequence number.
func MultiNumber(sequences []string, clientName string) string {
	sorted := append([]string(nil), sequences...)
	sort.SliceStable(sorted, func(i, j int) bool { return LessSequence(sorted[i], sorted[j]) })
	return "PREF_MULTI_" + sorted[0] + "-" + sorted[len(sorted)-1] + "_" + CleanClientName(clientName)
}

// LessSequence orders sequence numbers by their numeric suffix when both
// have one and share the prefix, by plain string order otherwise.
func LessSequence(a, b string) bool {
	pa, na, okA := splitSequence(a)
	pb, nb, okB := splitSequence(b)
	if okA && okB && pa == pb && na != nb {
		return na < nb
	}
	return a < b
}

func splitSequence(s string) (string, int64, bool) {
	i := len(s)
	for i > 0 && unicode.IsDigit(rune(s[i-1])) {
		i--
	}
	if i == len(s) {
		return s, 0, false
	}
	n, err := strconv.ParseInt(s[i:], 10, 64)
	if err != nil {
		return s, 0, false
	}
	return s[:i], n, true
}

// CheckGenerable verifies a request can receive a pre-invoice: both
// amounts defined (zero is fine), an expense for every vehicle and no live
// pre-invoice. missingPlates lists vehicles with no expense lines.
func CheckGenerable(req entities.ServiceRequest, missingPlates []string) error {
	if req.Prefactura != nil && req.Prefactura.State != entities.PrefacturaRejected {
		return ErrAlreadyGenerated.WithMessage("request %s already has pre-invoice %s", req.SequenceNumber, req.Prefactura.Number)
	}
	if !req.AmountToBill.Valid || !req.AmountPaid.Valid {
		return ErrAmountsUndefined.WithMessage("request %s: amount to bill and amount paid must be defined", req.SequenceNumber)
	}
	if len(missingPlates) > 0 {
		return ErrMissingExpenses.WithMessage("request %s has vehicles without expenses: %s", req.SequenceNumber, strings.Join(missingPlates, ", "))
	}
	if req.AccountingStatus.Rank() >= entities.AccountingPreInvoicePending.Rank() {
		return ErrNotReady.WithMessage("request %s accounting is %s", req.SequenceNumber, req.AccountingStatus)
	}
	return nil
}

// Generate attaches a fresh pre-invoice to every request of the group. The
// caller has already checked each request with CheckGenerable.
func Generate(reqs []*entities.ServiceRequest, actor entities.Actor, now time.Time) (string, error) {
	if len(reqs) == 0 {
		return "", ErrNoRequests
	}
	clientID := reqs[0].ClientID
	ids := make([]string, 0, len(reqs))
	seqs := make([]string, 0, len(reqs))
	for _, r := range reqs {
		if r.ClientID != clientID {
			return "", ErrMixedClients
		}
		ids = append(ids, r.ID)
		seqs = append(seqs, r.SequenceNumber)
	}

	number := Number(reqs[0].SequenceNumber, reqs[0].ClientName)
	if len(reqs) > 1 {
		number = MultiNumber(seqs, reqs[0].ClientName)
	}

	for _, r := range reqs {
		r.Prefactura = &entities.Prefactura{
			Number:      number,
			RequestIDs:  append([]string(nil), ids...),
			State:       entities.PrefacturaPending,
			GeneratedBy: actor.ID,
			GeneratedAt: now,
		}
		r.AccountingStatus = entities.AccountingPreInvoicePending
		r.UpdatedAt = now
	}
	return number, nil
}

// Approve records the internal approval. With resend an already approved
// pre-invoice is accepted again without re-stamping; the returned flag
// tells whether anything changed.
func Approve(req *entities.ServiceRequest, actor entities.Actor, resend bool, now time.Time) (bool, error) {
	p, err := live(req)
	if err != nil {
		return false, err
	}
	return approve(req, p, actor, resend, now)
}

func approve(req *entities.ServiceRequest, p *entities.Prefactura, actor entities.Actor, resend bool, now time.Time) (bool, error) {
	if p.Approved {
		if !resend {
			return false, ErrAlreadyApproved
		}
		return false, nil
	}
	p.Approved = true
	p.ApprovedBy = actor.ID
	p.ApprovedAt = &now
	p.State = entities.PrefacturaAccepted
	advanceTo(req, entities.AccountingReadyToInvoice)
	req.UpdatedAt = now
	return true, nil
}

// Reject marks the pre-invoice rejected and rolls accounting back to
// expenses_complete so it can be regenerated.
func Reject(req *entities.ServiceRequest, actor entities.Actor, reason string, now time.Time) error {
	p, err := live(req)
	if err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrReasonRequired
	}
	p.State = entities.PrefacturaRejected
	p.Approved = false
	p.RejectedBy = actor.ID
	p.RejectedAt = &now
	p.RejectionReason = reason
	req.AccountingStatus = entities.AccountingExpensesComplete
	req.UpdatedAt = now
	return nil
}

// Send marks the pre-invoice as delivered to the client. It may be sent
// more than once.
func Send(req *entities.ServiceRequest, now time.Time) error {
	p, err := live(req)
	if err != nil {
		return err
	}
	p.SentToClient = true
	p.SentCount++
	p.LastSentAt = &now
	req.UpdatedAt = now
	return nil
}

// ClientApprove records the client's acceptance of a sent pre-invoice. It
// approves the pre-invoice exactly like Approve and also keeps who answered
// on the client side.
func ClientApprove(req *entities.ServiceRequest, actor entities.Actor, note string, resend bool, now time.Time) (bool, error) {
	p, err := answerable(req, actor)
	if err != nil {
		return false, err
	}
	changed, err := approve(req, p, actor, resend, now)
	if err != nil || !changed {
		return false, err
	}
	p.ClientApprovedBy = actor.ID
	p.ClientApprovedAt = &now
	p.ClientNote = strings.TrimSpace(note)
	return true, nil
}

// ClientReject records the client's rejection with the same effect as an
// internal rejection.
func ClientReject(req *entities.ServiceRequest, actor entities.Actor, reason string, now time.Time) error {
	if _, err := answerable(req, actor); err != nil {
		return err
	}
	if err := Reject(req, actor, reason, now); err != nil {
		return err
	}
	req.Prefactura.ClientNote = strings.TrimSpace(reason)
	return nil
}

// CheckInvoiceable verifies that vehicle a of req can receive the final
// invoice number.
func CheckInvoiceable(req entities.ServiceRequest, a entities.VehicleAssignment) error {
	if req.AccountingStatus == entities.AccountingInvoiced {
		return ErrAlreadyInvoiced
	}
	if req.AccountingStatus != entities.AccountingReadyToInvoice {
		return ErrNotReadyToInvoice
	}
	if a.Accounting.PreInvoice == nil || a.Accounting.PreSettlement == nil {
		return ErrMissingSubDocument.WithMessage("vehicle %s needs both pre-invoice and pre-settlement before invoicing", a.Plate)
	}
	return nil
}

// FullyInvoiced reports whether every assigned vehicle has an invoice
// number.
func FullyInvoiced(req entities.ServiceRequest) bool {
	if len(req.VehicleAssignments) == 0 {
		return false
	}
	for _, a := range req.VehicleAssignments {
		if a.Accounting.InvoiceNumber == "" {
			return false
		}
	}
	return true
}

func live(req *entities.ServiceRequest) (*entities.Prefactura, error) {
	if req.Prefactura == nil {
		return nil, ErrNotGenerated
	}
	if req.Prefactura.State == entities.PrefacturaRejected {
		return nil, ErrRejected
	}
	if req.AccountingStatus == entities.AccountingInvoiced {
		return nil, ErrAlreadyInvoiced
	}
	return req.Prefactura, nil
}

func answerable(req *entities.ServiceRequest, actor entities.Actor) (*entities.Prefactura, error) {
	if actor.Role != entities.RoleClient || !req.IsOwnedBy(actor.ClientID) {
		return nil, ErrNotOwner
	}
	p, err := live(req)
	if err != nil {
		return nil, err
	}
	if !p.SentToClient {
		return nil, ErrNotSent
	}
	return p, nil
}

func advanceTo(req *entities.ServiceRequest, status entities.AccountingStatus) {
	if req.AccountingStatus.Rank() < status.Rank() {
		req.AccountingStatus = status
	}
}
