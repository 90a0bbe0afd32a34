package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"transporte_xpto/internal/domain/entities"
	"transporte_xpto/internal/domain/lifecycle"
	"transporte_xpto/internal/usecase/interfaces"
	"transporte_xpto/pkg"

	"go.uber.org/zap"
)

var (
	ErrServiceRequestNotFound = pkg.NotFound("SERVICE_REQUEST_NOT_FOUND", "service request not found")
	ErrContractNotFound       = pkg.NotFound("CONTRACT_NOT_FOUND", "contract not found")
	ErrClientNotFound         = pkg.NotFound("CLIENT_NOT_FOUND", "client not found")
	ErrInvalidID              = pkg.Validation("INVALID_ID", "id is required")
	ErrConcurrentModification = pkg.Conflict("CONCURRENT_UPDATE", "the resource was modified by another operation, retry")
	ErrRequestNotVisible      = pkg.Forbidden("REQUEST_NOT_VISIBLE", "request belongs to another client")
	ErrCrossCompany           = pkg.Forbidden("CROSS_COMPANY", "resource belongs to another company")
)

func clock() time.Time {
	return time.Now().UTC()
}

func orNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// persistErr turns a repository failure into a domain error.
func persistErr(message string, err error) error {
	if errors.Is(err, interfaces.ErrConcurrentUpdate) {
		return ErrConcurrentModification
	}
	return pkg.Wrap(message, err)
}

func requireID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrInvalidID
	}
	return id, nil
}

// loadRequest reads a request visible to actor. Clients only see their own
// requests and everybody is scoped to their company.
func loadRequest(ctx context.Context, repo interfaces.IServiceRequestRepository, actor entities.Actor, id string) (entities.ServiceRequest, error) {
	id, err := requireID(id)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	req, err := repo.GetByID(ctx, id)
	if err != nil {
		return entities.ServiceRequest{}, pkg.Wrap("failed to load service request", err)
	}
	if req.ID == "" {
		return entities.ServiceRequest{}, ErrServiceRequestNotFound
	}
	if actor.CompanyID != "" && req.CompanyID != actor.CompanyID {
		return entities.ServiceRequest{}, ErrServiceRequestNotFound
	}
	if actor.Role == entities.RoleClient && !req.IsOwnedBy(actor.ClientID) {
		return entities.ServiceRequest{}, ErrRequestNotVisible
	}
	return req, nil
}

func requireInternal(actor entities.Actor) error {
	if !actor.IsInternal() {
		return lifecycle.ErrNotAllowed.WithMessage("role %q not allowed for this operation", actor.Role)
	}
	return nil
}

// notifier wraps INotifier so that delivery failures are only logged.
type notifier struct {
	target interfaces.INotifier
	logger *zap.Logger
}

func (n notifier) send(ctx context.Context, event entities.NotificationEvent, req entities.ServiceRequest, data map[string]string, roles ...entities.Role) {
	if n.target == nil {
		return
	}
	audience := make([]string, 0, len(roles)+1)
	if req.ClientID != "" {
		audience = append(audience, entities.ClientAudience(req.ClientID))
	}
	for _, r := range roles {
		audience = append(audience, entities.RoleAudience(r))
	}
	msg := entities.Notification{
		Event:     event,
		CompanyID: req.CompanyID,
		RequestID: req.ID,
		Audience:  audience,
		Data:      data,
		CreatedAt: clock(),
	}
	if err := n.target.Notify(ctx, msg); err != nil {
		n.logger.Warn("notification not delivered",
			zap.String("event", string(event)),
			zap.String("request_id", req.ID),
			zap.Error(err))
	}
}
