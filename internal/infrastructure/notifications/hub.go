package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"transporte_xpto/internal/domain/entities"
	"transporte_xpto/internal/usecase/interfaces"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeWait = 10 * time.Second

// subscriber is one open connection together with the audiences its actor
// belongs to.
type subscriber struct {
	actor     entities.Actor
	audiences map[string]bool
	conn      *websocket.Conn
	// gorilla connections support a single concurrent writer.
	mu sync.Mutex
}

func (s *subscriber) wants(n entities.Notification) bool {
	if s.actor.Role != entities.RoleSuperAdmin && s.actor.CompanyID != n.CompanyID {
		return false
	}
	for _, a := range n.Audience {
		if s.audiences[a] {
			return true
		}
	}
	return false
}

func (s *subscriber) write(payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, payload)
}

// Hub fans lifecycle notifications out to connected users. It implements
// interfaces.INotifier.
type Hub struct {
	mu     sync.RWMutex
	subs   map[*websocket.Conn]*subscriber
	logger *zap.Logger
}

var _ interfaces.INotifier = (*Hub)(nil)

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		subs:   make(map[*websocket.Conn]*subscriber),
		logger: logger.Named("notifications.hub"),
	}
}

// Audiences lists the notification audiences an actor receives.
func Audiences(actor entities.Actor) []string {
	out := []string{entities.RoleAudience(actor.Role)}
	if actor.Role == entities.RoleClient && actor.ClientID != "" {
		out = append(out, entities.ClientAudience(actor.ClientID))
	}
	return out
}

func (h *Hub) Register(actor entities.Actor, conn *websocket.Conn) {
	audiences := map[string]bool{}
	for _, a := range Audiences(actor) {
		audiences[a] = true
	}
	h.mu.Lock()
	h.subs[conn] = &subscriber{actor: actor, audiences: audiences, conn: conn}
	total := len(h.subs)
	h.mu.Unlock()
	h.logger.Debug("websocket client registered",
		zap.String("user_id", actor.ID),
		zap.String("role", string(actor.Role)),
		zap.Int("connections", total))
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	sub, ok := h.subs[conn]
	delete(h.subs, conn)
	h.mu.Unlock()
	if ok {
		h.logger.Debug("websocket client unregistered", zap.String("user_id", sub.actor.ID))
	}
}

// Connections returns the number of open connections.
func (h *Hub) Connections() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Notify writes n to every matching connection. Users that are offline
// simply miss it. The returned error joins the failed writes.
func (h *Hub) Notify(ctx context.Context, n entities.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}

	h.mu.RLock()
	targets := make([]*subscriber, 0, len(h.subs))
	for _, s := range h.subs {
		if s.wants(n) {
			targets = append(targets, s)
		}
	}
	h.mu.RUnlock()

	var errs []error
	for _, s := range targets {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		if err := s.write(payload); err != nil {
			errs = append(errs, err)
		}
	}
	h.logger.Debug("notification dispatched",
		zap.String("event", string(n.Event)),
		zap.String("request_id", n.RequestID),
		zap.Int("recipients", len(targets)),
		zap.Int("failures", len(errs)))
	return errors.Join(errs...)
}
