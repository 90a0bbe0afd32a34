package handlers

import (
	"net/http"
	"slices"
	"time"

	"transporte_xpto/internal/adapter/http/middleware"
	"transporte_xpto/internal/domain/entities"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const pongWait = 60 * time.Second

// TokenParser resolves the query string token of a websocket handshake.
type TokenParser interface {
	ParseToken(raw string) (entities.Actor, error)
}

// Subscriptions tracks open notification connections.
type Subscriptions interface {
	Register(actor entities.Actor, conn *websocket.Conn)
	Unregister(conn *websocket.Conn)
}

// NotificationsHandler upgrades authenticated callers to a websocket that
// receives lifecycle notifications. Browsers cannot set headers on the
// handshake, so the token travels in the query string.
type NotificationsHandler struct {
	subs     Subscriptions
	tokens   TokenParser
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewNotificationsHandler accepts handshakes from allowedOrigins, or from
// any origin when the list contains "*".
func NewNotificationsHandler(subs Subscriptions, tokens TokenParser, allowedOrigins []string, logger *zap.Logger) *NotificationsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationsHandler{
		subs:   subs,
		tokens: tokens,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)
			},
		},
		logger: logger.Named("handlers.notifications"),
	}
}

func (h *NotificationsHandler) ServeWs(c *gin.Context) {
	raw := c.Query("token")
	if raw == "" {
		c.JSON(middleware.ErrMissingToken.HTTPStatus, middleware.ErrMissingToken.ToHTTPError())
		return
	}
	actor, err := h.tokens.ParseToken(raw)
	if err != nil {
		c.JSON(middleware.ErrInvalidToken.HTTPStatus, middleware.ErrInvalidToken.ToHTTPError())
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	h.subs.Register(actor, conn)
	defer func() {
		h.subs.Unregister(conn)
		_ = conn.Close()
	}()

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPingHandler(func(data string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(time.Second))
	})
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Incoming messages are ignored; the loop only detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket closed", zap.String("actor_id", actor.ID), zap.Error(err))
			}
			return
		}
	}
}
