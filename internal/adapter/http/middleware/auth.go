package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"transporte_xpto/internal/domain/entities"
	"transporte_xpto/pkg"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const actorKey = "actor"

var (
	ErrMissingToken = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Authorization header is required", http.StatusUnauthorized)
	ErrInvalidToken = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Invalid or expired token", http.StatusUnauthorized)
)

// Claims is the token payload issued by the identity service.
type Claims struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	ClientID  string `json:"client_id,omitempty"`
	CompanyID string `json:"company_id"`
	jwt.RegisteredClaims
}

// Actor converts the claims into the caller of an operation.
func (c Claims) Actor() entities.Actor {
	return entities.Actor{
		ID:        c.Subject,
		Name:      c.Name,
		Role:      entities.Role(c.Role),
		ClientID:  c.ClientID,
		CompanyID: c.CompanyID,
	}
}

// Authenticator validates HS256 bearer tokens.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// ParseToken validates a raw token and returns its actor.
func (a *Authenticator) ParseToken(raw string) (entities.Actor, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return entities.Actor{}, fmt.Errorf("parse token: %w", errors.Join(ErrInvalidToken, err))
	}
	actor := claims.Actor()
	if actor.ID == "" || actor.Role == "" || actor.CompanyID == "" {
		return entities.Actor{}, ErrInvalidToken
	}
	if actor.Role == entities.RoleClient && actor.ClientID == "" {
		return entities.Actor{}, ErrInvalidToken
	}
	return actor, nil
}

// IssueToken signs a token for actor. It backs local tooling and tests.
func (a *Authenticator) IssueToken(actor entities.Actor, ttl time.Duration) (string, error) {
	claims := Claims{
		Name:      actor.Name,
		Role:      string(actor.Role),
		ClientID:  actor.ClientID,
		CompanyID: actor.CompanyID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Authenticate rejects requests without a valid bearer token and stores the
// actor in the gin context.
func (a *Authenticator) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(ErrMissingToken.HTTPStatus, ErrMissingToken.ToHTTPError())
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")
		if raw == header {
			c.AbortWithStatusJSON(ErrInvalidToken.HTTPStatus, ErrInvalidToken.ToHTTPError())
			return
		}

		actor, err := a.ParseToken(raw)
		if err != nil {
			c.AbortWithStatusJSON(ErrInvalidToken.HTTPStatus, ErrInvalidToken.ToHTTPError())
			return
		}
		SetActor(c, actor)
		c.Next()
	}
}

func SetActor(c *gin.Context, actor entities.Actor) {
	c.Set(actorKey, actor)
}

// ActorFrom returns the actor stored by Authenticate.
func ActorFrom(c *gin.Context) (entities.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return entities.Actor{}, false
	}
	actor, ok := v.(entities.Actor)
	return actor, ok
}
