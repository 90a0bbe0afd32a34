package handlers

import (
	"errors"
	"net/http"

	"transporte_xpto/internal/adapter/http/middleware"
	"transporte_xpto/internal/domain/entities"
	"transporte_xpto/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request payload", http.StatusBadRequest)
	errInvalidQuery   = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid query parameters", http.StatusBadRequest)
)

// mapError keeps domain errors as they are. Internal errors answer 500 with
// the fixed message of the failed operation, and errors that are not
// AppErrors get a generic one.
func mapError(err error) *pkg.AppError {
	var appErr *pkg.AppError
	if !errors.As(err, &appErr) {
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
	if appErr.Kind != pkg.KindInternal {
		return appErr
	}
	return pkg.NewDomainError("INTERNAL_ERROR", appErr.Message, err, http.StatusInternalServerError)
}

func writeError(c *gin.Context, err error) {
	appErr := mapError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// requireActor reads the authenticated caller or answers 401.
func requireActor(c *gin.Context) (entities.Actor, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.AbortWithStatusJSON(middleware.ErrMissingToken.HTTPStatus, middleware.ErrMissingToken.ToHTTPError())
	}
	return actor, ok
}
