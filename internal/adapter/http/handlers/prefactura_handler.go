package handlers

import (
	"net/http"

	request "transporte_xpto/internal/adapter/http/dto/request"
	response "transporte_xpto/internal/adapter/http/dto/response"
	"transporte_xpto/internal/domain/entities"
	"transporte_xpto/internal/usecase"

	"github.com/gin-gonic/gin"
)

// PrefacturaHandler exposes the pre-invoice workflow. Routes address a
// pre-invoice through any of its grouped request ids.
type PrefacturaHandler struct {
	usecase usecase.IPrefacturaUseCase
}

func NewPrefacturaHandler(uc usecase.IPrefacturaUseCase) *PrefacturaHandler {
	return &PrefacturaHandler{usecase: uc}
}

func (h *PrefacturaHandler) Generate(c *gin.Context) {
	var payload request.GeneratePrefacturaRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}
	h.respond(c, http.StatusCreated, func(actor entities.Actor) ([]entities.ServiceRequest, error) {
		return h.usecase.Generate(c.Request.Context(), actor, usecase.GenerateInput{RequestIDs: payload.RequestIDs})
	})
}

func (h *PrefacturaHandler) Approve(c *gin.Context) {
	var payload request.ApprovePrefacturaRequest
	if !bindOptionalJSON(c, &payload) {
		return
	}
	h.respond(c, http.StatusOK, func(actor entities.Actor) ([]entities.ServiceRequest, error) {
		return h.usecase.Approve(c.Request.Context(), actor, c.Param("id"), usecase.ApproveInput{Resend: payload.Resend})
	})
}

func (h *PrefacturaHandler) Reject(c *gin.Context) {
	var payload request.RejectRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}
	h.respond(c, http.StatusOK, func(actor entities.Actor) ([]entities.ServiceRequest, error) {
		return h.usecase.Reject(c.Request.Context(), actor, c.Param("id"), usecase.RejectInput{Reason: payload.Reason})
	})
}

func (h *PrefacturaHandler) Send(c *gin.Context) {
	var payload request.SendPrefacturaRequest
	if !bindOptionalJSON(c, &payload) {
		return
	}
	h.respond(c, http.StatusOK, func(actor entities.Actor) ([]entities.ServiceRequest, error) {
		return h.usecase.SendToClient(c.Request.Context(), actor, c.Param("id"), usecase.SendInput{Note: payload.Note})
	})
}

func (h *PrefacturaHandler) ClientApprove(c *gin.Context) {
	var payload request.ClientAnswerRequest
	if !bindOptionalJSON(c, &payload) {
		return
	}
	h.respond(c, http.StatusOK, func(actor entities.Actor) ([]entities.ServiceRequest, error) {
		return h.usecase.ClientApprove(c.Request.Context(), actor, c.Param("id"), usecase.ClientApproveInput{Note: payload.Note, Resend: payload.Resend})
	})
}

func (h *PrefacturaHandler) ClientReject(c *gin.Context) {
	var payload request.ClientAnswerRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}
	h.respond(c, http.StatusOK, func(actor entities.Actor) ([]entities.ServiceRequest, error) {
		return h.usecase.ClientReject(c.Request.Context(), actor, c.Param("id"), payload.Reason)
	})
}

func (h *PrefacturaHandler) Deliveries(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	entries, err := h.usecase.Deliveries(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *PrefacturaHandler) respond(c *gin.Context, status int, run func(actor entities.Actor) ([]entities.ServiceRequest, error)) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	reqs, err := run(actor)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(status, response.ServiceRequestsForRole(actor.Role, reqs))
}

// bindOptionalJSON accepts an empty body.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return false
	}
	return true
}
