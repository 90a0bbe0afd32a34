package handlers

import (
	"net/http"

	request "transporte_xpto/internal/adapter/http/dto/request"
	response "transporte_xpto/internal/adapter/http/dto/response"
	"transporte_xpto/internal/domain/entities"
	"transporte_xpto/internal/usecase"

	"github.com/gin-gonic/gin"
)

// ServiceRequestHandler exposes the request lifecycle. Every response is
// projected for the caller role.
type ServiceRequestHandler struct {
	usecase usecase.IServiceRequestUseCase
}

func NewServiceRequestHandler(uc usecase.IServiceRequestUseCase) *ServiceRequestHandler {
	return &ServiceRequestHandler{usecase: uc}
}

func (h *ServiceRequestHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var payload request.CreateServiceRequestRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	req, err := h.usecase.CreateByClient(c.Request.Context(), actor, payload.ToInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.ServiceRequestForRole(actor.Role, req, nil))
}

// CreateAccepted registers a request on behalf of a client and accepts it in
// the same call.
func (h *ServiceRequestHandler) CreateAccepted(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var payload request.CoordinatorCreateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	req, err := h.usecase.CreateByCoordinator(c.Request.Context(), actor, payload.ToInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.ServiceRequestForRole(actor.Role, req, nil))
}

func (h *ServiceRequestHandler) Get(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	details, err := h.usecase.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.ServiceRequestForRole(actor.Role, details.Request, details.PaymentSection))
}

func (h *ServiceRequestHandler) Accept(c *gin.Context) {
	var payload request.AcceptRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}
	h.respond(c, func(actor entities.Actor) (entities.ServiceRequest, error) {
		return h.usecase.Accept(c.Request.Context(), actor, c.Param("id"), payload.ToInput())
	})
}

func (h *ServiceRequestHandler) Reject(c *gin.Context) {
	var payload request.RejectRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}
	h.respond(c, func(actor entities.Actor) (entities.ServiceRequest, error) {
		return h.usecase.Reject(c.Request.Context(), actor, c.Param("id"), payload.Reason)
	})
}

func (h *ServiceRequestHandler) AssignVehicles(c *gin.Context) {
	var payload request.AssignVehiclesRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}
	h.respond(c, func(actor entities.Actor) (entities.ServiceRequest, error) {
		return h.usecase.AssignVehicles(c.Request.Context(), actor, c.Param("id"), payload.ToInput())
	})
}

func (h *ServiceRequestHandler) Start(c *gin.Context) {
	h.respond(c, func(actor entities.Actor) (entities.ServiceRequest, error) {
		return h.usecase.Start(c.Request.Context(), actor, c.Param("id"))
	})
}

func (h *ServiceRequestHandler) Finish(c *gin.Context) {
	var payload request.FinishRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}
	h.respond(c, func(actor entities.Actor) (entities.ServiceRequest, error) {
		return h.usecase.Finish(c.Request.Context(), actor, c.Param("id"), payload.ToInput())
	})
}

func (h *ServiceRequestHandler) UpdateFinancials(c *gin.Context) {
	var payload request.FinancialsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}
	h.respond(c, func(actor entities.Actor) (entities.ServiceRequest, error) {
		return h.usecase.UpdateFinancials(c.Request.Context(), actor, c.Param("id"), payload.ToInput())
	})
}

func (h *ServiceRequestHandler) UpdateVehicleAccounting(c *gin.Context) {
	var payload request.VehicleAccountingRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}
	h.respond(c, func(actor entities.Actor) (entities.ServiceRequest, error) {
		return h.usecase.UpdateVehicleAccounting(c.Request.Context(), actor, c.Param("id"), c.Param("vehicleId"), payload.ToInput())
	})
}

// RecomputeSettlement rebuilds totals and the payment section from the
// expense ledger. Role checks happen at the route.
func (h *ServiceRequestHandler) RecomputeSettlement(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	details, err := h.usecase.RecomputeSettlement(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.ServiceRequestForRole(actor.Role, details.Request, details.PaymentSection))
}

func (h *ServiceRequestHandler) respond(c *gin.Context, run func(actor entities.Actor) (entities.ServiceRequest, error)) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	req, err := run(actor)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.ServiceRequestForRole(actor.Role, req, nil))
}
