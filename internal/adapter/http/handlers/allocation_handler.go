package handlers

import (
	"net/http"

	request "transporte_xpto/internal/adapter/http/dto/request"
	response "transporte_xpto/internal/adapter/http/dto/response"
	"transporte_xpto/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AllocationHandler struct {
	usecase usecase.IAllocationUseCase
}

func NewAllocationHandler(uc usecase.IAllocationUseCase) *AllocationHandler {
	return &AllocationHandler{usecase: uc}
}

func (h *AllocationHandler) CheckAvailability(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var q request.AvailabilityRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(errInvalidQuery.HTTPStatus, errInvalidQuery.ToHTTPError())
		return
	}

	results, err := h.usecase.CheckAvailability(c.Request.Context(), actor, q.ToQuery())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromAvailability(results))
}

func (h *AllocationHandler) Suggest(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var q request.SuggestRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(errInvalidQuery.HTTPStatus, errInvalidQuery.ToHTTPError())
		return
	}

	plan, err := h.usecase.Suggest(c.Request.Context(), actor, q.ToQuery())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *AllocationHandler) FindAvailable(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var q request.FindAvailableRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(errInvalidQuery.HTTPStatus, errInvalidQuery.ToHTTPError())
		return
	}

	plan, err := h.usecase.FindAvailable(c.Request.Context(), actor, q.ToQuery())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}
