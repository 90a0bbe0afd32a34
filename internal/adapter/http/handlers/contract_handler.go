package handlers

import (
	"net/http"

	request "transporte_xpto/internal/adapter/http/dto/request"
	response "transporte_xpto/internal/adapter/http/dto/response"
	"transporte_xpto/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ContractHandler struct {
	usecase usecase.IContractLedgerUseCase
}

func NewContractHandler(uc usecase.IContractLedgerUseCase) *ContractHandler {
	return &ContractHandler{usecase: uc}
}

func (h *ContractHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var payload request.CreateContractRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	contract, err := h.usecase.CreateContract(c.Request.Context(), actor, payload.ToInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromContract(contract))
}

func (h *ContractHandler) Get(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	contract, err := h.usecase.GetContract(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromContract(contract))
}

func (h *ContractHandler) Update(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var payload request.UpdateContractRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	contract, err := h.usecase.UpdateContract(c.Request.Context(), actor, c.Param("id"), payload.ToInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromContract(contract))
}

func (h *ContractHandler) Charge(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var payload request.ChargeRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	contract, err := h.usecase.Charge(c.Request.Context(), actor, payload.ToInput(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromContract(contract))
}

func (h *ContractHandler) History(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	entries, err := h.usecase.History(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *ContractHandler) EstimatePrice(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var payload request.EstimatePriceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	in := payload.ToInput()
	price, err := h.usecase.EstimatePrice(c.Request.Context(), actor, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.EstimateResponse{Mode: in.Mode, Price: price})
}
