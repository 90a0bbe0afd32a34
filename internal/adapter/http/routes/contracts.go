package routes

import (
	"transporte_xpto/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const PathContracts = "/contracts"

func addContractRoutes(rg *gin.RouterGroup, h *handlers.ContractHandler) {
	contracts := rg.Group(PathContracts)
	{
		contracts.POST("", h.Create)
		contracts.POST("/estimate", h.EstimatePrice)
		contracts.GET("/:id", h.Get)
		contracts.PATCH("/:id", h.Update)
		contracts.POST("/:id/charges", h.Charge)
		contracts.GET("/:id/history", h.History)
	}
}
