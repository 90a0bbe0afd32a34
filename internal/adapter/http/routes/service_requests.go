package routes

import (
	"transporte_xpto/internal/adapter/http/handlers"
	"transporte_xpto/internal/adapter/http/middleware"
	"transporte_xpto/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

const (
	PathServiceRequests = "/service-requests"
	PathAvailability    = "/availability"
	PathAllocation      = "/allocation"
)

// Roles allowed to rebuild a settlement from the expense ledger.
var settlementRoles = []entities.Role{
	entities.RoleOperationsCoordinator,
	entities.RoleAccounting,
	entities.RoleAdmin,
	entities.RoleSuperAdmin,
}

func addServiceRequestRoutes(rg *gin.RouterGroup, h *handlers.ServiceRequestHandler) {
	requests := rg.Group(PathServiceRequests)
	{
		requests.POST("", h.Create)
		requests.POST("/accepted", h.CreateAccepted)
		requests.GET("/:id", h.Get)
		requests.POST("/:id/accept", h.Accept)
		requests.POST("/:id/reject", h.Reject)
		requests.PUT("/:id/vehicles", h.AssignVehicles)
		requests.POST("/:id/start", h.Start)
		requests.POST("/:id/finish", h.Finish)
		requests.PATCH("/:id/financials", h.UpdateFinancials)
		requests.PATCH("/:id/vehicles/:vehicleId/accounting", h.UpdateVehicleAccounting)
		requests.POST("/:id/settlement", middleware.RequireRoles(settlementRoles...), h.RecomputeSettlement)
	}
}

func addAllocationRoutes(rg *gin.RouterGroup, h *handlers.AllocationHandler) {
	rg.GET(PathAvailability, h.CheckAvailability)

	allocation := rg.Group(PathAllocation)
	{
		allocation.GET("/suggest", h.Suggest)
		allocation.GET("/available", h.FindAvailable)
	}
}
