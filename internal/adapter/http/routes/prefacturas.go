package routes

import (
	"transporte_xpto/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const PathPrefacturas = "/prefacturas"

// Pre-invoices are addressed by any request id of their group.
func addPrefacturaRoutes(rg *gin.RouterGroup, h *handlers.PrefacturaHandler) {
	prefacturas := rg.Group(PathPrefacturas)
	{
		prefacturas.POST("", h.Generate)
		prefacturas.POST("/:id/approve", h.Approve)
		prefacturas.POST("/:id/reject", h.Reject)
		prefacturas.POST("/:id/send", h.Send)
		prefacturas.POST("/:id/client-approve", h.ClientApprove)
		prefacturas.POST("/:id/client-reject", h.ClientReject)
		prefacturas.GET("/:id/deliveries", h.Deliveries)
	}
}
