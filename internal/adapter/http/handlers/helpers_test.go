package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"

	"transporte_xpto/internal/adapter/http/middleware"
	"transporte_xpto/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

var (
	clientActor = entities.Actor{ID: "u-client", Role: entities.RoleClient, ClientID: "cl1", CompanyID: "co1"}
	coordActor  = entities.Actor{ID: "u-coord", Role: entities.RoleOperationsCoordinator, CompanyID: "co1"}
	accActor    = entities.Actor{ID: "u-acc", Role: entities.RoleAccounting, CompanyID: "co1"}
)

// newRouter returns an engine that authenticates every call as actor.
func newRouter(actor entities.Actor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		middleware.SetActor(c, actor)
		c.Next()
	})
	return r
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
