package handlers

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gogotex/usergroups/internal/document/handler"
	"github.com/gogotex/usergroups/internal/document/service"
	"github.com/gogotex/usergroups/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// LivenessMessage is the plain-text body served on GET /.
const LivenessMessage = "User and group CRUD API is running"

// Deps are the explicitly constructed dependencies injected into the router.
type Deps struct {
	Users  service.Service
	Groups service.Service
	// Checks are readiness probes keyed by dependency name (e.g. "mongodb").
	Checks map[string]Check
	// Gatherer serves /metrics; nil disables the endpoint.
	Gatherer prometheus.Gatherer
}

// NewRouter assembles the gin engine: middleware, liveness/readiness,
// metrics, API docs and the /users and /groups resources.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader}
	corsCfg.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	r.Use(cors.New(corsCfg))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, LivenessMessage)
	})
	RegisterHealth(r, d.Checks)
	RegisterSwagger(r)
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	handler.RegisterRoutes(r.Group("/users"), d.Users)
	handler.RegisterRoutes(r.Group("/groups"), d.Groups)
	return r
}
