package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/usergroups/internal/document"
	"github.com/gogotex/usergroups/internal/document/service"
	"github.com/gogotex/usergroups/pkg/logger"
)

const (
	msgNotFound  = "not found"
	msgInvalidID = "invalid id"
	msgDeleted   = "Deleted successfully"
	msgInternal  = "internal error"
)

// RegisterRoutes mounts the CRUD endpoints of one entity on rg:
//
//	POST   /      create
//	GET    /      list
//	GET    /:id   get
//	PUT    /:id   partial update
//	DELETE /:id   delete
func RegisterRoutes(rg *gin.RouterGroup, svc service.Service) {
	rg.POST("", func(c *gin.Context) {
		var payload map[string]interface{}
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		out, err := svc.Create(c.Request.Context(), payload)
		respond(c, svc, out, err)
	})

	rg.GET("", func(c *gin.Context) {
		out, err := svc.List(c.Request.Context())
		respond(c, svc, out, err)
	})

	rg.GET("/:id", func(c *gin.Context) {
		out, err := svc.Get(c.Request.Context(), c.Param("id"))
		respond(c, svc, out, err)
	})

	rg.PUT("/:id", func(c *gin.Context) {
		var payload map[string]interface{}
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		out, err := svc.Update(c.Request.Context(), c.Param("id"), payload)
		respond(c, svc, out, err)
	})

	rg.DELETE("/:id", func(c *gin.Context) {
		out, err := svc.Delete(c.Request.Context(), c.Param("id"))
		if err == nil && out.Status == document.StatusOK {
			c.JSON(http.StatusOK, gin.H{"msg": msgDeleted})
			return
		}
		respond(c, svc, out, err)
	})
}

// respond maps a service outcome onto the HTTP status and JSON body.
func respond(c *gin.Context, svc service.Service, out document.Outcome, err error) {
	if err != nil {
		logger.Errorf("%s %s (%s): %v", c.Request.Method, c.Request.URL.Path, svc.Schema().Collection, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
		return
	}
	switch out.Status {
	case document.StatusCreated:
		c.JSON(http.StatusCreated, out.Doc)
	case document.StatusOK:
		if out.Docs != nil {
			c.JSON(http.StatusOK, out.Docs)
			return
		}
		c.JSON(http.StatusOK, out.Doc)
	case document.StatusNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
	case document.StatusInvalidID:
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidID})
	case document.StatusValidationFailed, document.StatusConflict:
		c.JSON(http.StatusBadRequest, gin.H{"error": out.Message()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
	}
}
