package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the CRUD API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>usergroups - Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "usergroups", "version": "v1.0.0" },
  "components": {
    "schemas": {
      "User": { "type": "object", "required": ["username","email","password"], "properties": {
        "_id": { "type": "string", "readOnly": true },
        "username": { "type": "string", "minLength": 3, "maxLength": 50 },
        "email": { "type": "string", "pattern": "^\\S+@\\S+\\.\\S+$" },
        "password": { "type": "string", "minLength": 6 } } },
      "Group": { "type": "object", "required": ["groupname"], "properties": {
        "_id": { "type": "string", "readOnly": true },
        "groupname": { "type": "string", "minLength": 3, "maxLength": 50 } } },
      "Error": { "type": "object", "properties": { "error": { "type": "string" } } },
      "Deleted": { "type": "object", "properties": { "msg": { "type": "string" } } }
    }
  },
  "paths": {
    "/users": {
      "get": { "summary": "List users", "responses": { "200": { "description": "array of users" } } },
      "post": { "summary": "Create user", "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/User" } } } },
        "responses": { "201": { "description": "created user" }, "400": { "description": "validation failed" } } }
    },
    "/users/{id}": {
      "parameters": [ { "name": "id", "in": "path", "required": true, "schema": { "type": "string" } } ],
      "get": { "summary": "Get user", "responses": { "200": { "description": "user" }, "400": { "description": "invalid id" }, "404": { "description": "not found" } } },
      "put": { "summary": "Update user fields", "requestBody": { "content": { "application/json": { "schema": { "type": "object" } } } },
        "responses": { "200": { "description": "updated user" }, "400": { "description": "invalid id or validation failed" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete user", "responses": { "200": { "description": "deleted" }, "400": { "description": "invalid id" }, "404": { "description": "not found" } } }
    },
    "/groups": {
      "get": { "summary": "List groups", "responses": { "200": { "description": "array of groups" } } },
      "post": { "summary": "Create group", "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Group" } } } },
        "responses": { "201": { "description": "created group" }, "400": { "description": "validation failed" } } }
    },
    "/groups/{id}": {
      "parameters": [ { "name": "id", "in": "path", "required": true, "schema": { "type": "string" } } ],
      "get": { "summary": "Get group", "responses": { "200": { "description": "group" }, "400": { "description": "invalid id" }, "404": { "description": "not found" } } },
      "put": { "summary": "Update group fields", "requestBody": { "content": { "application/json": { "schema": { "type": "object" } } } },
        "responses": { "200": { "description": "updated group" }, "400": { "description": "invalid id or validation failed" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete group", "responses": { "200": { "description": "deleted" }, "400": { "description": "invalid id" }, "404": { "description": "not found" } } }
    },
    "/": { "get": { "summary": "Liveness string", "responses": { "200": { "description": "running" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "metrics" } } } }
  }
}`
