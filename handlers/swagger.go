package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		c.String(http.StatusOK, swaggerJSON)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>bloodbank-api — Swagger</title>
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
  "info": { "title": "bloodbank-api", "version": "v0.1.0" },
  "paths": {
    "/signup": {
      "post": {
        "summary": "Create an account",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"password":{"type":"string"},"name":{"type":"string"}}}}}},
        "responses": { "200": { "description": "account created" }, "400": { "description": "missing fields or email taken" } }
      }
    },
    "/signin": {
      "post": {
        "summary": "Sign in and obtain tokens",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"password":{"type":"string"}}}}}},
        "responses": { "200": { "description": "tokens returned" }, "400": { "description": "missing fields or bad credentials" } }
      }
    },
    "/auth/refresh": {
      "post": { "summary": "Refresh access token", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"refresh_token":{"type":"string"}}}}}}, "responses": { "200": { "description": "new access token" }, "401": { "description": "invalid refresh" } } }
    },
    "/auth/logout": {
      "post": { "summary": "Logout and invalidate refresh token", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"refresh_token":{"type":"string"}}}}}}, "responses": { "200": { "description": "logged out" } } }
    },
    "/donate": {
      "post": {
        "summary": "Submit a donation registration (requires Bearer token)",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"donorName":{"type":"string"},"age":{"type":"string"},"gender":{"type":"string"},"bloodGroup":{"type":"string"},"weight":{"type":"string"}}}}}},
        "responses": { "200": { "description": "eligibility verdict" }, "400": { "description": "missing or invalid fields" }, "401": { "description": "unauthenticated" } }
      }
    },
    "/stats": {
      "get": { "summary": "Aggregate donation counts", "responses": { "200": { "description": "totalDonations and allDonations" } } }
    },
    "/recent-donors": {
      "get": { "summary": "Up to 10 eligible donors from the last 7 days", "responses": { "200": { "description": "donors list, most recent first" } } }
    },
    "/api/v1/me": {
      "get": { "summary": "Get authenticated user", "responses": { "200": { "description": "user or claims" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
