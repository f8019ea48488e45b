package handlers

import (
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"todo-api/internal/metrics"
	"todo-api/internal/middleware"
)

// Router wires the handlers under /api. Everything below /api/todos/
// requires a bearer token.
func Router(h *Handler, tokens middleware.TokenVerifier, m *metrics.Metrics, logger *log.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.Logger(logger), m.Middleware())

	router.GET("/health", h.Health)
	router.GET("/metrics", gin.WrapH(m.Handler()))

	api := router.Group("/api")
	api.POST("/auth/register/", h.Register)
	api.POST("/auth/login/", h.Login)

	todos := api.Group("/todos", middleware.Auth(tokens))
	todos.GET("/", h.ListTodos)
	todos.POST("/", h.CreateTodo)
	todos.GET("/:id/", h.GetTodo)
	todos.PUT("/:id/", h.UpdateTodo)
	todos.PATCH("/:id/", h.UpdateTodo)
	todos.DELETE("/:id/", h.DeleteTodo)
	todos.POST("/:id/toggle/", h.ToggleTodo)

	return router
}
