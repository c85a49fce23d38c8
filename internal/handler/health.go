package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskhub/backend/internal/db"
	"github.com/taskhub/backend/internal/model"
)

// Root godoc
// @Summary Service banner
// @Tags health
// @Produce json
// @Success 200 {object} model.RootResponse
// @Router / [get]
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, model.RootResponse{
		Message: "Hello World!",
		Status:  "Task API is running",
	})
}

// Health godoc
// @Summary Health check
// @Description Pings the database and reports connectivity.
// @Tags health
// @Produce json
// @Success 200 {object} model.HealthResponse
// @Failure 500 {object} model.HealthResponse
// @Router /health [get]
func Health(store *db.Postgres) gin.HandlerFunc {
	return func(c *gin.Context) {
		timestamp := time.Now().UTC().Format(time.RFC3339)

		if err := store.Pool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, model.HealthResponse{
				Status:    "unhealthy",
				Database:  "disconnected",
				Error:     err.Error(),
				Timestamp: timestamp,
			})
			return
		}

		c.JSON(http.StatusOK, model.HealthResponse{
			Status:    "healthy",
			Database:  "connected",
			Timestamp: timestamp,
		})
	}
}
