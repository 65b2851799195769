package handlers

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/doublemix/msche-team-visit/internal/domain"
	"github.com/doublemix/msche-team-visit/internal/service"
)

type Handler struct {
	services *service.Services
	logger   *slog.Logger
}

func NewHandler(services *service.Services, logger *slog.Logger) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}

	router.Use(cors.New(config))

	meetings := router.Group("/meetings")
	{
		meetings.GET("", h.ListMeetings)
		meetings.GET("/live", h.LiveMeetings)
		meetings.GET("/:id", h.GetMeeting)
	}

	return router
}

func (h *Handler) errorResponse(c *gin.Context, status int, code, message string) {
	h.logger.Error("handler error", "code", code, "message", message, "status", status)
	c.JSON(status, domain.ErrorResponse{
		Error: domain.ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

func (h *Handler) successResponse(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}
