package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tutorbot/internal/api/middleware"
	"tutorbot/internal/service"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	AllowOrigins   []string
	MaxUploadBytes int64
	Health         map[string]string
}

// SetupRouter sets up the Gin router
func SetupRouter(
	chatService *service.ChatService,
	assignmentService *service.AssignmentService,
	cfg RouterConfig,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.AllowOrigins))

	if cfg.MaxUploadBytes > 0 {
		r.Use(func(c *gin.Context) {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, cfg.MaxUploadBytes)
			c.Next()
		})
	}

	h := NewHandler(chatService, assignmentService, cfg.Health)
	h.RegisterRoutes(r)

	return r
}
