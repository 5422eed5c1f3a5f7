package router

import (
	"github.com/wb-go/wbf/ginext"

	"github.com/DannylSyph3r/notification-system/internal/api/handlers/notification"
	"github.com/DannylSyph3r/notification-system/internal/middlewares"
)

func New(handler *notification.Handler) *ginext.Engine {
	e := ginext.New()
	e.Use(middlewares.CORSMiddleware())
	e.Use(ginext.Logger())
	e.Use(ginext.Recovery())

	api := e.Group("/api/notifications")
	{
		api.POST("", handler.Create)
		api.GET("/:id/status", handler.GetStatus)
	}

	return e
}
