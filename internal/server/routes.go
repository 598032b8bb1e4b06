package server

import (
	"backoffice/internal/handler"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Menu  *handler.MenuHandler
	Order *handler.OrderHandler
}

func RegisterRoutes(e *echo.Echo, h Handlers) {
	api := e.Group("/api")

	handler.RegisterHealthRoutes(api)
	h.Menu.RegisterRoutes(api)
	h.Order.RegisterRoutes(api)
}
