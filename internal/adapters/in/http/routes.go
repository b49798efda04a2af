package http

import "github.com/labstack/echo/v4"

// RegisterRoutes mounts the API on e. bulkLimit guards the bulk endpoint; it runs
// after the actor check so limits are counted per operator.
func RegisterRoutes(e *echo.Echo, s *Server, bulkLimit echo.MiddlewareFunc) {
	e.GET("/health", s.Health)

	api := e.Group("/api")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id/status", s.GetOrderStatus)

	admin := api.Group("/admin", RequireActor())
	admin.PATCH("/orders/:id/status", s.ChangeOrderStatus)
	admin.POST("/orders/bulk-status", s.BulkChangeOrderStatus, bulkLimit)
	admin.POST("/orders/:id/print-file", s.GeneratePrintFile)
}
