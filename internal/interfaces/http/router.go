package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/application/adjustment"
	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/application/movement"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MovementUC *movement.UseCase
	Adjustment *adjustment.UseCase
	Report     movement.ReportGenerator
	JWTSecret  string
}

// Router registra las rutas de la API. Todo el motor es protegido: la
// identidad del emisor sale del Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Ajustes de inventario
	adjustments := api.Group("/ajustes")
	adjustmentHandler := NewAdjustmentHandler(deps.Adjustment)
	adjustments.Post("/", adjustmentHandler.Create)
	adjustments.Get("/proximo-numero", adjustmentHandler.PeekNextNumber)
	adjustments.Get("/estado", adjustmentHandler.Readiness)

	// Movimientos (lecturas, update de cabecera, delete, reporte)
	movements := api.Group("/movimientos")
	movementHandler := NewMovementHandler(deps.MovementUC, deps.Report)
	movements.Get("/", movementHandler.List)
	movements.Get("/reporte", movementHandler.Report)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Patch("/:id", movementHandler.UpdateHeader)
	movements.Delete("/:id", movementHandler.Delete)
}
