package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/application/usecase"
	"github.com/jhoicas/bodega-api/internal/interfaces/ws"
	"github.com/jhoicas/bodega-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Engine    *inventory.MovementEngine
	Queries   *usecase.StockQueryUseCase
	Receipts  *usecase.BatchReceiptUseCase
	Hub       *ws.Hub
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	anyRole := RequireRole(jwt.RoleSupervisor, jwt.RoleOperador)
	supervisor := RequireRole(jwt.RoleSupervisor)

	movements := NewMovementHandler(deps.Engine, deps.Queries)
	api.Post("/putaway", anyRole, movements.Putaway)
	api.Post("/stock/remove", anyRole, movements.Remove)
	api.Post("/stock/move", anyRole, movements.Move)
	api.Post("/transactions/:id/undo", supervisor, movements.UndoTransaction)

	batches := api.Group("/putaway-batches")
	batchHandler := NewBatchHandler(deps.Engine, deps.Queries, deps.Receipts)
	batches.Post("/", anyRole, movements.PutawayBatch)
	batches.Get("/:id", anyRole, batchHandler.Get)
	batches.Get("/:id/receipt", anyRole, batchHandler.Receipt)
	batches.Put("/:id", supervisor, batchHandler.Edit)
	batches.Post("/:id/undo", supervisor, batchHandler.Undo)

	stock := NewStockHandler(deps.Queries)
	api.Get("/locations/:label/stock", anyRole, stock.AtLocation)
	// barcode antes que :id para que "barcode" no se tome como ID
	api.Get("/items/barcode/:barcode", anyRole, stock.ByBarcode)
	api.Get("/items/:id/stock", anyRole, stock.ForItem)
	api.Get("/items/:id/transactions", anyRole, stock.History)

	if deps.Hub != nil {
		app.Use("/ws", AuthMiddleware(deps.JWTSecret), func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return fiber.ErrUpgradeRequired
		})
		app.Get("/ws", websocket.New(deps.Hub.Handler()))
	}
}
