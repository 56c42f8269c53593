package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Lotes-api/internal/application/inventory"
	"github.com/jhoicas/Lotes-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC      *usecase.ProductUseCase
	StockEngine    *inventory.StockUseCase
	StockQuery     *inventory.QueryUseCase
	MetricsEnabled bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.MetricsEnabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	api := app.Group("/api")

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Stock (motor de lotes)
	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.StockEngine, deps.StockQuery)
	stock.Post("/receipts", stockHandler.AddStock)
	stock.Post("/issues/fefo", stockHandler.RemoveStockFefo)
	stock.Post("/issues", stockHandler.RemoveStock)
	stock.Post("/adjustments", stockHandler.AdjustStock)
	stock.Get("/movements", stockHandler.GetRecentMovements)
	stock.Get("/expiring", stockHandler.GetExpiringLots)
	stock.Get("/statistics", stockHandler.GetStatistics)

	// Lotes por producto (incluye agotados, para auditoría)
	products.Get("/:id/lots", stockHandler.GetLotsByProduct)
}
