package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse-ledger/internal/application/importer"
	"github.com/jhoicas/warehouse-ledger/internal/application/inventory"
	"github.com/jhoicas/warehouse-ledger/internal/application/usecase"
	"github.com/jhoicas/warehouse-ledger/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName        string
	Engine         *inventory.MovementEngine
	History        *inventory.HistoryUseCase
	Importer       *importer.UseCase
	ImportLimits   ImportLimits
	ItemUC         *usecase.ItemUseCase
	StorageUC      *usecase.StorageUseCase
	NotificationUC *usecase.NotificationUseCase
	JWTSecret      string
	JWTIssuer      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	anyRole := RequireRole(entity.RoleAdmin, entity.RoleBodeguero, entity.RoleConsulta)
	writer := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	adminOnly := RequireRole(entity.RoleAdmin)

	inventoryHandler := NewInventoryHandler(deps.Engine, deps.History, deps.Importer, deps.ImportLimits)
	itemHandler := NewItemHandler(deps.ItemUC)
	storageHandler := NewStorageHandler(deps.StorageUC)
	notificationHandler := NewNotificationHandler(deps.NotificationUC)

	// Inventory movements + importación
	invGroup := protected.Group("/inventory")
	invGroup.Post("/movements", writer, inventoryHandler.RegisterMovement)
	invGroup.Post("/import", writer, inventoryHandler.Import)

	// Items
	items := protected.Group("/items")
	items.Post("/", writer, itemHandler.Create)
	items.Get("/", anyRole, itemHandler.List)
	items.Get("/:id", anyRole, itemHandler.GetByID)
	items.Put("/:id", writer, itemHandler.Update)
	items.Delete("/:id", adminOnly, itemHandler.Delete)
	items.Get("/:id/movements", anyRole, inventoryHandler.ListMovements)
	items.Get("/:id/movements/report.pdf", anyRole, inventoryHandler.MovementReport)

	// Jerarquía de almacenamiento
	protected.Post("/locations", adminOnly, storageHandler.CreateLocation)
	protected.Post("/areas", adminOnly, storageHandler.CreateArea)
	units := protected.Group("/storage-units")
	units.Post("/", adminOnly, storageHandler.CreateStorageUnit)
	units.Get("/", anyRole, storageHandler.ListStorageUnits)
	units.Get("/lookup", anyRole, storageHandler.LookupStorageUnit)

	// Notificaciones del usuario autenticado
	notifications := protected.Group("/notifications", anyRole)
	notifications.Get("/", notificationHandler.List)
	notifications.Post("/:id/read", notificationHandler.MarkRead)
}
