package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/warehouse-ledger/docs"
	"github.com/jhoicas/warehouse-ledger/internal/application/importer"
	"github.com/jhoicas/warehouse-ledger/internal/application/inventory"
	"github.com/jhoicas/warehouse-ledger/internal/application/usecase"
	"github.com/jhoicas/warehouse-ledger/internal/bootstrap"
	"github.com/jhoicas/warehouse-ledger/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/warehouse-ledger/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/warehouse-ledger/internal/interfaces/http"
	"github.com/jhoicas/warehouse-ledger/pkg/config"
	"github.com/jhoicas/warehouse-ledger/pkg/logger"
)

// @title        Warehouse Ledger API
// @version      1.0
// @description  Inventario con libro de movimientos, importación masiva y notificaciones.
// @BasePath     /
// @securityDefinitions.apikey Bearer
// @in           header
// @name         Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio para el servidor HTTP")
	}

	ctx := context.Background()
	store, err := bootstrap.OpenStore(ctx, cfg, log.Component("store"))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer store.Close()

	// Notificaciones: cola asíncrona → tabla de notificaciones (+ Kafka si hay brokers)
	deliverers := []notify.Deliverer{notify.NewStoreDeliverer(store.Notifications)}
	var kafkaPub *notify.KafkaPublisher
	if cfg.Kafka.Enabled() {
		kafkaPub = notify.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		deliverers = append(deliverers, kafkaPub)
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("publicación Kafka habilitada")
	}
	dispatcher := notify.NewDispatcher(notify.Config{
		QueueSize:       cfg.Notify.QueueSize,
		Workers:         cfg.Notify.Workers,
		DeliveryTimeout: cfg.Notify.DeliveryTimeout,
	}, log.Component("notify"), deliverers...)

	engine := inventory.NewMovementEngine(store.TxRunner, store.Storage, dispatcher,
		inventory.EngineConfig{LowStockThreshold: cfg.Inventory.LowStockThreshold}, log.Component("movements"))
	history := inventory.NewHistoryUseCase(store.Items, store.Movements, store.Storage, infrapdf.NewMarotoReportGenerator())
	importUC := importer.NewUseCase(store.Items, store.Storage, dispatcher,
		importer.Config{MaxRows: cfg.Import.MaxRows}, log.Component("import"))
	itemUC := usecase.NewItemUseCase(store.Items, store.Movements, store.Storage, dispatcher, log.Component("items"))
	storageUC := usecase.NewStorageUseCase(store.Storage)
	notificationUC := usecase.NewNotificationUseCase(store.Notifications)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.Import.MaxBytes + 64<<10, // margen para el envoltorio multipart
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Import.Timeout + 10*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Warehouse Ledger API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:  cfg.App.Name,
		Engine:   engine,
		History:  history,
		Importer: importUC,
		ImportLimits: httpRouter.ImportLimits{
			MaxBytes: cfg.Import.MaxBytes,
			Timeout:  cfg.Import.Timeout,
		},
		ItemUC:         itemUC,
		StorageUC:      storageUC,
		NotificationUC: notificationUC,
		JWTSecret:      cfg.JWT.Secret,
		JWTIssuer:      cfg.JWT.Issuer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	// Después del servidor: ya no entran notificaciones nuevas, se vacía la cola
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("cola de notificaciones no se vació por completo")
	}
	if kafkaPub != nil {
		if err := kafkaPub.Close(); err != nil {
			log.Warn().Err(err).Msg("cerrar publicador Kafka")
		}
	}

	log.Info().Msg("aplicación detenida")
}
