package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/application"
	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/auth"
	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/config"
	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/email"
	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/infrastructure/repository"
	handlers "github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/interfaces/http"
	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/scheduler"
	services "github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer logger.Sync()

	db, err := sql.Open("postgres", cfg.GetDBConnString())
	if err != nil {
		logger.Fatal("error connecting to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal("error pinging database", zap.Error(err))
	}

	sessionStore, err := auth.NewSessionStore(context.Background(), cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Fatal("error connecting to redis", zap.Error(err))
	}
	defer sessionStore.Close()

	// Email Client
	emailClient, err := email.NewClient(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPassword,
		cfg.SMTPFromName,
		cfg.SMTPFromEmail,
	)
	if err != nil {
		logger.Warn("email client initialization failed", zap.Error(err))
		emailClient = nil // Continuar sin email
	}

	// S3
	s3Service, err := services.NewS3Service(cfg.S3BucketName)
	if err != nil {
		logger.Warn("S3 service initialization failed", zap.Error(err))
		s3Service = nil // Continuar sin imágenes
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: true,
		ExposeHeaders:    "Content-Length",
		MaxAge:           86400,
	}))
	app.Use(handlers.NewRequestLogger(logger))

	// Repositorios
	txRunner := repository.NewTxRunner(db)
	ventaRepo := repository.NewVentaRepository(db)
	servicioRepo := repository.NewServicioRepository(db)
	descuentoRepo := repository.NewDescuentoRepository(db)
	paqueteRepo := repository.NewPaqueteRepository(db)
	planRepo := repository.NewPlanCuotasRepository(db)
	reembolsoRepo := repository.NewReembolsoRepository(db)
	tipoCambioRepo := repository.NewTipoCambioRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	metodoPagoRepo := repository.NewMetodoPagoRepository(db)
	reclamoRepo := repository.NewReclamoRepository(db)
	resenaRepo := repository.NewResenaRepository(db)

	// Servicios de aplicación
	monedaService := application.NewMonedaService(tipoCambioRepo)
	precioService := application.NewPrecioService(txRunner, descuentoRepo, servicioRepo, ventaRepo, monedaService)
	ventaService := application.NewVentaService(txRunner, ventaRepo, servicioRepo, clienteRepo, precioService, monedaService, emailClient, logger)
	paqueteService := application.NewPaqueteService(txRunner, paqueteRepo, ventaRepo, servicioRepo, clienteRepo, monedaService)
	cuotaService := application.NewCuotaService(txRunner, planRepo, ventaRepo, metodoPagoRepo, monedaService)
	reembolsoService := application.NewReembolsoService(txRunner, ventaRepo, reembolsoRepo, clienteRepo, emailClient, logger)
	catalogoCache := application.NewCatalogoCache(5 * time.Minute)
	servicioService := application.NewServicioService(servicioRepo, s3Service, catalogoCache)
	reclamoService := application.NewReclamoService(txRunner, reclamoRepo, ventaRepo)
	resenaService := application.NewResenaService(resenaRepo, ventaRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(sessionStore)
	ventaHandler := handlers.NewVentaHandler(ventaService)
	paqueteHandler := handlers.NewPaqueteHandler(paqueteService)
	cuotaHandler := handlers.NewCuotaHandler(cuotaService)
	reembolsoHandler := handlers.NewReembolsoHandler(reembolsoService)
	servicioHandler := handlers.NewServicioHandler(servicioService)
	descuentoHandler := handlers.NewDescuentoHandler(precioService)
	reclamoHandler := handlers.NewReclamoHandler(reclamoService)
	resenaHandler := handlers.NewResenaHandler(resenaService)

	authMiddleware := handlers.NewAuthMiddleware(sessionStore)
	rateLimiter := application.NewRateLimiter(1*time.Minute, 60)
	rateLimit := handlers.NewRateLimitMiddleware(rateLimiter)

	api := app.Group("/api")

	// Sesiones
	sesiones := api.Group("/auth")
	sesiones.Post("/sesion", authHandler.CreateSesion)
	sesiones.Delete("/sesion", authHandler.DeleteSesion)

	// Catálogo de servicios
	servicios := api.Group("/servicios")
	servicios.Get("/all", servicioHandler.GetAllServices)
	servicios.Get("/:id", servicioHandler.GetServicioByID)
	servicios.Post("/", authMiddleware, servicioHandler.CreateService)
	servicios.Put("/:id", authMiddleware, servicioHandler.UpdateService)
	servicios.Delete("/:id", authMiddleware, servicioHandler.DeleteService)
	servicios.Post("/:id/imagen", authMiddleware, servicioHandler.UploadImagen)
	servicios.Get("/:servicioId/descuentos", descuentoHandler.GetByServicio)
	servicios.Get("/:servicioId/precio", descuentoHandler.GetPrecio)
	servicios.Get("/:servicioId/resenas", resenaHandler.GetByServicio)

	// Descuentos
	descuentos := api.Group("/descuentos", authMiddleware)
	descuentos.Post("/", descuentoHandler.Create)
	descuentos.Delete("/:id", descuentoHandler.Delete)

	// Ventas
	ventas := api.Group("/ventas", authMiddleware)
	ventas.Post("/", rateLimit, ventaHandler.CreateVenta)
	ventas.Get("/", ventaHandler.GetVentasCliente)
	ventas.Get("/:id", ventaHandler.GetVenta)
	ventas.Get("/:id/historial", ventaHandler.GetHistorial)
	ventas.Delete("/:id", rateLimit, ventaHandler.DeleteVenta)
	ventas.Post("/:id/items", rateLimit, ventaHandler.AddItem)
	ventas.Delete("/:id/items/:itemId", rateLimit, ventaHandler.RemoveItem)
	ventas.Post("/:id/pagar", ventaHandler.Pagar)
	ventas.Post("/:id/plan-cuotas", cuotaHandler.CrearPlan)
	ventas.Get("/:id/plan-cuotas", cuotaHandler.GetPlan)
	ventas.Get("/:id/reembolso/calcular", reembolsoHandler.Calcular)
	ventas.Post("/:id/reembolso", reembolsoHandler.Ejecutar)

	// Paquetes
	paquetes := api.Group("/paquetes")
	paquetes.Get("/", paqueteHandler.GetAllPaquetes)
	paquetes.Get("/:id", paqueteHandler.GetPaqueteByID)
	paquetes.Post("/:id/comprar", authMiddleware, paqueteHandler.Comprar)

	// Cuotas
	cuotas := api.Group("/cuotas", authMiddleware)
	cuotas.Post("/:id/pagar", cuotaHandler.Pagar)

	// Reclamos
	reclamos := api.Group("/reclamos", authMiddleware)
	reclamos.Post("/", reclamoHandler.Create)
	reclamos.Patch("/:id/estado", reclamoHandler.UpdateEstado)

	// Reseñas
	resenas := api.Group("/resenas", authMiddleware)
	resenas.Post("/", resenaHandler.Create)

	// Scheduler de carritos abandonados
	carritoScheduler := scheduler.NewCarritoScheduler(
		ventaService,
		time.Duration(cfg.CarritoAbandonadoDias)*24*time.Hour,
		logger,
	)
	carritoScheduler.Start()
	defer carritoScheduler.Stop()

	logger.Info("server starting", zap.String("port", cfg.ServerPort))
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		logger.Fatal("error starting server", zap.Error(err))
	}
}
