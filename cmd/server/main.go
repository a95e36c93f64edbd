package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/joho/godotenv"

	"github.com/ecosortapp/ecosort/internal/classifier"
	"github.com/ecosortapp/ecosort/internal/config"
	"github.com/ecosortapp/ecosort/internal/database"
	"github.com/ecosortapp/ecosort/internal/geo"
	"github.com/ecosortapp/ecosort/internal/handlers"
	"github.com/ecosortapp/ecosort/internal/metrics"
	"github.com/ecosortapp/ecosort/internal/middleware"
	"github.com/ecosortapp/ecosort/internal/realtime"
	"github.com/ecosortapp/ecosort/internal/services"
	"github.com/ecosortapp/ecosort/internal/types"
	"github.com/ecosortapp/ecosort/internal/workers"

	_ "github.com/ecosortapp/ecosort/docs/api" // Swagger docs
)

// @title EcoSort API
// @version 1.0.0
// @description Waste classification and community engagement service
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/ecosortapp/ecosort

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Load .env if present; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	store, err := services.NewMinioStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize object store: %v", err)
	}

	if err := services.InitAuthorizer(cfg, "http", "localhost:"+cfg.Port); err != nil {
		log.Fatalf("Failed to initialize authorizer: %v", err)
	}

	metrics.Register()

	// Realtime hub
	hub := realtime.NewHub()
	go hub.Run()

	// Background authority notification delivery
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	notifier := workers.NewNotifier(db, cfg.AuthorityWebhookURL)
	go notifier.Run(workerCtx)
	go notifier.RetryDLQ(workerCtx)

	// Services
	reportService := &services.ReportService{
		DB:         db,
		Store:      store,
		Classifier: classifier.NewClient(cfg.ClassifierURL, cfg.ClassifierAPIKey, cfg.ClassifierModel),
	}
	complaintService := &services.ComplaintService{
		DB:  db,
		Geo: geo.NewClient(cfg.GeolocateURL),
		Hub: hub,
	}
	eventService := &services.EventService{DB: db, Hub: hub}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    12 << 20,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("ecosort")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		result := services.HealthCheck(cfg, db)
		status := fiber.StatusOK
		if result.Status != "healthy" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(result)
	})

	// Websocket upgrade for realtime updates
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", hub.Handler())

	// API routes under /api
	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())

	// Create handlers
	reportHandler := &handlers.ReportHandler{Service: reportService}
	gamificationHandler := &handlers.GamificationHandler{DB: db}
	communityHandler := &handlers.CommunityHandler{Complaints: complaintService, Events: eventService}

	// Waste report routes
	api.Post("/reports", middleware.AuthUser(db), reportHandler.CreateReport)
	api.Get("/reports", middleware.AuthUser(db), reportHandler.ListReports)
	api.Get("/reports/carbon", middleware.AuthUser(db), reportHandler.GetCarbonStats)
	api.Delete("/reports/:id", middleware.AuthUser(db), reportHandler.DeleteReport)

	// Gamification routes
	api.Get("/points", middleware.AuthUser(db), gamificationHandler.GetPoints)
	api.Get("/points/transactions", middleware.AuthUser(db), gamificationHandler.GetTransactions)
	api.Get("/leaderboard", gamificationHandler.GetLeaderboard)

	// Community routes
	api.Get("/complaints", communityHandler.ListComplaints)
	api.Post("/complaints", middleware.AuthUser(db), communityHandler.CreateComplaint)
	api.Post("/complaints/:id/upvote", middleware.AuthUser(db), communityHandler.UpvoteComplaint)
	api.Post("/complaints/:id/escalate", middleware.AuthUser(db), communityHandler.EscalateComplaint)
	api.Get("/events", communityHandler.ListEvents)
	api.Post("/events", middleware.AuthUser(db), communityHandler.CreateEvent)
	api.Post("/events/:id/join", middleware.AuthUser(db), communityHandler.JoinEvent)

	// Admin routes
	api.Post("/admin/verify", middleware.AuthAdmin(db), gamificationHandler.VerifyImplementation)
	api.Patch("/admin/complaints/:id/authority", middleware.AuthAdmin(db), communityHandler.UpdateAuthorityStatus)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		stopWorkers()
		_ = app.Shutdown()
	}()

	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	if e, ok := err.(*types.AppError); ok {
		code = e.Code
		message = e.Message
		errorType = e.Type
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
