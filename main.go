package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/redis/go-redis/v9"

	"eventos_backend/internals/configs"
	database "eventos_backend/internals/databases"
	eventRepository "eventos_backend/internals/features/events/events/repository"
	eventScheduler "eventos_backend/internals/features/events/events/scheduler"
	eventService "eventos_backend/internals/features/events/events/service"
	authService "eventos_backend/internals/features/users/auth/service"
	"eventos_backend/internals/helpers/mailer"
	middlewares "eventos_backend/internals/middlewares"
	routes "eventos_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		// 🚀 JSON rápido
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
		BodyLimit:             10 * 1024 * 1024, // margen para los PDF (límite real: 5MB por archivo)
	})

	// ⚙️ middleware base + performance
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// 🔎 Request-ID + timing
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		// Timeout HTTP alineado con el statement_timeout de la DB
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		dur := time.Since(start)
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), dur)
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + warm-up + migraciones
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()
	if err := database.MigrateDatabase(); err != nil {
		log.Fatalf("❌ Migraciones fallidas: %v", err)
	}

	// 🔐 Blacklist de tokens en Redis
	blacklist := authService.NewTokenBlacklist(&redis.Options{
		Addr:     configs.App.RedisAddr,
		Password: configs.App.RedisPassword,
		DB:       configs.App.RedisDB,
	})

	// 📬 Mailer (no-op si SMTP no está configurado)
	eventMailer := mailer.New(configs.App)

	// ⏱ Motor de estados: el scheduler es su único invocador
	engine := eventService.NewStatusEngine(eventRepository.NewEventStatusRepository(database.DB))
	eventScheduler.StartStatusScheduler(engine, configs.App.StatusCron)

	// ✅ Routes
	routes.BaseRoutes(app)
	routes.SetupRoutes(app, database.DB, blacklist, engine, eventMailer)

	// 🔒 Keep-Alive & timeouts del server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.App.Port
	if port == "" {
		port = "3000"
	}

	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + cierre del pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = blacklist.Client.Close()
}
