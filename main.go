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
	"github.com/google/uuid"

	"ppdb_backend/internals/configs"
	database "ppdb_backend/internals/databases"
	"ppdb_backend/internals/features/admission/applications/service"
	helper "ppdb_backend/internals/helpers"
	middlewares "ppdb_backend/internals/middlewares"
	routes "ppdb_backend/internals/route"
	seeds "ppdb_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ErrorHandler:          helper.FiberErrorHandler,
		// dokumen dikirim inline (base64) — beri ruang body lebih besar
		BodyLimit: 20 * 1024 * 1024,
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching

	// 🔎 Request-ID + timing (observability ringan)
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		// timeout longgar: pipeline submission menunggu review AI
		ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		dur := time.Since(start)
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), dur)
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	if configs.GetEnvBool("RUN_SEEDS", false) {
		seeds.RunAllSeeds(database.DB)
	}

	// 🤖 Reviewer AI (opsional — tanpa API key, review dicatat gagal)
	var reviewer service.ApplicationReviewer
	var gemini *service.GeminiReviewer
	if configs.GeminiAPIKey != "" {
		r, err := service.NewGeminiReviewer(configs.GeminiAPIKey, configs.GeminiModel)
		if err != nil {
			log.Printf("⚠️ Gagal inisialisasi reviewer AI: %v", err)
		} else {
			gemini = r
			reviewer = r
		}
	}

	// 📋 Mirror spreadsheet (best-effort; tanpa config jadi no-op)
	mirror := service.NewSheetsMirror(configs.SpreadsheetID, configs.SheetName, configs.GoogleCredentialsJSON)

	submission := service.NewSubmissionService(database.DB, reviewer, mirror, configs.RequireDocuments)

	// ✅ Routes
	routes.SetupRoutes(app, database.DB, submission)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 45 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if gemini != nil {
		_ = gemini.Close()
	}
	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
