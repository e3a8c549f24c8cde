package main

import (
	"context"
	"errors"
	"time"

	"github.com/anjiri1684/institute_manager/cache"
	config "github.com/anjiri1684/institute_manager/configs"
	"github.com/anjiri1684/institute_manager/database"
	"github.com/anjiri1684/institute_manager/jobs"
	"github.com/anjiri1684/institute_manager/logger"
	"github.com/anjiri1684/institute_manager/notifications"
	"github.com/anjiri1684/institute_manager/routes"
	"github.com/anjiri1684/institute_manager/storage"
	"github.com/anjiri1684/institute_manager/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

func main() {
	logger.Init(config.ConfigDefault("LOG_LEVEL", "info"), config.ConfigDefault("LOG_FORMAT", "console"))

	database.ConnectDB()
	database.Migrate()
	notifications.InitEmailService()

	if err := cache.Init(database.DB, config.Config("REDIS_ADDR"), config.Config("REDIS_PASSWORD"), config.ConfigInt("REDIS_DB", 0)); err != nil {
		log.Fatal().Err(err).Msg("🔥 Failed to initialize OTP store")
	}
	if err := storage.Init(); err != nil {
		log.Fatal().Err(err).Msg("🔥 Failed to initialize file storage")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go websocket.Results.Run(ctx)

	c := cron.New()
	if err := jobs.Schedule(c); err != nil {
		log.Fatal().Err(err).Msg("🔥 Failed to schedule jobs")
	}
	c.Start()
	defer c.Stop()
	log.Info().Msg("✅ Cron jobs scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:       false,
		AppName:       "Institute Manager",
		CaseSensitive: true,
		StrictRouting: true,
		BodyLimit:     4 * config.ConfigInt("MAX_UPLOAD_BYTES", 5<<20),
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  60 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Int("status", code).Msg("[ERROR]")
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  config.ConfigDefault("CORS_ORIGINS", "*"),
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Content-Disposition",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   config.ConfigDefault("TZ", "Asia/Kolkata"),
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	routes.Register(app)

	if local, ok := storage.Files.(*storage.LocalStore); ok {
		app.Static(config.ConfigDefault("UPLOAD_URL_PREFIX", "/uploads"), local.Dir())
	}
	app.Static("/", "./public")

	port := config.ConfigDefault("PORT", "4000")
	log.Info().Str("port", port).Msg("✅ Server is running")
	if err := app.Listen(":" + port); err != nil {
		log.Fatal().Err(err).Msg("🔥 Server failed to start")
	}
}
