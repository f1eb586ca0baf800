package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/utils"
	"gorm.io/gorm"

	"feesetu_backend/internals/configs"
	database "feesetu_backend/internals/databases"
	appModel "feesetu_backend/internals/features/emi/applications/model"
	installmentModel "feesetu_backend/internals/features/emi/installments/model"
	planModel "feesetu_backend/internals/features/emi/plans/model"
	planService "feesetu_backend/internals/features/emi/plans/service"
	institutionModel "feesetu_backend/internals/features/institutions/model"
	onboardingModel "feesetu_backend/internals/features/onboarding/model"
	paymentModel "feesetu_backend/internals/features/payments/model"
	paymentService "feesetu_backend/internals/features/payments/service"
	studentModel "feesetu_backend/internals/features/students/model"
	authModel "feesetu_backend/internals/features/users/auth/model"
	scheduler "feesetu_backend/internals/features/users/auth/scheduler"
	parentModel "feesetu_backend/internals/features/users/parent/model"
	middlewares "feesetu_backend/internals/middlewares"
	routes "feesetu_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// request-id + timing, with an HTTP timeout guard aligned to the DB
	// statement_timeout
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		dur := time.Since(start)
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), dur)
		return err
	})

	middlewares.SetupMiddlewares(app)

	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	migrate(database.DB)
	planService.SeedCatalog(database.DB)

	scheduler.StartBlacklistCleanupScheduler(database.DB)

	useMidtransProd := false
	if v := os.Getenv("MIDTRANS_USE_PROD"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			useMidtransProd = b
		}
	}
	paymentService.InitMidtrans(configs.MidtransServerKey, useMidtransProd)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	routes.SetupRoutes(app, database.DB)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func migrate(db *gorm.DB) {
	log.Println("🛠 Running migrations...")
	err := db.AutoMigrate(
		&authModel.UserModel{},
		&authModel.TokenBlacklist{},
		&authModel.RefreshToken{},
		&parentModel.ParentProfile{},
		&institutionModel.Organization{},
		&institutionModel.Institution{},
		&institutionModel.InstitutionLocation{},
		&institutionModel.FeeStructure{},
		&studentModel.Student{},
		&planModel.EmiPlan{},
		&appModel.FeeApplication{},
		&installmentModel.Installment{},
		&paymentModel.Payment{},
		&onboardingModel.OnboardingDraft{},
	)
	if err != nil {
		log.Fatalf("❌ migration failed: %v", err)
	}
	log.Println("✅ Migrations complete.")
}
