package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pocketvibe/pocketvibe-backend/internal/application"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/commands"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/processors"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/query"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/ai"
	infraDB "github.com/pocketvibe/pocketvibe-backend/internal/infra/db"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/db/repo"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/push"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/storage"
	"github.com/pocketvibe/pocketvibe-backend/internal/presentation/rest"
	"github.com/pocketvibe/pocketvibe-backend/internal/presentation/scheduler"
	"github.com/pocketvibe/pocketvibe-backend/pkg/db"
	"github.com/pocketvibe/pocketvibe-backend/pkg/env"
)

func Init() {
	// DB
	dbConfig := db.NewConfig()
	pool, err := pgxpool.New(context.Background(), dbConfig.GetDSN())
	if err != nil {
		log.Panicf("failed to create pool: %v", err)
	}
	if err = pool.Ping(context.Background()); err != nil {
		log.Panicf("failed to connect to db: %v", err)
	}
	if err = infraDB.InitSchema(context.Background(), pool); err != nil {
		log.Panicf("failed to init schema: %v", err)
	}
	uowFactory := db.NewUoWFactory(pool)

	// Configs
	pushConfig := push.NewConfig()
	tipConfig := commands.NewTipConfig()
	outboxConfig := scheduler.NewOutboxConfig()

	// AWS
	cfg, err := awsConfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Panic("can't load aws config", err)
	}
	icons := storage.NewStorage(cfg)

	// AI providers, resolved once at startup so a misconfiguration fails fast
	registry := ai.NewRegistry(icons)
	textProvider, err := registry.Resolve(env.GetEnv("AI_PROVIDER", "openai"))
	if err != nil {
		log.Panicf("failed to resolve text provider: %v", err)
	}
	imageProvider, err := registry.Resolve(env.GetEnv("AI_IMAGE_PROVIDER", "openai"))
	if err != nil {
		log.Panicf("failed to resolve image provider: %v", err)
	}
	slog.Info("resolved providers", "text", textProvider.Name(), "image", imageProvider.Name())

	notifier := push.NewNotifier(pushConfig)
	store := repo.NewStore(uowFactory)

	baseCSS, err := os.ReadFile(env.GetEnv("CSS_BASE_PATH", "static/style.css"))
	if err != nil {
		slog.Warn("base stylesheet not readable, css jobs start from empty", "err", err)
	}

	handlers := &application.Collection{
		GenerateSite:  commands.NewGenerateSite(uowFactory),
		GenerateCSS:   commands.NewGenerateCSS(uowFactory, string(baseCSS)),
		GenerateIcon:  commands.NewGenerateIcon(imageProvider),
		UpdateAppIcon: commands.NewUpdateAppIcon(uowFactory, icons),
		Appify:        commands.NewAppify(uowFactory),
		Subscribe:     commands.NewSubscribe(uowFactory),
		Waitlist:      commands.NewWaitlist(uowFactory),
		Contact:       commands.NewContact(uowFactory),
		Tip:           commands.NewTip(tipConfig),
		GetSite:       query.NewGetSite(uowFactory),
		SiteStatus:    query.NewSiteStatus(uowFactory),
		CSSStatus:     query.NewCSSStatus(uowFactory),
		Manifest:      query.NewManifest(uowFactory),
		GlobalSites:   query.NewGlobalSites(uowFactory),
	}
	jobs := &application.Processors{
		GenerateSite: processors.NewGenerateSite(textProvider, store, notifier),
		GenerateCSS:  processors.NewGenerateCSS(textProvider, store),
	}

	server := rest.NewServer(handlers)
	app := fiber.New(fiber.Config{
		IdleTimeout: 5 * time.Second,
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins: env.GetEnv("CORS_ORIGINS", "http://localhost:3000"),
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Static("/static", "./static")
	server.RegisterRoutes(app)

	outboxPoller := scheduler.NewOutboxPoller(jobs, uowFactory, outboxConfig)
	go outboxPoller.Start()

	go func() {
		if err := app.Listen(":" + env.GetEnv("PORT", "8080")); err != nil {
			log.Panic(err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c
	fmt.Println("Gracefully shutting down...")
	_ = app.Shutdown()
	outboxPoller.Stop()

	fmt.Println("Running cleanup tasks...")
	uowFactory.Pool.Close()
	fmt.Println("Fiber was successfully shutdown.")
}
