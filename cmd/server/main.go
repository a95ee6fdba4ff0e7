package main

import (
	"context"

	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/linemk/reseller-shop/internal/app"
	"github.com/linemk/reseller-shop/internal/app/handlers"
	"github.com/linemk/reseller-shop/internal/config"
	"github.com/linemk/reseller-shop/internal/lib/logger"
	"github.com/linemk/reseller-shop/internal/lib/logger/handlers/urllog"
	"github.com/linemk/reseller-shop/internal/service"
	"github.com/linemk/reseller-shop/internal/storage"
	"github.com/pkg/errors"
)

func main() {
	// переменные окружения из .env, если файл существует
	_ = godotenv.Load()

	// загрузка конфигурации
	cfg := config.MustLoad()

	// инициализация логгера, зависит от настройки окружения
	log := logger.SetupLogger(cfg.Env)
	log.Info("starting app", slog.String("env", cfg.Env))

	// загружаем объект приложения, конфигом и подключением к БД
	application, err := app.NewApp(log, cfg)
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize app"))
	}
	defer application.Close()

	router := chi.NewRouter()
	// настройка middleware
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	// открытый API: разрешены любые источники, методы и заголовки
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	// реализация слоев по работе с БД по каждому направлению
	store := storage.NewDocumentStore(application.DB)
	supplierRepo := storage.NewSupplierRepository(store)
	assetRepo := storage.NewAssetRepository(store)
	orderRepo := storage.NewOrderRepository(store)

	catalogService := service.NewCatalogService(application.Logger, supplierRepo, assetRepo)
	orderService := service.NewOrderService(application.Logger, orderRepo, assetRepo, cfg.Downloads.Root)
	seedService := service.NewSeedService(application.Logger, supplierRepo, assetRepo)

	// эндпоинт живости
	router.Get("/", handlers.RootHandler(application.Logger))
	// диагностика БД и коллекций
	router.Get("/test", handlers.TestHandler(application.Logger, cfg, store))
	// сидинг демо-данных
	router.Post("/seed", handlers.SeedHandler(application.Logger, seedService))
	// каталог
	router.Get("/suppliers", handlers.SuppliersHandler(application.Logger, catalogService))
	router.Get("/assets", handlers.AssetsHandler(application.Logger, catalogService))
	// создание заказа и выдача токена
	router.Post("/orders", handlers.CreateOrderHandler(application.Logger, orderService))
	// скачивание по токену (параметр в path — токен)
	router.Get("/download/{token}", handlers.DownloadHandler(application.Logger, orderService))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address(),
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.Any("error", err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	stopSign := <-stop
	log.Info("received shutdown signal", slog.String("signal", stopSign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", slog.Any("error", err))
	}
	log.Info("server gracefully stopped")
}
