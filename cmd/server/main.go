package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/IvanREAL05/control-actividades-sub000/config"
	"github.com/IvanREAL05/control-actividades-sub000/internal/api/handler"
	"github.com/IvanREAL05/control-actividades-sub000/internal/api/router"
	"github.com/IvanREAL05/control-actividades-sub000/internal/live"
	"github.com/IvanREAL05/control-actividades-sub000/internal/repository"
	"github.com/IvanREAL05/control-actividades-sub000/internal/service"
	"github.com/IvanREAL05/control-actividades-sub000/pkg/clock"
	"github.com/IvanREAL05/control-actividades-sub000/pkg/database"
	applogger "github.com/IvanREAL05/control-actividades-sub000/pkg/logger"
	"github.com/IvanREAL05/control-actividades-sub000/pkg/qr"
	"github.com/IvanREAL05/control-actividades-sub000/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "ruta al archivo de configuración")
	flag.Parse()

	// 1. load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error al cargar configuración: %v\n", err)
		os.Exit(1)
	}

	// 2. logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error al inicializar logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("iniciando servicio",
		zap.Int("port", cfg.Server.Port),
		zap.String("timezone", cfg.School.Timezone),
	)

	// 3. database + migrations
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("conexión a base de datos falló", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("obtener sql.DB falló", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("migraciones fallaron", zap.Error(err))
	}

	// 4. Redis snapshot cache (optional: degrade without it)
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis no disponible, el snapshot se calculará en cada suscripción", zap.Error(err))
		rdb = nil
	}

	// 5. token codec and regional clock
	codec, err := qr.NewCodec(cfg.QR.EncryptionKey)
	if err != nil {
		logger.Fatal("códec QR falló", zap.Error(err))
	}
	reloj, err := clock.NewRegional(cfg.School.Timezone)
	if err != nil {
		logger.Fatal("zona horaria inválida", zap.Error(err))
	}

	// 6. dependency wiring: repository → hub → service → handler
	repo := repository.NewRepository(db)
	hub := live.NewHub(logger)

	deps := service.Deps{
		Repo:    repo,
		Codec:   codec,
		Reloj:   reloj,
		Pub:     hub,
		QRNonce: cfg.QR.Nonce,
		Logger:  logger,
	}
	// Assign only on success so the interfaces stay nil when Redis is absent.
	if rdb != nil {
		deps.Cache = rdb
		deps.Store = rdb
	}
	svc := service.NewService(deps)
	h := handler.NewHandler(svc, hub, logger)

	// 7. router
	engine := router.Setup(cfg, h, rdb, logger)

	// 8. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:     engine,
		ReadTimeout: 15 * time.Second,
		// No WriteTimeout: the live table holds long-lived websockets.
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info("servidor HTTP escuchando", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("servidor HTTP falló", zap.Error(err))
		}
	}()

	// 9. wait for termination signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("señal recibida, cerrando", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("cierre del servidor falló", zap.Error(err))
	}

	hub.Shutdown()

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Warn("cierre de Redis falló", zap.Error(err))
		}
	}

	logger.Info("servicio detenido")
}
