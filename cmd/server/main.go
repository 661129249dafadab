package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/fadinha/embroidery_shop/internal/config"
	"github.com/fadinha/embroidery_shop/internal/db"
	"github.com/fadinha/embroidery_shop/internal/es"
	"github.com/fadinha/embroidery_shop/internal/handlers"
	"github.com/fadinha/embroidery_shop/internal/hash"
	"github.com/fadinha/embroidery_shop/internal/imagestore"
	"github.com/fadinha/embroidery_shop/internal/logging"
	authmw "github.com/fadinha/embroidery_shop/internal/middleware/auth"
	"github.com/fadinha/embroidery_shop/internal/mykafka"
	"github.com/fadinha/embroidery_shop/internal/repo"
	"github.com/fadinha/embroidery_shop/internal/service"
	"github.com/fadinha/embroidery_shop/internal/service/search"
	"github.com/fadinha/embroidery_shop/internal/service/token"
	httpserver "github.com/fadinha/embroidery_shop/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)
	slog.SetDefault(logger)

	ctx := logging.IntoContext(context.Background(), logger)

	gdb, err := db.Open(ctx, configuration)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	scheme := hash.ByName(configuration.PASSWORD_SCHEME)
	if err := db.SeedAdmin(ctx, gdb, scheme); err != nil {
		log.Fatalf("admin seed: %v", err)
	}

	images, err := imagestore.New(configuration.IMAGE_DIR)
	if err != nil {
		log.Fatalf("image store init: %v", err)
	}

	prod, err := mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
	if err != nil {
		log.Fatalf("kafka producer init: %v", err)
	}

	esClient, err := es.NewClient(configuration)
	if err != nil {
		log.Fatalf("elasticsearch init: %v", err)
	}

	store := repo.New(gdb)
	authSvc := &service.AuthService{Repo: store, Scheme: scheme}
	catalogSvc := &service.CatalogService{Repo: store, Images: images, ES: esClient}
	orderSvc := &service.OrderService{Repo: store, Images: images, Catalog: catalogSvc}
	rosterSvc := &service.RosterService{Repo: store, Auth: authSvc}
	searchSvc := &search.Service{ES: esClient, Repo: store}
	tokenSvc := &token.Service{
		DB:            gdb,
		JWTSecret:     []byte(configuration.JWT_SECRET),
		RefreshSecret: []byte(configuration.REFRESH_SECRET),
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqCtx := logging.IntoContext(c.Request().Context(), logger)
			c.SetRequest(c.Request().WithContext(reqCtx))
			return next(c)
		}
	})

	deps := httpserver.Deps{
		AuthHandler:    &handlers.AuthHandler{Auth: authSvc, Tokens: tokenSvc, Producer: prod},
		ProductHandler: &handlers.ProductHandler{Catalog: catalogSvc, Producer: prod},
		OrderHandler:   &handlers.OrderHandler{Orders: orderSvc, Producer: prod},
		RosterHandler:  &handlers.RosterHandler{Roster: rosterSvc, Producer: prod},
		SearchHandler:  &handlers.SearchHandler{Svc: searchSvc},
		AuthMW:         &authmw.Middleware{Tokens: tokenSvc},
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.Addr,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
