package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/storefront/backend/internal/config"
	"github.com/storefront/backend/internal/events"
	"github.com/storefront/backend/internal/httpserver"
	"github.com/storefront/backend/internal/logging"
	mw "github.com/storefront/backend/internal/middleware"
	"github.com/storefront/backend/internal/mongodb"
	"github.com/storefront/backend/internal/repo"
	"github.com/storefront/backend/internal/search"
	"github.com/storefront/backend/internal/service"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := mongodb.Connect(configuration)
	if err != nil {
		log.Fatalf("mongodb connect error: %v", err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)
	if len(jwtSecret) == 0 {
		log.Fatal("JWT_SECRET environment variable not found")
	}

	var producer *events.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = events.NewProducer([]string{configuration.KAFKA_ADDRESS})
	}

	var searchHandler *httpserver.SearchHTTP
	if configuration.ES_URL != "" {
		esClient, err := search.NewClient(configuration)
		if err != nil {
			log.Fatalf("elasticsearch connect error: %v", err)
		}
		searchHandler = &httpserver.SearchHTTP{ES: esClient, Index: "products"}
	}

	store := &repo.MongoRepo{DB: db}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID())
	e.Use(mw.RequestLogger(logger))

	deps := httpserver.Deps{
		UserHandler: &httpserver.UserHTTP{
			Svc:      &service.UserService{Repo: store, JWTSecret: jwtSecret},
			Producer: producer,
		},
		WishlistHandler: &httpserver.WishlistHTTP{
			Svc:      &service.WishlistService{Users: store, Products: store},
			Producer: producer,
		},
		OrderHandler: &httpserver.OrderHTTP{
			Svc:      &service.OrderService{Orders: store, Users: store},
			Producer: producer,
		},
		ProductHandler: &httpserver.ProductHTTP{
			Svc: &service.ProductService{Products: store},
		},
		SearchHandler: searchHandler,
		JWTSecret:     jwtSecret,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.ADDR,
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
	logger.Info("server started", "addr", configuration.ADDR)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}
	if err := db.Close(ctx); err != nil {
		log.Printf("mongodb close error: %v", err)
	}
	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	logger.Info("shutdown complete")
}
