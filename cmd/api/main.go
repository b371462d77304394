package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/PDHeisenberg/cardwise/internal/catalog"
	"github.com/PDHeisenberg/cardwise/internal/classifier"
	"github.com/PDHeisenberg/cardwise/internal/config"
	"github.com/PDHeisenberg/cardwise/internal/handler"
	"github.com/PDHeisenberg/cardwise/internal/matcher"
	"github.com/PDHeisenberg/cardwise/internal/middleware"
	"github.com/PDHeisenberg/cardwise/internal/notify"
	"github.com/PDHeisenberg/cardwise/internal/optimizer"
	"github.com/PDHeisenberg/cardwise/internal/passkit"
	"github.com/PDHeisenberg/cardwise/internal/pipeline"
	"github.com/PDHeisenberg/cardwise/internal/repository"
	"github.com/PDHeisenberg/cardwise/internal/service"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Load the card catalog. A missing or malformed catalog is non-fatal:
	// the system degrades to "no recommendations possible".
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		if !errors.Is(err, catalog.ErrLoad) {
			logger.Fatalf("Failed to load catalog: %v", err)
		}
		logger.Warnf("Running with empty card catalog: %v", err)
		cat = catalog.Empty()
	} else {
		logger.Infof("Loaded %d card products (catalog v%s, %s)", cat.Len(), cat.Version, cat.Country)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	sender := notify.NewSender(cfg, logger)
	dispatcher := notify.NewDispatcher(sender, repo, logger)

	cls := classifier.Default()
	m := matcher.New(cat)
	opt := optimizer.New(cat)
	pipe := pipeline.New(cls, m, opt, repo, dispatcher, logger, cfg.HomeCurrency)

	svc := service.NewService(repo, pipe, opt, sender, logger, cfg)
	h := handler.NewHandler(svc, passkit.NewGenerator(), cfg.PassOutDir)

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/transactions", h.IngestTransaction).Methods("POST")
	authRouter.HandleFunc("/transactions", h.ListTransactions).Methods("GET")
	authRouter.HandleFunc("/cards", h.ListCards).Methods("GET")
	authRouter.HandleFunc("/recommendations", h.Recommendations).Methods("GET")
	authRouter.HandleFunc("/preview", h.Preview).Methods("GET")
	authRouter.HandleFunc("/summary", h.Summary).Methods("GET")
	authRouter.HandleFunc("/passes", h.Passes).Methods("GET")

	// Schedule the weekly rewards digest
	c := cron.New()
	if _, err := c.AddFunc(cfg.DigestCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := svc.RunWeeklyDigest(ctx); err != nil {
			logger.Errorf("Weekly digest run failed: %v", err)
		}
	}); err != nil {
		logger.Fatalf("Failed to schedule weekly digest: %v", err)
	}
	c.Start()
	defer c.Stop()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
