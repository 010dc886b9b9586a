package main

import (
	"flag"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"fintrack/config"
	"fintrack/database"
	"fintrack/handlers"
	"fintrack/middleware"
	"fintrack/services"
	"fintrack/storage"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "Run migrations and exit")
	flag.Parse()

	cfg := config.Load()

	log := logrus.New()
	if cfg.IsProduction() {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	secret := cfg.JWTSecret
	if secret == "" {
		log.Warn("JWT_SECRET not set, using a default key. This is NOT secure for production!")
		secret = "default-key-for-development-only"
	}

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	defer db.Close()

	log.Info("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}
	if *migrateOnly {
		log.Info("Migrations completed successfully. Exiting.")
		return
	}

	seeder := services.NewSeeder(db, log)
	if err := seeder.EnsureDefaultUser(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.WithError(err).Warn("failed to seed default user")
	}

	app := &application{
		auth: handlers.NewAuthHandler(
			storage.NewUserStore(db), seeder, []byte(secret), cfg.IsProduction(), log),
		transactions:  handlers.NewTransactionHandler(storage.NewTransactionStore(db), log),
		categories:    handlers.NewCategoryHandler(storage.NewCategoryStore(db), log),
		subcategories: handlers.NewSubcategoryHandler(storage.NewSubcategoryStore(db), log),
		accounts:      handlers.NewMasterHandler(storage.NewAccountStore(db), "Account", log),
		statuses:      handlers.NewMasterHandler(storage.NewStatusStore(db), "Status", log),
		modes:         handlers.NewMasterHandler(storage.NewModeStore(db), "Mode", log),
		platforms:     handlers.NewMasterHandler(storage.NewPlatformStore(db), "Platform", log),
	}

	// Create router
	r := mux.NewRouter()
	r.Use(middleware.EnableCORS)

	// Register routes with both direct paths and /api prefix to keep the
	// front end's base-URL configuration flexible
	app.registerRoutes(r, []byte(secret))
	apiRouter := r.PathPrefix("/api").Subrouter()
	app.registerRoutes(apiRouter, []byte(secret))

	srv := &http.Server{
		Handler:      r,
		Addr:         ":" + cfg.Port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	log.WithField("port", cfg.Port).Info("Starting server...")
	log.Fatal(srv.ListenAndServe())
}

type application struct {
	auth          *handlers.AuthHandler
	transactions  *handlers.TransactionHandler
	categories    *handlers.CategoryHandler
	subcategories *handlers.SubcategoryHandler
	accounts      *handlers.MasterHandler
	statuses      *handlers.MasterHandler
	modes         *handlers.MasterHandler
	platforms     *handlers.MasterHandler
}

// registerRoutes sets up all API routes
func (app *application) registerRoutes(r *mux.Router, secret []byte) {
	// Public routes (no auth required)
	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET", "OPTIONS")
	r.HandleFunc("/auth/login", app.auth.Login).Methods("POST")
	r.HandleFunc("/auth/logout", app.auth.Logout).Methods("POST")

	// Create a subrouter for authenticated routes
	protected := r.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(secret))

	protected.HandleFunc("/auth/me", app.auth.Me).Methods("GET")

	// Transaction routes; fixed paths must register before the {id} routes
	protected.HandleFunc("/transactions", app.transactions.List).Methods("GET")
	protected.HandleFunc("/transactions", app.transactions.Create).Methods("POST")
	protected.HandleFunc("/transactions/bulk", app.transactions.BulkCreate).Methods("POST")
	protected.HandleFunc("/transactions/summary", app.transactions.Summary).Methods("GET")
	protected.HandleFunc("/transactions/txn/{transactionId}", app.transactions.GetByTransactionID).Methods("GET")
	protected.HandleFunc("/transactions/{id}", app.transactions.Get).Methods("GET")
	protected.HandleFunc("/transactions/{id}", app.transactions.Update).Methods("PUT")
	protected.HandleFunc("/transactions/{id}", app.transactions.Delete).Methods("DELETE")

	// Master registries
	protected.HandleFunc("/masters/categories", app.categories.List).Methods("GET")
	protected.HandleFunc("/masters/categories", app.categories.Create).Methods("POST")
	protected.HandleFunc("/masters/categories/{id}", app.categories.Update).Methods("PUT")
	protected.HandleFunc("/masters/categories/{id}", app.categories.Delete).Methods("DELETE")

	protected.HandleFunc("/masters/subcategories", app.subcategories.List).Methods("GET")
	protected.HandleFunc("/masters/subcategories", app.subcategories.Create).Methods("POST")
	protected.HandleFunc("/masters/subcategories/category/{categoryId}", app.subcategories.ListByCategory).Methods("GET")
	protected.HandleFunc("/masters/subcategories/{id}", app.subcategories.Update).Methods("PUT")
	protected.HandleFunc("/masters/subcategories/{id}", app.subcategories.Delete).Methods("DELETE")

	registerMaster := func(path string, h *handlers.MasterHandler) {
		protected.HandleFunc(path, h.List).Methods("GET")
		protected.HandleFunc(path, h.Create).Methods("POST")
		protected.HandleFunc(path+"/{id}", h.Update).Methods("PUT")
		protected.HandleFunc(path+"/{id}", h.Delete).Methods("DELETE")
	}
	registerMaster("/masters/accounts", app.accounts)
	registerMaster("/masters/statuses", app.statuses)
	registerMaster("/masters/modes", app.modes)
	registerMaster("/masters/platforms", app.platforms)
}
