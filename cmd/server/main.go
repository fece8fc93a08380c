package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/pocketledger/backend/docs"
	"github.com/pocketledger/backend/internal/database"
	"github.com/pocketledger/backend/internal/events"
	mW "github.com/pocketledger/backend/internal/middleware"
	"github.com/pocketledger/backend/internal/services"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Pocket Ledger API
// @version 1.0
// @description Personal finance ledger with account reconciliation, recurring items and budget alerts
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
	// Initialize config
	viper.SetConfigFile(".env") // explicitly point to .env file
	viper.AutomaticEnv()        // allow environment variables to override .env

	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.name", "DATABASE_NAME")
	viper.BindEnv("database.ssl_mode", "DATABASE_SSL_MODE")

	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")

	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")
	viper.BindEnv("kafka.brokers", "KAFKA_BROKERS")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Config file not found, using defaults: %v", err)
	}

	// Initialize Swagger docs
	docs.SwaggerInfo.Title = "Pocket Ledger API"
	docs.SwaggerInfo.Description = "Personal finance ledger with account reconciliation, recurring items and budget alerts"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = "localhost:8080"
	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	// Initialize services
	db := database.InitDatabase()
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	redisClient := database.InitRedis()
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Kafka is optional; with no brokers configured, events are dropped
	var publisher events.Publisher
	if brokers := viper.GetString("kafka.brokers"); brokers != "" {
		kafkaPublisher := events.NewKafkaPublisher(strings.Split(brokers, ","))
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Printf("Kafka publisher connected to %s", brokers)
	}

	transactionService := services.NewTransactionService(db, redisClient, publisher)
	accountService := services.NewAccountService(db)
	cardService := services.NewCardService(db)
	recurringService := services.NewRecurringService(db, transactionService)
	budgetService := services.NewBudgetService(db, transactionService)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(mW.SecurityHeaders)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Access-Control-Allow-Origin"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"),
	))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mW.AuthMiddleware)

		r.Get("/metadata", services.GetReferenceData)

		// Accounts and balances
		r.Get("/accounts", accountService.ListAccounts)
		r.Post("/accounts", accountService.CreateAccount)
		r.Put("/accounts/{accountId}", accountService.UpdateAccount)
		r.Delete("/accounts/{accountId}", accountService.DeleteAccount)
		r.Get("/accounts/{accountId}/balances", accountService.GetBalanceHistory)
		r.Post("/balances", accountService.RecordBalances)
		r.Get("/reports/net-worth", accountService.GetNetWorth)

		// Credit cards
		r.Get("/cards", cardService.ListCards)
		r.Post("/cards", cardService.CreateCard)
		r.Get("/cards/{cardId}", cardService.GetCard)
		r.Put("/cards/{cardId}", cardService.UpdateCard)
		r.Delete("/cards/{cardId}", cardService.DeleteCard)

		// Transactions
		r.Get("/transactions", transactionService.ListTransactions)
		r.Post("/transactions", transactionService.CreateTransaction)
		r.Get("/transactions/recent", transactionService.GetRecentTransactions)
		r.Get("/transactions/summary", transactionService.GetMonthlySummary)
		r.Get("/transactions/{txId}", transactionService.GetTransaction)
		r.Put("/transactions/{txId}", transactionService.UpdateTransaction)
		r.Delete("/transactions/{txId}", transactionService.DeleteTransaction)

		// Recurring items
		r.Get("/recurring", recurringService.ListRecurringItems)
		r.Post("/recurring", recurringService.CreateRecurringItem)
		r.Put("/recurring/{itemId}", recurringService.UpdateRecurringItem)
		r.Delete("/recurring/{itemId}", recurringService.DeleteRecurringItem)
		r.Post("/recurring/process", recurringService.ProcessRecurringItems)

		// Budgets and alerts
		r.Get("/budgets", budgetService.GetBudgetStatuses)
		r.Put("/budgets", budgetService.UpsertBudgetHandler)
		r.Delete("/budgets/{budgetId}", budgetService.DeleteBudgetHandler)
		r.Get("/budgets/config", budgetService.GetBudgetConfig)
		r.Put("/budgets/config", budgetService.UpdateBudgetConfig)
		r.Get("/alerts", budgetService.ListAlertsHandler)
		r.Post("/alerts/check", budgetService.CheckAlertsHandler)
		r.Put("/alerts/{alertId}/clear", budgetService.ClearAlertHandler)
		r.Put("/alerts/{alertId}/read", budgetService.MarkAlertReadHandler)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Start server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server stopped")
}
