package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go-stock-management/internal/handler"
	"go-stock-management/internal/messaging"
	"go-stock-management/internal/middleware"
	"go-stock-management/internal/model"
	"go-stock-management/internal/repository"
	"go-stock-management/internal/service"
	"go-stock-management/internal/ws"
	"go-stock-management/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (use a dedicated migration tool in production)
	db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Supplier{},
		&model.Customer{},
		&model.Product{},
		&model.Stock{},
		&model.Transaction{},
		&model.TransactionItem{},
	)

	// 3. Seed default admin user
	seedAdmin(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Optional Kafka producer for stock movement events
	var producer messaging.StockEventProducer = messaging.NopProducer{}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		topic := os.Getenv("KAFKA_TOPIC")
		if topic == "" {
			topic = "stock-events"
		}
		producer = messaging.NewKafkaProducer(strings.Split(brokers, ","), topic)
		defer producer.Close()
		log.Printf("Kafka producer enabled (topic %s)", topic)
	}

	// 6. Dependency Injection (Wiring Layers)
	store := repository.NewStore(db)
	userRepo := repository.NewUserRepo(db)

	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)
	categoryService := service.NewCategoryService(repository.NewCategoryRepo(db))
	supplierService := service.NewSupplierService(repository.NewSupplierRepo(db))
	customerService := service.NewCustomerService(repository.NewCustomerRepo(db))
	productService := service.NewProductService(store)
	transactionService := service.NewTransactionService(store, wsHub, producer)
	stockService := service.NewStockService(store, transactionService)
	statisticsService := service.NewStatisticsService(repository.NewStatisticsRepo(db))

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	customerHandler := handler.NewCustomerHandler(customerService)
	productHandler := handler.NewProductHandler(productService)
	transactionHandler := handler.NewTransactionHandler(transactionService)
	stockHandler := handler.NewStockHandler(stockService)
	statisticsHandler := handler.NewStatisticsHandler(statisticsService)

	// 7. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Stock Management API v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 8. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/profile", middleware.RequireAuth(userRepo), authHandler.Profile)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))
	adminOnly := middleware.RequireRole(model.RoleAdmin)
	managerUp := middleware.RequireRole(model.RoleAdmin, model.RoleManager)

	// Statistics
	protected.Get("/statistics", statisticsHandler.GetStatistics)

	// Categories
	protected.Get("/categories", categoryHandler.GetCategories)
	protected.Get("/categories/:id", categoryHandler.GetCategory)
	protected.Post("/categories", managerUp, categoryHandler.CreateCategory)
	protected.Put("/categories/:id", managerUp, categoryHandler.UpdateCategory)
	protected.Delete("/categories/:id", adminOnly, categoryHandler.DeleteCategory)

	// Suppliers
	protected.Get("/suppliers", supplierHandler.GetSuppliers)
	protected.Get("/suppliers/:id", supplierHandler.GetSupplier)
	protected.Post("/suppliers", managerUp, supplierHandler.CreateSupplier)
	protected.Put("/suppliers/:id", managerUp, supplierHandler.UpdateSupplier)
	protected.Delete("/suppliers/:id", adminOnly, supplierHandler.DeleteSupplier)

	// Customers
	protected.Get("/customers", customerHandler.GetCustomers)
	protected.Get("/customers/:id", customerHandler.GetCustomer)
	protected.Post("/customers", customerHandler.CreateCustomer)
	protected.Put("/customers/:id", customerHandler.UpdateCustomer)
	protected.Delete("/customers/:id", adminOnly, customerHandler.DeleteCustomer)

	// Products
	protected.Get("/products", productHandler.GetProducts)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Post("/products", managerUp, productHandler.CreateProduct)
	protected.Put("/products/:id", managerUp, productHandler.UpdateProduct)
	protected.Delete("/products/:id", adminOnly, productHandler.DeleteProduct)

	// Stock (ledger reads + admin override + return flow)
	protected.Get("/stock", stockHandler.GetStocks)
	protected.Get("/stock/:id", stockHandler.GetStock)
	protected.Get("/stock/product/:productId", stockHandler.GetStockByProduct)
	protected.Put("/stock/:id", adminOnly, stockHandler.UpdateStock)
	protected.Patch("/stock/out/:transactionId/return", stockHandler.MarkTransactionReturned)

	// Transactions
	protected.Get("/transactions", transactionHandler.GetTransactions)
	protected.Get("/transactions/:id", transactionHandler.GetTransaction)
	protected.Post("/transactions", transactionHandler.CreateTransaction)
	protected.Post("/transactions/stock/out", transactionHandler.CreateStockOut)
	protected.Put("/transactions/:id", transactionHandler.UpdateTransaction)
	protected.Delete("/transactions/:id", managerUp, transactionHandler.DeleteTransaction)

	// User Management (admin only)
	protected.Get("/users", adminOnly, userHandler.GetUsers)
	protected.Get("/users/:id", adminOnly, userHandler.GetUser)
	protected.Post("/users", adminOnly, userHandler.CreateUser)
	protected.Put("/users/:id", adminOnly, userHandler.UpdateUser)
	protected.Delete("/users/:id", adminOnly, userHandler.DeleteUser)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 9. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedAdmin creates the default admin user if no account exists yet.
func seedAdmin(db *gorm.DB) {
	ctx := context.Background()
	userRepo := repository.NewUserRepo(db)

	if _, err := userRepo.FindByEmail(ctx, "admin@example.com"); err == nil {
		return
	}

	admin := &model.User{
		Email:    "admin@example.com",
		Name:     "Administrator",
		Role:     model.RoleAdmin,
		IsActive: true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	if err := admin.SetPassword(password); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
	} else {
		log.Println("Admin user created: admin@example.com")
	}
}
