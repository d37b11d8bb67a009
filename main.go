package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"order-tracking-service/controllers"
	"order-tracking-service/database"
	"order-tracking-service/logger"
	"order-tracking-service/providers"
	"order-tracking-service/repository"
	"order-tracking-service/routes"
	"order-tracking-service/services"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.Initialize(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zlog.Sync() //nolint:errcheck

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db) //nolint:errcheck

	// Repositories
	orderRepo := repository.NewGormOrderRepository(db)
	productRepo := repository.NewGormProductRepository(db)
	clientRepo := repository.NewGormClientRepository(db)
	vendorRepo := repository.NewGormVendorRepository(db)
	shipmentRepo := repository.NewGormShipmentRepository(db)
	invoiceRepo := repository.NewGormInvoiceRepository(db)
	expenseRepo := repository.NewGormExpenseRepository(db)
	reportingRepo := repository.NewGormReportingRepository(db)

	// External providers
	paymentGateway := services.NewStripeGateway(cfg.StripeSecretKey)
	carrier := providers.NewDHLProvider(cfg.DHLAPIKey)

	// Services
	orderService := services.NewOrderService(orderRepo, productRepo, clientRepo, paymentGateway, zlog)
	shippingService := services.NewShippingService(shipmentRepo, orderRepo, carrier, cfg.OriginAddress(), zlog)
	invoiceService := services.NewInvoiceService(invoiceRepo, orderRepo, zlog)
	productService := services.NewProductService(productRepo, vendorRepo, zlog)
	clientService := services.NewClientService(clientRepo, orderRepo, zlog)
	vendorService := services.NewVendorService(vendorRepo, zlog)
	expenseService := services.NewExpenseService(expenseRepo, zlog)
	reportingService := services.NewReportingService(reportingRepo, zlog)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger(zlog))

	// 30-second request timeout
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	routes.Register(r, routes.Controllers{
		Orders:    controllers.NewOrderController(orderService),
		Shipping:  controllers.NewShippingController(shippingService),
		Invoices:  controllers.NewInvoiceController(invoiceService),
		Products:  controllers.NewProductController(productService),
		Clients:   controllers.NewClientController(clientService),
		Vendors:   controllers.NewVendorController(vendorService),
		Expenses:  controllers.NewExpenseController(expenseService),
		Reporting: controllers.NewReportingController(reportingService),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("Server failed", zap.Error(err))
		}
	}()

	zlog.Info("Order tracking service started", zap.String("port", cfg.Port))
	<-quit
	zlog.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatal("Server forced to shutdown", zap.Error(err))
	}
	zlog.Info("Server exited cleanly")
}
