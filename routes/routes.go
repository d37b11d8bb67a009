package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"order-tracking-service/controllers"
)

// Controllers bundles every HTTP controller for route registration.
type Controllers struct {
	Orders    *controllers.OrderController
	Shipping  *controllers.ShippingController
	Invoices  *controllers.InvoiceController
	Products  *controllers.ProductController
	Clients   *controllers.ClientController
	Vendors   *controllers.VendorController
	Expenses  *controllers.ExpenseController
	Reporting *controllers.ReportingController
}

// Register sets up all routes.
func Register(r *gin.Engine, c Controllers) {
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	orders := r.Group("/orders")
	{
		orders.POST("", c.Orders.CreateOrder)
		orders.GET("", c.Orders.GetOrders)
		orders.GET("/:id", c.Orders.GetOrder)
		orders.PATCH("/:id/product", c.Orders.EditOrder)
		orders.POST("/:id/confirm-payment", c.Orders.ConfirmPayment)
		orders.GET("/:id/status", c.Orders.TrackOrder)
		orders.PUT("/:id/status", c.Orders.OverrideStatus)
		orders.GET("/:id/history", c.Orders.OrderHistory)

		orders.POST("/:id/shipments", c.Shipping.CreateShipment)
		orders.POST("/:id/shipments/book", c.Shipping.BookShipment)
		orders.PATCH("/:id/shipments", c.Shipping.UpdateShipment)
		orders.GET("/:id/shipments/track", c.Shipping.TrackShipment)

		orders.POST("/:id/invoice", c.Invoices.GenerateInvoice)
		orders.GET("/:id/invoice", c.Invoices.GetOrderInvoice)
		orders.GET("/:id/invoice/payment-status", c.Invoices.PaymentStatus)
	}

	// Global history sits outside /orders to keep the :id wildcard clean.
	r.GET("/order-history", c.Orders.GlobalHistory)

	invoices := r.Group("/invoices")
	{
		invoices.GET("", c.Invoices.GetInvoices)
		invoices.GET("/:id", c.Invoices.GetInvoice)
		invoices.PATCH("/:id", c.Invoices.UpdateInvoice)
		invoices.DELETE("/:id", c.Invoices.DeleteInvoice)
	}

	products := r.Group("/products")
	{
		products.POST("", c.Products.CreateProduct)
		products.GET("", c.Products.GetProducts)
		products.GET("/:id", c.Products.GetProduct)
		products.PATCH("/:id", c.Products.UpdateProduct)
		products.DELETE("/:id", c.Products.DeleteProduct)
		products.GET("/:id/availability", c.Products.Availability)
	}

	clients := r.Group("/clients")
	{
		clients.POST("", c.Clients.CreateClient)
		clients.GET("", c.Clients.GetClients)
		clients.GET("/:id", c.Clients.GetClient)
		clients.PATCH("/:id", c.Clients.UpdateClient)
		clients.DELETE("/:id", c.Clients.DeleteClient)
		clients.GET("/:id/orders", c.Clients.ClientOrders)
	}

	vendors := r.Group("/vendors")
	{
		vendors.POST("", c.Vendors.CreateVendor)
		vendors.GET("", c.Vendors.GetVendors)
		vendors.GET("/:id", c.Vendors.GetVendor)
		vendors.PATCH("/:id", c.Vendors.UpdateVendor)
		vendors.DELETE("/:id", c.Vendors.DeleteVendor)
	}

	expenses := r.Group("/expenses")
	{
		expenses.POST("", c.Expenses.CreateExpense)
		expenses.GET("", c.Expenses.GetExpenses)
		expenses.GET("/categories", c.Expenses.Categories)
		expenses.GET("/summary", c.Expenses.Summary)
		expenses.PATCH("/:id", c.Expenses.UpdateExpense)
		expenses.DELETE("/:id", c.Expenses.DeleteExpense)
	}

	reports := r.Group("/reports")
	{
		reports.GET("/revenue", c.Reporting.TotalRevenue)
		reports.GET("/orders", c.Reporting.OrderCount)
		reports.GET("/popular-product", c.Reporting.MostOrderedProduct)
		reports.GET("/expenses", c.Reporting.ExpensesByCategory)
		reports.GET("/client-spend", c.Reporting.ClientSpendReport)
		reports.GET("/vendor-sales", c.Reporting.VendorSalesReport)
	}
}
