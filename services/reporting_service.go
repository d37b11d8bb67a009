package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"order-tracking-service/repository"
)

// ReportingService exposes read-only aggregates over orders, invoices and
// expenses. It never mutates state.
type ReportingService struct {
	reports repository.ReportingRepository
	logger  *zap.Logger
}

func NewReportingService(reports repository.ReportingRepository, logger *zap.Logger) *ReportingService {
	return &ReportingService{reports: reports, logger: logger}
}

// RevenueReport is total order revenue over an optional date range.
type RevenueReport struct {
	TotalRevenue float64    `json:"total_revenue"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
}

// OrderCountReport is the number of orders over an optional date range.
type OrderCountReport struct {
	TotalOrders int64      `json:"total_orders"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

// TotalRevenue sums order totals in the range. A range with no orders reports
// zero revenue rather than an error.
func (s *ReportingService) TotalRevenue(ctx context.Context, start, end *time.Time) (*RevenueReport, *ServiceError) {
	revenue, err := s.reports.TotalRevenue(ctx, start, end)
	if err != nil && err != repository.ErrNotFound {
		s.logger.Error("revenue report failed", zap.Error(err))
		return nil, internalError("Failed to compute revenue")
	}
	return &RevenueReport{TotalRevenue: revenue, StartDate: start, EndDate: end}, nil
}

// OrderCount counts orders in the range.
func (s *ReportingService) OrderCount(ctx context.Context, start, end *time.Time) (*OrderCountReport, *ServiceError) {
	count, err := s.reports.OrderCount(ctx, start, end)
	if err != nil {
		s.logger.Error("order count report failed", zap.Error(err))
		return nil, internalError("Failed to count orders")
	}
	return &OrderCountReport{TotalOrders: count, StartDate: start, EndDate: end}, nil
}

// MostOrderedProduct returns the product with the highest total ordered
// quantity across all order lines.
func (s *ReportingService) MostOrderedProduct(ctx context.Context) (*repository.PopularProduct, *ServiceError) {
	product, err := s.reports.MostOrderedProduct(ctx)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, notFound("No ordered products found")
		}
		s.logger.Error("popular product report failed", zap.Error(err))
		return nil, internalError("Failed to compute most ordered product")
	}
	return product, nil
}

// ExpensesByCategory sums expenses per category in the range.
func (s *ReportingService) ExpensesByCategory(ctx context.Context, start, end *time.Time) ([]repository.CategoryExpense, *ServiceError) {
	report, err := s.reports.ExpensesByCategory(ctx, start, end)
	if err != nil {
		s.logger.Error("expense report failed", zap.Error(err))
		return nil, internalError("Failed to compute expense report")
	}
	return report, nil
}

// ClientSpendReport aggregates invoiced spend per client.
func (s *ReportingService) ClientSpendReport(ctx context.Context) ([]repository.ClientSpend, *ServiceError) {
	report, err := s.reports.ClientSpendReport(ctx)
	if err != nil {
		s.logger.Error("client spend report failed", zap.Error(err))
		return nil, internalError("Failed to compute client spend report")
	}
	return report, nil
}

// VendorSalesReport aggregates invoiced sales per vendor.
func (s *ReportingService) VendorSalesReport(ctx context.Context) ([]repository.VendorSales, *ServiceError) {
	report, err := s.reports.VendorSalesReport(ctx)
	if err != nil {
		s.logger.Error("vendor sales report failed", zap.Error(err))
		return nil, internalError("Failed to compute vendor sales report")
	}
	return report, nil
}
