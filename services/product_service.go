package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"order-tracking-service/models"
	"order-tracking-service/repository"
)

// ProductService manages the product catalog. Stock is created and adjusted
// here, but once a product is live its stock only moves through the order
// reservation ledger.
type ProductService struct {
	products repository.ProductRepository
	vendors  repository.VendorRepository
	logger   *zap.Logger
}

func NewProductService(products repository.ProductRepository, vendors repository.VendorRepository, logger *zap.Logger) *ProductService {
	return &ProductService{products: products, vendors: vendors, logger: logger}
}

// ProductAvailability is the stock view of a product.
type ProductAvailability struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	InStock   bool      `json:"in_stock"`
	Stock     int       `json:"stock"`
}

// CreateProduct adds a catalog entry for an existing vendor. A vendor cannot
// carry two products with the same name.
func (s *ProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, *ServiceError) {
	vendor, err := s.vendors.FindByID(ctx, req.VendorID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, notFound("Vendor not found")
		}
		s.logger.Error("vendor lookup failed", zap.Error(err))
		return nil, internalError("Failed to create product")
	}
	if vendor.IsDeleted {
		return nil, badRequest("Vendor has been deleted")
	}

	if _, err := s.products.FindByNameAndVendor(ctx, req.Name, req.VendorID); err == nil {
		return nil, conflict("Product already exists for this vendor")
	} else if err != repository.ErrNotFound {
		s.logger.Error("product lookup failed", zap.Error(err))
		return nil, internalError("Failed to create product")
	}

	vendorID := req.VendorID
	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		VendorID:    &vendorID,
	}
	if err := s.products.Create(ctx, product); err != nil {
		s.logger.Error("product persist failed", zap.String("name", req.Name), zap.Error(err))
		return nil, internalError("Failed to create product")
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name),
	)
	return product, nil
}

// GetProduct returns a single product, including soft-deleted ones so
// historical references stay resolvable.
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, *ServiceError) {
	return s.findProduct(ctx, id)
}

// GetProducts returns a page of products, newest first.
func (s *ProductService) GetProducts(ctx context.Context, page, limit int) ([]models.Product, MetaData, *ServiceError) {
	products, total, err := s.products.FindAll(ctx, page, limit)
	if err != nil {
		s.logger.Error("product list failed", zap.Error(err))
		return nil, MetaData{}, internalError("Failed to fetch products")
	}
	return products, newMetaData(page, limit, total), nil
}

// UpdateProduct merges the fields present in the request into the product.
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, *ServiceError) {
	product, svcErr := s.findProduct(ctx, id)
	if svcErr != nil {
		return nil, svcErr
	}
	if product.IsDeleted {
		return nil, badRequest("Product has been deleted")
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Category != nil {
		product.Category = *req.Category
	}

	if err := s.products.Update(ctx, product); err != nil {
		s.logger.Error("product update failed", zap.String("product_id", id.String()), zap.Error(err))
		return nil, internalError("Failed to update product")
	}
	return product, nil
}

// DeleteProduct soft-deletes the product. Historical order lines keep their
// quantity and price but lose the product reference.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) *ServiceError {
	if err := s.products.SoftDelete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return notFound("Product not found")
		}
		s.logger.Error("product delete failed", zap.String("product_id", id.String()), zap.Error(err))
		return internalError("Failed to delete product")
	}

	s.logger.Info("product deleted", zap.String("product_id", id.String()))
	return nil
}

// Availability reports whether a product can currently be ordered.
func (s *ProductService) Availability(ctx context.Context, id uuid.UUID) (*ProductAvailability, *ServiceError) {
	product, svcErr := s.findProduct(ctx, id)
	if svcErr != nil {
		return nil, svcErr
	}
	return &ProductAvailability{
		ProductID: product.ID,
		Name:      product.Name,
		InStock:   !product.IsDeleted && product.Stock > 0,
		Stock:     product.Stock,
	}, nil
}

func (s *ProductService) findProduct(ctx context.Context, id uuid.UUID) (*models.Product, *ServiceError) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, notFound("Product not found")
		}
		s.logger.Error("product lookup failed", zap.Error(err))
		return nil, internalError("Failed to fetch product")
	}
	return product, nil
}
