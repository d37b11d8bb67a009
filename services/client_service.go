package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"order-tracking-service/models"
	"order-tracking-service/repository"
)

// ClientService manages client records. Emails are unique across clients.
type ClientService struct {
	clients repository.ClientRepository
	orders  repository.OrderRepository
	logger  *zap.Logger
}

func NewClientService(clients repository.ClientRepository, orders repository.OrderRepository, logger *zap.Logger) *ClientService {
	return &ClientService{clients: clients, orders: orders, logger: logger}
}

// CreateClient registers a new client.
func (s *ClientService) CreateClient(ctx context.Context, req *models.CreateClientRequest) (*models.Client, *ServiceError) {
	if _, err := s.clients.FindByEmail(ctx, req.Email); err == nil {
		return nil, conflict("Client with this email already exists")
	} else if err != repository.ErrNotFound {
		s.logger.Error("client lookup failed", zap.Error(err))
		return nil, internalError("Failed to create client")
	}

	client := &models.Client{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	}
	if err := s.clients.Create(ctx, client); err != nil {
		if err == repository.ErrConflict {
			return nil, conflict("Client with this email already exists")
		}
		s.logger.Error("client persist failed", zap.String("email", req.Email), zap.Error(err))
		return nil, internalError("Failed to create client")
	}

	s.logger.Info("client created", zap.String("client_id", client.ID.String()))
	return client, nil
}

// GetClient returns a single client.
func (s *ClientService) GetClient(ctx context.Context, id uuid.UUID) (*models.Client, *ServiceError) {
	return s.findClient(ctx, id)
}

// GetClients returns a page of clients, newest first.
func (s *ClientService) GetClients(ctx context.Context, page, limit int) ([]models.Client, MetaData, *ServiceError) {
	clients, total, err := s.clients.FindAll(ctx, page, limit)
	if err != nil {
		s.logger.Error("client list failed", zap.Error(err))
		return nil, MetaData{}, internalError("Failed to fetch clients")
	}
	return clients, newMetaData(page, limit, total), nil
}

// UpdateClient merges the fields present in the request into the client. A
// changed email must stay unique.
func (s *ClientService) UpdateClient(ctx context.Context, id uuid.UUID, req *models.UpdateClientRequest) (*models.Client, *ServiceError) {
	client, svcErr := s.findClient(ctx, id)
	if svcErr != nil {
		return nil, svcErr
	}

	if req.Email != nil && *req.Email != client.Email {
		if _, err := s.clients.FindByEmail(ctx, *req.Email); err == nil {
			return nil, conflict("Client with this email already exists")
		} else if err != repository.ErrNotFound {
			s.logger.Error("client lookup failed", zap.Error(err))
			return nil, internalError("Failed to update client")
		}
		client.Email = *req.Email
	}
	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.PhoneNumber != nil {
		client.PhoneNumber = *req.PhoneNumber
	}

	if err := s.clients.Update(ctx, client); err != nil {
		s.logger.Error("client update failed", zap.String("client_id", id.String()), zap.Error(err))
		return nil, internalError("Failed to update client")
	}
	return client, nil
}

// DeleteClient removes the client record. Orders keep their client reference
// for the audit trail.
func (s *ClientService) DeleteClient(ctx context.Context, id uuid.UUID) *ServiceError {
	if err := s.clients.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return notFound("Client not found")
		}
		s.logger.Error("client delete failed", zap.String("client_id", id.String()), zap.Error(err))
		return internalError("Failed to delete client")
	}

	s.logger.Info("client deleted", zap.String("client_id", id.String()))
	return nil
}

// ClientOrders returns a page of the client's orders, newest first.
func (s *ClientService) ClientOrders(ctx context.Context, id uuid.UUID, page, limit int) ([]models.Order, MetaData, *ServiceError) {
	if _, svcErr := s.findClient(ctx, id); svcErr != nil {
		return nil, MetaData{}, svcErr
	}

	orders, total, err := s.orders.FindByClientID(ctx, id, page, limit)
	if err != nil {
		s.logger.Error("client orders list failed", zap.String("client_id", id.String()), zap.Error(err))
		return nil, MetaData{}, internalError("Failed to fetch client orders")
	}
	return orders, newMetaData(page, limit, total), nil
}

func (s *ClientService) findClient(ctx context.Context, id uuid.UUID) (*models.Client, *ServiceError) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, notFound("Client not found")
		}
		s.logger.Error("client lookup failed", zap.Error(err))
		return nil, internalError("Failed to fetch client")
	}
	return client, nil
}
