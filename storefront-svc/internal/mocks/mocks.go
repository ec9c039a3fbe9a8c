// Package mocks holds testify mocks for the service-layer collaborators.
package mocks

import (
	"context"

	"brewpoint/storefront-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type CatalogRepository struct {
	mock.Mock
}

func (m *CatalogRepository) ListProducts() ([]domain.Product, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *CatalogRepository) GetProduct(id int) (*domain.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *CatalogRepository) FeaturedProducts(limit int) ([]domain.Product, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

type TableRepository struct {
	mock.Mock
}

func (m *TableRepository) ListTables() ([]domain.Table, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Table), args.Error(1)
}

func (m *TableRepository) GetTableQRCode(tableNumber int) ([]byte, error) {
	args := m.Called(tableNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *TableRepository) SaveTableQRCode(tableNumber int, qr []byte) error {
	args := m.Called(tableNumber, qr)
	return args.Error(0)
}

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) CreateTableOrder(order *domain.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *OrderRepository) CreateWebOrder(order *domain.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *OrderRepository) GetOrder(orderID int) (*domain.Order, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

type CartStorage struct {
	mock.Mock
}

func (m *CartStorage) Load(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CartLine), args.Error(1)
}

func (m *CartStorage) Save(ctx context.Context, sessionID string, lines []domain.CartLine) error {
	args := m.Called(ctx, sessionID, lines)
	return args.Error(0)
}

func (m *CartStorage) Clear(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type OrderPublisher struct {
	mock.Mock
}

func (m *OrderPublisher) PublishOrder(ctx context.Context, event domain.OrderEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type QRGenerator struct {
	mock.Mock
}

func (m *QRGenerator) Generate(tableNumber int) ([]byte, error) {
	args := m.Called(tableNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
