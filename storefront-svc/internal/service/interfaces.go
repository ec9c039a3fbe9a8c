package service

import (
	"context"

	"brewpoint/storefront-svc/internal/domain"
	"brewpoint/storefront-svc/internal/storage"
)

type CatalogRepository interface {
	ListProducts() ([]domain.Product, error)
	GetProduct(id int) (*domain.Product, error)
	FeaturedProducts(limit int) ([]domain.Product, error)
}

type TableRepository interface {
	ListTables() ([]domain.Table, error)
	GetTableQRCode(tableNumber int) ([]byte, error)
	SaveTableQRCode(tableNumber int, qr []byte) error
}

type OrderRepository interface {
	CreateTableOrder(order *domain.Order) error
	CreateWebOrder(order *domain.Order) error
	GetOrder(orderID int) (*domain.Order, error)
}

type CartStorage interface {
	Load(ctx context.Context, sessionID string) ([]domain.CartLine, error)
	Save(ctx context.Context, sessionID string, lines []domain.CartLine) error
	Clear(ctx context.Context, sessionID string) error
}

type OrderPublisher interface {
	PublishOrder(ctx context.Context, event domain.OrderEvent) error
}

type QRGenerator interface {
	Generate(tableNumber int) ([]byte, error)
}

type CatalogServiceInterface interface {
	Products() ([]domain.Product, error)
	Product(id int) (*domain.Product, error)
	Featured(limit int) ([]domain.Product, error)
	Tables() ([]domain.Table, error)
	TableQRCode(tableNumber int) ([]byte, error)
}

type CartServiceInterface interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	AddItem(ctx context.Context, sessionID string, line domain.CartLine) (*domain.Cart, error)
	DecreaseQuantity(ctx context.Context, sessionID, lineID string) (*domain.Cart, error)
	SetQuantity(ctx context.Context, sessionID, lineID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, sessionID, lineID string) (*domain.Cart, error)
	Clear(ctx context.Context, sessionID string) (*domain.Cart, error)
}

type CheckoutServiceInterface interface {
	PlaceOrder(ctx context.Context, req *CheckoutRequest) (*domain.Order, error)
	Order(orderID int) (*domain.Order, error)
}

var (
	_ CatalogRepository = (*storage.PostgresRepository)(nil)
	_ TableRepository   = (*storage.PostgresRepository)(nil)
	_ OrderRepository   = (*storage.PostgresRepository)(nil)
	_ CartStorage       = (*storage.RedisCartStorage)(nil)
	_ OrderPublisher    = (*storage.KafkaPublisher)(nil)
)
