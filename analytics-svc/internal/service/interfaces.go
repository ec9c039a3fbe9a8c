package service

import (
	"context"

	"brewpoint/analytics-svc/internal/domain"
	"brewpoint/analytics-svc/internal/storage"
)

type StoreInterface interface {
	RecordOrder(event domain.OrderEvent) error
	Summary() (*domain.SalesSummary, error)
	TopProducts(limit int) ([]domain.ProductSales, error)
	ProductStats(productID int) (*domain.ProductSales, error)
	TopToday(limit int) ([]domain.DailyRank, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	ProcessOrder(event domain.OrderEvent)
}

var _ StoreInterface = (*storage.Store)(nil)
