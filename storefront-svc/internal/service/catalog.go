package service

import (
	"brewpoint/storefront-svc/internal/domain"
)

const defaultFeaturedLimit = 4

type CatalogService struct {
	products CatalogRepository
	tables   TableRepository
	qr       QRGenerator
}

func NewCatalogService(products CatalogRepository, tables TableRepository, qr QRGenerator) *CatalogService {
	return &CatalogService{products: products, tables: tables, qr: qr}
}

func (s *CatalogService) Products() ([]domain.Product, error) {
	return s.products.ListProducts()
}

func (s *CatalogService) Product(id int) (*domain.Product, error) {
	return s.products.GetProduct(id)
}

func (s *CatalogService) Featured(limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = defaultFeaturedLimit
	}
	return s.products.FeaturedProducts(limit)
}

func (s *CatalogService) Tables() ([]domain.Table, error) {
	return s.tables.ListTables()
}

// TableQRCode returns the stored QR PNG for a table, generating and caching
// one when the table has none yet.
func (s *CatalogService) TableQRCode(tableNumber int) ([]byte, error) {
	qr, err := s.tables.GetTableQRCode(tableNumber)
	if err != nil {
		return nil, err
	}
	if len(qr) == 0 && s.qr != nil {
		if generated, err := s.qr.Generate(tableNumber); err == nil {
			_ = s.tables.SaveTableQRCode(tableNumber, generated)
			return generated, nil
		}
	}
	return qr, nil
}

var _ CatalogServiceInterface = (*CatalogService)(nil)
