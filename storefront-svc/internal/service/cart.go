package service

import (
	"context"

	"brewpoint/storefront-svc/internal/domain"
)

// CartService owns the line-merge semantics of a session cart. Every
// mutation writes the full line list back to storage, so a cart survives
// the session reconnecting.
type CartService struct {
	storage CartStorage
}

func NewCartService(storage CartStorage) *CartService {
	return &CartService{storage: storage}
}

func (s *CartService) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	lines, err := s.storage.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return buildCart(lines), nil
}

// AddItem merges the incoming line into an equal existing line (quantity+1)
// or appends it with quantity 1.
func (s *CartService) AddItem(ctx context.Context, sessionID string, line domain.CartLine) (*domain.Cart, error) {
	lines, err := s.storage.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	line.ID = line.LineKey()
	merged := false
	for i := range lines {
		if lines[i].SameLine(line) {
			lines[i].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		line.Quantity = 1
		lines = append(lines, line)
	}

	return s.persist(ctx, sessionID, lines)
}

func (s *CartService) DecreaseQuantity(ctx context.Context, sessionID, lineID string) (*domain.Cart, error) {
	lines, err := s.storage.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	for i := range lines {
		if lines[i].ID != lineID {
			continue
		}
		lines[i].Quantity--
		if lines[i].Quantity <= 0 {
			lines = append(lines[:i], lines[i+1:]...)
		}
		break
	}

	return s.persist(ctx, sessionID, lines)
}

// SetQuantity sets a line's quantity directly, clamped to a minimum of 1.
func (s *CartService) SetQuantity(ctx context.Context, sessionID, lineID string, quantity int) (*domain.Cart, error) {
	lines, err := s.storage.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if quantity < 1 {
		quantity = 1
	}
	for i := range lines {
		if lines[i].ID == lineID {
			lines[i].Quantity = quantity
			break
		}
	}

	return s.persist(ctx, sessionID, lines)
}

func (s *CartService) RemoveItem(ctx context.Context, sessionID, lineID string) (*domain.Cart, error) {
	lines, err := s.storage.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	for i := range lines {
		if lines[i].ID == lineID {
			lines = append(lines[:i], lines[i+1:]...)
			break
		}
	}

	return s.persist(ctx, sessionID, lines)
}

func (s *CartService) Clear(ctx context.Context, sessionID string) (*domain.Cart, error) {
	if err := s.storage.Clear(ctx, sessionID); err != nil {
		return nil, err
	}
	return buildCart(nil), nil
}

func (s *CartService) persist(ctx context.Context, sessionID string, lines []domain.CartLine) (*domain.Cart, error) {
	if err := s.storage.Save(ctx, sessionID, lines); err != nil {
		return nil, err
	}
	return buildCart(lines), nil
}

func buildCart(lines []domain.CartLine) *domain.Cart {
	cart := &domain.Cart{Items: lines}
	if cart.Items == nil {
		cart.Items = []domain.CartLine{}
	}
	for _, line := range cart.Items {
		cart.TotalItems += line.Quantity
		cart.TotalPrice += line.Price * float64(line.Quantity)
	}
	return cart
}

var _ CartServiceInterface = (*CartService)(nil)
