package service

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"brewpoint/storefront-svc/internal/domain"
)

// Each validation failure gets its own sentinel so handlers can map it to a
// user-facing message without inspecting error text.
var (
	ErrNoItems                = errors.New("order must contain at least one item")
	ErrInvalidTotal           = errors.New("order total must be greater than zero")
	ErrInvalidItem            = errors.New("invalid item data")
	ErrDeliveryMethodRequired = errors.New("delivery method is required")
	ErrAddressRequired        = errors.New("delivery address is required")
	ErrTableRequired          = errors.New("table number is required")
	ErrTableNotFound          = errors.New("table not found")
	ErrInvalidMode            = errors.New("order mode must be qr or web")
)

type CheckoutItem struct {
	ProductID int      `json:"id"`
	Title     string   `json:"title"`
	Quantity  int      `json:"quantity"`
	Price     float64  `json:"price"`
	Size      string   `json:"size,omitempty"`
	Milk      string   `json:"milk,omitempty"`
	Drink     string   `json:"drink,omitempty"`
	Toppings  []string `json:"toppings,omitempty"`
}

// CheckoutRequest is the order submission payload. Mode discriminates the
// two variants: "qr" requires a table number, "web" requires a delivery
// method (and an address when that method is "delivery").
type CheckoutRequest struct {
	Mode           string         `json:"mode"`
	TableNumber    int            `json:"table_number,omitempty"`
	Items          []CheckoutItem `json:"items"`
	Total          float64        `json:"total"`
	PaymentMethod  string         `json:"payment_method"`
	DeliveryMethod string         `json:"delivery_method,omitempty"`
	Address        string         `json:"address,omitempty"`
	CustomerName   string         `json:"customer_name,omitempty"`
	CustomerEmail  string         `json:"customer_email,omitempty"`
	CustomerPhone  string         `json:"customer_phone,omitempty"`
	Note           string         `json:"note,omitempty"`
}

type CheckoutService struct {
	orders    OrderRepository
	publisher OrderPublisher
}

func NewCheckoutService(orders OrderRepository, publisher OrderPublisher) *CheckoutService {
	return &CheckoutService{orders: orders, publisher: publisher}
}

// PlaceOrder validates the payload, writes the order with its items and
// payment in one transaction, and announces it on the order topic.
func (s *CheckoutService) PlaceOrder(ctx context.Context, req *CheckoutRequest) (*domain.Order, error) {
	if err := validateCheckout(req); err != nil {
		return nil, err
	}

	order := buildOrder(req)

	switch req.Mode {
	case domain.ModeQR:
		if err := s.orders.CreateTableOrder(order); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrTableNotFound
			}
			return nil, err
		}
	case domain.ModeWeb:
		if err := s.orders.CreateWebOrder(order); err != nil {
			return nil, err
		}
	}

	if s.publisher != nil {
		if err := s.publisher.PublishOrder(ctx, orderEvent(order)); err != nil {
			log.Printf("[storefront-svc] failed to publish order %d: %v", order.ID, err)
		}
	}

	return order, nil
}

func (s *CheckoutService) Order(orderID int) (*domain.Order, error) {
	return s.orders.GetOrder(orderID)
}

func validateCheckout(req *CheckoutRequest) error {
	if len(req.Items) == 0 {
		return ErrNoItems
	}
	if req.Total <= 0 {
		return ErrInvalidTotal
	}
	for _, item := range req.Items {
		if item.Quantity < 1 || item.Price <= 0 {
			return ErrInvalidItem
		}
	}

	switch req.Mode {
	case domain.ModeWeb:
		if req.DeliveryMethod == "" {
			return ErrDeliveryMethodRequired
		}
		if req.DeliveryMethod == domain.DeliveryMethodDelivery && req.Address == "" {
			return ErrAddressRequired
		}
	case domain.ModeQR:
		if req.TableNumber <= 0 {
			return ErrTableRequired
		}
	default:
		return ErrInvalidMode
	}

	return nil
}

func buildOrder(req *CheckoutRequest) *domain.Order {
	order := &domain.Order{
		Mode:           req.Mode,
		Total:          req.Total,
		Status:         domain.OrderPending,
		CustomerName:   req.CustomerName,
		CustomerEmail:  req.CustomerEmail,
		CustomerPhone:  req.CustomerPhone,
		Note:           req.Note,
		DeliveryMethod: req.DeliveryMethod,
		Address:        req.Address,
		PaymentMethod:  req.PaymentMethod,
		TableNumber:    req.TableNumber,
		Items:          make([]domain.OrderItem, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: item.ProductID,
			Title:     item.Title,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Size:      item.Size,
			Milk:      item.Milk,
			Drink:     item.Drink,
			Toppings:  item.Toppings,
		})
	}
	return order
}

func orderEvent(order *domain.Order) domain.OrderEvent {
	event := domain.OrderEvent{
		Type:      "order_placed",
		OrderID:   order.ID,
		Mode:      order.Mode,
		Total:     order.Total,
		Timestamp: time.Now(),
	}
	for _, item := range order.Items {
		event.Items = append(event.Items, domain.OrderEventItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return event
}

var _ CheckoutServiceInterface = (*CheckoutService)(nil)
