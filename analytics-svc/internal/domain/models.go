package domain

import "time"

// OrderEvent mirrors the storefront's order_placed message on the orders
// topic.
type OrderEvent struct {
	Type      string           `json:"type"`
	OrderID   int              `json:"order_id"`
	Mode      string           `json:"mode"`
	Total     float64          `json:"total"`
	Items     []OrderEventItem `json:"items"`
	Timestamp time.Time        `json:"timestamp"`
}

type OrderEventItem struct {
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type ProductSales struct {
	ProductID   int     `json:"product_id"`
	OrdersCount int     `json:"orders_count"`
	UnitsSold   int     `json:"units_sold"`
	Revenue     float64 `json:"revenue"`
}

type SalesSummary struct {
	OrdersCount int     `json:"orders_count"`
	Revenue     float64 `json:"revenue"`
}

type DailyRank struct {
	ProductID int     `json:"product_id"`
	Units     float64 `json:"units"`
}
