package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"brewpoint/analytics-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

type Store struct {
	db  *sql.DB
	rdb *redis.Client
	ctx context.Context
}

func NewStore(db *sql.DB, rdb *redis.Client) *Store {
	return &Store{
		db:  db,
		rdb: rdb,
		ctx: context.Background(),
	}
}

func (s *Store) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS product_sales (
			product_id INT PRIMARY KEY,
			orders_count INT NOT NULL DEFAULT 0,
			units_sold INT NOT NULL DEFAULT 0,
			revenue NUMERIC(12,2) NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS sales_totals (
			id INT PRIMARY KEY,
			orders_count INT NOT NULL DEFAULT 0,
			revenue NUMERIC(12,2) NOT NULL DEFAULT 0
		)`,
		`INSERT INTO sales_totals (id) VALUES (1) ON CONFLICT (id) DO NOTHING`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// RecordOrder folds one order into the per-product aggregates and overall
// totals, then mirrors leaderboard scores in Redis for quick reads.
func (s *Store) RecordOrder(event domain.OrderEvent) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, item := range event.Items {
		if _, err := tx.Exec(`
			INSERT INTO product_sales (product_id, orders_count, units_sold, revenue)
			VALUES ($1, 1, $2, $3)
			ON CONFLICT (product_id) DO UPDATE SET
				orders_count = product_sales.orders_count + 1,
				units_sold = product_sales.units_sold + EXCLUDED.units_sold,
				revenue = product_sales.revenue + EXCLUDED.revenue
		`, item.ProductID, item.Quantity, item.Price*float64(item.Quantity)); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`
		UPDATE sales_totals
		SET orders_count = orders_count + 1, revenue = revenue + $1
		WHERE id = 1
	`, event.Total); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	// Leaderboards are best effort. The Postgres aggregates stay the source
	// of truth.
	today := time.Now().Format("2006-01-02")
	dailyKey := "sales:daily:" + today
	for _, item := range event.Items {
		member := strconv.Itoa(item.ProductID)
		s.rdb.ZIncrBy(s.ctx, dailyKey, float64(item.Quantity), member)
		s.rdb.ZIncrBy(s.ctx, "sales:alltime", item.Price*float64(item.Quantity), member)
	}
	s.rdb.Expire(s.ctx, dailyKey, 7*24*time.Hour)

	return nil
}

func (s *Store) Summary() (*domain.SalesSummary, error) {
	var summary domain.SalesSummary
	err := s.db.QueryRow(`
		SELECT orders_count, revenue FROM sales_totals WHERE id = 1
	`).Scan(&summary.OrdersCount, &summary.Revenue)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *Store) TopProducts(limit int) ([]domain.ProductSales, error) {
	rows, err := s.db.Query(`
		SELECT product_id, orders_count, units_sold, revenue
		FROM product_sales
		ORDER BY revenue DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []domain.ProductSales
	for rows.Next() {
		var row domain.ProductSales
		if err := rows.Scan(&row.ProductID, &row.OrdersCount, &row.UnitsSold, &row.Revenue); err != nil {
			continue
		}
		sales = append(sales, row)
	}
	return sales, nil
}

func (s *Store) ProductStats(productID int) (*domain.ProductSales, error) {
	var row domain.ProductSales
	err := s.db.QueryRow(`
		SELECT product_id, orders_count, units_sold, revenue
		FROM product_sales
		WHERE product_id = $1`, productID).
		Scan(&row.ProductID, &row.OrdersCount, &row.UnitsSold, &row.Revenue)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Store) TopToday(limit int) ([]domain.DailyRank, error) {
	today := time.Now().Format("2006-01-02")
	entries, err := s.rdb.ZRevRangeWithScores(s.ctx, "sales:daily:"+today, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	var ranks []domain.DailyRank
	for _, entry := range entries {
		productID, err := strconv.Atoi(fmt.Sprint(entry.Member))
		if err != nil {
			continue
		}
		ranks = append(ranks, domain.DailyRank{ProductID: productID, Units: entry.Score})
	}
	return ranks, nil
}
