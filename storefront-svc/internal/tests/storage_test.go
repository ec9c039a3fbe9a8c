package tests

import (
	"database/sql"
	"testing"
	"time"

	"brewpoint/storefront-svc/internal/domain"
	"brewpoint/storefront-svc/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func qrOrder() *domain.Order {
	return &domain.Order{
		Mode:          domain.ModeQR,
		Total:         9.0,
		Status:        domain.OrderPending,
		PaymentMethod: "card",
		TableNumber:   3,
		Items: []domain.OrderItem{
			{ProductID: 1, Title: "Latte", Quantity: 2, Price: 4.5},
		},
	}
}

func TestCreateTableOrder_CommitsOrderItemsPaymentAndReservation(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM cafe_tables").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(42, time.Now()))
	mock.ExpectQuery("INSERT INTO order_items").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery("INSERT INTO payments").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec("UPDATE cafe_tables SET status").
		WithArgs(domain.TableReserved, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	order := qrOrder()
	assert.NoError(t, repo.CreateTableOrder(order))

	assert.Equal(t, 42, order.ID)
	assert.Equal(t, 5, order.TableID)
	assert.NotNil(t, order.Payment)
	assert.Equal(t, domain.OrderPending, order.Payment.Status)
	assert.InDelta(t, 9.0, order.Payment.Amount, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTableOrder_UnknownTableRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM cafe_tables").
		WithArgs(3).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err = repo.CreateTableOrder(qrOrder())

	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTableOrder_ItemFailureRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM cafe_tables").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(42, time.Now()))
	mock.ExpectQuery("INSERT INTO order_items").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err = repo.CreateTableOrder(qrOrder())

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWebOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(7, time.Now()))
	mock.ExpectQuery("INSERT INTO order_items").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery("INSERT INTO payments").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	order := qrOrder()
	order.Mode = domain.ModeWeb
	order.TableNumber = 0
	order.DeliveryMethod = domain.DeliveryMethodDelivery
	order.Address = "12 Bean St"

	assert.NoError(t, repo.CreateWebOrder(order))
	assert.Equal(t, 7, order.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTables_OrderedByNumber(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewPostgresRepository(db)

	mock.ExpectQuery("SELECT id, table_number, status").
		WillReturnRows(sqlmock.NewRows([]string{"id", "table_number", "status"}).
			AddRow(2, 1, domain.TableAvailable).
			AddRow(1, 2, domain.TableReserved))

	tables, err := repo.ListTables()

	assert.NoError(t, err)
	assert.Len(t, tables, 2)
	assert.Equal(t, 1, tables[0].TableNumber)
	assert.Equal(t, domain.TableReserved, tables[1].Status)
}
