package tests

import (
	"context"
	"database/sql"
	"testing"

	"brewpoint/storefront-svc/internal/domain"
	"brewpoint/storefront-svc/internal/mocks"
	"brewpoint/storefront-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func validQRRequest() *service.CheckoutRequest {
	return &service.CheckoutRequest{
		Mode:          domain.ModeQR,
		TableNumber:   3,
		Total:         9.0,
		PaymentMethod: "card",
		Items: []service.CheckoutItem{
			{ProductID: 1, Title: "Latte", Quantity: 2, Price: 4.5},
		},
	}
}

func TestCheckoutService_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*service.CheckoutRequest)
		wantErr error
	}{
		{
			name:    "empty items",
			mutate:  func(r *service.CheckoutRequest) { r.Items = nil },
			wantErr: service.ErrNoItems,
		},
		{
			name:    "zero total",
			mutate:  func(r *service.CheckoutRequest) { r.Total = 0 },
			wantErr: service.ErrInvalidTotal,
		},
		{
			name:    "negative total",
			mutate:  func(r *service.CheckoutRequest) { r.Total = -1 },
			wantErr: service.ErrInvalidTotal,
		},
		{
			name:    "item with zero quantity",
			mutate:  func(r *service.CheckoutRequest) { r.Items[0].Quantity = 0 },
			wantErr: service.ErrInvalidItem,
		},
		{
			name: "web mode without delivery method",
			mutate: func(r *service.CheckoutRequest) {
				r.Mode = domain.ModeWeb
				r.TableNumber = 0
			},
			wantErr: service.ErrDeliveryMethodRequired,
		},
		{
			name: "delivery without address",
			mutate: func(r *service.CheckoutRequest) {
				r.Mode = domain.ModeWeb
				r.DeliveryMethod = domain.DeliveryMethodDelivery
			},
			wantErr: service.ErrAddressRequired,
		},
		{
			name:    "qr mode without table",
			mutate:  func(r *service.CheckoutRequest) { r.TableNumber = 0 },
			wantErr: service.ErrTableRequired,
		},
		{
			name:    "unknown mode",
			mutate:  func(r *service.CheckoutRequest) { r.Mode = "phone" },
			wantErr: service.ErrInvalidMode,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockRepo := new(mocks.OrderRepository)
			svc := service.NewCheckoutService(mockRepo, nil)

			req := validQRRequest()
			testCase.mutate(req)

			order, err := svc.PlaceOrder(context.Background(), req)
			assert.ErrorIs(t, err, testCase.wantErr)
			assert.Nil(t, order)
			mockRepo.AssertNotCalled(t, "CreateTableOrder", mock.Anything)
			mockRepo.AssertNotCalled(t, "CreateWebOrder", mock.Anything)
		})
	}
}

func TestCheckoutService_QROrder(t *testing.T) {
	mockRepo := new(mocks.OrderRepository)
	mockPublisher := new(mocks.OrderPublisher)
	svc := service.NewCheckoutService(mockRepo, mockPublisher)

	mockRepo.On("CreateTableOrder", mock.AnythingOfType("*domain.Order")).
		Run(func(args mock.Arguments) {
			order := args.Get(0).(*domain.Order)
			order.ID = 42
			order.TableID = 5
		}).Return(nil).Once()
	mockPublisher.On("PublishOrder", mock.Anything, mock.AnythingOfType("domain.OrderEvent")).Return(nil).Once()

	order, err := svc.PlaceOrder(context.Background(), validQRRequest())

	assert.NoError(t, err)
	assert.Equal(t, 42, order.ID)
	assert.Equal(t, domain.ModeQR, order.Mode)
	assert.Equal(t, domain.OrderPending, order.Status)
	assert.Equal(t, 3, order.TableNumber)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestCheckoutService_QRUnknownTable(t *testing.T) {
	mockRepo := new(mocks.OrderRepository)
	mockPublisher := new(mocks.OrderPublisher)
	svc := service.NewCheckoutService(mockRepo, mockPublisher)

	mockRepo.On("CreateTableOrder", mock.AnythingOfType("*domain.Order")).
		Return(sql.ErrNoRows).Once()

	order, err := svc.PlaceOrder(context.Background(), validQRRequest())

	assert.ErrorIs(t, err, service.ErrTableNotFound)
	assert.Nil(t, order)
	mockPublisher.AssertNotCalled(t, "PublishOrder", mock.Anything, mock.Anything)
}

func TestCheckoutService_WebOrder(t *testing.T) {
	tests := []struct {
		name           string
		deliveryMethod string
		address        string
	}{
		{name: "delivery with address", deliveryMethod: domain.DeliveryMethodDelivery, address: "12 Bean St"},
		{name: "pickup needs no address", deliveryMethod: domain.DeliveryMethodPickup},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockRepo := new(mocks.OrderRepository)
			svc := service.NewCheckoutService(mockRepo, nil)

			mockRepo.On("CreateWebOrder", mock.AnythingOfType("*domain.Order")).
				Run(func(args mock.Arguments) {
					args.Get(0).(*domain.Order).ID = 7
				}).Return(nil).Once()

			req := validQRRequest()
			req.Mode = domain.ModeWeb
			req.TableNumber = 0
			req.DeliveryMethod = testCase.deliveryMethod
			req.Address = testCase.address

			order, err := svc.PlaceOrder(context.Background(), req)

			assert.NoError(t, err)
			assert.Equal(t, 7, order.ID)
			assert.Equal(t, testCase.deliveryMethod, order.DeliveryMethod)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCheckoutService_PublishFailureDoesNotFailOrder(t *testing.T) {
	mockRepo := new(mocks.OrderRepository)
	mockPublisher := new(mocks.OrderPublisher)
	svc := service.NewCheckoutService(mockRepo, mockPublisher)

	mockRepo.On("CreateTableOrder", mock.AnythingOfType("*domain.Order")).Return(nil).Once()
	mockPublisher.On("PublishOrder", mock.Anything, mock.Anything).Return(assert.AnError).Once()

	order, err := svc.PlaceOrder(context.Background(), validQRRequest())

	assert.NoError(t, err)
	assert.NotNil(t, order)
}
