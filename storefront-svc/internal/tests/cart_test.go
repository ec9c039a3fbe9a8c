package tests

import (
	"context"
	"testing"
	"time"

	"brewpoint/storefront-svc/internal/domain"
	"brewpoint/storefront-svc/internal/service"
	"brewpoint/storefront-svc/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newCartService(t *testing.T) (*service.CartService, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return service.NewCartService(storage.NewRedisCartStorage(client, time.Hour)), mr
}

func latte(toppings ...string) domain.CartLine {
	return domain.CartLine{
		ProductID: 1,
		Name:      "Latte",
		Price:     4.5,
		Size:      "M",
		Milk:      "oat",
		Toppings:  toppings,
	}
}

func TestCartService_AddMergesEqualLines(t *testing.T) {
	svc, _ := newCartService(t)
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "s1", latte("caramel"))
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	cart, err = svc.AddItem(ctx, "s1", latte("caramel"))
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 2, cart.TotalItems)
	assert.InDelta(t, 9.0, cart.TotalPrice, 0.001)
}

func TestCartService_ToppingOrderDoesNotSplitLines(t *testing.T) {
	svc, _ := newCartService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", latte("caramel", "cinnamon"))
	assert.NoError(t, err)
	cart, err := svc.AddItem(ctx, "s1", latte("cinnamon", "caramel"))
	assert.NoError(t, err)

	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestCartService_DifferentToppingsAppendNewLine(t *testing.T) {
	svc, _ := newCartService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", latte("caramel"))
	assert.NoError(t, err)
	cart, err := svc.AddItem(ctx, "s1", latte("vanilla"))
	assert.NoError(t, err)

	assert.Len(t, cart.Items, 2)
	assert.Equal(t, 1, cart.Items[0].Quantity)
	assert.Equal(t, 1, cart.Items[1].Quantity)
}

func TestCartService_DecreaseDropsLineAtZero(t *testing.T) {
	svc, _ := newCartService(t)
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "s1", latte())
	assert.NoError(t, err)
	lineID := cart.Items[0].ID

	cart, err = svc.DecreaseQuantity(ctx, "s1", lineID)
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0, cart.TotalItems)
	assert.Zero(t, cart.TotalPrice)
}

func TestCartService_SetQuantityClampsToOne(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		want     int
	}{
		{name: "zero clamps", quantity: 0, want: 1},
		{name: "negative clamps", quantity: -3, want: 1},
		{name: "no upper bound", quantity: 99, want: 99},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc, _ := newCartService(t)
			ctx := context.Background()

			cart, err := svc.AddItem(ctx, "s1", latte())
			assert.NoError(t, err)
			lineID := cart.Items[0].ID

			cart, err = svc.SetQuantity(ctx, "s1", lineID, testCase.quantity)
			assert.NoError(t, err)
			assert.Equal(t, testCase.want, cart.Items[0].Quantity)
		})
	}
}

func TestCartService_TotalsRecomputedAfterEveryMutation(t *testing.T) {
	svc, _ := newCartService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", latte())
	assert.NoError(t, err)
	espresso := domain.CartLine{ProductID: 2, Name: "Espresso", Price: 2.5}
	cart, err := svc.AddItem(ctx, "s1", espresso)
	assert.NoError(t, err)
	assert.InDelta(t, 7.0, cart.TotalPrice, 0.001)

	cart, err = svc.SetQuantity(ctx, "s1", cart.Items[0].ID, 3)
	assert.NoError(t, err)
	assert.InDelta(t, 3*4.5+2.5, cart.TotalPrice, 0.001)
	assert.Equal(t, 4, cart.TotalItems)

	cart, err = svc.RemoveItem(ctx, "s1", cart.Items[0].ID)
	assert.NoError(t, err)
	assert.InDelta(t, 2.5, cart.TotalPrice, 0.001)
	assert.Equal(t, 1, cart.TotalItems)
}

func TestCartService_PersistsAcrossInstances(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ctx := context.Background()

	first := service.NewCartService(storage.NewRedisCartStorage(client, time.Hour))
	_, err := first.AddItem(ctx, "s1", latte())
	assert.NoError(t, err)

	second := service.NewCartService(storage.NewRedisCartStorage(client, time.Hour))
	cart, err := second.Get(ctx, "s1")
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, "Latte", cart.Items[0].Name)
}

func TestCartService_CorruptPayloadLoadsEmpty(t *testing.T) {
	svc, mr := newCartService(t)
	ctx := context.Background()

	mr.Set("cart:s1", "{not json")

	cart, err := svc.Get(ctx, "s1")
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartService_Clear(t *testing.T) {
	svc, mr := newCartService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", latte())
	assert.NoError(t, err)

	cart, err := svc.Clear(ctx, "s1")
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.False(t, mr.Exists("cart:s1"))
}
