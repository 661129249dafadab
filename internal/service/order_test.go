package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fadinha/embroidery_shop/internal/models"
)

func newTestOrders(t *testing.T) (*OrderService, *CatalogService) {
	t.Helper()
	catalog := newTestCatalog(t)
	orders := &OrderService{Repo: catalog.Repo, Images: catalog.Images, Catalog: catalog}
	return orders, catalog
}

func TestPlaceOrderRequiresLogin(t *testing.T) {
	ctx := context.Background()
	orders, _ := newTestOrders(t)

	_, err := orders.Place(ctx, models.GuestSession(), OrderInput{ProductName: "Scarf", Quantity: 1})
	require.ErrorIs(t, err, ErrAuth)
}

func TestPlaceOrderStockCeiling(t *testing.T) {
	ctx := context.Background()
	orders, catalog := newTestOrders(t)

	_, err := catalog.Create(ctx, adminSession(), ProductInput{Name: "Scarf", Price: 10, Stock: 5})
	require.NoError(t, err)

	_, err = orders.Place(ctx, clientSession(), OrderInput{ProductName: "Scarf", Quantity: 6})
	require.ErrorIs(t, err, ErrValidation)

	order, err := orders.Place(ctx, clientSession(), OrderInput{ProductName: "Scarf", Quantity: 5, Details: "blue thread"})
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, order.Status)
	require.Equal(t, clientSession().UserEmail, order.UserEmail)
	require.Equal(t, "Scarf", order.ProductName)

	// placing an order never decrements stock
	prod, err := catalog.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 5, prod.Stock)
}

func TestPlaceOrderZeroStockFallbackCap(t *testing.T) {
	ctx := context.Background()
	orders, catalog := newTestOrders(t)

	_, err := catalog.Create(ctx, adminSession(), ProductInput{Name: "Custom Patch", Price: 3, Stock: 0})
	require.NoError(t, err)

	_, err = orders.Place(ctx, clientSession(), OrderInput{ProductName: "Custom Patch", Quantity: 100})
	require.NoError(t, err)

	_, err = orders.Place(ctx, clientSession(), OrderInput{ProductName: "Custom Patch", Quantity: 101})
	require.ErrorIs(t, err, ErrValidation)
}

func TestPlaceOrderQuantityAndProductValidation(t *testing.T) {
	ctx := context.Background()
	orders, catalog := newTestOrders(t)

	_, err := catalog.Create(ctx, adminSession(), ProductInput{Name: "Scarf", Price: 10, Stock: 5})
	require.NoError(t, err)

	_, err = orders.Place(ctx, clientSession(), OrderInput{ProductName: "Scarf", Quantity: 0})
	require.ErrorIs(t, err, ErrValidation)

	_, err = orders.Place(ctx, clientSession(), OrderInput{ProductName: "Nonexistent", Quantity: 1})
	require.ErrorIs(t, err, ErrValidation)
}

func TestPlaceOrderStoresReferenceImage(t *testing.T) {
	ctx := context.Background()
	orders, catalog := newTestOrders(t)

	_, err := catalog.Create(ctx, adminSession(), ProductInput{Name: "Scarf", Price: 10, Stock: 5})
	require.NoError(t, err)

	order, err := orders.Place(ctx, clientSession(), OrderInput{
		ProductName:   "Scarf",
		Quantity:      1,
		ReferenceName: "reference.jpg",
		ReferenceData: []byte("jpeg-bytes"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, order.ReferenceImagePath)
}

func TestOrderSnapshotsProductName(t *testing.T) {
	ctx := context.Background()
	orders, catalog := newTestOrders(t)

	created, err := catalog.Create(ctx, adminSession(), ProductInput{Name: "Scarf", Price: 10, Stock: 5})
	require.NoError(t, err)

	order, err := orders.Place(ctx, clientSession(), OrderInput{ProductName: "Scarf", Quantity: 1})
	require.NoError(t, err)

	_, err = catalog.Update(ctx, adminSession(), created.ID, ProductInput{Name: "Winter Scarf", Price: 10, Stock: 5})
	require.NoError(t, err)

	mine, err := orders.ListMine(ctx, clientSession())
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, order.ID, mine[0].ID)
	require.Equal(t, "Scarf", mine[0].ProductName)
}

func TestListProductsForOrdering(t *testing.T) {
	ctx := context.Background()
	orders, catalog := newTestOrders(t)

	_, err := catalog.Create(ctx, adminSession(), ProductInput{Name: "Scarf", Price: 10})
	require.NoError(t, err)

	items, err := orders.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
}
