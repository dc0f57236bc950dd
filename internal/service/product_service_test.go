package service

import (
	"context"
	"testing"

	"go-stock-management/internal/apperr"
	"go-stock-management/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCategory(t *testing.T, store *fakeStore, name string) uuid.UUID {
	t.Helper()
	category := &model.Category{Name: name}
	require.NoError(t, store.Categories().Create(context.Background(), category))
	return category.ID
}

func TestProductCreateWithInitialStock(t *testing.T) {
	store := newFakeStore()
	svc := NewProductService(store)
	categoryID := seedCategory(t, store, "Electronics")

	qty := 5
	product, err := svc.Create(context.Background(), &model.CreateProductInput{
		CategoryID: categoryID,
		Name:       "Laptop",
		Type:       model.ProductQuantity,
		Quantity:   &qty,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Laptop", product.Name)
	assert.Equal(t, 5, store.quantity(product.ID))
}

func TestProductCreateItemForcesSingleUnit(t *testing.T) {
	store := newFakeStore()
	svc := NewProductService(store)
	categoryID := seedCategory(t, store, "Electronics")

	qty := 10
	product, err := svc.Create(context.Background(), &model.CreateProductInput{
		CategoryID: categoryID,
		Name:       "Camera",
		Type:       model.ProductItem,
		Quantity:   &qty,
	}, nil)
	require.NoError(t, err)

	// An ITEM product is a single physical unit regardless of the request.
	assert.Equal(t, 1, store.quantity(product.ID))
}

func TestProductCreateInlineSupplier(t *testing.T) {
	store := newFakeStore()
	svc := NewProductService(store)
	categoryID := seedCategory(t, store, "Electronics")

	product, err := svc.Create(context.Background(), &model.CreateProductInput{
		CategoryID:   categoryID,
		Name:         "Monitor",
		Type:         model.ProductQuantity,
		SupplierName: "Acme Parts",
	}, nil)
	require.NoError(t, err)

	require.NotNil(t, product.SupplierID)
	supplier, err := store.Suppliers().FindByID(context.Background(), *product.SupplierID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Parts", supplier.Name)
}

func TestProductCreateUnknownCategoryFails(t *testing.T) {
	store := newFakeStore()
	svc := NewProductService(store)

	_, err := svc.Create(context.Background(), &model.CreateProductInput{
		CategoryID: uuid.New(),
		Name:       "Orphan",
		Type:       model.ProductQuantity,
	}, nil)

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
	assert.Empty(t, store.products)
}
