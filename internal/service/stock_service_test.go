package service

import (
	"context"
	"testing"
	"time"

	"go-stock-management/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkTransactionReturnedReleasesStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewStockService(f.store, f.service)

	tx, err := f.service.Create(ctx, soldInput(f.laptopID, 3, "1000"), nil)
	require.NoError(t, err)
	require.Equal(t, 7, f.store.quantity(f.laptopID))

	returnDate := time.Now()
	returned, err := svc.MarkTransactionReturned(ctx, tx.ID, returnDate, nil)
	require.NoError(t, err)

	assert.Equal(t, model.TxReturned, returned.Type)
	require.NotNil(t, returned.ReturnDate)
	assert.True(t, returned.ReturnDate.Equal(returnDate))
	assert.Equal(t, 10, f.store.quantity(f.laptopID))
}

func TestUpdateQuantityOverride(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewStockService(f.store, f.service)

	stock, err := f.store.Stocks().FindByProductID(ctx, f.laptopID)
	require.NoError(t, err)

	qty := 42
	updated, err := svc.UpdateQuantity(ctx, stock.ID, &model.UpdateStockInput{Quantity: &qty}, nil)
	require.NoError(t, err)

	assert.Equal(t, 42, updated.Quantity)
	assert.Equal(t, 42, f.store.quantity(f.laptopID))
}
