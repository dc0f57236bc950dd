package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeTransactionType(t *testing.T) {
	tests := []struct {
		in   string
		want TransactionType
		ok   bool
	}{
		{"SOLD", TxSold, true},
		{"RETURNED", TxReturned, true},
		{"RENT", TxRent, true},
		{"RENTED", TxRent, true}, // legacy alias
		{"sold", "", false},
		{"", "", false},
		{"LOST", "", false},
	}

	for _, tt := range tests {
		got, ok := NormalizeTransactionType(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestTransitionEffectMatrix(t *testing.T) {
	tests := []struct {
		from, to TransactionType
		want     StockEffect
	}{
		{TxSold, TxSold, StockEffectNone},
		{TxSold, TxRent, StockEffectNone},
		{TxSold, TxReturned, StockEffectReleaseAll},
		{TxRent, TxSold, StockEffectNone},
		{TxRent, TxRent, StockEffectNone},
		{TxRent, TxReturned, StockEffectReleaseAll},
		{TxReturned, TxSold, StockEffectReserveAll},
		{TxReturned, TxRent, StockEffectReserveAll},
		{TxReturned, TxReturned, StockEffectNone},
	}

	for _, tt := range tests {
		got := TransitionEffect(tt.from, tt.to)
		assert.Equal(t, tt.want, got, "%s -> %s", tt.from, tt.to)
	}
}

func TestCreationAndDeletionEffects(t *testing.T) {
	assert.Equal(t, StockEffectReserveAll, CreationEffect(TxSold))
	assert.Equal(t, StockEffectReserveAll, CreationEffect(TxRent))
	// Creating a return record does not restock; only transitions into
	// RETURNED do.
	assert.Equal(t, StockEffectNone, CreationEffect(TxReturned))

	assert.Equal(t, StockEffectReleaseAll, DeletionEffect(TxSold))
	assert.Equal(t, StockEffectReleaseAll, DeletionEffect(TxRent))
	assert.Equal(t, StockEffectNone, DeletionEffect(TxReturned))
}

func TestComputeTotals(t *testing.T) {
	tx := &Transaction{
		Items: []TransactionItem{
			{Quantity: 3, UnitPrice: decimal.RequireFromString("1000"), UnitCostPrice: decimal.RequireFromString("700")},
			{Quantity: 1, UnitPrice: decimal.RequireFromString("299.99"), UnitCostPrice: decimal.RequireFromString("150.50")},
		},
	}
	tx.ComputeTotals()

	assert.True(t, tx.TotalAmount.Equal(decimal.RequireFromString("3299.99")), "amount %s", tx.TotalAmount)
	assert.True(t, tx.TotalCost.Equal(decimal.RequireFromString("2250.50")), "cost %s", tx.TotalCost)
	assert.True(t, tx.ProfitLoss.Equal(decimal.RequireFromString("1049.49")), "profit %s", tx.ProfitLoss)
}

func TestComputeTotalsEmpty(t *testing.T) {
	tx := &Transaction{}
	tx.ComputeTotals()

	assert.True(t, tx.TotalAmount.IsZero())
	assert.True(t, tx.TotalCost.IsZero())
	assert.True(t, tx.ProfitLoss.IsZero())
}

func TestStockEffectString(t *testing.T) {
	assert.Equal(t, "none", StockEffectNone.String())
	assert.Equal(t, "reserve_all", StockEffectReserveAll.String())
	assert.Equal(t, "release_all", StockEffectReleaseAll.String())
}
