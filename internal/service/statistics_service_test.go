package service

import (
	"context"
	"testing"
	"time"

	"go-stock-management/internal/model"
	"go-stock-management/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStatisticsRepo answers SumUnits from a list of dated movements so the
// month bucketing is exercised for real.
type fakeStatisticsRepo struct {
	movements []fakeMovement
	revenue   decimal.Decimal
}

type fakeMovement struct {
	txType model.TransactionType
	units  int64
	at     time.Time
}

func (r *fakeStatisticsRepo) SumUnits(ctx context.Context, types []model.TransactionType, from, to *time.Time) (int64, error) {
	wanted := make(map[model.TransactionType]bool, len(types))
	for _, t := range types {
		wanted[t] = true
	}

	var total int64
	for _, m := range r.movements {
		if !wanted[m.txType] {
			continue
		}
		if from != nil && m.at.Before(*from) {
			continue
		}
		if to != nil && !m.at.Before(*to) {
			continue
		}
		total += m.units
	}
	return total, nil
}

func (r *fakeStatisticsRepo) SumRevenue(ctx context.Context, types []model.TransactionType) (decimal.Decimal, error) {
	return r.revenue, nil
}

func (r *fakeStatisticsRepo) ProductMovers(ctx context.Context, limit int, lowest bool) ([]repository.ProductMovement, error) {
	return nil, nil
}

func (r *fakeStatisticsRepo) CategoryPerformance(ctx context.Context) ([]repository.CategoryPerformance, error) {
	return nil, nil
}

func (r *fakeStatisticsRepo) RevenueByCategory(ctx context.Context) ([]repository.CategoryRevenue, error) {
	return nil, nil
}

func TestGetStatisticsTotalsAndNetFlow(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	repo := &fakeStatisticsRepo{
		movements: []fakeMovement{
			{model.TxSold, 8, now.AddDate(0, 0, -1)},
			{model.TxRent, 4, now.AddDate(0, 0, -2)},
			{model.TxReturned, 3, now.AddDate(0, 0, -3)},
		},
		revenue: decimal.RequireFromString("1250.50"),
	}
	svc := &statisticsService{repo: repo, now: func() time.Time { return now }}

	stats, err := svc.GetStatistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(12), stats.Totals.TotalOutbound)
	assert.Equal(t, int64(3), stats.Totals.TotalInbound)
	assert.Equal(t, int64(-9), stats.Totals.NetFlow)
	assert.True(t, stats.Totals.TotalRevenue.Equal(decimal.RequireFromString("1250.50")))
}

func TestGetStatisticsMonthlyBuckets(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	repo := &fakeStatisticsRepo{
		movements: []fakeMovement{
			// June: 5 out, 2 in.
			{model.TxSold, 5, time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC)},
			{model.TxReturned, 2, time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)},
			// April: 7 out.
			{model.TxRent, 7, time.Date(2025, time.April, 20, 0, 0, 0, 0, time.UTC)},
			// January: oldest bucket of the trailing window.
			{model.TxSold, 99, time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)},
			// December of the prior year: outside the window, must not appear.
			{model.TxSold, 50, time.Date(2024, time.December, 20, 0, 0, 0, 0, time.UTC)},
		},
	}
	svc := &statisticsService{repo: repo, now: func() time.Time { return now }}

	stats, err := svc.GetStatistics(context.Background())
	require.NoError(t, err)

	require.Len(t, stats.StockFlow, 6)

	labels := make([]string, 0, 6)
	for _, m := range stats.StockFlow {
		labels = append(labels, m.Label)
	}
	assert.Equal(t, []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}, labels)

	assert.Equal(t, int64(99), stats.StockFlow[0].Outbound)

	april := stats.StockFlow[3]
	assert.Equal(t, int64(7), april.Outbound)
	assert.Equal(t, int64(0), april.Inbound)
	assert.Equal(t, int64(-7), april.Net)

	june := stats.StockFlow[5]
	assert.Equal(t, int64(5), june.Outbound)
	assert.Equal(t, int64(2), june.Inbound)
	assert.Equal(t, int64(-3), june.Net)
}
