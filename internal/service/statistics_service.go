package service

import (
	"context"
	"time"

	"go-stock-management/internal/model"
	"go-stock-management/internal/repository"

	"github.com/shopspring/decimal"
)

var outboundTypes = []model.TransactionType{model.TxSold, model.TxRent}
var inboundTypes = []model.TransactionType{model.TxReturned}

// StatisticsTotals are the headline numbers.
type StatisticsTotals struct {
	TotalInbound  int64           `json:"total_inbound"`
	TotalOutbound int64           `json:"total_outbound"`
	NetFlow       int64           `json:"net_flow"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

// MonthlyFlow is one bucket of the trailing 6-month series.
type MonthlyFlow struct {
	Label    string `json:"label"` // short month name, e.g. "Mar"
	Inbound  int64  `json:"inbound"`
	Outbound int64  `json:"outbound"`
	Net      int64  `json:"net"`
}

type Statistics struct {
	Totals              StatisticsTotals                 `json:"totals"`
	StockFlow           []MonthlyFlow                    `json:"stock_flow"`
	TopItems            []repository.ProductMovement     `json:"top_items"`
	LowItems            []repository.ProductMovement     `json:"low_items"`
	CategoryPerformance []repository.CategoryPerformance `json:"category_performance"`
	RevenueByCategory   []repository.CategoryRevenue     `json:"revenue_by_category"`
}

// StatisticsService derives read-only rollups from committed transactions.
// Everything is recomputed per call; it never mutates.
type StatisticsService interface {
	GetStatistics(ctx context.Context) (*Statistics, error)
}

type statisticsService struct {
	repo repository.StatisticsRepository
	now  func() time.Time
}

func NewStatisticsService(repo repository.StatisticsRepository) StatisticsService {
	return &statisticsService{repo: repo, now: time.Now}
}

func (s *statisticsService) GetStatistics(ctx context.Context) (*Statistics, error) {
	totalOutbound, err := s.repo.SumUnits(ctx, outboundTypes, nil, nil)
	if err != nil {
		return nil, err
	}
	totalInbound, err := s.repo.SumUnits(ctx, inboundTypes, nil, nil)
	if err != nil {
		return nil, err
	}
	totalRevenue, err := s.repo.SumRevenue(ctx, outboundTypes)
	if err != nil {
		return nil, err
	}

	stockFlow, err := s.monthlyFlow(ctx)
	if err != nil {
		return nil, err
	}

	topItems, err := s.repo.ProductMovers(ctx, 5, false)
	if err != nil {
		return nil, err
	}
	lowItems, err := s.repo.ProductMovers(ctx, 5, true)
	if err != nil {
		return nil, err
	}
	categoryPerformance, err := s.repo.CategoryPerformance(ctx)
	if err != nil {
		return nil, err
	}
	revenueByCategory, err := s.repo.RevenueByCategory(ctx)
	if err != nil {
		return nil, err
	}

	return &Statistics{
		Totals: StatisticsTotals{
			TotalInbound:  totalInbound,
			TotalOutbound: totalOutbound,
			NetFlow:       totalInbound - totalOutbound,
			TotalRevenue:  totalRevenue,
		},
		StockFlow:           stockFlow,
		TopItems:            topItems,
		LowItems:            lowItems,
		CategoryPerformance: categoryPerformance,
		RevenueByCategory:   revenueByCategory,
	}, nil
}

// monthlyFlow buckets the trailing 6 calendar months (oldest first).
func (s *statisticsService) monthlyFlow(ctx context.Context) ([]MonthlyFlow, error) {
	now := s.now()
	months := make([]MonthlyFlow, 0, 6)

	for i := 5; i >= 0; i-- {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		monthEnd := monthStart.AddDate(0, 1, 0)

		outbound, err := s.repo.SumUnits(ctx, outboundTypes, &monthStart, &monthEnd)
		if err != nil {
			return nil, err
		}
		inbound, err := s.repo.SumUnits(ctx, inboundTypes, &monthStart, &monthEnd)
		if err != nil {
			return nil, err
		}

		months = append(months, MonthlyFlow{
			Label:    monthStart.Format("Jan"),
			Inbound:  inbound,
			Outbound: outbound,
			Net:      inbound - outbound,
		})
	}
	return months, nil
}
