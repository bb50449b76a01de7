package service

import (
	"context"
	"fmt"

	"garastore/internal/model"
	"garastore/internal/pricing"
	"garastore/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// TopProductsLimit is the number of best sellers in the summary.
const TopProductsLimit = 10

// reportService implements ReportService.
type reportService struct {
	reportRepo        repository.ReportRepository
	userRepo          repository.UserRepository
	lowStockThreshold int
	recentOrdersLimit int
	logger            zerolog.Logger
}

// NewReportService creates a new report service.
func NewReportService(
	reportRepo repository.ReportRepository,
	userRepo repository.UserRepository,
	lowStockThreshold, recentOrdersLimit int,
	logger zerolog.Logger,
) ReportService {
	return &reportService{
		reportRepo:        reportRepo,
		userRepo:          userRepo,
		lowStockThreshold: lowStockThreshold,
		recentOrdersLimit: recentOrdersLimit,
		logger:            logger.With().Str("service", "report").Logger(),
	}
}

// Summary runs every aggregation concurrently and assembles the dashboard.
// The first failing query cancels the rest.
func (s *reportService) Summary(ctx context.Context) (*model.Summary, error) {
	summary := &model.Summary{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		totals, err := s.reportRepo.OrderTotals(ctx)
		if err != nil {
			return err
		}
		totals.TotalSales = pricing.Round2(totals.TotalSales)
		summary.Orders = totals
		return nil
	})

	g.Go(func() error {
		count, err := s.userRepo.Count(ctx)
		if err != nil {
			return err
		}
		summary.Users = model.UserTotals{NumUsers: count}
		return nil
	})

	series := []struct {
		granularity model.SalesGranularity
		dest        *[]model.SalesBucket
	}{
		{model.GranularityDay, &summary.DailyOrders},
		{model.GranularityMonth, &summary.MonthlyOrders},
		{model.GranularityYear, &summary.YearlyOrders},
	}
	for _, sr := range series {
		g.Go(func() error {
			buckets, err := s.reportRepo.SalesSeries(ctx, sr.granularity)
			if err != nil {
				return err
			}
			for i := range buckets {
				buckets[i].Sales = pricing.Round2(buckets[i].Sales)
			}
			*sr.dest = buckets
			return nil
		})
	}

	g.Go(func() error {
		categories, err := s.reportRepo.ProductCategories(ctx)
		summary.ProductCategories = categories
		return err
	})

	g.Go(func() error {
		top, err := s.reportRepo.TopProducts(ctx, TopProductsLimit)
		if err != nil {
			return err
		}
		for i := range top {
			top[i].Revenue = pricing.Round2(top[i].Revenue)
		}
		summary.TopProducts = top
		return nil
	})

	g.Go(func() error {
		low, err := s.reportRepo.LowStockProducts(ctx, s.lowStockThreshold)
		summary.LowStockProducts = low
		return err
	})

	g.Go(func() error {
		recent, err := s.reportRepo.RecentOrders(ctx, s.recentOrdersLimit)
		summary.RecentOrders = recent
		return err
	})

	g.Go(func() error {
		delivered, paid, discounted, err := s.reportRepo.StatusCounts(ctx)
		if err != nil {
			return err
		}
		summary.CompletedOrders = delivered
		summary.PaidOrders = paid
		summary.DiscountUsers = discounted
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("failed to build summary")
		return nil, fmt.Errorf("failed to build summary: %w", err)
	}

	normalizeSummary(summary)

	s.logger.Debug().
		Int("num_orders", summary.Orders.NumOrders).
		Int("low_stock", len(summary.LowStockProducts)).
		Msg("summary built")

	return summary, nil
}

// normalizeSummary replaces nil slices so they encode as empty arrays.
func normalizeSummary(s *model.Summary) {
	if s.DailyOrders == nil {
		s.DailyOrders = []model.SalesBucket{}
	}
	if s.MonthlyOrders == nil {
		s.MonthlyOrders = []model.SalesBucket{}
	}
	if s.YearlyOrders == nil {
		s.YearlyOrders = []model.SalesBucket{}
	}
	if s.ProductCategories == nil {
		s.ProductCategories = []model.CategoryCount{}
	}
	if s.TopProducts == nil {
		s.TopProducts = []model.TopProduct{}
	}
	if s.LowStockProducts == nil {
		s.LowStockProducts = []model.LowStockProduct{}
	}
	if s.RecentOrders == nil {
		s.RecentOrders = []model.RecentOrder{}
	}
}
