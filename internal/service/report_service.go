package service

import (
	"context"
	"sort"
	"time"

	"github.com/sreemonkavungal/BurgerByte/internal/domain"
	"github.com/sreemonkavungal/BurgerByte/internal/repository"
)

const reportDateLayout = "2006-01-02"

// ReportService rolls paid orders up into per-day sales buckets. Buckets
// are computed fresh on every request.
type ReportService struct {
	orders repository.OrderRepository
	now    func() time.Time
}

func NewReportService(orders repository.OrderRepository) *ReportService {
	return &ReportService{
		orders: orders,
		now:    time.Now,
	}
}

// SalesReport returns one bucket per UTC calendar date that has at least
// one paid order created in [from, to], both ends inclusive, ascending by
// date. from defaults to seven days before now, to defaults to now.
func (s *ReportService) SalesReport(ctx context.Context, from, to *time.Time) ([]domain.SalesBucket, error) {
	now := s.now()

	fromDate := now.AddDate(0, 0, -7)
	if from != nil {
		fromDate = *from
	}
	toDate := now
	if to != nil {
		toDate = *to
	}

	if fromDate.After(toDate) {
		return nil, ErrInvalidDateRange
	}

	orders, err := s.orders.ListPaidBetween(ctx, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]*domain.SalesBucket)
	for _, order := range orders {
		date := order.CreatedAt.UTC().Format(reportDateLayout)
		bucket, ok := byDate[date]
		if !ok {
			bucket = &domain.SalesBucket{Date: date}
			byDate[date] = bucket
		}
		bucket.TotalSales += order.TotalAmount
		bucket.OrderCount++
	}

	buckets := make([]domain.SalesBucket, 0, len(byDate))
	for _, bucket := range byDate {
		buckets = append(buckets, *bucket)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Date < buckets[j].Date
	})

	return buckets, nil
}
