package analytics

import (
	"context"
	"time"
)

const seriesMonths = 6

type Service interface {
	Overview(ctx context.Context, gymID int, now time.Time) (*Overview, error)
	Dashboard(ctx context.Context, gymID int, now time.Time) (*Dashboard, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Overview builds the six-month revenue and signup series, oldest first.
// Months with no data appear as zeros so the series always has six points.
func (s *service) Overview(ctx context.Context, gymID int, now time.Time) (*Overview, error) {
	since := monthStart(now).AddDate(0, -(seriesMonths - 1), 0)

	revenue, err := s.repo.RevenueByMonth(ctx, gymID, since)
	if err != nil {
		return nil, err
	}

	signups, err := s.repo.NewMembersByMonth(ctx, gymID, since)
	if err != nil {
		return nil, err
	}

	revenueByMonth := make(map[string]float64, len(revenue))
	for _, row := range revenue {
		revenueByMonth[monthKey(row.Month)] = row.Amount
	}
	signupsByMonth := make(map[string]int, len(signups))
	for _, row := range signups {
		signupsByMonth[monthKey(row.Month)] = row.Count
	}

	monthly := make([]MonthlyPoint, 0, seriesMonths)
	var totalRevenue float64
	for i := seriesMonths - 1; i >= 0; i-- {
		m := monthStart(now).AddDate(0, -i, 0)
		key := monthKey(m)
		point := MonthlyPoint{
			Month:      m.Format("Jan 2006"),
			Revenue:    revenueByMonth[key],
			NewMembers: signupsByMonth[key],
		}
		totalRevenue += point.Revenue
		monthly = append(monthly, point)
	}

	counts, err := s.repo.CountMembers(ctx, gymID, now)
	if err != nil {
		return nil, err
	}

	retention := 0.0
	if counts.Total > 0 {
		retention = float64(counts.Active) / float64(counts.Total) * 100
	}

	return &Overview{
		Monthly: monthly,
		Stats: Stats{
			TotalRevenue:   totalRevenue,
			AverageRevenue: totalRevenue / seriesMonths,
			TotalMembers:   counts.Total,
			ActiveMembers:  counts.Active,
			RetentionRate:  retention,
		},
	}, nil
}

func (s *service) Dashboard(ctx context.Context, gymID int, now time.Time) (*Dashboard, error) {
	counts, err := s.repo.CountMembers(ctx, gymID, now)
	if err != nil {
		return nil, err
	}

	expiring, err := s.repo.CountExpiringBetween(ctx, gymID, now, now.AddDate(0, 0, 7))
	if err != nil {
		return nil, err
	}

	from := monthStart(now)
	to := from.AddDate(0, 1, 0)

	revenue, err := s.repo.RevenueBetween(ctx, gymID, from, to)
	if err != nil {
		return nil, err
	}

	signups, err := s.repo.NewMembersBetween(ctx, gymID, from, to)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		TotalMembers:    counts.Total,
		ActiveMembers:   counts.Active,
		ExpiringSoon:    expiring,
		MonthRevenue:    revenue,
		NewMembersMonth: signups,
	}, nil
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func monthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}
