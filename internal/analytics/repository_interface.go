package analytics

import (
	"context"
	"time"
)

type MonthAmount struct {
	Month  time.Time `db:"month"`
	Amount float64   `db:"amount"`
}

type MonthCount struct {
	Month time.Time `db:"month"`
	Count int       `db:"count"`
}

type MemberCounts struct {
	Total  int `db:"total"`
	Active int `db:"active"`
}

type Repository interface {
	RevenueByMonth(ctx context.Context, gymID int, since time.Time) ([]MonthAmount, error)
	NewMembersByMonth(ctx context.Context, gymID int, since time.Time) ([]MonthCount, error)
	CountMembers(ctx context.Context, gymID int, today time.Time) (MemberCounts, error)
	CountExpiringBetween(ctx context.Context, gymID int, from, to time.Time) (int, error)
	RevenueBetween(ctx context.Context, gymID int, from, to time.Time) (float64, error)
	NewMembersBetween(ctx context.Context, gymID int, from, to time.Time) (int, error)
}
