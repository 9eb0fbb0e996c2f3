package analytics

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) RevenueByMonth(ctx context.Context, gymID int, since time.Time) ([]MonthAmount, error) {
	query := `
		SELECT date_trunc('month', date) AS month, COALESCE(SUM(amount), 0) AS amount
		FROM invoices
		WHERE gym_id = $1 AND date >= $2
		GROUP BY date_trunc('month', date)
		ORDER BY month`

	rows := []MonthAmount{}
	if err := r.db.SelectContext(ctx, &rows, query, gymID, since); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) NewMembersByMonth(ctx context.Context, gymID int, since time.Time) ([]MonthCount, error) {
	query := `
		SELECT date_trunc('month', created_at) AS month, COUNT(*) AS count
		FROM members
		WHERE gym_id = $1 AND created_at >= $2
		GROUP BY date_trunc('month', created_at)
		ORDER BY month`

	rows := []MonthCount{}
	if err := r.db.SelectContext(ctx, &rows, query, gymID, since); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) CountMembers(ctx context.Context, gymID int, today time.Time) (MemberCounts, error) {
	query := `
		SELECT COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE is_active AND end_date >= $2) AS active
		FROM members
		WHERE gym_id = $1`

	var counts MemberCounts
	if err := r.db.GetContext(ctx, &counts, query, gymID, today); err != nil {
		return MemberCounts{}, err
	}
	return counts, nil
}

func (r *repository) CountExpiringBetween(ctx context.Context, gymID int, from, to time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM members
		WHERE gym_id = $1 AND is_active AND end_date >= $2 AND end_date <= $3`

	var count int
	if err := r.db.GetContext(ctx, &count, query, gymID, from, to); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) RevenueBetween(ctx context.Context, gymID int, from, to time.Time) (float64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM invoices
		WHERE gym_id = $1 AND date >= $2 AND date < $3`

	var total float64
	if err := r.db.GetContext(ctx, &total, query, gymID, from, to); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *repository) NewMembersBetween(ctx context.Context, gymID int, from, to time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM members
		WHERE gym_id = $1 AND created_at >= $2 AND created_at < $3`

	var count int
	if err := r.db.GetContext(ctx, &count, query, gymID, from, to); err != nil {
		return 0, err
	}
	return count, nil
}
