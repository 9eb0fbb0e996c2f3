package invoice

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gymdesk/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init()

	code := m.Run()
	os.Exit(code)
}

type MockInvoiceRepo struct{ mock.Mock }

func (m *MockInvoiceRepo) InsertTx(ctx context.Context, tx *sqlx.Tx, inv *Invoice) (*Invoice, error) {
	args := m.Called(ctx, tx, inv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Invoice), args.Error(1)
}

func (m *MockInvoiceRepo) NextNumber(ctx context.Context, gymID int) (string, error) {
	args := m.Called(ctx, gymID)
	return args.String(0), args.Error(1)
}

func (m *MockInvoiceRepo) ListByGym(ctx context.Context, gymID int) ([]InvoiceWithMember, error) {
	args := m.Called(ctx, gymID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]InvoiceWithMember), args.Error(1)
}

func (m *MockInvoiceRepo) ListByMember(ctx context.Context, gymID, memberID int) ([]InvoiceWithMember, error) {
	args := m.Called(ctx, gymID, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]InvoiceWithMember), args.Error(1)
}

func (m *MockInvoiceRepo) GetByID(ctx context.Context, gymID, id int) (*InvoiceWithMember, error) {
	args := m.Called(ctx, gymID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*InvoiceWithMember), args.Error(1)
}

func TestIssueNumber(t *testing.T) {
	ctx := context.Background()

	t.Run("Counter path", func(t *testing.T) {
		repo := new(MockInvoiceRepo)
		repo.On("NextNumber", ctx, 1).Return("INV-1-000009", nil)

		n := NewNumberer(repo)
		assert.Equal(t, "INV-1-000009", n.IssueNumber(ctx, 1))
	})

	t.Run("Fallback when the counter fails", func(t *testing.T) {
		repo := new(MockInvoiceRepo)
		repo.On("NextNumber", ctx, 1).Return("", errors.New("connection refused"))

		n := NewNumberer(repo)
		first := n.IssueNumber(ctx, 1)
		second := n.IssueNumber(ctx, 1)

		assert.True(t, strings.HasPrefix(first, "INV-"))
		assert.NotEqual(t, first, second, "fallback numbers must not repeat")
	})
}

func TestFallbackNumberShape(t *testing.T) {
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	number := fallbackNumber(now)

	parts := strings.SplitN(number, "-", 3)
	assert.Len(t, parts, 3)
	assert.Equal(t, "INV", parts[0])
	assert.Len(t, parts[2], 4)
}
