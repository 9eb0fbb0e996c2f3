package invoice

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"gymdesk/internal/logger"
	"gymdesk/internal/metrics"
)

// Numberer issues invoice numbers. The normal path is the tenant-scoped
// database counter; the fallback is a timestamp-plus-random placeholder that
// cannot collide but is reported every time it fires.
type Numberer interface {
	IssueNumber(ctx context.Context, gymID int) string
}

type numberer struct {
	repo Repository
}

func NewNumberer(repo Repository) Numberer {
	return &numberer{repo: repo}
}

func (n *numberer) IssueNumber(ctx context.Context, gymID int) string {
	number, err := n.repo.NextNumber(ctx, gymID)
	if err == nil {
		return number
	}

	fallback := fallbackNumber(time.Now())
	logger.Errorf("invoice counter failed for gym %d, using fallback %s: %v", gymID, fallback, err)
	metrics.RecordInvoiceNumberFallback()
	return fallback
}

func fallbackNumber(now time.Time) string {
	suffix := make([]byte, 2)
	_, _ = rand.Read(suffix)
	return fmt.Sprintf("INV-%d-%s", now.UnixNano(), hex.EncodeToString(suffix))
}
